package repositories

import (
	"context"
	"errors"
	"fmt"

	"courseservice/apperrors"
	"courseservice/logger"
	courseModels "courseservice/models/course"

	"gorm.io/gorm"
)

// LessonInput holds validated fields for a new lesson.
type LessonInput struct {
	CourseID uint
	Title    string
	Content  *string
	Video    *string
}

type LessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
	now clock
}

func NewLessonRepo(db *gorm.DB, log *logger.Logger) *LessonRepo {
	return &LessonRepo{db: db, log: log.With("repo", "LessonRepo"), now: systemClock}
}

// Create inserts a lesson. The caller is expected to have checked that the course exists;
// a foreign-key violation from the store is still reported as a missing course.
func (r *LessonRepo) Create(ctx context.Context, tx *gorm.DB, in LessonInput) (*courseModels.Lesson, error) {
	now := r.now()
	lesson := &courseModels.Lesson{
		CourseID:  in.CourseID,
		Title:     in.Title,
		Content:   in.Content,
		Video:     in.Video,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := conn(ctx, r.db, tx).Create(lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperrors.NotFound("Course", in.CourseID)
		}
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	r.log.Debug("lesson created", "lesson_id", lesson.ID, "course_id", lesson.CourseID)
	return lesson, nil
}

// Get returns nil, nil when the lesson does not exist.
func (r *LessonRepo) Get(ctx context.Context, tx *gorm.DB, id uint) (*courseModels.Lesson, error) {
	lesson, err := findByID[courseModels.Lesson](conn(ctx, r.db, tx), id)
	if err != nil {
		return nil, fmt.Errorf("get lesson %d: %w", id, err)
	}
	return lesson, nil
}

func (r *LessonRepo) List(ctx context.Context, tx *gorm.DB, page Page) ([]courseModels.Lesson, error) {
	rows, err := listPage[courseModels.Lesson](conn(ctx, r.db, tx), page)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return rows, nil
}

// ListByCourse returns the lessons of one course. It does not check that the course exists.
func (r *LessonRepo) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uint, page Page) ([]courseModels.Lesson, error) {
	rows, err := listPage[courseModels.Lesson](conn(ctx, r.db, tx).Where("course_id = ?", courseID), page)
	if err != nil {
		return nil, fmt.Errorf("list lessons of course %d: %w", courseID, err)
	}
	return rows, nil
}

func (r *LessonRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	n, err := countRows[courseModels.Lesson](conn(ctx, r.db, tx))
	if err != nil {
		return 0, fmt.Errorf("count lessons: %w", err)
	}
	return n, nil
}

func (r *LessonRepo) CountByCourse(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error) {
	n, err := countRows[courseModels.Lesson](conn(ctx, r.db, tx).Where("course_id = ?", courseID))
	if err != nil {
		return 0, fmt.Errorf("count lessons of course %d: %w", courseID, err)
	}
	return n, nil
}

// Update writes the columns in patch (title, content, video). It returns nil, nil without
// writing when the lesson does not exist.
func (r *LessonRepo) Update(ctx context.Context, tx *gorm.DB, id uint, patch Patch) (*courseModels.Lesson, error) {
	var updated *courseModels.Lesson
	err := conn(ctx, r.db, tx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID[courseModels.Lesson](tx, id)
		if err != nil || current == nil {
			return err
		}
		updated, err = applyPatch[courseModels.Lesson](tx, id, nextUpdatedAt(r.now(), current.UpdatedAt), patch,
			"title", "content", "video")
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update lesson %d: %w", id, err)
	}
	return updated, nil
}

// Delete removes the lesson and its exercises in one transaction. It returns false without
// writing when the lesson does not exist.
func (r *LessonRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	deleted := false
	err := conn(ctx, r.db, tx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID[courseModels.Lesson](tx, id)
		if err != nil || current == nil {
			return err
		}

		exercises := tx.Where("lesson_id = ?", id).Delete(&courseModels.Exercise{})
		if exercises.Error != nil {
			return exercises.Error
		}
		if err := tx.Delete(&courseModels.Lesson{}, id).Error; err != nil {
			return err
		}

		r.log.Debug("lesson deleted", "lesson_id", id, "exercises", exercises.RowsAffected)
		deleted = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete lesson %d: %w", id, err)
	}
	return deleted, nil
}
