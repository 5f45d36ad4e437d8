package repositories

import (
	"context"
	"fmt"

	"courseservice/logger"
	courseModels "courseservice/models/course"

	"gorm.io/gorm"
)

// CourseInput holds validated fields for a new course.
type CourseInput struct {
	AuthorID    uint
	Title       string
	Description *string
}

type CourseRepo struct {
	db  *gorm.DB
	log *logger.Logger
	now clock
}

func NewCourseRepo(db *gorm.DB, log *logger.Logger) *CourseRepo {
	return &CourseRepo{db: db, log: log.With("repo", "CourseRepo"), now: systemClock}
}

func (r *CourseRepo) Create(ctx context.Context, tx *gorm.DB, in CourseInput) (*courseModels.Course, error) {
	now := r.now()
	course := &courseModels.Course{
		AuthorID:    in.AuthorID,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := conn(ctx, r.db, tx).Create(course).Error; err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	r.log.Debug("course created", "course_id", course.ID)
	return course, nil
}

// Get returns nil, nil when the course does not exist.
func (r *CourseRepo) Get(ctx context.Context, tx *gorm.DB, id uint) (*courseModels.Course, error) {
	course, err := findByID[courseModels.Course](conn(ctx, r.db, tx), id)
	if err != nil {
		return nil, fmt.Errorf("get course %d: %w", id, err)
	}
	return course, nil
}

func (r *CourseRepo) List(ctx context.Context, tx *gorm.DB, page Page) ([]courseModels.Course, error) {
	rows, err := listPage[courseModels.Course](conn(ctx, r.db, tx), page)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return rows, nil
}

func (r *CourseRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	n, err := countRows[courseModels.Course](conn(ctx, r.db, tx))
	if err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return n, nil
}

// Update writes the columns in patch (title, description). It returns nil, nil without
// writing when the course does not exist.
func (r *CourseRepo) Update(ctx context.Context, tx *gorm.DB, id uint, patch Patch) (*courseModels.Course, error) {
	var updated *courseModels.Course
	err := conn(ctx, r.db, tx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID[courseModels.Course](tx, id)
		if err != nil || current == nil {
			return err
		}
		updated, err = applyPatch[courseModels.Course](tx, id, nextUpdatedAt(r.now(), current.UpdatedAt), patch,
			"title", "description")
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update course %d: %w", id, err)
	}
	return updated, nil
}

// Delete removes the course with all its lessons and their exercises in one transaction.
// It returns false without writing when the course does not exist.
func (r *CourseRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	deleted := false
	err := conn(ctx, r.db, tx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID[courseModels.Course](tx, id)
		if err != nil || current == nil {
			return err
		}

		lessonIDs := tx.Model(&courseModels.Lesson{}).Select("id").Where("course_id = ?", id)
		exercises := tx.Where("lesson_id IN (?)", lessonIDs).Delete(&courseModels.Exercise{})
		if exercises.Error != nil {
			return exercises.Error
		}
		lessons := tx.Where("course_id = ?", id).Delete(&courseModels.Lesson{})
		if lessons.Error != nil {
			return lessons.Error
		}
		if err := tx.Delete(&courseModels.Course{}, id).Error; err != nil {
			return err
		}

		r.log.Debug("course deleted", "course_id", id,
			"lessons", lessons.RowsAffected, "exercises", exercises.RowsAffected)
		deleted = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete course %d: %w", id, err)
	}
	return deleted, nil
}
