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

// ExerciseInput holds validated fields for a new exercise.
type ExerciseInput struct {
	LessonID uint
	Title    string
	Content  *string
	Exercise *string
}

type ExerciseRepo struct {
	db  *gorm.DB
	log *logger.Logger
	now clock
}

func NewExerciseRepo(db *gorm.DB, log *logger.Logger) *ExerciseRepo {
	return &ExerciseRepo{db: db, log: log.With("repo", "ExerciseRepo"), now: systemClock}
}

// Create inserts an exercise. A foreign-key violation from the store is reported as a
// missing lesson.
func (r *ExerciseRepo) Create(ctx context.Context, tx *gorm.DB, in ExerciseInput) (*courseModels.Exercise, error) {
	now := r.now()
	exercise := &courseModels.Exercise{
		LessonID:  in.LessonID,
		Title:     in.Title,
		Content:   in.Content,
		Exercise:  in.Exercise,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := conn(ctx, r.db, tx).Create(exercise).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperrors.NotFound("Lesson", in.LessonID)
		}
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	r.log.Debug("exercise created", "exercise_id", exercise.ID, "lesson_id", exercise.LessonID)
	return exercise, nil
}

// Get returns nil, nil when the exercise does not exist.
func (r *ExerciseRepo) Get(ctx context.Context, tx *gorm.DB, id uint) (*courseModels.Exercise, error) {
	exercise, err := findByID[courseModels.Exercise](conn(ctx, r.db, tx), id)
	if err != nil {
		return nil, fmt.Errorf("get exercise %d: %w", id, err)
	}
	return exercise, nil
}

func (r *ExerciseRepo) List(ctx context.Context, tx *gorm.DB, page Page) ([]courseModels.Exercise, error) {
	rows, err := listPage[courseModels.Exercise](conn(ctx, r.db, tx), page)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return rows, nil
}

// ListByLesson returns the exercises of one lesson. It does not check that the lesson exists.
func (r *ExerciseRepo) ListByLesson(ctx context.Context, tx *gorm.DB, lessonID uint, page Page) ([]courseModels.Exercise, error) {
	rows, err := listPage[courseModels.Exercise](conn(ctx, r.db, tx).Where("lesson_id = ?", lessonID), page)
	if err != nil {
		return nil, fmt.Errorf("list exercises of lesson %d: %w", lessonID, err)
	}
	return rows, nil
}

func (r *ExerciseRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	n, err := countRows[courseModels.Exercise](conn(ctx, r.db, tx))
	if err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	return n, nil
}

func (r *ExerciseRepo) CountByLesson(ctx context.Context, tx *gorm.DB, lessonID uint) (int64, error) {
	n, err := countRows[courseModels.Exercise](conn(ctx, r.db, tx).Where("lesson_id = ?", lessonID))
	if err != nil {
		return 0, fmt.Errorf("count exercises of lesson %d: %w", lessonID, err)
	}
	return n, nil
}

// Update writes the columns in patch (title, content, exercise). It returns nil, nil without
// writing when the exercise does not exist.
func (r *ExerciseRepo) Update(ctx context.Context, tx *gorm.DB, id uint, patch Patch) (*courseModels.Exercise, error) {
	var updated *courseModels.Exercise
	err := conn(ctx, r.db, tx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID[courseModels.Exercise](tx, id)
		if err != nil || current == nil {
			return err
		}
		updated, err = applyPatch[courseModels.Exercise](tx, id, nextUpdatedAt(r.now(), current.UpdatedAt), patch,
			"title", "content", "exercise")
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update exercise %d: %w", id, err)
	}
	return updated, nil
}

// Delete returns false without writing when the exercise does not exist.
func (r *ExerciseRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := conn(ctx, r.db, tx).Delete(&courseModels.Exercise{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete exercise %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
