// Package hierarchy confirms that a parent row exists before a child is created under it
// or its children are listed.
//
// The check and the following insert are not one transaction. A parent deleted in between
// is caught by the foreign-key constraint, which the repositories translate into the same
// not-found error.
package hierarchy

import (
	"context"

	"courseservice/apperrors"
	courseModels "courseservice/models/course"

	"gorm.io/gorm"
)

type courseGetter interface {
	Get(ctx context.Context, tx *gorm.DB, id uint) (*courseModels.Course, error)
}

type lessonGetter interface {
	Get(ctx context.Context, tx *gorm.DB, id uint) (*courseModels.Lesson, error)
}

type Checker struct {
	courses courseGetter
	lessons lessonGetter
}

func NewChecker(courses courseGetter, lessons lessonGetter) *Checker {
	return &Checker{courses: courses, lessons: lessons}
}

// RequireCourse returns a *apperrors.NotFoundError when the course does not exist.
func (c *Checker) RequireCourse(ctx context.Context, tx *gorm.DB, courseID uint) error {
	course, err := c.courses.Get(ctx, tx, courseID)
	if err != nil {
		return err
	}
	if course == nil {
		return apperrors.NotFound("Course", courseID)
	}
	return nil
}

// RequireLesson returns a *apperrors.NotFoundError when the lesson does not exist.
func (c *Checker) RequireLesson(ctx context.Context, tx *gorm.DB, lessonID uint) error {
	lesson, err := c.lessons.Get(ctx, tx, lessonID)
	if err != nil {
		return err
	}
	if lesson == nil {
		return apperrors.NotFound("Lesson", lessonID)
	}
	return nil
}
