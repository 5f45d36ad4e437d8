// Package testutil opens throwaway SQLite stores and seeds catalog rows for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"courseservice/config"
	"courseservice/database"
	"courseservice/logger"
	courseModels "courseservice/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Config returns a sqlite configuration backed by a private in-memory database.
func Config(tb testing.TB) *config.Config {
	tb.Helper()
	cfg := config.FromEnv()
	cfg.DBDriver = "sqlite"
	cfg.DBDSN = fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	cfg.DBLogSQL = false
	cfg.JWTKey = ""
	cfg.StatsCron = ""
	cfg.RequestTimeout = 0
	return cfg
}

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.Nop()
}

// DB opens and migrates a fresh in-memory database that is closed when the test ends.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := database.ConnectDb(Config(tb), Logger(tb))
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func SeedCourse(tb testing.TB, db *gorm.DB, title string) *courseModels.Course {
	tb.Helper()
	now := time.Now().UTC()
	c := &courseModels.Course{AuthorID: 1, Title: title, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedLesson(tb testing.TB, db *gorm.DB, courseID uint, title string) *courseModels.Lesson {
	tb.Helper()
	now := time.Now().UTC()
	l := &courseModels.Lesson{CourseID: courseID, Title: title, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedExercise(tb testing.TB, db *gorm.DB, lessonID uint, title string) *courseModels.Exercise {
	tb.Helper()
	now := time.Now().UTC()
	e := &courseModels.Exercise{LessonID: lessonID, Title: title, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(e).Error; err != nil {
		tb.Fatalf("seed exercise: %v", err)
	}
	return e
}

// CountRows returns the number of rows in the table backing model.
func CountRows(tb testing.TB, db *gorm.DB, model interface{}) int64 {
	tb.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		tb.Fatalf("count rows: %v", err)
	}
	return n
}

func Ptr[T any](v T) *T { return &v }
