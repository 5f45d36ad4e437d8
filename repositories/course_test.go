package repositories

import (
	"context"
	"testing"
	"time"

	"courseservice/apperrors"
	courseModels "courseservice/models/course"
	"courseservice/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseRepoCreateGet(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCourseRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, CourseInput{
		AuthorID:    1,
		Title:       "Python Basics",
		Description: testutil.Ptr("From zero"),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	got, err := repo.Get(ctx, nil, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(1), got.AuthorID)
	assert.Equal(t, "Python Basics", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "From zero", *got.Description)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestCourseRepoGetAbsent(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCourseRepo(db, testutil.Logger(t))

	got, err := repo.Get(context.Background(), nil, 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCourseRepoListPagination(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCourseRepo(db, testutil.Logger(t))
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three", "four", "five"} {
		testutil.SeedCourse(t, db, title)
	}

	all, err := repo.List(ctx, nil, DefaultPage())
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}

	window, err := repo.List(ctx, nil, Page{Skip: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, "two", window[0].Title)
	assert.Equal(t, "three", window[1].Title)

	past, err := repo.List(ctx, nil, Page{Skip: 10, Limit: 2})
	require.NoError(t, err)
	assert.NotNil(t, past)
	assert.Empty(t, past)

	n, err := repo.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestCourseRepoUpdatePartial(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCourseRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, CourseInput{AuthorID: 7, Title: "Go", Description: testutil.Ptr("keep me")})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, nil, created.ID, Patch{"title": "Go in Practice"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Go in Practice", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "keep me", *updated.Description)
	assert.Equal(t, uint(7), updated.AuthorID)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	cleared, err := repo.Update(ctx, nil, created.ID, Patch{"description": nil})
	require.NoError(t, err)
	require.NotNil(t, cleared)
	assert.Nil(t, cleared.Description)
	assert.Equal(t, "Go in Practice", cleared.Title)
	assert.True(t, cleared.UpdatedAt.After(updated.UpdatedAt))
}

func TestCourseRepoUpdateFrozenClock(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCourseRepo(db, testutil.Logger(t))
	frozen := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.now = func() time.Time { return frozen }
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, CourseInput{AuthorID: 1, Title: "Frozen"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, nil, created.ID, Patch{"title": "Still frozen"})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestCourseRepoUpdateAbsentWritesNothing(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCourseRepo(db, testutil.Logger(t))
	existing := testutil.SeedCourse(t, db, "untouched")

	got, err := repo.Update(context.Background(), nil, existing.ID+100, Patch{"title": "nope"})
	require.NoError(t, err)
	assert.Nil(t, got)

	var reread courseModels.Course
	require.NoError(t, db.First(&reread, existing.ID).Error)
	assert.Equal(t, "untouched", reread.Title)
}

func TestCourseRepoUpdateRejectsUnknownColumn(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCourseRepo(db, testutil.Logger(t))
	existing := testutil.SeedCourse(t, db, "owned")

	_, err := repo.Update(context.Background(), nil, existing.ID, Patch{"author_id": 99})
	require.Error(t, err)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "author_id cannot be updated!", verr.Fields["author_id"])

	var reread courseModels.Course
	require.NoError(t, db.First(&reread, existing.ID).Error)
	assert.Equal(t, uint(1), reread.AuthorID)
}

func TestCourseRepoDeleteCascades(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCourseRepo(db, testutil.Logger(t))

	doomed := testutil.SeedCourse(t, db, "doomed")
	kept := testutil.SeedCourse(t, db, "kept")
	const lessons, exercises = 3, 4
	for i := 0; i < lessons; i++ {
		l := testutil.SeedLesson(t, db, doomed.ID, "lesson")
		for j := 0; j < exercises; j++ {
			testutil.SeedExercise(t, db, l.ID, "exercise")
		}
	}
	keptLesson := testutil.SeedLesson(t, db, kept.ID, "kept lesson")
	testutil.SeedExercise(t, db, keptLesson.ID, "kept exercise")

	before := testutil.CountRows(t, db, &courseModels.Course{}) +
		testutil.CountRows(t, db, &courseModels.Lesson{}) +
		testutil.CountRows(t, db, &courseModels.Exercise{})

	ok, err := repo.Delete(context.Background(), nil, doomed.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	after := testutil.CountRows(t, db, &courseModels.Course{}) +
		testutil.CountRows(t, db, &courseModels.Lesson{}) +
		testutil.CountRows(t, db, &courseModels.Exercise{})
	assert.Equal(t, int64(1+lessons+lessons*exercises), before-after)

	var orphans int64
	require.NoError(t, db.Model(&courseModels.Lesson{}).Where("course_id = ?", doomed.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)
	require.NoError(t, db.Model(&courseModels.Exercise{}).
		Where("lesson_id NOT IN (?)", db.Model(&courseModels.Lesson{}).Select("id")).Count(&orphans).Error)
	assert.Zero(t, orphans)

	assert.Equal(t, int64(1), testutil.CountRows(t, db, &courseModels.Exercise{}))
}

func TestCourseRepoDeleteAbsent(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCourseRepo(db, testutil.Logger(t))
	testutil.SeedCourse(t, db, "stays")

	ok, err := repo.Delete(context.Background(), nil, 999)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &courseModels.Course{}))
}

func TestCourseRepoUsesGivenTransaction(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCourseRepo(db, testutil.Logger(t))
	ctx := context.Background()

	tx := db.Begin()
	_, err := repo.Create(ctx, tx, CourseInput{AuthorID: 1, Title: "rolled back"})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback().Error)

	n, err := repo.Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
