package routers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"courseservice/config"
	"courseservice/middleware"
	courseModels "courseservice/models/course"
	"courseservice/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T, mutate ...func(*config.Config)) (*fiber.App, *gorm.DB) {
	t.Helper()
	cfg := testutil.Config(t)
	cfg.Env = "test"
	for _, m := range mutate {
		m(cfg)
	}
	db := testutil.DB(t)
	return NewApp(cfg, db, testutil.Logger(t)), db
}

func call(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v), string(env.Data))
	return v
}

func TestCreateAndCascadeDelete(t *testing.T) {
	app, db := newTestApp(t)

	resp, env := call(t, app, http.MethodPost, "/api/v1/courses",
		`{"author_id": 1, "title": "Python Basics"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)
	course := decode[courseModels.Course](t, env)
	assert.Equal(t, uint(1), course.ID)

	resp, env = call(t, app, http.MethodPost, "/api/v1/lessons",
		fmt.Sprintf(`{"course_id": %d, "title": "Variables"}`, course.ID))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)
	lesson := decode[courseModels.Lesson](t, env)
	assert.Equal(t, course.ID, lesson.CourseID)

	resp, env = call(t, app, http.MethodPost, "/api/v1/exercises",
		fmt.Sprintf(`{"lesson_id": %d, "title": "Declare x"}`, lesson.ID))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)
	exercise := decode[courseModels.Exercise](t, env)

	resp, _ = call(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/courses/%d", course.ID), "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, env = call(t, app, http.MethodGet, fmt.Sprintf("/api/v1/lessons/%d", lesson.ID), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("Lesson with id %d not found", lesson.ID), env.Message)

	resp, _ = call(t, app, http.MethodGet, fmt.Sprintf("/api/v1/exercises/%d", exercise.ID), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	assert.Zero(t, testutil.CountRows(t, db, &courseModels.Lesson{}))
	assert.Zero(t, testutil.CountRows(t, db, &courseModels.Exercise{}))

	resp, _ = call(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/courses/%d", course.ID), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateLessonUnderMissingCourse(t *testing.T) {
	app, db := newTestApp(t)

	resp, env := call(t, app, http.MethodPost, "/api/v1/lessons", `{"course_id": 999, "title": "Orphan"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Status)
	assert.Equal(t, "Course with id 999 not found", env.Message)
	assert.Zero(t, testutil.CountRows(t, db, &courseModels.Lesson{}))
}

func TestCreateExerciseUnderMissingLesson(t *testing.T) {
	app, db := newTestApp(t)

	resp, env := call(t, app, http.MethodPost, "/api/v1/exercises", `{"lesson_id": 5, "title": "Orphan"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Lesson with id 5 not found", env.Message)
	assert.Zero(t, testutil.CountRows(t, db, &courseModels.Exercise{}))
}

func TestValidationFailures(t *testing.T) {
	app, db := newTestApp(t)

	resp, env := call(t, app, http.MethodPost, "/api/v1/courses", `{"title": "ab"}`)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Validation failed!", env.Message)
	fields := decode[map[string]string](t, env)
	assert.Equal(t, "title must be at least 3 characters long!", fields["title"])
	assert.Equal(t, "author_id is required!", fields["author_id"])

	resp, _ = call(t, app, http.MethodPost, "/api/v1/courses", `{"title": `)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Validation runs before the parent lookup
	resp, _ = call(t, app, http.MethodPost, "/api/v1/lessons", `{"course_id": 999, "title": ""}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	assert.Zero(t, testutil.CountRows(t, db, &courseModels.Course{}))
}

func TestInvalidPathID(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := call(t, app, http.MethodGet, "/api/v1/courses/abc", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid Course ID!", env.Message)

	resp, _ = call(t, app, http.MethodGet, "/api/v1/lessons/0", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, env = call(t, app, http.MethodGet, "/api/v1/exercises/77", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Exercise with id 77 not found", env.Message)
}

func TestListPagination(t *testing.T) {
	app, db := newTestApp(t)
	for _, title := range []string{"one", "two", "three", "four", "five"} {
		testutil.SeedCourse(t, db, title)
	}

	resp, env := call(t, app, http.MethodGet, "/api/v1/courses?skip=1&limit=2", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "5", resp.Header.Get("X-Total-Count"))
	courses := decode[[]courseModels.Course](t, env)
	require.Len(t, courses, 2)
	assert.Equal(t, "two", courses[0].Title)
	assert.Equal(t, "three", courses[1].Title)

	resp, env = call(t, app, http.MethodGet, "/api/v1/courses", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]courseModels.Course](t, env), 5)

	resp, env = call(t, app, http.MethodGet, "/api/v1/courses?skip=50", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "[]", string(env.Data))

	resp, _ = call(t, app, http.MethodGet, "/api/v1/courses?limit=-1", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/v1/courses?skip=abc", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListChildren(t *testing.T) {
	app, db := newTestApp(t)
	first := testutil.SeedCourse(t, db, "First")
	second := testutil.SeedCourse(t, db, "Second")
	a := testutil.SeedLesson(t, db, first.ID, "a")
	testutil.SeedLesson(t, db, first.ID, "b")
	testutil.SeedLesson(t, db, second.ID, "c")
	testutil.SeedExercise(t, db, a.ID, "x")

	resp, env := call(t, app, http.MethodGet, fmt.Sprintf("/api/v1/courses/%d/lessons", first.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("X-Total-Count"))
	lessons := decode[[]courseModels.Lesson](t, env)
	require.Len(t, lessons, 2)
	for _, l := range lessons {
		assert.Equal(t, first.ID, l.CourseID)
	}

	resp, env = call(t, app, http.MethodGet, fmt.Sprintf("/api/v1/lessons/%d/exercises", a.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]courseModels.Exercise](t, env), 1)

	resp, env = call(t, app, http.MethodGet, "/api/v1/courses/999/lessons", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Course with id 999 not found", env.Message)

	resp, env = call(t, app, http.MethodGet, "/api/v1/lessons", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "3", resp.Header.Get("X-Total-Count"))
	assert.Len(t, decode[[]courseModels.Lesson](t, env), 3)
}

func TestPartialUpdate(t *testing.T) {
	app, db := newTestApp(t)
	course := testutil.SeedCourse(t, db, "Original")
	path := fmt.Sprintf("/api/v1/courses/%d", course.ID)

	resp, env := call(t, app, http.MethodPut, path, `{"description": "Now described"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)
	updated := decode[courseModels.Course](t, env)
	assert.Equal(t, "Original", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Now described", *updated.Description)
	assert.True(t, updated.CreatedAt.Equal(course.CreatedAt))

	resp, env = call(t, app, http.MethodPatch, path, `{"description": null}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)
	cleared := decode[courseModels.Course](t, env)
	assert.Nil(t, cleared.Description)
	assert.Equal(t, "Original", cleared.Title)

	resp, env = call(t, app, http.MethodPatch, path, `{"title": null}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "title cannot be null!", decode[map[string]string](t, env)["title"])

	resp, _ = call(t, app, http.MethodPut, "/api/v1/courses/999", `{"title": "Missing"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &courseModels.Course{}))
}

func TestLessonAndExerciseUpdate(t *testing.T) {
	app, db := newTestApp(t)
	course := testutil.SeedCourse(t, db, "Course")
	lesson := testutil.SeedLesson(t, db, course.ID, "Lesson")
	exercise := testutil.SeedExercise(t, db, lesson.ID, "Exercise")

	resp, env := call(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/lessons/%d", lesson.ID),
		`{"video": "https://example.com/v.mp4"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)
	l := decode[courseModels.Lesson](t, env)
	require.NotNil(t, l.Video)
	assert.Equal(t, "https://example.com/v.mp4", *l.Video)
	assert.Equal(t, "Lesson", l.Title)

	resp, env = call(t, app, http.MethodPut, fmt.Sprintf("/api/v1/exercises/%d", exercise.ID),
		`{"title": "Renamed", "exercise": "Print hello"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)
	e := decode[courseModels.Exercise](t, env)
	assert.Equal(t, "Renamed", e.Title)
	require.NotNil(t, e.Exercise)
	assert.Equal(t, "Print hello", *e.Exercise)
	assert.Equal(t, lesson.ID, e.LessonID)

	resp, _ = call(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/lessons/%d", lesson.ID), "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Zero(t, testutil.CountRows(t, db, &courseModels.Exercise{}))
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &courseModels.Course{}))
}

func TestAuthGuardsMutations(t *testing.T) {
	const secret = "test-secret"
	app, _ := newTestApp(t, func(cfg *config.Config) { cfg.JWTKey = secret })

	resp, _ := call(t, app, http.MethodPost, "/api/v1/courses", `{"author_id": 1, "title": "Guarded"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/v1/courses", `{"author_id": 1, "title": "Guarded"}`,
		"Authorization", "Bearer not-a-token")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token, err := middleware.GenerateJWT(3, secret, time.Hour)
	require.NoError(t, err)
	resp, env := call(t, app, http.MethodPost, "/api/v1/courses", `{"author_id": 1, "title": "Guarded"}`,
		"Authorization", "Bearer "+token)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)

	resp, _ = call(t, app, http.MethodGet, "/api/v1/courses", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSystemRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := call(t, app, http.MethodGet, "/", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	info := decode[map[string]string](t, env)
	assert.Equal(t, "ok", info["status"])
	assert.NotEmpty(t, info["version"])

	resp, _ = call(t, app, http.MethodGet, "/healthz", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	resp, _ = call(t, app, http.MethodGet, "/healthz", "", fiber.HeaderXRequestID, "req-42")
	assert.Equal(t, "req-42", resp.Header.Get(fiber.HeaderXRequestID))

	resp, env = call(t, app, http.MethodGet, "/api/v1/nothing-here", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Status)
}
