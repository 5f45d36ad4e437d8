package courseRoutes

import (
	validators "courseservice/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupLessonRoutes(router fiber.Router, h *Handlers, auth fiber.Handler) {
	lessonGroup := router.Group("/lessons")
	lessonID := validators.ParseID("id", "lessonID", "Lesson")

	lessonGroup.Post("/", auth, validators.CreateLesson(), h.Lessons.CreateLesson)
	lessonGroup.Get("/", validators.List(), h.Lessons.ListLessons)
	lessonGroup.Get("/:id", lessonID, h.Lessons.GetLesson)
	lessonGroup.Put("/:id", auth, lessonID, validators.UpdateLesson(), h.Lessons.UpdateLesson)
	lessonGroup.Patch("/:id", auth, lessonID, validators.UpdateLesson(), h.Lessons.UpdateLesson)
	lessonGroup.Delete("/:id", auth, lessonID, h.Lessons.DeleteLesson)

	// Exercises of one lesson
	lessonGroup.Get("/:id/exercises", lessonID, validators.List(), h.Exercises.ListLessonExercises)
}

func SetupExerciseRoutes(router fiber.Router, h *Handlers, auth fiber.Handler) {
	exerciseGroup := router.Group("/exercises")
	exerciseID := validators.ParseID("id", "exerciseID", "Exercise")

	exerciseGroup.Post("/", auth, validators.CreateExercise(), h.Exercises.CreateExercise)
	exerciseGroup.Get("/", validators.List(), h.Exercises.ListExercises)
	exerciseGroup.Get("/:id", exerciseID, h.Exercises.GetExercise)
	exerciseGroup.Put("/:id", auth, exerciseID, validators.UpdateExercise(), h.Exercises.UpdateExercise)
	exerciseGroup.Patch("/:id", auth, exerciseID, validators.UpdateExercise(), h.Exercises.UpdateExercise)
	exerciseGroup.Delete("/:id", auth, exerciseID, h.Exercises.DeleteExercise)
}
