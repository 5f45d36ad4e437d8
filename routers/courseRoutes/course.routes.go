package courseRoutes

import (
	controllers "courseservice/controllers/course"
	validators "courseservice/validators/course"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles the controllers the catalog routes dispatch to
type Handlers struct {
	Courses   *controllers.CourseController
	Lessons   *controllers.LessonController
	Exercises *controllers.ExerciseController
}

// SetupCourseRoutes sets up the course routes. auth guards the mutating ones.
func SetupCourseRoutes(router fiber.Router, h *Handlers, auth fiber.Handler) {
	courseGroup := router.Group("/courses")
	courseID := validators.ParseID("id", "courseID", "Course")

	courseGroup.Post("/", auth, validators.CreateCourse(), h.Courses.CreateCourse)
	courseGroup.Get("/", validators.List(), h.Courses.ListCourses)
	courseGroup.Get("/:id", courseID, h.Courses.GetCourse)
	courseGroup.Put("/:id", auth, courseID, validators.UpdateCourse(), h.Courses.UpdateCourse)
	courseGroup.Patch("/:id", auth, courseID, validators.UpdateCourse(), h.Courses.UpdateCourse)
	courseGroup.Delete("/:id", auth, courseID, h.Courses.DeleteCourse)

	// Lessons of one course
	courseGroup.Get("/:id/lessons", courseID, validators.List(), h.Lessons.ListCourseLessons)
}
