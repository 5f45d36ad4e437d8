package controllers

import (
	"courseservice/apperrors"
	"courseservice/logger"
	"courseservice/middleware"
	"courseservice/repositories"
	courseValidator "courseservice/validators/course"

	"github.com/gofiber/fiber/v2"
)

type CourseController struct {
	Courses *repositories.CourseRepo
	Log     *logger.Logger
}

// CreateCourse creates a course from the validated body
func (h *CourseController) CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseCreate)
	if !ok {
		return invalidRequest(c)
	}

	course, err := h.Courses.Create(c.UserContext(), middleware.Session(c), reqData.Input())
	if err != nil {
		return respondError(c, h.Log, err, "Failed to create course!")
	}

	middleware.Log(c, h.Log).Info("course created", "course_id", course.ID, "actor_id", middleware.ActorID(c))
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// ListCourses returns a page of courses ordered by id
func (h *CourseController) ListCourses(c *fiber.Ctx) error {
	page, ok := c.Locals("page").(repositories.Page)
	if !ok {
		page = repositories.DefaultPage()
	}
	db := middleware.Session(c)

	courses, err := h.Courses.List(c.UserContext(), db, page)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to fetch courses!")
	}
	total, err := h.Courses.Count(c.UserContext(), db)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to fetch courses!")
	}

	setTotalCount(c, total)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetCourse returns one course
func (h *CourseController) GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	course, err := h.Courses.Get(c.UserContext(), middleware.Session(c), courseID)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to fetch course!")
	}
	if course == nil {
		return middleware.NotFoundResponse(c, apperrors.NotFound("Course", courseID))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// UpdateCourse applies the validated partial update
func (h *CourseController) UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	patch, ok := c.Locals("validatedCoursePatch").(repositories.Patch)
	if !ok {
		return invalidRequest(c)
	}

	course, err := h.Courses.Update(c.UserContext(), middleware.Session(c), courseID, patch)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to update course!")
	}
	if course == nil {
		return middleware.NotFoundResponse(c, apperrors.NotFound("Course", courseID))
	}

	middleware.Log(c, h.Log).Info("course updated", "course_id", courseID,
		"fields", patch.Columns(), "actor_id", middleware.ActorID(c))
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse deletes the course together with its lessons and exercises
func (h *CourseController) DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	deleted, err := h.Courses.Delete(c.UserContext(), middleware.Session(c), courseID)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to delete course!")
	}
	if !deleted {
		return middleware.NotFoundResponse(c, apperrors.NotFound("Course", courseID))
	}

	middleware.Log(c, h.Log).Info("course deleted", "course_id", courseID, "actor_id", middleware.ActorID(c))
	return c.SendStatus(fiber.StatusNoContent)
}
