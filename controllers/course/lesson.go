package controllers

import (
	"courseservice/apperrors"
	"courseservice/hierarchy"
	"courseservice/logger"
	"courseservice/middleware"
	"courseservice/repositories"
	courseValidator "courseservice/validators/course"

	"github.com/gofiber/fiber/v2"
)

type LessonController struct {
	Lessons *repositories.LessonRepo
	Checker *hierarchy.Checker
	Log     *logger.Logger
}

// CreateLesson creates a lesson under an existing course
func (h *LessonController) CreateLesson(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonCreate)
	if !ok {
		return invalidRequest(c)
	}
	ctx, db := c.UserContext(), middleware.Session(c)
	in := reqData.Input()

	if err := h.Checker.RequireCourse(ctx, db, in.CourseID); err != nil {
		return respondError(c, h.Log, err, "Failed to create lesson!")
	}

	lesson, err := h.Lessons.Create(ctx, db, in)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to create lesson!")
	}

	middleware.Log(c, h.Log).Info("lesson created", "lesson_id", lesson.ID,
		"course_id", lesson.CourseID, "actor_id", middleware.ActorID(c))
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

func (h *LessonController) ListLessons(c *fiber.Ctx) error {
	page, ok := c.Locals("page").(repositories.Page)
	if !ok {
		page = repositories.DefaultPage()
	}
	ctx, db := c.UserContext(), middleware.Session(c)

	lessons, err := h.Lessons.List(ctx, db, page)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to fetch lessons!")
	}
	total, err := h.Lessons.Count(ctx, db)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to fetch lessons!")
	}

	setTotalCount(c, total)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", lessons)
}

// ListCourseLessons lists the lessons of one course. An unknown course is a 404, not an empty list.
func (h *LessonController) ListCourseLessons(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	page, ok := c.Locals("page").(repositories.Page)
	if !ok {
		page = repositories.DefaultPage()
	}
	ctx, db := c.UserContext(), middleware.Session(c)

	if err := h.Checker.RequireCourse(ctx, db, courseID); err != nil {
		return respondError(c, h.Log, err, "Failed to fetch lessons!")
	}

	lessons, err := h.Lessons.ListByCourse(ctx, db, courseID, page)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to fetch lessons!")
	}
	total, err := h.Lessons.CountByCourse(ctx, db, courseID)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to fetch lessons!")
	}

	setTotalCount(c, total)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", lessons)
}

func (h *LessonController) GetLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(uint)

	lesson, err := h.Lessons.Get(c.UserContext(), middleware.Session(c), lessonID)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to fetch lesson!")
	}
	if lesson == nil {
		return middleware.NotFoundResponse(c, apperrors.NotFound("Lesson", lessonID))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", lesson)
}

func (h *LessonController) UpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(uint)
	patch, ok := c.Locals("validatedLessonPatch").(repositories.Patch)
	if !ok {
		return invalidRequest(c)
	}

	lesson, err := h.Lessons.Update(c.UserContext(), middleware.Session(c), lessonID, patch)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to update lesson!")
	}
	if lesson == nil {
		return middleware.NotFoundResponse(c, apperrors.NotFound("Lesson", lessonID))
	}

	middleware.Log(c, h.Log).Info("lesson updated", "lesson_id", lessonID,
		"fields", patch.Columns(), "actor_id", middleware.ActorID(c))
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson deletes the lesson and its exercises
func (h *LessonController) DeleteLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(uint)

	deleted, err := h.Lessons.Delete(c.UserContext(), middleware.Session(c), lessonID)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to delete lesson!")
	}
	if !deleted {
		return middleware.NotFoundResponse(c, apperrors.NotFound("Lesson", lessonID))
	}

	middleware.Log(c, h.Log).Info("lesson deleted", "lesson_id", lessonID, "actor_id", middleware.ActorID(c))
	return c.SendStatus(fiber.StatusNoContent)
}
