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

type ExerciseController struct {
	Exercises *repositories.ExerciseRepo
	Checker   *hierarchy.Checker
	Log       *logger.Logger
}

// CreateExercise creates an exercise under an existing lesson
func (h *ExerciseController) CreateExercise(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedExercise").(*courseValidator.ExerciseCreate)
	if !ok {
		return invalidRequest(c)
	}
	ctx, db := c.UserContext(), middleware.Session(c)
	in := reqData.Input()

	if err := h.Checker.RequireLesson(ctx, db, in.LessonID); err != nil {
		return respondError(c, h.Log, err, "Failed to create exercise!")
	}

	exercise, err := h.Exercises.Create(ctx, db, in)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to create exercise!")
	}

	middleware.Log(c, h.Log).Info("exercise created", "exercise_id", exercise.ID,
		"lesson_id", exercise.LessonID, "actor_id", middleware.ActorID(c))
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Exercise created successfully!", exercise)
}

func (h *ExerciseController) ListExercises(c *fiber.Ctx) error {
	page, ok := c.Locals("page").(repositories.Page)
	if !ok {
		page = repositories.DefaultPage()
	}
	ctx, db := c.UserContext(), middleware.Session(c)

	exercises, err := h.Exercises.List(ctx, db, page)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to fetch exercises!")
	}
	total, err := h.Exercises.Count(ctx, db)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to fetch exercises!")
	}

	setTotalCount(c, total)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exercises fetched successfully!", exercises)
}

func (h *ExerciseController) ListLessonExercises(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(uint)
	page, ok := c.Locals("page").(repositories.Page)
	if !ok {
		page = repositories.DefaultPage()
	}
	ctx, db := c.UserContext(), middleware.Session(c)

	if err := h.Checker.RequireLesson(ctx, db, lessonID); err != nil {
		return respondError(c, h.Log, err, "Failed to fetch exercises!")
	}

	exercises, err := h.Exercises.ListByLesson(ctx, db, lessonID, page)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to fetch exercises!")
	}
	total, err := h.Exercises.CountByLesson(ctx, db, lessonID)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to fetch exercises!")
	}

	setTotalCount(c, total)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exercises fetched successfully!", exercises)
}

func (h *ExerciseController) GetExercise(c *fiber.Ctx) error {
	exerciseID := c.Locals("exerciseID").(uint)

	exercise, err := h.Exercises.Get(c.UserContext(), middleware.Session(c), exerciseID)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to fetch exercise!")
	}
	if exercise == nil {
		return middleware.NotFoundResponse(c, apperrors.NotFound("Exercise", exerciseID))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exercise fetched successfully!", exercise)
}

func (h *ExerciseController) UpdateExercise(c *fiber.Ctx) error {
	exerciseID := c.Locals("exerciseID").(uint)
	patch, ok := c.Locals("validatedExercisePatch").(repositories.Patch)
	if !ok {
		return invalidRequest(c)
	}

	exercise, err := h.Exercises.Update(c.UserContext(), middleware.Session(c), exerciseID, patch)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to update exercise!")
	}
	if exercise == nil {
		return middleware.NotFoundResponse(c, apperrors.NotFound("Exercise", exerciseID))
	}

	middleware.Log(c, h.Log).Info("exercise updated", "exercise_id", exerciseID,
		"fields", patch.Columns(), "actor_id", middleware.ActorID(c))
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exercise updated successfully!", exercise)
}

func (h *ExerciseController) DeleteExercise(c *fiber.Ctx) error {
	exerciseID := c.Locals("exerciseID").(uint)

	deleted, err := h.Exercises.Delete(c.UserContext(), middleware.Session(c), exerciseID)
	if err != nil {
		return respondError(c, h.Log, err, "Failed to delete exercise!")
	}
	if !deleted {
		return middleware.NotFoundResponse(c, apperrors.NotFound("Exercise", exerciseID))
	}

	middleware.Log(c, h.Log).Info("exercise deleted", "exercise_id", exerciseID, "actor_id", middleware.ActorID(c))
	return c.SendStatus(fiber.StatusNoContent)
}
