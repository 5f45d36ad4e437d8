package courseValidator

import (
	"strings"

	"courseservice/middleware"
	"courseservice/repositories"

	"github.com/gofiber/fiber/v2"
)

type ExerciseCreate struct {
	LessonID *int64  `json:"lesson_id" validate:"required,gt=0"`
	Title    string  `json:"title" validate:"required,min=3,max=200"`
	Content  *string `json:"content"`
	Exercise *string `json:"exercise"`
}

func (r *ExerciseCreate) Input() repositories.ExerciseInput {
	return repositories.ExerciseInput{
		LessonID: toUint(r.LessonID),
		Title:    r.Title,
		Content:  r.Content,
		Exercise: r.Exercise,
	}
}

type ExerciseUpdate struct {
	Title    *string `json:"title" validate:"omitempty,min=3,max=200"`
	Content  *string `json:"content"`
	Exercise *string `json:"exercise"`
}

// CreateExercise validates an exercise creation request. The lesson itself is checked later.
func CreateExercise() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ExerciseCreate)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if errors := validateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedExercise", reqData)
		return c.Next()
	}
}

// UpdateExercise validates a partial exercise update and stores the column patch
func UpdateExercise() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ExerciseUpdate)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		present, err := presentFields(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		trimPtr(reqData.Title)

		errors := validateStruct(reqData)
		patch, nullErrors := buildPatch(present, map[string]*string{
			"title":    reqData.Title,
			"content":  reqData.Content,
			"exercise": reqData.Exercise,
		}, map[string]bool{"title": true})
		for k, v := range nullErrors {
			errors = setError(errors, k, v)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedExercisePatch", patch)
		return c.Next()
	}
}
