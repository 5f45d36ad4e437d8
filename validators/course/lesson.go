package courseValidator

import (
	"strings"

	"courseservice/middleware"
	"courseservice/repositories"

	"github.com/gofiber/fiber/v2"
)

type LessonCreate struct {
	CourseID *int64  `json:"course_id" validate:"required,gt=0"`
	Title    string  `json:"title" validate:"required,min=3,max=200"`
	Content  *string `json:"content"`
	Video    *string `json:"video" validate:"omitempty,max=500"`
}

func (r *LessonCreate) Input() repositories.LessonInput {
	return repositories.LessonInput{
		CourseID: toUint(r.CourseID),
		Title:    r.Title,
		Content:  r.Content,
		Video:    r.Video,
	}
}

type LessonUpdate struct {
	Title   *string `json:"title" validate:"omitempty,min=3,max=200"`
	Content *string `json:"content"`
	Video   *string `json:"video" validate:"omitempty,max=500"`
}

// CreateLesson validates a lesson creation request. The course itself is checked later.
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonCreate)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		trimPtr(reqData.Video)

		if errors := validateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson validates a partial lesson update and stores the column patch
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonUpdate)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		present, err := presentFields(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		trimPtr(reqData.Title)
		trimPtr(reqData.Video)

		errors := validateStruct(reqData)
		patch, nullErrors := buildPatch(present, map[string]*string{
			"title":   reqData.Title,
			"content": reqData.Content,
			"video":   reqData.Video,
		}, map[string]bool{"title": true})
		for k, v := range nullErrors {
			errors = setError(errors, k, v)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLessonPatch", patch)
		return c.Next()
	}
}
