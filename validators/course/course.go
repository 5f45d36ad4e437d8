package courseValidator

import (
	"strings"

	"courseservice/middleware"
	"courseservice/repositories"

	"github.com/gofiber/fiber/v2"
)

type CourseCreate struct {
	AuthorID    *int64  `json:"author_id" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Description *string `json:"description"`
}

func (r *CourseCreate) Input() repositories.CourseInput {
	return repositories.CourseInput{
		AuthorID:    toUint(r.AuthorID),
		Title:       r.Title,
		Description: r.Description,
	}
}

type CourseUpdate struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string `json:"description"`
}

// CreateCourse validates a course creation request
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseCreate)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if errors := validateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates a partial course update and stores the column patch
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseUpdate)

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
			"title":       reqData.Title,
			"description": reqData.Description,
		}, map[string]bool{"title": true})
		for k, v := range nullErrors {
			errors = setError(errors, k, v)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCoursePatch", patch)
		return c.Next()
	}
}
