package controllers

import (
	"errors"
	"strconv"

	"courseservice/apperrors"
	"courseservice/logger"
	"courseservice/middleware"

	"github.com/gofiber/fiber/v2"
)

// respondError maps not-found to 404, validation to 422 and anything else to a logged 500.
func respondError(c *fiber.Ctx, log *logger.Logger, err error, failMessage string) error {
	var nf *apperrors.NotFoundError
	if errors.As(err, &nf) {
		return middleware.NotFoundResponse(c, nf)
	}
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		return middleware.ValidationErrorResponse(c, verr.Fields)
	}
	middleware.Log(c, log).Error(failMessage, "error", err, "path", c.Path())
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, failMessage, nil)
}

func setTotalCount(c *fiber.Ctx, n int64) {
	c.Set("X-Total-Count", strconv.FormatInt(n, 10))
}

func invalidRequest(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
}
