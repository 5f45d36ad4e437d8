package controllers

import (
	"time"

	"courseservice/database"
	"courseservice/logger"
	"courseservice/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const Version = "1.0.0"

type SystemController struct {
	Name string
	DB   *gorm.DB
	Log  *logger.Logger
}

// Info reports the service name and version
func (h *SystemController) Info(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, h.Name+" is running", fiber.Map{
		"name":    h.Name,
		"version": Version,
		"status":  "ok",
	})
}

// Health pings the store
func (h *SystemController) Health(c *fiber.Ctx) error {
	if err := database.Ping(c.UserContext(), h.DB, 2*time.Second); err != nil {
		middleware.Log(c, h.Log).Warn("health check failed", "error", err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Database unavailable!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", fiber.Map{"database": "up"})
}
