package middleware

import (
	"context"
	"time"

	"courseservice/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DBSession binds a store session to the request context. A non-zero timeout bounds every
// statement the request issues. The context is cancelled when the handler chain returns.
func DBSession(db *gorm.DB, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			ctx    context.Context
			cancel context.CancelFunc
		)
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(c.UserContext(), timeout)
		} else {
			ctx, cancel = context.WithCancel(c.UserContext())
		}
		defer cancel()

		c.SetUserContext(ctx)
		c.Locals("db", db.WithContext(ctx))
		return c.Next()
	}
}

// Session returns the request-scoped store session set by DBSession.
func Session(c *fiber.Ctx) *gorm.DB {
	db, _ := c.Locals("db").(*gorm.DB)
	return db
}

// RequestLogger tags the request with an X-Request-ID and stores a logger carrying it.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, requestID)
		c.Locals("requestId", requestID)
		c.Locals("log", log.With("request_id", requestID))
		return c.Next()
	}
}

// Log returns the request logger, falling back to fallback outside RequestLogger.
func Log(c *fiber.Ctx, fallback *logger.Logger) *logger.Logger {
	if l, ok := c.Locals("log").(*logger.Logger); ok {
		return l
	}
	return fallback
}
