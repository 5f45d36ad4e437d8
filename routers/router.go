package routers

import (
	"errors"

	"courseservice/config"
	controllers "courseservice/controllers/course"
	"courseservice/hierarchy"
	"courseservice/logger"
	"courseservice/middleware"
	"courseservice/repositories"
	"courseservice/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// NewApp builds the HTTP application with every route mounted
func NewApp(cfg *config.Config, db *gorm.DB, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.ProjectName,
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization,X-Request-ID",
	}))

	if cfg.Env != "test" {
		app.Use(fiberLogger.New(fiberLogger.Config{
			Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency} ${respHeader:X-Request-ID}\n",
		}))
	}
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.DBSession(db, cfg.RequestTimeout))

	courses := repositories.NewCourseRepo(db, log)
	lessons := repositories.NewLessonRepo(db, log)
	exercises := repositories.NewExerciseRepo(db, log)
	checker := hierarchy.NewChecker(courses, lessons)

	handlers := &courseRoutes.Handlers{
		Courses:   &controllers.CourseController{Courses: courses, Log: log},
		Lessons:   &controllers.LessonController{Lessons: lessons, Checker: checker, Log: log},
		Exercises: &controllers.ExerciseController{Exercises: exercises, Checker: checker, Log: log},
	}
	system := &controllers.SystemController{Name: cfg.ProjectName, DB: db, Log: log}

	app.Get("/", system.Info)
	app.Get("/healthz", system.Health)

	auth := middleware.JWTMiddleware(cfg.JWTKey)
	api := app.Group("/api/v1")
	courseRoutes.SetupCourseRoutes(api, handlers, auth)
	courseRoutes.SetupLessonRoutes(api, handlers, auth)
	courseRoutes.SetupExerciseRoutes(api, handlers, auth)

	return app
}

// errorHandler renders unhandled errors in the response envelope
func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error!"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			middleware.Log(c, log).Error("unhandled error", "error", err, "path", c.Path())
		}

		return middleware.JsonResponse(c, code, false, message, nil)
	}
}
