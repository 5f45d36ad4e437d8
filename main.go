package main

import (
	"os"
	"os/signal"
	"syscall"

	"courseservice/config"
	"courseservice/database"
	"courseservice/logger"
	"courseservice/repositories"
	"courseservice/routers"
	"courseservice/utils"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.ConnectDb(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to the database", "error", err)
	}

	app := routers.NewApp(cfg, db, log)

	if cfg.StatsCron != "" {
		scheduler, err := utils.InitializeStatsScheduler(cfg.StatsCron, utils.CatalogCounters{
			Courses:   repositories.NewCourseRepo(db, log),
			Lessons:   repositories.NewLessonRepo(db, log),
			Exercises: repositories.NewExerciseRepo(db, log),
		}, log)
		if err != nil {
			log.Fatal("invalid STATS_CRON", "error", err)
		}
		defer scheduler.Stop()
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		_ = app.Shutdown()
	}()

	log.Info("server is running", "port", cfg.Port, "driver", cfg.DBDriver, "auth", cfg.AuthEnabled())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
