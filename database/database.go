package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"courseservice/config"
	"courseservice/logger"
	courseModels "courseservice/models/course"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// ConnectDb opens the configured store, sets up connection pooling and runs migrations.
func ConnectDb(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	dbLog := log.With("service", "database", "driver", cfg.DBDriver)

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := gormLogger.Warn
	if cfg.DBLogSQL {
		logLevel = gormLogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(logLevel),
	})
	if err != nil {
		dbLog.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("connect to %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		// One long-lived connection keeps in-memory databases alive.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	} else {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(0) // No timeout

	if err := RunMigrations(db, dbLog); err != nil {
		return nil, err
	}

	dbLog.Info("Connected to database")
	return db, nil
}

// RunMigrations creates or alters the catalog tables, including the cascading foreign keys.
func RunMigrations(db *gorm.DB, log *logger.Logger) error {
	log.Info("Running Migrations...")

	err := db.AutoMigrate(
		&courseModels.Course{},
		&courseModels.Lesson{},
		&courseModels.Exercise{},
	)
	if err != nil {
		log.Error("Migration failed", "error", err)
		return fmt.Errorf("migrate: %w", err)
	}

	log.Info("Migrations completed successfully.")
	return nil
}

// Ping checks that the store answers within the given timeout.
func Ping(ctx context.Context, db *gorm.DB, timeout time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres", "postgresql":
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = fmt.Sprintf(
				"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
				cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
			)
		}
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = fmt.Sprintf(
				"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
			)
		}
		return mysql.Open(dsn), nil
	case "sqlite":
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = cfg.DBName
			if !strings.HasSuffix(dsn, ".db") {
				dsn += ".db"
			}
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
