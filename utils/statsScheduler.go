package utils

import (
	"context"
	"time"

	"courseservice/logger"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Counter is implemented by every catalog repository
type Counter interface {
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

// CatalogCounters names the repositories reported by the stats job
type CatalogCounters struct {
	Courses   Counter
	Lessons   Counter
	Exercises Counter
}

const statsTimeout = 30 * time.Second

// ReportCatalogStats logs the number of courses, lessons and exercises.
func ReportCatalogStats(ctx context.Context, counters CatalogCounters, log *logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, statsTimeout)
	defer cancel()

	courses, err := counters.Courses.Count(ctx, nil)
	if err != nil {
		return err
	}
	lessons, err := counters.Lessons.Count(ctx, nil)
	if err != nil {
		return err
	}
	exercises, err := counters.Exercises.Count(ctx, nil)
	if err != nil {
		return err
	}

	log.Info("catalog stats", "courses", courses, "lessons", lessons, "exercises", exercises)
	return nil
}

// InitializeStatsScheduler registers the stats job on schedule and starts the scheduler.
// Stop the returned cron on shutdown.
func InitializeStatsScheduler(schedule string, counters CatalogCounters, log *logger.Logger) (*cron.Cron, error) {
	log = log.With("component", "stats-scheduler")
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(schedule, func() {
		if err := ReportCatalogStats(context.Background(), counters, log); err != nil {
			log.Error("catalog stats failed", "error", err)
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	log.Info("stats scheduler started", "schedule", schedule)
	return c, nil
}
