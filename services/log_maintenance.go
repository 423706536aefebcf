package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"campushub_go/config"
	"campushub_go/database"
	"campushub_go/models"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// LogMaintenanceService flushes Redis-cached activity logs to the database
// and prunes rows older than the configured retention window.
type LogMaintenanceService struct {
	cron *cron.Cron
}

func NewLogMaintenanceService() *LogMaintenanceService {
	return &LogMaintenanceService{cron: cron.New()}
}

// Start schedules the hourly flush and the daily prune, running a flush
// immediately so a restart never strands cached logs for an hour.
func (lms *LogMaintenanceService) Start() {
	go func() {
		if err := lms.FlushCachedLogs(); err != nil {
			logrus.WithError(err).Warn("initial FlushCachedLogs failed")
		}
	}()

	if _, err := lms.cron.AddFunc("@hourly", func() {
		if err := lms.FlushCachedLogs(); err != nil {
			logrus.WithError(err).Warn("periodic FlushCachedLogs failed")
		}
	}); err != nil {
		logrus.WithError(err).Error("failed to schedule log flush")
	}

	if _, err := lms.cron.AddFunc("@daily", func() {
		if err := lms.PruneOldLogs(config.AppConfig.LogRetentionDays); err != nil {
			logrus.WithError(err).Warn("periodic PruneOldLogs failed")
		}
	}); err != nil {
		logrus.WithError(err).Error("failed to schedule log prune")
	}

	lms.cron.Start()
}

// Stop halts the scheduler, letting in-flight jobs finish.
func (lms *LogMaintenanceService) Stop() {
	ctx := lms.cron.Stop()
	<-ctx.Done()
}

// FlushCachedLogs moves logs from the Redis queue to the database.
func (lms *LogMaintenanceService) FlushCachedLogs() error {
	redisClient := database.GetRedisClient()
	if redisClient == nil {
		return fmt.Errorf("redis client not available")
	}

	ctx := context.Background()

	// Everything queued up to now is eligible
	queued, err := redisClient.ZRangeByScore(ctx, "logs:queue", &redis.ZRangeBy{
		Min: "0",
		Max: fmt.Sprintf("%d", time.Now().Unix()),
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to read log queue: %v", err)
	}

	if len(queued) == 0 {
		return nil
	}
	logrus.Infof("Flushing %d cached logs", len(queued))

	var processedCount int
	var errorCount int

	for _, logKey := range queued {
		logData, err := redisClient.Get(ctx, logKey).Result()
		if err != nil {
			if err != redis.Nil {
				logrus.WithError(err).Errorf("Failed to get log data for key: %s", logKey)
				errorCount++
			}
			// Expired entries still need their queue member removed
			redisClient.ZRem(ctx, "logs:queue", logKey)
			continue
		}

		var activityLog models.ActivityLog
		if err := json.Unmarshal([]byte(logData), &activityLog); err != nil {
			logrus.WithError(err).Errorf("Failed to unmarshal log data for key: %s", logKey)
			errorCount++
			continue
		}

		if err := database.DB.Create(&activityLog).Error; err != nil {
			logrus.WithError(err).Error("Failed to save log to database")
			errorCount++
			continue
		}

		pipeline := redisClient.Pipeline()
		pipeline.Del(ctx, logKey)
		pipeline.ZRem(ctx, "logs:queue", logKey)
		if _, err := pipeline.Exec(ctx); err != nil {
			logrus.WithError(err).Errorf("Failed to remove log from cache: %s", logKey)
		}

		processedCount++
	}

	logrus.Infof("Flushed %d logs to database, %d errors", processedCount, errorCount)
	return nil
}

// PruneOldLogs deletes activity logs older than the retention window.
func (lms *LogMaintenanceService) PruneOldLogs(retentionDays int) error {
	if retentionDays < 7 {
		return fmt.Errorf("minimum retention is 7 days")
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := database.DB.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&models.ActivityLog{})
	if result.Error != nil {
		return fmt.Errorf("failed to prune logs: %v", result.Error)
	}

	if result.RowsAffected > 0 {
		logrus.Infof("Pruned %d activity logs older than %s", result.RowsAffected, cutoff.Format("2006-01-02"))
	}
	return nil
}
