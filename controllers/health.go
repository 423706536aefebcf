package controllers

import (
	"campushub_go/database"

	"github.com/gofiber/fiber/v2"
)

// HealthController reports service and dependency status.
type HealthController struct{}

// GetHealthStatus checks database and Redis connectivity
func (hc *HealthController) GetHealthStatus(c *fiber.Ctx) error {
	status := "ok"
	code := fiber.StatusOK

	dbStatus := "ok"
	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unavailable"
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	redisStatus := "ok"
	if client := database.GetRedisClient(); client == nil {
		// Logging degrades to direct database writes without Redis
		redisStatus = "unavailable"
		if status == "ok" {
			status = "degraded"
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"service": "CampusHub API",
		"version": "1.0.0",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}
