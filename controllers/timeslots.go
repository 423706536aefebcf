package controllers

import (
	"strconv"

	"campushub_go/database"
	"campushub_go/middleware"
	"campushub_go/models"
	"campushub_go/services/realtime"
	"campushub_go/services/timetable"
	"campushub_go/utils"

	"github.com/gofiber/fiber/v2"
)

// TimeSlotController manages the configurable named slot table. Slots are
// soft-deleted by flipping IsActive so schedules referencing a slot id keep
// resolving.
type TimeSlotController struct {
	Hub *realtime.Hub
}

// GetTimeSlots returns active slots in display order
func (tc *TimeSlotController) GetTimeSlots(c *fiber.Ctx) error {
	var slots []models.TimeSlotConfig

	query := database.DB.Model(&models.TimeSlotConfig{})
	if c.Query("include_inactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Order("`order` ASC").Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch time slots",
		})
	}

	return c.JSON(fiber.Map{
		"timeSlots": slots,
		"total":     len(slots),
	})
}

type timeSlotRequest struct {
	SlotID    string `json:"slotId" validate:"required,max=100"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Label     string `json:"label" validate:"required,max=100"`
	IsBreak   bool   `json:"isBreak"`
	Order     int    `json:"order" validate:"required,min=1"`
}

// CreateTimeSlot creates a new named slot
func (tc *TimeSlotController) CreateTimeSlot(c *fiber.Ctx) error {
	var req timeSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": errs,
		})
	}

	if err := timetable.ValidateRange(req.StartTime, req.EndTime); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var existing models.TimeSlotConfig
	if err := database.DB.Where("slot_id = ?", req.SlotID).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Time slot with this slot ID already exists",
		})
	}

	slot := models.TimeSlotConfig{
		SlotID:    req.SlotID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Label:     req.Label,
		IsBreak:   req.IsBreak,
		Order:     req.Order,
		IsActive:  true,
	}

	if err := database.DB.Create(&slot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create time slot",
		})
	}

	middleware.LogActivity(c, "CREATE", "time-slots", slot.ID, slot)
	if tc.Hub != nil {
		tc.Hub.Broadcast(realtime.Event{Type: realtime.EventTimeSlotsChanged})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Time slot created successfully",
		"timeSlot": slot,
	})
}

// timeSlotUpdateRequest is a partial slot update. Pointer fields keep a
// sent false (isBreak, isActive) distinguishable from an absent field.
type timeSlotUpdateRequest struct {
	SlotID    *string `json:"slotId"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Label     *string `json:"label"`
	IsBreak   *bool   `json:"isBreak"`
	Order     *int    `json:"order"`
	IsActive  *bool   `json:"isActive"`
}

func (r timeSlotUpdateRequest) changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if r.SlotID != nil {
		changes["slot_id"] = *r.SlotID
	}
	if r.StartTime != nil {
		changes["start_time"] = *r.StartTime
	}
	if r.EndTime != nil {
		changes["end_time"] = *r.EndTime
	}
	if r.Label != nil {
		changes["label"] = *r.Label
	}
	if r.IsBreak != nil {
		changes["is_break"] = *r.IsBreak
	}
	if r.Order != nil {
		changes["order"] = *r.Order
	}
	if r.IsActive != nil {
		changes["is_active"] = *r.IsActive
	}
	return changes
}

// UpdateTimeSlot updates an existing slot
func (tc *TimeSlotController) UpdateTimeSlot(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid time slot ID",
		})
	}

	var slot models.TimeSlotConfig
	if err := database.DB.First(&slot, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Time slot not found",
		})
	}

	var updateData timeSlotUpdateRequest
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	start := slot.StartTime
	end := slot.EndTime
	if updateData.StartTime != nil {
		start = *updateData.StartTime
	}
	if updateData.EndTime != nil {
		end = *updateData.EndTime
	}
	if err := timetable.ValidateRange(start, end); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if updateData.SlotID != nil && *updateData.SlotID != slot.SlotID {
		var existing models.TimeSlotConfig
		if err := database.DB.Where("slot_id = ? AND id != ?", *updateData.SlotID, slot.ID).First(&existing).Error; err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Time slot with this slot ID already exists",
			})
		}
	}

	if changes := updateData.changes(); len(changes) > 0 {
		if err := database.DB.Model(&slot).Updates(changes).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update time slot",
			})
		}
	}
	if err := database.DB.First(&slot, slot.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update time slot",
		})
	}

	middleware.LogActivity(c, "UPDATE", "time-slots", slot.ID, updateData)
	if tc.Hub != nil {
		tc.Hub.Broadcast(realtime.Event{Type: realtime.EventTimeSlotsChanged})
	}

	return c.JSON(fiber.Map{
		"message":  "Time slot updated successfully",
		"timeSlot": slot,
	})
}

// DeleteTimeSlot soft deletes a slot by marking it inactive
func (tc *TimeSlotController) DeleteTimeSlot(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid time slot ID",
		})
	}

	var slot models.TimeSlotConfig
	if err := database.DB.First(&slot, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Time slot not found",
		})
	}

	if err := database.DB.Model(&slot).Update("is_active", false).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete time slot",
		})
	}

	middleware.LogActivity(c, "DELETE", "time-slots", slot.ID, slot)
	if tc.Hub != nil {
		tc.Hub.Broadcast(realtime.Event{Type: realtime.EventTimeSlotsChanged})
	}

	return c.JSON(fiber.Map{
		"message": "Time slot deactivated successfully",
	})
}
