package controllers

import (
	"errors"
	"strconv"

	"campushub_go/middleware"
	"campushub_go/models"
	"campushub_go/services"
	"campushub_go/services/realtime"
	"campushub_go/services/timetable"
	"campushub_go/utils"

	"github.com/gofiber/fiber/v2"
)

// ScheduleController exposes the timetable wire surface. Display state
// (grid, conflicts) is computed by the timetable package; persistence by
// the schedule service.
type ScheduleController struct {
	Schedules *services.ScheduleService
	Export    *services.TimetableExportService
	Hub       *realtime.Hub
}

func NewScheduleController(hub *realtime.Hub) *ScheduleController {
	schedules := services.NewScheduleService()
	return &ScheduleController{
		Schedules: schedules,
		Export:    services.NewTimetableExportService(schedules),
		Hub:       hub,
	}
}

// parseScope reads the scope fields from query parameters
func parseScope(c *fiber.Ctx) (services.Scope, error) {
	semester, err := strconv.Atoi(c.Query("semester"))
	if err != nil {
		return services.Scope{}, errors.New("semester is required and must be a number")
	}
	departmentID, err := strconv.ParseUint(c.Query("departmentId"), 10, 32)
	if err != nil {
		return services.Scope{}, errors.New("departmentId is required and must be a number")
	}

	scope := services.Scope{
		AcademicYear:  c.Query("academicYear"),
		Semester:      semester,
		DepartmentID:  uint(departmentID),
		ClassSection:  c.Query("classSection"),
		TimetableType: c.Query("timetableType"),
	}
	if errs := utils.ValidateStruct(scope); errs != nil {
		return services.Scope{}, errors.New("academicYear, semester, departmentId and classSection are required")
	}
	return scope, nil
}

func (sc *ScheduleController) scopeKey(s models.Schedule) string {
	return realtime.ScopeKey(s.AcademicYear, s.Semester, s.DepartmentID, s.ClassSection)
}

// GetSchedules returns the entries for a scope with display names joined in
func (sc *ScheduleController) GetSchedules(c *fiber.Ctx) error {
	scope, err := parseScope(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	entries, err := sc.Schedules.GetByScope(scope)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch schedules",
		})
	}

	return c.JSON(fiber.Map{
		"schedules": entries,
		"total":     len(entries),
	})
}

// GetSchedule returns one entry by id
func (sc *ScheduleController) GetSchedule(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid schedule ID",
		})
	}

	schedule, err := sc.Schedules.GetByID(uint(id))
	if errors.Is(err, services.ErrScheduleNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Schedule not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch schedule",
		})
	}

	return c.JSON(fiber.Map{
		"schedule": utils.ToEntry(*schedule),
	})
}

type checkConflictsRequest struct {
	AcademicYear string `json:"academicYear" validate:"required"`
	Semester     int    `json:"semester" validate:"required,min=1,max=8"`
	DepartmentID uint   `json:"departmentId" validate:"required"`
	ClassSection string `json:"classSection" validate:"required"`
	Day          string `json:"day" validate:"required"`
	StartTime    string `json:"startTime" validate:"required"`
	EndTime      string `json:"endTime" validate:"required"`
	TeacherID    uint   `json:"teacherId"`
	RoomID       string `json:"roomId"`
	ScheduleID   uint   `json:"scheduleId"` // exclude when editing
}

// CheckConflicts runs the advisory pre-submit conflict check. A non-empty
// report is a normal response, not an error; the write path does not
// re-check.
func (sc *ScheduleController) CheckConflicts(c *fiber.Ctx) error {
	var req checkConflictsRequest
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

	if !timetable.DayOfWeek(req.Day).IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid day",
		})
	}
	if err := timetable.ValidateRange(req.StartTime, req.EndTime); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	candidate := timetable.Candidate{
		Day:          timetable.DayOfWeek(req.Day),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		TeacherID:    req.TeacherID,
		RoomID:       req.RoomID,
		DepartmentID: req.DepartmentID,
		ClassSection: req.ClassSection,
	}

	conflicts, err := sc.Schedules.CheckConflicts(candidate, req.AcademicYear, req.Semester, req.ScheduleID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check conflicts",
		})
	}

	return c.JSON(fiber.Map{
		"conflicts":    conflicts,
		"hasConflicts": len(conflicts) > 0,
	})
}

// CreateSchedule persists a new entry and notifies scope subscribers
func (sc *ScheduleController) CreateSchedule(c *fiber.Ctx) error {
	var schedule models.Schedule
	if err := c.BodyParser(&schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if schedule.AcademicYear == "" || schedule.ClassSection == "" || schedule.DepartmentID == 0 ||
		schedule.SubjectID == 0 || schedule.TeacherID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "academicYear, classSection, departmentId, subjectId and teacherId are required",
		})
	}
	if !utils.IsValidSemester(schedule.Semester) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Semester must be between 1 and 8",
		})
	}

	if err := sc.Schedules.Create(&schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	middleware.LogActivity(c, "CREATE", "schedules", schedule.ID, schedule)
	sc.Hub.BroadcastToScope(sc.scopeKey(schedule), realtime.Event{
		Type: realtime.EventScheduleCreated,
		Data: utils.ToEntry(schedule),
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Schedule created successfully",
		"schedule": utils.ToEntry(schedule),
	})
}

// UpdateSchedule updates an entry and notifies scope subscribers
func (sc *ScheduleController) UpdateSchedule(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid schedule ID",
		})
	}

	var updates services.ScheduleUpdate
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	schedule, err := sc.Schedules.Update(uint(id), updates)
	if errors.Is(err, services.ErrScheduleNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Schedule not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	middleware.LogActivity(c, "UPDATE", "schedules", schedule.ID, updates)
	sc.Hub.BroadcastToScope(sc.scopeKey(*schedule), realtime.Event{
		Type: realtime.EventScheduleUpdated,
		Data: utils.ToEntry(*schedule),
	})

	return c.JSON(fiber.Map{
		"message":  "Schedule updated successfully",
		"schedule": utils.ToEntry(*schedule),
	})
}

// DeleteSchedule removes one entry
func (sc *ScheduleController) DeleteSchedule(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid schedule ID",
		})
	}

	schedule, err := sc.Schedules.GetByID(uint(id))
	if errors.Is(err, services.ErrScheduleNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Schedule not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch schedule",
		})
	}

	if err := sc.Schedules.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete schedule",
		})
	}

	middleware.LogActivity(c, "DELETE", "schedules", schedule.ID, schedule)
	sc.Hub.BroadcastToScope(sc.scopeKey(*schedule), realtime.Event{
		Type: realtime.EventScheduleDeleted,
		Data: fiber.Map{"id": schedule.ID},
	})

	return c.JSON(fiber.Map{
		"message": "Schedule deleted successfully",
	})
}

type copyScheduleRequest struct {
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// CopySchedule duplicates a dragged entry onto another slot. The copy keeps
// subject and teacher but drops the room; occupied targets are rejected.
func (sc *ScheduleController) CopySchedule(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid schedule ID",
		})
	}

	var req copyScheduleRequest
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
	if !timetable.DayOfWeek(req.Day).IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid day",
		})
	}
	if err := timetable.ValidateRange(req.StartTime, req.EndTime); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	source, err := sc.Schedules.GetByID(uint(id))
	if errors.Is(err, services.ErrScheduleNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Schedule not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch schedule",
		})
	}

	scope := services.Scope{
		AcademicYear: source.AcademicYear,
		Semester:     source.Semester,
		DepartmentID: source.DepartmentID,
		ClassSection: source.ClassSection,
	}
	entries, err := sc.Schedules.GetByScope(scope)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch schedules",
		})
	}

	target := timetable.Interval{Start: req.StartTime, End: req.EndTime}
	copied, err := timetable.BuildCopy(utils.ToEntry(*source), timetable.DayOfWeek(req.Day), target, entries)
	if errors.Is(err, timetable.ErrSameSlot) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Target slot is the same as the source slot",
		})
	}
	if errors.Is(err, timetable.ErrSlotOccupied) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Target slot already has a class",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to copy schedule",
		})
	}

	schedule := utils.FromEntry(copied)
	schedule.TimetableType = source.TimetableType
	if err := sc.Schedules.Create(&schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	middleware.LogActivity(c, "COPY", "schedules", schedule.ID, req)
	sc.Hub.BroadcastToScope(sc.scopeKey(schedule), realtime.Event{
		Type: realtime.EventScheduleCreated,
		Data: utils.ToEntry(schedule),
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Schedule copied successfully",
		"schedule": utils.ToEntry(schedule),
	})
}

// PublishSchedules transitions a scope's DRAFT rows to PUBLISHED. Zero
// matching rows is a 404, not a silent success.
func (sc *ScheduleController) PublishSchedules(c *fiber.Ctx) error {
	var scope services.Scope
	if err := c.BodyParser(&scope); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if errs := utils.ValidateStruct(scope); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": errs,
		})
	}

	count, err := sc.Schedules.Publish(scope)
	if errors.Is(err, services.ErrNoDraftSchedules) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No draft schedules found for this scope",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to publish schedules",
		})
	}

	middleware.LogActivity(c, "PUBLISH", "schedules", 0, scope)
	sc.Hub.BroadcastToScope(
		realtime.ScopeKey(scope.AcademicYear, scope.Semester, scope.DepartmentID, scope.ClassSection),
		realtime.Event{Type: realtime.EventSchedulePublished, Data: fiber.Map{"published": count}},
	)

	return c.JSON(fiber.Map{
		"message":   "Schedules published successfully",
		"published": count,
	})
}

// BulkDeleteSchedules removes every entry matching the scope exactly
func (sc *ScheduleController) BulkDeleteSchedules(c *fiber.Ctx) error {
	var scope services.Scope
	if err := c.BodyParser(&scope); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if errs := utils.ValidateStruct(scope); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": errs,
		})
	}

	count, err := sc.Schedules.BulkDelete(scope)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete schedules",
		})
	}

	middleware.LogActivity(c, "BULK_DELETE", "schedules", 0, scope)
	sc.Hub.BroadcastToScope(
		realtime.ScopeKey(scope.AcademicYear, scope.Semester, scope.DepartmentID, scope.ClassSection),
		realtime.Event{Type: realtime.EventScheduleDeleted, Data: fiber.Map{"deleted": count}},
	)

	return c.JSON(fiber.Map{
		"message": "Schedules deleted successfully",
		"deleted": count,
	})
}

// GetGrid returns the composed display grid for a scope
func (sc *ScheduleController) GetGrid(c *fiber.Ctx) error {
	scope, err := parseScope(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	rows, err := sc.Schedules.Grid(scope)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compose grid",
		})
	}

	return c.JSON(fiber.Map{
		"days": timetable.Days,
		"grid": rows,
	})
}

// ExportTimetable streams the scope's timetable as an XLSX workbook
func (sc *ScheduleController) ExportTimetable(c *fiber.Ctx) error {
	scope, err := parseScope(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	buf, filename, err := sc.Export.ExportXLSX(scope)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export timetable",
		})
	}

	middleware.LogActivity(c, "EXPORT", "schedules", 0, scope)

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
