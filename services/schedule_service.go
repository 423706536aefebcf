package services

import (
	"errors"
	"fmt"

	"campushub_go/database"
	"campushub_go/models"
	"campushub_go/services/timetable"
	"campushub_go/utils"

	"gorm.io/gorm"
)

// Scope is the query key every schedule read and bulk operation uses.
type Scope struct {
	AcademicYear  string `json:"academicYear" validate:"required"`
	Semester      int    `json:"semester" validate:"required,min=1,max=8"`
	DepartmentID  uint   `json:"departmentId" validate:"required"`
	ClassSection  string `json:"classSection" validate:"required"`
	TimetableType string `json:"timetableType"`
}

var (
	// ErrScheduleNotFound is returned for ids and scopes with no matching rows.
	ErrScheduleNotFound = errors.New("schedule not found")
	// ErrNoDraftSchedules is returned when publish matches zero DRAFT rows.
	ErrNoDraftSchedules = errors.New("no draft schedules found for this scope")
)

// ScheduleService owns persistence for timetable entries. Conflict checking
// and grid composition stay in the timetable package; this layer fetches the
// comparison sets and applies writes.
type ScheduleService struct{}

func NewScheduleService() *ScheduleService {
	return &ScheduleService{}
}

func (s *ScheduleService) scopeQuery(scope Scope) *gorm.DB {
	q := database.DB.Model(&models.Schedule{}).
		Where("academic_year = ? AND semester = ? AND department_id = ? AND class_section = ?",
			scope.AcademicYear, scope.Semester, scope.DepartmentID, scope.ClassSection)
	if scope.TimetableType != "" {
		q = q.Where("timetable_type = ?", scope.TimetableType)
	}
	return q
}

// GetByScope returns the scope's entries with display names joined in.
func (s *ScheduleService) GetByScope(scope Scope) ([]timetable.Entry, error) {
	var schedules []models.Schedule
	err := s.scopeQuery(scope).
		Preload("Subject").
		Preload("Teacher").
		Preload("Department").
		Order("FIELD(day, 'MONDAY', 'TUESDAY', 'WEDNESDAY', 'THURSDAY', 'FRIDAY', 'SATURDAY'), start_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, fmt.Errorf("fetch schedules: %w", err)
	}
	return utils.ToEntries(schedules), nil
}

// GetByID returns one entry with display names.
func (s *ScheduleService) GetByID(id uint) (*models.Schedule, error) {
	var schedule models.Schedule
	err := database.DB.
		Preload("Subject").
		Preload("Teacher").
		Preload("Department").
		First(&schedule, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// CheckConflicts fetches the candidate's same (year, semester, day) bucket,
// excludes the entry being edited, and runs the pure detector. The check is
// advisory: nothing stops a write that skips it.
func (s *ScheduleService) CheckConflicts(candidate timetable.Candidate, academicYear string, semester int, excludeID uint) ([]timetable.Conflict, error) {
	var schedules []models.Schedule
	q := database.DB.
		Where("academic_year = ? AND semester = ? AND day = ?", academicYear, semester, string(candidate.Day)).
		Preload("Subject").
		Preload("Teacher")
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	if err := q.Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("fetch comparison set: %w", err)
	}

	return timetable.CheckConflicts(candidate, utils.ToEntries(schedules)), nil
}

// applyDefaults fills the optional fields the dashboard omits.
func applyDefaults(schedule *models.Schedule) {
	if schedule.RoomID == "" {
		schedule.RoomID = "TBA"
	}
	if schedule.SessionType == "" {
		schedule.SessionType = "LECTURE"
	}
	if schedule.Duration == 0 {
		schedule.Duration = 1
	}
	if schedule.Status == "" {
		schedule.Status = "DRAFT"
	}
	if schedule.TimetableType == "" {
		schedule.TimetableType = "REGULAR"
	}
}

// Create validates times and persists a new entry. Conflict checking is the
// caller's responsibility via CheckConflicts before submitting.
func (s *ScheduleService) Create(schedule *models.Schedule) error {
	if !timetable.DayOfWeek(schedule.Day).IsValid() {
		return fmt.Errorf("invalid day: %s", schedule.Day)
	}
	if err := timetable.ValidateRange(schedule.StartTime, schedule.EndTime); err != nil {
		return err
	}
	applyDefaults(schedule)

	if err := database.DB.Create(schedule).Error; err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}

	return database.DB.
		Preload("Subject").
		Preload("Teacher").
		Preload("Department").
		First(schedule, schedule.ID).Error
}

// ScheduleUpdate carries a partial update. Pointer fields distinguish
// "not sent" from a sent zero value, so isMandatory:false and
// repeatWeekly:false persist instead of being skipped.
type ScheduleUpdate struct {
	AcademicYear  *string `json:"academicYear"`
	Semester      *int    `json:"semester"`
	DepartmentID  *uint   `json:"departmentId"`
	ClassSection  *string `json:"classSection"`
	Day           *string `json:"day"`
	TimeSlotID    *string `json:"timeSlotId"`
	StartTime     *string `json:"startTime"`
	EndTime       *string `json:"endTime"`
	SubjectID     *uint   `json:"subjectId"`
	TeacherID     *uint   `json:"teacherId"`
	RoomID        *string `json:"roomId"`
	SessionType   *string `json:"sessionType"`
	Duration      *int    `json:"duration"`
	IsMandatory   *bool   `json:"isMandatory"`
	Notes         *string `json:"notes"`
	RepeatWeekly  *bool   `json:"repeatWeekly"`
	Status        *string `json:"status"`
	TimetableType *string `json:"timetableType"`
}

// Changes returns only the fields present in the request, keyed by column.
func (u ScheduleUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	set := func(column string, value interface{}) {
		changes[column] = value
	}
	if u.AcademicYear != nil {
		set("academic_year", *u.AcademicYear)
	}
	if u.Semester != nil {
		set("semester", *u.Semester)
	}
	if u.DepartmentID != nil {
		set("department_id", *u.DepartmentID)
	}
	if u.ClassSection != nil {
		set("class_section", *u.ClassSection)
	}
	if u.Day != nil {
		set("day", *u.Day)
	}
	if u.TimeSlotID != nil {
		set("time_slot_id", *u.TimeSlotID)
	}
	if u.StartTime != nil {
		set("start_time", *u.StartTime)
	}
	if u.EndTime != nil {
		set("end_time", *u.EndTime)
	}
	if u.SubjectID != nil {
		set("subject_id", *u.SubjectID)
	}
	if u.TeacherID != nil {
		set("teacher_id", *u.TeacherID)
	}
	if u.RoomID != nil {
		set("room_id", *u.RoomID)
	}
	if u.SessionType != nil {
		set("session_type", *u.SessionType)
	}
	if u.Duration != nil {
		set("duration", *u.Duration)
	}
	if u.IsMandatory != nil {
		set("is_mandatory", *u.IsMandatory)
	}
	if u.Notes != nil {
		set("notes", *u.Notes)
	}
	if u.RepeatWeekly != nil {
		set("repeat_weekly", *u.RepeatWeekly)
	}
	if u.Status != nil {
		set("status", *u.Status)
	}
	if u.TimetableType != nil {
		set("timetable_type", *u.TimetableType)
	}
	return changes
}

// Update applies the present fields of a partial update to an entry.
func (s *ScheduleService) Update(id uint, updates ScheduleUpdate) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := database.DB.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	if updates.Day != nil && !timetable.DayOfWeek(*updates.Day).IsValid() {
		return nil, fmt.Errorf("invalid day: %s", *updates.Day)
	}
	start := schedule.StartTime
	end := schedule.EndTime
	if updates.StartTime != nil {
		start = *updates.StartTime
	}
	if updates.EndTime != nil {
		end = *updates.EndTime
	}
	if err := timetable.ValidateRange(start, end); err != nil {
		return nil, err
	}

	if changes := updates.Changes(); len(changes) > 0 {
		if err := database.DB.Model(&schedule).Updates(changes).Error; err != nil {
			return nil, fmt.Errorf("update schedule: %w", err)
		}
	}

	err := database.DB.
		Preload("Subject").
		Preload("Teacher").
		Preload("Department").
		First(&schedule, schedule.ID).Error
	return &schedule, err
}

// Delete removes one entry by id.
func (s *ScheduleService) Delete(id uint) error {
	result := database.DB.Delete(&models.Schedule{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

// Publish transitions every DRAFT row in the scope to PUBLISHED in one
// update statement. There is no unpublish.
func (s *ScheduleService) Publish(scope Scope) (int64, error) {
	result := s.scopeQuery(scope).
		Where("status = ?", "DRAFT").
		Update("status", "PUBLISHED")
	if result.Error != nil {
		return 0, fmt.Errorf("publish schedules: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrNoDraftSchedules
	}
	return result.RowsAffected, nil
}

// BulkDelete removes every row matching the four scope fields exactly.
func (s *ScheduleService) BulkDelete(scope Scope) (int64, error) {
	result := database.DB.
		Where("academic_year = ? AND semester = ? AND department_id = ? AND class_section = ?",
			scope.AcademicYear, scope.Semester, scope.DepartmentID, scope.ClassSection).
		Delete(&models.Schedule{})
	if result.Error != nil {
		return 0, fmt.Errorf("bulk delete schedules: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Grid composes the renderable timetable for a scope.
func (s *ScheduleService) Grid(scope Scope) ([]timetable.Row, error) {
	entries, err := s.GetByScope(scope)
	if err != nil {
		return nil, err
	}
	grid := timetable.ComposeGrid(entries)
	return grid.Rows(), nil
}
