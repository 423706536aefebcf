package utils

import (
	"campushub_go/models"
	"campushub_go/services/timetable"
)

// ToEntry maps a persisted schedule row to the core's denormalized entry.
// Assumptions: caller has preloaded Subject and Teacher when display names
// are needed.
func ToEntry(s models.Schedule) timetable.Entry {
	return timetable.Entry{
		ID:           s.ID,
		AcademicYear: s.AcademicYear,
		Semester:     s.Semester,
		DepartmentID: s.DepartmentID,
		ClassSection: s.ClassSection,
		Day:          timetable.DayOfWeek(s.Day),
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		SubjectID:    s.SubjectID,
		SubjectName:  s.Subject.Name,
		SubjectCode:  s.Subject.Code,
		TeacherID:    s.TeacherID,
		TeacherName:  s.Teacher.Name,
		RoomID:       s.RoomID,
		SessionType:  s.SessionType,
		Duration:     s.Duration,
		IsMandatory:  s.IsMandatory,
		RepeatWeekly: s.RepeatWeekly,
		Status:       s.Status,
	}
}

// FromEntry maps a display entry back onto a persistable row. Denormalized
// names are dropped; reads rebuild them from preloads. Status carries over
// unchanged so a copy made inside a published timetable stays published.
func FromEntry(e timetable.Entry) models.Schedule {
	return models.Schedule{
		AcademicYear: e.AcademicYear,
		Semester:     e.Semester,
		DepartmentID: e.DepartmentID,
		ClassSection: e.ClassSection,
		Day:          string(e.Day),
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		SubjectID:    e.SubjectID,
		TeacherID:    e.TeacherID,
		RoomID:       e.RoomID,
		SessionType:  e.SessionType,
		Duration:     e.Duration,
		IsMandatory:  e.IsMandatory,
		RepeatWeekly: e.RepeatWeekly,
		Status:       e.Status,
	}
}

// ToEntries maps a slice of schedule rows.
func ToEntries(schedules []models.Schedule) []timetable.Entry {
	entries := make([]timetable.Entry, 0, len(schedules))
	for _, s := range schedules {
		entries = append(entries, ToEntry(s))
	}
	return entries
}

// DepartmentSummary is the list representation with catalog counts.
type DepartmentSummary struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	SubjectCount int64  `json:"subjectCount"`
	TeacherCount int64  `json:"teacherCount"`
}

// FacultyDTO flattens a teacher with its linked account and subjects.
type FacultyDTO struct {
	ID             uint   `json:"id"`
	FacultyID      string `json:"facultyId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	DepartmentID   uint   `json:"departmentId"`
	DepartmentName string `json:"departmentName,omitempty"`
	SubjectIDs     []uint `json:"subjectIds"`
}

// ToFacultyDTO maps a teacher row. Caller preloads User, Department and
// Subjects.
func ToFacultyDTO(t models.Teacher) FacultyDTO {
	subjectIDs := make([]uint, 0, len(t.Subjects))
	for _, ts := range t.Subjects {
		subjectIDs = append(subjectIDs, ts.SubjectID)
	}
	return FacultyDTO{
		ID:             t.ID,
		FacultyID:      t.FacultyID,
		Name:           t.Name,
		Email:          t.User.Email,
		Phone:          t.Phone,
		DepartmentID:   t.DepartmentID,
		DepartmentName: t.Department.Name,
		SubjectIDs:     subjectIDs,
	}
}
