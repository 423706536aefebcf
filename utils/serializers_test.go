package utils

import (
	"testing"

	"campushub_go/models"
	"campushub_go/services/timetable"
)

func TestToEntry(t *testing.T) {
	schedule := models.Schedule{
		BaseModel:    models.BaseModel{ID: 7},
		AcademicYear: "2025-2026",
		Semester:     3,
		DepartmentID: 2,
		ClassSection: "CSE-B",
		Day:          "WEDNESDAY",
		StartTime:    "10:00",
		EndTime:      "12:00",
		SubjectID:    11,
		TeacherID:    4,
		RoomID:       "LAB-2",
		SessionType:  "LAB",
		Duration:     2,
		IsMandatory:  true,
		RepeatWeekly: true,
		Status:       "DRAFT",
		Subject:      models.Subject{Name: "Physics Lab", Code: "PH102"},
		Teacher:      models.Teacher{Name: "Dr. Iyer"},
	}

	entry := ToEntry(schedule)

	if entry.ID != 7 || entry.Day != timetable.Wednesday {
		t.Errorf("identity fields wrong: %+v", entry)
	}
	if entry.SubjectName != "Physics Lab" || entry.SubjectCode != "PH102" {
		t.Errorf("subject names not denormalized: %+v", entry)
	}
	if entry.TeacherName != "Dr. Iyer" {
		t.Errorf("teacher name not denormalized: %q", entry.TeacherName)
	}
	if entry.StartTime != "10:00" || entry.EndTime != "12:00" {
		t.Errorf("times wrong: %s-%s", entry.StartTime, entry.EndTime)
	}
}

func TestToEntryWithoutPreloads(t *testing.T) {
	// Display names simply come through empty when relations are not loaded
	entry := ToEntry(models.Schedule{BaseModel: models.BaseModel{ID: 1}, Day: "MONDAY"})
	if entry.SubjectName != "" || entry.TeacherName != "" {
		t.Errorf("expected empty display names, got %+v", entry)
	}
}

func TestFromEntryKeepsStatus(t *testing.T) {
	// A drag-copy inside a published timetable must stay published, so the
	// mapping back to a row may not drop Status (the create path would
	// otherwise default it to DRAFT).
	source := timetable.Entry{
		ID:           9,
		AcademicYear: "2025-2026",
		Semester:     3,
		DepartmentID: 2,
		ClassSection: "CSE-B",
		Day:          timetable.Monday,
		StartTime:    "09:00",
		EndTime:      "10:00",
		SubjectID:    11,
		TeacherID:    4,
		RoomID:       "LAB-2",
		SessionType:  "LAB",
		Duration:     1,
		IsMandatory:  true,
		RepeatWeekly: true,
		Status:       "PUBLISHED",
	}

	copied, err := timetable.BuildCopy(source, timetable.Tuesday, timetable.Interval{Start: "11:00", End: "12:00"}, nil)
	if err != nil {
		t.Fatalf("BuildCopy: %v", err)
	}

	row := FromEntry(copied)
	if row.Status != "PUBLISHED" {
		t.Errorf("status = %q, want PUBLISHED", row.Status)
	}
	if row.ID != 0 {
		t.Errorf("copy must not reuse the source id, got %d", row.ID)
	}
	if row.RoomID != "" {
		t.Errorf("copy must drop the room, got %q", row.RoomID)
	}
	if row.Day != "TUESDAY" || row.StartTime != "11:00" || row.EndTime != "12:00" {
		t.Errorf("target slot wrong: %s %s-%s", row.Day, row.StartTime, row.EndTime)
	}
	if row.SubjectID != 11 || row.TeacherID != 4 || row.SessionType != "LAB" {
		t.Errorf("carried fields wrong: %+v", row)
	}
}

func TestToFacultyDTO(t *testing.T) {
	teacher := models.Teacher{
		BaseModel:    models.BaseModel{ID: 3},
		FacultyID:    "FAC-042",
		Name:         "Dr. Rao",
		Phone:        "9876500000",
		DepartmentID: 1,
		User:         models.User{Email: "rao@campushub.local"},
		Department:   models.Department{Name: "Computer Science"},
		Subjects: []models.TeacherSubject{
			{SubjectID: 10},
			{SubjectID: 12},
		},
	}

	dto := ToFacultyDTO(teacher)
	if dto.FacultyID != "FAC-042" || dto.Email != "rao@campushub.local" {
		t.Errorf("dto = %+v", dto)
	}
	if dto.DepartmentName != "Computer Science" {
		t.Errorf("department name = %q", dto.DepartmentName)
	}
	if len(dto.SubjectIDs) != 2 || dto.SubjectIDs[0] != 10 || dto.SubjectIDs[1] != 12 {
		t.Errorf("subject ids = %v", dto.SubjectIDs)
	}
}
