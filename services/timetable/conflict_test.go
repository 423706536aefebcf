package timetable

import "testing"

func baseEntry() Entry {
	return Entry{
		ID:           1,
		AcademicYear: "2025-2026",
		Semester:     1,
		DepartmentID: 1,
		ClassSection: "CSE-A",
		Day:          Monday,
		StartTime:    "09:00",
		EndTime:      "10:00",
		SubjectID:    10,
		SubjectName:  "Data Structures",
		TeacherID:    5,
		TeacherName:  "Dr. Rao",
		RoomID:       "R-101",
	}
}

func TestCheckConflictsNoOverlapNoConflict(t *testing.T) {
	existing := []Entry{baseEntry()}
	cand := Candidate{
		Day:          Monday,
		StartTime:    "10:00",
		EndTime:      "11:00",
		TeacherID:    5,
		RoomID:       "R-101",
		DepartmentID: 1,
		ClassSection: "CSE-A",
	}

	if got := CheckConflicts(cand, existing); len(got) != 0 {
		t.Fatalf("touching slots should not conflict, got %d findings", len(got))
	}
}

func TestCheckConflictsTeacher(t *testing.T) {
	existing := []Entry{baseEntry()}
	cand := Candidate{
		Day:          Monday,
		StartTime:    "09:30",
		EndTime:      "10:30",
		TeacherID:    5,
		RoomID:       "R-202",
		DepartmentID: 2,
		ClassSection: "ECE-B",
	}

	got := CheckConflicts(cand, existing)
	if len(got) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(got))
	}
	if got[0].Type != ConflictTeacher {
		t.Errorf("expected TEACHER conflict, got %s", got[0].Type)
	}
	want := "Teacher already assigned to CSE-A at this time"
	if got[0].Message != want {
		t.Errorf("message = %q, want %q", got[0].Message, want)
	}
	if got[0].ConflictingEntry == nil || got[0].ConflictingEntry.ID != 1 {
		t.Error("conflicting entry not reported")
	}
}

func TestCheckConflictsRoom(t *testing.T) {
	existing := []Entry{baseEntry()}
	cand := Candidate{
		Day:          Monday,
		StartTime:    "09:00",
		EndTime:      "10:00",
		TeacherID:    7,
		RoomID:       "R-101",
		DepartmentID: 2,
		ClassSection: "ECE-B",
	}

	got := CheckConflicts(cand, existing)
	if len(got) != 1 || got[0].Type != ConflictRoom {
		t.Fatalf("expected single ROOM conflict, got %+v", got)
	}
	want := "Room already booked for Data Structures by Dr. Rao"
	if got[0].Message != want {
		t.Errorf("message = %q, want %q", got[0].Message, want)
	}
}

func TestCheckConflictsRoomUnassignedExempt(t *testing.T) {
	for _, room := range []string{"", "TBA"} {
		entry := baseEntry()
		entry.RoomID = room
		entry.TeacherID = 99
		cand := Candidate{
			Day:          Monday,
			StartTime:    "09:00",
			EndTime:      "10:00",
			TeacherID:    7,
			RoomID:       room,
			DepartmentID: 2,
			ClassSection: "ECE-B",
		}
		if got := CheckConflicts(cand, []Entry{entry}); len(got) != 0 {
			t.Errorf("unassigned room %q produced conflicts: %+v", room, got)
		}
	}
}

func TestCheckConflictsClass(t *testing.T) {
	existing := []Entry{baseEntry()}
	cand := Candidate{
		Day:          Monday,
		StartTime:    "09:00",
		EndTime:      "09:30",
		TeacherID:    7,
		RoomID:       "R-202",
		DepartmentID: 1,
		ClassSection: "CSE-A",
	}

	got := CheckConflicts(cand, existing)
	if len(got) != 1 || got[0].Type != ConflictClass {
		t.Fatalf("expected single CLASS conflict, got %+v", got)
	}
	want := "Class already has Data Structures with Dr. Rao at this time"
	if got[0].Message != want {
		t.Errorf("message = %q, want %q", got[0].Message, want)
	}
}

func TestCheckConflictsFallbackNames(t *testing.T) {
	entry := baseEntry()
	entry.SubjectName = ""
	entry.TeacherName = ""
	cand := Candidate{
		Day:          Monday,
		StartTime:    "09:00",
		EndTime:      "10:00",
		TeacherID:    7,
		RoomID:       "R-202",
		DepartmentID: 1,
		ClassSection: "CSE-A",
	}

	got := CheckConflicts(cand, []Entry{entry})
	if len(got) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(got))
	}
	want := "Class already has a class with Unknown Teacher at this time"
	if got[0].Message != want {
		t.Errorf("message = %q, want %q", got[0].Message, want)
	}
}

func TestCheckConflictsAllThreeTypes(t *testing.T) {
	existing := []Entry{baseEntry()}
	cand := Candidate{
		Day:          Monday,
		StartTime:    "09:00",
		EndTime:      "10:00",
		TeacherID:    5,
		RoomID:       "R-101",
		DepartmentID: 1,
		ClassSection: "CSE-A",
	}

	got := CheckConflicts(cand, existing)
	if len(got) != 3 {
		t.Fatalf("expected 3 conflicts, got %d: %+v", len(got), got)
	}
	seen := map[ConflictType]bool{}
	for _, c := range got {
		seen[c.Type] = true
	}
	for _, typ := range []ConflictType{ConflictTeacher, ConflictRoom, ConflictClass} {
		if !seen[typ] {
			t.Errorf("missing %s conflict", typ)
		}
	}
}

func TestCheckConflictsSkipsOtherDays(t *testing.T) {
	entry := baseEntry()
	entry.Day = Tuesday
	cand := Candidate{
		Day:          Monday,
		StartTime:    "09:00",
		EndTime:      "10:00",
		TeacherID:    5,
		RoomID:       "R-101",
		DepartmentID: 1,
		ClassSection: "CSE-A",
	}

	if got := CheckConflicts(cand, []Entry{entry}); len(got) != 0 {
		t.Errorf("different-day entry produced conflicts: %+v", got)
	}
}

func TestCheckConflictsZeroTeacherExempt(t *testing.T) {
	entry := baseEntry()
	entry.TeacherID = 0
	cand := Candidate{
		Day:          Monday,
		StartTime:    "09:00",
		EndTime:      "10:00",
		TeacherID:    0,
		RoomID:       "R-202",
		DepartmentID: 2,
		ClassSection: "ECE-B",
	}

	if got := CheckConflicts(cand, []Entry{entry}); len(got) != 0 {
		t.Errorf("unset teachers produced conflicts: %+v", got)
	}
}
