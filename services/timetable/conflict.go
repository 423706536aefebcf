package timetable

import "fmt"

// ConflictType identifies which shared resource a candidate collides on.
type ConflictType string

const (
	ConflictTeacher ConflictType = "TEACHER"
	ConflictRoom    ConflictType = "ROOM"
	ConflictClass   ConflictType = "CLASS"
)

// Entry is a schedule row reduced to the fields the core needs, with
// denormalized display names for conflict messages and grid cards.
type Entry struct {
	ID           uint      `json:"id"`
	AcademicYear string    `json:"academicYear"`
	Semester     int       `json:"semester"`
	DepartmentID uint      `json:"departmentId"`
	ClassSection string    `json:"classSection"`
	Day          DayOfWeek `json:"day"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	SubjectID    uint      `json:"subjectId"`
	SubjectName  string    `json:"subjectName,omitempty"`
	SubjectCode  string    `json:"subjectCode,omitempty"`
	TeacherID    uint      `json:"teacherId"`
	TeacherName  string    `json:"teacherName,omitempty"`
	RoomID       string    `json:"roomId"`
	SessionType  string    `json:"sessionType"`
	Duration     int       `json:"duration"`
	IsMandatory  bool      `json:"isMandatory"`
	RepeatWeekly bool      `json:"repeatWeekly"`
	Status       string    `json:"status"`
}

// Candidate carries the fields of a proposed entry that participate in
// conflict detection.
type Candidate struct {
	Day          DayOfWeek
	StartTime    string
	EndTime      string
	TeacherID    uint
	RoomID       string
	DepartmentID uint
	ClassSection string
}

// Conflict is one advisory finding. A non-empty report blocks submission in
// the UI but is never an error: the store has no matching constraint.
type Conflict struct {
	Type             ConflictType `json:"type"`
	Message          string       `json:"message"`
	ConflictingEntry *Entry       `json:"conflictingSlot,omitempty"`
}

// RoomUnassigned reports whether a room identifier counts as "no room".
// Unassigned rooms never trigger ROOM conflicts.
func RoomUnassigned(roomID string) bool {
	return roomID == "" || roomID == "TBA"
}

// CheckConflicts scans the same-day comparison set and reports every
// teacher, room and class collision with the candidate. The caller fetches
// existing for the candidate's (academicYear, semester, day) bucket and is
// responsible for excluding the entry being edited; entries on other days
// are skipped here as a safety net. All three conflict types are evaluated
// independently per overlapping entry, so one entry can contribute up to
// three findings.
func CheckConflicts(candidate Candidate, existing []Entry) []Conflict {
	conflicts := make([]Conflict, 0)

	for i := range existing {
		e := &existing[i]
		if e.Day != candidate.Day {
			continue
		}
		if !Overlaps(candidate.StartTime, candidate.EndTime, e.StartTime, e.EndTime) {
			continue
		}

		if candidate.TeacherID != 0 && e.TeacherID != 0 && e.TeacherID == candidate.TeacherID {
			conflicts = append(conflicts, Conflict{
				Type:             ConflictTeacher,
				Message:          fmt.Sprintf("Teacher already assigned to %s at this time", e.ClassSection),
				ConflictingEntry: e,
			})
		}

		if !RoomUnassigned(candidate.RoomID) && !RoomUnassigned(e.RoomID) && e.RoomID == candidate.RoomID {
			conflicts = append(conflicts, Conflict{
				Type:             ConflictRoom,
				Message:          fmt.Sprintf("Room already booked for %s by %s", subjectOrFallback(e), teacherOrFallback(e)),
				ConflictingEntry: e,
			})
		}

		if e.DepartmentID == candidate.DepartmentID && e.ClassSection == candidate.ClassSection {
			conflicts = append(conflicts, Conflict{
				Type:             ConflictClass,
				Message:          fmt.Sprintf("Class already has %s with %s at this time", subjectOrFallback(e), teacherOrFallback(e)),
				ConflictingEntry: e,
			})
		}
	}

	return conflicts
}

func subjectOrFallback(e *Entry) string {
	if e.SubjectName != "" {
		return e.SubjectName
	}
	return "a class"
}

func teacherOrFallback(e *Entry) string {
	if e.TeacherName != "" {
		return e.TeacherName
	}
	return "Unknown Teacher"
}
