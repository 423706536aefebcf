package services

import "testing"

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }

func TestScheduleUpdateChangesKeepsFalse(t *testing.T) {
	// A sent false must persist; only absent fields are skipped.
	u := ScheduleUpdate{
		IsMandatory:  boolPtr(false),
		RepeatWeekly: boolPtr(false),
		Duration:     intPtr(2),
	}

	changes := u.Changes()
	if len(changes) != 3 {
		t.Fatalf("changes = %v, want exactly 3 entries", changes)
	}
	if v, ok := changes["is_mandatory"]; !ok || v != false {
		t.Errorf("is_mandatory = %v, %v; want false present", v, ok)
	}
	if v, ok := changes["repeat_weekly"]; !ok || v != false {
		t.Errorf("repeat_weekly = %v, %v; want false present", v, ok)
	}
	if v := changes["duration"]; v != 2 {
		t.Errorf("duration = %v, want 2", v)
	}
}

func TestScheduleUpdateChangesOmitsAbsentFields(t *testing.T) {
	u := ScheduleUpdate{
		Day:       strPtr("FRIDAY"),
		StartTime: strPtr("09:00"),
		EndTime:   strPtr("10:00"),
	}

	changes := u.Changes()
	if len(changes) != 3 {
		t.Fatalf("changes = %v, want exactly 3 entries", changes)
	}
	for _, column := range []string{"status", "teacher_id", "room_id", "is_mandatory"} {
		if _, ok := changes[column]; ok {
			t.Errorf("absent field %q leaked into changes", column)
		}
	}
	if changes["day"] != "FRIDAY" {
		t.Errorf("day = %v", changes["day"])
	}
}

func TestScheduleUpdateChangesEmpty(t *testing.T) {
	if changes := (ScheduleUpdate{}).Changes(); len(changes) != 0 {
		t.Errorf("empty update produced changes: %v", changes)
	}
}
