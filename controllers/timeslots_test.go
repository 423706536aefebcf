package controllers

import "testing"

func TestTimeSlotUpdateChangesKeepsFalse(t *testing.T) {
	isBreak := false
	isActive := false
	label := "Lunch"
	r := timeSlotUpdateRequest{
		Label:    &label,
		IsBreak:  &isBreak,
		IsActive: &isActive,
	}

	changes := r.changes()
	if len(changes) != 3 {
		t.Fatalf("changes = %v, want exactly 3 entries", changes)
	}
	if v, ok := changes["is_break"]; !ok || v != false {
		t.Errorf("is_break = %v, %v; want false present", v, ok)
	}
	if v, ok := changes["is_active"]; !ok || v != false {
		t.Errorf("is_active = %v, %v; want false present", v, ok)
	}
	if changes["label"] != "Lunch" {
		t.Errorf("label = %v", changes["label"])
	}
}

func TestTimeSlotUpdateChangesOmitsAbsentFields(t *testing.T) {
	start := "09:30"
	r := timeSlotUpdateRequest{StartTime: &start}

	changes := r.changes()
	if len(changes) != 1 || changes["start_time"] != "09:30" {
		t.Fatalf("changes = %v, want only start_time", changes)
	}
}
