package optimistic

import (
	"errors"
	"strings"
	"testing"

	"campushub_go/services/timetable"
)

func seedEntries() []timetable.Entry {
	return []timetable.Entry{
		{ID: 1, Day: timetable.Monday, StartTime: "09:00", EndTime: "10:00", SubjectName: "Algorithms"},
		{ID: 2, Day: timetable.Monday, StartTime: "10:00", EndTime: "11:00", SubjectName: "Physics"},
	}
}

func entryIDs(entries []VisibleEntry) []uint {
	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestApplyCreateInsertsTentativeEntry(t *testing.T) {
	c := NewCoordinator(seedEntries(), nil)

	tempID := c.ApplyCreate(timetable.Entry{Day: timetable.Tuesday, StartTime: "09:00", EndTime: "10:00"})
	if !strings.HasPrefix(tempID, "temp-") {
		t.Errorf("temp id %q missing temp- prefix", tempID)
	}

	entries := c.Entries()
	if len(entries) != 3 {
		t.Fatalf("visible collection has %d entries, want 3", len(entries))
	}
	last := entries[2]
	if last.TempID != tempID || last.ID != 0 {
		t.Errorf("tentative entry = %+v", last)
	}
	if state, ok := c.StateOf(tempID); !ok || state != StatePending {
		t.Errorf("mutation state = %s, want PENDING", state)
	}
}

func TestConfirmCreateSplicesServerEntry(t *testing.T) {
	c := NewCoordinator(seedEntries(), nil)
	tempID := c.ApplyCreate(timetable.Entry{Day: timetable.Tuesday, StartTime: "09:00", EndTime: "10:00"})

	if err := c.ConfirmCreate(tempID, timetable.Entry{ID: 42, Day: timetable.Tuesday, StartTime: "09:00", EndTime: "10:00"}); err != nil {
		t.Fatalf("ConfirmCreate: %v", err)
	}

	entries := c.Entries()
	if len(entries) != 3 {
		t.Fatalf("visible collection has %d entries, want 3", len(entries))
	}
	if entries[2].TempID != "" || entries[2].ID != 42 {
		t.Errorf("confirmed entry = %+v", entries[2])
	}
	if state, _ := c.StateOf(tempID); state != StateConfirmed {
		t.Errorf("mutation state = %s, want CONFIRMED", state)
	}
}

func TestFailCreateRemovesTentativeEntry(t *testing.T) {
	c := NewCoordinator(seedEntries(), nil)
	tempID := c.ApplyCreate(timetable.Entry{Day: timetable.Tuesday, StartTime: "09:00", EndTime: "10:00"})

	if err := c.FailCreate(tempID); err != nil {
		t.Fatalf("FailCreate: %v", err)
	}

	for _, e := range c.Entries() {
		if e.TempID == tempID {
			t.Fatal("tentative entry still visible after rollback")
		}
	}
	if state, _ := c.StateOf(tempID); state != StateRolledBack {
		t.Errorf("mutation state = %s, want ROLLED_BACK", state)
	}
}

func TestApplyUpdateReplacesImmediately(t *testing.T) {
	c := NewCoordinator(seedEntries(), nil)

	updated := timetable.Entry{Day: timetable.Monday, StartTime: "09:00", EndTime: "11:00", SubjectName: "Algorithms II"}
	if err := c.ApplyUpdate(1, updated); err != nil {
		t.Fatalf("ApplyUpdate: %v", err)
	}

	entries := c.Entries()
	if entries[0].SubjectName != "Algorithms II" || entries[0].EndTime != "11:00" {
		t.Errorf("entry not replaced: %+v", entries[0])
	}
	if entries[0].ID != 1 {
		t.Errorf("update changed the entry id to %d", entries[0].ID)
	}
}

func TestFailUpdateRefetches(t *testing.T) {
	refetched := false
	c := NewCoordinator(seedEntries(), func() ([]timetable.Entry, error) {
		refetched = true
		return seedEntries(), nil
	})

	if err := c.ApplyUpdate(1, timetable.Entry{SubjectName: "Wrong"}); err != nil {
		t.Fatalf("ApplyUpdate: %v", err)
	}
	if err := c.FailUpdate(1); err != nil {
		t.Fatalf("FailUpdate: %v", err)
	}

	if !refetched {
		t.Error("rollback did not refetch")
	}
	if got := c.Entries()[0].SubjectName; got != "Algorithms" {
		t.Errorf("ground truth not restored, subject = %q", got)
	}
	if state, _ := c.StateOf("1"); state != StateRolledBack {
		t.Errorf("mutation state = %s, want ROLLED_BACK", state)
	}
}

func TestApplyDeleteAndFailRestores(t *testing.T) {
	c := NewCoordinator(seedEntries(), func() ([]timetable.Entry, error) {
		return seedEntries(), nil
	})

	if err := c.ApplyDelete(2); err != nil {
		t.Fatalf("ApplyDelete: %v", err)
	}
	if ids := entryIDs(c.Entries()); len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("after delete visible ids = %v", ids)
	}

	if err := c.FailDelete(2); err != nil {
		t.Fatalf("FailDelete: %v", err)
	}
	if ids := entryIDs(c.Entries()); len(ids) != 2 {
		t.Errorf("rollback did not restore the row, ids = %v", ids)
	}
}

func TestInFlightGate(t *testing.T) {
	c := NewCoordinator(seedEntries(), nil)

	if err := c.ApplyUpdate(1, timetable.Entry{SubjectName: "First"}); err != nil {
		t.Fatalf("ApplyUpdate: %v", err)
	}
	if err := c.ApplyUpdate(1, timetable.Entry{SubjectName: "Second"}); !errors.Is(err, ErrMutationInFlight) {
		t.Errorf("second update: got %v, want ErrMutationInFlight", err)
	}
	if err := c.ApplyDelete(1); !errors.Is(err, ErrMutationInFlight) {
		t.Errorf("delete during pending update: got %v, want ErrMutationInFlight", err)
	}

	if err := c.ConfirmUpdate(1); err != nil {
		t.Fatalf("ConfirmUpdate: %v", err)
	}
	if err := c.ApplyDelete(1); err != nil {
		t.Errorf("mutation after confirm rejected: %v", err)
	}
}

func TestUnknownTargets(t *testing.T) {
	c := NewCoordinator(seedEntries(), nil)

	if err := c.ApplyUpdate(99, timetable.Entry{}); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("update of missing entry: got %v", err)
	}
	if err := c.ApplyDelete(99); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("delete of missing entry: got %v", err)
	}
	if err := c.ConfirmUpdate(1); !errors.Is(err, ErrUnknownMutation) {
		t.Errorf("confirm without pending mutation: got %v", err)
	}
	if err := c.FailCreate("temp-nope"); !errors.Is(err, ErrUnknownMutation) {
		t.Errorf("fail of unknown temp id: got %v", err)
	}
}

func TestLoadDropsTentativeRows(t *testing.T) {
	c := NewCoordinator(seedEntries(), nil)
	c.ApplyCreate(timetable.Entry{Day: timetable.Friday, StartTime: "09:00", EndTime: "10:00"})

	c.Load(seedEntries())
	for _, e := range c.Entries() {
		if e.TempID != "" {
			t.Fatal("Load kept a tentative row")
		}
	}
}
