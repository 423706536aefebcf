package timetable

import (
	"errors"
	"testing"
)

func gridEntries() []Entry {
	return []Entry{
		{
			ID: 1, Day: Monday, StartTime: "09:00", EndTime: "10:00",
			SubjectName: "Algorithms", ClassSection: "CSE-A",
		},
		{
			ID: 2, Day: Monday, StartTime: "10:00", EndTime: "12:00",
			SubjectName: "Physics Lab", ClassSection: "CSE-A",
		},
		{
			ID: 3, Day: Tuesday, StartTime: "11:00", EndTime: "12:00",
			SubjectName: "Calculus", ClassSection: "CSE-A",
		},
	}
}

func TestComposeGridIntervals(t *testing.T) {
	grid := ComposeGrid(gridEntries())

	// Observed points: 09:00, 10:00, 11:00, 12:00.
	want := []Interval{
		{Start: "09:00", End: "10:00", Label: "09:00 - 10:00"},
		{Start: "10:00", End: "11:00", Label: "10:00 - 11:00"},
		{Start: "11:00", End: "12:00", Label: "11:00 - 12:00"},
	}
	if len(grid.Intervals) != len(want) {
		t.Fatalf("got %d intervals, want %d", len(grid.Intervals), len(want))
	}
	for i, iv := range want {
		if grid.Intervals[i] != iv {
			t.Errorf("interval %d = %+v, want %+v", i, grid.Intervals[i], iv)
		}
	}
}

func TestComposeGridCellStates(t *testing.T) {
	grid := ComposeGrid(gridEntries())

	cell, ok := grid.Cell(Monday, 0)
	if !ok || cell.State != CellOrigin || cell.Entry == nil || cell.Entry.ID != 1 {
		t.Fatalf("Monday interval 0: %+v", cell)
	}
	if cell.RowSpan != 1 {
		t.Errorf("one-hour entry rowSpan = %d, want 1", cell.RowSpan)
	}

	cell, _ = grid.Cell(Monday, 1)
	if cell.State != CellOrigin || cell.Entry == nil || cell.Entry.ID != 2 {
		t.Fatalf("Monday interval 1: %+v", cell)
	}
	if cell.RowSpan != 2 {
		t.Errorf("two-hour entry rowSpan = %d, want 2", cell.RowSpan)
	}

	cell, _ = grid.Cell(Monday, 2)
	if cell.State != CellSpanned {
		t.Errorf("Monday interval 2 state = %s, want SPANNED", cell.State)
	}

	cell, _ = grid.Cell(Tuesday, 0)
	if cell.State != CellEmpty {
		t.Errorf("Tuesday interval 0 state = %s, want EMPTY", cell.State)
	}
	cell, _ = grid.Cell(Tuesday, 2)
	if cell.State != CellOrigin || cell.Entry.ID != 3 {
		t.Errorf("Tuesday interval 2: %+v", cell)
	}
}

func TestComposeGridEmpty(t *testing.T) {
	grid := ComposeGrid(nil)
	if len(grid.Intervals) != 0 {
		t.Errorf("empty input produced %d intervals", len(grid.Intervals))
	}
	if rows := grid.Rows(); len(rows) != 0 {
		t.Errorf("empty grid produced %d rows", len(rows))
	}
}

func TestComposeGridRows(t *testing.T) {
	grid := ComposeGrid(gridEntries())
	rows := grid.Rows()
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for _, row := range rows {
		if len(row.Cells) != len(Days) {
			t.Fatalf("row %s has %d cells, want %d", row.Interval.Label, len(row.Cells), len(Days))
		}
		for i, dc := range row.Cells {
			if dc.Day != Days[i] {
				t.Errorf("row %s cell %d day = %s, want %s", row.Interval.Label, i, dc.Day, Days[i])
			}
		}
	}
	if rows[1].Cells[0].State != CellOrigin {
		t.Errorf("serialized Monday 10:00 cell state = %s", rows[1].Cells[0].State)
	}
}

func TestOccupiedAt(t *testing.T) {
	entries := gridEntries()
	if !OccupiedAt(entries, Monday, "09:00", "10:00") {
		t.Error("exact match not reported occupied")
	}
	// Occupancy is exact-bounds, not overlap.
	if OccupiedAt(entries, Monday, "09:00", "09:30") {
		t.Error("partial overlap reported occupied")
	}
	if OccupiedAt(entries, Wednesday, "09:00", "10:00") {
		t.Error("free day reported occupied")
	}
}

func TestBuildCopy(t *testing.T) {
	entries := gridEntries()
	source := entries[0]
	source.RoomID = "R-101"
	source.TeacherID = 5

	target := Interval{Start: "09:00", End: "10:00"}
	copyEntry, err := BuildCopy(source, Wednesday, target, entries)
	if err != nil {
		t.Fatalf("BuildCopy: %v", err)
	}
	if copyEntry.ID != 0 {
		t.Error("copy kept the source ID")
	}
	if copyEntry.RoomID != "" {
		t.Errorf("copy kept room %q, rooms must be dropped", copyEntry.RoomID)
	}
	if copyEntry.Day != Wednesday || copyEntry.StartTime != "09:00" || copyEntry.EndTime != "10:00" {
		t.Errorf("copy slot = %s %s-%s", copyEntry.Day, copyEntry.StartTime, copyEntry.EndTime)
	}
	if copyEntry.TeacherID != source.TeacherID || copyEntry.SubjectName != source.SubjectName {
		t.Error("copy lost subject or teacher")
	}
}

func TestBuildCopySameSlot(t *testing.T) {
	entries := gridEntries()
	target := Interval{Start: "09:00", End: "10:00"}
	if _, err := BuildCopy(entries[0], Monday, target, entries); !errors.Is(err, ErrSameSlot) {
		t.Errorf("expected ErrSameSlot, got %v", err)
	}
}

func TestBuildCopyOccupied(t *testing.T) {
	entries := gridEntries()
	target := Interval{Start: "11:00", End: "12:00"}
	if _, err := BuildCopy(entries[0], Tuesday, target, entries); !errors.Is(err, ErrSlotOccupied) {
		t.Errorf("expected ErrSlotOccupied, got %v", err)
	}
}
