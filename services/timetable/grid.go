package timetable

import (
	"errors"
	"fmt"
	"sort"
)

// CellState classifies a (day, interval) grid position.
type CellState string

const (
	// CellEmpty offers an add affordance.
	CellEmpty CellState = "EMPTY"
	// CellOrigin renders the entry card with its row span.
	CellOrigin CellState = "ORIGIN"
	// CellSpanned is covered by an earlier origin cell and renders nothing.
	CellSpanned CellState = "SPANNED"
)

var (
	// ErrSameSlot rejects a drag-copy dropped back onto its source slot.
	ErrSameSlot = errors.New("timetable: drop target equals the source slot")
	// ErrSlotOccupied rejects a drag-copy onto an already occupied slot.
	ErrSlotOccupied = errors.New("timetable: drop target already has a class")
)

// Interval is one row of the derived grid: a half-open [Start,End) range
// between two consecutive observed time points.
type Interval struct {
	Start string `json:"startTime"`
	End   string `json:"endTime"`
	Label string `json:"label"`
}

// Cell is the resolved state of one (day, interval) position.
type Cell struct {
	State   CellState `json:"state"`
	Entry   *Entry    `json:"entry,omitempty"`
	RowSpan int       `json:"rowSpan,omitempty"`
}

// Grid is the renderable timetable derived from a set of entries. Intervals
// come from the observed start/end boundaries of the entries themselves, not
// from the configured slot table, so custom class lengths never leave dead
// cells. Row heights are therefore not uniform across scopes.
type Grid struct {
	Intervals []Interval
	cells     map[cellKey]Cell
}

type cellKey struct {
	day      DayOfWeek
	interval int
}

// ComposeGrid partitions the observed time points into minimal intervals and
// resolves every (day, interval) cell to empty, origin or spanned. When two
// entries start at the same (day, time) the first in input order owns the
// origin cell, matching the dashboard's behaviour.
func ComposeGrid(entries []Entry) Grid {
	pointSet := make(map[string]struct{})
	for _, e := range entries {
		pointSet[e.StartTime] = struct{}{}
		pointSet[e.EndTime] = struct{}{}
	}

	points := make([]string, 0, len(pointSet))
	for p := range pointSet {
		points = append(points, p)
	}
	sort.Strings(points)

	intervals := make([]Interval, 0)
	for i := 0; i+1 < len(points); i++ {
		intervals = append(intervals, Interval{
			Start: points[i],
			End:   points[i+1],
			Label: fmt.Sprintf("%s - %s", points[i], points[i+1]),
		})
	}

	grid := Grid{Intervals: intervals, cells: make(map[cellKey]Cell)}

	for _, day := range Days {
		for i, iv := range intervals {
			key := cellKey{day: day, interval: i}

			if origin := entryStartingAt(entries, day, iv.Start); origin != nil {
				grid.cells[key] = Cell{
					State:   CellOrigin,
					Entry:   origin,
					RowSpan: rowSpan(intervals, origin),
				}
				continue
			}

			if spannedAt(entries, day, iv.Start) {
				grid.cells[key] = Cell{State: CellSpanned}
				continue
			}

			grid.cells[key] = Cell{State: CellEmpty}
		}
	}

	return grid
}

// Cell returns the resolved cell for a day and interval index.
func (g Grid) Cell(day DayOfWeek, interval int) (Cell, bool) {
	c, ok := g.cells[cellKey{day: day, interval: interval}]
	return c, ok
}

// Row is one serializable grid row: an interval plus a cell per day in
// display order.
type Row struct {
	Interval Interval  `json:"interval"`
	Cells    []DayCell `json:"cells"`
}

// DayCell pairs a cell with its day for serialization.
type DayCell struct {
	Day DayOfWeek `json:"day"`
	Cell
}

// Rows flattens the grid for JSON responses, one row per interval with the
// six day cells in display order.
func (g Grid) Rows() []Row {
	rows := make([]Row, 0, len(g.Intervals))
	for i, iv := range g.Intervals {
		row := Row{Interval: iv, Cells: make([]DayCell, 0, len(Days))}
		for _, day := range Days {
			cell, _ := g.Cell(day, i)
			row.Cells = append(row.Cells, DayCell{Day: day, Cell: cell})
		}
		rows = append(rows, row)
	}
	return rows
}

func entryStartingAt(entries []Entry, day DayOfWeek, start string) *Entry {
	for i := range entries {
		if entries[i].Day == day && entries[i].StartTime == start {
			return &entries[i]
		}
	}
	return nil
}

func spannedAt(entries []Entry, day DayOfWeek, point string) bool {
	for i := range entries {
		e := &entries[i]
		if e.Day == day && e.StartTime < point && e.EndTime > point {
			return true
		}
	}
	return false
}

// rowSpan counts the consecutive intervals fully contained in the entry's
// [start,end) range. Every entry boundary is a partition point, so the
// covered intervals are always contiguous.
func rowSpan(intervals []Interval, e *Entry) int {
	span := 0
	for _, iv := range intervals {
		if iv.Start >= e.StartTime && iv.End <= e.EndTime {
			span++
		}
	}
	if span == 0 {
		return 1
	}
	return span
}

// OccupiedAt reports whether any entry sits exactly on the given day and
// time bounds. Used to reject drag-copy drops onto occupied slots before
// any network call.
func OccupiedAt(entries []Entry, day DayOfWeek, start, end string) bool {
	for i := range entries {
		e := &entries[i]
		if e.Day == day && e.StartTime == start && e.EndTime == end {
			return true
		}
	}
	return false
}

// BuildCopy synthesizes a new entry from a dragged source and a drop target.
// The copy keeps subject, teacher, section, session type, duration and
// status but takes the target's day and bounds, and always drops the room
// so a room conflict is never propagated silently. The returned entry has a
// zero ID; persisting it is the caller's job.
func BuildCopy(source Entry, day DayOfWeek, target Interval, entries []Entry) (Entry, error) {
	if source.Day == day && source.StartTime == target.Start && source.EndTime == target.End {
		return Entry{}, ErrSameSlot
	}
	if OccupiedAt(entries, day, target.Start, target.End) {
		return Entry{}, ErrSlotOccupied
	}

	clone := source
	clone.ID = 0
	clone.Day = day
	clone.StartTime = target.Start
	clone.EndTime = target.End
	clone.RoomID = ""
	return clone, nil
}
