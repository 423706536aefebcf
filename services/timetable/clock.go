// Package timetable holds the scheduling core: day/clock ordering, the
// pairwise conflict detector and the display-grid composer. Everything in
// this package is a pure function of its inputs; fetching the comparison
// set and persisting results belong to the callers.
package timetable

import (
	"fmt"
	"strconv"
	"strings"
)

// DayOfWeek is one of the six schedulable days. Sunday is never scheduled.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
)

// Days lists the schedulable days in display order.
var Days = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// IsValid reports whether d is a schedulable day.
func (d DayOfWeek) IsValid() bool {
	for _, day := range Days {
		if d == day {
			return true
		}
	}
	return false
}

// Index returns the display position of d, or -1 for an unknown day.
func (d DayOfWeek) Index() int {
	for i, day := range Days {
		if d == day {
			return i
		}
	}
	return -1
}

// ParseClock validates a zero-padded 24-hour "HH:MM" value and returns it
// as minutes since midnight. Zero-padded clock strings compare lexically in
// the same order as their minute values, so the rest of the package compares
// the raw strings directly.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour*60 + minute, nil
}

// ValidateRange checks both clock values and the start < end invariant.
func ValidateRange(start, end string) error {
	startMin, err := ParseClock(start)
	if err != nil {
		return err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return err
	}
	if startMin >= endMin {
		return fmt.Errorf("start time %s must be before end time %s", start, end)
	}
	return nil
}

// Overlaps reports whether the half-open ranges [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}
