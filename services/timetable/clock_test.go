package timetable

import "testing"

func TestParseClock(t *testing.T) {
	cases := []struct {
		value   string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"9:30", 0, true},
		{"09:5", 0, true},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"ab:cd", 0, true},
		{"0930", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseClock(tc.value)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %d", tc.value, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", tc.value, err)
			continue
		}
		if got != tc.minutes {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.value, got, tc.minutes)
		}
	}
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange("09:00", "10:00"); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	if err := ValidateRange("10:00", "09:00"); err == nil {
		t.Error("inverted range accepted")
	}
	if err := ValidateRange("10:00", "10:00"); err == nil {
		t.Error("zero-length range accepted")
	}
	if err := ValidateRange("9:00", "10:00"); err == nil {
		t.Error("unpadded start accepted")
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"partial", "09:00", "10:30", "10:00", "11:00", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"touching end to start", "09:00", "10:00", "10:00", "11:00", false},
		{"touching start to end", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
			if got != tc.want {
				t.Errorf("Overlaps(%s-%s, %s-%s) = %v, want %v",
					tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
			// Overlap is symmetric.
			if Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd) != got {
				t.Error("overlap result not symmetric")
			}
		})
	}
}

func TestDayOfWeek(t *testing.T) {
	if !Monday.IsValid() || !Saturday.IsValid() {
		t.Error("schedulable day reported invalid")
	}
	if DayOfWeek("SUNDAY").IsValid() {
		t.Error("SUNDAY reported valid")
	}
	if Monday.Index() != 0 || Saturday.Index() != 5 {
		t.Errorf("unexpected display indexes: %d, %d", Monday.Index(), Saturday.Index())
	}
	if DayOfWeek("SUNDAY").Index() != -1 {
		t.Error("unknown day should index -1")
	}
}
