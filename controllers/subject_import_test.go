package controllers

import (
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	input := "Name,Code,DepartmentCode,Semester\nData Structures,CS201,CSE,3\nCalculus,MA101,MATH,1\n"
	rows, err := readCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1][1] != "CS201" {
		t.Errorf("expected CS201, got %q", rows[1][1])
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	// Imports tolerate short rows; missing cells read as empty
	input := "Name,Code,DepartmentCode,Semester\nData Structures,CS201\n"
	rows, err := readCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows[1]) != 2 {
		t.Errorf("expected short row preserved, got %d cells", len(rows[1]))
	}
}

func TestBuildColumnIndex(t *testing.T) {
	col := buildColumnIndex([]string{"Name", " Code ", "Semester"})
	if col["Name"] != 0 {
		t.Errorf("Name index = %d", col["Name"])
	}
	if col["Code"] != 1 {
		t.Errorf("header whitespace should be trimmed, Code index = %d", col["Code"])
	}
	if _, ok := col["Missing"]; ok {
		t.Error("unexpected column")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"subjects.xlsx", "subjects.xlsx"},
		{"../../etc/passwd", "passwd"},
		{"dir/sub/file.csv", "file.csv"},
	}
	for _, tc := range tests {
		if got := sanitizeFilename(tc.input); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
