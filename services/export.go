package services

import (
	"bytes"
	"fmt"

	"campushub_go/services/timetable"

	"github.com/xuri/excelize/v2"
)

// TimetableExportService renders a scope's composed grid as an XLSX
// workbook for printing and offline distribution.
type TimetableExportService struct {
	schedules *ScheduleService
}

func NewTimetableExportService(schedules *ScheduleService) *TimetableExportService {
	return &TimetableExportService{schedules: schedules}
}

// ExportXLSX builds the workbook and returns its bytes plus a filename.
func (es *TimetableExportService) ExportXLSX(scope Scope) (*bytes.Buffer, string, error) {
	rows, err := es.schedules.Grid(scope)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Timetable"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create cell style: %w", err)
	}

	// Title row
	title := fmt.Sprintf("Timetable %s Semester %d Section %s", scope.AcademicYear, scope.Semester, scope.ClassSection)
	f.SetCellValue(sheet, "A1", title)
	f.MergeCell(sheet, "A1", fmt.Sprintf("%c1", 'A'+len(timetable.Days)))

	// Header: Time column plus one column per day
	f.SetCellValue(sheet, "A2", "Time")
	f.SetCellStyle(sheet, "A2", "A2", headerStyle)
	for i, day := range timetable.Days {
		cell := fmt.Sprintf("%c2", 'B'+i)
		f.SetCellValue(sheet, cell, string(day))
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, row := range rows {
		excelRow := rowIdx + 3
		f.SetCellValue(sheet, fmt.Sprintf("A%d", excelRow), row.Interval.Label)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", excelRow), fmt.Sprintf("A%d", excelRow), cellStyle)

		for colIdx, dc := range row.Cells {
			col := rune('B' + colIdx)
			cell := fmt.Sprintf("%c%d", col, excelRow)

			switch dc.State {
			case timetable.CellOrigin:
				entry := dc.Entry
				room := entry.RoomID
				if timetable.RoomUnassigned(room) {
					room = "TBA"
				}
				f.SetCellValue(sheet, cell, fmt.Sprintf("%s\n%s\n%s", subjectLabel(entry), entry.TeacherName, room))
				f.SetCellStyle(sheet, cell, cell, cellStyle)
				if dc.RowSpan > 1 {
					bottom := fmt.Sprintf("%c%d", col, excelRow+dc.RowSpan-1)
					f.MergeCell(sheet, cell, bottom)
				}
			case timetable.CellSpanned:
				// Covered by the merge above, nothing to write.
			default:
				f.SetCellStyle(sheet, cell, cell, cellStyle)
			}
		}
	}

	f.SetColWidth(sheet, "A", "A", 16)
	endCol := string(rune('B' + len(timetable.Days) - 1))
	f.SetColWidth(sheet, "B", endCol, 26)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}

	filename := fmt.Sprintf("timetable_%s_sem%d_%s.xlsx", scope.AcademicYear, scope.Semester, scope.ClassSection)
	return buf, filename, nil
}

func subjectLabel(e *timetable.Entry) string {
	if e.SubjectCode != "" {
		return fmt.Sprintf("%s (%s)", e.SubjectName, e.SubjectCode)
	}
	if e.SubjectName != "" {
		return e.SubjectName
	}
	return "Class"
}
