package controllers

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"campushub_go/database"
	"campushub_go/middleware"
	"campushub_go/models"
	"campushub_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// SubjectImportController handles bulk subject catalog uploads from CSV/XLSX
type SubjectImportController struct{}

// POST /api/subjects/import
// Multipart form with file field: file
// Expected columns: Name, Code, DepartmentCode, Semester, Credits
func (ic *SubjectImportController) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot open file"})
	}
	defer file.Close()

	filename := strings.ToLower(fileHeader.Filename)
	var rows [][]string
	var parseErr error

	if strings.HasSuffix(filename, ".csv") {
		rows, parseErr = readCSV(file)
	} else if strings.HasSuffix(filename, ".xlsx") || strings.HasSuffix(filename, ".xls") {
		// Save to OS temp folder for excelize to open
		tmpDir, _ := os.MkdirTemp("", "chxls-")
		tmp := filepath.Join(tmpDir, fmt.Sprintf("%d_%s", time.Now().UnixNano(), sanitizeFilename(fileHeader.Filename)))
		if err := c.SaveFile(fileHeader, tmp); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to buffer upload"})
		}
		rows, parseErr = readXLSX(tmp)
		_ = os.Remove(tmp)
	} else {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported file type (csv, xlsx)"})
	}
	if parseErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": parseErr.Error()})
	}

	if len(rows) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is empty"})
	}

	header := rows[0]
	col := buildColumnIndex(header)
	required := []string{"Name", "Code", "DepartmentCode", "Semester"}
	for _, r := range required {
		if _, ok := col[r]; !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("missing column: %s", r)})
		}
	}

	created := 0
	skipped := 0
	var errorsList []string

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for i := 1; i < len(rows); i++ {
			r := rows[i]
			get := func(key string) string {
				if idx, ok := col[key]; ok && idx < len(r) {
					return strings.TrimSpace(r[idx])
				}
				return ""
			}

			name := utils.SanitizeString(get("Name"))
			code := utils.SanitizeString(get("Code"))
			deptCode := utils.SanitizeString(get("DepartmentCode"))
			if name == "" || code == "" || deptCode == "" {
				skipped++
				errorsList = append(errorsList, fmt.Sprintf("row %d: missing name, code or department", i+1))
				continue
			}

			semester, err := strconv.Atoi(get("Semester"))
			if err != nil || !utils.IsValidSemester(semester) {
				skipped++
				errorsList = append(errorsList, fmt.Sprintf("row %d: invalid semester %q", i+1, get("Semester")))
				continue
			}

			credits := 3
			if raw := get("Credits"); raw != "" {
				if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
					credits = parsed
				}
			}

			var department models.Department
			if err := tx.Where("code = ?", deptCode).First(&department).Error; err != nil {
				skipped++
				errorsList = append(errorsList, fmt.Sprintf("row %d: unknown department %q", i+1, deptCode))
				continue
			}

			// Existing codes are skipped, not overwritten
			var existing models.Subject
			if err := tx.Where("code = ?", code).First(&existing).Error; err == nil {
				skipped++
				continue
			}

			subject := models.Subject{
				Name:         name,
				Code:         code,
				DepartmentID: department.ID,
				Semester:     semester,
				Credits:      credits,
			}
			if err := tx.Create(&subject).Error; err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("import failed: %v", err),
		})
	}

	middleware.LogActivity(c, "IMPORT", "subjects", 0, fiber.Map{
		"file":    fileHeader.Filename,
		"created": created,
		"skipped": skipped,
	})

	return c.JSON(fiber.Map{
		"message": "Import completed",
		"created": created,
		"skipped": skipped,
		"errors":  errorsList,
	})
}

// readCSV parses an uploaded CSV stream into rows
func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %v", err)
	}
	return rows, nil
}

// readXLSX parses the first sheet of an XLSX file into rows
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("invalid XLSX: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %v", err)
	}
	return rows, nil
}

// buildColumnIndex maps header names to column positions
func buildColumnIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	return col
}

// sanitizeFilename strips path separators from an uploaded filename
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	return name
}
