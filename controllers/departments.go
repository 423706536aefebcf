package controllers

import (
	"strconv"

	"campushub_go/database"
	"campushub_go/middleware"
	"campushub_go/models"
	"campushub_go/utils"

	"github.com/gofiber/fiber/v2"
)

type DepartmentController struct{}

// GetDepartments returns all departments with catalog counts
func (dc *DepartmentController) GetDepartments(c *fiber.Ctx) error {
	var departments []models.Department
	if err := database.DB.Order("name ASC").Find(&departments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch departments",
		})
	}

	summaries := make([]utils.DepartmentSummary, 0, len(departments))
	for _, dept := range departments {
		var subjectCount, teacherCount int64
		database.DB.Model(&models.Subject{}).Where("department_id = ?", dept.ID).Count(&subjectCount)
		database.DB.Model(&models.Teacher{}).Where("department_id = ?", dept.ID).Count(&teacherCount)
		summaries = append(summaries, utils.DepartmentSummary{
			ID:           dept.ID,
			Name:         dept.Name,
			Code:         dept.Code,
			SubjectCount: subjectCount,
			TeacherCount: teacherCount,
		})
	}

	return c.JSON(fiber.Map{
		"departments": summaries,
		"total":       len(summaries),
	})
}

// GetDepartment returns a specific department by ID
func (dc *DepartmentController) GetDepartment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid department ID",
		})
	}

	var department models.Department
	if err := database.DB.Preload("Subjects").Preload("Teachers").First(&department, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Department not found",
		})
	}

	return c.JSON(fiber.Map{
		"department": department,
	})
}

// GetDepartmentByCode returns a department by its short code
func (dc *DepartmentController) GetDepartmentByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Department code is required",
		})
	}

	var department models.Department
	if err := database.DB.Where("code = ?", code).Preload("Subjects").First(&department).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Department not found",
		})
	}

	return c.JSON(fiber.Map{
		"department": department,
	})
}

type departmentRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required,max=50"`
}

// CreateDepartment creates a new department
func (dc *DepartmentController) CreateDepartment(c *fiber.Ctx) error {
	var req departmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": errs,
		})
	}

	var existing models.Department
	if err := database.DB.Where("name = ? OR code = ?", req.Name, req.Code).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Department with this name or code already exists",
		})
	}

	department := models.Department{
		Name: utils.SanitizeString(req.Name),
		Code: utils.SanitizeString(req.Code),
	}

	if err := database.DB.Create(&department).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create department",
		})
	}

	middleware.LogActivity(c, "CREATE", "departments", department.ID, department)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Department created successfully",
		"department": department,
	})
}

// UpdateDepartment updates an existing department
func (dc *DepartmentController) UpdateDepartment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid department ID",
		})
	}

	var department models.Department
	if err := database.DB.First(&department, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Department not found",
		})
	}

	var updateData models.Department
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// The unique indexes cover name and code; check first for a clean 409
	if updateData.Name != "" && updateData.Name != department.Name {
		var existing models.Department
		if err := database.DB.Where("name = ? AND id != ?", updateData.Name, department.ID).First(&existing).Error; err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Department with this name already exists",
			})
		}
	}
	if updateData.Code != "" && updateData.Code != department.Code {
		var existing models.Department
		if err := database.DB.Where("code = ? AND id != ?", updateData.Code, department.ID).First(&existing).Error; err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Department with this code already exists",
			})
		}
	}

	if err := database.DB.Model(&department).Updates(updateData).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update department",
		})
	}

	middleware.LogActivity(c, "UPDATE", "departments", department.ID, updateData)

	return c.JSON(fiber.Map{
		"message":    "Department updated successfully",
		"department": department,
	})
}

// DeleteDepartment deletes a department with no remaining subjects or faculty
func (dc *DepartmentController) DeleteDepartment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid department ID",
		})
	}

	var department models.Department
	if err := database.DB.First(&department, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Department not found",
		})
	}

	var subjectCount int64
	database.DB.Model(&models.Subject{}).Where("department_id = ?", department.ID).Count(&subjectCount)
	if subjectCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Cannot delete department with existing subjects",
		})
	}

	var teacherCount int64
	database.DB.Model(&models.Teacher{}).Where("department_id = ?", department.ID).Count(&teacherCount)
	if teacherCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Cannot delete department with assigned faculty",
		})
	}

	if err := database.DB.Delete(&department).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete department",
		})
	}

	middleware.LogActivity(c, "DELETE", "departments", department.ID, department)

	return c.JSON(fiber.Map{
		"message": "Department deleted successfully",
	})
}
