package controllers

import (
	"strconv"

	"campushub_go/database"
	"campushub_go/middleware"
	"campushub_go/models"
	"campushub_go/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FacultyController manages faculty records. Each faculty member is backed
// by a User account created in the same transaction.
type FacultyController struct{}

// GetFaculties returns faculty records with optional department filter
func (fc *FacultyController) GetFaculties(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset := (page - 1) * limit

	var teachers []models.Teacher
	var total int64

	query := database.DB.Model(&models.Teacher{})
	if departmentID := c.Query("departmentId"); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}

	query.Count(&total)

	if err := query.
		Preload("User").
		Preload("Department").
		Preload("Subjects").
		Order("name ASC").
		Offset(offset).Limit(limit).Find(&teachers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch faculty",
		})
	}

	faculties := make([]utils.FacultyDTO, 0, len(teachers))
	for _, t := range teachers {
		faculties = append(faculties, utils.ToFacultyDTO(t))
	}

	return c.JSON(fiber.Map{
		"faculties": faculties,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetFaculty returns a faculty record by ID
func (fc *FacultyController) GetFaculty(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid faculty ID",
		})
	}

	var teacher models.Teacher
	if err := database.DB.
		Preload("User").
		Preload("Department").
		Preload("Subjects").
		First(&teacher, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Faculty member not found",
		})
	}

	return c.JSON(fiber.Map{
		"faculty": utils.ToFacultyDTO(teacher),
	})
}

// GetFacultyByFacultyID looks a record up by the human-assigned faculty id
func (fc *FacultyController) GetFacultyByFacultyID(c *fiber.Ctx) error {
	facultyID := c.Params("faculty_id")
	if facultyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Faculty ID is required",
		})
	}

	var teacher models.Teacher
	if err := database.DB.
		Where("faculty_id = ?", facultyID).
		Preload("User").
		Preload("Department").
		Preload("Subjects").
		First(&teacher).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Faculty member not found",
		})
	}

	return c.JSON(fiber.Map{
		"faculty": utils.ToFacultyDTO(teacher),
	})
}

type facultyRequest struct {
	FacultyID    string `json:"facultyId" validate:"required,max=100"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"omitempty,min=8"`
	Phone        string `json:"phone" validate:"omitempty,max=20"`
	DepartmentID uint   `json:"departmentId" validate:"required"`
	SubjectIDs   []uint `json:"subjectIds"`
}

// CreateFaculty creates a faculty record and its backing user account
func (fc *FacultyController) CreateFaculty(c *fiber.Ctx) error {
	var req facultyRequest
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

	var department models.Department
	if err := database.DB.First(&department, req.DepartmentID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Department not found",
		})
	}

	var existingTeacher models.Teacher
	if err := database.DB.Where("faculty_id = ?", req.FacultyID).First(&existingTeacher).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Faculty member with this faculty ID already exists",
		})
	}
	var existingUser models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Email is already registered",
		})
	}

	// Generated password is returned once when the caller omits one
	password := req.Password
	generated := false
	if password == "" {
		random, err := utils.GenerateRandomString(12)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to generate password",
			})
		}
		password = random
		generated = true
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	var teacher models.Teacher
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Email:    req.Email,
			Password: hashed,
			Name:     req.Name,
			Role:     "TEACHER",
			Active:   true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		teacher = models.Teacher{
			UserID:       user.ID,
			FacultyID:    utils.SanitizeString(req.FacultyID),
			Name:         utils.SanitizeString(req.Name),
			Phone:        req.Phone,
			DepartmentID: req.DepartmentID,
		}
		if err := tx.Create(&teacher).Error; err != nil {
			return err
		}

		for _, subjectID := range req.SubjectIDs {
			var subject models.Subject
			if err := tx.First(&subject, subjectID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Subject not found")
			}
			link := models.TeacherSubject{TeacherID: teacher.ID, SubjectID: subjectID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create faculty member",
		})
	}

	database.DB.Preload("User").Preload("Department").Preload("Subjects").First(&teacher, teacher.ID)

	middleware.LogActivity(c, "CREATE", "faculties", teacher.ID, fiber.Map{"facultyId": teacher.FacultyID})

	response := fiber.Map{
		"message": "Faculty member created successfully",
		"faculty": utils.ToFacultyDTO(teacher),
	}
	if generated {
		response["generatedPassword"] = password
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// UpdateFaculty updates a faculty record and its subject links
func (fc *FacultyController) UpdateFaculty(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid faculty ID",
		})
	}

	var teacher models.Teacher
	if err := database.DB.First(&teacher, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Faculty member not found",
		})
	}

	var req struct {
		Name         string  `json:"name"`
		Phone        string  `json:"phone"`
		DepartmentID uint    `json:"departmentId"`
		SubjectIDs   *[]uint `json:"subjectIds"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.DepartmentID != 0 {
		var department models.Department
		if err := database.DB.First(&department, req.DepartmentID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Department not found",
			})
		}
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		updates := models.Teacher{
			Name:         req.Name,
			Phone:        req.Phone,
			DepartmentID: req.DepartmentID,
		}
		if err := tx.Model(&teacher).Updates(updates).Error; err != nil {
			return err
		}
		if req.Name != "" {
			if err := tx.Model(&models.User{}).Where("id = ?", teacher.UserID).Update("name", req.Name).Error; err != nil {
				return err
			}
		}

		// Replace subject links wholesale when the list is present
		if req.SubjectIDs != nil {
			if err := tx.Where("teacher_id = ?", teacher.ID).Delete(&models.TeacherSubject{}).Error; err != nil {
				return err
			}
			for _, subjectID := range *req.SubjectIDs {
				link := models.TeacherSubject{TeacherID: teacher.ID, SubjectID: subjectID}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update faculty member",
		})
	}

	database.DB.Preload("User").Preload("Department").Preload("Subjects").First(&teacher, teacher.ID)

	middleware.LogActivity(c, "UPDATE", "faculties", teacher.ID, req)

	return c.JSON(fiber.Map{
		"message": "Faculty member updated successfully",
		"faculty": utils.ToFacultyDTO(teacher),
	})
}

// DeleteFaculty removes a faculty record, its subject links and its account
func (fc *FacultyController) DeleteFaculty(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid faculty ID",
		})
	}

	var teacher models.Teacher
	if err := database.DB.First(&teacher, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Faculty member not found",
		})
	}

	var scheduleCount int64
	database.DB.Model(&models.Schedule{}).Where("teacher_id = ?", teacher.ID).Count(&scheduleCount)
	if scheduleCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Cannot delete faculty member referenced by schedules",
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("teacher_id = ?", teacher.ID).Delete(&models.TeacherSubject{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&teacher).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, teacher.UserID).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete faculty member",
		})
	}

	middleware.LogActivity(c, "DELETE", "faculties", teacher.ID, fiber.Map{"facultyId": teacher.FacultyID})

	return c.JSON(fiber.Map{
		"message": "Faculty member deleted successfully",
	})
}
