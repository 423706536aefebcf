package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// User model
type User struct {
	BaseModel
	Email    string `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Password string `json:"-" gorm:"size:255;not null"`
	Name     string `json:"name" gorm:"size:200;not null"`
	Role     string `json:"role" gorm:"size:50;not null;default:'TEACHER';type:enum('ADMIN','TEACHER','STUDENT')"` // ADMIN, TEACHER, STUDENT
	Active   bool   `json:"is_active" gorm:"default:true"`

	// Relationships
	Teacher *Teacher `json:"teacher,omitempty" gorm:"foreignKey:UserID"`
}

// Department model
type Department struct {
	BaseModel
	Name string `json:"name" gorm:"size:255;not null;uniqueIndex"`
	Code string `json:"code" gorm:"size:50;not null;uniqueIndex"`

	// Relationships
	Subjects []Subject `json:"subjects,omitempty" gorm:"foreignKey:DepartmentID"`
	Teachers []Teacher `json:"teachers,omitempty" gorm:"foreignKey:DepartmentID"`
}

// Subject model
type Subject struct {
	BaseModel
	Name         string `json:"name" gorm:"size:255;not null"`
	Code         string `json:"code" gorm:"size:100;uniqueIndex"`
	DepartmentID uint   `json:"departmentId" gorm:"not null;index"`
	Semester     int    `json:"semester" gorm:"not null;default:1"`
	Credits      int    `json:"credits" gorm:"default:3"`

	// Relationships
	Department Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
}

// Teacher is a faculty record backed by a User account
type Teacher struct {
	BaseModel
	UserID       uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	FacultyID    string `json:"facultyId" gorm:"size:100;not null;uniqueIndex"`
	Name         string `json:"name" gorm:"size:200;not null"`
	Phone        string `json:"phone" gorm:"size:20"`
	DepartmentID uint   `json:"departmentId" gorm:"not null;index"`

	// Relationships
	User       User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Department Department       `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Subjects   []TeacherSubject `json:"subjects,omitempty" gorm:"foreignKey:TeacherID"`
}

// TeacherSubject links a faculty member to a subject they can teach
type TeacherSubject struct {
	BaseModel
	TeacherID uint `json:"teacher_id" gorm:"not null;index:idx_teacher_subject,unique"`
	SubjectID uint `json:"subject_id" gorm:"not null;index:idx_teacher_subject,unique"`

	// Relationships
	Teacher Teacher `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Subject Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
}

// Room model. The room catalog is used for validation and capacity display;
// schedules store the raw room identifier string, not a foreign key.
type Room struct {
	BaseModel
	Name     string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Type     string `json:"type" gorm:"size:50;not null;default:'CLASSROOM';type:enum('CLASSROOM','LAB','SEMINAR','AUDITORIUM')"` // CLASSROOM, LAB, SEMINAR, AUDITORIUM
	Capacity int    `json:"capacity" gorm:"not null"`
	Building string `json:"building" gorm:"size:100"`
}

// TimeSlotConfig is an administrator-configured named interval. Slots are
// soft-deleted via IsActive so schedules that reference them keep working.
type TimeSlotConfig struct {
	BaseModel
	SlotID    string `json:"slotId" gorm:"size:100;not null;uniqueIndex"`
	StartTime string `json:"startTime" gorm:"size:5;not null"` // "09:00"
	EndTime   string `json:"endTime" gorm:"size:5;not null"`   // "10:00"
	Label     string `json:"label" gorm:"size:100;not null"`
	IsBreak   bool   `json:"isBreak" gorm:"default:false"`
	Order     int    `json:"order" gorm:"not null;default:1"`
	IsActive  bool   `json:"isActive" gorm:"default:true"`
}

// Schedule is one weekly class occurrence. Uniqueness of teacher/room/class
// per overlapping time range is enforced only by the pre-submit conflict
// check, not by a database constraint.
type Schedule struct {
	BaseModel
	AcademicYear  string     `json:"academicYear" gorm:"size:20;not null;index:idx_schedule_scope"`
	Semester      int        `json:"semester" gorm:"not null;index:idx_schedule_scope"`
	DepartmentID  uint       `json:"departmentId" gorm:"not null;index:idx_schedule_scope"`
	ClassSection  string     `json:"classSection" gorm:"size:10;not null;index:idx_schedule_scope"`
	Day           string     `json:"day" gorm:"size:20;not null;type:enum('MONDAY','TUESDAY','WEDNESDAY','THURSDAY','FRIDAY','SATURDAY')"`
	TimeSlotID    *string    `json:"timeSlotId" gorm:"size:100;default:null"` // nil in custom time mode
	StartTime     string     `json:"startTime" gorm:"size:5;not null"`
	EndTime       string     `json:"endTime" gorm:"size:5;not null"`
	SubjectID     uint       `json:"subjectId" gorm:"not null"`
	TeacherID     uint       `json:"teacherId" gorm:"not null"`
	RoomID        string     `json:"roomId" gorm:"size:100;not null;default:'TBA'"` // free-text identifier, "TBA" when unassigned
	SessionType   string     `json:"sessionType" gorm:"size:20;not null;default:'LECTURE';type:enum('LECTURE','LAB','TUTORIAL')"`
	Duration      int        `json:"duration" gorm:"not null;default:1"` // slot units, display only
	IsMandatory   bool       `json:"isMandatory" gorm:"default:true"`
	Notes         string     `json:"notes" gorm:"type:text"`
	RepeatWeekly  bool       `json:"repeatWeekly" gorm:"default:true"`
	EffectiveFrom *time.Time `json:"effectiveFrom"`
	EffectiveTill *time.Time `json:"effectiveTill"`
	Status        string     `json:"status" gorm:"size:20;not null;default:'DRAFT';type:enum('DRAFT','PUBLISHED')"`
	TimetableType string     `json:"timetableType" gorm:"size:20;not null;default:'REGULAR';type:enum('REGULAR','EXAM','SPECIAL')"`

	// Relationships
	Subject    Subject    `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Teacher    Teacher    `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Department Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
}

// Log model for activity tracking
type ActivityLog struct {
	BaseModel
	UserID     uint   `json:"user_id"`
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID uint   `json:"resource_id"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
