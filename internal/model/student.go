package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CGPA is a number on the wire, not shopspring's default quoted string.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Gender is the set of accepted gender values for a student record.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// StudentStatus represents the enrollment status of a student.
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "Active"
	StudentStatusInactive  StudentStatus = "Inactive"
	StudentStatusGraduated StudentStatus = "Graduated"
)

// Student represents a student record. CreatedBy is set once from the
// authenticated caller and never changes; only that user may read or mutate
// the record. RollNumber is unique across the whole table, backed by a
// unique index.
type Student struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	RollNumber  string          `json:"rollNumber" gorm:"size:64;uniqueIndex;not null"`
	FirstName   string          `json:"firstName" gorm:"size:255;not null"`
	LastName    string          `json:"lastName" gorm:"size:255;not null"`
	Email       string          `json:"email" gorm:"size:255;not null"`
	Phone       string          `json:"phone" gorm:"size:32;not null"`
	DateOfBirth time.Time       `json:"dateOfBirth" gorm:"not null"`
	Gender      Gender          `json:"gender" gorm:"type:varchar(10);not null"`
	Address     string          `json:"address" gorm:"size:512;not null"`
	Class       string          `json:"class" gorm:"size:64;not null"`
	CGPA        decimal.Decimal `json:"cgpa" gorm:"type:decimal(3,2);not null;default:0"`
	Status      StudentStatus   `json:"status" gorm:"type:varchar(20);not null;default:'Active';index"`
	CreatedBy   uint            `json:"createdBy" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// Relations
	Owner User `json:"-" gorm:"foreignKey:CreatedBy"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// BeforeSave normalizes stored fields on every write: roll numbers are
// trimmed, emails are lower-cased.
func (s *Student) BeforeSave(tx *gorm.DB) error {
	s.RollNumber = strings.TrimSpace(s.RollNumber)
	s.Email = strings.ToLower(s.Email)
	return nil
}
