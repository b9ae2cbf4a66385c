package model

import "time"

// User is an authenticated account. Every student record belongs to exactly
// one user via Student.CreatedBy.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations
	Students []Student `json:"students,omitempty" gorm:"foreignKey:CreatedBy"`
}
