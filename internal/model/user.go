package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role controls access to catalog write operations.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered customer or administrator.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null" validate:"required"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'user'" validate:"required,oneof=user admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Validate runs schema validation and returns the flat list of field errors.
func (u *User) Validate() FieldErrors {
	return validateEntity(u)
}
