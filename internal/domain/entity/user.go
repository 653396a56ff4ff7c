package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User is an employee account. Most users are mirrored from the identity
// provider (ExternalID set); local accounts carry a bcrypt password instead.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ExternalID   *string        `gorm:"size:255;uniqueIndex" json:"external_id,omitempty"`
	Email        string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FirstName    string         `gorm:"size:255" json:"first_name"`
	LastName     string         `gorm:"size:255" json:"last_name"`
	Phone        *string        `gorm:"size:50" json:"phone,omitempty"`
	Role         enum.UserRole  `gorm:"not null;default:0" json:"role"`
	IsActive     bool           `gorm:"not null" json:"is_active"`
	PasswordHash *string        `gorm:"size:255" json:"-"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// FullName joins first and last name, falling back to the email.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
