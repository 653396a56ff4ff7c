package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a person or business the shop bills.
type Customer struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	BusinessName *string        `gorm:"size:255" json:"business_name,omitempty"`
	Email        *string        `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	Phone        *string        `gorm:"size:50;index" json:"phone,omitempty"`
	Address      *string        `gorm:"type:text" json:"address,omitempty"`
	Notes        *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Vehicles []Vehicle `gorm:"foreignKey:CustomerID" json:"vehicles,omitempty"`
	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// DisplayName prefers the business name for invoices addressed to companies.
func (c *Customer) DisplayName() string {
	if c.BusinessName != nil && *c.BusinessName != "" {
		return *c.BusinessName + " (" + c.Name + ")"
	}
	return c.Name
}
