package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle belongs to a customer and is what work is performed on.
type Vehicle struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	Make         string         `gorm:"size:100;not null" json:"make"`
	Model        string         `gorm:"size:100;not null" json:"model"`
	Year         int            `gorm:"not null" json:"year"`
	VIN          *string        `gorm:"column:vin;size:17;uniqueIndex" json:"vin,omitempty"`
	LicensePlate *string        `gorm:"size:20;index" json:"license_plate,omitempty"`
	Color        *string        `gorm:"size:50" json:"color,omitempty"`
	Mileage      *int           `json:"mileage,omitempty"`
	Notes        *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (Vehicle) TableName() string {
	return "vehicles"
}
