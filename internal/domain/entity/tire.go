package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Tire is a stocked tire SKU. Brand, model, size and condition identify it.
type Tire struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Brand       string             `gorm:"size:100;not null;uniqueIndex:idx_tire_spec" json:"brand"`
	Model       string             `gorm:"size:100;not null;uniqueIndex:idx_tire_spec" json:"model"`
	Size        string             `gorm:"size:50;not null;uniqueIndex:idx_tire_spec;index" json:"size"`
	Type        enum.TireType      `gorm:"not null;default:0" json:"type"`
	Condition   enum.TireCondition `gorm:"not null;default:0;uniqueIndex:idx_tire_spec" json:"condition"`
	Price       float64            `gorm:"type:decimal(15,2);not null" json:"price"`
	Cost        *float64           `gorm:"type:decimal(15,2)" json:"cost,omitempty"`
	Quantity    int                `gorm:"not null;default:0" json:"quantity"`
	MinStock    int                `gorm:"not null;default:0" json:"min_stock"`
	Location    *string            `gorm:"size:100" json:"location,omitempty"`
	Description *string            `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`

	LowStock bool `gorm:"-" json:"low_stock"`
}

// BeforeCreate generates a UUID before creating a new tire
func (t *Tire) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// AfterFind derives the low-stock flag.
func (t *Tire) AfterFind(tx *gorm.DB) error {
	t.LowStock = t.IsLowStock()
	return nil
}

// TableName returns the table name for the Tire model
func (Tire) TableName() string {
	return "tires"
}

// IsLowStock reports whether on-hand quantity is at or below the threshold.
func (t *Tire) IsLowStock() bool {
	return t.Quantity <= t.MinStock
}

// Label is the human readable line used on documents and in errors.
func (t *Tire) Label() string {
	return t.Brand + " " + t.Model + " " + t.Size
}
