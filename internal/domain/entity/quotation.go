package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Quotation is a priced proposal that can be converted into an invoice once.
type Quotation struct {
	ID                 uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	QuotationNumber    string               `gorm:"size:32;not null;uniqueIndex" json:"quotation_number"`
	CustomerID         *uuid.UUID           `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	VehicleID          *uuid.UUID           `gorm:"type:uuid;index" json:"vehicle_id,omitempty"`
	CreatedByID        *uuid.UUID           `gorm:"type:uuid;index" json:"created_by_id,omitempty"`
	Totals             `gorm:"embedded"`
	Status             enum.QuotationStatus `gorm:"not null;default:0;index" json:"status"`
	ValidUntil         *time.Time           `gorm:"type:date" json:"valid_until,omitempty"`
	ConvertedInvoiceID *uuid.UUID           `gorm:"type:uuid;index" json:"converted_invoice_id,omitempty"`
	ConvertedAt        *time.Time           `json:"converted_at,omitempty"`
	Notes              *string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
	DeletedAt          gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vehicle  *Vehicle        `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Items    []QuotationItem `gorm:"foreignKey:QuotationID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quotation
func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

func (q *Quotation) AfterFind(tx *gorm.DB) error {
	q.deriveTaxRate()
	return nil
}

// TableName returns the table name for the Quotation model
func (Quotation) TableName() string {
	return "quotations"
}

// IsConverted reports whether an invoice was already produced from this quotation.
func (q *Quotation) IsConverted() bool {
	return q.Status == enum.QuotationStatusConverted
}

// QuotationItem represents a line item in a quotation
type QuotationItem struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	QuotationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"quotation_id"`
	Position    int           `gorm:"not null" json:"position"`
	ItemType    enum.ItemType `gorm:"not null;default:0" json:"item_type"`
	TireID      *uuid.UUID    `gorm:"type:uuid;index" json:"tire_id,omitempty"`
	Description string        `gorm:"size:500;not null" json:"description"`
	Quantity    int           `gorm:"not null" json:"quantity"`
	UnitPrice   float64       `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Total       float64       `gorm:"type:decimal(15,2);not null" json:"total"`
	CreatedAt   time.Time     `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new quotation item
func (qi *QuotationItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuotationItem model
func (QuotationItem) TableName() string {
	return "quotation_items"
}
