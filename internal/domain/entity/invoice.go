package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice is a bill issued to a customer. Items are fixed once created.
type Invoice struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber string              `gorm:"size:32;not null;uniqueIndex" json:"invoice_number"`
	CustomerID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"customer_id"`
	VehicleID     *uuid.UUID          `gorm:"type:uuid;index" json:"vehicle_id,omitempty"`
	CreatedByID   *uuid.UUID          `gorm:"type:uuid;index" json:"created_by_id,omitempty"`
	QuotationID   *uuid.UUID          `gorm:"type:uuid;index" json:"quotation_id,omitempty"`
	Totals        `gorm:"embedded"`
	Status        enum.InvoiceStatus  `gorm:"not null;default:0;index" json:"status"`
	PaymentMethod *enum.PaymentMethod `json:"payment_method,omitempty"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	DueDate       *time.Time          `gorm:"type:date" json:"due_date,omitempty"`
	Notes         *string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time           `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	DeletedAt     gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	Customer  *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vehicle   *Vehicle      `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	CreatedBy *User         `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Items     []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *Invoice) AfterFind(tx *gorm.DB) error {
	i.deriveTaxRate()
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// IsClosed reports whether the invoice can no longer change.
func (i *Invoice) IsClosed() bool {
	return i.Status == enum.InvoiceStatusPaid || i.Status == enum.InvoiceStatusCancelled
}

// InvoiceItem is one billable line. Position keeps the submitted order.
type InvoiceItem struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Position    int           `gorm:"not null" json:"position"`
	ItemType    enum.ItemType `gorm:"not null;default:0" json:"item_type"`
	TireID      *uuid.UUID    `gorm:"type:uuid;index" json:"tire_id,omitempty"`
	Description string        `gorm:"size:500;not null" json:"description"`
	Quantity    int           `gorm:"not null" json:"quantity"`
	UnitPrice   float64       `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Total       float64       `gorm:"type:decimal(15,2);not null" json:"total"`
	CreatedAt   time.Time     `json:"created_at"`

	Tire *Tire `gorm:"foreignKey:TireID" json:"tire,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
