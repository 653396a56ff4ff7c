package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
)

// LineItemRequest is one line of an invoice or quotation
type LineItemRequest struct {
	ItemType    *enum.ItemType `json:"item_type" binding:"required"`
	TireID      *uuid.UUID     `json:"tire_id"`
	Description string         `json:"description" binding:"max=500"`
	Quantity    int            `json:"quantity" binding:"required,min=1"`
	UnitPrice   float64        `json:"unit_price" binding:"min=0"`
}

// TaxRequest carries either a combined rate or a GST/PST split. Omitted rates
// fall back to the shop default.
type TaxRequest struct {
	TaxRate *float64 `json:"tax_rate" binding:"omitempty,min=0,max=1"`
	GSTRate *float64 `json:"gst_rate" binding:"omitempty,min=0,max=1"`
	PSTRate *float64 `json:"pst_rate" binding:"omitempty,min=0,max=1"`
}

// CreateInvoiceRequest creates an invoice for an existing customer
// (customer_id) or one created inline (customer).
type CreateInvoiceRequest struct {
	CustomerID    *uuid.UUID             `json:"customer_id"`
	Customer      *CreateCustomerRequest `json:"customer"`
	VehicleID     *uuid.UUID             `json:"vehicle_id"`
	Items         []LineItemRequest      `json:"items" binding:"required,min=1,dive"`
	TaxRequest
	PaymentMethod *enum.PaymentMethod `json:"payment_method"`
	DueDate       *time.Time          `json:"due_date"`
	Notes         *string             `json:"notes"`
}

// UpdateInvoiceRequest edits the non-financial fields of an invoice
type UpdateInvoiceRequest struct {
	VehicleID     *uuid.UUID          `json:"vehicle_id"`
	ClearVehicle  bool                `json:"clear_vehicle"`
	PaymentMethod *enum.PaymentMethod `json:"payment_method"`
	DueDate       *time.Time          `json:"due_date"`
	Notes         *string             `json:"notes"`
}

// PayInvoiceRequest records payment of an invoice
type PayInvoiceRequest struct {
	PaymentMethod *enum.PaymentMethod `json:"payment_method" binding:"required"`
}

// CreateQuotationRequest represents a quotation creation request
type CreateQuotationRequest struct {
	CustomerID *uuid.UUID        `json:"customer_id"`
	VehicleID  *uuid.UUID        `json:"vehicle_id"`
	Items      []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxRequest
	Status     *enum.QuotationStatus `json:"status"`
	ValidUntil *time.Time            `json:"valid_until"`
	Notes      *string               `json:"notes"`
}

// UpdateQuotationRequest represents a quotation update request. Items, when
// present, replace the existing lines.
type UpdateQuotationRequest struct {
	CustomerID *uuid.UUID        `json:"customer_id"`
	VehicleID  *uuid.UUID        `json:"vehicle_id"`
	Items      []LineItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	TaxRequest
	Status     *enum.QuotationStatus `json:"status"`
	ValidUntil *time.Time            `json:"valid_until"`
	Notes      *string               `json:"notes"`
}

// ConvertQuotationRequest supplies what a quotation lacks to become an invoice
type ConvertQuotationRequest struct {
	CustomerID    *uuid.UUID          `json:"customer_id"`
	VehicleID     *uuid.UUID          `json:"vehicle_id"`
	PaymentMethod *enum.PaymentMethod `json:"payment_method"`
}
