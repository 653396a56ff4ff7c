package request

import "github.com/google/uuid"

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=255"`
	BusinessName *string `json:"business_name" binding:"omitempty,max=255"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Address      *string `json:"address"`
	Notes        *string `json:"notes"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=255"`
	BusinessName *string `json:"business_name" binding:"omitempty,max=255"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Address      *string `json:"address"`
	Notes        *string `json:"notes"`
}

// CreateVehicleRequest represents a vehicle creation request
type CreateVehicleRequest struct {
	CustomerID   uuid.UUID `json:"customer_id" binding:"required"`
	Make         string    `json:"make" binding:"required,max=100"`
	Model        string    `json:"model" binding:"required,max=100"`
	Year         int       `json:"year" binding:"required,min=1900,max=2100"`
	VIN          *string   `json:"vin" binding:"omitempty,vin"`
	LicensePlate *string   `json:"license_plate" binding:"omitempty,max=20"`
	Color        *string   `json:"color" binding:"omitempty,max=50"`
	Mileage      *int      `json:"mileage" binding:"omitempty,min=0"`
	Notes        *string   `json:"notes"`
}

// UpdateVehicleRequest represents a vehicle update request
type UpdateVehicleRequest struct {
	CustomerID   *uuid.UUID `json:"customer_id"`
	Make         *string    `json:"make" binding:"omitempty,min=1,max=100"`
	Model        *string    `json:"model" binding:"omitempty,min=1,max=100"`
	Year         *int       `json:"year" binding:"omitempty,min=1900,max=2100"`
	VIN          *string    `json:"vin" binding:"omitempty,vin"`
	LicensePlate *string    `json:"license_plate" binding:"omitempty,max=20"`
	Color        *string    `json:"color" binding:"omitempty,max=50"`
	Mileage      *int       `json:"mileage" binding:"omitempty,min=0"`
	Notes        *string    `json:"notes"`
}
