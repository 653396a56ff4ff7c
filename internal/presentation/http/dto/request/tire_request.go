package request

import "github.com/sangkips/autoshop-api/internal/domain/enum"

// CreateTireRequest represents a tire creation request
type CreateTireRequest struct {
	Brand       string              `json:"brand" binding:"required,max=100"`
	Model       string              `json:"model" binding:"required,max=100"`
	Size        string              `json:"size" binding:"required,max=50"`
	Type        *enum.TireType      `json:"type" binding:"required"`
	Condition   *enum.TireCondition `json:"condition"`
	Price       float64             `json:"price" binding:"min=0"`
	Cost        *float64            `json:"cost" binding:"omitempty,min=0"`
	Quantity    int                 `json:"quantity" binding:"min=0"`
	MinStock    int                 `json:"min_stock" binding:"min=0"`
	Location    *string             `json:"location" binding:"omitempty,max=100"`
	Description *string             `json:"description"`
}

// UpdateTireRequest represents a tire update request. Quantity only changes
// through stock adjustments.
type UpdateTireRequest struct {
	Brand       *string             `json:"brand" binding:"omitempty,min=1,max=100"`
	Model       *string             `json:"model" binding:"omitempty,min=1,max=100"`
	Size        *string             `json:"size" binding:"omitempty,min=1,max=50"`
	Type        *enum.TireType      `json:"type"`
	Condition   *enum.TireCondition `json:"condition"`
	Price       *float64            `json:"price" binding:"omitempty,min=0"`
	Cost        *float64            `json:"cost" binding:"omitempty,min=0"`
	MinStock    *int                `json:"min_stock" binding:"omitempty,min=0"`
	Location    *string             `json:"location" binding:"omitempty,max=100"`
	Description *string             `json:"description"`
}

// AdjustStockRequest represents a manual stock movement
type AdjustStockRequest struct {
	Type     *enum.StockAdjustmentType `json:"type" binding:"required"`
	Quantity int                       `json:"quantity"`
	Reason   string                    `json:"reason" binding:"max=500"`
}
