package request

import "github.com/sangkips/autoshop-api/internal/domain/enum"

// UpdateRoleRequest changes a user's role
type UpdateRoleRequest struct {
	Role *enum.UserRole `json:"role" binding:"required"`
}

// UpdateStatusRequest activates or deactivates a user
type UpdateStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
