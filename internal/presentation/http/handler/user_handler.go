package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoshop-api/internal/application/service"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/autoshop-api/internal/presentation/http/middleware"
)

// UserHandler handles user management HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles listing users with pagination
// @Summary List Users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(15)
// @Param search query string false "Search query"
// @Param role query string false "ADMIN, MANAGER or STAFF"
// @Success 200 {object} response.APIResponse
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	role, ok := queryEnum(c, "role", enum.ParseUserRole)
	if !ok {
		return
	}

	result, err := h.userService.ListUsers(c.Request.Context(), paginationFrom(c), role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Users retrieved successfully", result)
}

// Me returns the authenticated user
func (h *UserHandler) Me(c *gin.Context) {
	v, _ := c.Get(middleware.ContextUser)
	user, ok := v.(*entity.User)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	response.OK(c, "Profile retrieved successfully", user)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved successfully", user)
}

// UpdateRole changes a user's role and pushes it to the identity provider
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}

	var req request.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), actorFrom(c), id, *req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User role updated successfully", user)
}

func (h *UserHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}

	var req request.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateStatus(c.Request.Context(), actorFrom(c), id, *req.IsActive)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User status updated successfully", user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), actorFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User deleted successfully", nil)
}
