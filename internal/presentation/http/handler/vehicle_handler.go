package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoshop-api/internal/application/service"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/response"
)

// VehicleHandler handles vehicle HTTP requests
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// List handles listing vehicles, optionally for one customer_id
func (h *VehicleHandler) List(c *gin.Context) {
	customerID, ok := queryUUID(c, "customer_id")
	if !ok {
		return
	}

	result, err := h.vehicleService.ListVehicles(c.Request.Context(), repository.VehicleFilter{
		Pagination: paginationFrom(c),
		CustomerID: customerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Vehicles retrieved successfully", result)
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var req request.CreateVehicleRequest
	if !bindJSON(c, &req) {
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), actorFrom(c), &service.CreateVehicleInput{
		CustomerID:   req.CustomerID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		VIN:          req.VIN,
		LicensePlate: req.LicensePlate,
		Color:        req.Color,
		Mileage:      req.Mileage,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Vehicle created successfully", vehicle)
}

func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "vehicle")
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle retrieved successfully", vehicle)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "vehicle")
	if !ok {
		return
	}

	var req request.UpdateVehicleRequest
	if !bindJSON(c, &req) {
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), actorFrom(c), &service.UpdateVehicleInput{
		ID:           id,
		CustomerID:   req.CustomerID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		VIN:          req.VIN,
		LicensePlate: req.LicensePlate,
		Color:        req.Color,
		Mileage:      req.Mileage,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle updated successfully", vehicle)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "vehicle")
	if !ok {
		return
	}

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), actorFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle deleted successfully", nil)
}
