package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoshop-api/internal/application/service"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/response"
)

// AppointmentHandler handles appointment HTTP requests
type AppointmentHandler struct {
	appointmentService *service.AppointmentService
	loc                *time.Location
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *service.AppointmentService, loc *time.Location) *AppointmentHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AppointmentHandler{appointmentService: appointmentService, loc: loc}
}

// List handles listing appointments with status, customer, assignee and
// date range filters
func (h *AppointmentHandler) List(c *gin.Context) {
	status, ok := queryEnum(c, "status", enum.ParseAppointmentStatus)
	if !ok {
		return
	}
	customerID, ok := queryUUID(c, "customer_id")
	if !ok {
		return
	}
	assignedTo, ok := queryUUID(c, "assigned_to_id")
	if !ok {
		return
	}
	from, to, ok := queryDateRange(c, h.loc)
	if !ok {
		return
	}

	result, err := h.appointmentService.ListAppointments(c.Request.Context(), repository.AppointmentFilter{
		Pagination:   paginationFrom(c),
		Status:       status,
		CustomerID:   customerID,
		AssignedToID: assignedTo,
		From:         from,
		To:           to,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Appointments retrieved successfully", result)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req request.CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(c.Request.Context(), actorFrom(c), &service.CreateAppointmentInput{
		CustomerID:      req.CustomerID,
		VehicleID:       req.VehicleID,
		AssignedToID:    req.AssignedToID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		ServiceType:     req.ServiceType,
		Status:          req.Status,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "appointment")
	if !ok {
		return
	}

	appointment, err := h.appointmentService.GetAppointment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "appointment")
	if !ok {
		return
	}

	var req request.UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.UpdateAppointment(c.Request.Context(), actorFrom(c), &service.UpdateAppointmentInput{
		ID:              id,
		VehicleID:       req.VehicleID,
		AssignedToID:    req.AssignedToID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		ServiceType:     req.ServiceType,
		Status:          req.Status,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "appointment")
	if !ok {
		return
	}

	if err := h.appointmentService.DeleteAppointment(c.Request.Context(), actorFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment deleted successfully", nil)
}

// Remind texts the customer a reminder for the appointment
func (h *AppointmentHandler) Remind(c *gin.Context) {
	id, ok := pathID(c, "appointment")
	if !ok {
		return
	}

	appointment, err := h.appointmentService.SendReminder(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reminder sent successfully", appointment)
}
