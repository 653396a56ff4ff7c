package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoshop-api/internal/application/service"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
	invoiceService  *service.InvoiceService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService, invoiceService *service.InvoiceService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, invoiceService: invoiceService}
}

// List handles listing customers. search matches name, business name, email
// and phone.
func (h *CustomerHandler) List(c *gin.Context) {
	result, err := h.customerService.ListCustomers(c.Request.Context(), paginationFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Customers retrieved successfully", result)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), actorFrom(c), customerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a customer by ID
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "customer")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "customer")
	if !ok {
		return
	}

	var req request.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), actorFrom(c), &service.UpdateCustomerInput{
		ID:           id,
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "customer")
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), actorFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}

// Vehicles lists the customer's vehicles
func (h *CustomerHandler) Vehicles(c *gin.Context) {
	id, ok := pathID(c, "customer")
	if !ok {
		return
	}

	vehicles, err := h.customerService.ListVehicles(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicles retrieved successfully", vehicles)
}

// Invoices lists the customer's invoices, newest first
func (h *CustomerHandler) Invoices(c *gin.Context) {
	id, ok := pathID(c, "customer")
	if !ok {
		return
	}

	if _, err := h.customerService.GetCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), repository.InvoiceFilter{
		Pagination: paginationFrom(c),
		CustomerID: &id,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Invoices retrieved successfully", result)
}

func customerInput(req *request.CreateCustomerRequest) *service.CustomerInput {
	return &service.CustomerInput{
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Notes:        req.Notes,
	}
}
