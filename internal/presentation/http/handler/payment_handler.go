package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoshop-api/internal/application/service"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles employee payroll payments
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) List(c *gin.Context) {
	employeeID, ok := queryUUID(c, "employee_id")
	if !ok {
		return
	}

	result, err := h.paymentService.ListPayments(c.Request.Context(), repository.PaymentFilter{
		Pagination: paginationFrom(c),
		EmployeeID: employeeID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Payments retrieved successfully", result)
}

// Create pays an employee for READY jobs. The amount is the sum of the
// jobs' pay and every job is marked PAID in the same transaction.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req request.CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), actorFrom(c), &service.CreatePaymentInput{
		EmployeeID: req.EmployeeID,
		JobIDs:     req.JobIDs,
		Method:     *req.Method,
		Reference:  req.Reference,
		Notes:      req.Notes,
		PaidAt:     req.PaidAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "payment")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", payment)
}
