package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoshop-api/internal/application/service"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService  *service.InvoiceService
	reportService   *service.ReportService
	documentService *service.DocumentService
	printerService  *service.PrinterService
	loc             *time.Location
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(
	invoiceService *service.InvoiceService,
	reportService *service.ReportService,
	documentService *service.DocumentService,
	printerService *service.PrinterService,
	loc *time.Location,
) *InvoiceHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &InvoiceHandler{
		invoiceService:  invoiceService,
		reportService:   reportService,
		documentService: documentService,
		printerService:  printerService,
		loc:             loc,
	}
}

// List handles listing invoices
// @Summary List Invoices
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param status query string false "PENDING, PAID or CANCELLED"
// @Param customer_id query string false "Customer ID"
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {object} response.APIResponse
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	status, ok := queryEnum(c, "status", enum.ParseInvoiceStatus)
	if !ok {
		return
	}
	customerID, ok := queryUUID(c, "customer_id")
	if !ok {
		return
	}
	from, to, ok := queryDateRange(c, h.loc)
	if !ok {
		return
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), repository.InvoiceFilter{
		Pagination: paginationFrom(c),
		Status:     status,
		CustomerID: customerID,
		From:       from,
		To:         to,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Invoices retrieved successfully", result)
}

// Create handles creating an invoice. Tire lines decrement stock in the same
// transaction.
// @Summary Create Invoice
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param request body request.CreateInvoiceRequest true "Invoice"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	ref := service.CustomerRef{ID: req.CustomerID}
	if req.Customer != nil {
		ref.New = customerInput(req.Customer)
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), actorFrom(c), &service.CreateInvoiceInput{
		Customer:      ref,
		VehicleID:     req.VehicleID,
		Items:         lineItems(req.Items),
		Tax:           taxInput(req.TaxRequest),
		PaymentMethod: req.PaymentMethod,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	hideItemCosts(actorFrom(c), invoice.Items)
	response.Created(c, "Invoice created successfully", invoice)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	hideItemCosts(actorFrom(c), invoice.Items)
	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Update edits notes, vehicle, payment method and due date. Amounts and lines
// are immutable once issued.
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "invoice")
	if !ok {
		return
	}

	var req request.UpdateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), actorFrom(c), &service.UpdateInvoiceInput{
		ID:            id,
		VehicleID:     req.VehicleID,
		ClearVehicle:  req.ClearVehicle,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
		DueDate:       req.DueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	hideItemCosts(actorFrom(c), invoice.Items)
	response.OK(c, "Invoice updated successfully", invoice)
}

func (h *InvoiceHandler) Pay(c *gin.Context) {
	id, ok := pathID(c, "invoice")
	if !ok {
		return
	}

	var req request.PayInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.PayInvoice(c.Request.Context(), actorFrom(c), id, *req.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}

	hideItemCosts(actorFrom(c), invoice.Items)
	response.OK(c, "Invoice marked as paid", invoice)
}

// Cancel voids a pending invoice and restocks its tire lines
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CancelInvoice(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	hideItemCosts(actorFrom(c), invoice.Items)
	response.OK(c, "Invoice cancelled successfully", invoice)
}

// DailyCash reports PAID invoices for ?date=YYYY-MM-DD (default today)
// @Summary Daily Cash Report
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param date query string false "Day to report, YYYY-MM-DD"
// @Success 200 {object} response.APIResponse
// @Router /invoices/reports/daily-cash [get]
func (h *InvoiceHandler) DailyCash(c *gin.Context) {
	report, err := h.reportService.DailyCash(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily cash report generated successfully", report)
}

// PDF streams the invoice as a PDF attachment
func (h *InvoiceHandler) PDF(c *gin.Context) {
	id, ok := pathID(c, "invoice")
	if !ok {
		return
	}

	doc, err := h.documentService.InvoicePDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.PDF(c, doc.Filename, doc.Location, doc.Data)
}

// Email sends the invoice PDF to the customer or to the address in the body
func (h *InvoiceHandler) Email(c *gin.Context) {
	id, ok := pathID(c, "invoice")
	if !ok {
		return
	}

	var req request.EmailInvoiceRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	to, err := h.documentService.EmailInvoice(c.Request.Context(), actorFrom(c), id, req.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice emailed successfully", gin.H{"sent_to": to})
}

// Print sends the invoice receipt to the thermal printer. When printing fails
// the receipt is still returned with a warning.
func (h *InvoiceHandler) Print(c *gin.Context) {
	id, ok := pathID(c, "invoice")
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintInvoice(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		if receipt != nil {
			response.Partial(c, "Receipt generated but printing failed", gin.H{"receipt": receipt}, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice receipt printed successfully", gin.H{"receipt": receipt})
}

func hideItemCosts(actor service.Actor, items []entity.InvoiceItem) {
	for i := range items {
		service.HideCost(actor, items[i].Tire)
	}
}
