package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoshop-api/internal/application/service"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/response"
)

// QuotationHandler handles quotation HTTP requests
type QuotationHandler struct {
	quotationService *service.QuotationService
	documentService  *service.DocumentService
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(quotationService *service.QuotationService, documentService *service.DocumentService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService, documentService: documentService}
}

func (h *QuotationHandler) List(c *gin.Context) {
	status, ok := queryEnum(c, "status", enum.ParseQuotationStatus)
	if !ok {
		return
	}
	customerID, ok := queryUUID(c, "customer_id")
	if !ok {
		return
	}

	result, err := h.quotationService.ListQuotations(c.Request.Context(), repository.QuotationFilter{
		Pagination: paginationFrom(c),
		Status:     status,
		CustomerID: customerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Quotations retrieved successfully", result)
}

func (h *QuotationHandler) Create(c *gin.Context) {
	var req request.CreateQuotationRequest
	if !bindJSON(c, &req) {
		return
	}

	quotation, err := h.quotationService.CreateQuotation(c.Request.Context(), actorFrom(c), &service.CreateQuotationInput{
		CustomerID: req.CustomerID,
		VehicleID:  req.VehicleID,
		Items:      lineItems(req.Items),
		Tax:        taxInput(req.TaxRequest),
		Status:     req.Status,
		ValidUntil: req.ValidUntil,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation created successfully", quotation)
}

func (h *QuotationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "quotation")
	if !ok {
		return
	}

	quotation, err := h.quotationService.GetQuotation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation retrieved successfully", quotation)
}

// Update edits a quotation that has not been converted. Sending items
// replaces every line and recomputes totals.
func (h *QuotationHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "quotation")
	if !ok {
		return
	}

	var req request.UpdateQuotationRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdateQuotationInput{
		ID:         id,
		CustomerID: req.CustomerID,
		VehicleID:  req.VehicleID,
		Tax:        optionalTax(req.TaxRequest),
		Status:     req.Status,
		ValidUntil: req.ValidUntil,
		Notes:      req.Notes,
	}
	if req.Items != nil {
		input.Items = lineItems(req.Items)
	}

	quotation, err := h.quotationService.UpdateQuotation(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation updated successfully", quotation)
}

func (h *QuotationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "quotation")
	if !ok {
		return
	}

	if err := h.quotationService.DeleteQuotation(c.Request.Context(), actorFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation deleted successfully", nil)
}

// Convert turns the quotation into an invoice. A quotation converts once.
// @Summary Convert Quotation
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body request.ConvertQuotationRequest false "Customer, vehicle and payment method overrides"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /quotations/{id}/convert [post]
func (h *QuotationHandler) Convert(c *gin.Context) {
	id, ok := pathID(c, "quotation")
	if !ok {
		return
	}

	var req request.ConvertQuotationRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	invoice, err := h.quotationService.ConvertQuotation(c.Request.Context(), actorFrom(c), &service.ConvertQuotationInput{
		QuotationID:   id,
		CustomerID:    req.CustomerID,
		VehicleID:     req.VehicleID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	hideItemCosts(actorFrom(c), invoice.Items)
	response.Created(c, "Quotation converted to invoice successfully", invoice)
}

func (h *QuotationHandler) PDF(c *gin.Context) {
	id, ok := pathID(c, "quotation")
	if !ok {
		return
	}

	doc, err := h.documentService.QuotationPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.PDF(c, doc.Filename, doc.Location, doc.Data)
}
