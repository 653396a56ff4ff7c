package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoshop-api/internal/application/service"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/response"
)

// TireHandler handles tire inventory HTTP requests. Purchase cost is
// stripped from every response for roles without tires:view_cost.
type TireHandler struct {
	tireService *service.TireService
}

// NewTireHandler creates a new tire handler
func NewTireHandler(tireService *service.TireService) *TireHandler {
	return &TireHandler{tireService: tireService}
}

// List handles listing tires
// @Summary List Tires
// @Tags tires
// @Security BearerAuth
// @Produce json
// @Param size query string false "Exact tire size, e.g. 225/65R17"
// @Param type query string false "ALL_SEASON, SUMMER, WINTER, PERFORMANCE or OFF_ROAD"
// @Param condition query string false "NEW or USED"
// @Param low_stock query bool false "Only tires at or below min stock"
// @Param in_stock query bool false "Only tires with quantity > 0"
// @Success 200 {object} response.APIResponse
// @Router /tires [get]
func (h *TireHandler) List(c *gin.Context) {
	tireType, ok := queryEnum(c, "type", enum.ParseTireType)
	if !ok {
		return
	}
	condition, ok := queryEnum(c, "condition", enum.ParseTireCondition)
	if !ok {
		return
	}
	lowStock, _ := strconv.ParseBool(c.Query("low_stock"))
	inStock, _ := strconv.ParseBool(c.Query("in_stock"))

	result, err := h.tireService.ListTires(c.Request.Context(), repository.TireFilter{
		Pagination: paginationFrom(c),
		Size:       c.Query("size"),
		Type:       tireType,
		Condition:  condition,
		LowStock:   lowStock,
		InStock:    inStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.hideCost(c, result.Items)
	response.Page(c, "Tires retrieved successfully", result)
}

// LowStock lists tires at or below their minimum stock level
func (h *TireHandler) LowStock(c *gin.Context) {
	tires, err := h.tireService.ListLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	h.hideCost(c, tires)
	response.OK(c, "Low stock tires retrieved successfully", tires)
}

func (h *TireHandler) Create(c *gin.Context) {
	var req request.CreateTireRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.TireInput{
		Brand:       req.Brand,
		Model:       req.Model,
		Size:        req.Size,
		Price:       req.Price,
		Cost:        req.Cost,
		Quantity:    req.Quantity,
		MinStock:    req.MinStock,
		Location:    req.Location,
		Description: req.Description,
	}
	if req.Type != nil {
		input.Type = *req.Type
	}
	if req.Condition != nil {
		input.Condition = *req.Condition
	}

	tire, err := h.tireService.CreateTire(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	service.HideCost(actorFrom(c), tire)
	response.Created(c, "Tire created successfully", tire)
}

func (h *TireHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "tire")
	if !ok {
		return
	}

	tire, err := h.tireService.GetTire(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	service.HideCost(actorFrom(c), tire)
	response.OK(c, "Tire retrieved successfully", tire)
}

func (h *TireHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "tire")
	if !ok {
		return
	}

	var req request.UpdateTireRequest
	if !bindJSON(c, &req) {
		return
	}

	tire, err := h.tireService.UpdateTire(c.Request.Context(), actorFrom(c), &service.UpdateTireInput{
		ID:          id,
		Brand:       req.Brand,
		Model:       req.Model,
		Size:        req.Size,
		Type:        req.Type,
		Condition:   req.Condition,
		Price:       req.Price,
		Cost:        req.Cost,
		MinStock:    req.MinStock,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	service.HideCost(actorFrom(c), tire)
	response.OK(c, "Tire updated successfully", tire)
}

func (h *TireHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "tire")
	if !ok {
		return
	}

	if err := h.tireService.DeleteTire(c.Request.Context(), actorFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tire deleted successfully", nil)
}

// AdjustStock adds, removes or sets on-hand quantity
func (h *TireHandler) AdjustStock(c *gin.Context) {
	id, ok := pathID(c, "tire")
	if !ok {
		return
	}

	var req request.AdjustStockRequest
	if !bindJSON(c, &req) {
		return
	}

	tire, err := h.tireService.AdjustStock(c.Request.Context(), actorFrom(c), &service.AdjustStockInput{
		TireID:   id,
		Type:     *req.Type,
		Quantity: req.Quantity,
		Reason:   req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	service.HideCost(actorFrom(c), tire)
	response.OK(c, "Stock adjusted successfully", tire)
}

func (h *TireHandler) hideCost(c *gin.Context, tires []entity.Tire) {
	actor := actorFrom(c)
	for i := range tires {
		service.HideCost(actor, &tires[i])
	}
}
