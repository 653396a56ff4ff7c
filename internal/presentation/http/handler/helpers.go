package handler

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/application/service"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/autoshop-api/internal/presentation/http/middleware"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/pagination"
	"github.com/sangkips/autoshop-api/pkg/tax"
	"github.com/sangkips/autoshop-api/pkg/timeutil"
)

// actorFrom builds the service actor for the authenticated caller.
func actorFrom(c *gin.Context) service.Actor {
	actor := service.Actor{IP: c.ClientIP()}
	actor.UserID, _ = middleware.UserIDFrom(c)
	actor.Role, _ = middleware.RoleFrom(c)
	if email, ok := c.Get(middleware.ContextUserEmail); ok {
		actor.Email, _ = email.(string)
	}
	return actor
}

// pathID parses the :id route parameter, writing a 400 on failure.
func pathID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the request body. Validator failures become a 422 with one
// entry per field; malformed JSON is a 400.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		fields := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperror.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		response.ValidationError(c, fields)
	case errors.Is(err, io.EOF):
		response.BadRequest(c, "Request body is required")
	default:
		response.BadRequest(c, "Invalid request body: "+err.Error())
	}
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "vin":
		return "must be a 17 character VIN without I, O or Q"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// paginationFrom reads page, per_page, search and sort parameters.
func paginationFrom(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	_ = c.ShouldBindQuery(params)
	params.Validate()
	return params
}

// queryUUID parses an optional uuid query parameter, writing a 400 on failure.
func queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return nil, false
	}
	return &id, true
}

// queryEnum parses an optional enum query parameter with parse.
func queryEnum[T any](c *gin.Context, name string, parse func(string) (T, error)) (*T, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := parse(raw)
	if err != nil {
		response.BadRequest(c, err.Error())
		return nil, false
	}
	return &v, true
}

// queryDateRange reads from/to as YYYY-MM-DD days in loc. to is inclusive.
func queryDateRange(c *gin.Context, loc *time.Location) (from, to *time.Time, ok bool) {
	if raw := c.Query("from"); raw != "" {
		t, err := time.ParseInLocation(timeutil.DateLayout, raw, loc)
		if err != nil {
			response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return nil, nil, false
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.ParseInLocation(timeutil.DateLayout, raw, loc)
		if err != nil {
			response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return nil, nil, false
		}
		end := timeutil.EndOfDay(t, loc)
		to = &end
	}
	return from, to, true
}

func lineItems(items []request.LineItemRequest) []service.LineItemInput {
	out := make([]service.LineItemInput, 0, len(items))
	for _, it := range items {
		in := service.LineItemInput{
			TireID:      it.TireID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
		if it.ItemType != nil {
			in.ItemType = *it.ItemType
		}
		out = append(out, in)
	}
	return out
}

func taxInput(t request.TaxRequest) tax.Input {
	return tax.Input{TaxRate: t.TaxRate, GSTRate: t.GSTRate, PSTRate: t.PSTRate}
}

// optionalTax returns nil when no rate was sent.
func optionalTax(t request.TaxRequest) *tax.Input {
	if t.TaxRate == nil && t.GSTRate == nil && t.PSTRate == nil {
		return nil
	}
	in := taxInput(t)
	return &in
}
