package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/autoshop-api/internal/config"
	"github.com/sangkips/autoshop-api/internal/domain/authz"
	domainRepo "github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/internal/infrastructure/cache"
	"github.com/sangkips/autoshop-api/internal/presentation/http/handler"
	"github.com/sangkips/autoshop-api/internal/presentation/http/middleware"
	"gorm.io/gorm"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Webhook     *handler.WebhookHandler
	Customer    *handler.CustomerHandler
	Vehicle     *handler.VehicleHandler
	Tire        *handler.TireHandler
	Invoice     *handler.InvoiceHandler
	Quotation   *handler.QuotationHandler
	Appointment *handler.AppointmentHandler
	Job         *handler.JobHandler
	Payment     *handler.PaymentHandler
	User        *handler.UserHandler
	Dashboard   *handler.DashboardHandler
	Printer     *handler.PrinterHandler
	Audit       *handler.AuditHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Authenticator   middleware.Authenticator
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	DB              *gorm.DB
	Cache           *cache.Cache
	RateLimiter     *middleware.UserRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", health(deps))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(api, h)
		api.POST("/webhooks/identity", h.Webhook.Identity)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Authenticator))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}
		protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))

		registerProtectedRoutes(protected, h)
	}

	return router
}

// RateLimiterFor converts the configured "requests per duration seconds"
// into a per-user limiter.
func RateLimiterFor(cfg config.RateLimitConfig) *middleware.UserRateLimiter {
	rl := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rl.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rl.BurstSize = cfg.Requests
	}
	return middleware.NewUserRateLimiter(rl)
}

func health(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, code := "ok", http.StatusOK
		checks := gin.H{}

		if sqlDB, err := deps.DB.DB(); err != nil {
			checks["database"] = err.Error()
		} else if err := sqlDB.PingContext(ctx); err != nil {
			checks["database"] = err.Error()
		} else {
			checks["database"] = "ok"
		}
		if checks["database"] != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		// Redis is optional; a failure degrades caching only.
		switch {
		case !deps.Cache.Enabled():
			checks["redis"] = "disabled"
		case deps.Cache.Ping(ctx) != nil:
			checks["redis"] = "unreachable"
		default:
			checks["redis"] = "ok"
		}

		c.JSON(code, gin.H{
			"status":  status,
			"service": deps.Cfg.App.Name,
			"checks":  checks,
		})
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *Handlers) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/dashboard", middleware.RequirePermission(authz.DashboardView), h.Dashboard.GetStats)

	registerCustomerRoutes(protected, h)
	registerVehicleRoutes(protected, h)
	registerTireRoutes(protected, h)
	registerInvoiceRoutes(protected, h)
	registerQuotationRoutes(protected, h)
	registerAppointmentRoutes(protected, h)
	registerJobRoutes(protected, h)
	registerPaymentRoutes(protected, h)
	registerUserRoutes(protected, h)

	printer := protected.Group("/printer", middleware.RequirePermission(authz.PrinterManage))
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}

	protected.GET("/audit-logs", middleware.RequirePermission(authz.AuditView), h.Audit.List)
}

func registerCustomerRoutes(rg *gin.RouterGroup, h *Handlers) {
	customers := rg.Group("/customers")
	{
		customers.GET("", middleware.RequirePermission(authz.CustomersView), h.Customer.List)
		customers.POST("", middleware.RequirePermission(authz.CustomersCreate), h.Customer.Create)
		customers.GET("/:id", middleware.RequirePermission(authz.CustomersView), h.Customer.Get)
		customers.PUT("/:id", middleware.RequirePermission(authz.CustomersUpdate), h.Customer.Update)
		customers.PATCH("/:id", middleware.RequirePermission(authz.CustomersUpdate), h.Customer.Update)
		customers.DELETE("/:id", middleware.RequirePermission(authz.CustomersDelete), h.Customer.Delete)
		customers.GET("/:id/vehicles", middleware.RequirePermission(authz.VehiclesView), h.Customer.Vehicles)
		customers.GET("/:id/invoices", middleware.RequirePermission(authz.InvoicesView), h.Customer.Invoices)
	}
}

func registerVehicleRoutes(rg *gin.RouterGroup, h *Handlers) {
	vehicles := rg.Group("/vehicles")
	{
		vehicles.GET("", middleware.RequirePermission(authz.VehiclesView), h.Vehicle.List)
		vehicles.POST("", middleware.RequirePermission(authz.VehiclesCreate), h.Vehicle.Create)
		vehicles.GET("/:id", middleware.RequirePermission(authz.VehiclesView), h.Vehicle.Get)
		vehicles.PUT("/:id", middleware.RequirePermission(authz.VehiclesUpdate), h.Vehicle.Update)
		vehicles.PATCH("/:id", middleware.RequirePermission(authz.VehiclesUpdate), h.Vehicle.Update)
		vehicles.DELETE("/:id", middleware.RequirePermission(authz.VehiclesDelete), h.Vehicle.Delete)
	}
}

func registerTireRoutes(rg *gin.RouterGroup, h *Handlers) {
	tires := rg.Group("/tires")
	{
		tires.GET("", middleware.RequirePermission(authz.TiresView), h.Tire.List)
		tires.POST("", middleware.RequirePermission(authz.TiresCreate), h.Tire.Create)
		tires.GET("/low-stock", middleware.RequirePermission(authz.TiresView), h.Tire.LowStock)
		tires.GET("/:id", middleware.RequirePermission(authz.TiresView), h.Tire.Get)
		tires.PUT("/:id", middleware.RequirePermission(authz.TiresUpdate), h.Tire.Update)
		tires.PATCH("/:id", middleware.RequirePermission(authz.TiresUpdate), h.Tire.Update)
		tires.DELETE("/:id", middleware.RequirePermission(authz.TiresDelete), h.Tire.Delete)
		tires.POST("/:id/adjust-stock", middleware.RequirePermission(authz.TiresAdjustStock), h.Tire.AdjustStock)
	}
}

func registerInvoiceRoutes(rg *gin.RouterGroup, h *Handlers) {
	invoices := rg.Group("/invoices")
	{
		invoices.GET("", middleware.RequirePermission(authz.InvoicesView), h.Invoice.List)
		invoices.POST("", middleware.RequirePermission(authz.InvoicesCreate), h.Invoice.Create)
		invoices.GET("/reports/daily-cash", middleware.RequirePermission(authz.ReportsView), h.Invoice.DailyCash)
		invoices.GET("/:id", middleware.RequirePermission(authz.InvoicesView), h.Invoice.Get)
		invoices.PUT("/:id", middleware.RequirePermission(authz.InvoicesUpdate), h.Invoice.Update)
		invoices.PATCH("/:id", middleware.RequirePermission(authz.InvoicesUpdate), h.Invoice.Update)
		invoices.POST("/:id/pay", middleware.RequirePermission(authz.InvoicesPay), h.Invoice.Pay)
		invoices.POST("/:id/cancel", middleware.RequirePermission(authz.InvoicesCancel), h.Invoice.Cancel)
		invoices.GET("/:id/pdf", middleware.RequirePermission(authz.InvoicesView), h.Invoice.PDF)
		invoices.POST("/:id/email", middleware.RequirePermission(authz.InvoicesSend), h.Invoice.Email)
		invoices.POST("/:id/print", middleware.RequirePermission(authz.InvoicesPrint), h.Invoice.Print)
	}
}

func registerQuotationRoutes(rg *gin.RouterGroup, h *Handlers) {
	quotations := rg.Group("/quotations")
	{
		quotations.GET("", middleware.RequirePermission(authz.QuotationsView), h.Quotation.List)
		quotations.POST("", middleware.RequirePermission(authz.QuotationsCreate), h.Quotation.Create)
		quotations.GET("/:id", middleware.RequirePermission(authz.QuotationsView), h.Quotation.Get)
		quotations.PUT("/:id", middleware.RequirePermission(authz.QuotationsUpdate), h.Quotation.Update)
		quotations.PATCH("/:id", middleware.RequirePermission(authz.QuotationsUpdate), h.Quotation.Update)
		quotations.DELETE("/:id", middleware.RequirePermission(authz.QuotationsDelete), h.Quotation.Delete)
		quotations.POST("/:id/convert", middleware.RequirePermission(authz.QuotationsConvert), h.Quotation.Convert)
		quotations.GET("/:id/pdf", middleware.RequirePermission(authz.QuotationsView), h.Quotation.PDF)
	}
}

func registerAppointmentRoutes(rg *gin.RouterGroup, h *Handlers) {
	appointments := rg.Group("/appointments")
	{
		appointments.GET("", middleware.RequirePermission(authz.AppointmentsView), h.Appointment.List)
		appointments.POST("", middleware.RequirePermission(authz.AppointmentsCreate), h.Appointment.Create)
		appointments.GET("/:id", middleware.RequirePermission(authz.AppointmentsView), h.Appointment.Get)
		appointments.PUT("/:id", middleware.RequirePermission(authz.AppointmentsUpdate), h.Appointment.Update)
		appointments.PATCH("/:id", middleware.RequirePermission(authz.AppointmentsUpdate), h.Appointment.Update)
		appointments.DELETE("/:id", middleware.RequirePermission(authz.AppointmentsDelete), h.Appointment.Delete)
		appointments.POST("/:id/remind", middleware.RequirePermission(authz.AppointmentsRemind), h.Appointment.Remind)
	}
}

func registerJobRoutes(rg *gin.RouterGroup, h *Handlers) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", middleware.RequirePermission(authz.JobsView), h.Job.List)
		jobs.POST("", middleware.RequirePermission(authz.JobsCreate), h.Job.Create)
		jobs.GET("/:id", middleware.RequirePermission(authz.JobsView), h.Job.Get)
		jobs.PUT("/:id", middleware.RequirePermission(authz.JobsUpdate), h.Job.Update)
		jobs.PATCH("/:id", middleware.RequirePermission(authz.JobsUpdate), h.Job.Update)
		jobs.PATCH("/:id/status", middleware.RequirePermission(authz.JobsUpdate), h.Job.SetStatus)
		jobs.DELETE("/:id", middleware.RequirePermission(authz.JobsDelete), h.Job.Delete)
	}
}

func registerPaymentRoutes(rg *gin.RouterGroup, h *Handlers) {
	payments := rg.Group("/payments")
	{
		payments.GET("", middleware.RequirePermission(authz.PaymentsView), h.Payment.List)
		payments.POST("", middleware.RequirePermission(authz.PaymentsCreate), h.Payment.Create)
		payments.GET("/:id", middleware.RequirePermission(authz.PaymentsView), h.Payment.Get)
	}
}

func registerUserRoutes(rg *gin.RouterGroup, h *Handlers) {
	users := rg.Group("/users")
	{
		users.GET("/me", h.User.Me)
		users.GET("", middleware.RequirePermission(authz.UsersView), h.User.List)
		users.GET("/:id", middleware.RequirePermission(authz.UsersView), h.User.Get)
		users.PATCH("/:id/role", middleware.RequirePermission(authz.UsersManage), h.User.UpdateRole)
		users.PATCH("/:id/status", middleware.RequirePermission(authz.UsersManage), h.User.UpdateStatus)
		users.DELETE("/:id", middleware.RequirePermission(authz.UsersManage), h.User.Delete)
	}
}
