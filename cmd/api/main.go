package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoshop-api/internal/application/service"
	"github.com/sangkips/autoshop-api/internal/config"
	"github.com/sangkips/autoshop-api/internal/infrastructure/cache"
	"github.com/sangkips/autoshop-api/internal/infrastructure/database"
	"github.com/sangkips/autoshop-api/internal/infrastructure/repository"
	"github.com/sangkips/autoshop-api/internal/infrastructure/storage"
	"github.com/sangkips/autoshop-api/internal/presentation/http/handler"
	"github.com/sangkips/autoshop-api/internal/presentation/http/routes"
	"github.com/sangkips/autoshop-api/pkg/email"
	"github.com/sangkips/autoshop-api/pkg/identity"
	"github.com/sangkips/autoshop-api/pkg/pdf"
	"github.com/sangkips/autoshop-api/pkg/printer"
	"github.com/sangkips/autoshop-api/pkg/sms"
	"github.com/sangkips/autoshop-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	loc := cfg.App.Location()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the local break-glass admin
	if err := database.SeedAdmin(db); err != nil {
		log.Printf("Warning: Failed to seed admin user: %v", err)
	}

	if err := handler.RegisterValidators(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	tireRepo := repository.NewTireRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	jobRepo := repository.NewJobRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	txManager := repository.NewTxManager(db)

	// Shared infrastructure
	redisCache := cache.New(&cfg.Redis)
	defer redisCache.Close()

	ctx := context.Background()
	archive, err := storage.New(ctx, &cfg.Storage)
	if err != nil {
		log.Printf("Warning: Document archive unavailable, PDFs will not be stored: %v", err)
	}

	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		ShopName:     cfg.Shop.Name,
	})
	smsSender := sms.New(sms.Config{
		Provider: cfg.SMS.Provider,
		APIURL:   cfg.SMS.APIURL,
		APIKey:   cfg.SMS.APIKey,
		SenderID: cfg.SMS.SenderID,
	})

	// Identity provider: JWKS verification, admin API and webhooks
	verifier := identity.NewVerifier(identity.VerifierConfig{
		JWKSURL:  cfg.Identity.JWKSURL,
		Issuer:   cfg.Identity.Issuer,
		Audience: cfg.Identity.Audience,
	})
	defer verifier.Close()
	adminClient := identity.NewAdminClient(ctx, identity.AdminConfig{
		APIURL:       cfg.Identity.APIURL,
		ClientID:     cfg.Identity.ClientID,
		ClientSecret: cfg.Identity.ClientSecret,
		TokenURL:     cfg.Identity.TokenURL,
	})
	webhookVerifier, err := identity.NewWebhookVerifier(cfg.Identity.WebhookSecret)
	if err != nil && !errors.Is(err, identity.ErrNotConfigured) {
		log.Fatalf("Invalid identity webhook secret: %v", err)
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter, _ = printer.New(printer.Config{Type: printer.TypeNone})
	}

	shop := pdf.Shop{
		Name:    cfg.Shop.Name,
		Address: cfg.Shop.Address,
		Phone:   cfg.Shop.Phone,
		Email:   cfg.Shop.Email,
		TaxID:   cfg.Shop.TaxID,
	}

	// Initialize services
	auditService := service.NewAuditService(auditRepo)
	notifier := service.NewNotificationService(emailService, smsSender, cfg.Shop.AlertEmail)
	authService := service.NewAuthService(userRepo, jwtManager, verifier, auditService)
	userService := service.NewUserService(userRepo, adminClient, auditService)
	customerService := service.NewCustomerService(customerRepo, vehicleRepo, auditService)
	vehicleService := service.NewVehicleService(vehicleRepo, customerRepo, auditService)
	tireService := service.NewTireService(tireRepo, txManager, auditService, notifier)
	invoiceService := service.NewInvoiceService(service.InvoiceServiceDeps{
		InvoiceRepo:    invoiceRepo,
		TireRepo:       tireRepo,
		VehicleRepo:    vehicleRepo,
		CustomerRepo:   customerRepo,
		TxManager:      txManager,
		Audit:          auditService,
		Notifier:       notifier,
		Cache:          redisCache,
		Location:       loc,
		DefaultTaxRate: &cfg.Shop.DefaultTaxRate,
	})
	quotationService := service.NewQuotationService(quotationRepo, customerRepo, vehicleRepo, tireRepo, invoiceService, txManager, auditService)
	appointmentService := service.NewAppointmentService(service.AppointmentServiceDeps{
		AppointmentRepo: appointmentRepo,
		CustomerRepo:    customerRepo,
		VehicleRepo:     vehicleRepo,
		UserRepo:        userRepo,
		Notifier:        notifier,
		Audit:           auditService,
		Cache:           redisCache,
		ShopName:        cfg.Shop.Name,
		Location:        loc,
	})
	jobService := service.NewJobService(jobRepo, userRepo, auditService)
	paymentService := service.NewPaymentService(paymentRepo, jobRepo, userRepo, txManager, auditService)
	reportService := service.NewReportService(invoiceRepo, redisCache, loc)
	dashboardService := service.NewDashboardService(analyticsRepo, invoiceRepo, redisCache, loc)
	documentDeps := service.DocumentServiceDeps{
		Invoices:   invoiceService,
		Quotations: quotationService,
		Mailer:     emailService,
		Shop:       shop,
		Audit:      auditService,
		Location:   loc,
	}
	if archive != nil {
		documentDeps.Archive = archive
	}
	documentService := service.NewDocumentService(documentDeps)
	printerService := service.NewPrinterService(thermalPrinter, invoiceService, shop, cfg.Printer.CharWidth, auditService, loc)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Webhook:     handler.NewWebhookHandler(webhookVerifier, userService),
		Customer:    handler.NewCustomerHandler(customerService, invoiceService),
		Vehicle:     handler.NewVehicleHandler(vehicleService),
		Tire:        handler.NewTireHandler(tireService),
		Invoice:     handler.NewInvoiceHandler(invoiceService, reportService, documentService, printerService, loc),
		Quotation:   handler.NewQuotationHandler(quotationService, documentService),
		Appointment: handler.NewAppointmentHandler(appointmentService, loc),
		Job:         handler.NewJobHandler(jobService),
		Payment:     handler.NewPaymentHandler(paymentService),
		User:        handler.NewUserHandler(userService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Printer:     handler.NewPrinterHandler(printerService),
		Audit:       handler.NewAuditHandler(auditService, loc),
	}

	rateLimiter := routes.RateLimiterFor(cfg.RateLimit)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Authenticator:   authService,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		DB:              db,
		Cache:           redisCache,
		RateLimiter:     rateLimiter,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
