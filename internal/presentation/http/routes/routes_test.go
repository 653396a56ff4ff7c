package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/application/service"
	"github.com/sangkips/autoshop-api/internal/config"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/infrastructure/cache"
	"github.com/sangkips/autoshop-api/internal/infrastructure/database"
	"github.com/sangkips/autoshop-api/internal/infrastructure/repository"
	"github.com/sangkips/autoshop-api/internal/presentation/http/handler"
	"github.com/sangkips/autoshop-api/pkg/pdf"
	"github.com/sangkips/autoshop-api/pkg/printer"
	"github.com/sangkips/autoshop-api/pkg/utils"
	"gorm.io/gorm"
)

var validatorsOnce sync.Once

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	tokens map[enum.UserRole]string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validatorsOnce.Do(func() {
		if err := handler.RegisterValidators(); err != nil {
			t.Fatalf("register validators: %v", err)
		}
	})

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := database.NewSQLiteDB(dsn, false)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{App: config.AppConfig{Name: "autoshop-test"}}
	jwtManager := utils.NewJWTManager("test-secret", "autoshop-test", 15*time.Minute, time.Hour)

	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	tireRepo := repository.NewTireRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	jobRepo := repository.NewJobRepository(db)
	txManager := repository.NewTxManager(db)
	noCache := &cache.Cache{}

	audit := service.NewAuditService(repository.NewAuditLogRepository(db))
	notifier := service.NewNotificationService(nil, nil, "")
	authService := service.NewAuthService(userRepo, jwtManager, nil, audit)
	userService := service.NewUserService(userRepo, nil, audit)
	invoiceService := service.NewInvoiceService(service.InvoiceServiceDeps{
		InvoiceRepo:  invoiceRepo,
		TireRepo:     tireRepo,
		VehicleRepo:  vehicleRepo,
		CustomerRepo: customerRepo,
		TxManager:    txManager,
		Audit:        audit,
		Notifier:     notifier,
		Cache:        noCache,
		Location:     time.UTC,
	})
	quotationService := service.NewQuotationService(quotationRepo, customerRepo, vehicleRepo, tireRepo, invoiceService, txManager, audit)
	documentService := service.NewDocumentService(service.DocumentServiceDeps{Invoices: invoiceService, Quotations: quotationService})
	nullPrinter, _ := printer.New(printer.Config{})
	printerService := service.NewPrinterService(nullPrinter, invoiceService, pdf.Shop{Name: "Test Shop"}, 0, audit, time.UTC)

	handlers := &Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Webhook:     handler.NewWebhookHandler(nil, userService),
		Customer:    handler.NewCustomerHandler(service.NewCustomerService(customerRepo, vehicleRepo, audit), invoiceService),
		Vehicle:     handler.NewVehicleHandler(service.NewVehicleService(vehicleRepo, customerRepo, audit)),
		Tire:        handler.NewTireHandler(service.NewTireService(tireRepo, txManager, audit, notifier)),
		Invoice:     handler.NewInvoiceHandler(invoiceService, service.NewReportService(invoiceRepo, noCache, time.UTC), documentService, printerService, time.UTC),
		Quotation:   handler.NewQuotationHandler(quotationService, documentService),
		Appointment: handler.NewAppointmentHandler(service.NewAppointmentService(service.AppointmentServiceDeps{AppointmentRepo: repository.NewAppointmentRepository(db), CustomerRepo: customerRepo, VehicleRepo: vehicleRepo, UserRepo: userRepo, Notifier: notifier, Audit: audit}), time.UTC),
		Job:         handler.NewJobHandler(service.NewJobService(jobRepo, userRepo, audit)),
		Payment:     handler.NewPaymentHandler(service.NewPaymentService(repository.NewPaymentRepository(db), jobRepo, userRepo, txManager, audit)),
		User:        handler.NewUserHandler(userService),
		Dashboard:   handler.NewDashboardHandler(service.NewDashboardService(repository.NewAnalyticsRepository(db), invoiceRepo, noCache, time.UTC)),
		Printer:     handler.NewPrinterHandler(printerService),
		Audit:       handler.NewAuditHandler(audit, time.UTC),
	}

	router := Setup(handlers, &Deps{
		Authenticator:   authService,
		Cfg:             cfg,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		DB:              db,
		Cache:           noCache,
	})

	srv := &testServer{router: router, db: db, tokens: map[enum.UserRole]string{}}
	for _, role := range []enum.UserRole{enum.UserRoleAdmin, enum.UserRoleManager, enum.UserRoleStaff} {
		u := &entity.User{Email: strings.ToLower(role.String()) + "@shop.test", Role: role, IsActive: true}
		if err := userRepo.Create(context.Background(), u); err != nil {
			t.Fatalf("seed %s: %v", role, err)
		}
		token, err := jwtManager.GenerateAccessToken(u.ID, u.Email, role.String())
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		srv.tokens[role] = token
	}
	return srv
}

func (s *testServer) do(t *testing.T, role enum.UserRole, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := s.tokens[role]; ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return env
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, -1, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"redis":"disabled"`) {
		t.Fatalf("health = %d %s", w.Code, w.Body.String())
	}

	w = srv.do(t, -1, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("metrics = %d", w.Code)
	}
}

func TestAuthAndPermissions(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		role   enum.UserRole
		method string
		path   string
		want   int
	}{
		{"no token", -1, http.MethodGet, "/api/customers", http.StatusUnauthorized},
		{"staff lists customers", enum.UserRoleStaff, http.MethodGet, "/api/customers", http.StatusOK},
		{"staff cannot see reports", enum.UserRoleStaff, http.MethodGet, "/api/invoices/reports/daily-cash", http.StatusForbidden},
		{"manager sees reports", enum.UserRoleManager, http.MethodGet, "/api/invoices/reports/daily-cash?date=2024-03-15", http.StatusOK},
		{"staff cannot read audit log", enum.UserRoleStaff, http.MethodGet, "/api/audit-logs", http.StatusForbidden},
		{"manager reads audit log", enum.UserRoleManager, http.MethodGet, "/api/audit-logs", http.StatusOK},
		{"manager cannot delete tires", enum.UserRoleManager, http.MethodDelete, "/api/tires/" + uuid.NewString(), http.StatusForbidden},
		{"staff cannot delete tires", enum.UserRoleStaff, http.MethodDelete, "/api/tires/" + uuid.NewString(), http.StatusForbidden},
		{"bad report date", enum.UserRoleAdmin, http.MethodGet, "/api/invoices/reports/daily-cash?date=15-03-2024", http.StatusBadRequest},
		{"bad id", enum.UserRoleAdmin, http.MethodGet, "/api/invoices/not-a-uuid", http.StatusBadRequest},
		{"webhooks unconfigured", -1, http.MethodPost, "/api/webhooks/identity", http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, tt.role, tt.method, tt.path, "")
			if w.Code != tt.want {
				t.Fatalf("%s %s = %d, want %d: %s", tt.method, tt.path, w.Code, tt.want, w.Body.String())
			}
		})
	}

	w := srv.do(t, enum.UserRoleStaff, http.MethodGet, "/api/users/me", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"role":"STAFF"`) {
		t.Fatalf("me = %d %s", w.Code, w.Body.String())
	}
}

func TestValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, enum.UserRoleAdmin, http.MethodPost, "/api/customers", `{"name":"Avery","email":"not-an-email"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("create customer = %d %s", w.Code, w.Body.String())
	}
	if env := decode(t, w); len(env.Errors) != 1 || env.Errors[0].Field != "email" {
		t.Fatalf("errors = %+v", env.Errors)
	}

	w = srv.do(t, enum.UserRoleAdmin, http.MethodPost, "/api/customers", `{"name":"Avery"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create customer = %d %s", w.Code, w.Body.String())
	}
	var customer entity.Customer
	if err := json.Unmarshal(decode(t, w).Data, &customer); err != nil {
		t.Fatalf("customer: %v", err)
	}

	body := `{"customer_id":"` + customer.ID.String() + `","make":"Honda","model":"Civic","year":2019,"vin":"1HGCM82633A00435O"}`
	w = srv.do(t, enum.UserRoleAdmin, http.MethodPost, "/api/vehicles", body)
	if w.Code != http.StatusUnprocessableEntity || decode(t, w).Errors[0].Field != "vin" {
		t.Fatalf("bad vin = %d %s", w.Code, w.Body.String())
	}

	body = strings.Replace(body, "00435O", "004352", 1)
	w = srv.do(t, enum.UserRoleAdmin, http.MethodPost, "/api/vehicles", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("good vin = %d %s", w.Code, w.Body.String())
	}

	w = srv.do(t, enum.UserRoleAdmin, http.MethodPost, "/api/tires", `{"brand":"Michelin","model":"X","size":"205/55R16","type":"BOGUS"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad enum = %d %s", w.Code, w.Body.String())
	}
}

func TestTireCostHiddenFromStaff(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, enum.UserRoleAdmin, http.MethodPost, "/api/tires",
		`{"brand":"Michelin","model":"Defender","size":"225/65R17","type":"ALL_SEASON","price":189.99,"cost":120,"quantity":8,"min_stock":4}`)
	if w.Code != http.StatusCreated || !strings.Contains(w.Body.String(), `"cost":120`) {
		t.Fatalf("admin create = %d %s", w.Code, w.Body.String())
	}

	w = srv.do(t, enum.UserRoleStaff, http.MethodGet, "/api/tires", "")
	if w.Code != http.StatusOK || strings.Contains(w.Body.String(), `"cost"`) {
		t.Fatalf("staff list = %d %s", w.Code, w.Body.String())
	}

	w = srv.do(t, enum.UserRoleStaff, http.MethodGet, "/api/tires", "")
	if !strings.Contains(w.Body.String(), "Defender") {
		t.Fatalf("staff list missing tire: %s", w.Body.String())
	}
}

func TestInvoiceCreateIsIdempotent(t *testing.T) {
	srv := newTestServer(t)

	body := `{"customer":{"name":"Walk-in"},"items":[{"item_type":"SERVICE","description":"Rotation","quantity":1,"unit_price":40}],"tax_rate":0.05}`
	first := srv.do(t, enum.UserRoleStaff, http.MethodPost, "/api/invoices", body, "Idempotency-Key", "abc-123")
	if first.Code != http.StatusCreated {
		t.Fatalf("first = %d %s", first.Code, first.Body.String())
	}
	if !strings.Contains(first.Body.String(), `"total":42`) {
		t.Fatalf("total missing: %s", first.Body.String())
	}

	replay := srv.do(t, enum.UserRoleStaff, http.MethodPost, "/api/invoices", body, "Idempotency-Key", "abc-123")
	if replay.Code != http.StatusCreated || replay.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Fatalf("replay = %d headers %v", replay.Code, replay.Header())
	}
	if replay.Body.String() != first.Body.String() {
		t.Fatalf("replayed body differs")
	}

	changed := strings.Replace(body, `"unit_price":40`, `"unit_price":50`, 1)
	w := srv.do(t, enum.UserRoleStaff, http.MethodPost, "/api/invoices", changed, "Idempotency-Key", "abc-123")
	if w.Code != http.StatusConflict {
		t.Fatalf("reused key = %d %s", w.Code, w.Body.String())
	}

	var n int64
	srv.db.Model(&entity.Invoice{}).Count(&n)
	if n != 1 {
		t.Fatalf("invoices = %d, want 1", n)
	}
}
