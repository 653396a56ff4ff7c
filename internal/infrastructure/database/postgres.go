package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sangkips/autoshop-api/internal/config"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/pkg/utils"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database driver.
func Open(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	if cfg.Driver == "sqlite" {
		return NewSQLiteDB(cfg.Name, debug)
	}
	return NewPostgresDB(cfg, debug)
}

func gormConfig(debug bool) *gorm.Config {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		// Timestamps are written in UTC so range filters compare like with like
		// on drivers that store times as text.
		NowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},

		// Shop records
		&entity.Customer{},
		&entity.Vehicle{},
		&entity.Tire{},
		&entity.Appointment{},

		// Billing
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.Quotation{},
		&entity.QuotationItem{},

		// Payroll
		&entity.Job{},
		&entity.Payment{},

		// System entities
		&entity.AuditLog{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedAdmin creates the local break-glass admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when both are set and no user with that email exists.
func SeedAdmin(db *gorm.DB) error {
	adminEmail := strings.TrimSpace(viper.GetString("ADMIN_EMAIL"))
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")
	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("LOWER(email) = LOWER(?)", adminEmail).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if count > 0 {
		log.Printf("Admin user already exists: %s", adminEmail)
		return nil
	}

	hash, err := utils.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	if adminName == "" {
		adminName = "Shop Admin"
	}
	firstName, lastName, _ := strings.Cut(adminName, " ")

	admin := entity.User{
		Email:        adminEmail,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         enum.UserRoleAdmin,
		IsActive:     true,
		PasswordHash: &hash,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Printf("Admin user created: %s", adminEmail)
	return nil
}
