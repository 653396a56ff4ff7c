package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Identity  IdentityConfig
	Storage   StorageConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Email     EmailConfig
	SMS       SMSConfig
	Printer   PrinterConfig
	Shop      ShopConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	Timezone string
}

// DatabaseConfig selects the store. Driver "sqlite" treats Name as a file path
// and is meant for local development only.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret             string
	Issuer             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

// IdentityConfig points at the external identity provider that issues user tokens.
type IdentityConfig struct {
	JWKSURL       string
	Issuer        string
	Audience      string
	WebhookSecret string
	APIURL        string
	ClientID      string
	ClientSecret  string
	TokenURL      string
}

// StorageConfig selects where generated documents are archived.
// When S3Bucket is empty, documents are written under Path.
type StorageConfig struct {
	Path        string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

type CORSConfig struct {
	FrontendURL    string
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

type SMSConfig struct {
	Provider string
	APIURL   string
	APIKey   string
	SenderID string
}

type PrinterConfig struct {
	Type      string
	USBPath   string
	Address   string
	CharWidth int
}

// ShopConfig holds the business details printed on documents and the tax defaults.
type ShopConfig struct {
	Name           string
	Address        string
	Phone          string
	Email          string
	TaxID          string
	DefaultTaxRate float64
	AlertEmail     string
}

func Load() *Config {
	// .env.local overrides are loaded into the process environment first so that
	// AutomaticEnv picks them up ahead of .env.
	if err := godotenv.Load(".env.local"); err == nil {
		log.Println("Loaded overrides from .env.local")
	}

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "autoshop-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_TIMEZONE", "America/Toronto")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "autoshop")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_ISSUER", "autoshop-api")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("STORAGE_PATH", "./storage")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("FRONTEND_URL", "http://localhost:5173")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("EMAIL_FROM_NAME", "Auto Shop")
	viper.SetDefault("SMS_PROVIDER", "none")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 32)
	viper.SetDefault("SHOP_NAME", "Auto Shop")
	viper.SetDefault("SHOP_DEFAULT_TAX_RATE", 0.0825)

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			Issuer:             viper.GetString("JWT_ISSUER"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		Identity: IdentityConfig{
			JWKSURL:       viper.GetString("IDENTITY_JWKS_URL"),
			Issuer:        viper.GetString("IDENTITY_ISSUER"),
			Audience:      viper.GetString("IDENTITY_AUDIENCE"),
			WebhookSecret: viper.GetString("IDENTITY_WEBHOOK_SECRET"),
			APIURL:        viper.GetString("IDENTITY_API_URL"),
			ClientID:      viper.GetString("IDENTITY_CLIENT_ID"),
			ClientSecret:  viper.GetString("IDENTITY_CLIENT_SECRET"),
			TokenURL:      viper.GetString("IDENTITY_TOKEN_URL"),
		},
		Storage: StorageConfig{
			Path:        viper.GetString("STORAGE_PATH"),
			S3Bucket:    viper.GetString("S3_BUCKET"),
			S3Region:    viper.GetString("S3_REGION"),
			S3Endpoint:  viper.GetString("S3_ENDPOINT"),
			S3AccessKey: viper.GetString("S3_ACCESS_KEY"),
			S3SecretKey: viper.GetString("S3_SECRET_KEY"),
		},
		CORS: CORSConfig{
			FrontendURL:    viper.GetString("FRONTEND_URL"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(viper.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(viper.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Email: EmailConfig{
			SMTPHost:     viper.GetString("SMTP_HOST"),
			SMTPPort:     viper.GetInt("SMTP_PORT"),
			SMTPUsername: viper.GetString("SMTP_USERNAME"),
			SMTPPassword: viper.GetString("SMTP_PASSWORD"),
			FromName:     viper.GetString("EMAIL_FROM_NAME"),
			FromEmail:    viper.GetString("EMAIL_FROM_ADDRESS"),
		},
		SMS: SMSConfig{
			Provider: viper.GetString("SMS_PROVIDER"),
			APIURL:   viper.GetString("SMS_API_URL"),
			APIKey:   viper.GetString("SMS_API_KEY"),
			SenderID: viper.GetString("SMS_SENDER_ID"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
		},
		Shop: ShopConfig{
			Name:           viper.GetString("SHOP_NAME"),
			Address:        viper.GetString("SHOP_ADDRESS"),
			Phone:          viper.GetString("SHOP_PHONE"),
			Email:          viper.GetString("SHOP_EMAIL"),
			TaxID:          viper.GetString("SHOP_TAX_ID"),
			DefaultTaxRate: viper.GetFloat64("SHOP_DEFAULT_TAX_RATE"),
			AlertEmail:     viper.GetString("SHOP_ALERT_EMAIL"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// Location resolves the shop timezone, falling back to the server's local zone.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown APP_TIMEZONE %q, using local time: %v", c.Timezone, err)
		return time.Local
	}
	return loc
}

// Origins returns the allowed CORS origins with the frontend URL first.
func (c *CORSConfig) Origins() []string {
	origins := make([]string, 0, len(c.AllowedOrigins)+1)
	if c.FrontendURL != "" {
		origins = append(origins, strings.TrimRight(c.FrontendURL, "/"))
	}
	for _, o := range c.AllowedOrigins {
		o = strings.TrimRight(o, "/")
		if o != "" && o != c.FrontendURL {
			origins = append(origins, o)
		}
	}
	return origins
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
