package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Email  EmailConfig
	Clinic ClinicConfig
	AI     AIConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for patient attachments.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// ClinicConfig holds the clinic's fiscal identity used on documents.
type ClinicConfig struct {
	Name      string `mapstructure:"name"`
	GSTIN     string `mapstructure:"gstin"`
	StateCode string `mapstructure:"state_code"`
	// FinancialYearNumbering selects FY periods (24-25) over calendar
	// years (2024) for document IDs.
	FinancialYearNumbering bool `mapstructure:"financial_year_numbering"`
}

// AIConfig holds Gemini settings for marketing copy generation.
type AIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Load reads configuration from environment variables with the HEARBILL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HEARBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "hearbill")
	v.SetDefault("db.password", "hearbill_secret")
	v.SetDefault("db.name", "hearbill_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "hearbill")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "hearbill-attachments")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@hearbill.in")
	v.SetDefault("email.from_name", "HearBill")

	// Clinic defaults
	v.SetDefault("clinic.name", "HearBill Hearing Care")
	v.SetDefault("clinic.gstin", "")
	v.SetDefault("clinic.state_code", "27")
	v.SetDefault("clinic.financial_year_numbering", true)

	// AI defaults
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gemini-2.0-flash-001")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                     "HEARBILL_SERVER_PORT",
		"server.read_timeout":             "HEARBILL_SERVER_READ_TIMEOUT",
		"server.write_timeout":            "HEARBILL_SERVER_WRITE_TIMEOUT",
		"server.environment":              "HEARBILL_SERVER_ENVIRONMENT",
		"db.host":                         "HEARBILL_DB_HOST",
		"db.port":                         "HEARBILL_DB_PORT",
		"db.user":                         "HEARBILL_DB_USER",
		"db.password":                     "HEARBILL_DB_PASSWORD",
		"db.name":                         "HEARBILL_DB_NAME",
		"db.sslmode":                      "HEARBILL_DB_SSLMODE",
		"db.max_open":                     "HEARBILL_DB_MAX_OPEN",
		"db.max_idle":                     "HEARBILL_DB_MAX_IDLE",
		"jwt.secret":                      "HEARBILL_JWT_SECRET",
		"jwt.access_expiry":               "HEARBILL_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":              "HEARBILL_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                      "HEARBILL_JWT_ISSUER",
		"s3.region":                       "HEARBILL_S3_REGION",
		"s3.bucket":                       "HEARBILL_S3_BUCKET",
		"s3.endpoint":                     "HEARBILL_S3_ENDPOINT",
		"s3.access_key":                   "HEARBILL_S3_ACCESS_KEY",
		"s3.secret_key":                   "HEARBILL_S3_SECRET_KEY",
		"s3.max_file_size_mb":             "HEARBILL_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":               "HEARBILL_S3_PRESIGN_EXPIRY",
		"log.level":                       "HEARBILL_LOG_LEVEL",
		"log.format":                      "HEARBILL_LOG_FORMAT",
		"cors.allowed_origins":            "HEARBILL_CORS_ALLOWED_ORIGINS",
		"email.provider":                  "HEARBILL_EMAIL_PROVIDER",
		"email.region":                    "HEARBILL_EMAIL_REGION",
		"email.from_address":              "HEARBILL_EMAIL_FROM_ADDRESS",
		"email.from_name":                 "HEARBILL_EMAIL_FROM_NAME",
		"clinic.name":                     "HEARBILL_CLINIC_NAME",
		"clinic.gstin":                    "HEARBILL_CLINIC_GSTIN",
		"clinic.state_code":               "HEARBILL_CLINIC_STATE_CODE",
		"clinic.financial_year_numbering": "HEARBILL_CLINIC_FINANCIAL_YEAR_NUMBERING",
		"ai.api_key":                      "HEARBILL_AI_API_KEY",
		"ai.model":                        "HEARBILL_AI_MODEL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if HEARBILL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("HEARBILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Clinic = ClinicConfig{
		Name:                   v.GetString("clinic.name"),
		GSTIN:                  v.GetString("clinic.gstin"),
		StateCode:              v.GetString("clinic.state_code"),
		FinancialYearNumbering: v.GetBool("clinic.financial_year_numbering"),
	}
	cfg.AI = AIConfig{
		APIKey: v.GetString("ai.api_key"),
		Model:  v.GetString("ai.model"),
	}

	return cfg, nil
}
