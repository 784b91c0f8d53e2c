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
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	Analyzer  AnalyzerConfig
	Extractor ExtractorConfig
	CORS      CORSConfig
	Upload    UploadConfig
	Email     EmailConfig
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
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
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

// UploadConfig bounds accepted report uploads.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// ExtractorConfig points at the text/table extraction service.
type ExtractorConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	ToAddress   string `mapstructure:"to_address"`
}

// AnalyzerProviderConfig holds settings for a single AI analysis provider.
type AnalyzerProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxTokens    int    `mapstructure:"max_tokens"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// AnalyzerConfig holds AI failure-analysis settings with multi-provider
// fallback support. An empty primary provider disables AI analysis and
// the rule-based analyzer serves everything.
type AnalyzerConfig struct {
	Primary   AnalyzerProviderConfig `mapstructure:"primary"`
	Secondary AnalyzerProviderConfig `mapstructure:"secondary"`
	Tertiary  AnalyzerProviderConfig `mapstructure:"tertiary"`
}

// Providers returns the configured provider chain in priority order.
func (a *AnalyzerConfig) Providers() []*AnalyzerProviderConfig {
	var out []*AnalyzerProviderConfig
	for _, p := range []*AnalyzerProviderConfig{&a.Primary, &a.Secondary, &a.Tertiary} {
		if p.Provider != "" && p.Provider != "none" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads configuration from environment variables with the TRA_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "testreport")
	v.SetDefault("db.password", "testreport_secret")
	v.SetDefault("db.name", "testreport_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.issuer", "testreport")

	// S3 defaults
	v.SetDefault("s3.region", "eu-central-1")
	v.SetDefault("s3.bucket", "testreport-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 32)

	// Extractor defaults
	v.SetDefault("extractor.base_url", "http://localhost:9090")
	v.SetDefault("extractor.timeout_secs", 60)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-central-1")
	v.SetDefault("email.from_address", "noreply@testreport.local")
	v.SetDefault("email.from_name", "Test Report Analyzer")
	v.SetDefault("email.to_address", "")

	// Analyzer defaults
	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("analyzer."+tier+".provider", "")
		v.SetDefault("analyzer."+tier+".api_key", "")
		v.SetDefault("analyzer."+tier+".default_model", "")
		v.SetDefault("analyzer."+tier+".max_tokens", 1200)
		v.SetDefault("analyzer."+tier+".timeout_secs", 60)
	}

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "TRA_SERVER_PORT",
		"server.read_timeout":     "TRA_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "TRA_SERVER_WRITE_TIMEOUT",
		"server.environment":      "TRA_SERVER_ENVIRONMENT",
		"db.host":                 "TRA_DB_HOST",
		"db.port":                 "TRA_DB_PORT",
		"db.user":                 "TRA_DB_USER",
		"db.password":             "TRA_DB_PASSWORD",
		"db.name":                 "TRA_DB_NAME",
		"db.sslmode":              "TRA_DB_SSLMODE",
		"db.max_open":             "TRA_DB_MAX_OPEN",
		"db.max_idle":             "TRA_DB_MAX_IDLE",
		"jwt.secret":              "TRA_JWT_SECRET",
		"jwt.access_expiry":       "TRA_JWT_ACCESS_EXPIRY",
		"jwt.issuer":              "TRA_JWT_ISSUER",
		"s3.region":               "TRA_S3_REGION",
		"s3.bucket":               "TRA_S3_BUCKET",
		"s3.endpoint":             "TRA_S3_ENDPOINT",
		"s3.access_key":           "TRA_S3_ACCESS_KEY",
		"s3.secret_key":           "TRA_S3_SECRET_KEY",
		"s3.presign_expiry":       "TRA_S3_PRESIGN_EXPIRY",
		"log.level":               "TRA_LOG_LEVEL",
		"log.format":              "TRA_LOG_FORMAT",
		"cors.allowed_origins":    "TRA_CORS_ALLOWED_ORIGINS",
		"upload.max_file_size_mb": "TRA_UPLOAD_MAX_FILE_SIZE_MB",
		"extractor.base_url":      "TRA_EXTRACTOR_BASE_URL",
		"extractor.timeout_secs":  "TRA_EXTRACTOR_TIMEOUT_SECS",
		"email.provider":          "TRA_EMAIL_PROVIDER",
		"email.region":            "TRA_EMAIL_REGION",
		"email.from_address":      "TRA_EMAIL_FROM_ADDRESS",
		"email.from_name":         "TRA_EMAIL_FROM_NAME",
		"email.to_address":        "TRA_EMAIL_TO_ADDRESS",

		"analyzer.primary.provider":        "TRA_ANALYZER_PRIMARY_PROVIDER",
		"analyzer.primary.api_key":         "TRA_ANALYZER_PRIMARY_API_KEY",
		"analyzer.primary.default_model":   "TRA_ANALYZER_PRIMARY_DEFAULT_MODEL",
		"analyzer.primary.max_tokens":      "TRA_ANALYZER_PRIMARY_MAX_TOKENS",
		"analyzer.primary.timeout_secs":    "TRA_ANALYZER_PRIMARY_TIMEOUT_SECS",
		"analyzer.secondary.provider":      "TRA_ANALYZER_SECONDARY_PROVIDER",
		"analyzer.secondary.api_key":       "TRA_ANALYZER_SECONDARY_API_KEY",
		"analyzer.secondary.default_model": "TRA_ANALYZER_SECONDARY_DEFAULT_MODEL",
		"analyzer.secondary.max_tokens":    "TRA_ANALYZER_SECONDARY_MAX_TOKENS",
		"analyzer.secondary.timeout_secs":  "TRA_ANALYZER_SECONDARY_TIMEOUT_SECS",
		"analyzer.tertiary.provider":       "TRA_ANALYZER_TERTIARY_PROVIDER",
		"analyzer.tertiary.api_key":        "TRA_ANALYZER_TERTIARY_API_KEY",
		"analyzer.tertiary.default_model":  "TRA_ANALYZER_TERTIARY_DEFAULT_MODEL",
		"analyzer.tertiary.max_tokens":     "TRA_ANALYZER_TERTIARY_MAX_TOKENS",
		"analyzer.tertiary.timeout_secs":   "TRA_ANALYZER_TERTIARY_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if TRA_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TRA_SERVER_PORT") == "" {
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
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
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

	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Extractor = ExtractorConfig{
		BaseURL:     v.GetString("extractor.base_url"),
		TimeoutSecs: v.GetInt("extractor.timeout_secs"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		ToAddress:   v.GetString("email.to_address"),
	}

	cfg.Analyzer = AnalyzerConfig{
		Primary: AnalyzerProviderConfig{
			Provider:     v.GetString("analyzer.primary.provider"),
			APIKey:       v.GetString("analyzer.primary.api_key"),
			DefaultModel: v.GetString("analyzer.primary.default_model"),
			MaxTokens:    v.GetInt("analyzer.primary.max_tokens"),
			TimeoutSecs:  v.GetInt("analyzer.primary.timeout_secs"),
		},
		Secondary: AnalyzerProviderConfig{
			Provider:     v.GetString("analyzer.secondary.provider"),
			APIKey:       v.GetString("analyzer.secondary.api_key"),
			DefaultModel: v.GetString("analyzer.secondary.default_model"),
			MaxTokens:    v.GetInt("analyzer.secondary.max_tokens"),
			TimeoutSecs:  v.GetInt("analyzer.secondary.timeout_secs"),
		},
		Tertiary: AnalyzerProviderConfig{
			Provider:     v.GetString("analyzer.tertiary.provider"),
			APIKey:       v.GetString("analyzer.tertiary.api_key"),
			DefaultModel: v.GetString("analyzer.tertiary.default_model"),
			MaxTokens:    v.GetInt("analyzer.tertiary.max_tokens"),
			TimeoutSecs:  v.GetInt("analyzer.tertiary.timeout_secs"),
		},
	}

	return cfg, nil
}
