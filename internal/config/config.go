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
	Redis  RedisConfig
	Trash  TrashConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
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

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKey       string `mapstructure:"access_key"`
	SecretKey       string `mapstructure:"secret_key"`
	MaxFileSizeMB   int64  `mapstructure:"max_file_size_mb"`
	MaxAvatarSizeMB int64  `mapstructure:"max_avatar_size_mb"`
	PresignExpiry   int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RedisConfig holds the optional Redis cache settings. An empty Addr
// disables Redis and the in-process fallback is used.
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	BrandingTTL time.Duration `mapstructure:"branding_ttl"`
}

// TrashConfig holds soft-delete retention and purge settings.
type TrashConfig struct {
	Retention     time.Duration `mapstructure:"retention"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

// Load reads configuration from environment variables with the CLAIMDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLAIMDESK")
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
	v.SetDefault("db.user", "claimdesk")
	v.SetDefault("db.password", "claimdesk_secret")
	v.SetDefault("db.name", "claimdesk_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "claimdesk")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "claimdesk-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.max_avatar_size_mb", 2)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@claimdesk.app")
	v.SetDefault("email.from_name", "Claimdesk")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Redis defaults
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.branding_ttl", "10m")

	// Trash defaults
	v.SetDefault("trash.retention", "720h")
	v.SetDefault("trash.purge_interval", "1h")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "CLAIMDESK_SERVER_PORT",
		"server.read_timeout":   "CLAIMDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "CLAIMDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":    "CLAIMDESK_SERVER_ENVIRONMENT",
		"db.host":               "CLAIMDESK_DB_HOST",
		"db.port":               "CLAIMDESK_DB_PORT",
		"db.user":               "CLAIMDESK_DB_USER",
		"db.password":           "CLAIMDESK_DB_PASSWORD",
		"db.name":               "CLAIMDESK_DB_NAME",
		"db.sslmode":            "CLAIMDESK_DB_SSLMODE",
		"db.max_open":           "CLAIMDESK_DB_MAX_OPEN",
		"db.max_idle":           "CLAIMDESK_DB_MAX_IDLE",
		"jwt.secret":            "CLAIMDESK_JWT_SECRET",
		"jwt.access_expiry":     "CLAIMDESK_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":    "CLAIMDESK_JWT_REFRESH_EXPIRY",
		"jwt.issuer":            "CLAIMDESK_JWT_ISSUER",
		"s3.region":             "CLAIMDESK_S3_REGION",
		"s3.bucket":             "CLAIMDESK_S3_BUCKET",
		"s3.endpoint":           "CLAIMDESK_S3_ENDPOINT",
		"s3.access_key":         "CLAIMDESK_S3_ACCESS_KEY",
		"s3.secret_key":         "CLAIMDESK_S3_SECRET_KEY",
		"s3.max_file_size_mb":   "CLAIMDESK_S3_MAX_FILE_SIZE_MB",
		"s3.max_avatar_size_mb": "CLAIMDESK_S3_MAX_AVATAR_SIZE_MB",
		"s3.presign_expiry":     "CLAIMDESK_S3_PRESIGN_EXPIRY",
		"log.level":             "CLAIMDESK_LOG_LEVEL",
		"log.format":            "CLAIMDESK_LOG_FORMAT",
		"cors.allowed_origins":  "CLAIMDESK_CORS_ALLOWED_ORIGINS",
		"email.provider":        "CLAIMDESK_EMAIL_PROVIDER",
		"email.region":          "CLAIMDESK_EMAIL_REGION",
		"email.from_address":    "CLAIMDESK_EMAIL_FROM_ADDRESS",
		"email.from_name":       "CLAIMDESK_EMAIL_FROM_NAME",
		"email.frontend_url":    "CLAIMDESK_EMAIL_FRONTEND_URL",
		"redis.addr":            "CLAIMDESK_REDIS_ADDR",
		"redis.password":        "CLAIMDESK_REDIS_PASSWORD",
		"redis.db":              "CLAIMDESK_REDIS_DB",
		"redis.branding_ttl":    "CLAIMDESK_REDIS_BRANDING_TTL",
		"trash.retention":       "CLAIMDESK_TRASH_RETENTION",
		"trash.purge_interval":  "CLAIMDESK_TRASH_PURGE_INTERVAL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CLAIMDESK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CLAIMDESK_SERVER_PORT") == "" {
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
		Region:          v.GetString("s3.region"),
		Bucket:          v.GetString("s3.bucket"),
		Endpoint:        v.GetString("s3.endpoint"),
		AccessKey:       v.GetString("s3.access_key"),
		SecretKey:       v.GetString("s3.secret_key"),
		MaxFileSizeMB:   v.GetInt64("s3.max_file_size_mb"),
		MaxAvatarSizeMB: v.GetInt64("s3.max_avatar_size_mb"),
		PresignExpiry:   v.GetInt64("s3.presign_expiry"),
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
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	cfg.Redis = RedisConfig{
		Addr:        v.GetString("redis.addr"),
		Password:    v.GetString("redis.password"),
		DB:          v.GetInt("redis.db"),
		BrandingTTL: v.GetDuration("redis.branding_ttl"),
	}

	cfg.Trash = TrashConfig{
		Retention:     v.GetDuration("trash.retention"),
		PurgeInterval: v.GetDuration("trash.purge_interval"),
	}
	if cfg.Trash.Retention <= 0 {
		return nil, fmt.Errorf("trash.retention must be positive, got %s", cfg.Trash.Retention)
	}

	return cfg, nil
}
