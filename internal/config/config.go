package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

const (
	DefaultJWTSecret   = "change-me-jwt-secret"
	DefaultDatabaseURL = "file:hadith.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
)

type (
	Config struct {
		AppEnv string
		HTTP
		Database
		Auth
		CORS
		Daily
		Log
	}

	HTTP struct {
		Host            string
		Port            int
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
	}
	Database struct {
		URL          string
		AutoMigrate  bool
		LogLevel     string // silent | error | warn | info
		MaxOpenConns int
	}
	Auth struct {
		JWTSecret    string
		JWTAccessTTL time.Duration
		BcryptCost   int
	}
	CORS struct {
		AllowedOrigins []string
	}
	Daily struct {
		IncludeHasan bool   // widen the daily pick from Sahih to Sahih+Hasan
		Timezone     string // zone used to resolve "today" when no date is given
		Location     *time.Location
	}
	Log struct {
		Level  string // debug | info | warn | error
		Format string // text | json
	}
)

// Load reads configuration from the environment. Call godotenv first if a
// .env file should be honoured.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("app_env", "dev")
	v.SetDefault("http_host", "0.0.0.0")
	v.SetDefault("http_port", 8080)
	v.SetDefault("http_read_timeout", "15s")
	v.SetDefault("http_write_timeout", "30s")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("database_url", DefaultDatabaseURL)
	v.SetDefault("db_auto_migrate", true)
	v.SetDefault("db_log_level", "warn")
	v.SetDefault("db_max_open_conns", 10)
	v.SetDefault("jwt_secret", DefaultJWTSecret)
	v.SetDefault("jwt_access_ttl", "30m")
	v.SetDefault("bcrypt_cost", 10)
	v.SetDefault("cors_allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")
	v.SetDefault("daily_include_hasan", false)
	v.SetDefault("daily_timezone", "UTC")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	cfg := &Config{
		AppEnv: strings.ToLower(strings.TrimSpace(v.GetString("app_env"))),
		HTTP: HTTP{
			Host:            v.GetString("http_host"),
			Port:            v.GetInt("http_port"),
			ReadTimeout:     v.GetDuration("http_read_timeout"),
			WriteTimeout:    v.GetDuration("http_write_timeout"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Database: Database{
			URL:          strings.TrimSpace(v.GetString("database_url")),
			AutoMigrate:  v.GetBool("db_auto_migrate"),
			LogLevel:     strings.ToLower(v.GetString("db_log_level")),
			MaxOpenConns: v.GetInt("db_max_open_conns"),
		},
		Auth: Auth{
			JWTSecret:    strings.TrimSpace(v.GetString("jwt_secret")),
			JWTAccessTTL: v.GetDuration("jwt_access_ttl"),
			BcryptCost:   v.GetInt("bcrypt_cost"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		},
		Daily: Daily{
			IncludeHasan: v.GetBool("daily_include_hasan"),
			Timezone:     strings.TrimSpace(v.GetString("daily_timezone")),
		},
		Log: Log{
			Level:  strings.ToLower(v.GetString("log_level")),
			Format: strings.ToLower(v.GetString("log_format")),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be in 1..65535")
	}
	if cfg.HTTP.ReadTimeout <= 0 || cfg.HTTP.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be > 0")
	}
	if cfg.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	switch cfg.Database.LogLevel {
	case "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("DB_LOG_LEVEL must be one of: silent, error, warn, info")
	}
	if cfg.Auth.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be in 4..31")
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json")
	}

	loc, err := time.LoadLocation(cfg.Daily.Timezone)
	if err != nil {
		return fmt.Errorf("invalid DAILY_TIMEZONE %q: %w", cfg.Daily.Timezone, err)
	}
	cfg.Daily.Location = loc

	if isProdLike(cfg.AppEnv) {
		if cfg.Auth.JWTSecret == "" || cfg.Auth.JWTSecret == DefaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if len(cfg.Auth.JWTSecret) < 32 {
			return fmt.Errorf("in prod/release JWT_SECRET must be at least 32 characters")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
