package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName string
	AppEnv  string
	AppPort string

	DatabaseURL string
	RedisURL    string

	JWTSecret string
	JWTTTL    time.Duration

	UploadsDir        string
	MaxUploadMB       int
	AllowedUploadExts []string

	DashboardCacheTTL         time.Duration
	ExpiryLookaheadDays       int
	FallbackRequiredTrainings int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// MaxUploadBytes converts the configured megabyte cap into bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TRAINHUB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "TrainHub API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("jwt.ttl", "12h")
	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("uploads.max_mb", 10)
	v.SetDefault("uploads.allowed_exts", "pdf,png,jpg,jpeg,doc,docx,xls,xlsx,csv")
	v.SetDefault("dashboard.cache_ttl", "5m")
	v.SetDefault("compliance.expiry_lookahead_days", 60)
	v.SetDefault("compliance.required_trainings", 3)

	jwtTTL, err := time.ParseDuration(v.GetString("jwt.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt ttl: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("dashboard.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:                   v.GetString("app.name"),
		AppEnv:                    v.GetString("app.env"),
		AppPort:                   v.GetString("app.port"),
		DatabaseURL:               v.GetString("database.url"),
		RedisURL:                  v.GetString("redis.url"),
		JWTSecret:                 v.GetString("jwt.secret"),
		JWTTTL:                    jwtTTL,
		UploadsDir:                v.GetString("uploads.dir"),
		MaxUploadMB:               v.GetInt("uploads.max_mb"),
		AllowedUploadExts:         splitList(v.GetString("uploads.allowed_exts")),
		DashboardCacheTTL:         cacheTTL,
		ExpiryLookaheadDays:       v.GetInt("compliance.expiry_lookahead_days"),
		FallbackRequiredTrainings: v.GetInt("compliance.required_trainings"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 10
	}

	if cfg.ExpiryLookaheadDays <= 0 {
		cfg.ExpiryLookaheadDays = 60
	}

	if cfg.FallbackRequiredTrainings <= 0 {
		cfg.FallbackRequiredTrainings = 3
	}

	return cfg, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(part))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
