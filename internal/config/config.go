package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Mirror drivers
const (
	MirrorMemory   = "memory"
	MirrorPostgres = "postgres"
	MirrorRedis    = "redis"
)

type Config struct {
	Server ServerConfig
	CRM    CRMConfig
	Views  ViewConfig
	Mirror MirrorConfig
	Redis  RedisConfig
	JWT    JWTConfig
}

type ServerConfig struct {
	Port string
}

// CRMConfig describes the remote CRM REST API the console talks to.
type CRMConfig struct {
	BaseURL string
	Timeout time.Duration
	Rate    float64 // requests per second, 0 disables limiting
	Burst   int
}

type ViewConfig struct {
	PageSize int
	// IdleTimeout drops a session's cached collections and view state after
	// this long without a request.
	IdleTimeout time.Duration
}

type MirrorConfig struct {
	Driver        string
	Retention     time.Duration
	PruneSchedule string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string // empty: claims are read without signature verification
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		CRM: CRMConfig{
			BaseURL: strings.TrimRight(getEnv("CRM_API_URL", "http://localhost:8000/api"), "/"),
			Timeout: time.Duration(getEnvAsInt("CRM_API_TIMEOUT", 15)) * time.Second,
			Rate:    getEnvAsFloat("CRM_API_RATE", 10),
			Burst:   getEnvAsInt("CRM_API_BURST", 20),
		},
		Views: ViewConfig{
			PageSize:    getEnvAsInt("PAGE_SIZE", 30),
			IdleTimeout: time.Duration(getEnvAsInt("VIEW_IDLE_MINUTES", 120)) * time.Minute,
		},
		Mirror: MirrorConfig{
			Driver:        strings.ToLower(getEnv("MIRROR_DRIVER", MirrorMemory)),
			Retention:     time.Duration(getEnvAsInt("MIRROR_RETENTION_DAYS", 30)) * 24 * time.Hour,
			PruneSchedule: getEnv("MIRROR_PRUNE_SCHEDULE", "@daily"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
	}

	switch cfg.Mirror.Driver {
	case MirrorMemory, MirrorPostgres, MirrorRedis:
	default:
		return nil, fmt.Errorf("unknown MIRROR_DRIVER %q", cfg.Mirror.Driver)
	}
	if cfg.Views.PageSize < 1 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got %d", cfg.Views.PageSize)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
