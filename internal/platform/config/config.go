package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/SscSPs/asset_depreciation/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	RunMigrations bool

	// Scheduling
	ScheduleName    string
	TickSpec        string
	PollInterval    time.Duration
	MisfireGrace    time.Duration
	DefaultTimezone string

	// Run coordinator
	RunConcurrency int
	AmountScale    int32

	// HTTP
	RunRateLimit       string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RUN_MIGRATIONS", false)
	viper.SetDefault("SCHEDULE_NAME", domain.DefaultScheduleName)
	viper.SetDefault("TICK_SPEC", "* * * * *")
	viper.SetDefault("POLL_INTERVAL", "1m")
	viper.SetDefault("MISFIRE_GRACE", "1m")
	viper.SetDefault("DEFAULT_TIMEZONE", "UTC")
	viper.SetDefault("RUN_CONCURRENCY", 4)
	viper.SetDefault("AMOUNT_SCALE", 2)
	viper.SetDefault("RUN_RATE_LIMIT", "5-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RunMigrations = viper.GetBool("RUN_MIGRATIONS")

	cfg.ScheduleName = viper.GetString("SCHEDULE_NAME")
	if cfg.ScheduleName == "" {
		cfg.ScheduleName = domain.DefaultScheduleName
	}
	cfg.TickSpec = viper.GetString("TICK_SPEC")
	cfg.PollInterval = durationOrDefault("POLL_INTERVAL", time.Minute)
	cfg.MisfireGrace = durationOrDefault("MISFIRE_GRACE", time.Minute)

	cfg.DefaultTimezone = viper.GetString("DEFAULT_TIMEZONE")
	if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
		log.Printf("Warning: Invalid value for DEFAULT_TIMEZONE ('%s'). Defaulting to UTC.\n", cfg.DefaultTimezone)
		cfg.DefaultTimezone = "UTC"
	}

	cfg.RunConcurrency = viper.GetInt("RUN_CONCURRENCY")
	if cfg.RunConcurrency < 1 {
		log.Printf("Warning: RUN_CONCURRENCY must be positive ('%d'). Defaulting to 1.\n", cfg.RunConcurrency)
		cfg.RunConcurrency = 1
	}

	scale := viper.GetInt("AMOUNT_SCALE")
	if scale < 0 || scale > 8 {
		log.Printf("Warning: AMOUNT_SCALE out of range ('%d'). Defaulting to 2.\n", scale)
		scale = 2
	}
	cfg.AmountScale = int32(scale)

	cfg.RunRateLimit = viper.GetString("RUN_RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
