// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"wallet-ledger/internal/util"
	"wallet-ledger/pkg/db" // Import db package for its Config struct

	"github.com/joho/godotenv"
)

// ValidatorConfig holds the operator's login values and TOTP secret.
type ValidatorConfig struct {
	Email            string
	Password         string
	TelegramUsername string
	OTPSecret        string
}

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort      string
	LogLevel        string
	DB              db.Config
	FrontendURLs    []string
	Validator       ValidatorConfig
	RedisURL        string
	IdempotencyTTL  time.Duration
	MethodsCacheTTL time.Duration
	DefaultLocale   string
	RunMigrations   bool
}

var requiredVars = []string{
	"DATABASE_URL",
	"FRONTEND_URL",
	"VALIDATOR_EMAIL",
	"VALIDATOR_PASSWORD",
	"VALIDATOR_TELEGRAM_USERNAME",
	"VALIDATOR_GOOGLE_SECRET",
}

// LoadConfig loads configuration from environment variables, reading a .env
// file first when one exists. Variables already set in the environment win.
// It returns an error naming every missing required variable.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	var missing []string
	for _, name := range requiredVars {
		if strings.TrimSpace(os.Getenv(name)) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	serverPort := os.Getenv("DEPOSIT_PORT")
	if serverPort == "" {
		serverPort = os.Getenv("SERVER_PORT")
	}
	if serverPort == "" {
		serverPort = "8001" // Default port
	}
	if _, err := strconv.Atoi(serverPort); err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", serverPort, err)
	}

	idempotencyTTL, err := durationEnv("IDEMPOTENCY_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	methodsCacheTTL, err := durationEnv("METHODS_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	runMigrations, err := boolEnv("RUN_MIGRATIONS", true)
	if err != nil {
		return nil, err
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &AppConfig{
		ServerPort: serverPort,
		LogLevel:   logLevel,
		DB: db.Config{
			URL: os.Getenv("DATABASE_URL"),
		},
		FrontendURLs: splitList(os.Getenv("FRONTEND_URL")),
		Validator: ValidatorConfig{
			Email:            os.Getenv("VALIDATOR_EMAIL"),
			Password:         os.Getenv("VALIDATOR_PASSWORD"),
			TelegramUsername: os.Getenv("VALIDATOR_TELEGRAM_USERNAME"),
			OTPSecret:        os.Getenv("VALIDATOR_GOOGLE_SECRET"),
		},
		RedisURL:        os.Getenv("REDIS_URL"),
		IdempotencyTTL:  idempotencyTTL,
		MethodsCacheTTL: methodsCacheTTL,
		DefaultLocale:   util.NormalizeLocale(os.Getenv("DEFAULT_LOCALE")),
		RunMigrations:   runMigrations,
	}, nil
}

// ToolConfig is the subset of settings the command line tools need.
type ToolConfig struct {
	LogLevel      string
	DB            db.Config
	RedisURL      string
	RunMigrations bool
}

// LoadToolConfig loads the settings used by cmd/seed. Only DATABASE_URL is required.
func LoadToolConfig() (*ToolConfig, error) {
	_ = godotenv.Load()

	url := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if url == "" {
		return nil, fmt.Errorf("missing required environment variables: DATABASE_URL")
	}
	runMigrations, err := boolEnv("RUN_MIGRATIONS", true)
	if err != nil {
		return nil, err
	}
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &ToolConfig{
		LogLevel:      logLevel,
		DB:            db.Config{URL: url},
		RedisURL:      os.Getenv("REDIS_URL"),
		RunMigrations: runMigrations,
	}, nil
}

func boolEnv(name string, def bool) (bool, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", name, err)
	}
	return b, nil
}

func durationEnv(name string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimRight(strings.TrimSpace(part), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
