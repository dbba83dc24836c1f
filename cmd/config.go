package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	UndoLogMemory = "memory"
	UndoLogRedis  = "redis"
)

// Config holds the runtime settings, one field per environment variable.
type Config struct {
	HTTPPort string `mapstructure:"HTTP_PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSslMode  string `mapstructure:"DB_SSLMODE"`

	// RedisURL empty disables the redis event bus and undo log.
	RedisURL        string `mapstructure:"REDIS_URL"`
	UndoLogBackend  string `mapstructure:"UNDO_LOG_BACKEND"`
	UndoLogCapacity int    `mapstructure:"UNDO_LOG_CAPACITY"`
	EventsChannel   string `mapstructure:"EVENTS_CHANNEL"`

	// StrictStock refuses deductions that would leave a balance negative.
	StrictStock bool `mapstructure:"STRICT_STOCK"`

	LowStockScanSchedule string `mapstructure:"LOW_STOCK_SCAN_SCHEDULE"`
	LedgerAuditSchedule  string `mapstructure:"LEDGER_AUDIT_SCHEDULE"`

	LogLevel          string `mapstructure:"LOG_LEVEL"`
	LogFormat         string `mapstructure:"LOG_FORMAT"`
	OpenAPIValidation bool   `mapstructure:"OPENAPI_VALIDATION"`
}

var defaults = map[string]any{
	"HTTP_PORT":               "8080",
	"DB_HOST":                 "localhost",
	"DB_PORT":                 "5432",
	"DB_USER":                 "postgres",
	"DB_PASSWORD":             "",
	"DB_NAME":                 "backoffice",
	"DB_SSLMODE":              "disable",
	"REDIS_URL":               "",
	"UNDO_LOG_BACKEND":        UndoLogMemory,
	"UNDO_LOG_CAPACITY":       10,
	"EVENTS_CHANNEL":          "backoffice.events",
	"STRICT_STOCK":            false,
	"LOW_STOCK_SCAN_SCHEDULE": "0 */5 * * * *",
	"LEDGER_AUDIT_SCHEDULE":   "0 0 * * * *",
	"LOG_LEVEL":               "info",
	"LOG_FORMAT":              "console",
	"OPENAPI_VALIDATION":      true,
}

// LoadConfig reads envFile when it exists, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errList []error
	switch c.UndoLogBackend {
	case UndoLogMemory:
	case UndoLogRedis:
		if c.RedisURL == "" {
			errList = append(errList, errors.New("UNDO_LOG_BACKEND=redis requires REDIS_URL"))
		}
	default:
		errList = append(errList, fmt.Errorf("UNDO_LOG_BACKEND must be %q or %q, got %q",
			UndoLogMemory, UndoLogRedis, c.UndoLogBackend))
	}
	if c.UndoLogCapacity < 1 {
		errList = append(errList, fmt.Errorf("UNDO_LOG_CAPACITY must be positive, got %d", c.UndoLogCapacity))
	}
	if strings.TrimSpace(c.HTTPPort) == "" {
		errList = append(errList, errors.New("HTTP_PORT is required"))
	}
	return errors.Join(errList...)
}

// DSN renders the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
