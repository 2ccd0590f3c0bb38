package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"SmartExpense"`
		Env  string `envconfig:"APP_ENV" default:"development"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Storage struct {
		Backend    string `envconfig:"STORAGE_BACKEND" default:"file"`
		Key        string `envconfig:"STORAGE_KEY" default:"smartexpense-data"`
		Dir        string `envconfig:"DATA_DIR" default:"./data"`
		SQLitePath string `envconfig:"SQLITE_PATH" default:"./data/smartexpense.db"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"smartexpense"`
	}

	Ledger struct {
		IDScheme string `envconfig:"ID_SCHEME" default:"timestamp"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
		File   string `envconfig:"LOG_FILE"`
	}
}

func (c *Config) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     net.JoinHostPort(c.DB.Host, strconv.Itoa(c.DB.Port)),
		Path:     "/" + c.DB.Name,
		RawQuery: "sslmode=disable",
	}

	return u.String()
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.App.Port < 1 || c.App.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.App.Port))
	}

	backends := []string{BackendFile, BackendMemory, BackendSQLite, BackendPostgres}
	if !slices.Contains(backends, c.Storage.Backend) {
		problems = append(problems, fmt.Sprintf("invalid storage backend %q: must be one of %v", c.Storage.Backend, backends))
	}

	if strings.TrimSpace(c.Storage.Key) == "" {
		problems = append(problems, "storage key cannot be empty")
	}

	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.Dir == "" {
			problems = append(problems, "data directory cannot be empty when using file backend")
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			problems = append(problems, "SQLite path cannot be empty when using sqlite backend")
		}
	case BackendPostgres:
		if c.DB.Host == "" || c.DB.Name == "" {
			problems = append(problems, "DB_HOST and DB_NAME are required when using postgres backend")
		}
	}

	if c.Ledger.IDScheme != "timestamp" && c.Ledger.IDScheme != "uuid" {
		problems = append(problems, fmt.Sprintf("invalid id scheme %q: must be timestamp or uuid", c.Ledger.IDScheme))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.Log.Level))
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		problems = append(problems, fmt.Sprintf("invalid log format %q: must be text or json", c.Log.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
