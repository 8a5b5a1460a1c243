package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Server struct {
		// Port the HTTP server listens on
		Port string `env:"PORT" envDefault:"5250"`

		// Gin mode: debug, release or test
		GinMode string `env:"GIN_MODE" envDefault:"release"`

		// Allowed CORS origins, comma separated
		CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

		ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
		WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL" envDefault:"info"`
	}

	Data struct {
		// Workbook holding the supply schedule
		File string `env:"DATA_FILE" envDefault:"공급일정.xlsx"`

		// Sheet read from the workbook
		Sheet string `env:"DATA_SHEET" envDefault:"운정"`

		// Category whose units make up the public ratio
		PublicCategory string `env:"PUBLIC_CATEGORY" envDefault:"공공 분양"`

		// Name offered for the CSV download
		ExportFilename string `env:"EXPORT_FILENAME" envDefault:"운정3지구_준공일정.csv"`
	}

	Auth struct {
		// TOML file with the dashboard users
		CredentialsFile string `env:"CREDENTIALS_FILE" envDefault:"config/users.toml"`

		SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

		CookieName   string `env:"SESSION_COOKIE" envDefault:"session"`
		CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`
	}
}

// LoadConfig reads an optional .env file and parses the environment.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and reports every problem at once
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Server.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Server.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		problems = append(problems, fmt.Sprintf("invalid gin mode '%s': must be debug, release or test", c.Server.GinMode))
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.Log.Level))
	}

	if strings.TrimSpace(c.Data.File) == "" {
		problems = append(problems, "data file cannot be empty")
	}
	if strings.TrimSpace(c.Data.Sheet) == "" {
		problems = append(problems, "data sheet cannot be empty")
	}
	if strings.TrimSpace(c.Data.ExportFilename) == "" {
		problems = append(problems, "export filename cannot be empty")
	}

	if strings.TrimSpace(c.Auth.CredentialsFile) == "" {
		problems = append(problems, "credentials file cannot be empty")
	}
	if c.Auth.SessionTTL <= 0 {
		problems = append(problems, "session TTL must be positive")
	}
	if strings.TrimSpace(c.Auth.CookieName) == "" {
		problems = append(problems, "session cookie name cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// LogLevel returns the parsed log level, defaulting to info
func (c *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
