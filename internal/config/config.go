package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const DefaultPath = "../.config/config.yaml"

type Database struct {
	Driver       string `yaml:"driver" validate:"required,oneof=postgres postgresql mysql mariadb sqlite sqlite3"`
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"maxOpenConns" validate:"gte=0"`
	MaxIdleConns int    `yaml:"maxIdleConns" validate:"gte=0"`
	// ConnMaxLifetime is an ISO 8601 duration such as PT30M.
	ConnMaxLifetime string `yaml:"connMaxLifetime"`
}

type Pagination struct {
	RecordsPerPage int `yaml:"recordsPerPage" validate:"gte=1,lte=100"`
}

// Auth signs session tokens issued at login. Without a secret no tokens are issued.
type Auth struct {
	Secret        string `yaml:"secret"`
	TokenLifetime string `yaml:"tokenLifetime"`
}

type Config struct {
	BaseURL    string     `yaml:"baseURL"`
	Port       string     `yaml:"port" validate:"required,numeric"`
	LogLevel   string     `yaml:"logLevel" validate:"oneof=trace debug info warn error"`
	LogFormat  string     `yaml:"logFormat" validate:"oneof=text json"`
	Database   Database   `yaml:"database"`
	Pagination Pagination `yaml:"pagination"`
	Auth       Auth       `yaml:"auth"`
}

func defaults() *Config {
	return &Config{
		Port:      "4041",
		LogLevel:  "info",
		LogFormat: "text",
		Database: Database{
			Driver:          "postgres",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: "PT30M",
		},
		Pagination: Pagination{RecordsPerPage: 8},
		Auth:       Auth{TokenLifetime: "PT12H"},
	}
}

// Path returns the config file location, RENT_CONFIG when it is set.
func Path() string {
	if p := os.Getenv("RENT_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// GetConfig reads the yaml file at path over the defaults, then applies the
// environment (.env included). A missing file is not an error.
func GetConfig(path string) (cfg *Config, err error) {
	cfg = defaults()

	if err = godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	file, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, err
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err = validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := []struct {
		key    string
		target *string
	}{
		{"RENT_DB_DRIVER", &cfg.Database.Driver},
		{"RENT_DB_URL", &cfg.Database.URL},
		{"RENT_PORT", &cfg.Port},
		{"RENT_LOG_LEVEL", &cfg.LogLevel},
		{"RENT_JWT_SECRET", &cfg.Auth.Secret},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok {
			*o.target = strings.TrimSpace(v)
		}
	}
}

// Address is what the http server listens on.
func (c *Config) Address() string {
	return c.BaseURL + ":" + c.Port
}
