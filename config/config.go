// config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port" validate:"required"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver" validate:"oneof=mysql sqlite"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	Path     string `yaml:"path"` // sqlite file, ":memory:" allowed
}

type ShoaConfig struct {
	BaseURL         string        `yaml:"base_url" validate:"required,url"`
	UserAgent       string        `yaml:"user_agent" validate:"required"`
	TableSelector   string        `yaml:"table_selector" validate:"required"`
	FetchTimeoutStr string        `yaml:"fetch_timeout"`
	FetchTimeout    time.Duration `yaml:"-"` // Parsed duration
}

type StormglassConfig struct {
	BaseURL string `yaml:"base_url" validate:"required,url"`
	APIKey  string `yaml:"api_key"`
}

type RefreshConfig struct {
	// MaxZones caps how many registered zones one run processes.
	// Unset defaults to DefaultMaxZones; -1 processes every zone.
	MaxZones int `yaml:"max_zones" validate:"gte=-1"`
	// Concurrency bounds simultaneous zone fetch+write operations. 0 means MaxZones.
	Concurrency int           `yaml:"concurrency" validate:"gte=0"`
	ZonesCSV    string        `yaml:"zones_csv"`
	TimeoutStr  string        `yaml:"timeout"`
	Timeout     time.Duration `yaml:"-"`
}

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Shoa       ShoaConfig       `yaml:"shoa"`
	Stormglass StormglassConfig `yaml:"stormglass"`
	Refresh    RefreshConfig    `yaml:"refresh"`
}

// envOverrides are read from the process environment (and .env) after the YAML file.
// Empty values leave the file setting untouched.
type envOverrides struct {
	Port             string `envconfig:"MAREAS_PORT"`
	DBDriver         string `envconfig:"MAREAS_DB_DRIVER"`
	DBHost           string `envconfig:"MAREAS_DB_HOST"`
	DBPort           string `envconfig:"MAREAS_DB_PORT"`
	DBUser           string `envconfig:"MAREAS_DB_USER"`
	DBPassword       string `envconfig:"MAREAS_DB_PASSWORD"`
	DBName           string `envconfig:"MAREAS_DB_NAME"`
	DBPath           string `envconfig:"MAREAS_DB_PATH"`
	ShoaUserAgent    string `envconfig:"MAREAS_SHOA_USER_AGENT"`
	StormglassAPIKey string `envconfig:"STORMGLASS_API_KEY"`
	ZonesCSV         string `envconfig:"MAREAS_ZONES_CSV"`
}

const (
	DefaultShoaBaseURL       = "https://www.shoa.cl/nuestros-servicios/tablas-de-marea"
	DefaultShoaUserAgent     = "MiAppDePesca/1.0"
	DefaultTableSelector     = "table.table-bordered"
	DefaultStormglassBaseURL = "https://api.stormglass.io"
	DefaultMaxZones          = 9
)

var AppConfig Config

// LoadConfig reads configuration from file, then .env and environment variables.
func LoadConfig(configPath string) error {
	if configPath == "" {
		potentialPaths := []string{
			"config.yaml",        // If running from config/
			"config/config.yaml", // If running from the repo root
			"../config/config.yaml",
		}
		for _, p := range potentialPaths {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
		if configPath == "" {
			return fmt.Errorf("config.yaml not found in standard locations")
		}
		log.Printf("Loading configuration from: %s\n", configPath)
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN Config: could not load .env file: %v", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("failed to read environment overrides: %w", err)
	}
	applyOverrides(&cfg, env)

	if err := applyDefaults(&cfg); err != nil {
		return err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	AppConfig = cfg
	return nil
}

func applyOverrides(cfg *Config, env envOverrides) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Server.Port, env.Port)
	set(&cfg.Database.Driver, env.DBDriver)
	set(&cfg.Database.Host, env.DBHost)
	set(&cfg.Database.Port, env.DBPort)
	set(&cfg.Database.User, env.DBUser)
	set(&cfg.Database.Password, env.DBPassword)
	set(&cfg.Database.DBName, env.DBName)
	set(&cfg.Database.Path, env.DBPath)
	set(&cfg.Shoa.UserAgent, env.ShoaUserAgent)
	set(&cfg.Stormglass.APIKey, env.StormglassAPIKey)
	set(&cfg.Refresh.ZonesCSV, env.ZonesCSV)
}

func applyDefaults(cfg *Config) error {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mysql"
	}
	if cfg.Shoa.BaseURL == "" {
		cfg.Shoa.BaseURL = DefaultShoaBaseURL
	}
	if cfg.Shoa.UserAgent == "" {
		cfg.Shoa.UserAgent = DefaultShoaUserAgent
	}
	if cfg.Shoa.TableSelector == "" {
		cfg.Shoa.TableSelector = DefaultTableSelector
	}
	if cfg.Refresh.MaxZones == 0 {
		cfg.Refresh.MaxZones = DefaultMaxZones
	}
	if cfg.Stormglass.BaseURL == "" {
		cfg.Stormglass.BaseURL = DefaultStormglassBaseURL
	}

	// Parse durations
	var err error
	if cfg.Shoa.FetchTimeoutStr != "" {
		cfg.Shoa.FetchTimeout, err = time.ParseDuration(cfg.Shoa.FetchTimeoutStr)
		if err != nil {
			return fmt.Errorf("failed to parse shoa.fetch_timeout: %w", err)
		}
	} else {
		cfg.Shoa.FetchTimeout = 15 * time.Second
	}
	if cfg.Refresh.TimeoutStr != "" {
		cfg.Refresh.Timeout, err = time.ParseDuration(cfg.Refresh.TimeoutStr)
		if err != nil {
			return fmt.Errorf("failed to parse refresh.timeout: %w", err)
		}
	} else {
		cfg.Refresh.Timeout = 2 * time.Minute
	}
	return nil
}
