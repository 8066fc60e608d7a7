package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Admin       AdminConfig       `yaml:"admin"`
	Reservation ReservationConfig `yaml:"reservation"`
	Sweep       SweepConfig       `yaml:"sweep"`
	Log         LogConfig         `yaml:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// AdminConfig holds the shared admin secret
type AdminConfig struct {
	Password string `yaml:"password"`
}

// ReservationConfig holds court and reservation policy settings
type ReservationConfig struct {
	CourtCount      int    `yaml:"court_count"`
	DurationMinutes int    `yaml:"duration_minutes"`
	Timezone        string `yaml:"timezone"`
}

// SweepConfig holds expiry sweep settings
type SweepConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from a YAML file, with secrets overridable
// from a .env file next to it or from the process environment.
func Load(path string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Reservation.CourtCount == 0 {
		c.Reservation.CourtCount = 20
	}
	if c.Reservation.DurationMinutes == 0 {
		c.Reservation.DurationMinutes = 60
	}
	if c.Reservation.Timezone == "" {
		c.Reservation.Timezone = "America/Los_Angeles"
	}
	if c.Sweep.IntervalSeconds == 0 {
		c.Sweep.IntervalSeconds = 60
	}
}

// Validate checks the configuration for required values
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("database host and dbname are required")
	}
	if c.Admin.Password == "" {
		return fmt.Errorf("admin password is required")
	}
	if c.Reservation.CourtCount < 1 {
		return fmt.Errorf("court count must be positive")
	}
	if _, err := time.LoadLocation(c.Reservation.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Reservation.Timezone, err)
	}
	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Duration returns the reservation lifetime
func (c *ReservationConfig) Duration() time.Duration {
	return time.Duration(c.DurationMinutes) * time.Minute
}

// Location returns the timezone used for day boundaries
func (c *ReservationConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Interval returns the sweep interval
func (c *SweepConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}
