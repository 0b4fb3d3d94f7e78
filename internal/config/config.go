// Package config handles external configuration loading from a JSON/YAML file,
// a .env file and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Backend drivers understood by datasource.Open.
const (
	DriverREST     = "rest"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrMissingCredentials is returned when the selected content backend has no
// credentials configured. It is fatal at startup.
var ErrMissingCredentials = errors.New("missing content backend credentials")

// Config holds all application configuration
type Config struct {
	Env      string   `json:"env" yaml:"env" env:"APP_ENV" env-default:"local"`
	Debug    bool     `json:"debug" yaml:"debug" env:"DEBUG"`
	Server   Server   `json:"server" yaml:"server"`
	Backend  Backend  `json:"backend" yaml:"backend"`
	Store    Store    `json:"store" yaml:"store"`
	Business Business `json:"business" yaml:"business"`
	Assets   Assets   `json:"assets" yaml:"assets"`
	Content  Content  `json:"content" yaml:"content"`
	Leads    Leads    `json:"leads" yaml:"leads"`
	Admin    Admin    `json:"admin" yaml:"admin"`
}

// Server holds HTTP server configuration
type Server struct {
	Host            string        `json:"host" yaml:"host" env:"HOST"`
	Port            int           `json:"port" yaml:"port" env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `json:"readTimeout" yaml:"read_timeout" env-default:"10s"`
	WriteTimeout    time.Duration `json:"writeTimeout" yaml:"write_timeout" env-default:"30s"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdown_timeout" env-default:"15s"`
}

// Backend selects and authenticates the hosted content tables.
type Backend struct {
	Driver  string `json:"driver" yaml:"driver" env:"BACKEND_DRIVER" env-default:"rest"`
	URL     string `json:"url" yaml:"url" env:"SUPABASE_URL"`
	AnonKey string `json:"anonKey" yaml:"anon_key" env:"SUPABASE_ANON_KEY"`
	DSN     string `json:"dsn" yaml:"dsn" env:"DATABASE_URL"`
}

// Store is the local SQLite file holding leads and site settings. It doubles
// as the content backend when Backend.Driver is "sqlite".
type Store struct {
	Path string `json:"path" yaml:"path" env:"STORE_PATH" env-default:"data/offsite.db"`
}

// Business holds branding and contact information
type Business struct {
	Name         string `json:"name" yaml:"name" env:"BUSINESS_NAME" env-default:"Offsite"`
	Tagline      string `json:"tagline" yaml:"tagline" env-default:"Team outings that people actually want to go on"`
	ContactEmail string `json:"contactEmail" yaml:"contact_email" env:"CONTACT_EMAIL"`
	ContactPhone string `json:"contactPhone" yaml:"contact_phone" env:"CONTACT_PHONE"`
	PublicURL    string `json:"publicUrl" yaml:"public_url" env:"PUBLIC_URL" env-default:"http://localhost:8080"`
}

// Assets holds object-storage image settings
type Assets struct {
	PlaceholderImage string `json:"placeholderImage" yaml:"placeholder_image" env:"PLACEHOLDER_IMAGE" env-default:"https://placehold.co/1200x800?text=Offsite"`
}

// Content tunes page composition
type Content struct {
	// RenderWait bounds how long a page waits for its providers before
	// rendering the loading view instead.
	RenderWait time.Duration `json:"renderWait" yaml:"render_wait" env:"RENDER_WAIT" env-default:"5s"`
}

// Leads tunes the lead-capture endpoint
type Leads struct {
	RatePerMinute int    `json:"ratePerMinute" yaml:"rate_per_minute" env:"LEADS_RATE_PER_MINUTE" env-default:"6"`
	Burst         int    `json:"burst" yaml:"burst" env-default:"3"`
	NotifyEmail   string `json:"notifyEmail" yaml:"notify_email" env:"LEADS_NOTIFY_EMAIL"`
}

// Admin holds the lead inbox login
type Admin struct {
	Email           string `json:"email" yaml:"email" env:"ADMIN_EMAIL"`
	PasswordHash    string `json:"passwordHash" yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
	JWTSecret       string `json:"jwtSecret" yaml:"jwt_secret" env:"JWT_SECRET"`
	ExpirationHours int    `json:"expirationHours" yaml:"expiration_hours" env-default:"24"`
}

// Load reads configuration from the specified file (if present), then .env,
// then environment variables. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: read .env: %w", op, err)
	}

	var cfg Config

	cleanPath := filepath.Clean(configPath)
	if _, err := os.Stat(cleanPath); err == nil {
		if err := cleanenv.ReadConfig(cleanPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		return nil, fmt.Errorf("%s: stat config file: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid configuration: %w", op, err)
	}

	return &cfg, nil
}

// validate checks that all required configuration values are present
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Backend.Driver {
	case DriverREST:
		if c.Backend.URL == "" || c.Backend.AnonKey == "" {
			return fmt.Errorf("%w: SUPABASE_URL and SUPABASE_ANON_KEY are required", ErrMissingCredentials)
		}
	case DriverPostgres:
		if c.Backend.DSN == "" {
			return fmt.Errorf("%w: DATABASE_URL is required", ErrMissingCredentials)
		}
	case DriverSQLite:
		// the local store is the backend
	default:
		return fmt.Errorf("unknown backend driver %q", c.Backend.Driver)
	}

	if c.Store.Path == "" {
		return fmt.Errorf("store path is required")
	}
	cleanDBPath := filepath.Clean(c.Store.Path)
	if !filepath.IsLocal(cleanDBPath) && !filepath.IsAbs(cleanDBPath) {
		return fmt.Errorf("invalid store path: potential path traversal detected")
	}

	if c.Admin.Email != "" {
		if c.Admin.PasswordHash == "" {
			return fmt.Errorf("admin password hash is required when admin email is set")
		}
		if c.Admin.JWTSecret == "" {
			if !c.Debug {
				return fmt.Errorf("JWT secret must be set for the admin inbox")
			}
			c.Admin.JWTSecret = "offsite-dev-secret"
		}
	}

	if c.Admin.ExpirationHours <= 0 {
		c.Admin.ExpirationHours = 24
	}

	return nil
}

// Address returns the full server address (host:port)
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetStorePath returns the cleaned local store path
func (c *Config) GetStorePath() string {
	return filepath.Clean(c.Store.Path)
}

// AdminEnabled reports whether the lead inbox login is configured.
func (c *Config) AdminEnabled() bool {
	return c.Admin.Email != "" && c.Admin.PasswordHash != ""
}
