package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"development"` // development, production

	// Submission rate limit, shared across clients.
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"10"`

	Mongo Mongo
	Relay Relay
}

// Mongo configures the issues document store connection.
type Mongo struct {
	URL             string        `env:"MONGODB_URL,required"`
	Database        string        `env:"MONGODB_DATABASE" envDefault:"issue_reporter"`
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"`
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

// Relay configures the hosted email-relay API used for notification
// dispatch. When the identifiers are left empty the app falls back to a
// log-only sender, so local development needs no relay account.
type Relay struct {
	Endpoint   string        `env:"RELAY_ENDPOINT" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
	ServiceID  string        `env:"RELAY_SERVICE_ID"`
	TemplateID string        `env:"RELAY_TEMPLATE_ID"`
	UserID     string        `env:"RELAY_USER_ID"`
	Timeout    time.Duration `env:"RELAY_TIMEOUT" envDefault:"15s"`
}

// Configured reports whether all relay identifiers are present.
func (r Relay) Configured() bool {
	return r.ServiceID != "" && r.TemplateID != "" && r.UserID != ""
}

func Load() (*Config, error) {
	// Load .env file if it exists (don't error if missing)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	// Relay identifiers are all-or-nothing: a half-configured relay would
	// only surface as delivery failures at submit time.
	r := c.Relay
	if !r.Configured() && (r.ServiceID != "" || r.TemplateID != "" || r.UserID != "") {
		return errors.New("RELAY_SERVICE_ID, RELAY_TEMPLATE_ID and RELAY_USER_ID must be set together")
	}

	if c.RateLimitPerMinute <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
