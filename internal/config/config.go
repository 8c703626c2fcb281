// Package config holds the application configuration, parsed once at startup
// and passed explicitly to the components that need it.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
	Audit    AuditConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	GinMode         string        `env:"GIN_MODE" envDefault:"release"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig configures the PostgreSQL connection pool.
type DatabaseConfig struct {
	DSN              string        `env:"DATABASE_DSN,required"`
	MaxConns         int32         `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	MinConns         int32         `env:"DATABASE_MIN_CONNS" envDefault:"2"`
	MaxConnLifetime  time.Duration `env:"DATABASE_MAX_CONN_LIFETIME" envDefault:"1h"`
	StatementTimeout time.Duration `env:"DATABASE_STATEMENT_TIMEOUT" envDefault:"30s"`
}

// AuthConfig configures token issuing and verification.
type AuthConfig struct {
	JWTSecret string        `env:"AUTH_JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"12h"`
	Issuer    string        `env:"AUTH_ISSUER" envDefault:"almasasuite"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// AuditConfig configures the compressed audit trail.
type AuditConfig struct {
	Enabled bool `env:"AUDIT_ENABLED" envDefault:"true"`

	// CompressThreshold is the changes payload size in bytes above
	// which entries are stored zstd-compressed.
	CompressThreshold int `env:"AUDIT_COMPRESS_THRESHOLD" envDefault:"10240"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
