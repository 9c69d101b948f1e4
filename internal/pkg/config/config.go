package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DevJWTSecret signs tokens when JWT_SECRET is unset. Never use it outside
// local development.
const DevJWTSecret = "pool-maintenance-dev-secret"

type Config struct {
	Port      string `env:"PORT,      default=8000"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	APIPrefix string `env:"API_PREFIX, default=/api"`
	StaticDir string `env:"STATIC_DIR"`

	// CORSOrigins is a comma separated list.
	CORSOrigins string `env:"CORS_ORIGINS, default=*"`
	MaxUploadMB int    `env:"MAX_UPLOAD_MB, default=10"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET"`
	TokenTTL      time.Duration `env:"TOKEN_TTL, default=0s"`
	AdminUsername string        `env:"ADMIN_USERNAME, default=admin"`
	AdminPassword string        `env:"ADMIN_PASSWORD, default=admin123"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URL, required"`
	Database string `env:"DB_NAME,   default=pool_maintenance_db"`
}

// RedisConfig is optional; an empty Addr disables token revocation.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("config: MAX_UPLOAD_MB must be positive, got %d", cfg.MaxUploadMB)
	}
	if cfg.Auth.TokenTTL < 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must not be negative")
	}
	cfg.APIPrefix = "/" + strings.Trim(cfg.APIPrefix, "/")
	return &cfg, nil
}

// UsesDevSecret reports whether tokens are signed with DevJWTSecret.
func (c *Config) UsesDevSecret() bool {
	return c.Auth.JWTSecret == ""
}

// Secret returns the configured JWT secret, falling back to DevJWTSecret.
func (c *Config) Secret() string {
	if c.Auth.JWTSecret == "" {
		return DevJWTSecret
	}
	return c.Auth.JWTSecret
}

// IsDevelopment enables pretty console logging.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Origins splits CORSOrigins into trimmed entries.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// UploadLimit renders MaxUploadMB for echo's BodyLimit middleware.
func (c *Config) UploadLimit() string {
	return fmt.Sprintf("%dM", c.MaxUploadMB)
}
