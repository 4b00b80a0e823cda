package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SecretKey signs identity tokens. The service refuses to start without it.
	SecretKey string        `env:"SECRET_KEY, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=0s"`

	StoreDriver     string `env:"STORE_DRIVER,     default=mongo"`
	ActivityWorkers int    `env:"ACTIVITY_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"CONNECTION_STRING, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,          default=todos"`
}

// RedisConfig is optional: an empty Addr disables the idempotency cache.
type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from the given lookuper (envconfig.OsLookuper() in
// production) and validates it.
func Load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMongo, StoreMemory, c.StoreDriver)
	}
	if c.ActivityWorkers <= 0 {
		return fmt.Errorf("ACTIVITY_WORKERS must be positive, got %d", c.ActivityWorkers)
	}
	if c.Redis.Addr != "" && c.Redis.IdempotencyTTL <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL must be positive, got %s", c.Redis.IdempotencyTTL)
	}
	return nil
}
