package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Credential backends selectable with CREDENTIAL_BACKEND.
const (
	CredentialFile   = "file"
	CredentialMemory = "memory"
	CredentialRedis  = "redis"
	CredentialMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8090"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend    BackendConfig
	Session    SessionConfig
	Credential CredentialConfig

	Mongo MongoConfig
	Redis RedisConfig
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:8000/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=15s"`
}

type SessionConfig struct {
	RefreshOnUnauthorized bool          `env:"SESSION_REFRESH_ON_401, default=true"`
	RestoreWait           time.Duration `env:"GUARD_RESTORE_WAIT,     default=3s"`
}

type CredentialConfig struct {
	Backend string `env:"CREDENTIAL_BACKEND, default=file"`
	Dir     string `env:"CREDENTIAL_DIR,     default=.console"`
	Key     string `env:"CREDENTIAL_KEY,     default=access_token"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=horarios_console"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`

	// KeyPrefix namespaces the credential key. Empty keeps the bare key.
	KeyPrefix string `env:"REDIS_KEY_PREFIX"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	switch cfg.Credential.Backend {
	case CredentialFile, CredentialMemory, CredentialRedis, CredentialMongo:
	default:
		return nil, fmt.Errorf("CREDENTIAL_BACKEND: unsupported value %q", cfg.Credential.Backend)
	}
	if cfg.Backend.URL == "" {
		return nil, fmt.Errorf("BACKEND_URL must not be empty")
	}
	return &cfg, nil
}
