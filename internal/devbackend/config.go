package devbackend

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string        `env:"DEV_BACKEND_PORT,   default=8000"`
	Env           string        `env:"ENV,                default=development"`
	LogLevel      string        `env:"LOG_LEVEL,          default=info"`
	JWTSecret     string        `env:"JWT_SECRET,         default=dev-secret-change-me"`
	TokenTTL      time.Duration `env:"JWT_TTL,            default=1h"`
	RefreshWindow time.Duration `env:"JWT_REFRESH_WINDOW, default=336h"`
	// SeedPassword is the password of every seeded account.
	SeedPassword string `env:"DEV_SEED_PASSWORD, default=horarios123"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("devbackend config: %v", err))
	}
	return cfg
}

func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	return &cfg, nil
}
