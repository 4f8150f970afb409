package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// CoreURL is the base URL of the registry core API the console fronts.
	CoreURL string `env:"CORE_URL, default=http://localhost:8081"`

	// TokenTTL bounds the lifetime of console session tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`

	// PublicRoute is the single console route reachable without a session.
	PublicRoute string `env:"PUBLIC_ROUTE, default=/projects"`

	// SearchDebounce is the quiet window applied to search-box input before a
	// term is forwarded downstream.
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE, default=300ms"`

	// BannerDismiss is how long a page-level banner stays visible before it
	// closes itself. App-level banners never auto-dismiss.
	BannerDismiss time.Duration `env:"BANNER_DISMISS, default=8s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
