// Package config loads and validates the process configuration from
// environment variables. The resulting struct is immutable after Load and is
// passed explicitly into each component's constructor; nothing in the core
// reads ambient environment state.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/walletherald/walletherald/internal/pkg/validator"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable the process needs. Fields are populated once by
// Load and never mutated afterwards.
type Config struct {
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddr         string `envconfig:"HTTP_ADDR" default:":8080"`
	TelemetryEnabled bool   `envconfig:"OTEL_ENABLED"`

	// Redis backing the watch-list cache and guards.
	RedisAddr     string `envconfig:"REDIS_ADDR" validate:"required"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB"`

	// Wallet database and watch-list bulk load.
	WalletDBDSN    string `envconfig:"WALLET_DB_DSN"`
	InitWatchlist  bool   `envconfig:"INIT_WATCHLIST" default:"true"`
	WalletPageSize int    `envconfig:"WALLET_PAGE_SIZE" default:"200" validate:"gt=0"`

	// Webhook lifecycle gates. UpdateAllHooks must be true in addition to the
	// per-chain flag before any provider subscription is touched.
	UpdateAllHooks bool `envconfig:"UPDATE_ALL_HOOKS"`
	UpdateHookETH  bool `envconfig:"UPDATE_HOOK_ETH"`
	UpdateHookBNB  bool `envconfig:"UPDATE_HOOK_BNB"`

	// Webhook provider API.
	AlchemyBaseURL     string `envconfig:"ALCHEMY_BASE_URL"`
	AlchemyToken       string `envconfig:"ALCHEMY_TOKEN"`
	AlchemyCallbackETH string `envconfig:"ALCHEMY_CALLBACK_ETH"`
	AlchemyCallbackBNB string `envconfig:"ALCHEMY_CALLBACK_BNB"`
	WebhookIDETH       string `envconfig:"ALCHEMY_WEBHOOK_ID_ETH"`
	WebhookIDBNB       string `envconfig:"ALCHEMY_WEBHOOK_ID_BNB"`

	// Polling-chain ledger API.
	HorizonURL        string        `envconfig:"HORIZON_URL"`
	LedgerPageSize    int           `envconfig:"LEDGER_PAGE_SIZE" default:"200" validate:"gt=0"`
	PollIdleInterval  time.Duration `envconfig:"POLL_IDLE_INTERVAL" default:"4s"`
	LedgerDelay       time.Duration `envconfig:"LEDGER_DELAY" default:"200ms"`
	RateLimitCooldown time.Duration `envconfig:"RATE_LIMIT_COOLDOWN" default:"5s"`
	DustFloor         float64       `envconfig:"DUST_FLOOR" default:"0.00009"`

	// Push notification provider.
	PushURL string `envconfig:"PUSH_URL"`
	PushKey string `envconfig:"PUSH_KEY"`

	// Parallel lists mapping token contract addresses to display symbols for
	// webhook-chain token transfers. Both lists must have the same length.
	TokenContracts []string `envconfig:"TOKEN_CONTRACTS"`
	TokenSymbols   []string `envconfig:"TOKEN_SYMBOLS"`
}

// Load parses the environment into a Config and validates it. It returns an
// error describing the first problem found; a non-nil error means the process
// must not start.
func Load() (Config, error) {
	// A missing .env file is fine; the environment may be fully populated
	// by the runtime.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	if _, err := cfg.TokenSymbolMap(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// TokenSymbolMap builds the contract-address → symbol map from the parallel
// TokenContracts/TokenSymbols lists. Mismatched list lengths are a
// configuration error.
func (c Config) TokenSymbolMap() (map[string]string, error) {
	if len(c.TokenContracts) != len(c.TokenSymbols) {
		return nil, fmt.Errorf("token contract/symbol lists must have equal length: %d contracts, %d symbols",
			len(c.TokenContracts), len(c.TokenSymbols))
	}

	symbols := make(map[string]string, len(c.TokenContracts))
	for i, contract := range c.TokenContracts {
		symbols[strings.ToLower(strings.TrimSpace(contract))] = strings.TrimSpace(c.TokenSymbols[i])
	}

	return symbols, nil
}
