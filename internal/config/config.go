// Package config loads connector configuration from the environment and
// configuration files via Viper. Only two settings are required: the
// access credential and the base identifier. Both are validated for
// presence only; their meaning belongs to the backing store.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/agentstation/roster/internal/store"
	"github.com/agentstation/roster/pkg/errors"
)

// Configuration keys.
const (
	KeyAPIKey            = "ROSTER_API_KEY"
	KeyBaseID            = "ROSTER_BASE_ID"
	KeyAPIURL            = "ROSTER_API_URL"
	KeyStateful          = "ROSTER_STATEFUL"
	KeyAccountsTable     = "ROSTER_ACCOUNTS_TABLE"
	KeyEntitlementsTable = "ROSTER_ENTITLEMENTS_TABLE"
)

// Config is the connector configuration.
type Config struct {
	// APIKey is the backing store access credential. Required.
	APIKey string

	// BaseID identifies the base holding the directory tables. Required.
	BaseID string

	// APIURL overrides the store API endpoint; empty means the store
	// client's default.
	APIURL string

	// Stateful declares whether the source supports incremental
	// listing. When false, supplied cursors are ignored.
	Stateful bool

	// AccountsTable and EntitlementsTable name the backing tables.
	AccountsTable     string
	EntitlementsTable string
}

// Load reads configuration from Viper, which the CLI has primed with
// environment variables, .env files, and any config file.
func Load() (*Config, error) {
	cfg := &Config{
		APIKey:            getString(KeyAPIKey),
		BaseID:            getString(KeyBaseID),
		APIURL:            getString(KeyAPIURL),
		Stateful:          viper.GetBool(KeyStateful),
		AccountsTable:     getString(KeyAccountsTable),
		EntitlementsTable: getString(KeyEntitlementsTable),
	}

	if cfg.AccountsTable == "" {
		cfg.AccountsTable = store.AccountsTable
	}
	if cfg.EntitlementsTable == "" {
		cfg.EntitlementsTable = store.EntitlementsTable
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present. Presence is the
// only check performed.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.NewConfigError("config", "token must be provided from config", errors.ErrAPIKeyRequired)
	}
	if c.BaseID == "" {
		return errors.NewConfigError("config", "base id needed", nil)
	}
	return nil
}

// getString reads a key from Viper, falling back to the OS environment
// for variables Viper has not seen.
func getString(key string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return os.Getenv(key)
}
