package config

import "time"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port: 8080,
		Store: StoreConfig{
			Driver:      StoreSQLite,
			SQLitePath:  ".storefront/state.db",
			RedisPrefix: "storefront",
			RedisTTL:    30 * 24 * time.Hour,
		},
		Sessions: SessionsConfig{
			MaxCached: 10000,
		},
		Checkout: CheckoutConfig{
			Delay: 2 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
