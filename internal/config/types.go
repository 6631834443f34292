package config

import "time"

// StoreDriver selects where visitor snapshots are kept.
type StoreDriver string

const (
	StoreMemory   StoreDriver = "memory"
	StoreSQLite   StoreDriver = "sqlite"
	StorePostgres StoreDriver = "postgres"
	StoreRedis    StoreDriver = "redis"
)

// Config is the top-level storefront configuration, corresponding to storefront.yml.
type Config struct {
	Port        int            `yaml:"port" koanf:"port"`
	AllowAll    bool           `yaml:"allow_all" koanf:"allow_all"`
	CatalogFile string         `yaml:"catalog_file" koanf:"catalog_file"`
	Store       StoreConfig    `yaml:"store" koanf:"store"`
	Sessions    SessionsConfig `yaml:"sessions" koanf:"sessions"`
	Checkout    CheckoutConfig `yaml:"checkout" koanf:"checkout"`
	Log         LogConfig      `yaml:"log" koanf:"log"`
}

// StoreConfig holds snapshot store settings.
type StoreConfig struct {
	Driver      StoreDriver   `yaml:"driver" koanf:"driver"`
	SQLitePath  string        `yaml:"sqlite_path" koanf:"sqlite_path"`
	PostgresDSN string        `yaml:"postgres_dsn" koanf:"postgres_dsn"`
	RedisURL    string        `yaml:"redis_url" koanf:"redis_url"`
	RedisPrefix string        `yaml:"redis_prefix" koanf:"redis_prefix"`
	RedisTTL    time.Duration `yaml:"redis_ttl" koanf:"redis_ttl"`
}

// SessionsConfig bounds the in-memory visitor cache.
type SessionsConfig struct {
	MaxCached int `yaml:"max_cached" koanf:"max_cached"`
}

// CheckoutConfig holds the simulated order submission settings.
type CheckoutConfig struct {
	Delay time.Duration `yaml:"delay" koanf:"delay"`
}

// LogConfig holds logrus settings.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
