// Package config defines the top-level configuration for polyterm and
// provides validation helpers.
package config

import (
	"fmt"
	"strings"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by POLYTERM_* environment
// variables.
type Config struct {
	Polymarket PolymarketConfig `toml:"polymarket"`
	Discovery  DiscoveryConfig  `toml:"discovery"`
	Wallet     WalletConfig     `toml:"wallet"`
	Redis      RedisConfig      `toml:"redis"`
	LogLevel   string           `toml:"log_level"`
}

// PolymarketConfig holds Polymarket API endpoints.
type PolymarketConfig struct {
	GammaHost string `toml:"gamma_host"`
	DataHost  string `toml:"data_host"`
}

// DiscoveryConfig holds catalog browsing defaults.
type DiscoveryConfig struct {
	DefaultSort  string  `toml:"default_sort"`
	LiquidityMin float64 `toml:"liquidity_min"`
	DefaultLimit int     `toml:"default_limit"`
}

// WalletConfig identifies the proxy wallet whose holdings and analytics
// are queried.
type WalletConfig struct {
	ProxyAddress string `toml:"proxy_address"`
}

// RedisConfig holds connection parameters for the optional detail cache.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Polymarket: PolymarketConfig{
			GammaHost: "https://gamma-api.polymarket.com",
			DataHost:  "https://data-api.polymarket.com",
		},
		Discovery: DiscoveryConfig{
			DefaultSort:  "volume",
			LiquidityMin: 0,
			DefaultLimit: 20,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 10,
		},
		LogLevel: "info",
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Polymarket.GammaHost == "" {
		return fmt.Errorf("config: polymarket.gamma_host is required")
	}
	if c.Polymarket.DataHost == "" {
		return fmt.Errorf("config: polymarket.data_host is required")
	}
	if c.Discovery.DefaultLimit < 0 {
		return fmt.Errorf("config: discovery.default_limit must be >= 0")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when redis.enabled")
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	return nil
}
