package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies POLYTERM_* environment variable overrides,
// and returns the final Config. A missing file is not an error; the
// defaults plus environment are used. The returned Config has NOT been
// validated; the caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known POLYTERM_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e.
// not empty).
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Polymarket.GammaHost, "POLYTERM_GAMMA_HOST")
	setStr(&cfg.Polymarket.DataHost, "POLYTERM_DATA_HOST")

	setStr(&cfg.Discovery.DefaultSort, "POLYTERM_DEFAULT_SORT")
	setFloat(&cfg.Discovery.LiquidityMin, "POLYTERM_LIQUIDITY_MIN")
	setInt(&cfg.Discovery.DefaultLimit, "POLYTERM_DEFAULT_LIMIT")

	setStr(&cfg.Wallet.ProxyAddress, "POLYTERM_PROXY_ADDRESS")
	setStr(&cfg.Wallet.ProxyAddress, "PROXY_ADDRESS") // compatibility alias

	setBool(&cfg.Redis.Enabled, "POLYTERM_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "POLYTERM_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "POLYTERM_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "POLYTERM_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "POLYTERM_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "POLYTERM_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "POLYTERM_REDIS_TLS_ENABLED")

	setStr(&cfg.LogLevel, "POLYTERM_LOG_LEVEL")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
