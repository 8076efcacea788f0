package commands

import (
	"context"
	"time"

	"steamtrader/internal/components/telemetry"
	"steamtrader/lib/cache"
	"steamtrader/lib/configutil"
	configlibsql "steamtrader/lib/configutil/libsql"
)

const defaultConfigFile = "steamtrader.json5"

type CacheConfig struct {
	RedisAddr     string `json:"redis_addr"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`
	// BadgerDir keeps the cache on disk when redis is not configured.
	BadgerDir  string `json:"badger_dir"`
	Size       int    `json:"size"`
	TTLSeconds int    `json:"ttl_seconds"`
}

func (c CacheConfig) ttl() time.Duration {
	if c.TTLSeconds <= 0 {
		return time.Hour * 24
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

type Config struct {
	APIKey            string              `json:"api_key" envconfig:"API_KEY"`
	SessionID         string              `json:"session_id" envconfig:"SESSION_ID"`
	APIBaseURL        string              `json:"api_base_url"`
	WebBaseURL        string              `json:"web_base_url"`
	RequestsPerSecond float64             `json:"requests_per_second"`
	TimeoutSeconds    int                 `json:"timeout_seconds"`
	Retries           int                 `json:"retries"`
	Concurrency       int                 `json:"concurrency"`
	Timezone          string              `json:"timezone"`
	Cache             CacheConfig         `json:"cache"`
	Store             configlibsql.Struct `json:"store"`
	Telemetry         telemetry.Config    `json:"telemetry"`
}

func (c Config) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// loadConfig reads the config file, a missing file is only an error when it
// was named explicitly. Variables like STEAMTRADER_API_KEY and
// STEAMTRADER_SESSION_ID, from the environment or a .env file, override it.
func loadConfig(path string, explicit bool) (Config, error) {
	return configutil.Load[Config](configutil.Options{
		Path:        path,
		Search:      !explicit,
		EnvPrefix:   "STEAMTRADER",
		DotenvFiles: []string{".env"},
	})
}

type closer func() error

// openCache picks redis, then badger, then an in-memory cache.
func openCache(ctx context.Context, cfg CacheConfig) (cache.Cache, closer, error) {
	switch {
	case cfg.RedisAddr != "":
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	case cfg.BadgerDir != "":
		c, err := cache.OpenBadgerCache(cfg.BadgerDir)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	}
	size := cfg.Size
	if size <= 0 {
		size = 1024
	}
	return cache.NewMemoryCache(size, cfg.ttl()), func() error { return nil }, nil
}
