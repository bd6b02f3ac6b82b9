// Package config loads tipjar's settings from defaults, an optional TOML
// file and the environment, in that order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tipjar/pkg/cache"
	"github.com/matzehuels/tipjar/pkg/integrations"
	"github.com/matzehuels/tipjar/pkg/integrations/github"
	"github.com/matzehuels/tipjar/pkg/integrations/gittip"
	"github.com/matzehuels/tipjar/pkg/integrations/npm"
)

// Config holds application configuration.
type Config struct {
	Addr string `toml:"addr"`

	RegistryURL string `toml:"registry_url"`
	GitHubURL   string `toml:"github_url"`
	GittipURL   string `toml:"gittip_url"`
	GitHubToken string `toml:"github_token"`

	Timeout     Duration `toml:"timeout"`
	Retries     int      `toml:"retries"`
	RetryDelay  Duration `toml:"retry_delay"`
	FanoutLimit int      `toml:"fanout_limit"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the response cache tier.
type CacheConfig struct {
	Backend    string   `toml:"backend"`
	TTL        Duration `toml:"ttl"`
	Dir        string   `toml:"dir"`
	RedisAddr  string   `toml:"redis_addr"`
	RedisPass  string   `toml:"redis_password"`
	RedisDB    int      `toml:"redis_db"`
	MongoURI   string   `toml:"mongo_uri"`
	MongoDB    string   `toml:"mongo_database"`
	Collection string   `toml:"mongo_collection"`
}

// Duration is a time.Duration that reads TOML strings such as "10s".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:        ":8080",
		RegistryURL: npm.DefaultBaseURL,
		GitHubURL:   github.DefaultBaseURL,
		GittipURL:   gittip.DefaultBaseURL,
		Timeout:     Duration{integrations.DefaultTimeout},
		Retries:     2,
		RetryDelay:  Duration{500 * time.Millisecond},
		Cache: CacheConfig{
			Backend: cache.BackendNone,
			TTL:     Duration{24 * time.Hour},
		},
	}
}

// Load builds the configuration. If path is non-empty the TOML file is read
// on top of the defaults; environment variables are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	c.Addr = getEnv("TIPJAR_ADDR", c.Addr)
	c.RegistryURL = getEnv("NPM_REGISTRY_URL", c.RegistryURL)
	c.GitHubURL = getEnv("GITHUB_API_URL", c.GitHubURL)
	c.GittipURL = getEnv("GITTIP_URL", c.GittipURL)
	c.GitHubToken = getEnv("GITHUB_TOKEN", c.GitHubToken)
	c.Cache.Backend = getEnv("TIPJAR_CACHE", c.Cache.Backend)
	c.Cache.RedisAddr = getEnv("REDIS_ADDR", c.Cache.RedisAddr)
	c.Cache.RedisPass = getEnv("REDIS_PASSWORD", c.Cache.RedisPass)
	c.Cache.MongoURI = getEnv("MONGO_URI", c.Cache.MongoURI)

	var err error
	if c.Timeout.Duration, err = getDuration("TIPJAR_TIMEOUT", c.Timeout.Duration); err != nil {
		return err
	}
	if c.Cache.TTL.Duration, err = getDuration("TIPJAR_CACHE_TTL", c.Cache.TTL.Duration); err != nil {
		return err
	}
	if c.FanoutLimit, err = getInt("TIPJAR_FANOUT_LIMIT", c.FanoutLimit); err != nil {
		return err
	}
	return nil
}

// Validate reports configuration errors.
func (c *Config) Validate() error {
	if !slices.Contains(cache.Backends, c.Cache.Backend) {
		return fmt.Errorf("unknown cache backend %q (want one of %v)", c.Cache.Backend, cache.Backends)
	}
	if c.Timeout.Duration <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Retries < 1 {
		return fmt.Errorf("retries must be at least 1, got %d", c.Retries)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("redis cache requires REDIS_ADDR")
	}
	if c.Cache.Backend == cache.BackendMongo && c.Cache.MongoURI == "" {
		return fmt.Errorf("mongo cache requires MONGO_URI")
	}
	return nil
}

// CacheOptions converts the cache section for [cache.Open]. dir is used for
// the file backend when no directory is configured.
func (c *Config) CacheOptions(dir string) cache.Options {
	if c.Cache.Dir != "" {
		dir = c.Cache.Dir
	}
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     dir,
		Redis:   cache.RedisOptions{Addr: c.Cache.RedisAddr, Password: c.Cache.RedisPass, DB: c.Cache.RedisDB},
		Mongo: cache.MongoOptions{
			URI:        c.Cache.MongoURI,
			Database:   c.Cache.MongoDB,
			Collection: c.Cache.Collection,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
