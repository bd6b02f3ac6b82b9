package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/tipjar/pkg/cache"
)

// clearEnv makes the test independent of the developer's environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "TIPJAR_ADDR", "NPM_REGISTRY_URL", "GITHUB_API_URL", "GITTIP_URL",
		"GITHUB_TOKEN", "TIPJAR_CACHE", "REDIS_ADDR", "REDIS_PASSWORD", "MONGO_URI",
		"TIPJAR_TIMEOUT", "TIPJAR_CACHE_TTL", "TIPJAR_FANOUT_LIMIT",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tipjar.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.RegistryURL != "https://registry.npmjs.org" {
		t.Errorf("RegistryURL = %q", cfg.RegistryURL)
	}
	if cfg.GittipURL != "https://www.gittip.com" {
		t.Errorf("GittipURL = %q", cfg.GittipURL)
	}
	if cfg.Timeout.Duration != 10*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	if cfg.Cache.Backend != cache.BackendNone || cfg.Cache.TTL.Duration != 24*time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.FanoutLimit != 0 {
		t.Errorf("FanoutLimit = %d", cfg.FanoutLimit)
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
addr = "127.0.0.1:9000"
timeout = "3s"
fanout_limit = 8

[cache]
backend = "file"
ttl = "1h"
dir = "/tmp/tipjar"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.Timeout.Duration != 3*time.Second || cfg.FanoutLimit != 8 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Cache.Backend != cache.BackendFile || cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if got := cfg.CacheOptions("/fallback").Dir; got != "/tmp/tipjar" {
		t.Errorf("CacheOptions().Dir = %q", got)
	}
	// Unset fields keep their defaults.
	if cfg.RegistryURL != "https://registry.npmjs.org" {
		t.Errorf("RegistryURL = %q", cfg.RegistryURL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `addr = ":1111"
github_token = "from-file"`)

	t.Setenv("PORT", "3000")
	t.Setenv("GITHUB_TOKEN", "from-env")
	t.Setenv("TIPJAR_TIMEOUT", "2s")
	t.Setenv("TIPJAR_CACHE", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q, want :3000", cfg.Addr)
	}
	if cfg.GitHubToken != "from-env" {
		t.Errorf("GitHubToken = %q", cfg.GitHubToken)
	}
	if cfg.Timeout.Duration != 2*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	opts := cfg.CacheOptions("")
	if opts.Backend != cache.BackendRedis || opts.Redis.Addr != "localhost:6379" {
		t.Errorf("CacheOptions() = %+v", opts)
	}
}

func TestLoad_AddrBeatsPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("TIPJAR_ADDR", "0.0.0.0:4000")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "0.0.0.0:4000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
		want string
	}{
		{name: "unknown backend", env: map[string]string{"TIPJAR_CACHE": "memcached"}, want: "unknown cache backend"},
		{name: "bad timeout", env: map[string]string{"TIPJAR_TIMEOUT": "soon"}, want: "TIPJAR_TIMEOUT"},
		{name: "zero timeout", env: map[string]string{"TIPJAR_TIMEOUT": "0s"}, want: "timeout must be positive"},
		{name: "bad fanout", env: map[string]string{"TIPJAR_FANOUT_LIMIT": "many"}, want: "TIPJAR_FANOUT_LIMIT"},
		{name: "redis without addr", env: map[string]string{"TIPJAR_CACHE": "redis"}, want: "REDIS_ADDR"},
		{name: "mongo without uri", env: map[string]string{"TIPJAR_CACHE": "mongo"}, want: "MONGO_URI"},
		{name: "bad toml", file: `timeout = `, want: "config"},
		{name: "bad toml duration", file: `timeout = "forever"`, want: "config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeFile(t, tt.file)
			}

			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
