// Package cli implements the tipjar command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tipjar/internal/config"
	"github.com/matzehuels/tipjar/pkg/buildinfo"
	"github.com/matzehuels/tipjar/pkg/cache"
	"github.com/matzehuels/tipjar/pkg/funding"
	"github.com/matzehuels/tipjar/pkg/integrations"
	"github.com/matzehuels/tipjar/pkg/integrations/github"
	"github.com/matzehuels/tipjar/pkg/integrations/gittip"
	"github.com/matzehuels/tipjar/pkg/integrations/npm"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "tipjar"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
	refresh    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Tipjar finds the people behind your dependencies who accept tips",
		Long:         `Tipjar looks up the collaborators of an npm package, its direct dependencies, or a GitHub repository and ranks those with a donation profile.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a TOML config file")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.npmCommand())
	root.AddCommand(c.githubCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Resolver Factory
// =============================================================================

// loadConfig reads the configuration, applying the CLI's cache flags.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.noCache {
		cfg.Cache.Backend = cache.BackendNone
	}
	return cfg, nil
}

// newResolver wires the upstream clients, response cache and memo caches.
// The returned cache must be closed by the caller.
func (c *CLI) newResolver(ctx context.Context, cfg *config.Config) (*funding.Resolver, cache.Cache, error) {
	dir, err := cacheDir()
	if err != nil && cfg.Cache.Backend == cache.BackendFile && cfg.Cache.Dir == "" {
		return nil, nil, fmt.Errorf("get cache dir: %w", err)
	}
	backend, err := cache.Open(ctx, cfg.CacheOptions(dir))
	if err != nil {
		return nil, nil, err
	}
	// Shared backends may hold other applications' keys.
	respCache := cache.Namespaced(backend, appName+":")

	opts := []integrations.Option{
		integrations.WithTimeout(cfg.Timeout.Duration),
		integrations.WithRetry(cfg.Retries, cfg.RetryDelay.Duration),
	}
	ttl := cfg.Cache.TTL.Duration

	resolver := funding.NewResolver(
		npm.NewClient(respCache, ttl, cfg.RegistryURL, opts...),
		github.NewClient(respCache, ttl, cfg.GitHubURL, cfg.GitHubToken, opts...),
		gittip.NewClient(respCache, ttl, cfg.GittipURL, opts...),
		funding.NewCaches(),
		funding.WithLogger(c.Logger),
		funding.WithFanoutLimit(cfg.FanoutLimit),
		funding.WithRefresh(c.refresh),
	)
	return resolver, respCache, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tipjar/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
