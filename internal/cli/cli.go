package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cdgpath/pkg/buildinfo"
	"github.com/matzehuels/cdgpath/pkg/cache"
	"github.com/matzehuels/cdgpath/pkg/observability"
	"github.com/matzehuels/cdgpath/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "cdgpath"

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
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "cdgpath ranks untested paths through a control dependence graph",
		Long: `cdgpath scores every decision of a control dependence graph by how many
uncovered leaves its preferred outcome reaches, then extracts the paths that
cover the most new code. Feed it coverage from test runs to see what to test
next.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isConfigCommand(cmd) {
				cfg, err := loadConfig(c.configPath)
				if err != nil {
					return err
				}
				c.config = cfg
			}

			runLogger := c.Logger.With("run", uuid.NewString()[:8])
			observability.SetEngineHooks(observability.NewLogHooks(runLogger))
			observability.SetCacheHooks(observability.NewLogHooks(runLogger))
			cmd.SetContext(withLogger(cmd.Context(), runLogger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cdgpath/config.toml)")

	root.AddCommand(c.scoreCommand())
	root.AddCommand(c.pathsCommand())
	root.AddCommand(c.coverCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exhaustCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// isConfigCommand reports whether cmd manages the config file itself and so
// must run even when the file is missing or broken.
func isConfigCommand(cmd *cobra.Command) bool {
	return cmd.HasParent() && cmd.Parent().Name() == "config"
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cached entries are scoped
// by release so a new renderer never serves stale artifacts.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	return pipeline.NewRunner(store, keyer, loggerFromContext(ctx)), nil
}

func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.config.cacheConfig()
	if cfg.Backend == cache.BackendFile && cfg.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			loggerFromContext(ctx).Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		cfg.Dir = dir
	}
	return cache.Open(ctx, cfg)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/cdgpath/).
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

// configDir returns the config directory (~/.config/cdgpath/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
