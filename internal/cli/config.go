package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cdgpath/pkg/cache"
	"github.com/matzehuels/cdgpath/pkg/errors"
	"github.com/matzehuels/cdgpath/pkg/pipeline"
)

// Config is the optional config.toml:
//
//	paths = 5
//
//	[cache]
//	backend = "redis"
//
//	[redis]
//	addr = "localhost:6379"
//	db = 2
type Config struct {
	// Paths is the default for --paths.
	Paths int               `toml:"paths"`
	Cache CacheConfig       `toml:"cache"`
	Redis cache.RedisConfig `toml:"redis"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	// Backend is "file", "redis" or "none".
	Backend string `toml:"backend"`
	// Dir overrides the file backend directory.
	Dir string `toml:"dir"`
}

// DefaultConfig is used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Paths: pipeline.DefaultPaths,
		Cache: CacheConfig{Backend: string(cache.BackendFile)},
		Redis: cache.RedisConfig{Addr: "localhost:6379"},
	}
}

// loadConfig reads the config at path. An empty path reads the default
// location, where a missing file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.validate(path)
}

func (c Config) validate(path string) error {
	if c.Paths < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: paths must be at least 1, got %d", path, c.Paths)
	}
	switch cache.Backend(c.Cache.Backend) {
	case cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown cache backend %q", path, c.Cache.Backend)
	}
	return nil
}

func (c Config) cacheConfig() cache.Config {
	return cache.Config{
		Backend: cache.Backend(c.Cache.Backend),
		Dir:     c.Cache.Dir,
		Redis:   c.Redis,
	}
}

// writeDefaultConfig creates a commented config at path unless one exists.
func writeDefaultConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	return true, os.WriteFile(path, []byte(defaultConfigText), 0o644)
}

const defaultConfigText = `# cdgpath configuration

# Number of paths ranked when --paths is not given.
paths = 3

[cache]
# file, redis or none
backend = "file"

[redis]
addr = "localhost:6379"
db = 0
`

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the cdgpath config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolvedConfigPath()
			if err != nil {
				return err
			}
			created, err := writeDefaultConfig(path)
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			if !created {
				printInfo("Config already exists")
			} else {
				printSuccess("Wrote default config")
			}
			printFile(path)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolvedConfigPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	})
	return cmd
}

func (c *CLI) resolvedConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "config.toml"), nil
}
