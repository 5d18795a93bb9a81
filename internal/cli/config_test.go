package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/cdgpath/pkg/cache"
	"github.com/matzehuels/cdgpath/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaultMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("loadConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("loadConfig() error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
paths = 7

[cache]
backend = "redis"

[redis]
addr = "cache:6379"
db = 3
prefix = "ci:"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Paths != 7 {
		t.Errorf("Paths = %d, want 7", cfg.Paths)
	}
	cc := cfg.cacheConfig()
	if cc.Backend != cache.BackendRedis {
		t.Errorf("Backend = %q, want redis", cc.Backend)
	}
	if cc.Redis.Addr != "cache:6379" || cc.Redis.DB != 3 || cc.Redis.Prefix != "ci:" {
		t.Errorf("Redis = %+v", cc.Redis)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "colour = \"red\"\n"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"zero paths", "paths = 0\n"},
		{"malformed", "paths = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.toml", tt.content)
			_, err := loadConfig(path)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("loadConfig() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	created, err := writeDefaultConfig(path)
	if err != nil || !created {
		t.Fatalf("writeDefaultConfig() = %v, %v", created, err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("default config does not load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("default config = %+v, want %+v", cfg, DefaultConfig())
	}

	created, err = writeDefaultConfig(path)
	if err != nil || created {
		t.Errorf("second writeDefaultConfig() = %v, %v, want false, nil", created, err)
	}
}
