package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/errors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
[render]
width = 1200
formats = ["svg", "png"]

[cache]
backend = "none"
ttl = "90m"

[server]
addr = "127.0.0.1:9000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Width != 1200 {
		t.Errorf("Width = %v, want 1200", cfg.Render.Width)
	}
	if cfg.Render.Height != Default().Render.Height {
		t.Errorf("Height = %v, want default kept", cfg.Render.Height)
	}
	if !slices.Equal(cfg.Render.Formats, []string{"svg", "png"}) {
		t.Errorf("Formats = %v", cfg.Render.Formats)
	}
	if cfg.Cache.Backend != "none" || cfg.Cache.TTL != 90*time.Minute {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "[render]\nwidth = 1200\n")
	t.Setenv("KINTREE_RENDER_WIDTH", "640")
	t.Setenv("KINTREE_RENDER_PNG_SCALE", "3")
	t.Setenv("KINTREE_CACHE_BACKEND", "redis")
	t.Setenv("KINTREE_CACHE_REDIS_URL", "redis://cache:6379/1")
	t.Setenv("KINTREE_SERVER_READ_TIMEOUT", "5s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Width != 640 {
		t.Errorf("Width = %v, want env value 640", cfg.Render.Width)
	}
	if cfg.Render.PNGScale != 3 {
		t.Errorf("PNGScale = %v, want 3", cfg.Render.PNGScale)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisURL != "redis://cache:6379/1" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.Addr != Default().Server.Addr {
		t.Errorf("unset env var changed Addr to %q", cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode errors.Code
	}{
		{"syntax", "[render\n", errors.ErrCodeInvalidConfig},
		{"unknown key", "[render]\ncolour = 1\n", errors.ErrCodeInvalidConfig},
		{"bad format", "[render]\nformats = [\"gif\"]\n", errors.ErrCodeInvalidConfig},
		{"bad scale", "[render]\nscale = 0\n", errors.ErrCodeInvalidConfig},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("err = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Width != Default().Render.Width {
		t.Errorf("Width = %v, want default", cfg.Render.Width)
	}
}

func TestCacheOptions(t *testing.T) {
	cfg := Default()
	cfg.Cache.Backend = "redis"
	cfg.Cache.RedisURL = "redis://x:6379"
	opts := cfg.CacheOptions()
	if opts.Backend != "redis" || opts.RedisURL != "redis://x:6379" || opts.Dir != cfg.Cache.Dir {
		t.Errorf("CacheOptions() = %+v", opts)
	}
}

func TestKeyerPrefix(t *testing.T) {
	cfg := Default()
	opts := cache.ArtifactKeyOpts{Format: "svg", Width: 800, Height: 800, Scale: 1}
	plain := cfg.Keyer().ArtifactKey("abc", opts)

	cfg.Cache.Prefix = "staging:"
	if got := cfg.Keyer().ArtifactKey("abc", opts); got != "staging:"+plain {
		t.Errorf("scoped key = %q, want prefix on %q", got, plain)
	}
}
