// Package config loads kintree settings.
//
// Values are resolved in three layers, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file, ~/.config/kintree/config.toml unless another path is given
//  3. environment variables prefixed with KINTREE_
//
// Example file:
//
//	[render]
//	width = 1200
//	height = 900
//	formats = ["svg", "png"]
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//	prefix = "staging:"
//
// Environment variables follow the section and key names:
// KINTREE_RENDER_WIDTH, KINTREE_CACHE_BACKEND, KINTREE_SERVER_ADDR.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "KINTREE"

// Config is the complete kintree configuration.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds default view and output settings.
type RenderConfig struct {
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
	Scale    float64  `toml:"scale"`
	PNGScale float64  `toml:"png_scale" envconfig:"PNG_SCALE"`
	Formats  []string `toml:"formats"`
	Styled   bool     `toml:"styled"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir"`
	RedisURL string        `toml:"redis_url" envconfig:"REDIS_URL"`
	TTL      time.Duration `toml:"ttl"`
	// Prefix scopes every key, so deployments can share one redis.
	Prefix string `toml:"prefix"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr        string        `toml:"addr"`
	ReadTimeout time.Duration `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	MaxBodySize int64         `toml:"max_body_size" envconfig:"MAX_BODY_SIZE"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:    800,
			Height:   800,
			Scale:    1,
			PNGScale: 2,
			Formats:  []string{errors.FormatSVG},
			Styled:   true,
		},
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			Dir:     defaultCacheDir(),
			TTL:     7 * 24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:        ":8080",
			ReadTimeout: 15 * time.Second,
			MaxBodySize: 8 << 20,
		},
	}
}

// DefaultPath returns ~/.config/kintree/config.toml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "kintree", "config.toml")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "kintree-cache")
	}
	return filepath.Join(dir, "kintree")
}

// Load resolves the configuration. An empty path reads [DefaultPath] if it
// exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.mergeFile(path, explicit); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := errors.ValidateSize(c.Render.Width, c.Render.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render")
	}
	if err := errors.ValidateScale(c.Render.Scale); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.scale")
	}
	if err := errors.ValidateScale(c.Render.PNGScale); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.png_scale")
	}
	if err := errors.ValidateFormats(c.Render.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.formats")
	}
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of: file, redis, none (got %q)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Server.MaxBodySize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_size must be positive")
	}
	return nil
}

// Keyer returns the cache keyer for the configured prefix.
func (c *Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.Prefix)
}

// CacheOptions converts the cache section for [cache.Open].
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{Backend: c.Cache.Backend, Dir: c.Cache.Dir, RedisURL: c.Cache.RedisURL}
}
