package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/asciiforge/pkg/cache"
	pio "github.com/matzehuels/asciiforge/pkg/io"
	"github.com/matzehuels/asciiforge/pkg/pipeline"
	"github.com/matzehuels/asciiforge/pkg/shape"
)

// Config is the optional config.toml. Every field has a working default,
// so a missing file is not an error.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"` // file (default), redis, none
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"`
	TTL           string `toml:"ttl"` // Go duration; empty keeps per-kind lifetimes
}

// RenderConfig holds rendering defaults.
type RenderConfig struct {
	Char        string `toml:"char"`
	Format      string `toml:"format"`
	StreamDelay string `toml:"stream_delay"`
}

// ServerConfig configures `asciiforge serve`.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	Metrics bool   `toml:"metrics"`
}

func defaultConfig() *Config {
	return &Config{
		Cache:  CacheConfig{Backend: cache.BackendFile},
		Render: RenderConfig{Format: pipeline.DefaultFormat},
		Server: ServerConfig{Addr: ":8080", Metrics: true},
	}
}

// loadConfig reads path over the defaults. A missing file yields the
// defaults; unknown keys are rejected.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	backends := []string{cache.BackendFile, cache.BackendRedis, cache.BackendNone}
	if !slices.Contains(backends, c.Cache.Backend) {
		return fmt.Errorf("cache.backend %q must be one of: %s", c.Cache.Backend, strings.Join(backends, ", "))
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr is required for the redis backend")
	}
	if _, err := parseDuration("cache.ttl", c.Cache.TTL); err != nil {
		return err
	}
	if _, err := parseDuration("render.stream_delay", c.Render.StreamDelay); err != nil {
		return err
	}
	if _, err := shape.Char(c.Render.Char); err != nil {
		return fmt.Errorf("render.char: %w", err)
	}
	return pio.ValidateFormat(c.Render.Format)
}

func parseDuration(key, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, s)
	}
	return d, nil
}

// ttl returns the configured cache lifetime, zero when unset.
func (c *Config) ttl() time.Duration {
	d, _ := parseDuration("cache.ttl", c.Cache.TTL)
	return d
}

// streamDelay returns the playback delay between rows.
func (c *Config) streamDelay() time.Duration {
	d, _ := parseDuration("render.stream_delay", c.Render.StreamDelay)
	if d == 0 {
		return pipeline.DefaultStreamDelay
	}
	return d
}

// openCache builds the configured cache. noCache forces the null cache.
func (c *Config) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := cache.Config{
		Backend:       c.Cache.Backend,
		Dir:           c.Cache.Dir,
		RedisAddr:     c.Cache.RedisAddr,
		RedisPassword: c.Cache.RedisPassword,
		RedisDB:       c.Cache.RedisDB,
		Prefix:        c.Cache.Prefix,
	}
	if cfg.Backend == cache.BackendFile && cfg.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		cfg.Dir = dir
	}
	return cache.Open(ctx, cfg)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/asciiforge/).
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

// configPath returns the default config file (~/.config/asciiforge/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
