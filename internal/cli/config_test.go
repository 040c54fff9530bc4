package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/matzehuels/asciiforge/pkg/cache"
	"github.com/matzehuels/asciiforge/pkg/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Cache.Backend != cache.BackendFile {
		t.Errorf("backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Render.Format != pipeline.DefaultFormat {
		t.Errorf("format = %q", cfg.Render.Format)
	}
	if cfg.streamDelay() != pipeline.DefaultStreamDelay {
		t.Errorf("streamDelay = %v", cfg.streamDelay())
	}
	if cfg.ttl() != 0 {
		t.Errorf("ttl = %v, want 0", cfg.ttl())
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "none"
ttl = "1h"

[render]
char = "o"
format = "svg"
stream_delay = "10ms"

[server]
addr = ":9000"
metrics = false
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Cache.Backend != cache.BackendNone {
		t.Errorf("backend = %q", cfg.Cache.Backend)
	}
	if cfg.ttl() != time.Hour {
		t.Errorf("ttl = %v", cfg.ttl())
	}
	if cfg.Render.Char != "o" || cfg.Render.Format != "svg" {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.streamDelay() != 10*time.Millisecond {
		t.Errorf("streamDelay = %v", cfg.streamDelay())
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.Metrics {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "[render]\ncolour = \"red\"\n", "unknown keys: render.colour"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", "cache.backend"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n", "redis_addr"},
		{"bad delay", "[render]\nstream_delay = \"soon\"\n", "render.stream_delay"},
		{"bad ttl", "[cache]\nttl = \"-1s\"\n", "cache.ttl"},
		{"bad char", "[render]\nchar = \"ab\"\n", "render.char"},
		{"bad format", "[render]\nformat = \"png\"\n", "INVALID_FORMAT"},
		{"syntax", "[render\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
		})
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	t.Run("no-cache flag", func(t *testing.T) {
		cfg := defaultConfig()
		c, err := cfg.openCache(ctx, true)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := c.(*cache.NullCache); !ok {
			t.Errorf("got %T, want *cache.NullCache", c)
		}
	})

	t.Run("file under XDG cache", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", t.TempDir())
		cfg := defaultConfig()
		c, err := cfg.openCache(ctx, false)
		if err != nil {
			t.Fatal(err)
		}
		defer c.Close()
		fc, ok := c.(*cache.FileCache)
		if !ok {
			t.Fatalf("got %T, want *cache.FileCache", c)
		}
		want, _ := cacheDir()
		if fc.Dir() != want {
			t.Errorf("dir = %q, want %q", fc.Dir(), want)
		}
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := defaultConfig()
		cfg.Cache.Backend = cache.BackendRedis
		cfg.Cache.RedisAddr = mr.Addr()
		c, err := cfg.openCache(ctx, false)
		if err != nil {
			t.Fatal(err)
		}
		defer c.Close()
		if _, ok := c.(*cache.RedisCache); !ok {
			t.Errorf("got %T, want *cache.RedisCache", c)
		}
	})
}
