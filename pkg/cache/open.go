package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend       string
	Dir           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Prefix        string
}

// Open builds the cache described by cfg. An empty backend means file
// when Dir is set and none otherwise. Redis connectivity is checked
// before returning.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	backendName := cfg.Backend
	if backendName == "" {
		backendName = BackendNone
		if cfg.Dir != "" {
			backendName = BackendFile
		}
	}

	switch backendName {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache requires a directory")
		}
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis cache requires an address")
		}
		var opts []RedisOption
		if cfg.Prefix != "" {
			opts = append(opts, WithPrefix(cfg.Prefix))
		}
		c := NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, opts...)
		if err := c.Ping(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q (must be one of: none, file, redis)", backendName)
}
