package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/asciiforge/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached grid and artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := c.Config.openCache(cmd.Context(), false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				printWarning("Caching is disabled (backend %s)", c.Config.Cache.Backend)
				return nil
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared %s cache", c.Config.Cache.Backend)
			printDetail("%s", c.cacheLocation())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.out, c.cacheLocation())
			return nil
		},
	}
}

// cacheLocation describes the configured cache: a directory for the file
// backend, a redis URL for redis.
func (c *CLI) cacheLocation() string {
	switch c.Config.Cache.Backend {
	case cache.BackendRedis:
		prefix := c.Config.Cache.Prefix
		if prefix == "" {
			prefix = cache.DefaultRedisPrefix
		}
		return fmt.Sprintf("redis://%s/%d (prefix %s)", c.Config.Cache.RedisAddr, c.Config.Cache.RedisDB, prefix)
	case cache.BackendNone:
		return "disabled"
	}
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir
	}
	dir, err := cacheDir()
	if err != nil {
		return "unavailable: " + err.Error()
	}
	return dir
}
