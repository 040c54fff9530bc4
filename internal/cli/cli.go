// Package cli implements the asciiforge command-line interface.
//
// # Commands
//
//   - shape: render one shape with optional transforms and decoration
//   - text: render a string in the block font
//   - recipe: run or validate an operation recipe
//   - compose: lay out a shape recipe on a canvas
//   - play: animate a grid row by row
//   - serve: run the HTTP API
//   - list: show registered shapes, decorators and font characters
//   - cache: inspect or clear the render cache
//
// All commands accept --verbose (-v) for debug logging and --config to
// point at a config.toml other than the XDG default.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/asciiforge/pkg/buildinfo"
	"github.com/matzehuels/asciiforge/pkg/cache"
	"github.com/matzehuels/asciiforge/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "asciiforge"

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
	Config *Config

	configFile string
	out        io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output (rendered grids, listings).
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "asciiforge draws shapes, text and recipes as ASCII art",
		Long:         `asciiforge rasterizes shapes and block-font text into character grids, transforms and composes them, and runs declarative recipes that build whole pictures.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/asciiforge/config.toml)")

	// Register all subcommands
	root.AddCommand(c.shapeCommand())
	root.AddCommand(c.textCommand())
	root.AddCommand(c.recipeCommand())
	root.AddCommand(c.composeCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	path := c.configFile
	if path == "" {
		var err error
		if path, err = configPath(); err != nil {
			return nil
		}
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", path, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.Config.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	// Entries are scoped by release so an upgrade never reads grids
	// written by an older encoder.
	runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, buildinfo.Version+":"), c.Logger)
	runner.TTL = c.Config.ttl()
	return runner, nil
}

// localRunner returns an uncached runner for work that skips export,
// such as playback and listings.
func (c *CLI) localRunner() *pipeline.Runner {
	return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger)
}

// =============================================================================
// Output
// =============================================================================

// outputOpts are the flags shared by every rendering command.
type outputOpts struct {
	output  string
	format  string
	noCache bool
	refresh bool
}

func (o *outputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: txt, json, svg (default from config or file extension)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached results")
}

// options resolves pipeline options: --format, then the output file
// extension, then the configured default.
func (c *CLI) options(o *outputOpts) pipeline.Options {
	format := o.format
	if format == "" && o.output != "" {
		if ext := filepath.Ext(o.output); ext != "" {
			format = ext[1:]
		}
	}
	if format == "" {
		format = c.Config.Render.Format
	}
	return pipeline.Options{Format: format, Refresh: o.refresh, Logger: c.Logger}
}

// writeResult writes the artifact to the output file or stdout.
func (c *CLI) writeResult(res *pipeline.Result, o *outputOpts) error {
	if o.output == "" {
		_, err := c.out.Write(res.Artifact)
		return err
	}
	if dir := filepath.Dir(o.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(o.output, res.Artifact, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", o.output, err)
	}
	printSuccess("Rendered %s", res.Kind)
	printStats(res.Stats.Width, res.Stats.Height, res.CacheInfo.GridHit)
	printFile(o.output)
	return nil
}
