package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/asciiforge/internal/server"
	"github.com/matzehuels/asciiforge/pkg/observability/prom"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	metrics bool
	noCache bool
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  POST /v1/shapes            render one shape
  POST /v1/compose           lay out a shape recipe
  POST /v1/recipes/execute   run an operation recipe
  GET  /v1/shapes            list shape kinds
  GET  /v1/decorators        list decorators
  GET  /healthz              health and build info
  GET  /metrics              Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				opts.addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("metrics") {
				opts.metrics = c.Config.Server.Metrics
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", true, "expose Prometheus metrics on /metrics")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srvOpts := []server.Option{server.WithLogger(c.Logger)}
	if opts.metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		prom.New(reg).Install()
		srvOpts = append(srvOpts, server.WithMetrics(reg))
	}

	printInfo("Serving on %s", StyleHighlight.Render(opts.addr))
	return server.New(runner, srvOpts...).ListenAndServe(ctx, opts.addr)
}
