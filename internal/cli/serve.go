package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/nnetplot/internal/server"
)

// serveCommand runs the HTTP render service until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxBody int64
		noStats bool
		cf      cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve diagram rendering over HTTP",
		Long: `Serve diagram rendering over HTTP.

POST a TOML, YAML or JSON document to /v1/render. Query parameters select
the output (format=svg,png,pdf,json), the visualization (type=diagram or
nodelink) and canvas overrides (scale, margin, background). Health is on
/healthz and Prometheus metrics on /metrics.`,
		Example: `  nnetplot serve --addr :9000
  curl --data-binary @qnet.toml localhost:9000/v1/render?format=png -o qnet.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cf)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := []server.Option{server.WithMaxBodyBytes(maxBody)}
			if !noStats {
				m := server.NewMetrics()
				m.Register()
				opts = append(opts, server.WithMetrics(m))
			}

			newPrinter(cmd.OutOrStdout()).info("Serving on %s", addr)
			return server.New(runner, c.Logger, opts...).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")
	cmd.Flags().BoolVar(&noStats, "no-metrics", false, "disable the /metrics endpoint")
	cf.register(cmd)

	return cmd
}
