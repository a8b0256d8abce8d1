package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/internal/server"
)

// serveCommand runs the HTTP render service until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the renderer over HTTP",
		Long: `Start the HTTP render service.

  POST /render?format=svg&width=800&height=800&scale=1&x=0&y=0   (layout JSON body)
  GET  /icon?gender=female&size=16&deceased=true
  GET  /healthz

Artifacts are cached in the configured backend; point several instances at
one redis cache to share renders.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			runner, err := c.newRunner(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.Config{
				MaxBodySize: c.Config.Server.MaxBodySize,
				ReadTimeout: c.Config.Server.ReadTimeout,
				Defaults:    c.renderDefaults(),
			})
			printInfo("Listening on %s", addr)
			printKeyValue("cache", c.Config.Cache.Backend)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
