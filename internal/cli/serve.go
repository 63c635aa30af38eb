package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stickypack/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		board string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pack API over HTTP",
		Long: `Serve exposes pack creation, layout and settings as a JSON API until
interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := c.open(ctx, board)
			if err != nil {
				return err
			}
			defer rt.Close()

			if addr == "" {
				addr = c.app.Server.Addr
			}
			srv := server.New(server.Options{
				Orchestrator: rt.orch,
				Settings:     rt.settings,
				Tracker:      rt.tracker,
				Logger:       c.Logger.WithPrefix("http"),
			})
			printInfo(cmd.OutOrStdout(), "Listening on %s", StyleValue.Render(addr))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from app config, :8080)")
	cmd.Flags().StringVar(&board, "board", "", "board backend: memory, miro")
	return cmd
}
