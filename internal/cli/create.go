package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stickypack/pkg/pack"
)

func (c *CLI) createCommand() *cobra.Command {
	var (
		flags packFlags
		board string
		save  bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pack of sticky notes on the board",
		Long: `Create lays out packs of stickies to the right of the reference item and
creates them on the configured board.

The configuration starts from the last saved settings; a preset file and any
flags given on the command line are applied on top.`,
		Example: `  stickypack create --packs 4 --stickies 3 --colors yellow,cyan
  stickypack create --preset retro.toml --board miro
  stickypack create --ref 0,0,300,300 --content custom --template "#{packIndex}.#{stickyIndex}"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := c.open(ctx, board)
			if err != nil {
				return err
			}
			defer rt.Close()

			req, err := flags.request(ctx, cmd, rt.settings)
			if err != nil {
				return err
			}
			if save {
				if err := rt.settings.Save(ctx, *req.Config); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			prog := newProgress(c.Logger)
			spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Creating %d stickies...", req.Config.Total()))
			spinner.Start()
			res, err := rt.orch.CreatePack(ctx, req)
			if err != nil {
				spinner.StopWithError("Pack creation failed")
				return err
			}
			spinner.Stop()
			prog.done(fmt.Sprintf("Created %d stickies", len(res.Notes)))

			printSuccess(out, "Created %s on %s board", StyleNumber.Render(fmt.Sprint(len(res.Notes))+" stickies"), boardName(board, c.app.Board))
			printPackStats(out, *req.Config, res.OnlineUsers)
			printDetail(out, "anchor %s", formatRect(res.Anchor))
			if save {
				printDetail(out, "configuration saved")
			}
			if len(res.Notes) == 0 {
				printWarning(out, "nothing to create: packs or stickies is zero")
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&board, "board", "", "board backend: memory, miro (default from app config)")
	cmd.Flags().BoolVar(&save, "save", false, "save the resulting configuration as the new default")
	_ = cmd.RegisterFlagCompletionFunc("board", fixedCompletion(boardMemory, boardMiro))
	return cmd
}

func boardName(flag, configured string) string {
	if flag != "" {
		return flag
	}
	return configured
}

func formatRect(r pack.Rect) string {
	return fmt.Sprintf("%.1f,%.1f %.1fx%.1f", r.X, r.Y, r.Width, r.Height)
}
