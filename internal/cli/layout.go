package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stickypack/pkg/pack"
)

// layoutOutput is the --json form of the layout command.
type layoutOutput struct {
	Config  pack.Config       `json:"config"`
	Anchor  pack.Rect         `json:"anchor"`
	Metrics pack.Metrics      `json:"metrics"`
	Specs   []pack.StickySpec `json:"specs"`
	Users   []pack.OnlineUser `json:"onlineUsers"`
}

func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  packFlags
		board  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the stickies a pack would create",
		Long: `Layout computes a pack without creating anything and prints one row per
sticky with its position, color, content and tag.`,
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
			plan, err := rt.orch.Plan(ctx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(layoutOutput{
					Config:  plan.Config,
					Anchor:  plan.Anchor,
					Metrics: plan.Metrics,
					Specs:   plan.Specs,
					Users:   plan.OnlineUsers,
				})
			}

			fmt.Fprintln(out, StyleTitle.Render("Pack layout"))
			printPackStats(out, plan.Config, len(plan.OnlineUsers))
			printDetail(out, "anchor %s · offset %.1f · gap %.1f", formatRect(plan.Anchor), plan.Metrics.Offset, plan.Metrics.Gap)
			if len(plan.Specs) == 0 {
				printWarning(out, "empty layout")
				return nil
			}
			fmt.Fprintln(out, renderSpecs(plan.Specs))
			printNextStep(out, "Create it", "stickypack create")
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&board, "board", "", "board backend used for selection and viewport")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")
	return cmd
}
