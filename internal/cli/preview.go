package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	sperrors "github.com/matzehuels/stickypack/pkg/errors"
	"github.com/matzehuels/stickypack/pkg/preview"
)

func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags  packFlags
		board  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a pack layout to an image",
		Long: `Preview computes a pack and renders it to a file. The format follows the
output extension: .svg is drawn directly, .png and .dot go through Graphviz.`,
		Example: `  stickypack preview -o pack.svg --packs 9 --columns 3
  stickypack preview -o pack.png --shape rectangle`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			format, err := preview.ParseFormat(filepath.Ext(output))
			if err != nil {
				return sperrors.Wrap(sperrors.ErrCodeInvalidInput, err, "--output")
			}

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

			var data []byte
			switch format {
			case preview.FormatSVG:
				data = preview.RenderSVG(plan.Specs, plan.Anchor)
			case preview.FormatDOT:
				data = []byte(preview.ToDOT(plan.Specs))
			default:
				if data, err = preview.RenderDOT(ctx, preview.ToDOT(plan.Specs), format); err != nil {
					return err
				}
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Rendered %d stickies", len(plan.Specs))
			printFile(out, output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&board, "board", "", "board backend used for selection and viewport")
	cmd.Flags().StringVarP(&output, "output", "o", "pack.svg", "output file (.svg, .png, .dot)")
	return cmd
}
