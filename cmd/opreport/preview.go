package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bgricker/opreport/internal/output"
)

func newPreviewCmd(state *cliState) *cobra.Command {
	var (
		raw   bool
		width int
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the report in the terminal without writing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := state.run(cmd, true)
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), res.Warnings)

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), res.Document)
				return err
			}
			return output.NewPreview(cmd.OutOrStdout(), state.cfg.PreviewStyle, width).Render(res.Document)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the markdown unchanged")
	cmd.Flags().IntVar(&width, "width", 100, "word wrap width")
	return cmd
}
