package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var flags patternFlags

	cmd := &cobra.Command{
		Use:   "preview [TEXT...]",
		Short: "Render text or a hand-drawn grid as it will appear on the graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "" && !flags.custom() {
				return errors.New("provide TEXT or --grid")
			}
			cfg := ctx.configValue()
			g, err := flags.build(text, cfg.Generation.YearWeeks)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderGrid(g, colorEnabled(out)))
			fmt.Fprintf(out, "\n%d weeks, %d active cells\n", g.Width(), g.Active())
			if weeks := cfg.Generation.YearWeeks; weeks > 0 && g.Width() > weeks {
				fmt.Fprintf(out, "warning: wider than the %d-week graph; generate will reject it\n", weeks)
			}
			if limit := cfg.Generation.MaxTextLength; limit > 0 && len([]rune(text)) > limit {
				fmt.Fprintf(out, "warning: text longer than %d characters; generate will reject it\n", limit)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
