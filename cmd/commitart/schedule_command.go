package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"commitart/internal/schedule"
)

type scheduleView struct {
	RepoName     string            `json:"repoName"`
	Anchor       string            `json:"anchor"`
	Intensity    int               `json:"intensity"`
	TotalCommits int               `json:"totalCommits"`
	Entries      schedule.Schedule `json:"entries"`
}

func newScheduleCommand(ctx *commandContext) *cobra.Command {
	var flags planFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "schedule [TEXT...]",
		Short: "Print the dated commit schedule without submitting it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			plan, err := flags.plan(cfg, args)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, scheduleView{
					RepoName:     plan.RepoName,
					Anchor:       plan.Anchor.Format(schedule.DateLayout),
					Intensity:    plan.Intensity,
					TotalCommits: plan.Schedule.TotalCommits(),
					Entries:      plan.Schedule,
				})
			}

			rows := make([][]string, 0, len(plan.Schedule))
			for _, entry := range plan.Schedule {
				rows = append(rows, []string{
					entry.Date.Format(schedule.DateLayout),
					entry.Date.Weekday().String()[:3],
					strconv.Itoa(entry.Count),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Date", "Day", "Commits"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
			first, last := plan.Schedule.Span()
			fmt.Fprintf(out, "%s: %d entries, %d commits, %s to %s\n",
				plan.RepoName,
				len(plan.Schedule),
				plan.Schedule.TotalCommits(),
				first.Format(schedule.DateLayout),
				last.Format(schedule.DateLayout),
			)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
