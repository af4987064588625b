package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"commitart/internal/ledger"
	"commitart/internal/schedule"
)

type historyView struct {
	ID            string `json:"id"`
	RepoName      string `json:"repoName"`
	Text          string `json:"text,omitempty"`
	Status        string `json:"status"`
	Commits       int    `json:"commits"`
	Anchor        string `json:"anchor"`
	Attempts      int    `json:"attempts"`
	URL           string `json:"url,omitempty"`
	FailureKind   string `json:"failureKind,omitempty"`
	Message       string `json:"message,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var owner string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent submissions recorded on this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(owner) == "" {
				owner = cfg.Remote.Owner
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			subs, err := store.List(cmd.Context(), owner, limit)
			if err != nil {
				return err
			}

			if asJSON {
				views := make([]historyView, 0, len(subs))
				for _, sub := range subs {
					views = append(views, toHistoryView(sub))
				}
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(subs) == 0 {
				fmt.Fprintln(out, "No submissions recorded")
				return nil
			}
			rows := make([][]string, 0, len(subs))
			for _, sub := range subs {
				rows = append(rows, []string{
					sub.CreatedAt.Local().Format("2006-01-02 15:04"),
					sub.RepoName,
					string(sub.Status),
					strconv.Itoa(sub.Commits),
					strconv.Itoa(sub.Attempts),
					historyDetail(sub),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Created", "Repository", "Status", "Commits", "Tries", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of submissions to show")
	cmd.Flags().StringVar(&owner, "owner", "", "Filter by owner (default remote.owner)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func historyDetail(sub *ledger.Submission) string {
	switch sub.Status {
	case ledger.StatusResolved:
		return sub.URL
	case ledger.StatusPending:
		return "in flight"
	default:
		return sub.Message
	}
}

func toHistoryView(sub *ledger.Submission) historyView {
	return historyView{
		ID:            sub.ID,
		RepoName:      sub.RepoName,
		Text:          sub.Text,
		Status:        string(sub.Status),
		Commits:       sub.Commits,
		Anchor:        sub.Anchor.Format(schedule.DateLayout),
		Attempts:      sub.Attempts,
		URL:           sub.URL,
		FailureKind:   string(sub.FailureKind),
		Message:       sub.Message,
		CorrelationID: sub.CorrelationID,
		CreatedAt:     sub.CreatedAt.UTC().Format(time.RFC3339),
	}
}
