package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"commitart/internal/logging"
	"commitart/internal/services"
)

type generateView struct {
	SubmissionID string `json:"submissionId"`
	RepoName     string `json:"repoName"`
	URL          string `json:"url"`
	Entries      int    `json:"entries"`
	Commits      int    `json:"commits"`
	Attempts     int    `json:"attempts"`
	RequestID    string `json:"requestId"`
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var flags planFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "generate [TEXT...]",
		Short: "Submit the pattern and create the contribution repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireCredentials(); err != nil {
				return err
			}

			req, err := flags.request(cfg, args)
			if err != nil {
				return err
			}
			req.Token = cfg.Remote.Token
			req.Owner = cfg.Remote.Owner
			req.Email = cfg.Remote.Email

			lock := flock.New(cfg.SessionLockPath(req.Owner))
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire session lock: %w", err)
			}
			if !ok {
				return services.Wrap(services.ErrConflict, "cli", "generate",
					fmt.Sprintf("another generation for %s is already running", req.Owner), nil)
			}
			defer lock.Unlock()

			logger := ctx.loggerValue()
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			if swept, err := store.ResetInFlight(cmd.Context(), req.Owner); err != nil {
				logger.Warn("sweep interrupted submissions", logging.Error(err))
			} else if swept > 0 {
				logger.Info("interrupted submissions marked cancelled", logging.Int64("count", swept))
			}

			client, err := ctx.newClient(cmd, true)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := client.Generate(runCtx, req)
			if err != nil {
				if services.IsCancelled(err) {
					fmt.Fprintln(cmd.ErrOrStderr(), "Generation cancelled")
				}
				return err
			}

			if asJSON {
				return writeJSON(cmd, generateView{
					SubmissionID: result.SubmissionID,
					RepoName:     result.RepoName,
					URL:          result.URL,
					Entries:      len(result.Schedule),
					Commits:      result.Schedule.TotalCommits(),
					Attempts:     result.Attempts,
					RequestID:    result.RequestID,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Repository: %s\n", result.RepoName)
			fmt.Fprintf(out, "URL:        %s\n", result.URL)
			fmt.Fprintf(out, "Commits:    %d across %d days\n", result.Schedule.TotalCommits(), len(result.Schedule))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
