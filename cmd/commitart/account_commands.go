package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

type statusView struct {
	Owner           string `json:"owner"`
	Credits         int    `json:"credits"`
	AccessRequested bool   `json:"accessRequested"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var owner string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show remaining generation credits",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(owner) == "" {
				owner = cfg.Remote.Owner
			}
			client, err := ctx.newClient(cmd, false)
			if err != nil {
				return err
			}
			st, err := client.Status(cmd.Context(), owner)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, statusView{Owner: owner, Credits: st.Credits, AccessRequested: st.AccessRequested})
			}
			out := cmd.OutOrStdout()
			colorize := colorEnabled(out)
			creditKind := statusOK
			if st.Credits <= 0 {
				creditKind = statusWarn
			}
			fmt.Fprintln(out, renderStatusLine("Owner", statusInfo, owner, colorize))
			fmt.Fprintln(out, renderStatusLine("Credits", creditKind, strconv.Itoa(st.Credits), colorize))
			fmt.Fprintln(out, renderStatusLine("Access requested", statusInfo, yesNo(st.AccessRequested), colorize))
			if st.Credits <= 0 && !st.AccessRequested {
				fmt.Fprintln(out, "\nNo credits remaining. Run `commitart request-access` to ask for more.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Account to query (default remote.owner)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newRequestAccessCommand(ctx *commandContext) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "request-access",
		Short: "Ask for generation credits",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(email) == "" {
				email = cfg.Remote.Email
			}
			client, err := ctx.newClient(cmd, false)
			if err != nil {
				return err
			}
			if err := client.RequestAccess(cmd.Context(), cfg.Remote.Owner, email); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Access requested for %s\n", strings.TrimSpace(email))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Contact address (default remote.email)")
	return cmd
}
