package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/outreach-console/internal/domain/view"
)

// passwordEnv supplies the password when --password is not given.
const passwordEnv = "CONSOLE_PASSWORD"

func loginCmd(flags *globalFlags) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		Long: `Exchange a username and password for a session token.

The password is read from --password or, when omitted, from the
CONSOLE_PASSWORD environment variable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			if strings.TrimSpace(username) == "" || password == "" {
				return errors.New("username and password are required")
			}

			return run(cmd, flags, func(ctx context.Context, a *app) error {
				outcome := a.session.Login(ctx, username, password)
				if !outcome.OK() {
					if outcome.Err != nil {
						return fmt.Errorf("%s: %w", outcome.Message(), outcome.Err)
					}
					return errors.New(outcome.Message())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", username)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (env "+passwordEnv+")")

	return cmd
}

func logoutCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, func(ctx context.Context, a *app) error {
				a.session.Logout(ctx)
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
				return nil
			})
		},
	}
}

type statusOutput struct {
	State string    `json:"state"`
	View  view.View `json:"view"`
	Since time.Time `json:"since"`
	API   string    `json:"api"`
}

func statusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, func(ctx context.Context, a *app) error {
				snap := a.session.Snapshot()
				out := statusOutput{
					State: snap.State.String(),
					View:  view.Gate(snap),
					Since: snap.Since,
					API:   a.cfg.API.BaseURL,
				}
				return a.output(cmd, out, func(w io.Writer) error {
					fmt.Fprintf(w, "State:   %s\n", out.State)
					fmt.Fprintf(w, "Backend: %s\n", out.API)
					if !a.cfg.Storage.Ephemeral {
						fmt.Fprintf(w, "Token:   %s\n", a.cfg.Storage.TokenFile)
					}
					return nil
				})
			})
		},
	}
}
