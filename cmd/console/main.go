package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(1)
	}
}

// globalFlags override the environment configuration.
type globalFlags struct {
	apiURL               string
	tokenFile            string
	ephemeral            bool
	logLevel             string
	logDev               bool
	logoutOnUnauthorized bool
	json                 bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "console",
		Short: "Operator console for the outreach backend",
		Long: `Console signs you in to the outreach backend and manages prospects,
campaigns, sender accounts and deployments.

The session token is persisted between runs (CONSOLE_TOKEN_FILE), optionally
encrypted with CONSOLE_TOKEN_PASSPHRASE.`,
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.apiURL, "api-url", "", "Backend base URL (env CONSOLE_API_URL)")
	pf.StringVar(&flags.tokenFile, "token-file", "", "Token file; .json, .yaml or .toml (env CONSOLE_TOKEN_FILE)")
	pf.BoolVar(&flags.ephemeral, "ephemeral", false, "Keep the session in memory only")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (env LOG_LEVEL)")
	pf.BoolVar(&flags.logDev, "log-dev", false, "Human-readable colored logs")
	pf.BoolVar(&flags.logoutOnUnauthorized, "logout-on-unauthorized", false,
		"End the session when the backend rejects the token")
	pf.BoolVar(&flags.json, "json", false, "Print JSON instead of tables")

	rootCmd.AddCommand(
		serveCmd(flags),
		loginCmd(flags),
		logoutCmd(flags),
		statusCmd(flags),
		prospectsCmd(flags),
		campaignsCmd(flags),
		accountsCmd(flags),
		analyticsCmd(flags),
		statsCmd(flags),
		deploymentsCmd(flags),
		coolifyCmd(flags),
	)

	return rootCmd
}
