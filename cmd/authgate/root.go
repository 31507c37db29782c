package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the Authgate CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authgate",
		Short: "Authgate - bearer-token authentication service",
		Long: `Authgate is a minimal username/password authentication service:
register, login, and current-session-user lookup secured by stateless
bearer tokens.`,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
