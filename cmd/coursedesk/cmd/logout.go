package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coursedesk/coursedesk/internal/guard"
	"github.com/coursedesk/coursedesk/internal/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the saved session",
	Long: `Remove the saved session so subsequent commands require a fresh login.

The token is only discarded locally; the server is not contacted.`,
	Annotations: routeAnnotation(guard.PathLogin),
	RunE:        runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	if sessions.State() != session.StateAuthenticated {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
		return nil
	}
	if err := sessions.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}
