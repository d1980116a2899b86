package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/coursedesk/coursedesk/internal/guard"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long: `Show the logged-in account and, when the token carries an expiry
claim, when it expires. The expiry is informational only: the token is
never validated locally.`,
	Annotations: routeAnnotation(guard.PathSettings),
	RunE:        runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	sess := sessions.Current()
	if sess == nil {
		return fmt.Errorf("not logged in")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:   %s\n", sess.User.Name)
	fmt.Fprintf(out, "Email:  %s\n", sess.User.Email)
	fmt.Fprintf(out, "Role:   %s\n", sess.User.Role)
	fmt.Fprintf(out, "Since:  %s\n", sess.CreatedAt.Local().Format(time.RFC1123))

	if exp, ok := sess.TokenExpiry(); ok {
		status := "valid"
		if time.Now().After(exp) {
			status = "expired"
		}
		fmt.Fprintf(out, "Token:  %s (%s)\n", exp.Local().Format(time.RFC1123), status)
	}
	return nil
}
