package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coursedesk/coursedesk/internal/guard"
	"github.com/coursedesk/coursedesk/pkg/courseapi"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the platform",
	Long: `Log in with an admin account and save the session locally.

The platform has a single admin tier: accounts without the admin role
are rejected here even when their credentials are valid.

Examples:
  # Prompt for the password
  coursedesk login --email admin@example.com

  # Non-interactive
  coursedesk login --email admin@example.com --password "$ADMIN_PASSWORD"`,
	Annotations: routeAnnotation(guard.PathLogin),
	RunE:        runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if loginEmail == "" {
		return fmt.Errorf("--email is required")
	}
	if loginPassword == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		loginPassword = strings.TrimRight(line, "\r\n")
	}

	result, err := client.Login(cmd.Context(), courseapi.Credentials{
		Email:    loginEmail,
		Password: loginPassword,
	})
	if err != nil {
		if errors.Is(err, courseapi.ErrUnauthorized) {
			return fmt.Errorf("invalid email or password")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	// Single authorization tier: a valid non-admin login never
	// populates the session.
	if result.User.Role != courseapi.RoleAdmin {
		return fmt.Errorf("access denied: admin only")
	}

	if err := sessions.Login(result.Token, result.User); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", result.User.Name, result.User.Email)
	return nil
}
