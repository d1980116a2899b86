package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coursedesk/coursedesk/internal/guard"
	"github.com/coursedesk/coursedesk/pkg/courseapi"
)

var (
	registerName     string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new platform account",
	Long: `Register a new account on the platform.

Registration does not log you in, and new accounts are not admins: an
existing admin must grant the role server-side before the account can
use this tool.`,
	Annotations: routeAnnotation(guard.PathRegister),
	RunE:        runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "account password")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	account, err := client.Register(cmd.Context(), courseapi.RegisterInput{
		Name:     registerName,
		Email:    registerEmail,
		Password: registerPassword,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", account.Name, account.Email)
	return nil
}
