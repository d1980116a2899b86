package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coursedesk/coursedesk/internal/guard"
	"github.com/coursedesk/coursedesk/internal/screen"
	"github.com/coursedesk/coursedesk/pkg/courseapi"
)

var usersSearch string

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List recently registered accounts",
	Long: `List the most recently registered accounts. --search narrows the
listing by name or email without contacting the server again.`,
	Annotations: routeAnnotation(guard.PathUsers),
	RunE:        runUsers,
}

func init() {
	usersCmd.Flags().StringVar(&usersSearch, "search", "", "filter by name or email (client-side)")
	rootCmd.AddCommand(usersCmd)
}

func newUsersScreen() *screen.Screen[courseapi.User] {
	return screen.New(
		client.GetRecentUsers,
		func(u courseapi.User) string { return u.ID },
		func(u courseapi.User) string { return u.Name + " " + u.Email },
	)
}

func usersTable(w io.Writer, rows []courseapi.User) {
	tw := newTable(w, "NAME", "EMAIL", "ROLE", "ENROLLED", "PURCHASED", "JOINED")
	for _, u := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			u.Name, u.Email, u.Role, len(u.EnrolledCourses), len(u.PurchasedProducts), localDate(u.CreatedAt))
	}
	tw.Flush()
}

func runUsers(cmd *cobra.Command, args []string) error {
	sc := newUsersScreen()
	if err := sc.Open(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}
	sc.SetFilter(usersSearch)
	return renderList(cmd, sc.Visible(), usersTable)
}
