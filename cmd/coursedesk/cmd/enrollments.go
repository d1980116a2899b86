package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coursedesk/coursedesk/internal/guard"
	"github.com/coursedesk/coursedesk/internal/screen"
	"github.com/coursedesk/coursedesk/pkg/courseapi"
)

var (
	enrollmentsSearch string
	enrollmentsStatus string
)

var enrollmentsCmd = &cobra.Command{
	Use:         "enrollments",
	Short:       "Manage course enrollments",
	Annotations: routeAnnotation(guard.PathEnrollments),
}

var enrollmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List enrollments",
	Long: `List all enrollments. --search narrows the listing by user or
course name without contacting the server again; --status filters by
enrollment status.`,
	RunE: runEnrollmentsList,
}

var enrollmentsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve an enrollment",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnrollmentsApprove,
}

var enrollmentsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject an enrollment",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnrollmentsReject,
}

var enrollmentsStatusCmd = &cobra.Command{
	Use:   "status <id> <PENDING|APPROVED|REJECTED>",
	Short: "Set an enrollment's status",
	Args:  cobra.ExactArgs(2),
	RunE:  runEnrollmentsStatus,
}

var enrollmentsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an enrollment",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnrollmentsDelete,
}

func init() {
	enrollmentsListCmd.Flags().StringVar(&enrollmentsSearch, "search", "", "filter by user or course (client-side)")
	enrollmentsListCmd.Flags().StringVar(&enrollmentsStatus, "status", "", "only enrollments with this status")

	enrollmentsCmd.AddCommand(enrollmentsListCmd, enrollmentsApproveCmd, enrollmentsRejectCmd, enrollmentsStatusCmd, enrollmentsDeleteCmd)
	rootCmd.AddCommand(enrollmentsCmd)
}

// newEnrollmentsScreen builds the enrollments list view. The filter
// matches on the user and course names so either can be searched.
func newEnrollmentsScreen() *screen.Screen[courseapi.Enrollment] {
	return screen.New(
		client.ListEnrollments,
		func(e courseapi.Enrollment) string { return e.ID },
		func(e courseapi.Enrollment) string { return refName(e.User) + " " + refName(e.Course) },
	)
}

func enrollmentsTable(w io.Writer, rows []courseapi.Enrollment) {
	tw := newTable(w, "USER", "COURSE", "STATUS", "ID")
	for _, e := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", refName(e.User), refName(e.Course), e.Status, e.ID)
	}
	tw.Flush()
}

func runEnrollmentsList(cmd *cobra.Command, args []string) error {
	sc := newEnrollmentsScreen()
	if err := sc.Open(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch enrollments: %w", err)
	}
	sc.SetFilter(enrollmentsSearch)

	rows := sc.Visible()
	if enrollmentsStatus != "" {
		kept := rows[:0:0]
		for _, e := range rows {
			if e.Status == enrollmentsStatus {
				kept = append(kept, e)
			}
		}
		rows = kept
	}
	return renderList(cmd, rows, enrollmentsTable)
}

func runEnrollmentsApprove(cmd *cobra.Command, args []string) error {
	return setEnrollmentStatus(cmd, args[0], courseapi.EnrollmentApproved)
}

func runEnrollmentsReject(cmd *cobra.Command, args []string) error {
	return setEnrollmentStatus(cmd, args[0], courseapi.EnrollmentRejected)
}

func runEnrollmentsStatus(cmd *cobra.Command, args []string) error {
	return setEnrollmentStatus(cmd, args[0], args[1])
}

func setEnrollmentStatus(cmd *cobra.Command, id, status string) error {
	enrollment, err := client.UpdateEnrollmentStatus(cmd.Context(), id, status)
	if err != nil {
		return fmt.Errorf("failed to update enrollment: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Enrollment of %s in %q is now %s\n",
		refName(enrollment.User), refName(enrollment.Course), enrollment.Status)
	return nil
}

func runEnrollmentsDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	sc := newEnrollmentsScreen()
	if err := sc.Open(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch enrollments: %w", err)
	}

	label := id
	if row, err := sc.Find(id); err == nil {
		label = fmt.Sprintf("%s in %q", refName(row.User), refName(row.Course))
	}

	confirmed := confirm(cmd, fmt.Sprintf("Delete enrollment of %s?", label))
	if err := sc.Delete(cmd.Context(), id, confirmed, client.DeleteEnrollment); err != nil {
		if errors.Is(err, screen.ErrNotConfirmed) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted enrollment of %s\n", label)
	return renderList(cmd, sc.Visible(), enrollmentsTable)
}
