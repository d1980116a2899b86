package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coursedesk/coursedesk/internal/guard"
	"github.com/coursedesk/coursedesk/pkg/courseapi"
)

var dashboardCmd = &cobra.Command{
	Use:         "dashboard",
	Short:       "Show the platform summary",
	Annotations: routeAnnotation(guard.PathDashboard),
	RunE:        runDashboard,
}

var dashboardCourseStatsCmd = &cobra.Command{
	Use:   "course-stats",
	Short: "Show per-course enrollment counts",
	RunE:  runDashboardCourseStats,
}

var dashboardProductStatsCmd = &cobra.Command{
	Use:   "product-stats",
	Short: "Show per-product sales",
	RunE:  runDashboardProductStats,
}

func init() {
	dashboardCmd.AddCommand(dashboardCourseStatsCmd, dashboardProductStatsCmd)
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	stats, err := client.GetDashboardStats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch dashboard stats: %w", err)
	}
	if outputFormat != "table" {
		return renderEntity(cmd, stats)
	}

	tw := newTable(cmd.OutOrStdout(), "METRIC", "VALUE")
	fmt.Fprintf(tw, "Users\t%d\n", stats.TotalUsers)
	fmt.Fprintf(tw, "Orders\t%d\n", stats.TotalOrders)
	fmt.Fprintf(tw, "Courses\t%d\n", stats.TotalCourses)
	fmt.Fprintf(tw, "Products\t%d\n", stats.TotalProducts)
	fmt.Fprintf(tw, "Revenue\t%.2f\n", stats.TotalRevenue)
	return tw.Flush()
}

func statPointsTable(w io.Writer, rows []courseapi.StatPoint) {
	tw := newTable(w, "LABEL", "VALUE")
	for _, p := range rows {
		fmt.Fprintf(tw, "%s\t%.0f\n", p.Label, p.Value)
	}
	tw.Flush()
}

func runDashboardCourseStats(cmd *cobra.Command, args []string) error {
	points, err := client.GetCourseStats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch course stats: %w", err)
	}
	return renderList(cmd, points, statPointsTable)
}

func runDashboardProductStats(cmd *cobra.Command, args []string) error {
	points, err := client.GetProductStats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch product stats: %w", err)
	}
	return renderList(cmd, points, statPointsTable)
}
