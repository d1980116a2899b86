package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coursedesk/coursedesk/internal/activity"
	"github.com/coursedesk/coursedesk/internal/guard"
)

var activityLimit int

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent local API activity",
	Long: `Show the most recent API operations this tool performed, newest
first. The log is local to this machine and pruned after the configured
retention window.`,
	Annotations: routeAnnotation(guard.PathSettings),
	RunE:        runActivity,
}

func init() {
	activityCmd.Flags().IntVar(&activityLimit, "limit", 50, "maximum entries to show")
	rootCmd.AddCommand(activityCmd)
}

func activityTable(w io.Writer, rows []activity.Entry) {
	tw := newTable(w, "WHEN", "OP", "METHOD", "PATH", "STATUS", "OUTCOME")
	for _, e := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Op, e.Method, e.Path, e.Status, e.Outcome)
	}
	tw.Flush()
}

func runActivity(cmd *cobra.Command, args []string) error {
	if activityLog == nil {
		return fmt.Errorf("activity log unavailable")
	}

	entries, err := activityLog.Recent(cmd.Context(), activityLimit)
	if err != nil {
		return fmt.Errorf("failed to read activity log: %w", err)
	}
	return renderList(cmd, entries, activityTable)
}
