package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coursedesk/coursedesk/internal/guard"
	"github.com/coursedesk/coursedesk/internal/screen"
	"github.com/coursedesk/coursedesk/pkg/courseapi"
)

var ordersSearch string

var ordersCmd = &cobra.Command{
	Use:         "orders",
	Short:       "Review recent orders",
	Annotations: routeAnnotation(guard.PathRecentOrders),
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent orders",
	Long: `List the most recent orders. --search narrows the listing by
buyer name without contacting the server again.`,
	RunE: runOrdersList,
}

var ordersApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersApprove,
}

func init() {
	ordersListCmd.Flags().StringVar(&ordersSearch, "search", "", "filter by buyer (client-side)")

	ordersCmd.AddCommand(ordersListCmd, ordersApproveCmd)
	rootCmd.AddCommand(ordersCmd)
}

func newOrdersScreen() *screen.Screen[courseapi.Order] {
	return screen.New(
		client.GetRecentOrders,
		func(o courseapi.Order) string { return o.ID },
		func(o courseapi.Order) string { return refName(o.User) },
	)
}

func ordersTable(w io.Writer, rows []courseapi.Order) {
	tw := newTable(w, "ORDER", "USER", "ITEMS", "TOTAL", "STATUS", "DATE")
	for _, o := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%s\t%s\n",
			shortID(o.ID), refName(o.User), len(o.Products), o.TotalAmount, o.Status, localDate(o.CreatedAt))
	}
	tw.Flush()
}

func runOrdersList(cmd *cobra.Command, args []string) error {
	sc := newOrdersScreen()
	if err := sc.Open(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch orders: %w", err)
	}
	sc.SetFilter(ordersSearch)
	return renderList(cmd, sc.Visible(), ordersTable)
}

func runOrdersApprove(cmd *cobra.Command, args []string) error {
	order, err := client.ApproveOrder(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to approve order: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Order %s for %s is now %s\n",
		shortID(order.ID), refName(order.User), order.Status)
	return nil
}
