package courseapi

import (
	"context"
	"fmt"
	"net/http"
)

// GetDashboardStats returns the aggregate summary for the dashboard.
func (c *Client) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var result DashboardStats
	if err := c.do(ctx, "admin.dashboard_stats", http.MethodGet, "/admin/dashboard", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetRecentUsers returns the most recently registered accounts.
func (c *Client) GetRecentUsers(ctx context.Context) ([]User, error) {
	var result []User
	if err := c.do(ctx, "admin.recent_users", http.MethodGet, "/admin/recent-users", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetRecentOrders returns the most recent orders.
func (c *Client) GetRecentOrders(ctx context.Context) ([]Order, error) {
	var result []Order
	if err := c.do(ctx, "admin.recent_orders", http.MethodGet, "/admin/recent-orders", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetCourseStats returns the per-course stat series the dashboard
// charts (enrollment counts per course).
func (c *Client) GetCourseStats(ctx context.Context) ([]StatPoint, error) {
	var result []StatPoint
	if err := c.do(ctx, "admin.course_stats", http.MethodGet, "/admin/course-stats", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetProductStats returns the per-product stat series (sales per
// product).
func (c *Client) GetProductStats(ctx context.Context) ([]StatPoint, error) {
	var result []StatPoint
	if err := c.do(ctx, "admin.product_stats", http.MethodGet, "/admin/product-stats", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// approveOrderResponse wraps the updated order in the server's
// response envelope.
type approveOrderResponse struct {
	Order Order `json:"order"`
}

// ApproveOrder approves a pending order and returns the updated order.
func (c *Client) ApproveOrder(ctx context.Context, id string) (*Order, error) {
	var result approveOrderResponse
	path := fmt.Sprintf("/admin/orders/%s/approve", id)
	if err := c.do(ctx, "admin.approve_order", http.MethodPatch, path, nil, &result); err != nil {
		return nil, err
	}
	return &result.Order, nil
}
