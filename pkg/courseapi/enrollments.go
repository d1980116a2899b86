package courseapi

import (
	"context"
	"fmt"
	"net/http"
)

// statusUpdate is the body for an enrollment status transition.
type statusUpdate struct {
	Status string `json:"status"`
}

// ListEnrollments returns every enrollment.
func (c *Client) ListEnrollments(ctx context.Context) ([]Enrollment, error) {
	var result []Enrollment
	if err := c.do(ctx, "enrollments.list", http.MethodGet, "/enrollments", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateEnrollmentStatus transitions an enrollment to the given status
// and returns the updated enrollment. Status must be one of
// EnrollmentPending, EnrollmentApproved, or EnrollmentRejected.
func (c *Client) UpdateEnrollmentStatus(ctx context.Context, id, status string) (*Enrollment, error) {
	switch status {
	case EnrollmentPending, EnrollmentApproved, EnrollmentRejected:
	default:
		return nil, fmt.Errorf("enrollments.update_status: unknown status %q", status)
	}
	var result Enrollment
	path := fmt.Sprintf("/enrollments/%s/status", id)
	if err := c.do(ctx, "enrollments.update_status", http.MethodPatch, path, statusUpdate{Status: status}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteEnrollment deletes an enrollment by ID.
func (c *Client) DeleteEnrollment(ctx context.Context, id string) error {
	return c.do(ctx, "enrollments.delete", http.MethodDelete, "/enrollments/"+id, nil, nil)
}
