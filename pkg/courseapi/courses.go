package courseapi

import (
	"context"
	"fmt"
	"net/http"
)

// CourseInput is the create/update payload for a course. Category is
// the referenced category's ID.
type CourseInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	IsFree      bool    `json:"isFree"`
	IsPublished bool    `json:"isPublished"`
	Category    string  `json:"category" validate:"required"`
}

// ListCourses returns every course.
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var result []Course
	if err := c.do(ctx, "courses.list", http.MethodGet, "/courses", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetCourse returns one course by ID.
func (c *Client) GetCourse(ctx context.Context, id string) (*Course, error) {
	var result Course
	if err := c.do(ctx, "courses.get", http.MethodGet, "/courses/"+id, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateCourse creates a course and returns the server's copy.
func (c *Client) CreateCourse(ctx context.Context, input CourseInput) (*Course, error) {
	if err := c.validateInput("courses.create", input); err != nil {
		return nil, err
	}
	var result Course
	if err := c.do(ctx, "courses.create", http.MethodPost, "/courses", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateCourse replaces a course's fields.
func (c *Client) UpdateCourse(ctx context.Context, id string, input CourseInput) (*Course, error) {
	if err := c.validateInput("courses.update", input); err != nil {
		return nil, err
	}
	var result Course
	if err := c.do(ctx, "courses.update", http.MethodPut, "/courses/"+id, input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteCourse deletes a course by ID.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.do(ctx, "courses.delete", http.MethodDelete, "/courses/"+id, nil, nil)
}

// ApproveEnrollment approves a user's enrollment in a course. This is
// the canonical enrollment approval operation; the server exposes it as
// a course-scoped endpoint.
func (c *Client) ApproveEnrollment(ctx context.Context, courseID, userID string) (*Enrollment, error) {
	var result Enrollment
	path := fmt.Sprintf("/courses/%s/approve/%s", courseID, userID)
	if err := c.do(ctx, "courses.approve_enrollment", http.MethodPatch, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
