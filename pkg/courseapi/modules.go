package courseapi

import (
	"context"
	"net/http"
)

// ModuleInput is the create/update payload for a module. Course is the
// parent course's ID.
type ModuleInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Course      string `json:"course" validate:"required"`
}

// ListModules returns every module across all courses.
func (c *Client) ListModules(ctx context.Context) ([]Module, error) {
	var result []Module
	if err := c.do(ctx, "modules.list", http.MethodGet, "/modules", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListModulesByCourse returns the modules belonging to one course.
func (c *Client) ListModulesByCourse(ctx context.Context, courseID string) ([]Module, error) {
	var result []Module
	if err := c.do(ctx, "modules.list_by_course", http.MethodGet, "/modules/course/"+courseID, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetModule returns one module by ID.
func (c *Client) GetModule(ctx context.Context, id string) (*Module, error) {
	var result Module
	if err := c.do(ctx, "modules.get", http.MethodGet, "/modules/"+id, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateModule creates a module and returns the server's copy.
func (c *Client) CreateModule(ctx context.Context, input ModuleInput) (*Module, error) {
	if err := c.validateInput("modules.create", input); err != nil {
		return nil, err
	}
	var result Module
	if err := c.do(ctx, "modules.create", http.MethodPost, "/modules", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateModule patches a module's fields.
func (c *Client) UpdateModule(ctx context.Context, id string, input ModuleInput) (*Module, error) {
	if err := c.validateInput("modules.update", input); err != nil {
		return nil, err
	}
	var result Module
	if err := c.do(ctx, "modules.update", http.MethodPatch, "/modules/"+id, input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteModule deletes a module by ID.
func (c *Client) DeleteModule(ctx context.Context, id string) error {
	return c.do(ctx, "modules.delete", http.MethodDelete, "/modules/"+id, nil, nil)
}

// ToggleModulePublish flips a module's published flag and returns the
// updated module.
func (c *Client) ToggleModulePublish(ctx context.Context, id string) (*Module, error) {
	var result Module
	if err := c.do(ctx, "modules.toggle_publish", http.MethodPatch, "/modules/"+id+"/publish", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
