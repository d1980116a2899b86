package courseapi

import (
	"context"
	"net/http"
)

// CategoryInput is the create/update payload for a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// ListCategories returns every category. The server does not paginate.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var result []Category
	if err := c.do(ctx, "categories.list", http.MethodGet, "/categories", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetCategory returns one category by ID.
func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	var result Category
	if err := c.do(ctx, "categories.get", http.MethodGet, "/categories/"+id, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateCategory creates a category and returns the server's copy.
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	if err := c.validateInput("categories.create", input); err != nil {
		return nil, err
	}
	var result Category
	if err := c.do(ctx, "categories.create", http.MethodPost, "/categories", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateCategory replaces a category's fields.
func (c *Client) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*Category, error) {
	if err := c.validateInput("categories.update", input); err != nil {
		return nil, err
	}
	var result Category
	if err := c.do(ctx, "categories.update", http.MethodPut, "/categories/"+id, input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteCategory deletes a category by ID.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, "categories.delete", http.MethodDelete, "/categories/"+id, nil, nil)
}
