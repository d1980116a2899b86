package courseapi

import (
	"context"
	"net/http"
)

// ProductInput is the create payload for a product.
type ProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	FileURL     string  `json:"fileUrl" validate:"omitempty,url"`
}

// ListProducts returns every product.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var result []Product
	if err := c.do(ctx, "products.list", http.MethodGet, "/products", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetProduct returns one product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var result Product
	if err := c.do(ctx, "products.get", http.MethodGet, "/products/"+id, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateProduct creates a product and returns the server's copy.
// Products are a read-mostly resource: the server exposes no update or
// delete for them.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	if err := c.validateInput("products.create", input); err != nil {
		return nil, err
	}
	var result Product
	if err := c.do(ctx, "products.create", http.MethodPost, "/products", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
