package courseapi

import (
	"context"
	"net/http"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput is the account registration payload.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the successful login response: an opaque credential
// and the authenticated account.
type LoginResult struct {
	Token string   `json:"token" validate:"required"`
	User  Identity `json:"user" validate:"required"`
}

// Login exchanges credentials for a token. Invalid credentials surface
// as an *APIError matching ErrUnauthorized. The caller decides whether
// the returned role is acceptable; Login itself performs no role check.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if err := c.validateInput("auth.login", creds); err != nil {
		return nil, err
	}
	var result LoginResult
	if err := c.do(ctx, "auth.login", http.MethodPost, "/auth/login", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*Identity, error) {
	if err := c.validateInput("auth.register", input); err != nil {
		return nil, err
	}
	var result Identity
	if err := c.do(ctx, "auth.register", http.MethodPost, "/auth/register", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
