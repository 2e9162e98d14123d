package httpapi

import (
	"context"

	"github.com/benjamonnguyen/todo"
)

// Register creates an account and adopts the returned token.
func (c *Client) Register(ctx context.Context, req todo.RegisterRequest) (todo.AuthResponse, error) {
	var resp todo.AuthResponse
	if err := c.post(ctx, EndpointRegister, req, &resp); err != nil {
		return todo.AuthResponse{}, err
	}
	c.adopt(resp.AccessToken)
	return resp, nil
}

// Login authenticates and adopts the returned token.
func (c *Client) Login(ctx context.Context, req todo.LoginRequest) (todo.AuthResponse, error) {
	var resp todo.AuthResponse
	if err := c.post(ctx, EndpointLogin, req, &resp); err != nil {
		return todo.AuthResponse{}, err
	}
	c.adopt(resp.AccessToken)
	return resp, nil
}

// adopt applies a token returned by the service. An empty token keeps the
// current one. Decode failures are logged by SetToken.
func (c *Client) adopt(token string) {
	if token == "" {
		c.l.Warn("auth response has no access token")
		return
	}
	_ = c.SetToken(token)
}

// Logout invalidates the session remotely, then drops the token. The token
// is kept if the remote call fails.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, EndpointLogout, nil, nil); err != nil {
		return err
	}
	_ = c.SetToken("")
	return nil
}

func (c *Client) CurrentUser(ctx context.Context) (todo.User, error) {
	var user todo.User
	if err := c.get(ctx, EndpointMe, &user); err != nil {
		return todo.User{}, err
	}
	return user, nil
}
