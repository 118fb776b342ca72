package api

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token and the staff profile.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var result LoginResult
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", nil, loginRequest{Email: email, Password: password}, &result)
	return result, err
}

// Logout invalidates the token on the backend. The local session is cleared
// regardless of the outcome, so callers log a failure and move on.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", token, nil, nil, nil)
}
