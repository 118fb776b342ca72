package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListUsers fetches one page of customer accounts. pageNo is zero-based.
func (c *Client) ListUsers(ctx context.Context, token string, pageNo, pageSize int) (UserPage, error) {
	var page UserPage
	err := c.doJSON(ctx, http.MethodGet, "/admin/users", token, pageQuery(pageNo, pageSize), nil, &page)
	return page, err
}

func (c *Client) GetUser(ctx context.Context, userID int) (User, error) {
	var u User
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d", userID), "", nil, nil, &u)
	return u, err
}
