package api

import (
	"context"
	"fmt"
	"net/http"
)

type categoryRequest struct {
	CategoryName string `json:"categoryName"`
}

// ListCategories returns the full category collection. The category view is
// the one list the backend does not paginate.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	categories := make([]Category, 0)
	err := c.doJSON(ctx, http.MethodGet, "/categories", "", nil, nil, &categories)
	return categories, err
}

func (c *Client) GetCategory(ctx context.Context, categoryID int) (Category, error) {
	var cat Category
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/categories/%d", categoryID), "", nil, nil, &cat)
	return cat, err
}

func (c *Client) CreateCategory(ctx context.Context, token, name string) (Category, error) {
	var cat Category
	err := c.doJSON(ctx, http.MethodPost, "/admin/categories", token, nil, categoryRequest{CategoryName: name}, &cat)
	return cat, err
}

func (c *Client) UpdateCategory(ctx context.Context, token string, categoryID int, name string) (Category, error) {
	var cat Category
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/categories/%d", categoryID), token, nil, categoryRequest{CategoryName: name}, &cat)
	return cat, err
}

func (c *Client) DeleteCategory(ctx context.Context, token string, categoryID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/categories/%d", categoryID), token, nil, nil, nil)
}
