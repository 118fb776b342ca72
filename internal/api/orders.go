package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListOrders fetches one page of orders across all customers. pageNo is
// zero-based.
func (c *Client) ListOrders(ctx context.Context, token string, pageNo, pageSize int) (OrderPage, error) {
	var page OrderPage
	err := c.doJSON(ctx, http.MethodGet, "/admin/orders", token, pageQuery(pageNo, pageSize), nil, &page)
	return page, err
}

// UpdateOrderStatus sets the fulfilment status of one order. The backend
// takes the new value as a query parameter on a bodyless PUT.
func (c *Client) UpdateOrderStatus(ctx context.Context, token string, userID, orderID int, status string) error {
	q := url.Values{}
	q.Set("orderStatus", status)
	path := fmt.Sprintf("/admin/users/%d/orders/%d/orderStatus", userID, orderID)
	return c.doJSON(ctx, http.MethodPut, path, token, q, nil, nil)
}

// UpdatePaymentStatus sets the payment status of one order.
func (c *Client) UpdatePaymentStatus(ctx context.Context, token string, userID, orderID int, status string) error {
	q := url.Values{}
	q.Set("paymentStatus", status)
	path := fmt.Sprintf("/admin/users/%d/orders/%d/paymentStatus", userID, orderID)
	return c.doJSON(ctx, http.MethodPut, path, token, q, nil, nil)
}

// DashboardStats returns the overview card totals.
func (c *Client) DashboardStats(ctx context.Context, token string) (Stats, error) {
	var s Stats
	err := c.doJSON(ctx, http.MethodGet, "/admin/dashboard/stats", token, nil, nil, &s)
	return s, err
}
