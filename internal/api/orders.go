// internal/api/orders.go
//
// Order endpoints, customer and admin. Status changes go through the admin
// endpoint with the new status in the query string; the backend owns every
// transition.

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lralston/verdant/internal/shop"
)

// PlaceOrder converts the current cart into an order.
func (c *Client) PlaceOrder(ctx context.Context) (ActionResponse, error) {
	var resp ActionResponse
	err := c.do(ctx, http.MethodPost, "/orders/place", nil, nil, &resp)
	return resp, err
}

// OrderHistory returns the customer's orders, newest first as the backend
// sorts them.
func (c *Client) OrderHistory(ctx context.Context) ([]shop.Order, error) {
	var orders []shop.Order
	err := c.do(ctx, http.MethodGet, "/orders/history", nil, nil, &orders)
	return orders, err
}

// Order returns one of the customer's orders.
func (c *Client) Order(ctx context.Context, id int64) (shop.Order, error) {
	var order shop.Order
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, nil, &order)
	return order, err
}

// AdminOrders returns every order in the system.
func (c *Client) AdminOrders(ctx context.Context) ([]shop.Order, error) {
	var orders []shop.Order
	err := c.do(ctx, http.MethodGet, "/admin/orders", nil, nil, &orders)
	return orders, err
}

// AdminOrder returns one order with its items. The backend sometimes wraps
// the order in an envelope, sometimes returns it bare; both are accepted.
func (c *Client) AdminOrder(ctx context.Context, id int64) (shop.Order, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/admin/orders/%d", id), nil, nil, &raw); err != nil {
		return shop.Order{}, err
	}
	var envelope struct {
		Order *shop.Order `json:"order"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Order != nil {
		return *envelope.Order, nil
	}
	var order shop.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return shop.Order{}, fmt.Errorf("api: decode admin order: %w", err)
	}
	return order, nil
}

// UpdateOrderStatus asks the backend to move an order to the given status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status shop.Status) (ActionResponse, error) {
	query := url.Values{"status": {string(status)}}
	var resp ActionResponse
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/orders/%d/status", id), query, nil, &resp)
	return resp, err
}
