// internal/api/cart.go
//
// Cart endpoints. AddToCart needs the logged-in customer's id in the body,
// so it is the one call that refuses to fire without a local session.

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lralston/verdant/internal/shop"
)

type cartRequest struct {
	CustomerID int64 `json:"customerId"`
	PlantID    int64 `json:"plantId"`
	Quantity   int   `json:"quantity"`
}

// CartItems returns the current customer's cart.
func (c *Client) CartItems(ctx context.Context) ([]shop.CartItem, error) {
	var items []shop.CartItem
	err := c.do(ctx, http.MethodGet, "/cart", nil, nil, &items)
	return items, err
}

// AddToCart puts quantity of a plant into the cart. The customer id comes
// from the persisted session.
func (c *Client) AddToCart(ctx context.Context, plantID int64, quantity int) (ActionResponse, error) {
	sess, ok := c.sessions.Load()
	if !ok {
		return ActionResponse{}, ErrNoSession
	}
	body := cartRequest{CustomerID: sess.UserID, PlantID: plantID, Quantity: quantity}
	var resp ActionResponse
	err := c.do(ctx, http.MethodPost, "/cart/add", nil, body, &resp)
	return resp, err
}

// RemoveFromCart deletes one cart line.
func (c *Client) RemoveFromCart(ctx context.Context, cartItemID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/remove/%d", cartItemID), nil, nil, nil)
}

// Checkout converts the cart through the cart endpoint.
func (c *Client) Checkout(ctx context.Context) (ActionResponse, error) {
	var resp ActionResponse
	err := c.do(ctx, http.MethodPost, "/cart/checkout", nil, nil, &resp)
	return resp, err
}
