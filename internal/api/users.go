// internal/api/users.go
//
// Admin user management endpoints.

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lralston/verdant/internal/shop"
)

// Users returns every account.
func (c *Client) Users(ctx context.Context) ([]shop.User, error) {
	var users []shop.User
	err := c.do(ctx, http.MethodGet, "/admin/users", nil, nil, &users)
	return users, err
}

// User returns one account.
func (c *Client) User(ctx context.Context, id int64) (shop.User, error) {
	var user shop.User
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/admin/users/%d", id), nil, nil, &user)
	return user, err
}

// Customers returns accounts with the customer role.
func (c *Client) Customers(ctx context.Context) ([]shop.User, error) {
	var users []shop.User
	err := c.do(ctx, http.MethodGet, "/admin/users/customers", nil, nil, &users)
	return users, err
}

// Admins returns accounts with the admin role.
func (c *Client) Admins(ctx context.Context) ([]shop.User, error) {
	var users []shop.User
	err := c.do(ctx, http.MethodGet, "/admin/users/admins", nil, nil, &users)
	return users, err
}

// UserStats returns the aggregate account counts.
func (c *Client) UserStats(ctx context.Context) (shop.UserStats, error) {
	var stats shop.UserStats
	err := c.do(ctx, http.MethodGet, "/admin/users/stats", nil, nil, &stats)
	return stats, err
}

// SearchUsers filters accounts by email and/or name. Empty parameters are
// omitted from the query.
func (c *Client) SearchUsers(ctx context.Context, email, name string) ([]shop.User, error) {
	query := url.Values{}
	if email != "" {
		query.Set("email", email)
	}
	if name != "" {
		query.Set("name", name)
	}
	var users []shop.User
	err := c.do(ctx, http.MethodGet, "/admin/users/search", query, nil, &users)
	return users, err
}

// ToggleUserStatus flips an account between enabled and disabled.
func (c *Client) ToggleUserStatus(ctx context.Context, id int64) (ActionResponse, error) {
	var resp ActionResponse
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d/toggle-status", id), nil, nil, &resp)
	return resp, err
}

// UpdateUserRole changes an account's role.
func (c *Client) UpdateUserRole(ctx context.Context, id int64, role string) (ActionResponse, error) {
	var resp ActionResponse
	body := map[string]string{"role": role}
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d/role", id), nil, body, &resp)
	return resp, err
}

// DeleteUser removes an account. The backend refuses to delete admins; the
// error payload is surfaced as-is.
func (c *Client) DeleteUser(ctx context.Context, id int64) (ActionResponse, error) {
	var resp ActionResponse
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, nil, &resp)
	return resp, err
}
