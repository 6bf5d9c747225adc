// internal/api/auth.go
//
// Auth endpoints. Login and AdminLogin are the only calls with a local side
// effect: on success they normalize the response into a session and persist
// it. Logout clears the local session even when the network call fails.

package api

import (
	"context"
	"net/http"

	"github.com/lralston/verdant/internal/session"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the account creation body.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the backend's shape for signup/login/me.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}

// Signup creates a customer account. No session is persisted; the caller is
// expected to log in afterwards.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/signup", nil, req, &resp)
	return resp, err
}

// Login authenticates a customer. On a successful response the normalized
// session is written to the session store.
func (c *Client) Login(ctx context.Context, creds Credentials) (AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, creds, &resp); err != nil {
		return resp, err
	}
	if resp.Success {
		if err := c.saveSession(resp, resp.Role); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

// AdminLogin authenticates against the admin endpoint. The stored session
// role is forced to ADMIN regardless of what the payload carries.
func (c *Client) AdminLogin(ctx context.Context, creds Credentials) (AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/admin-login", nil, creds, &resp); err != nil {
		return resp, err
	}
	if resp.Success {
		if err := c.saveSession(resp, session.RoleAdmin); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

// Logout tells the backend goodbye and clears the local session. The network
// call is best effort; local clearing always proceeds.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/logout", nil, nil, nil); err != nil {
		c.log.Warn("logout call failed; clearing local session anyway")
	}
	return c.sessions.Clear()
}

// Me returns the backend's view of the authenticated identity.
func (c *Client) Me(ctx context.Context) (AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodGet, "/me", nil, nil, &resp)
	return resp, err
}

// ForgotPassword requests a customer reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (ActionResponse, error) {
	var resp ActionResponse
	err := c.do(ctx, http.MethodPost, "/forgot-password", nil, map[string]string{"email": email}, &resp)
	return resp, err
}

// AdminForgotPassword requests an admin reset email.
func (c *Client) AdminForgotPassword(ctx context.Context, email string) (ActionResponse, error) {
	var resp ActionResponse
	err := c.do(ctx, http.MethodPost, "/admin/forgot-password", nil, map[string]string{"email": email}, &resp)
	return resp, err
}

// ResetPassword redeems a customer reset token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (ActionResponse, error) {
	var resp ActionResponse
	body := map[string]string{"token": token, "newPassword": newPassword}
	err := c.do(ctx, http.MethodPost, "/reset-password", nil, body, &resp)
	return resp, err
}

// AdminResetPassword redeems an admin reset token.
func (c *Client) AdminResetPassword(ctx context.Context, token, newPassword string) (ActionResponse, error) {
	var resp ActionResponse
	body := map[string]string{"token": token, "newPassword": newPassword}
	err := c.do(ctx, http.MethodPost, "/admin/reset-password", nil, body, &resp)
	return resp, err
}

func (c *Client) saveSession(resp AuthResponse, role string) error {
	return c.sessions.Save(session.Session{
		UserID: resp.UserID,
		Email:  resp.Email,
		Name:   resp.Name,
		Role:   role,
	})
}
