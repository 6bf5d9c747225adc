// internal/api/client.go
//
// HTTP wrapper for the plant shop backend. One Client serves all five
// resource groups (auth, plants, cart, orders, users); each group lives in
// its own file with one method per endpoint. The backend session cookie is
// the only credential; the client never mints tokens of its own.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lralston/verdant/internal/session"
)

const requestTimeout = 15 * time.Second

// Client issues REST calls against a single backend base URL. Every call is
// a single attempt: no retry, no backoff.
type Client struct {
	base     string
	http     *http.Client
	sessions *session.Store
	log      *zap.Logger
}

// New builds a client for the given base URL. The session store is consulted
// for identity-bearing requests and cleared when the backend rejects the
// current session with a 401.
func New(baseURL string, sessions *session.Store, logger *zap.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: build cookie jar: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		base:     strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Jar: jar, Timeout: requestTimeout},
		sessions: sessions,
		log:      logger,
	}, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.base
}

// Sessions exposes the session store the client writes to on login/logout.
func (c *Client) Sessions() *session.Store {
	return c.sessions
}

// ActionResponse is the backend's generic acknowledgement shape for
// mutations that answer with a success flag and a human message.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// do performs one request and decodes the JSON response into out (when out
// is non-nil). Error payloads with a message field are surfaced verbatim.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("api request", zap.String("method", method), zap.String("path", path))
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api transport failure", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{Status: resp.StatusCode, Message: backendMessage(data)}
		if resp.StatusCode == http.StatusUnauthorized {
			// The backend no longer honors this session; drop the local copy
			// so the guard stops treating the user as logged in.
			if c.sessions != nil {
				_ = c.sessions.Clear()
			}
		}
		c.log.Warn("api error response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decode %s response: %w", path, err)
	}
	return nil
}

// backendMessage extracts the message field from a structured error payload,
// or returns "" when the body carries none.
func backendMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
