package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lralston/verdant/internal/session"
	"github.com/lralston/verdant/internal/shop"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := session.NewStore(t.TempDir())
	client, err := New(server.URL, store, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, store
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestBackendErrorMessageIsSurfaced(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]string{"message": "stock exhausted"})
	}))
	_, err := client.Plants(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "stock exhausted" {
		t.Fatalf("expected backend message verbatim, got %q", err.Error())
	}
}

func TestErrorWithoutPayloadGetsGenericMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	_, err := client.Plants(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "request failed: Internal Server Error" {
		t.Fatalf("unexpected generic message %q", err.Error())
	}
}

func TestNotFoundIsClassified(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	_, err := client.Plant(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUnauthorizedClearsSession(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	if err := store.Save(session.Session{UserID: 3, Role: session.RoleCustomer}); err != nil {
		t.Fatal(err)
	}
	_, err := client.CartItems(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if store.IsAuthenticated() {
		t.Fatal("a rejected session must be cleared locally")
	}
}

func TestRequestsCarryRequestID(t *testing.T) {
	var got string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
		writeJSON(t, w, http.StatusOK, []shop.Plant{})
	}))
	if _, err := client.Plants(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got == "" {
		t.Fatal("expected an X-Request-ID header on every request")
	}
}
