package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/lralston/verdant/internal/session"
)

func TestLoginSavesNormalizedSession(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"message": "welcome",
			"userId":  7,
			"email":   "ivy@example.com",
			"name":    "Ivy",
			"role":    "CUSTOMER",
		})
	}))
	resp, err := client.Login(context.Background(), Credentials{Email: "ivy@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success response")
	}
	sess, ok := store.Load()
	if !ok {
		t.Fatal("login must persist a session")
	}
	want := session.Session{UserID: 7, Email: "ivy@example.com", Name: "Ivy", Role: session.RoleCustomer}
	if sess != want {
		t.Fatalf("persisted session = %+v, want %+v", sess, want)
	}
}

func TestFailedLoginPersistsNothing(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"success": false, "message": "bad credentials"})
	}))
	resp, err := client.Login(context.Background(), Credentials{})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Success {
		t.Fatal("expected failure response")
	}
	if store.IsAuthenticated() {
		t.Fatal("failed login must not persist a session")
	}
}

func TestAdminLoginForcesAdminRole(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin-login" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		// Role deliberately absent from the payload.
		writeJSON(t, w, http.StatusOK, map[string]any{"success": true, "userId": 1, "name": "Root"})
	}))
	if _, err := client.AdminLogin(context.Background(), Credentials{}); err != nil {
		t.Fatal(err)
	}
	if !store.IsAdmin() {
		t.Fatal("admin login must persist an ADMIN session")
	}
}

func TestLogoutClearsSessionEvenWhenCallFails(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	if err := store.Save(session.Session{UserID: 5, Role: session.RoleCustomer}); err != nil {
		t.Fatal(err)
	}
	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if store.IsAuthenticated() {
		t.Fatal("local session must be cleared regardless of the network result")
	}
}
