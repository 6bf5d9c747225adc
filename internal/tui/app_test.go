package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lralston/verdant/internal/api"
	"github.com/lralston/verdant/internal/config"
	"github.com/lralston/verdant/internal/logbook"
	"github.com/lralston/verdant/internal/session"
	"github.com/lralston/verdant/internal/shop"
)

func newTestApp(t *testing.T, handler http.Handler) *App {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	if err := config.InitDir(dir); err != nil {
		t.Fatalf("init config dir: %v", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store := session.NewStore(t.TempDir())
	client, err := api.New(server.URL, store, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	book, err := logbook.Open(filepath.Join(dir, "logs", "activity.log"))
	if err != nil {
		t.Fatalf("open logbook: %v", err)
	}
	t.Cleanup(func() { book.Close() })
	return NewApp(cfg, client, book, nil)
}

func saveSession(t *testing.T, a *App, role string) {
	t.Helper()
	err := a.sessions.Save(session.Session{UserID: 7, Email: "pat@example.com", Name: "Pat", Role: role})
	if err != nil {
		t.Fatalf("save session: %v", err)
	}
}

// adminBackend serves minimal valid responses for the five dashboard fetches.
func adminBackend(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body any
		switch r.URL.Path {
		case "/admin/plants":
			body = []shop.Plant{{ID: 1, Name: "Monstera", Price: 24.50, Stock: 3}}
		case "/admin/orders":
			body = []shop.Order{{OrderID: 11, Status: shop.StatusShipped, TotalAmount: 24.50}}
		case "/admin/users":
			body = []shop.User{{ID: 7, Name: "Pat", Email: "pat@example.com", Role: "ADMIN", Enabled: true}}
		case "/admin/users/customers":
			body = []shop.User{}
		case "/admin/users/stats":
			body = shop.UserStats{TotalUsers: 1, TotalAdmins: 1, ActiveUsers: 1}
		case "/admin/plants/paginated":
			body = shop.PlantPage{Content: []shop.Plant{{ID: 1, Name: "Monstera"}}, TotalPages: 2, TotalElements: 6}
		default:
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("encode %s: %v", r.URL.Path, err)
		}
	})
}

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	a := newTestApp(t, http.NotFoundHandler())

	a.navigate(screenCart)

	if a.screen != screenLogin {
		t.Fatalf("expected login screen, got %v", a.screen)
	}
	if a.statusMsg != "Please log in first" {
		t.Fatalf("unexpected status %q", a.statusMsg)
	}
}

func TestGuardSendsNonAdminHome(t *testing.T) {
	a := newTestApp(t, http.NotFoundHandler())
	saveSession(t, a, session.RoleCustomer)

	a.navigate(screenDashboard)

	if a.screen != screenHome {
		t.Fatalf("expected home screen, got %v", a.screen)
	}
	if a.statusMsg != "Admins only" {
		t.Fatalf("unexpected status %q", a.statusMsg)
	}
}

func TestOpenOrderAppliesGuardWhenSessionGone(t *testing.T) {
	a := newTestApp(t, http.NotFoundHandler())
	a.screen = screenOrders

	a.openOrder(5)

	if a.screen != screenLogin {
		t.Fatalf("expected login screen, got %v", a.screen)
	}
	if a.statusMsg != "Please log in first" {
		t.Fatalf("unexpected status %q", a.statusMsg)
	}
}

func TestAdminDashboardLoads(t *testing.T) {
	a := newTestApp(t, adminBackend(t))
	saveSession(t, a, session.RoleAdmin)

	cmd := a.navigate(screenDashboard)
	if a.screen != screenDashboard {
		t.Fatalf("expected dashboard screen, got %v", a.screen)
	}
	if cmd == nil {
		t.Fatal("expected an entry fetch command")
	}
	a.Update(cmd())

	if a.dash.err != nil {
		t.Fatalf("dashboard load failed: %v", a.dash.err)
	}
	if !strings.Contains(a.dash.view(), "Monstera") {
		t.Fatal("expected loaded plant in dashboard view")
	}
}

func TestDashboardJoinFailureShowsErrorNotPartialData(t *testing.T) {
	a := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/admin/users/stats" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		adminBackend(t).ServeHTTP(w, r)
	}))
	saveSession(t, a, session.RoleAdmin)

	cmd := a.navigate(screenDashboard)
	a.Update(cmd())

	if a.dash.err == nil {
		t.Fatal("expected the join to fail")
	}
	view := a.dash.view()
	if !strings.Contains(view, "Could not load dashboard") {
		t.Fatalf("expected error state, got %q", view)
	}
	if strings.Contains(view, "Monstera") {
		t.Fatal("error state must not leak partial data")
	}
}

func TestPaginationNeverRequestsOutOfRange(t *testing.T) {
	var pages []string
	a := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/admin/plants/paginated" {
			pages = append(pages, r.URL.Query().Get("page"))
		}
		adminBackend(t).ServeHTTP(w, r)
	}))
	saveSession(t, a, session.RoleAdmin)

	cmd := a.navigate(screenDashboard)
	a.Update(cmd())

	// First page of the paginated tab, then walk right past the end and left
	// past the start. TotalPages is 2, so only 0 and 1 are legal.
	a.Update(cmd2msg(t, a.dash.switchTab(tabPaginated)))
	a.Update(cmd2msg(t, a.dash.loadPage(a.dash.pager.Page+1)))
	a.Update(cmd2msg(t, a.dash.loadPage(a.dash.pager.Page+1)))
	a.Update(cmd2msg(t, a.dash.loadPage(a.dash.pager.Page-1)))
	a.Update(cmd2msg(t, a.dash.loadPage(a.dash.pager.Page-1)))

	for _, page := range pages {
		if page != "0" && page != "1" {
			t.Fatalf("out-of-range page request %q (all: %v)", page, pages)
		}
	}
}

func cmd2msg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestStaleResponsesAreDropped(t *testing.T) {
	a := newTestApp(t, adminBackend(t))

	stale := plantsLoadedMsg{gen: a.gen - 1, plants: []shop.Plant{{ID: 9, Name: "Ghost Fern"}}}
	a.Update(stale)

	if strings.Contains(a.home.view(), "Ghost Fern") {
		t.Fatal("stale response reached the home screen")
	}
}

func TestUnauthorizedResponseClearsSessionMidUse(t *testing.T) {
	a := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	saveSession(t, a, session.RoleCustomer)

	cmd := a.navigate(screenOrders)
	a.Update(cmd())

	if a.sessions.IsAuthenticated() {
		t.Fatal("expired backend session should clear the local session")
	}
}
