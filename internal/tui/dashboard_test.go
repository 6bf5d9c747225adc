package tui

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lralston/verdant/internal/session"
	"github.com/lralston/verdant/internal/shop"
)

func TestUserFilterMatchesNameEmailAndRole(t *testing.T) {
	a := newTestApp(t, http.NotFoundHandler())
	a.dash.users = []shop.User{
		{ID: 1, Name: "Ada Bloom", Email: "ada@leafmail.com", Role: "ADMIN"},
		{ID: 2, Name: "Bea Moss", Email: "bea@leafmail.com", Role: "CUSTOMER"},
	}

	cases := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"ada", 1},
		{"LEAFMAIL", 2},
		{"customer", 1},
		{"fern", 0},
	}
	for _, tc := range cases {
		a.dash.search.SetValue(tc.query)
		a.dash.refilterUsers()
		if len(a.dash.visible) != tc.want {
			t.Fatalf("query %q: expected %d users, got %d", tc.query, tc.want, len(a.dash.visible))
		}
	}
}

func TestPlantFormRejectsBadNumbers(t *testing.T) {
	a := newTestApp(t, http.NotFoundHandler())
	a.dash.openPlantForm(nil)
	a.dash.modal.inputs[0].SetValue("Monstera")
	a.dash.modal.inputs[2].SetValue("not-a-price")
	a.dash.modal.inputs[3].SetValue("4")

	if _, err := a.dash.parsePlantForm(); err == nil {
		t.Fatal("expected a price validation error")
	}

	a.dash.modal.inputs[2].SetValue("24.50")
	a.dash.modal.inputs[3].SetValue("-2")
	if _, err := a.dash.parsePlantForm(); err == nil {
		t.Fatal("expected a stock validation error")
	}

	a.dash.modal.inputs[3].SetValue("4")
	input, err := a.dash.parsePlantForm()
	if err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
	if input.Name != "Monstera" || input.Price != 24.50 || input.Stock != 4 {
		t.Fatalf("unexpected parsed input %+v", input)
	}
}

func TestPlantFormEditPrefillsExistingValues(t *testing.T) {
	a := newTestApp(t, http.NotFoundHandler())
	plant := shop.Plant{ID: 3, Name: "Calathea", Description: "Prayer plant", Price: 18, Stock: 2}
	a.dash.openPlantForm(&plant)

	if a.dash.modal.editID != 3 {
		t.Fatalf("expected edit id 3, got %d", a.dash.modal.editID)
	}
	if got := a.dash.modal.inputs[0].Value(); got != "Calathea" {
		t.Fatalf("expected prefilled name, got %q", got)
	}
}

func TestUserToggleIssuesOneCallThenRefetches(t *testing.T) {
	var mu sync.Mutex
	var toggleCalls []string
	userListCalls := 0
	a := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		if r.URL.Path == "/admin/users" {
			userListCalls++
		}
		mu.Unlock()
		if r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/toggle-status") {
			mu.Lock()
			toggleCalls = append(toggleCalls, r.URL.Path)
			mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"success":true,"message":"toggled"}`)
			return
		}
		adminBackend(t).ServeHTTP(w, r)
	}))
	saveSession(t, a, session.RoleAdmin)

	cmd := a.navigate(screenDashboard)
	a.Update(cmd())
	a.dash.tab = tabUsers

	_, keyCmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if keyCmd == nil {
		t.Fatal("expected the toggle key to produce a command")
	}
	msg := keyCmd()

	mu.Lock()
	toggled := append([]string(nil), toggleCalls...)
	listsBefore := userListCalls
	mu.Unlock()
	if len(toggled) != 1 || toggled[0] != "/admin/users/7/toggle-status" {
		t.Fatalf("expected one toggle call for user 7, got %v", toggled)
	}

	_, refetch := a.Update(msg)
	if refetch == nil {
		t.Fatal("successful toggle must refetch the dashboard")
	}
	a.Update(refetch())

	mu.Lock()
	listsAfter := userListCalls
	mu.Unlock()
	if listsAfter != listsBefore+1 {
		t.Fatalf("expected the user list to be refetched once, got %d then %d", listsBefore, listsAfter)
	}
}

func TestPaginatedTabDeleteTargetsPageSelection(t *testing.T) {
	a := newTestApp(t, adminBackend(t))
	saveSession(t, a, session.RoleAdmin)

	cmd := a.navigate(screenDashboard)
	a.Update(cmd())
	a.Update(cmd2msg(t, a.dash.switchTab(tabPaginated)))

	a.dash.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	if a.dash.modal.kind != modalPlantDelete {
		t.Fatalf("expected the delete confirm modal, got %v", a.dash.modal.kind)
	}
	if a.dash.modal.plant.ID != 1 {
		t.Fatalf("expected the paginated selection, got plant %+v", a.dash.modal.plant)
	}
}

func TestMutationFailureSurfacesStatusAlert(t *testing.T) {
	a := newTestApp(t, http.NotFoundHandler())

	cmd := a.dash.handleMutationDone(mutationDoneMsg{gen: a.gen, verb: "Deleted plant", err: errors.New("plant has open orders")})
	if cmd != nil {
		t.Fatal("failed mutation must not trigger a refetch")
	}
	if a.statusMsg != "plant has open orders" {
		t.Fatalf("unexpected status %q", a.statusMsg)
	}
}

func TestFlippedRole(t *testing.T) {
	if got := flippedRole(session.RoleAdmin); got != session.RoleCustomer {
		t.Fatalf("expected CUSTOMER, got %q", got)
	}
	if got := flippedRole(session.RoleCustomer); got != session.RoleAdmin {
		t.Fatalf("expected ADMIN, got %q", got)
	}
}

func TestCycleStatusWrapsTheLifecycle(t *testing.T) {
	if got := cycleStatus(shop.StatusCancelled, 1); got != shop.StatusPending {
		t.Fatalf("expected wrap to PENDING, got %q", got)
	}
	if got := cycleStatus(shop.StatusPending, -1); got != shop.StatusCancelled {
		t.Fatalf("expected wrap to CANCELLED, got %q", got)
	}
}
