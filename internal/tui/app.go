// internal/tui/app.go
//
// This is the main TUI for the verdant storefront. It uses bubbletea's Elm
// architecture: one App model, messages produced by user input and finished
// network calls, and a View rendered from current state.
//
// Screens are the client-side "routes". Every navigation goes through
// navigate(), which applies the auth/role guard and bumps the fetch
// generation so responses for a screen the user already left are discarded.

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/lralston/verdant/internal/api"
	"github.com/lralston/verdant/internal/config"
	"github.com/lralston/verdant/internal/logbook"
	"github.com/lralston/verdant/internal/session"
)

// screen identifies which page is on screen.
type screen int

const (
	screenHome screen = iota
	screenPlantDetail
	screenCart
	screenOrders
	screenOrderDetail
	screenLogin
	screenSignup
	screenForgotPassword
	screenResetPassword
	screenDashboard
)

// requiresAuth reports whether a screen is gated behind a login.
func (s screen) requiresAuth() bool {
	switch s {
	case screenCart, screenOrders, screenOrderDetail, screenDashboard:
		return true
	}
	return false
}

// requiresAdmin reports whether a screen is admin-only.
func (s screen) requiresAdmin() bool {
	return s == screenDashboard
}

func (s screen) title() string {
	switch s {
	case screenHome:
		return "Plants"
	case screenPlantDetail:
		return "Plant"
	case screenCart:
		return "Your Cart"
	case screenOrders:
		return "Your Orders"
	case screenOrderDetail:
		return "Order"
	case screenLogin:
		return "Log In"
	case screenSignup:
		return "Sign Up"
	case screenForgotPassword:
		return "Forgot Password"
	case screenResetPassword:
		return "Reset Password"
	case screenDashboard:
		return "Admin Dashboard"
	}
	return ""
}

// App is the main application model.
type App struct {
	screen   screen
	client   *api.Client
	sessions *session.Store
	cfg      *config.Config
	book     *logbook.Logbook
	log      *zap.Logger

	width  int
	height int

	// statusMsg is the one-line alert bar at the bottom. Mutation failures
	// land here; page-level fetch failures render inline with a retry hint.
	statusMsg string

	// gen is bumped on every navigation. Responses tagged with an older
	// generation belong to a screen the user already left and are dropped.
	gen int

	home        homeModel
	detail      plantDetailModel
	cart        cartModel
	orders      ordersModel
	orderDetail orderDetailModel
	auth        authModel
	dash        dashModel
}

// NewApp wires the application model.
func NewApp(cfg *config.Config, client *api.Client, book *logbook.Logbook, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		screen:   screenHome,
		client:   client,
		sessions: client.Sessions(),
		cfg:      cfg,
		book:     book,
		log:      logger,
	}
	a.home = newHomeModel(a)
	a.detail = newPlantDetailModel(a)
	a.cart = newCartModel(a)
	a.orders = newOrdersModel(a)
	a.orderDetail = newOrderDetailModel(a)
	a.auth = newAuthModel(a)
	a.dash = newDashModel(a)
	return a
}

// Init starts on the home screen with a catalog fetch.
func (a *App) Init() tea.Cmd {
	return a.home.load(a.gen)
}

// navigate applies the route guard and switches screens. The returned
// command is the target screen's entry fetch, if it has one.
func (a *App) navigate(target screen) tea.Cmd {
	if target.requiresAuth() && !a.sessions.IsAuthenticated() {
		a.statusMsg = "Please log in first"
		target = screenLogin
	} else if target.requiresAdmin() && !a.sessions.IsAdmin() {
		a.statusMsg = "Admins only"
		target = screenHome
	}

	a.screen = target
	a.gen++
	a.log.Debug("navigate", zap.Int("screen", int(target)), zap.Int("gen", a.gen))

	switch target {
	case screenHome:
		return a.home.load(a.gen)
	case screenCart:
		return a.cart.load(a.gen)
	case screenOrders:
		return a.orders.load(a.gen)
	case screenDashboard:
		return a.dash.enter(a.gen)
	case screenLogin, screenSignup, screenForgotPassword, screenResetPassword:
		a.auth.prepare(target)
	}
	return nil
}

// stale reports whether a fetch result belongs to a superseded navigation.
type staleable interface {
	generation() int
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.home.resize(msg.Width, msg.Height)
		a.dash.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if cmd, handled := a.handleGlobalKey(msg); handled {
			return a, cmd
		}

	case logoutDoneMsg:
		a.statusMsg = "Logged out"
		a.book.Record("Logged out")
		return a, a.navigate(screenHome)
	}

	if tagged, ok := msg.(staleable); ok && tagged.generation() != a.gen {
		a.log.Debug("dropping stale response", zap.Int("msgGen", tagged.generation()), zap.Int("gen", a.gen))
		return a, nil
	}

	var cmd tea.Cmd
	switch a.screen {
	case screenHome:
		cmd = a.home.update(msg)
	case screenPlantDetail:
		cmd = a.detail.update(msg)
	case screenCart:
		cmd = a.cart.update(msg)
	case screenOrders:
		cmd = a.orders.update(msg)
	case screenOrderDetail:
		cmd = a.orderDetail.update(msg)
	case screenLogin, screenSignup, screenForgotPassword, screenResetPassword:
		cmd = a.auth.update(msg)
	case screenDashboard:
		cmd = a.dash.update(msg)
	}
	return a, cmd
}

// handleGlobalKey owns keys that work on every screen. Text-entry screens
// opt out so typing is not hijacked.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()

	if key == "ctrl+c" {
		return tea.Quit, true
	}

	// Auth screens and the dashboard's search/modals accept free text.
	if a.typingActive() {
		return nil, false
	}

	switch key {
	case "q":
		if a.screen == screenHome {
			return tea.Quit, true
		}
	case "esc":
		if a.screen != screenHome {
			return a.navigate(screenHome), true
		}
	case "c":
		if a.screen != screenCart {
			return a.navigate(screenCart), true
		}
	case "o":
		if a.screen != screenOrders {
			return a.navigate(screenOrders), true
		}
	case "d":
		if a.screen != screenDashboard {
			return a.navigate(screenDashboard), true
		}
	case "l":
		if a.sessions.IsAuthenticated() {
			return a.logoutCmd(), true
		}
		return a.navigate(screenLogin), true
	}
	return nil, false
}

func (a *App) typingActive() bool {
	switch a.screen {
	case screenLogin, screenSignup, screenForgotPassword, screenResetPassword:
		return true
	case screenDashboard:
		return a.dash.typingActive()
	}
	return false
}

type logoutDoneMsg struct{}

func (a *App) logoutCmd() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		_ = client.Logout(context.Background())
		return logoutDoneMsg{}
	}
}

// View renders the current screen inside the shared frame.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}

	var content string
	switch a.screen {
	case screenHome:
		content = a.home.view()
	case screenPlantDetail:
		content = a.detail.view()
	case screenCart:
		content = a.cart.view()
	case screenOrders:
		content = a.orders.view()
	case screenOrderDetail:
		content = a.orderDetail.view()
	case screenLogin, screenSignup, screenForgotPassword, screenResetPassword:
		content = a.auth.view()
	case screenDashboard:
		content = a.dash.view()
	}

	sections := []string{
		a.renderHeader(),
		panelStyle.Width(maxInt(40, width-2)).Render(content),
	}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, a.renderStatusBar())
	return strings.Join(sections, "\n")
}

func (a *App) renderHeader() string {
	title := headerStyle.Render("❀ VERDANT · " + a.screen.title())
	who := "guest"
	if sess, ok := a.sessions.Load(); ok {
		who = fmt.Sprintf("%s (%s)", sess.Name, strings.ToLower(sess.Role))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", faintStyle.Render(who))
}

func (a *App) renderLogPanel() string {
	lines := a.book.Tail(4)
	if len(lines) == 0 {
		return ""
	}
	head := logTitleStyle.Render("ACTIVITY")
	body := faintStyle.Render(strings.Join(lines, "\n"))
	return panelStyle.Render(head + "\n" + body)
}

func (a *App) renderStatusBar() string {
	hints := a.keyHints()
	bar := faintStyle.Render(hints)
	if a.statusMsg != "" {
		bar = lipgloss.JoinVertical(lipgloss.Left, alertStyle.Render(a.statusMsg), bar)
	}
	return bar
}

func (a *App) keyHints() string {
	switch a.screen {
	case screenHome:
		base := "enter view · a add to cart · c cart · o orders · l log in · q quit"
		if a.sessions.IsAuthenticated() {
			base = "enter view · a add to cart · c cart · o orders · l log out · q quit"
		}
		if a.sessions.IsAdmin() {
			base += " · d dashboard"
		}
		return base
	case screenDashboard:
		return a.dash.keyHints()
	case screenLogin, screenSignup, screenForgotPassword, screenResetPassword:
		return a.auth.keyHints()
	}
	return "esc home · c cart · o orders · q quit"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
