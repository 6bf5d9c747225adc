// internal/tui/auth.go
//
// Login, signup and password reset forms. One model serves the four auth
// screens; ctrl+a flips the login and reset flows between the customer and
// admin endpoint variants.

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lralston/verdant/internal/api"
)

type authDoneMsg struct {
	gen   int
	admin bool
	resp  api.AuthResponse
	err   error
}

func (m authDoneMsg) generation() int { return m.gen }

type signupDoneMsg struct {
	gen  int
	resp api.AuthResponse
	err  error
}

func (m signupDoneMsg) generation() int { return m.gen }

type passwordActionMsg struct {
	gen  int
	verb string
	resp api.ActionResponse
	err  error
}

func (m passwordActionMsg) generation() int { return m.gen }

type authModel struct {
	app    *App
	target screen
	admin  bool

	inputs  []textinput.Model
	labels  []string
	focus   int
	busy    bool
	formErr string
	notice  string
}

func newAuthModel(a *App) authModel {
	return authModel{app: a}
}

// prepare resets the form for the screen being entered. The admin flag
// survives navigation between the auth screens so an admin reset flow stays
// on the admin endpoints.
func (m *authModel) prepare(target screen) {
	m.target = target
	m.focus = 0
	m.busy = false
	m.formErr = ""
	m.notice = ""

	switch target {
	case screenLogin:
		m.labels = []string{"Email", "Password"}
	case screenSignup:
		m.labels = []string{"Name", "Email", "Password"}
		m.admin = false
	case screenForgotPassword:
		m.labels = []string{"Email"}
	case screenResetPassword:
		m.labels = []string{"Reset token", "New password"}
	}

	m.inputs = make([]textinput.Model, len(m.labels))
	for i, label := range m.labels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 120
		in.Width = 40
		if strings.Contains(strings.ToLower(label), "password") {
			in.EchoMode = textinput.EchoPassword
		}
		m.inputs[i] = in
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
}

func (m *authModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.formErr = msg.err.Error()
			return nil
		}
		if !msg.resp.Success {
			m.formErr = msg.resp.Message
			if m.formErr == "" {
				m.formErr = "Login failed"
			}
			return nil
		}
		m.app.book.Record("Logged in as %s", msg.resp.Email)
		m.app.statusMsg = ""
		if msg.admin {
			return m.app.navigate(screenDashboard)
		}
		return m.app.navigate(screenHome)

	case signupDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.formErr = msg.err.Error()
			return nil
		}
		if !msg.resp.Success && msg.resp.Message != "" {
			m.formErr = msg.resp.Message
			return nil
		}
		m.app.book.Record("Account created for %s", msg.resp.Email)
		m.app.statusMsg = "Account created, please log in"
		return m.app.navigate(screenLogin)

	case passwordActionMsg:
		m.busy = false
		if msg.err != nil {
			m.formErr = msg.err.Error()
			return nil
		}
		m.notice = msg.resp.Message
		if m.notice == "" {
			m.notice = msg.verb + " request accepted"
		}
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m.app.navigate(screenHome)
		case "tab", "down":
			m.moveFocus(1)
			return nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return nil
		case "enter":
			return m.submit()
		case "ctrl+a":
			if m.target != screenSignup {
				m.admin = !m.admin
			}
			return nil
		case "ctrl+s":
			if m.target == screenLogin {
				return m.app.navigate(screenSignup)
			}
		case "ctrl+f":
			if m.target == screenLogin {
				return m.app.navigate(screenForgotPassword)
			}
		case "ctrl+r":
			if m.target == screenForgotPassword {
				return m.app.navigate(screenResetPassword)
			}
		case "ctrl+l":
			if m.target != screenLogin {
				return m.app.navigate(screenLogin)
			}
		}
	}

	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return cmd
	}
	return nil
}

func (m *authModel) moveFocus(delta int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *authModel) value(i int) string {
	return strings.TrimSpace(m.inputs[i].Value())
}

func (m *authModel) submit() tea.Cmd {
	if m.busy {
		return nil
	}
	for i := range m.inputs {
		if m.value(i) == "" {
			m.formErr = m.labels[i] + " is required"
			return nil
		}
	}
	m.busy = true
	m.formErr = ""
	gen := m.app.gen
	client := m.app.client
	admin := m.admin

	switch m.target {
	case screenLogin:
		creds := api.Credentials{Email: m.value(0), Password: m.value(1)}
		return func() tea.Msg {
			var (
				resp api.AuthResponse
				err  error
			)
			if admin {
				resp, err = client.AdminLogin(context.Background(), creds)
			} else {
				resp, err = client.Login(context.Background(), creds)
			}
			return authDoneMsg{gen: gen, admin: admin, resp: resp, err: err}
		}

	case screenSignup:
		req := api.SignupRequest{Name: m.value(0), Email: m.value(1), Password: m.value(2)}
		return func() tea.Msg {
			resp, err := client.Signup(context.Background(), req)
			return signupDoneMsg{gen: gen, resp: resp, err: err}
		}

	case screenForgotPassword:
		email := m.value(0)
		return func() tea.Msg {
			var (
				resp api.ActionResponse
				err  error
			)
			if admin {
				resp, err = client.AdminForgotPassword(context.Background(), email)
			} else {
				resp, err = client.ForgotPassword(context.Background(), email)
			}
			return passwordActionMsg{gen: gen, verb: "Reset email", resp: resp, err: err}
		}

	case screenResetPassword:
		token, password := m.value(0), m.value(1)
		return func() tea.Msg {
			var (
				resp api.ActionResponse
				err  error
			)
			if admin {
				resp, err = client.AdminResetPassword(context.Background(), token, password)
			} else {
				resp, err = client.ResetPassword(context.Background(), token, password)
			}
			return passwordActionMsg{gen: gen, verb: "Password reset", resp: resp, err: err}
		}
	}
	m.busy = false
	return nil
}

func (m *authModel) view() string {
	var lines []string
	if m.admin && m.target != screenSignup {
		lines = append(lines, badgeLowStyle.Render("ADMIN MODE"))
	}
	for i, in := range m.inputs {
		label := m.labels[i]
		if i == m.focus {
			label = selectedStyle.Render(label)
		}
		lines = append(lines, label, in.View(), "")
	}
	if m.busy {
		lines = append(lines, "Working...")
	}
	if m.formErr != "" {
		lines = append(lines, alertStyle.Render("⚠ "+m.formErr))
	}
	if m.notice != "" {
		lines = append(lines, selectedStyle.Render(m.notice))
	}
	return strings.Join(lines, "\n")
}

func (m *authModel) keyHints() string {
	switch m.target {
	case screenLogin:
		return "enter submit · tab next field · ctrl+a admin mode · ctrl+s sign up · ctrl+f forgot password · esc back"
	case screenSignup:
		return "enter submit · tab next field · ctrl+l log in · esc back"
	case screenForgotPassword:
		return "enter submit · ctrl+a admin mode · ctrl+r enter reset token · esc back"
	case screenResetPassword:
		return "enter submit · ctrl+a admin mode · ctrl+l log in · esc back"
	}
	return ""
}
