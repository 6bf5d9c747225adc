// internal/tui/dashboard_modals.go
//
// Dashboard modals and their mutations. Each modal is independent: it closes
// on confirm, performs exactly one call, and a success refetches every list so
// the tabs never show stale data. Failures surface in the status bar.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lralston/verdant/internal/api"
	"github.com/lralston/verdant/internal/session"
	"github.com/lralston/verdant/internal/shop"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalPlantForm
	modalPlantDelete
	modalUserDelete
	modalRoleChange
	modalOrder
)

type modalState struct {
	kind modalKind

	// plant form
	inputs    []textinput.Model
	focus     int
	editID    int64
	formErr   string

	plant shop.Plant
	user  shop.User

	pendingRole string

	order         shop.Order
	orderLoading  bool
	orderErr      error
	pendingStatus shop.Status
}

// mutationDoneMsg reports the outcome of one dashboard mutation.
type mutationDoneMsg struct {
	gen  int
	verb string
	err  error
}

func (m mutationDoneMsg) generation() int { return m.gen }

// orderFetchedMsg carries the full order for the order detail modal.
type orderFetchedMsg struct {
	gen   int
	order shop.Order
	err   error
}

func (m orderFetchedMsg) generation() int { return m.gen }

var plantFormLabels = []string{"Name", "Description", "Price", "Stock", "Image URL"}

// openPlantForm opens the create form, or the edit form when a plant is given.
func (m *dashModel) openPlantForm(existing *shop.Plant) {
	state := modalState{kind: modalPlantForm}
	state.inputs = make([]textinput.Model, len(plantFormLabels))
	for i, label := range plantFormLabels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 200
		in.Width = 40
		state.inputs[i] = in
	}
	if existing != nil {
		state.editID = existing.ID
		state.inputs[0].SetValue(existing.Name)
		state.inputs[1].SetValue(existing.Description)
		state.inputs[2].SetValue(shop.FormatPrice(existing.Price))
		state.inputs[3].SetValue(strconv.Itoa(existing.Stock))
		state.inputs[4].SetValue(existing.ImageURL)
	}
	state.inputs[0].Focus()
	m.modal = state
}

func (m *dashModel) openOrderModal(id int64) tea.Cmd {
	m.modal = modalState{kind: modalOrder, orderLoading: true}
	gen := m.app.gen
	client := m.app.client
	return func() tea.Msg {
		order, err := client.AdminOrder(context.Background(), id)
		return orderFetchedMsg{gen: gen, order: order, err: err}
	}
}

func (m *dashModel) updateModal(msg tea.KeyMsg) tea.Cmd {
	switch m.modal.kind {
	case modalPlantForm:
		return m.updatePlantForm(msg)
	case modalPlantDelete:
		switch msg.String() {
		case "y", "enter":
			plant := m.modal.plant
			m.modal = modalState{}
			return m.runMutation(fmt.Sprintf("Deleted plant %q", plant.Name), func(ctx context.Context, c *api.Client) error {
				return c.DeletePlant(ctx, plant.ID)
			})
		case "n", "esc":
			m.modal = modalState{}
		}
	case modalUserDelete:
		switch msg.String() {
		case "y", "enter":
			user := m.modal.user
			m.modal = modalState{}
			return m.runMutation(fmt.Sprintf("Deleted user %s", user.Email), func(ctx context.Context, c *api.Client) error {
				return actionErr(c.DeleteUser(ctx, user.ID))
			})
		case "n", "esc":
			m.modal = modalState{}
		}
	case modalRoleChange:
		switch msg.String() {
		case "left", "right":
			m.modal.pendingRole = flippedRole(m.modal.pendingRole)
		case "y", "enter":
			user := m.modal.user
			role := m.modal.pendingRole
			m.modal = modalState{}
			if role == user.Role {
				return nil
			}
			return m.runMutation(fmt.Sprintf("Set %s to %s", user.Email, role), func(ctx context.Context, c *api.Client) error {
				return actionErr(c.UpdateUserRole(ctx, user.ID, role))
			})
		case "n", "esc":
			m.modal = modalState{}
		}
	case modalOrder:
		switch msg.String() {
		case "esc", "q":
			m.modal = modalState{}
		case "left":
			m.modal.pendingStatus = cycleStatus(m.modal.pendingStatus, -1)
		case "right":
			m.modal.pendingStatus = cycleStatus(m.modal.pendingStatus, 1)
		case "enter":
			if m.modal.orderLoading || m.modal.orderErr != nil {
				return nil
			}
			order := m.modal.order
			status := m.modal.pendingStatus
			m.modal = modalState{}
			if status == order.Status {
				return nil
			}
			return m.runMutation(fmt.Sprintf("Order #%d → %s", order.OrderID, status), func(ctx context.Context, c *api.Client) error {
				return actionErr(c.UpdateOrderStatus(ctx, order.OrderID, status))
			})
		}
	}
	return nil
}

func (m *dashModel) updatePlantForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.modal = modalState{}
		return nil
	case "tab", "down":
		m.movePlantFormFocus(1)
		return nil
	case "shift+tab", "up":
		m.movePlantFormFocus(-1)
		return nil
	case "enter":
		return m.submitPlantForm()
	}
	var cmd tea.Cmd
	m.modal.inputs[m.modal.focus], cmd = m.modal.inputs[m.modal.focus].Update(msg)
	return cmd
}

func (m *dashModel) movePlantFormFocus(delta int) {
	n := len(m.modal.inputs)
	m.modal.inputs[m.modal.focus].Blur()
	m.modal.focus = (m.modal.focus + delta + n) % n
	m.modal.inputs[m.modal.focus].Focus()
}

func (m *dashModel) submitPlantForm() tea.Cmd {
	input, err := m.parsePlantForm()
	if err != nil {
		m.modal.formErr = err.Error()
		return nil
	}
	editID := m.modal.editID
	m.modal = modalState{}
	if editID != 0 {
		return m.runMutation(fmt.Sprintf("Updated plant %q", input.Name), func(ctx context.Context, c *api.Client) error {
			_, err := c.UpdatePlant(ctx, editID, input)
			return err
		})
	}
	return m.runMutation(fmt.Sprintf("Added plant %q", input.Name), func(ctx context.Context, c *api.Client) error {
		_, err := c.CreatePlant(ctx, input)
		return err
	})
}

func (m *dashModel) parsePlantForm() (api.PlantInput, error) {
	value := func(i int) string { return strings.TrimSpace(m.modal.inputs[i].Value()) }

	var input api.PlantInput
	input.Name = value(0)
	if input.Name == "" {
		return input, errors.New("name is required")
	}
	input.Description = value(1)

	price, err := strconv.ParseFloat(value(2), 64)
	if err != nil || price < 0 {
		return input, errors.New("price must be a non-negative number")
	}
	input.Price = price

	stock, err := strconv.Atoi(value(3))
	if err != nil || stock < 0 {
		return input, errors.New("stock must be a non-negative integer")
	}
	input.Stock = stock

	input.ImageURL = value(4)
	return input, nil
}

// toggleUser flips an account between enabled and disabled. No confirm
// modal: the toggle is its own undo.
func (m *dashModel) toggleUser(u shop.User) tea.Cmd {
	verb := fmt.Sprintf("Disabled %s", u.Email)
	if !u.Enabled {
		verb = fmt.Sprintf("Enabled %s", u.Email)
	}
	return m.runMutation(verb, func(ctx context.Context, c *api.Client) error {
		return actionErr(c.ToggleUserStatus(ctx, u.ID))
	})
}

// runMutation performs one call and reports back. The refetch happens when
// the result message lands, so the modal is already gone.
func (m *dashModel) runMutation(verb string, call func(context.Context, *api.Client) error) tea.Cmd {
	gen := m.app.gen
	client := m.app.client
	return func() tea.Msg {
		err := call(context.Background(), client)
		return mutationDoneMsg{gen: gen, verb: verb, err: err}
	}
}

func (m *dashModel) handleMutationDone(msg mutationDoneMsg) tea.Cmd {
	if msg.err != nil {
		m.app.statusMsg = msg.err.Error()
		return nil
	}
	m.app.statusMsg = msg.verb
	m.app.book.Record("%s", msg.verb)
	return m.fetchAll(m.app.gen)
}

// actionErr folds a backend refusal into an error.
func actionErr(resp api.ActionResponse, err error) error {
	if err != nil {
		return err
	}
	if !resp.Success && resp.Message != "" {
		return errors.New(resp.Message)
	}
	return nil
}

func flippedRole(role string) string {
	if role == session.RoleAdmin {
		return session.RoleCustomer
	}
	return session.RoleAdmin
}

func cycleStatus(current shop.Status, delta int) shop.Status {
	idx := 0
	for i, s := range shop.AllStatuses {
		if s == current {
			idx = i
			break
		}
	}
	n := len(shop.AllStatuses)
	return shop.AllStatuses[(idx+delta+n)%n]
}

func (m *dashModel) viewModal() string {
	var body string
	switch m.modal.kind {
	case modalPlantForm:
		title := "New Plant"
		if m.modal.editID != 0 {
			title = fmt.Sprintf("Edit Plant #%d", m.modal.editID)
		}
		var lines []string
		lines = append(lines, headerStyle.Render(title), "")
		for i, in := range m.modal.inputs {
			label := plantFormLabels[i]
			if i == m.modal.focus {
				label = selectedStyle.Render(label)
			}
			lines = append(lines, label, in.View())
		}
		if m.modal.formErr != "" {
			lines = append(lines, "", alertStyle.Render("⚠ "+m.modal.formErr))
		}
		body = strings.Join(lines, "\n")

	case modalPlantDelete:
		body = fmt.Sprintf("Delete plant %q?\n\n%s", m.modal.plant.Name,
			faintStyle.Render("y delete · n cancel"))

	case modalUserDelete:
		body = fmt.Sprintf("Delete user %s <%s>?\n\n%s", m.modal.user.Name, m.modal.user.Email,
			faintStyle.Render("y delete · n cancel"))

	case modalRoleChange:
		body = fmt.Sprintf("Change role of %s\n\n  %s → %s\n\n%s",
			m.modal.user.Email, m.modal.user.Role, selectedStyle.Render(m.modal.pendingRole),
			faintStyle.Render("←/→ pick · y apply · n cancel"))

	case modalOrder:
		body = m.viewOrderModal()
	}
	return modalStyle.Render(body)
}

func (m *dashModel) viewOrderModal() string {
	if m.modal.orderLoading {
		return "Loading order..."
	}
	if m.modal.orderErr != nil {
		return alertStyle.Render("⚠ " + m.modal.orderErr.Error())
	}
	order := m.modal.order

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf("Order #%d", order.OrderID)))
	fmt.Fprintf(&b, "Placed %s · %s\n\n", order.OrderDate, statusStyle(order.Status).Render(string(order.Status)))
	b.WriteString(renderTimeline(order.Status))
	b.WriteString("\n\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %dx %s  $%s\n", item.Quantity, item.PlantName, shop.FormatPrice(item.Subtotal))
	}
	fmt.Fprintf(&b, "\nTotal $%s\n\n", shop.FormatPrice(order.TotalAmount))
	fmt.Fprintf(&b, "Set status: %s\n", selectedStyle.Render(string(m.modal.pendingStatus)))
	return b.String()
}

func (m *dashModel) modalKeyHints() string {
	switch m.modal.kind {
	case modalPlantForm:
		return "enter save · tab next field · esc cancel"
	case modalPlantDelete, modalUserDelete:
		return "y confirm · n cancel"
	case modalRoleChange:
		return "←/→ pick role · y apply · n cancel"
	case modalOrder:
		return "←/→ pick status · enter apply · esc close"
	}
	return ""
}
