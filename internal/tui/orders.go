// internal/tui/orders.go
//
// Order history and single-order screens. The status timeline rendering
// derives entirely from shop.TimelineFor; the backend owns all transitions.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lralston/verdant/internal/api"
	"github.com/lralston/verdant/internal/shop"
)

type ordersLoadedMsg struct {
	gen    int
	orders []shop.Order
	err    error
}

func (m ordersLoadedMsg) generation() int { return m.gen }

type orderLoadedMsg struct {
	gen   int
	order shop.Order
	err   error
}

func (m orderLoadedMsg) generation() int { return m.gen }

type ordersModel struct {
	app       *App
	orders    []shop.Order
	selection int
	loading   bool
	err       error
}

func newOrdersModel(a *App) ordersModel {
	return ordersModel{app: a}
}

func (m *ordersModel) load(gen int) tea.Cmd {
	m.loading = true
	m.err = nil
	m.selection = 0
	client := m.app.client
	return func() tea.Msg {
		orders, err := client.OrderHistory(context.Background())
		return ordersLoadedMsg{gen: gen, orders: orders, err: err}
	}
}

func (m *ordersModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ordersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return nil
		}
		m.orders = msg.orders
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m.load(m.app.gen)
		case "up", "k":
			if m.selection > 0 {
				m.selection--
			}
		case "down", "j":
			if m.selection < len(m.orders)-1 {
				m.selection++
			}
		case "enter":
			if m.selection < len(m.orders) {
				return m.app.openOrder(m.orders[m.selection].OrderID)
			}
		}
	}
	return nil
}

func (m *ordersModel) view() string {
	if m.loading {
		return "Loading your orders..."
	}
	if m.err != nil {
		return alertStyle.Render("Failed to load orders: "+m.err.Error()) + "\n" + faintStyle.Render("Press r to try again")
	}
	if len(m.orders) == 0 {
		return "No orders yet.\n" + faintStyle.Render("Press esc to browse plants")
	}

	var rows []string
	for i, order := range m.orders {
		line := fmt.Sprintf("#%-6d %-12s %-10s $%s",
			order.OrderID,
			order.OrderDate,
			statusStyle(order.Status).Render(string(order.Status)),
			shop.FormatPrice(order.TotalAmount))
		if i == m.selection {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	rows = append(rows, "", faintStyle.Render("enter order details"))
	return strings.Join(rows, "\n")
}

// openOrder navigates to the order detail screen. The transition goes
// through the guard: a session cleared mid-use lands on login, not on an
// order it can no longer fetch.
func (a *App) openOrder(id int64) tea.Cmd {
	if cmd := a.navigate(screenOrderDetail); a.screen != screenOrderDetail {
		return cmd
	}
	return a.orderDetail.load(a.gen, id)
}

type orderDetailModel struct {
	app     *App
	order   shop.Order
	loading bool
	err     error
}

func newOrderDetailModel(a *App) orderDetailModel {
	return orderDetailModel{app: a}
}

func (m *orderDetailModel) load(gen int, id int64) tea.Cmd {
	m.loading = true
	m.err = nil
	client := m.app.client
	return func() tea.Msg {
		order, err := client.Order(context.Background(), id)
		return orderLoadedMsg{gen: gen, order: order, err: err}
	}
}

func (m *orderDetailModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case orderLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.order = msg.order
		}
	case tea.KeyMsg:
		if msg.String() == "b" {
			return m.app.navigate(screenOrders)
		}
	}
	return nil
}

func (m *orderDetailModel) view() string {
	if m.loading {
		return "Loading order..."
	}
	if m.err != nil {
		if errors.Is(m.err, api.ErrNotFound) {
			return "Order not found."
		}
		return alertStyle.Render("Failed to load order: " + m.err.Error())
	}

	o := m.order
	lines := []string{
		fmt.Sprintf("Order #%d · %s", o.OrderID, o.OrderDate),
		fmt.Sprintf("Status: %s", statusStyle(o.Status).Render(string(o.Status))),
		"",
		renderTimeline(o.Status),
		"",
	}
	for _, item := range o.Items {
		lines = append(lines, fmt.Sprintf("  %-24s %d x $%s = $%s",
			item.PlantName, item.Quantity, shop.FormatPrice(item.Price), shop.FormatPrice(item.Subtotal)))
	}
	lines = append(lines, "", selectedStyle.Render(fmt.Sprintf("Total  $%s", shop.FormatPrice(o.TotalAmount))))
	return strings.Join(lines, "\n")
}

// renderTimeline draws the four-step progress indicator.
func renderTimeline(status shop.Status) string {
	tl := shop.TimelineFor(status)
	steps := []struct {
		label string
		done  bool
	}{
		{"Placed", tl.Placed},
		{"Processed", tl.Processed},
		{"Shipped", tl.Shipped},
		{"Delivered", tl.Delivered},
	}
	var parts []string
	for _, step := range steps {
		mark := "○"
		render := faintStyle.Render
		if step.done {
			mark = "●"
			render = selectedStyle.Render
		}
		parts = append(parts, render(mark+" "+step.label))
	}
	return strings.Join(parts, " ─ ")
}
