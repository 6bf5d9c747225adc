// internal/tui/cart.go
//
// Cart screen: line items, subtotal, checkout.

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lralston/verdant/internal/shop"
)

type cartLoadedMsg struct {
	gen   int
	items []shop.CartItem
	err   error
}

func (m cartLoadedMsg) generation() int { return m.gen }

type cartItemRemovedMsg struct {
	gen        int
	cartItemID int64
	err        error
}

func (m cartItemRemovedMsg) generation() int { return m.gen }

type orderPlacedMsg struct {
	gen int
	err error
}

func (m orderPlacedMsg) generation() int { return m.gen }

type cartModel struct {
	app         *App
	items       []shop.CartItem
	selection   int
	loading     bool
	checkingOut bool
	err         error
}

func newCartModel(a *App) cartModel {
	return cartModel{app: a}
}

func (m *cartModel) load(gen int) tea.Cmd {
	m.loading = true
	m.err = nil
	m.selection = 0
	client := m.app.client
	return func() tea.Msg {
		items, err := client.CartItems(context.Background())
		return cartLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (m *cartModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case cartLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return nil
		}
		m.items = msg.items
		return nil

	case cartItemRemovedMsg:
		if msg.err != nil {
			m.app.statusMsg = msg.err.Error()
			return nil
		}
		// Mirror the mutation locally instead of refetching.
		kept := m.items[:0]
		for _, item := range m.items {
			if item.CartItemID != msg.cartItemID {
				kept = append(kept, item)
			}
		}
		m.items = kept
		if m.selection >= len(m.items) && m.selection > 0 {
			m.selection = len(m.items) - 1
		}
		m.app.book.Record("Removed an item from the cart")
		return nil

	case orderPlacedMsg:
		m.checkingOut = false
		if msg.err != nil {
			m.app.statusMsg = msg.err.Error()
			return nil
		}
		m.app.statusMsg = "Order placed successfully!"
		m.app.book.Record("Placed an order · subtotal $%s", shop.FormatPrice(shop.Subtotal(m.items)))
		return m.app.navigate(screenOrders)

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m.load(m.app.gen)
		case "up", "k":
			if m.selection > 0 {
				m.selection--
			}
		case "down", "j":
			if m.selection < len(m.items)-1 {
				m.selection++
			}
		case "x":
			return m.removeSelected()
		case "enter":
			return m.checkout()
		}
	}
	return nil
}

func (m *cartModel) removeSelected() tea.Cmd {
	if m.selection >= len(m.items) {
		return nil
	}
	id := m.items[m.selection].CartItemID
	gen := m.app.gen
	client := m.app.client
	return func() tea.Msg {
		err := client.RemoveFromCart(context.Background(), id)
		return cartItemRemovedMsg{gen: gen, cartItemID: id, err: err}
	}
}

func (m *cartModel) checkout() tea.Cmd {
	if m.checkingOut || len(m.items) == 0 {
		return nil
	}
	m.checkingOut = true
	gen := m.app.gen
	client := m.app.client
	return func() tea.Msg {
		_, err := client.PlaceOrder(context.Background())
		return orderPlacedMsg{gen: gen, err: err}
	}
}

func (m *cartModel) view() string {
	if m.loading {
		return "Loading your cart..."
	}
	if m.err != nil {
		return alertStyle.Render("Failed to load cart: "+m.err.Error()) + "\n" + faintStyle.Render("Press r to try again")
	}
	if len(m.items) == 0 {
		return "Your cart is empty.\n" + faintStyle.Render("Press esc to continue shopping")
	}

	var rows []string
	for i, item := range m.items {
		line := fmt.Sprintf("%-24s  %d x $%s = $%s",
			item.PlantName, item.Quantity, shop.FormatPrice(item.Price), shop.FormatPrice(item.TotalPrice))
		if i == m.selection {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}

	subtotal := shop.FormatPrice(shop.Subtotal(m.items))
	rows = append(rows,
		"",
		fmt.Sprintf("Subtotal (%d items)  $%s", len(m.items), subtotal),
		"Shipping             Free",
		selectedStyle.Render(fmt.Sprintf("Total                $%s", subtotal)),
		"",
		faintStyle.Render("x remove item · enter checkout"),
	)
	if m.checkingOut {
		rows = append(rows, "Placing your order...")
	}
	return strings.Join(rows, "\n")
}
