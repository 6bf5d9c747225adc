// internal/tui/plant_detail.go
//
// Single plant screen with the quantity selector.

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

type plantLoadedMsg struct {
	gen   int
	plant shop.Plant
	err   error
}

func (m plantLoadedMsg) generation() int { return m.gen }

type plantDetailModel struct {
	app      *App
	plant    shop.Plant
	quantity int
	loading  bool
	adding   bool
	err      error
}

func newPlantDetailModel(a *App) plantDetailModel {
	return plantDetailModel{app: a, quantity: 1}
}

func (m *plantDetailModel) load(gen int, id int64) tea.Cmd {
	m.loading = true
	m.err = nil
	m.quantity = 1
	client := m.app.client
	return func() tea.Msg {
		plant, err := client.Plant(context.Background(), id)
		return plantLoadedMsg{gen: gen, plant: plant, err: err}
	}
}

func (m *plantDetailModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case plantLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return nil
		}
		m.plant = msg.plant
		return nil

	case addToCartDoneMsg:
		m.adding = false
		if msg.err != nil {
			m.app.statusMsg = msg.err.Error()
			return nil
		}
		m.app.statusMsg = fmt.Sprintf("%d x %s added to cart!", m.quantity, msg.plant)
		m.app.book.Record("Added %d x %s to cart", m.quantity, msg.plant)
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "+", "right":
			if m.quantity < m.plant.Stock {
				m.quantity++
			}
		case "-", "left":
			if m.quantity > 1 {
				m.quantity--
			}
		case "a", "enter":
			return m.addToCart()
		}
	}
	return nil
}

func (m *plantDetailModel) addToCart() tea.Cmd {
	if m.adding || m.plant.Stock == 0 {
		return nil
	}
	if !m.app.sessions.IsAuthenticated() {
		return m.app.navigate(screenLogin)
	}
	if m.app.sessions.IsAdmin() {
		m.app.statusMsg = "Admins cannot add items to cart"
		return nil
	}
	m.adding = true
	return m.app.addToCart(m.plant, m.quantity)
}

func (m *plantDetailModel) view() string {
	if m.loading {
		return "Loading plant..."
	}
	if m.err != nil {
		if errors.Is(m.err, api.ErrNotFound) {
			return "Plant not found."
		}
		return alertStyle.Render("Failed to load plant: " + m.err.Error())
	}

	p := m.plant
	lines := []string{
		selectedStyle.Render(p.Name),
		faintStyle.Render(p.Description),
		"",
		fmt.Sprintf("Price: $%s", shop.FormatPrice(p.Price)),
	}
	if p.Stock > 0 {
		lines = append(lines, fmt.Sprintf("In Stock (%d)", p.Stock))
	} else {
		lines = append(lines, badgeOutStyle.Render("Out of Stock"))
	}
	if shop.StockLevelFor(p.Stock) == shop.StockLow {
		lines = append(lines, badgeLowStyle.Render(fmt.Sprintf("Only %d left!", p.Stock)))
	}
	if p.Stock > 0 {
		lines = append(lines,
			"",
			fmt.Sprintf("Quantity: - %d +   (a to add to cart)", m.quantity),
		)
	}
	return strings.Join(lines, "\n")
}
