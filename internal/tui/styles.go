package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lralston/verdant/internal/shop"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5BB974"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5BB974"))

	logTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	badgeLowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E8A33D"))

	badgeOutStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#5BB974")).
			Padding(1, 2)
)

// statusStyle colors an order status by its display class.
func statusStyle(status shop.Status) lipgloss.Style {
	switch status.Class() {
	case "pending":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#E8A33D"))
	case "processed":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	case "shipped":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#9B6BDF"))
	case "delivered":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#5BB974"))
	case "cancelled":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	}
	return faintStyle
}

// stockBadge renders the derived stock classification for a plant.
func stockBadge(stock int) string {
	switch shop.StockLevelFor(stock) {
	case shop.StockOut:
		return badgeOutStyle.Render(shop.StockOut.Label())
	case shop.StockLow:
		return badgeLowStyle.Render(shop.StockLow.Label())
	}
	return faintStyle.Render(shop.StockIn.Label())
}
