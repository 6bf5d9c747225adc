// internal/tui/home.go
//
// Storefront catalog screen.

package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lralston/verdant/internal/shop"
)

type plantsLoadedMsg struct {
	gen    int
	plants []shop.Plant
	err    error
}

func (m plantsLoadedMsg) generation() int { return m.gen }

type addToCartDoneMsg struct {
	gen   int
	plant string
	err   error
}

func (m addToCartDoneMsg) generation() int { return m.gen }

type plantItem struct {
	plant shop.Plant
}

func (i plantItem) Title() string {
	return fmt.Sprintf("%s · $%s", i.plant.Name, shop.FormatPrice(i.plant.Price))
}

func (i plantItem) Description() string {
	return fmt.Sprintf("%s · %s", stockBadge(i.plant.Stock), i.plant.Description)
}

func (i plantItem) FilterValue() string { return i.plant.Name }

type homeModel struct {
	app     *App
	list    list.Model
	plants  []shop.Plant
	loading bool
	err     error
	adding  bool
}

func newHomeModel(a *App) homeModel {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Our Green Collection"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return homeModel{app: a, list: l}
}

func (m *homeModel) resize(width, height int) {
	m.list.SetSize(maxInt(20, width-8), maxInt(8, height-14))
}

// load fetches the catalog for the given navigation generation.
func (m *homeModel) load(gen int) tea.Cmd {
	m.loading = true
	m.err = nil
	client := m.app.client
	return func() tea.Msg {
		plants, err := client.Plants(context.Background())
		return plantsLoadedMsg{gen: gen, plants: plants, err: err}
	}
}

func (m *homeModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case plantsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return nil
		}
		m.plants = msg.plants
		items := make([]list.Item, len(msg.plants))
		for i, p := range msg.plants {
			items[i] = plantItem{plant: p}
		}
		m.list.SetItems(items)
		return nil

	case addToCartDoneMsg:
		m.adding = false
		if msg.err != nil {
			m.app.statusMsg = msg.err.Error()
			return nil
		}
		m.app.statusMsg = fmt.Sprintf("%s added to cart!", msg.plant)
		m.app.book.Record("Added %s to cart", msg.plant)
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m.load(m.app.gen)
		case "enter":
			if item, ok := m.list.SelectedItem().(plantItem); ok {
				return m.app.openPlant(item.plant.ID)
			}
			return nil
		case "a":
			return m.addSelected()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

// addSelected adds one unit of the highlighted plant. Unauthenticated users
// are routed to login; admins are refused.
func (m *homeModel) addSelected() tea.Cmd {
	item, ok := m.list.SelectedItem().(plantItem)
	if !ok || m.adding {
		return nil
	}
	if !m.app.sessions.IsAuthenticated() {
		return m.app.navigate(screenLogin)
	}
	if m.app.sessions.IsAdmin() {
		m.app.statusMsg = "Admins cannot add items to cart"
		return nil
	}
	if item.plant.Stock <= 0 {
		m.app.statusMsg = fmt.Sprintf("%s is out of stock", item.plant.Name)
		return nil
	}
	m.adding = true
	return m.app.addToCart(item.plant, 1)
}

func (m *homeModel) view() string {
	if m.loading {
		return "Loading our green collection..."
	}
	if m.err != nil {
		return alertStyle.Render("Failed to load plants: "+m.err.Error()) + "\n" + faintStyle.Render("Press r to try again")
	}
	if len(m.plants) == 0 {
		return "No plants in the catalog yet."
	}
	return m.list.View()
}

// openPlant navigates to the detail screen and fetches the plant.
func (a *App) openPlant(id int64) tea.Cmd {
	a.screen = screenPlantDetail
	a.gen++
	return a.detail.load(a.gen, id)
}

// addToCart issues the cart mutation shared by home and detail screens.
func (a *App) addToCart(plant shop.Plant, quantity int) tea.Cmd {
	gen := a.gen
	client := a.client
	return func() tea.Msg {
		_, err := client.AddToCart(context.Background(), plant.ID, quantity)
		return addToCartDoneMsg{gen: gen, plant: plant.Name, err: err}
	}
}
