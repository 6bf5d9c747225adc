// internal/tui/dashboard.go
//
// Admin dashboard. Four tabs over the admin endpoints: the full plant list,
// a server-paginated plant list, all orders, and user management with a live
// search filter. The initial load joins five fetches and is all-or-nothing:
// any failure renders the error state with a retry hint, never partial data.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/lralston/verdant/internal/shop"
)

type dashTab int

const (
	tabPlants dashTab = iota
	tabPaginated
	tabOrders
	tabUsers
)

var tabTitles = []string{"Plants", "Plants (paged)", "Orders", "Users"}

// dashLoadedMsg carries the joined result of the five admin fetches.
// err is set if any of them failed; the data fields are then ignored.
type dashLoadedMsg struct {
	gen       int
	plants    []shop.Plant
	orders    []shop.Order
	users     []shop.User
	customers []shop.User
	stats     shop.UserStats
	err       error
}

func (m dashLoadedMsg) generation() int { return m.gen }

// pageLoadedMsg carries one page of the paginated plant list. seq orders
// requests for this one resource; a response with an old seq lost the race
// to a newer page change and is dropped.
type pageLoadedMsg struct {
	gen  int
	seq  int
	page shop.PlantPage
	err  error
}

func (m pageLoadedMsg) generation() int { return m.gen }

type dashModel struct {
	app *App

	loading bool
	err     error
	tab     dashTab

	plants    []shop.Plant
	orders    []shop.Order
	users     []shop.User
	customers []shop.User
	stats     shop.UserStats

	plantsTable table.Model
	ordersTable table.Model
	usersTable  table.Model
	pageTable   table.Model

	// paginated tab
	pager       paginator.Model
	page        shop.PlantPage
	pageSeq     int
	pageLoading bool
	pageErr     error

	// users tab
	search  textinput.Model
	visible []shop.User

	modal modalState

	width  int
	height int
}

func newDashModel(a *App) dashModel {
	search := textinput.New()
	search.Placeholder = "filter by name, email or role"
	search.CharLimit = 80
	search.Width = 40

	pager := paginator.New()
	pager.Type = paginator.Dots

	m := dashModel{
		app:    a,
		search: search,
		pager:  pager,
	}
	m.plantsTable = newDashTable([]table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 24},
		{Title: "Price", Width: 9},
		{Title: "Stock", Width: 10},
	})
	m.pageTable = newDashTable([]table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 24},
		{Title: "Price", Width: 9},
		{Title: "Stock", Width: 10},
	})
	m.ordersTable = newDashTable([]table.Column{
		{Title: "Order", Width: 7},
		{Title: "Date", Width: 12},
		{Title: "Status", Width: 11},
		{Title: "Total", Width: 10},
	})
	m.usersTable = newDashTable([]table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 18},
		{Title: "Email", Width: 26},
		{Title: "Role", Width: 10},
		{Title: "Active", Width: 7},
	})
	return m
}

func newDashTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Selected = selectedStyle
	t.SetStyles(styles)
	return t
}

// enter is the screen's entry fetch.
func (m *dashModel) enter(gen int) tea.Cmd {
	m.loading = true
	m.err = nil
	m.modal = modalState{}
	m.search.Blur()
	m.search.SetValue("")
	return m.fetchAll(gen)
}

// fetchAll runs the five admin fetches concurrently and joins them into one
// message. One error fails the whole load.
func (m *dashModel) fetchAll(gen int) tea.Cmd {
	client := m.app.client
	return func() tea.Msg {
		msg := dashLoadedMsg{gen: gen}
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			msg.plants, err = client.AdminPlants(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			msg.orders, err = client.AdminOrders(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			msg.users, err = client.Users(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			msg.customers, err = client.Customers(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			msg.stats, err = client.UserStats(ctx)
			return err
		})
		msg.err = g.Wait()
		return msg
	}
}

// loadPage fetches one page of the paginated plant list. The target index is
// clamped to the known page range so no out-of-range request is ever issued.
func (m *dashModel) loadPage(target int) tea.Cmd {
	if m.page.TotalPages > 0 {
		if target > m.page.TotalPages-1 {
			target = m.page.TotalPages - 1
		}
	}
	if target < 0 {
		target = 0
	}

	m.pageSeq++
	m.pageLoading = true
	m.pageErr = nil
	seq := m.pageSeq
	gen := m.app.gen
	client := m.app.client
	size := m.app.cfg.PageSize()
	sortBy := m.app.cfg.SortBy()
	return func() tea.Msg {
		page, err := client.PaginatedPlants(context.Background(), target, size, sortBy)
		return pageLoadedMsg{gen: gen, seq: seq, page: page, err: err}
	}
}

func (m *dashModel) resize(width, height int) {
	m.width = width
	m.height = height
	rows := height - 12
	if rows < 5 {
		rows = 5
	}
	m.plantsTable.SetHeight(rows)
	m.pageTable.SetHeight(rows)
	m.ordersTable.SetHeight(rows)
	m.usersTable.SetHeight(rows)
}

func (m *dashModel) typingActive() bool {
	return m.modal.kind != modalNone || m.search.Focused()
}

func (m *dashModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dashLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return nil
		}
		m.err = nil
		m.plants = msg.plants
		m.orders = msg.orders
		m.users = msg.users
		m.customers = msg.customers
		m.stats = msg.stats
		m.rebuildTables()
		if m.tab == tabPaginated {
			return m.loadPage(m.pager.Page)
		}
		return nil

	case pageLoadedMsg:
		if msg.seq != m.pageSeq {
			return nil
		}
		m.pageLoading = false
		if msg.err != nil {
			m.pageErr = msg.err
			return nil
		}
		m.page = msg.page
		m.pager.Page = msg.page.Number
		m.pager.SetTotalPages(maxInt(1, msg.page.TotalPages))
		m.pageTable.SetRows(plantRows(msg.page.Content))
		return nil

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case orderFetchedMsg:
		if m.modal.kind == modalOrder {
			m.modal.orderLoading = false
			m.modal.orderErr = msg.err
			m.modal.order = msg.order
			m.modal.pendingStatus = msg.order.Status
		}
		return nil

	case tea.KeyMsg:
		if m.modal.kind != modalNone {
			return m.updateModal(msg)
		}
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}
	return nil
}

func (m *dashModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "r":
		m.loading = true
		m.err = nil
		return m.fetchAll(m.app.gen)
	case "tab":
		return m.switchTab((m.tab + 1) % 4)
	case "shift+tab":
		return m.switchTab((m.tab + 3) % 4)
	case "1":
		return m.switchTab(tabPlants)
	case "2":
		return m.switchTab(tabPaginated)
	case "3":
		return m.switchTab(tabOrders)
	case "4":
		return m.switchTab(tabUsers)
	}

	if m.loading || m.err != nil {
		return nil
	}

	switch m.tab {
	case tabPlants:
		switch msg.String() {
		case "a":
			m.openPlantForm(nil)
			return nil
		case "e":
			if p, ok := m.selectedPlant(); ok {
				m.openPlantForm(&p)
			}
			return nil
		case "x":
			if p, ok := m.selectedPlant(); ok {
				m.modal = modalState{kind: modalPlantDelete, plant: p}
			}
			return nil
		}
		m.plantsTable, _ = m.plantsTable.Update(msg)

	case tabPaginated:
		switch msg.String() {
		case "left", "h":
			return m.loadPage(m.pager.Page - 1)
		case "right":
			return m.loadPage(m.pager.Page + 1)
		case "e":
			if p, ok := m.selectedPlant(); ok {
				m.openPlantForm(&p)
			}
			return nil
		case "x":
			if p, ok := m.selectedPlant(); ok {
				m.modal = modalState{kind: modalPlantDelete, plant: p}
			}
			return nil
		}
		m.pageTable, _ = m.pageTable.Update(msg)

	case tabOrders:
		if msg.String() == "enter" {
			if o, ok := m.selectedOrder(); ok {
				return m.openOrderModal(o.OrderID)
			}
			return nil
		}
		m.ordersTable, _ = m.ordersTable.Update(msg)

	case tabUsers:
		switch msg.String() {
		case "/":
			m.search.Focus()
			return nil
		case "t":
			if u, ok := m.selectedUser(); ok {
				return m.toggleUser(u)
			}
			return nil
		case "m":
			if u, ok := m.selectedUser(); ok {
				m.modal = modalState{kind: modalRoleChange, user: u, pendingRole: flippedRole(u.Role)}
			}
			return nil
		case "x":
			if u, ok := m.selectedUser(); ok {
				m.modal = modalState{kind: modalUserDelete, user: u}
			}
			return nil
		}
		m.usersTable, _ = m.usersTable.Update(msg)
	}
	return nil
}

func (m *dashModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.search.Blur()
		m.search.SetValue("")
		m.refilterUsers()
		return nil
	case "enter":
		m.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refilterUsers()
	return cmd
}

func (m *dashModel) switchTab(target dashTab) tea.Cmd {
	m.tab = target
	if target == tabPaginated && len(m.page.Content) == 0 && !m.pageLoading {
		return m.loadPage(0)
	}
	return nil
}

// refilterUsers applies the live search filter. Matching is case-insensitive
// over name, email and role.
func (m *dashModel) refilterUsers() {
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if query == "" {
		m.visible = m.users
	} else {
		m.visible = nil
		for _, u := range m.users {
			haystack := strings.ToLower(u.Name + " " + u.Email + " " + u.Role)
			if strings.Contains(haystack, query) {
				m.visible = append(m.visible, u)
			}
		}
	}
	m.usersTable.SetRows(userRows(m.visible))
	m.usersTable.SetCursor(0)
}

func (m *dashModel) rebuildTables() {
	m.plantsTable.SetRows(plantRows(m.plants))
	m.ordersTable.SetRows(orderRows(m.orders))
	m.refilterUsers()
}

func plantRows(plants []shop.Plant) []table.Row {
	rows := make([]table.Row, len(plants))
	for i, p := range plants {
		rows[i] = table.Row{
			fmt.Sprintf("%d", p.ID),
			p.Name,
			"$" + shop.FormatPrice(p.Price),
			stockBadge(p.Stock),
		}
	}
	return rows
}

func orderRows(orders []shop.Order) []table.Row {
	rows := make([]table.Row, len(orders))
	for i, o := range orders {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", o.OrderID),
			o.OrderDate,
			string(o.Status),
			"$" + shop.FormatPrice(o.TotalAmount),
		}
	}
	return rows
}

func userRows(users []shop.User) []table.Row {
	rows := make([]table.Row, len(users))
	for i, u := range users {
		active := "yes"
		if !u.Enabled {
			active = "no"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", u.ID),
			u.Name,
			u.Email,
			u.Role,
			active,
		}
	}
	return rows
}

func (m *dashModel) selectedPlant() (shop.Plant, bool) {
	src := m.plants
	cursor := m.plantsTable.Cursor()
	if m.tab == tabPaginated {
		src = m.page.Content
		cursor = m.pageTable.Cursor()
	}
	if cursor < 0 || cursor >= len(src) {
		return shop.Plant{}, false
	}
	return src[cursor], true
}

func (m *dashModel) selectedOrder() (shop.Order, bool) {
	cursor := m.ordersTable.Cursor()
	if cursor < 0 || cursor >= len(m.orders) {
		return shop.Order{}, false
	}
	return m.orders[cursor], true
}

func (m *dashModel) selectedUser() (shop.User, bool) {
	cursor := m.usersTable.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return shop.User{}, false
	}
	return m.visible[cursor], true
}

func (m *dashModel) view() string {
	if m.loading {
		return "Loading dashboard..."
	}
	if m.err != nil {
		return alertStyle.Render("⚠ Could not load dashboard: "+m.err.Error()) +
			"\n" + faintStyle.Render("r retry · esc home")
	}
	if m.modal.kind != modalNone {
		return m.viewModal()
	}

	var b strings.Builder
	b.WriteString(m.renderTabBar())
	b.WriteString("\n\n")

	switch m.tab {
	case tabPlants:
		b.WriteString(m.plantsTable.View())
	case tabPaginated:
		if m.pageErr != nil {
			b.WriteString(alertStyle.Render("⚠ " + m.pageErr.Error()))
			b.WriteString("\n" + faintStyle.Render("←/→ change page to retry"))
		} else if m.pageLoading && len(m.page.Content) == 0 {
			b.WriteString("Loading page...")
		} else {
			b.WriteString(m.pageTable.View())
			b.WriteString("\n" + m.pager.View())
			b.WriteString(faintStyle.Render(fmt.Sprintf("  page %d of %d · %d plants",
				m.page.Number+1, maxInt(1, m.page.TotalPages), m.page.TotalElements)))
		}
	case tabOrders:
		b.WriteString(m.ordersTable.View())
	case tabUsers:
		b.WriteString(m.renderStatsLine())
		b.WriteString("\n")
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
		b.WriteString(m.usersTable.View())
	}
	return b.String()
}

func (m *dashModel) renderTabBar() string {
	parts := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		if dashTab(i) == m.tab {
			parts[i] = selectedStyle.Render(" " + title + " ")
		} else {
			parts[i] = faintStyle.Render(" " + title + " ")
		}
	}
	return strings.Join(parts, "│")
}

func (m *dashModel) renderStatsLine() string {
	return faintStyle.Render(fmt.Sprintf("Users %d · Customers %d · Admins %d · Active %d",
		m.stats.TotalUsers, m.stats.TotalCustomers, m.stats.TotalAdmins, m.stats.ActiveUsers))
}

func (m *dashModel) keyHints() string {
	if m.err != nil {
		return "r retry · esc home"
	}
	if m.modal.kind != modalNone {
		return m.modalKeyHints()
	}
	base := "tab switch · 1-4 jump · r refresh · esc home"
	switch m.tab {
	case tabPlants:
		return "a add · e edit · x delete · " + base
	case tabPaginated:
		return "←/→ page · e edit · x delete · " + base
	case tabOrders:
		return "enter details · " + base
	case tabUsers:
		return "/ search · t toggle · m role · x delete · " + base
	}
	return base
}
