// Package tui renders the admin statistics dashboard in the terminal.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/workform/internal/models"
)

type SessionState int

const (
	StateRecent SessionState = iota
	StateCategories
)

var tabTitles = []string{"Recent submissions", "Categories"}

// Loader fetches a fresh statistics snapshot.
type Loader func(ctx context.Context) (models.Stats, error)

type statsMsg struct {
	stats models.Stats
}

type errMsg struct {
	err error
}

type Model struct {
	ctx        context.Context
	load       Loader
	state      SessionState
	keys       KeyMap
	help       help.Model
	recent     table.Model
	categories table.Model
	stats      *models.Stats
	err        error
	loading    bool
	quitting   bool
	width      int
	height     int
}

func NewModel(ctx context.Context, load Loader) Model {
	recent := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Employee", Width: 24},
			{Title: "Tasks", Width: 6},
		}),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	categories := table.New(
		table.WithColumns([]table.Column{
			{Title: "Category", Width: 14},
			{Title: "Employees", Width: 10},
		}),
		table.WithHeight(8),
	)

	return Model{
		ctx:        ctx,
		load:       load,
		state:      StateRecent,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		recent:     recent,
		categories: categories,
		loading:    true,
	}
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.load(m.ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return statsMsg{stats: stats}
	}
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m *Model) setStats(s models.Stats) {
	m.stats = &s
	m.err = nil

	rows := make([]table.Row, 0, len(s.RecentActivities))
	for _, a := range s.RecentActivities {
		rows = append(rows, table.Row{a.Date, a.EmployeeName, fmt.Sprint(a.TaskCount)})
	}
	m.recent.SetRows(rows)

	rows = make([]table.Row, 0, len(s.CategoryDistribution))
	for _, c := range s.CategoryDistribution {
		rows = append(rows, table.Row{string(c.Category), fmt.Sprint(c.Count)})
	}
	m.categories.SetRows(rows)
}

func (m *Model) switchTo(s SessionState) {
	m.state = s
	if s == StateRecent {
		m.recent.Focus()
		m.categories.Blur()
	} else {
		m.categories.Focus()
		m.recent.Blur()
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsMsg:
		m.loading = false
		m.setStats(msg.stats)
		return m, nil

	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.refresh()
		case key.Matches(msg, m.keys.Tab):
			m.switchTo((m.state + 1) % SessionState(len(tabTitles)))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.switchTo((m.state + SessionState(len(tabTitles)) - 1) % SessionState(len(tabTitles)))
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.state == StateRecent {
		m.recent, cmd = m.recent.Update(msg)
	} else {
		m.categories, cmd = m.categories.Update(msg)
	}
	return m, cmd
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Refresh, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Refresh},
		{m.keys.Up, m.keys.Down},
		{m.keys.Help, m.keys.Quit},
	}
}
