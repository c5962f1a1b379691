package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch {
	case m.err != nil:
		body = dangerStyle.Render(fmt.Sprintf("Failed to load statistics: %v", m.err))
	case m.stats == nil:
		body = warningStyle.Render("Loading statistics...")
	default:
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			m.viewCards(),
			"",
			m.viewTabs(),
			m.viewTable(),
		)
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTitle(),
		"",
		body,
		"",
		m.help.View(m),
	))
}

func (m Model) viewTitle() string {
	title := "workform dashboard"
	if m.stats != nil {
		title += " · " + m.stats.Date
	}
	if m.loading && m.stats != nil {
		title += " " + warningStyle.Render("(refreshing)")
	}
	return titleStyle.Render(title)
}

func card(label, value string) string {
	return cardStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		cardLabelStyle.Render(label),
		cardValueStyle.Render(value),
	))
}

func (m Model) viewCards() string {
	s := m.stats
	submitted := fmt.Sprintf("%d / %d", s.SubmittedToday, s.TotalEmployees)
	pending := fmt.Sprint(s.PendingToday)
	if s.PendingToday > 0 {
		pending = warningStyle.Render(pending)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top,
			card("Submitted today", submitted),
			card("Pending", pending),
			card("Submission rate", fmt.Sprintf("%d%%", s.SubmissionRate)),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			card("Tasks today", fmt.Sprint(s.TasksToday)),
			card("Tasks (7 days)", fmt.Sprint(s.TasksThisWeek)),
			card("Tasks (month)", fmt.Sprint(s.TasksThisMonth)),
		),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTable() string {
	if m.state == StateCategories {
		if len(m.stats.CategoryDistribution) == 0 {
			return warningStyle.Render("No employees in the directory yet.")
		}
		return m.categories.View()
	}
	if len(m.stats.RecentActivities) == 0 {
		return warningStyle.Render("No submissions yet.")
	}
	return m.recent.View()
}
