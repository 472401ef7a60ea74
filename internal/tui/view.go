package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateDay:
		content = docStyle.Render(m.dayView.View())
	case StateAll:
		content = docStyle.Render(m.dayList.View())
	case StatePatterns:
		content = docStyle.Render(m.viewPatterns())
	case StateEditing:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var rendered []string
	for i, title := range tabs {
		if m.activeTab() == SessionState(i) {
			rendered = append(rendered, activeTabStyle.Render(title))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render("Error: " + m.err.Error())
	}
	return statusStyle.Render(m.status)
}

func (m Model) viewPatterns() string {
	if len(m.stats) == 0 {
		return "No days recorded yet."
	}

	width := 0
	for _, s := range m.stats {
		width = max(width, len([]rune(s.DayType)))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Patterns in your days"))
	b.WriteString("\n\n")
	for _, s := range m.stats {
		name := strings.ToLower(s.DayType)
		pad := strings.Repeat(" ", width-len([]rune(s.DayType)))
		fmt.Fprintf(&b, "%s%s  %d\n", dayTypeStyle.Render(name), pad, s.Count)
	}
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	question := "Delete this day?"
	if m.dayToDelete != nil {
		question = fmt.Sprintf("Delete %s (%s)?", m.dayToDelete.Date, strings.ToLower(m.dayToDelete.DayType))
	}
	return lipgloss.Place(m.width, m.height-chromeHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
