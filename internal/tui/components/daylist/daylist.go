package daylist

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/auri/internal/models"
)

// OpenDayMsg asks the parent to show a day.
type OpenDayMsg struct {
	Date models.Date
}

// DeleteDayMsg asks the parent to confirm and delete a day.
type DeleteDayMsg struct {
	Day models.DayRecord
}

type Item struct {
	Day models.DayRecord
}

func (i Item) Title() string {
	return i.Day.Date.String() + "  " + strings.ToLower(i.Day.DayType)
}

func (i Item) Description() string {
	if i.Day.Notes == "" {
		return "no notes"
	}
	return strings.Join(strings.Fields(i.Day.Notes), " ")
}

func (i Item) FilterValue() string { return i.Day.DayType + " " + i.Day.Date.String() }

type KeyMap struct {
	Open   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(days []models.DayRecord, width, height int) Model {
	l := list.New(items(days), list.NewDefaultDelegate(), width, height)
	l.Title = "All days"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the parent model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func items(days []models.DayRecord) []list.Item {
	out := make([]list.Item, len(days))
	for i, d := range days {
		out[i] = Item{Day: d}
	}
	return out
}

func (m *Model) SetDays(days []models.DayRecord) {
	m.list.SetItems(items(days))
}

// Len is the number of days in the list, ignoring any filter.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Open):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return OpenDayMsg{Date: i.Day.Date} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteDayMsg(i) }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No days recorded yet.\n  Press 'e' on the Day tab to record one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
