package dayview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/auri/internal/models"
)

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("172")).
			Bold(true)

	dayTypeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("94")).
			Italic(true).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// Model shows one day with its recorded neighbours.
type Model struct {
	viewport viewport.Model
	date     models.Date
	today    models.Date
	day      *models.DayRecord
	prev     *models.Date
	next     *models.Date
	loaded   bool
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.loaded {
		return "Loading..."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetDay replaces the shown day. day, prev and next may be nil.
func (m *Model) SetDay(date, today models.Date, day *models.DayRecord, prev, next *models.Date) {
	m.date = date
	m.today = today
	m.day = day
	m.prev = prev
	m.next = next
	m.loaded = true
	m.Render()
}

func (m Model) Date() models.Date { return m.date }
func (m Model) Day() *models.DayRecord { return m.day }
func (m Model) Prev() *models.Date { return m.prev }
func (m Model) Next() *models.Date { return m.next }
func (m Model) IsToday() bool { return m.date.Equal(m.today) }

func (m *Model) Render() {
	if !m.loaded {
		return
	}

	var b strings.Builder
	b.WriteString(dateStyle.Render(m.date.Display()))
	b.WriteString("\n\n")

	lead := "This"
	if m.IsToday() {
		lead = "Today"
	}
	if m.day == nil {
		fmt.Fprintf(&b, "%s day has nothing recorded yet.\n", lead)
	} else {
		fmt.Fprintf(&b, "%s is a day for... %s\n", lead, dayTypeStyle.Render(strings.ToLower(m.day.DayType)))
		if m.day.Notes != "" {
			notes := m.day.Notes
			if m.viewport.Width > 0 {
				notes = lipgloss.NewStyle().Width(m.viewport.Width).Render(notes)
			}
			b.WriteString("\n" + notes + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("← %s   → %s", label(m.prev), label(m.next))))
	m.viewport.SetContent(b.String())
}

func label(d *models.Date) string {
	if d == nil {
		return "none"
	}
	return d.String()
}
