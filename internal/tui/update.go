package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/auri/internal/tui/components/daylist"
)

// chromeHeight is the rows taken by the tabs, status line and short help.
const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.dayView.SetSize(msg.Width-4, msg.Height-chromeHeight)
		m.dayList.SetSize(msg.Width-4, msg.Height-chromeHeight)
		return m, nil

	case dayLoadedMsg:
		m.dayView.SetDay(msg.date, msg.today, msg.day, msg.prev, msg.next)
		return m, nil

	case daysLoadedMsg:
		m.dayList.SetDays(msg.days)
		m.stats = msg.stats
		return m, nil

	case savedMsg:
		if msg.saved {
			m.status = "Saved " + msg.date.String()
		} else {
			m.status = "Nothing saved: the day type is blank."
		}
		return m, tea.Batch(m.loadDay(msg.date), m.loadDays())

	case deletedMsg:
		m.status = fmt.Sprintf("Deleted day #%d", msg.id)
		return m, tea.Batch(m.loadDay(m.dayView.Date()), m.loadDays())

	case errMsg:
		m.err = msg.err
		return m, nil

	case daylist.OpenDayMsg:
		m.state = StateDay
		return m, m.loadDay(msg.Date)

	case daylist.DeleteDayMsg:
		day := msg.Day
		m.dayToDelete = &day
		m.state = StateConfirmDelete
		return m, nil
	}

	switch m.state {
	case StateEditing:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	// The list filter owns the keyboard while it is open
	if msg, ok := msg.(tea.KeyMsg); ok && !(m.state == StateAll && m.dayList.Filtering()) {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabs))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabs))) % SessionState(len(tabs))
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	switch m.state {
	case StateDay:
		return m.updateDay(msg)
	case StateAll:
		var cmd tea.Cmd
		m.dayList, cmd = m.dayList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateDay(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.dayView, cmd = m.dayView.Update(msg)
		return m, cmd
	}

	date := m.dayView.Date()
	switch {
	case key.Matches(keyMsg, m.keys.Prev):
		if prev := m.dayView.Prev(); prev != nil {
			return m, m.loadDay(*prev)
		}
	case key.Matches(keyMsg, m.keys.Next):
		if next := m.dayView.Next(); next != nil {
			return m, m.loadDay(*next)
		}
	case key.Matches(keyMsg, m.keys.PrevDay):
		return m, m.loadDay(date.AddDays(-1))
	case key.Matches(keyMsg, m.keys.NextDay):
		// Days after today cannot be recorded
		if !m.dayView.IsToday() {
			return m, m.loadDay(date.AddDays(1))
		}
	case key.Matches(keyMsg, m.keys.Today):
		return m, m.loadToday()
	case key.Matches(keyMsg, m.keys.Edit):
		return m.startEdit()
	default:
		var cmd tea.Cmd
		m.dayView, cmd = m.dayView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	m.dayForm = &DayFormModel{}
	if day := m.dayView.Day(); day != nil {
		m.dayForm.DayType = day.DayType
		m.dayForm.Notes = day.Notes
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What kind of day is " + m.dayView.Date().Display() + "?").
				Placeholder("Mending, Finding, Exploring...").
				Value(&m.dayForm.DayType),
			huh.NewText().
				Title("Notes").
				Value(&m.dayForm.Notes),
		),
	).WithShowHelp(true)

	m.status = ""
	m.state = StateEditing
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.form = nil
		m.state = StateDay
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		m.state = StateDay
		return m, m.saveDay(m.dayView.Date(), m.dayForm.DayType, m.dayForm.Notes)
	case huh.StateAborted:
		m.form = nil
		m.state = StateDay
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.dayToDelete == nil {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		id := m.dayToDelete.ID
		m.dayToDelete = nil
		m.state = StateAll
		return m, m.deleteDay(id)
	case key.Matches(keyMsg, m.keys.Cancel):
		m.dayToDelete = nil
		m.state = StateAll
	}
	return m, nil
}
