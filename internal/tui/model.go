package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/auri/internal/models"
	"github.com/julianstephens/auri/internal/storage"
	"github.com/julianstephens/auri/internal/tui/components/daylist"
	"github.com/julianstephens/auri/internal/tui/components/dayview"
	"github.com/julianstephens/auri/internal/utils"
)

type SessionState int

const (
	StateDay SessionState = iota
	StateAll
	StatePatterns
	StateEditing
	StateConfirmDelete
)

// tabs are the states reachable with tab / shift+tab, in order.
var tabs = []string{"Day", "All", "Patterns"}

type DayFormModel struct {
	DayType string
	Notes   string
}

type Model struct {
	store       storage.Provider
	today       utils.Clock
	state       SessionState
	keys        KeyMap
	help        help.Model
	dayView     dayview.Model
	dayList     daylist.Model
	stats       []models.TagCount
	form        *huh.Form
	dayForm     *DayFormModel
	dayToDelete *models.DayRecord
	status      string
	err         error
	quitting    bool
	width       int
	height      int
}

func NewModel(store storage.Provider, today utils.Clock) Model {
	return Model{
		store:   store,
		today:   today,
		state:   StateDay,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		dayView: dayview.New(0, 0),
		dayList: daylist.New(nil, 0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadToday(), m.loadDays())
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateDay:
		keys = append(keys, m.keys.Prev, m.keys.Next, m.keys.Edit)
	case StateAll:
		keys = append(keys, m.keys.Open, m.keys.Delete)
	case StateEditing:
		keys = []key.Binding{m.keys.Cancel}
	case StateConfirmDelete:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case StateDay:
		actions = []key.Binding{m.keys.Prev, m.keys.Next, m.keys.PrevDay, m.keys.NextDay, m.keys.Today, m.keys.Edit}
	case StateAll:
		actions = []key.Binding{m.keys.Open, m.keys.Delete}
	case StateEditing, StateConfirmDelete:
		return [][]key.Binding{m.ShortHelp()}
	}

	return [][]key.Binding{global, actions}
}

// activeTab is the tab highlighted for the current state.
func (m Model) activeTab() SessionState {
	switch m.state {
	case StateEditing:
		return StateDay
	case StateConfirmDelete:
		return StateAll
	}
	return m.state
}
