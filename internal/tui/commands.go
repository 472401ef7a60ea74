package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/auri/internal/constants"
	"github.com/julianstephens/auri/internal/models"
)

type dayLoadedMsg struct {
	date  models.Date
	today models.Date
	day   *models.DayRecord
	prev  *models.Date
	next  *models.Date
}

type daysLoadedMsg struct {
	days  []models.DayRecord
	stats []models.TagCount
}

type savedMsg struct {
	date  models.Date
	saved bool
}

type deletedMsg struct {
	id int64
}

type errMsg struct {
	err error
}

func (m Model) loadToday() tea.Cmd {
	clock := m.today
	return func() tea.Msg {
		today, err := clock()
		if err != nil {
			return errMsg{err}
		}
		return m.loadDay(today)()
	}
}

func (m Model) loadDay(date models.Date) tea.Cmd {
	store, clock := m.store, m.today
	return func() tea.Msg {
		ctx := context.Background()

		today, err := clock()
		if err != nil {
			return errMsg{err}
		}
		day, err := store.GetDay(ctx, date)
		if err != nil {
			return errMsg{err}
		}
		prev, err := store.PreviousDate(ctx, date)
		if err != nil {
			return errMsg{err}
		}
		next, err := store.NextDate(ctx, date, today)
		if err != nil {
			return errMsg{err}
		}
		return dayLoadedMsg{date: date, today: today, day: day, prev: prev, next: next}
	}
}

func (m Model) loadDays() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx := context.Background()

		var days []models.DayRecord
		for page := 1; ; page++ {
			p, err := store.ListDays(ctx, page, constants.DefaultPageSize)
			if err != nil {
				return errMsg{err}
			}
			days = append(days, p.Days...)
			if !p.HasNext() {
				break
			}
		}

		stats, err := store.TagFrequency(ctx, constants.DefaultStatsLimit)
		if err != nil {
			return errMsg{err}
		}
		return daysLoadedMsg{days: days, stats: stats}
	}
}

func (m Model) saveDay(date models.Date, dayType, notes string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		saved, err := store.UpsertDay(context.Background(), date, dayType, notes)
		if err != nil {
			return errMsg{err}
		}
		return savedMsg{date: date, saved: saved}
	}
}

func (m Model) deleteDay(id int64) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if err := store.DeleteDay(context.Background(), id); err != nil {
			return errMsg{err}
		}
		return deletedMsg{id: id}
	}
}
