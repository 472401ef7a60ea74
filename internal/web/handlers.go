package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/julianstephens/auri/internal/constants"
	"github.com/julianstephens/auri/internal/logger"
	"github.com/julianstephens/auri/internal/models"
	"github.com/julianstephens/auri/internal/transfer"
)

// dayPage is the data behind the "index" template.
type dayPage struct {
	Subtitle string
	Date     models.Date
	IsToday  bool
	Prev     string
	Next     string
	Entry    *models.DayRecord
	Edit     bool
}

// allPage is the data behind the "all" template.
type allPage struct {
	Subtitle string
	Page     models.Page
	Stats    []models.TagCount
}

func dateString(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// dateParam parses a date parameter, defaulting to today when it is absent.
func (s *Server) dateParam(raw string) (date, today models.Date, err error) {
	today, err = s.today()
	if err != nil {
		return models.Date{}, models.Date{}, err
	}
	if raw == "" {
		return today, today, nil
	}
	date, err = models.ParseDate(raw)
	if err != nil {
		return models.Date{}, models.Date{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid date").SetInternal(err)
	}
	return date, today, nil
}

// handleDay shows one day: its record or the entry form, with links to the
// neighbouring recorded days.
func (s *Server) handleDay(c echo.Context) error {
	ctx := c.Request().Context()

	date, today, err := s.dateParam(c.QueryParam("date"))
	if err != nil {
		return err
	}

	prev, err := s.store.PreviousDate(ctx, date)
	if err != nil {
		return err
	}
	next, err := s.store.NextDate(ctx, date, today)
	if err != nil {
		return err
	}
	entry, err := s.store.GetDay(ctx, date)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "index", dayPage{
		Subtitle: "What kind of day is today?",
		Date:     date,
		IsToday:  date.Equal(today),
		Prev:     dateString(prev),
		Next:     dateString(next),
		Entry:    entry,
		Edit:     c.QueryParam("edit") == "true",
	})
}

// handleAll lists every day, newest first, with the most common day types.
func (s *Server) handleAll(c echo.Context) error {
	ctx := c.Request().Context()

	// Like the form itself, a missing or garbled page number means page 1.
	page, _ := strconv.Atoi(c.QueryParam("page"))

	result, err := s.store.ListDays(ctx, page, constants.DefaultPageSize)
	if err != nil {
		return err
	}
	stats, err := s.store.TagFrequency(ctx, constants.DefaultStatsLimit)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "all", allPage{
		Subtitle: "All your days",
		Page:     result,
		Stats:    stats,
	})
}

// handleSaveDay upserts the submitted day. An empty day type saves nothing.
func (s *Server) handleSaveDay(c echo.Context) error {
	date, _, err := s.dateParam(c.FormValue("date"))
	if err != nil {
		return err
	}

	saved, err := s.store.UpsertDay(c.Request().Context(), date, c.FormValue("day_type"), c.FormValue("notes"))
	if err != nil {
		return err
	}
	if saved {
		logger.Debug("Day saved", "date", date)
	}

	return c.Redirect(http.StatusSeeOther, "/?date="+date.String())
}

func (s *Server) handleDeleteDay(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id").SetInternal(err)
	}

	if err := s.store.DeleteDay(c.Request().Context(), id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// handleExport downloads every day as a JSON file named for today.
func (s *Server) handleExport(c echo.Context) error {
	today, err := s.today()
	if err != nil {
		return err
	}

	days, err := s.store.ExportDays(c.Request().Context())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := transfer.Encode(&buf, days); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", transfer.FileName(today)))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, buf.Bytes())
}

// handleImport replaces every day with the uploaded export file. The file is
// parsed in full before anything is touched.
func (s *Server) handleImport(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file provided").SetInternal(err)
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	days, err := transfer.Decode(f)
	switch {
	case errors.Is(err, transfer.ErrMalformedInput):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON file").SetInternal(err)
	case errors.Is(err, transfer.ErrInvalidEntry):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid entry: "+err.Error()).SetInternal(err)
	case err != nil:
		return err
	}

	if s.backupBeforeImport != nil {
		path, err := s.backupBeforeImport()
		if err != nil {
			return fmt.Errorf("failed to back up before import: %w", err)
		}
		logger.Info("Backup created before import", "path", path)
	}

	if err := s.store.ReplaceAll(c.Request().Context(), days); err != nil {
		return err
	}
	logger.Info("Import complete", "days", len(days))

	return c.Redirect(http.StatusSeeOther, "/")
}
