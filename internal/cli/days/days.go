package days

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/auri/internal/cli"
	"github.com/julianstephens/auri/internal/models"
)

// DayCmd shows one day and its recorded neighbours.
type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	bg := context.Background()

	date, err := ctx.ParseDateOrToday(c.Date)
	if err != nil {
		return err
	}
	today, err := ctx.CurrentDate()
	if err != nil {
		return err
	}

	rec, err := ctx.Store.GetDay(bg, date)
	if err != nil {
		return err
	}
	prev, err := ctx.Store.PreviousDate(bg, date)
	if err != nil {
		return err
	}
	next, err := ctx.Store.NextDate(bg, date, today)
	if err != nil {
		return err
	}

	ctx.Println(cli.TitleStyle.Render(date.Display()))
	if rec == nil {
		ctx.Println(cli.MutedStyle.Render("Nothing recorded for this day."))
	} else {
		lead := "This"
		if date.Equal(today) {
			lead = "Today"
		}
		ctx.Printf("%s is a day for... %s\n", lead, cli.DayType(rec.DayType))
		if rec.Notes != "" {
			ctx.Println()
			ctx.Println(rec.Notes)
		}
	}

	ctx.Println()
	ctx.Println(cli.MutedStyle.Render(fmt.Sprintf("← %s   → %s", navLabel(prev), navLabel(next))))
	return nil
}

func navLabel(d *models.Date) string {
	if d == nil {
		return "none"
	}
	return d.String()
}

// SetCmd records the day type and notes for a day, replacing what was there.
type SetCmd struct {
	DayType string `arg:"" help:"Day type, e.g. Mending, Finding, Exploring."`
	Date    string `help:"Date to record (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
	Notes   string `help:"A few words about the day."`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDateOrToday(c.Date)
	if err != nil {
		return err
	}

	saved, err := ctx.Store.UpsertDay(context.Background(), date, c.DayType, c.Notes)
	if err != nil {
		return err
	}
	if !saved {
		ctx.Println(cli.WarningStyle.Render("Nothing saved: the day type is blank."))
		return nil
	}

	ctx.Printf("%s %s is a day for %s\n", cli.SuccessStyle.Render("✓"), date, cli.DayType(strings.TrimSpace(c.DayType)))
	return nil
}

// ListCmd prints days newest first, one page at a time.
type ListCmd struct {
	Page    int `help:"Page number, starting at 1." default:"1"`
	PerPage int `help:"Days per page." default:"${default_page_size}"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	page, err := ctx.Store.ListDays(context.Background(), c.Page, c.PerPage)
	if err != nil {
		return err
	}

	if page.Total == 0 {
		ctx.Println("No days recorded yet.")
		return nil
	}
	if len(page.Days) == 0 {
		ctx.Printf("Page %d is empty (%d pages).\n", page.Page, page.TotalPages())
		return nil
	}

	for _, d := range page.Days {
		ctx.Printf("%s  %s  %s\n",
			cli.MutedStyle.Render(fmt.Sprintf("#%-4d", d.ID)),
			cli.DateStyle.Render(d.Date.String()),
			cli.DayType(d.DayType))
		if d.Notes != "" {
			ctx.Printf("       %s\n", truncate(d.Notes, 70))
		}
	}

	ctx.Println()
	ctx.Println(cli.MutedStyle.Render(fmt.Sprintf("Page %d of %d (%d days)", page.Page, page.TotalPages(), page.Total)))
	return nil
}

// truncate shortens s to at most n runes on one line.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// StatsCmd shows the most common day types.
type StatsCmd struct {
	Limit int `help:"Number of day types to show." default:"${default_stats_limit}"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	stats, err := ctx.Store.TagFrequency(context.Background(), c.Limit)
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		ctx.Println("No days recorded yet.")
		return nil
	}

	ctx.Println(cli.TitleStyle.Render("Patterns in your days"))
	width := 0
	for _, s := range stats {
		width = max(width, len([]rune(s.DayType)))
	}
	for _, s := range stats {
		pad := strings.Repeat(" ", width-len([]rune(s.DayType)))
		ctx.Printf("  %s%s  %d\n", cli.DayType(s.DayType), pad, s.Count)
	}
	return nil
}

// DeleteCmd removes a day by id. Unknown ids are not an error.
type DeleteCmd struct {
	ID int64 `arg:"" help:"Id of the day to delete (see 'auri list')."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteDay(context.Background(), c.ID); err != nil {
		return err
	}
	ctx.Printf("%s Deleted day #%d\n", cli.SuccessStyle.Render("✓"), c.ID)
	return nil
}
