package models

import "time"

// DayRecord is one journaled day.
type DayRecord struct {
	ID        int64     `json:"id"`
	Date      Date      `json:"date"`
	DayType   string    `json:"day_type"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// Export drops the store-assigned fields.
func (r DayRecord) Export() DayExport {
	return DayExport{Date: r.Date, DayType: r.DayType, Notes: r.Notes}
}

// DayExport is the user-facing projection used by export and import.
type DayExport struct {
	Date    Date   `json:"date"`
	DayType string `json:"day_type"`
	Notes   string `json:"notes"`
}

// TagCount is how many days carry a given day type.
type TagCount struct {
	DayType string `json:"day_type"`
	Count   int    `json:"count"`
}

// Page is one page of days, newest first.
type Page struct {
	Days     []DayRecord
	Total    int
	Page     int
	PageSize int
}

// TotalPages is ceil(Total / PageSize).
func (p Page) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

func (p Page) HasPrev() bool { return p.Page > 1 }

func (p Page) HasNext() bool { return p.Page < p.TotalPages() }
