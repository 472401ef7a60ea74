package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/auri/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// TodayIn returns the current calendar date in the specified timezone.
// "Today" follows the configured timezone, not the server's.
func TodayIn(timezone string) (models.Date, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return models.Date{}, err
	}
	return models.DateOf(now), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// Clock reports the current calendar date. The web layer and the CLI take one so
// tests can pin "today".
type Clock func() (models.Date, error)

// TimezoneClock returns a Clock that evaluates "today" in timezone on each call.
func TimezoneClock(timezone string) Clock {
	return func() (models.Date, error) {
		return TodayIn(timezone)
	}
}

// FixedClock always reports d.
func FixedClock(d models.Date) Clock {
	return func() (models.Date, error) {
		return d, nil
	}
}
