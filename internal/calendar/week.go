package calendar

import (
	"errors"
	"fmt"
	"time"
)

const weekIDLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Clock abstracts time so week math stays deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location, or in the process local time
// when Location is nil. Week boundaries follow that location.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// WeekID is the ISO date (yyyy-mm-dd) of the Monday that starts a calendar week.
// Lexical order of two WeekIDs matches their chronological order.
type WeekID string

func (w WeekID) String() string {
	return string(w)
}

// Start returns Monday 00:00 of the week in the given location.
func (w WeekID) Start(loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(weekIDLayout, string(w), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, string(w))
	}
	return d, nil
}

// End returns the following Monday 00:00, exclusive end of the week.
func (w WeekID) End(loc *time.Location) (time.Time, error) {
	start, err := w.Start(loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.AddDate(0, 0, 7), nil
}

// WeekOf returns the week containing t, evaluated in t's location.
func WeekOf(t time.Time) WeekID {
	// time.Weekday has Sunday = 0, shift so Monday = 0
	offset := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	return WeekID(monday.Format(weekIDLayout))
}

func CurrentWeekID(clock Clock) WeekID {
	return WeekOf(clock.Now())
}

// ParseWeekID accepts any yyyy-mm-dd date and normalizes it to the Monday of its week.
func ParseWeekID(s string) (WeekID, error) {
	d, err := time.Parse(weekIDLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return WeekOf(d), nil
}

// WeekDiff returns the signed number of Monday boundaries from b to a,
// positive when a is later. Both sides are reduced to civil days in UTC,
// so DST transitions never skew the result.
func WeekDiff(a, b WeekID) (int, error) {
	aDays, err := civilDays(a)
	if err != nil {
		return 0, err
	}
	bDays, err := civilDays(b)
	if err != nil {
		return 0, err
	}
	return floorDiv(aDays-bDays, 7), nil
}

// civilDays returns the days since the unix epoch of the week's Monday.
func civilDays(w WeekID) (int64, error) {
	normalized, err := ParseWeekID(string(w))
	if err != nil {
		return 0, err
	}
	d, _ := time.Parse(weekIDLayout, string(normalized))
	return d.Unix() / 86400, nil
}

func floorDiv(a, b int64) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return int(q)
}
