package earning

import (
	"time"

	"github.com/shopspring/decimal"
)

// Window anchors the calendar periods of an earnings summary: a reference instant observed
// in a time zone. Weeks start on Monday.
type Window struct {
	Reference time.Time
	Location  *time.Location
}

// Range is the half-open interval [From, To).
type Range struct {
	From time.Time
	To   time.Time
}

func NewWindow(reference time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	return Window{Reference: reference, Location: loc}
}

func (w Window) local() time.Time {
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	return w.Reference.In(loc)
}

// Today covers the calendar day of the reference time.
func (w Window) Today() Range {
	ref := w.local()
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	return Range{From: start, To: start.AddDate(0, 0, 1)}
}

// Week covers Monday 00:00 through the following Monday.
func (w Window) Week() Range {
	today := w.Today().From
	offset := (int(today.Weekday()) + 6) % 7
	start := today.AddDate(0, 0, -offset)
	return Range{From: start, To: start.AddDate(0, 0, 7)}
}

func (w Window) Month() Range {
	ref := w.local()
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return Range{From: start, To: start.AddDate(0, 1, 0)}
}

// Summary is the earnings of a driver per calendar period of a Window.
type Summary struct {
	Today decimal.Decimal
	Week  decimal.Decimal
	Month decimal.Decimal
}
