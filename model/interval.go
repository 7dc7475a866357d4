// model/interval.go
package model

import (
	"errors"
	"time"
)

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

var ErrInvalidRange = errors.New("start date must be before end date")

// Interval is a half-open range of whole calendar days [Start, End).
// End itself is excluded, so a borrow ending on a day and another
// starting on that same day do not overlap.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval from two UTC-midnight days.
// Inverted or zero-length ranges are rejected, never normalized.
func NewInterval(start, end time.Time) (Interval, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	if !start.Before(end) {
		return Interval{}, ErrInvalidRange
	}
	return Interval{Start: start, End: end}, nil
}

// ParseInterval parses two YYYY-MM-DD day strings into an interval.
func ParseInterval(start, end string) (Interval, error) {
	s, err := time.ParseInLocation(DateLayout, start, time.UTC)
	if err != nil {
		return Interval{}, ErrInvalidRange
	}
	e, err := time.ParseInLocation(DateLayout, end, time.UTC)
	if err != nil {
		return Interval{}, ErrInvalidRange
	}
	return NewInterval(s, e)
}

// Overlaps reports whether the two half-open intervals share any day.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Days returns the number of calendar days covered by the interval.
func (iv Interval) Days() int {
	return int(iv.End.Sub(iv.Start).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
