package kpi

import "time"

// DefaultOffset is the offset of the reference timezone. It is fixed and
// never observes daylight saving.
const DefaultOffset = 6 * time.Hour

var defaultLocation = time.FixedZone("UTC+6", int(DefaultOffset.Seconds()))

// DefaultLocation returns the fixed UTC+6 reference zone
func DefaultLocation() *time.Location {
	return defaultLocation
}

// BusinessClock measures elapsed time excluding Saturdays and Sundays.
// All calendar arithmetic happens in the clock's location regardless of
// the zone the inputs carry.
type BusinessClock struct {
	loc *time.Location
}

// NewBusinessClock creates a clock for the given location. A nil location
// selects DefaultLocation.
func NewBusinessClock(loc *time.Location) *BusinessClock {
	if loc == nil {
		loc = DefaultLocation()
	}
	return &BusinessClock{loc: loc}
}

// Location returns the reference location
func (c *BusinessClock) Location() *time.Location {
	return c.loc
}

// Duration is Between for optional timestamps; a missing end point yields zero.
func (c *BusinessClock) Duration(start, end *time.Time) time.Duration {
	if start == nil || end == nil {
		return 0
	}
	return c.Between(*start, *end)
}

// Between returns the business duration between two instants. Reversed
// inputs are swapped, so the result is never negative.
//
// A span within one business day counts wall-clock time. Otherwise the first
// business day counts from start to midnight, each business day strictly in
// between counts 24h, and the last business day counts from midnight to end.
// Weekend days count nothing. Middle days count 24h even across a DST change
// in the clock's location.
func (c *BusinessClock) Between(start, end time.Time) time.Duration {
	s, e := start.In(c.loc), end.In(c.loc)
	if s.After(e) {
		s, e = e, s
	}

	firstDay := c.midnight(s)
	lastDay := c.midnight(e)

	if firstDay.Equal(lastDay) {
		if !isBusinessDay(s) {
			return 0
		}
		return e.Sub(s)
	}

	var total time.Duration
	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		if !isBusinessDay(day) {
			continue
		}
		next := day.AddDate(0, 0, 1)
		switch {
		case day.Equal(firstDay):
			total += next.Sub(s)
		case day.Equal(lastDay):
			total += e.Sub(day)
		default:
			total += 24 * time.Hour
		}
	}
	return total
}

// IsBusinessDay reports whether t falls on Monday to Friday in the clock's location
func (c *BusinessClock) IsBusinessDay(t time.Time) bool {
	return isBusinessDay(t.In(c.loc))
}

func (c *BusinessClock) midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

func isBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
