package scheduling

import "time"

// Clock yields the current time in the academy's configured timezone. Every
// validator method reads it exactly once per call so that all comparisons
// inside a single validation pass use the same instant.
type Clock interface {
	Now() time.Time
}

type locationClock struct {
	loc *time.Location
}

// NewLocationClock returns a Clock pinned to the given timezone. A nil
// location falls back to UTC.
func NewLocationClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return locationClock{loc: loc}
}

func (c locationClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always reports the same instant. Test helper.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time { return c.Instant }

// startOfDay truncates t to midnight in its own location. Date-level
// comparisons (past-date rejection, earliest-start) work on days, not
// instants.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
