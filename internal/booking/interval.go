package booking

import "time"

// DateLayout is the wire format for stay dates.  Stays are calendar
// date intervals with no time-of-day granularity.
const DateLayout = "2006-01-02"

// Stay is a half-open calendar interval [CheckIn, CheckOut): the
// guest occupies the nights of CheckIn up to but not including
// CheckOut.  Both bounds are UTC midnights.
type Stay struct {
    CheckIn  time.Time
    CheckOut time.Time
}

// DateOnly truncates t to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
    y, m, d := t.UTC().Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a yyyy-mm-dd string into a UTC midnight.
func ParseDate(s string) (time.Time, error) {
    return time.Parse(DateLayout, s)
}

// NewStay normalizes both bounds to UTC dates.  Interval validity
// (CheckOut after CheckIn) is checked by Valid; construction never
// fails so that callers can collect all field errors at once.
func NewStay(checkIn, checkOut time.Time) Stay {
    return Stay{CheckIn: DateOnly(checkIn), CheckOut: DateOnly(checkOut)}
}

// Valid reports whether the interval covers at least one night.
func (s Stay) Valid() bool { return s.CheckOut.After(s.CheckIn) }

// Nights returns the number of nights covered by the stay.  For a
// valid stay this is always at least 1.
func (s Stay) Nights() int {
    n := int(s.CheckOut.Sub(s.CheckIn).Hours() / 24)
    if n < 1 {
        n = 1
    }
    return n
}

// Overlaps reports whether two half-open intervals share at least one
// night: a1 < b2 AND a2 > b1.  Adjacent stays (one checking out the
// day the other checks in) do not overlap.
func (s Stay) Overlaps(o Stay) bool {
    return s.CheckIn.Before(o.CheckOut) && s.CheckOut.After(o.CheckIn)
}
