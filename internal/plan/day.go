package plan

import "time"

// DefaultUTCOffset is the zone "today" is computed in when none is configured.
const DefaultUTCOffset = 7

const day = 24 * time.Hour

// DayNumber returns the 1-based day of target counted from start, so
// DayNumber(d, d) == 1. Only the calendar dates matter: each value is read
// in its own location and clock changes cannot shift the count.
func DayNumber(start, target time.Time) int {
	return DaysBetween(start, target) + 1
}

// DaysBetween returns the number of calendar days from one date to another,
// comparing the dates as written in each value's own location.
func DaysBetween(from, to time.Time) int {
	return int(civil(to).Sub(civil(from)) / day)
}

// ReadingDate returns today shifted by offset days.
func ReadingDate(today time.Time, offset int) time.Time {
	return dateOf(today).AddDate(0, 0, offset)
}

// Today returns the current calendar date in a fixed zone utcOffsetHours
// east of UTC.
func Today(now time.Time, utcOffsetHours int) time.Time {
	zone := time.FixedZone("", utcOffsetHours*3600)
	return dateOf(now.In(zone))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// civil maps t's calendar date onto UTC midnight.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
