// Package calendar provides the working-day calendar collaborator injected
// into the scheduling pipeline. It maps working-day offsets to dates and
// 1-based project weeks, skipping weekends and configured holidays.
package calendar

import "time"

// Calendar aligns working-day arithmetic with a project start date.
type Calendar struct {
	start    time.Time
	holidays map[time.Time]bool
}

// New creates a calendar anchored at start. If start falls on a weekend or
// holiday it is advanced to the next working day. Times are truncated to
// whole days in UTC.
func New(start time.Time, holidays ...time.Time) *Calendar {
	c := &Calendar{holidays: make(map[time.Time]bool, len(holidays))}
	for _, h := range holidays {
		c.holidays[dateOnly(h)] = true
	}
	d := dateOnly(start)
	for !c.IsWorkingDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	c.start = d
	return c
}

// Start returns the effective project start date.
func (c *Calendar) Start() time.Time { return c.start }

// IsWorkingDay reports whether d is a weekday and not a holiday.
func (c *Calendar) IsWorkingDay(d time.Time) bool {
	d = dateOnly(d)
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !c.holidays[d]
}

// AddWorkingDays returns the date reached by advancing the given number of
// working days from d. Zero returns the first working day at or after d.
func (c *Calendar) AddWorkingDays(d time.Time, days int) time.Time {
	cur := dateOnly(d)
	for !c.IsWorkingDay(cur) {
		cur = cur.AddDate(0, 0, 1)
	}
	for added := 0; added < days; {
		cur = cur.AddDate(0, 0, 1)
		if c.IsWorkingDay(cur) {
			added++
		}
	}
	return cur
}

// DateOf maps a working-day offset from the project start to a date.
// Offset 0 is the start date itself.
func (c *Calendar) DateOf(offset int) time.Time {
	return c.AddWorkingDays(c.start, offset)
}

// WeekOf returns the 1-based project week containing the given working-day
// offset. Weeks are counted in calendar days from the project start, so a
// week always spans seven consecutive dates.
func (c *Calendar) WeekOf(offset int) int {
	d := c.DateOf(offset)
	return int(d.Sub(c.start).Hours()/24)/7 + 1
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
