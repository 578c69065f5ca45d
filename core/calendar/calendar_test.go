package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStartAdvancesToWorkingDay(t *testing.T) {
	// Saturday start moves to Monday.
	c := New(date(2026, time.January, 3))
	if got := c.Start(); !got.Equal(date(2026, time.January, 5)) {
		t.Fatalf("expected 2026-01-05 got %v", got)
	}
}

func TestAddWorkingDaysSkipsWeekend(t *testing.T) {
	c := New(date(2026, time.January, 5)) // Monday
	// 5 working days from Monday is the next Monday.
	if got := c.AddWorkingDays(c.Start(), 5); !got.Equal(date(2026, time.January, 12)) {
		t.Fatalf("expected 2026-01-12 got %v", got)
	}
}

func TestAddWorkingDaysSkipsHoliday(t *testing.T) {
	carnival := date(2026, time.February, 17)
	c := New(date(2026, time.February, 16), carnival) // Monday, Tuesday holiday
	if got := c.AddWorkingDays(c.Start(), 1); !got.Equal(date(2026, time.February, 18)) {
		t.Fatalf("expected holiday skipped, got %v", got)
	}
}

func TestWeekOf(t *testing.T) {
	c := New(date(2026, time.January, 5))
	cases := []struct {
		offset int
		week   int
	}{
		{0, 1},
		{4, 1},  // Friday of week 1
		{5, 2},  // Monday of week 2
		{10, 3}, // Monday of week 3
	}
	for _, tc := range cases {
		if got := c.WeekOf(tc.offset); got != tc.week {
			t.Fatalf("offset %d: expected week %d got %d", tc.offset, tc.week, got)
		}
	}
}

func TestIsWorkingDay(t *testing.T) {
	holiday := date(2026, time.February, 17)
	c := New(date(2026, time.January, 5), holiday)
	if c.IsWorkingDay(date(2026, time.January, 10)) {
		t.Fatalf("saturday should not be a working day")
	}
	if c.IsWorkingDay(holiday) {
		t.Fatalf("holiday should not be a working day")
	}
	if !c.IsWorkingDay(date(2026, time.January, 6)) {
		t.Fatalf("tuesday should be a working day")
	}
}
