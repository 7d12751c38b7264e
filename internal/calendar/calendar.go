// Package calendar defines the bookable time grid for desk reservations:
// which calendar days accept bookings, which hour marks exist on a day,
// and how a (date, mark) pair maps to an absolute instant. It holds no
// state and touches no storage; the booking service and any display
// layer share it as the single source of truth for "is this slot even
// conceivable". All functions that depend on the current time take it
// as an explicit argument so callers and tests control the clock.
package calendar

import (
	"strconv"
	"strings"
	"time"
)

// WindowDays is the length of the rolling booking window. Slots may be
// booked from today through today+WindowDays, inclusive.
const WindowDays = 30

// slotTimes are the eight reservable hour marks of a day, in order.
// The grid is fixed and not configurable.
var slotTimes = []string{
	"9:00 A.M.",
	"10:00 A.M.",
	"11:00 A.M.",
	"12:00 P.M.",
	"1:00 P.M.",
	"2:00 P.M.",
	"3:00 P.M.",
	"4:00 P.M.",
}

// SlotTimes returns the ordered hour marks of a bookable day.
func SlotTimes() []string {
	out := make([]string, len(slotTimes))
	copy(out, slotTimes)
	return out
}

// IsBookableDay reports whether the given date falls on a weekday.
// Saturdays and Sundays are never bookable.
func IsBookableDay(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// SlotInstant combines a calendar date with an hour mark into an
// absolute instant. The mark is parsed as a 12-hour clock value: the
// text before the colon is the hour, and 12 is added for afternoon
// marks other than "12". A zero date yields the current time, matching
// the behaviour of the picker this grid was designed for.
func SlotInstant(date time.Time, mark string) time.Time {
	if date.IsZero() {
		return time.Now()
	}
	hourText, _, _ := strings.Cut(mark, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hourText))
	if err != nil {
		return time.Now()
	}
	if strings.Contains(mark, "P.M.") && hour != 12 {
		hour += 12
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
}

// IsPast reports whether instant is strictly before now.
func IsPast(now, instant time.Time) bool {
	return instant.Before(now)
}

// IsSlotInPast reports whether the slot identified by date and mark has
// already started relative to now.
func IsSlotInPast(now, date time.Time, mark string) bool {
	return IsPast(now, SlotInstant(date, mark))
}

// Window returns the inclusive [min, max] day bounds of the booking
// window as midnight instants: today and today+WindowDays in now's
// location.
func Window(now time.Time) (min, max time.Time) {
	min = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	max = min.AddDate(0, 0, WindowDays)
	return min, max
}

// InWindow reports whether the day of instant lies inside the booking
// window anchored at now. The comparison is on calendar days: a slot on
// the window's last day is in, the day after is out.
func InWindow(now, instant time.Time) bool {
	min, max := Window(now)
	day := time.Date(instant.Year(), instant.Month(), instant.Day(), 0, 0, 0, 0, instant.Location())
	return !day.Before(min) && !day.After(max)
}

// IsSlotHour reports whether instant sits exactly on one of the grid's
// hour marks: minute and second zero, hour between 09:00 and 16:00.
func IsSlotHour(instant time.Time) bool {
	if instant.Minute() != 0 || instant.Second() != 0 || instant.Nanosecond() != 0 {
		return false
	}
	h := instant.Hour()
	return h >= 9 && h <= 16
}
