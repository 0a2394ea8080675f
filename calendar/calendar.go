// Package calendar decides business-day status and derives adjusted and
// advanced dates from it.
//
// A concrete calendar implements only IsBusinessDay; every other operation in
// this package is a default algorithm written against that single method.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/fincal/period"
	"github.com/meenmo/fincal/utils"
)

// MaxRollDays bounds every day-by-day roll. A calendar with no business day
// within this many days of a date is treated as broken.
const MaxRollDays = 366

var (
	// ErrNoBusinessDay is returned when a roll exceeds MaxRollDays.
	ErrNoBusinessDay = errors.New("no business day within roll limit")
	// ErrUnknownConvention is returned for unrecognised convention names.
	ErrUnknownConvention = errors.New("unknown business day convention")
	// ErrUnknownCalendar is returned for unrecognised calendar identifiers.
	ErrUnknownCalendar = errors.New("unknown calendar")
	// ErrYearOutOfRange is returned when a roll reaches a year the calendar's
	// holiday rules do not cover.
	ErrYearOutOfRange = errors.New("year outside calendar range")
)

// Calendar reports whether a date is a good business day. Implementations
// must be pure and safe for concurrent use.
type Calendar interface {
	IsBusinessDay(t time.Time) bool
}

// Ranged is implemented by calendars whose holiday rules only cover a
// bounded range of years, such as those with Easter-based holidays.
type Ranged interface {
	YearRange() (first, last int)
}

// YearRange returns the years cal can classify: its own range when it
// implements Ranged and 1..9999 otherwise.
func YearRange(cal Calendar) (first, last int) {
	if r, ok := cal.(Ranged); ok {
		return r.YearRange()
	}
	return 1, 9999
}

// CheckYear returns ErrYearOutOfRange when t falls outside YearRange(cal).
func CheckYear(cal Calendar, t time.Time) error {
	first, last := YearRange(cal)
	if y := t.Year(); y < first || y > last {
		return fmt.Errorf("%s outside %d-%d: %w", t.Format(utils.DateLayout), first, last, ErrYearOutOfRange)
	}
	return nil
}

// IsBusinessDay checks weekends and holiday sets of cal.
func IsBusinessDay(cal Calendar, t time.Time) bool {
	return cal.IsBusinessDay(t)
}

// IsHoliday is the negation of IsBusinessDay (weekends count as holidays).
func IsHoliday(cal Calendar, t time.Time) bool {
	return !cal.IsBusinessDay(t)
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func roll(cal Calendar, t time.Time, step int) (time.Time, error) {
	start := t
	for i := 0; ; i++ {
		if err := CheckYear(cal, t); err != nil {
			return time.Time{}, err
		}
		if cal.IsBusinessDay(t) {
			return t, nil
		}
		if i >= MaxRollDays {
			return time.Time{}, fmt.Errorf("roll from %s: %w", start.Format(utils.DateLayout), ErrNoBusinessDay)
		}
		t = utils.AddDays(t, step)
	}
}

// Adjust applies conv to t.
func Adjust(cal Calendar, t time.Time, conv Convention) (time.Time, error) {
	t = utils.Normalize(t)
	switch conv {
	case Unadjusted:
		return t, nil

	case Following:
		return roll(cal, t, 1)

	case ModifiedFollowing, HalfMonthModifiedFollowing:
		d, err := roll(cal, t, 1)
		if err != nil {
			return time.Time{}, err
		}
		if d.Month() != t.Month() {
			return roll(cal, t, -1)
		}
		if conv == HalfMonthModifiedFollowing && t.Day() <= 15 && d.Day() > 15 {
			return roll(cal, t, -1)
		}
		return d, nil

	case Preceding:
		return roll(cal, t, -1)

	case ModifiedPreceding:
		d, err := roll(cal, t, -1)
		if err != nil {
			return time.Time{}, err
		}
		if d.Month() != t.Month() {
			return roll(cal, t, 1)
		}
		return d, nil

	case Nearest:
		// Forward side is checked first on each step.
		for i := 0; i <= MaxRollDays; i++ {
			fwd, back := utils.AddDays(t, i), utils.AddDays(t, -i)
			if err := CheckYear(cal, fwd); err != nil {
				return time.Time{}, err
			}
			if cal.IsBusinessDay(fwd) {
				return fwd, nil
			}
			if err := CheckYear(cal, back); err != nil {
				return time.Time{}, err
			}
			if cal.IsBusinessDay(back) {
				return back, nil
			}
		}
		return time.Time{}, fmt.Errorf("nearest from %s: %w", t.Format(utils.DateLayout), ErrNoBusinessDay)

	default:
		return time.Time{}, fmt.Errorf("Adjust: %v: %w", conv, ErrUnknownConvention)
	}
}

// EndOfMonth returns the last business day of t's month, stepping back from
// the last calendar day. It stops at the 1st even if that is not a business day.
func EndOfMonth(cal Calendar, t time.Time) time.Time {
	d := utils.Date(t.Year(), t.Month(), utils.DaysInMonth(t.Year(), t.Month()))
	for d.Day() > 1 && !cal.IsBusinessDay(d) {
		d = utils.AddDays(d, -1)
	}
	return d
}

// LastBusinessDayOfMonth is EndOfMonth under its older name.
func LastBusinessDayOfMonth(cal Calendar, t time.Time) time.Time {
	return EndOfMonth(cal, t)
}

// IsEndOfMonth checks if t is the last business day of its month.
func IsEndOfMonth(cal Calendar, t time.Time) bool {
	return utils.Normalize(t).Equal(EndOfMonth(cal, t))
}

// Advance moves t by p on cal.
//
// Months and years are added to t and the result adjusted by conv; when
// endOfMonth is set the adjusted date is snapped to EndOfMonth. Days(n) walks
// n business days in the sign direction of n (Days(0) adjusts t by conv).
// Every other period is added to t and then adjusted.
func Advance(cal Calendar, t time.Time, p period.Period, conv Convention, endOfMonth bool) (time.Time, error) {
	t = utils.Normalize(t)
	switch p.Kind() {
	case period.Month, period.Year:
		d, err := p.AddTo(t)
		if err != nil {
			return time.Time{}, fmt.Errorf("Advance: %w", err)
		}
		d, err = Adjust(cal, d, conv)
		if err != nil {
			return time.Time{}, fmt.Errorf("Advance: %w", err)
		}
		if endOfMonth {
			return EndOfMonth(cal, d), nil
		}
		return d, nil

	case period.Day:
		n := p.Count()
		if n == 0 {
			d, err := Adjust(cal, t, conv)
			if err != nil {
				return time.Time{}, fmt.Errorf("Advance: %w", err)
			}
			return d, nil
		}
		return walkBusinessDays(cal, t, n)

	default:
		d, err := p.AddTo(t)
		if err != nil {
			return time.Time{}, fmt.Errorf("Advance: %w", err)
		}
		d, err = Adjust(cal, d, conv)
		if err != nil {
			return time.Time{}, fmt.Errorf("Advance: %w", err)
		}
		return d, nil
	}
}

func walkBusinessDays(cal Calendar, t time.Time, n int64) (time.Time, error) {
	step := int64(1)
	if n < 0 {
		step = -1
	}
	gap := 0
	for n != 0 {
		t = utils.AddDays(t, int(step))
		if y := t.Year(); y < 1 || y > 9999 {
			return time.Time{}, fmt.Errorf("Advance: %w", period.ErrDateOutOfRange)
		}
		if err := CheckYear(cal, t); err != nil {
			return time.Time{}, fmt.Errorf("Advance: %w", err)
		}
		if cal.IsBusinessDay(t) {
			n -= step
			gap = 0
			continue
		}
		gap++
		if gap > MaxRollDays {
			return time.Time{}, fmt.Errorf("Advance: %w", ErrNoBusinessDay)
		}
	}
	return t, nil
}

// AddBusinessDays advances n business days (n can be negative). n == 0 returns t.
func AddBusinessDays(cal Calendar, t time.Time, n int) (time.Time, error) {
	if n == 0 {
		return utils.Normalize(t), nil
	}
	return walkBusinessDays(cal, utils.Normalize(t), int64(n))
}

// BusinessDaysBetween counts business days from from to to. Dates strictly
// between the two are always counted; the earlier date is counted when
// includeFirst is set and the later date when includeLast is set.
//
// When from is after to the result is the negated count of the swapped
// interval with the same flags, so the flags always refer to the
// chronologically first and last date regardless of argument order.
func BusinessDaysBetween(cal Calendar, from, to time.Time, includeFirst, includeLast bool) int {
	from, to = utils.Normalize(from), utils.Normalize(to)
	if from.Equal(to) {
		return 0
	}
	if from.After(to) {
		return -BusinessDaysBetween(cal, to, from, includeFirst, includeLast)
	}

	count := 0
	for d := utils.AddDays(from, 1); d.Before(to); d = utils.AddDays(d, 1) {
		if cal.IsBusinessDay(d) {
			count++
		}
	}
	if includeFirst && cal.IsBusinessDay(from) {
		count++
	}
	if includeLast && cal.IsBusinessDay(to) {
		count++
	}
	return count
}

// HolidayList returns the non-business days in [from, to]. Weekends are
// included only when includeWeekends is set.
func HolidayList(cal Calendar, from, to time.Time, includeWeekends bool) []time.Time {
	var out []time.Time
	to = utils.Normalize(to)
	for d := utils.Normalize(from); !d.After(to); d = utils.AddDays(d, 1) {
		if cal.IsBusinessDay(d) {
			continue
		}
		if !includeWeekends && IsWeekend(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// BusinessDayList returns the business days in [from, to].
func BusinessDayList(cal Calendar, from, to time.Time) []time.Time {
	var out []time.Time
	to = utils.Normalize(to)
	for d := utils.Normalize(from); !d.After(to); d = utils.AddDays(d, 1) {
		if cal.IsBusinessDay(d) {
			out = append(out, d)
		}
	}
	return out
}
