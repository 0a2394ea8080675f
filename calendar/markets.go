package calendar

import (
	"fmt"
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"

	"github.com/meenmo/fincal/utils"
)

// Null treats every day, weekends included, as a business day.
type Null struct{}

func (Null) IsBusinessDay(time.Time) bool { return true }

// WeekendsOnly closes on Saturdays and Sundays only.
type WeekendsOnly struct{}

func (WeekendsOnly) IsBusinessDay(t time.Time) bool { return !IsWeekend(t) }

// Target is the TARGET2 (euro settlement) calendar.
type Target struct{}

func (Target) IsBusinessDay(t time.Time) bool {
	if IsWeekend(t) {
		return false
	}
	y, m, d := t.Date()
	switch {
	case m == time.January && d == 1:
		return false
	case y >= 1999 && (m == time.December && d == 25):
		return false
	case y >= 2000 && (isGoodFriday(t) || isEasterMonday(t)):
		return false
	case y >= 2000 && m == time.May && d == 1:
		return false
	case y >= 2000 && m == time.December && d == 26:
		return false
	case m == time.December && d == 31 && (y == 1998 || y == 1999 || y == 2001):
		return false
	}
	return true
}

// YearRange implements Ranged. Easter holidays apply from 2000 on.
func (Target) YearRange() (first, last int) { return 1, EasterLastYear }

// USMarket selects which US holiday predicate UnitedStates consults.
type USMarket int

const (
	// USSettlement is the federal settlement calendar.
	USSettlement USMarket = iota
	// USNYSE is the New York Stock Exchange calendar.
	USNYSE
)

func (m USMarket) String() string {
	if m == USNYSE {
		return "NYSE"
	}
	return "Settlement"
}

var (
	usSettlementHolidays = newBusinessCalendar(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
	// Good Friday comes from the Easter table.
	usExchangeHolidays = newBusinessCalendar(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
)

func newBusinessCalendar(hs ...*cal.Holiday) *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(hs...)
	return c
}

// UnitedStates is the US calendar for the given market.
type UnitedStates struct {
	Market USMarket
}

func (u UnitedStates) IsBusinessDay(t time.Time) bool {
	if IsWeekend(t) {
		return false
	}
	t = utils.Normalize(t)
	switch u.Market {
	case USNYSE:
		if isGoodFriday(t) {
			return false
		}
		_, observed, _ := usExchangeHolidays.IsHoliday(t)
		return !observed
	default:
		_, observed, _ := usSettlementHolidays.IsHoliday(t)
		return !observed
	}
}

// YearRange implements Ranged. Only NYSE observes Good Friday.
func (u UnitedStates) YearRange() (first, last int) {
	if u.Market == USNYSE {
		return EasterFirstYear, EasterLastYear
	}
	return 1, 9999
}

// One-off bank holidays and moved fixed holidays in England and Wales.
var ukSpecialHolidays = map[string]struct{}{
	"1995-05-08": {}, // VE day 50th anniversary (early May moved)
	"1999-12-31": {}, // millennium
	"2002-06-03": {}, // golden jubilee
	"2002-06-04": {}, // spring bank holiday moved
	"2011-04-29": {}, // royal wedding
	"2012-06-04": {}, // spring bank holiday moved
	"2012-06-05": {}, // diamond jubilee
	"2020-05-08": {}, // VE day 75th anniversary (early May moved)
	"2022-06-02": {}, // spring bank holiday moved
	"2022-06-03": {}, // platinum jubilee
	"2022-09-19": {}, // state funeral
	"2023-05-08": {}, // coronation
}

// Years where the late May or early May Monday is not a holiday.
var ukMovedMondays = map[string]struct{}{
	"1995-05-01": {},
	"2002-05-27": {},
	"2012-05-28": {},
	"2020-05-04": {},
	"2022-05-30": {},
}

// UnitedKingdom is the England and Wales bank holiday calendar.
type UnitedKingdom struct{}

func (UnitedKingdom) IsBusinessDay(t time.Time) bool {
	if IsWeekend(t) {
		return false
	}
	t = utils.Normalize(t)
	key := t.Format(utils.DateLayout)
	if _, ok := ukSpecialHolidays[key]; ok {
		return false
	}

	_, m, d := t.Date()
	wd := t.Weekday()
	monday := wd == time.Monday
	switch {
	// New Year's Day, substituted to the following Monday.
	case m == time.January && (d == 1 || ((d == 2 || d == 3) && monday)):
		return false
	case isGoodFriday(t) || isEasterMonday(t):
		return false
	// Early May: first Monday of May.
	case m == time.May && monday && d <= 7:
		_, moved := ukMovedMondays[key]
		return moved
	// Spring: last Monday of May.
	case m == time.May && monday && d >= 25:
		_, moved := ukMovedMondays[key]
		return moved
	// Summer: last Monday of August.
	case m == time.August && monday && d >= 25:
		return false
	// Christmas and Boxing Day with substitutes.
	case m == time.December && (d == 25 || d == 26):
		return false
	case m == time.December && (d == 27 || d == 28) && (monday || wd == time.Tuesday):
		return false
	}
	return true
}

// YearRange implements Ranged.
func (UnitedKingdom) YearRange() (first, last int) { return EasterFirstYear, EasterLastYear }

// HolidaySet is a weekend calendar extended with an explicit list of
// holidays, for markets whose holidays are published as data.
type HolidaySet struct {
	name     string
	holidays map[string]struct{}
}

// NewHolidaySet builds a HolidaySet from ISO dates ("2006-01-02").
func NewHolidaySet(name string, dates ...string) (*HolidaySet, error) {
	set := make(map[string]struct{}, len(dates))
	for _, s := range dates {
		d, err := utils.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("NewHolidaySet %s: %w", name, err)
		}
		set[d.Format(utils.DateLayout)] = struct{}{}
	}
	return &HolidaySet{name: name, holidays: set}, nil
}

func (h *HolidaySet) IsBusinessDay(t time.Time) bool {
	if IsWeekend(t) {
		return false
	}
	_, ok := h.holidays[t.Format(utils.DateLayout)]
	return !ok
}

func (h *HolidaySet) String() string {
	return h.name
}
