// Package market holds the standard conventions of interest rate benchmarks
// and swap legs: which calendar, business day convention, day counter and
// fixing lag each one uses.
package market

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/meenmo/fincal/calendar"
	"github.com/meenmo/fincal/daycount"
	"github.com/meenmo/fincal/period"
)

// ErrUnknownIndex is returned by IndexByName for unregistered names.
var ErrUnknownIndex = errors.New("unknown reference index")

// ReferenceIndex enumerates supported floating benchmarks.
type ReferenceIndex string

const (
	ESTR      ReferenceIndex = "ESTR"
	EURIBOR3M ReferenceIndex = "EURIBOR3M"
	EURIBOR6M ReferenceIndex = "EURIBOR6M"
	SOFR      ReferenceIndex = "SOFR"
	SONIA     ReferenceIndex = "SONIA"
)

// IsOvernight reports whether the reference rate is an overnight index.
func IsOvernight(r ReferenceIndex) bool {
	switch r {
	case ESTR, SOFR, SONIA:
		return true
	default:
		return false
	}
}

// IndexConvention describes how a benchmark fixes and accrues: a rate fixed
// on the fixing date applies from the value date (FixingLag business days
// later) to the maturity date (Tenor after the value date).
type IndexConvention struct {
	Index      ReferenceIndex
	Currency   string
	Tenor      period.Period
	FixingLag  int
	Calendar   calendar.Calendar
	Convention calendar.Convention
	EndOfMonth bool
	DayCounter daycount.DayCounter
}

var indices = map[ReferenceIndex]IndexConvention{
	ESTR: {
		Index: ESTR, Currency: "EUR", Tenor: period.Days(1), FixingLag: 0,
		Calendar: calendar.Target{}, Convention: calendar.Following,
		DayCounter: daycount.Actual360,
	},
	EURIBOR3M: {
		Index: EURIBOR3M, Currency: "EUR", Tenor: period.Months(3), FixingLag: 2,
		Calendar: calendar.Target{}, Convention: calendar.ModifiedFollowing, EndOfMonth: true,
		DayCounter: daycount.Actual360,
	},
	EURIBOR6M: {
		Index: EURIBOR6M, Currency: "EUR", Tenor: period.Months(6), FixingLag: 2,
		Calendar: calendar.Target{}, Convention: calendar.ModifiedFollowing, EndOfMonth: true,
		DayCounter: daycount.Actual360,
	},
	SOFR: {
		Index: SOFR, Currency: "USD", Tenor: period.Days(1), FixingLag: 0,
		Calendar: calendar.UnitedStates{Market: calendar.USSettlement}, Convention: calendar.Following,
		DayCounter: daycount.Actual360,
	},
	SONIA: {
		Index: SONIA, Currency: "GBP", Tenor: period.Days(1), FixingLag: 0,
		Calendar: calendar.UnitedKingdom{}, Convention: calendar.Following,
		DayCounter: daycount.Actual365Fixed,
	},
}

// IndexByName returns the convention of a registered index.
func IndexByName(name string) (IndexConvention, error) {
	idx, ok := indices[ReferenceIndex(strings.ToUpper(strings.TrimSpace(name)))]
	if !ok {
		return IndexConvention{}, fmt.Errorf("%q: %w", name, ErrUnknownIndex)
	}
	return idx, nil
}

// Indices lists the registered indices in name order.
func Indices() []ReferenceIndex {
	out := make([]ReferenceIndex, 0, len(indices))
	for k := range indices {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsValidFixingDate reports whether fixing is a business day on the index calendar.
func (c IndexConvention) IsValidFixingDate(fixing time.Time) bool {
	return c.Calendar.IsBusinessDay(fixing)
}

// ValueDate is the start of the period a fixing applies to.
func (c IndexConvention) ValueDate(fixing time.Time) (time.Time, error) {
	return calendar.Advance(c.Calendar, fixing, period.Days(c.FixingLag), calendar.Following, false)
}

// FixingDate inverts ValueDate.
func (c IndexConvention) FixingDate(value time.Time) (time.Time, error) {
	return calendar.Advance(c.Calendar, value, period.Days(-c.FixingLag), calendar.Preceding, false)
}

// MaturityDate is the end of the period starting on value. The end of month
// rule applies only when value is the last business day of its month.
func (c IndexConvention) MaturityDate(value time.Time) (time.Time, error) {
	eom := c.EndOfMonth && calendar.IsEndOfMonth(c.Calendar, value)
	return calendar.Advance(c.Calendar, value, c.Tenor, c.Convention, eom)
}

// Period resolves the value and maturity dates of a fixing together with
// the accrual year fraction between them.
func (c IndexConvention) Period(fixing time.Time) (value, maturity time.Time, accrual float64, err error) {
	value, err = c.ValueDate(fixing)
	if err != nil {
		return value, maturity, 0, fmt.Errorf("%s value date: %w", c.Index, err)
	}
	maturity, err = c.MaturityDate(value)
	if err != nil {
		return value, maturity, 0, fmt.Errorf("%s maturity date: %w", c.Index, err)
	}
	return value, maturity, c.DayCounter.YearFraction(value, maturity), nil
}
