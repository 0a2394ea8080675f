package daycount

import (
	"fmt"
	"time"

	"github.com/meenmo/fincal/utils"
)

// ActualFixed counts actual days over a fixed year length.
type ActualFixed struct {
	Basis int
}

var (
	Actual360      = ActualFixed{Basis: 360}
	Actual364      = ActualFixed{Basis: 364}
	Actual365Fixed = ActualFixed{Basis: 365}
	Actual366      = ActualFixed{Basis: 366}
)

func (a ActualFixed) DayCount(d1, d2 time.Time) int {
	return utils.DaysBetween(d1, d2)
}

func (a ActualFixed) YearFraction(d1, d2 time.Time) float64 {
	return float64(utils.DaysBetween(d1, d2)) / float64(a.Basis)
}

func (a ActualFixed) Name() string {
	if a.Basis == 365 {
		return "ACT/365F"
	}
	return fmt.Sprintf("ACT/%d", a.Basis)
}

// ActualActualMarket selects the Actual/Actual flavour.
type ActualActualMarket int

const (
	// ActualISDA splits the period at calendar year boundaries.
	ActualISDA ActualActualMarket = iota
	// ActualEuro (AFB) counts whole years back from the end date.
	ActualEuro
)

// ActualActual divides actual days by the actual length of the year(s)
// involved.
type ActualActual struct {
	Market ActualActualMarket
}

func (a ActualActual) DayCount(d1, d2 time.Time) int {
	return utils.DaysBetween(d1, d2)
}

func (a ActualActual) YearFraction(d1, d2 time.Time) float64 {
	d1, d2 = utils.Normalize(d1), utils.Normalize(d2)
	if d1.Equal(d2) {
		return 0
	}
	if d1.After(d2) {
		return -a.YearFraction(d2, d1)
	}
	if a.Market == ActualEuro {
		return yearFractionAFB(d1, d2)
	}
	return yearFractionISDA(d1, d2)
}

func (a ActualActual) Name() string {
	if a.Market == ActualEuro {
		return "ACT/ACT EURO"
	}
	return "ACT/ACT ISDA"
}

func yearFractionISDA(d1, d2 time.Time) float64 {
	y1, y2 := d1.Year(), d2.Year()
	if y1 == y2 {
		return float64(utils.DaysBetween(d1, d2)) / float64(utils.DaysInYear(y1))
	}
	sum := float64(y2 - y1 - 1)
	sum += float64(utils.DaysBetween(d1, utils.Date(y1+1, time.January, 1))) / float64(utils.DaysInYear(y1))
	sum += float64(utils.DaysBetween(utils.Date(y2, time.January, 1), d2)) / float64(utils.DaysInYear(y2))
	return sum
}

// d1 < d2.
func yearFractionAFB(d1, d2 time.Time) float64 {
	end := d2
	years := 0
	for {
		prev := utils.AddMonth(end, -12)
		// Feb 29 steps back to Mar 1 in a leap year.
		if prev.Month() == time.February && prev.Day() == 28 && utils.IsLeapYear(prev.Year()) {
			prev = utils.AddDays(prev, 1)
		}
		if prev.Before(d1) {
			break
		}
		years++
		end = prev
		if end.Equal(d1) {
			break
		}
	}

	den := 365
	if utils.IsLeapYear(end.Year()) {
		feb29 := utils.Date(end.Year(), time.February, 29)
		if end.After(feb29) && !d1.After(feb29) {
			den++
		}
	} else if utils.IsLeapYear(d1.Year()) {
		feb29 := utils.Date(d1.Year(), time.February, 29)
		if end.After(feb29) && !d1.After(feb29) {
			den++
		}
	}
	return float64(years) + float64(utils.DaysBetween(d1, end))/float64(den)
}
