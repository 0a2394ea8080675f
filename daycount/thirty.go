package daycount

import (
	"time"

	"github.com/meenmo/fincal/utils"
)

// ThirtyMarket selects the end-of-month rules of a 30/360 convention.
type ThirtyMarket int

const (
	// USA is the 30/360 US (bond basis with the February rule).
	USA ThirtyMarket = iota
	// European is 30E/360 (Eurobond basis).
	European
	// Italian treats the end of February as the 30th.
	Italian
	// ISMA is 30/360 ISMA (bond basis).
	ISMA
	// ISDA is 30E/360 ISDA. The termination date keeps its end of February.
	ISDA
	// German is 30E/360 ISDA without the termination date exemption.
	German
	// NASD rolls a 31st end date into the next month unless the start is
	// at month end.
	NASD
)

var thirtyNames = map[ThirtyMarket]string{
	USA:      "30/360 USA",
	European: "30E/360",
	Italian:  "30/360 ITALIAN",
	ISMA:     "30/360 ISMA",
	ISDA:     "30E/360 ISDA",
	German:   "30/360 GERMAN",
	NASD:     "30/360 NASD",
}

// Thirty360 counts every month as 30 days and every year as 360.
type Thirty360 struct {
	Market ThirtyMarket
	// TerminationDate is only consulted by the ISDA market.
	TerminationDate time.Time
}

func (c Thirty360) DayCount(d1, d2 time.Time) int {
	d1, d2 = utils.Normalize(d1), utils.Normalize(d2)
	if d1.Equal(d2) {
		return 0
	}
	if d1.After(d2) {
		return -c.DayCount(d2, d1)
	}

	y1, m1, dd1 := d1.Date()
	y2, m2, dd2 := d2.Date()
	mm1, mm2 := int(m1), int(m2)

	switch c.Market {
	case USA:
		if isLastOfFebruary(d1) {
			if isLastOfFebruary(d2) {
				dd2 = 30
			}
			dd1 = 30
		}
		if dd2 == 31 && dd1 >= 30 {
			dd2 = 30
		}
		if dd1 == 31 {
			dd1 = 30
		}

	case European:
		if dd1 == 31 {
			dd1 = 30
		}
		if dd2 == 31 {
			dd2 = 30
		}

	case Italian:
		if dd1 == 31 {
			dd1 = 30
		}
		if dd2 == 31 {
			dd2 = 30
		}
		if mm1 == 2 && dd1 > 27 {
			dd1 = 30
		}
		if mm2 == 2 && dd2 > 27 {
			dd2 = 30
		}

	case ISMA:
		if dd1 == 31 {
			dd1 = 30
		}
		if dd2 == 31 && dd1 == 30 {
			dd2 = 30
		}

	case ISDA, German:
		if dd1 == 31 || isLastOfFebruary(d1) {
			dd1 = 30
		}
		termination := c.Market == ISDA && !c.TerminationDate.IsZero() &&
			d2.Equal(utils.Normalize(c.TerminationDate))
		if dd2 == 31 || (isLastOfFebruary(d2) && !termination) {
			dd2 = 30
		}

	case NASD:
		if dd1 == 31 {
			dd1 = 30
		}
		if dd2 == 31 {
			if dd1 >= 30 {
				dd2 = 30
			} else {
				dd2 = 1
				mm2++
			}
		}
	}

	return 360*(y2-y1) + 30*(mm2-mm1) + (dd2 - dd1)
}

func (c Thirty360) YearFraction(d1, d2 time.Time) float64 {
	return float64(c.DayCount(d1, d2)) / 360
}

func (c Thirty360) Name() string {
	return thirtyNames[c.Market]
}

// Thirty365 is the 30/360 US day count over a 365-day year.
type Thirty365 struct{}

func (Thirty365) DayCount(d1, d2 time.Time) int {
	return Thirty360{Market: USA}.DayCount(d1, d2)
}

func (t Thirty365) YearFraction(d1, d2 time.Time) float64 {
	return float64(t.DayCount(d1, d2)) / 365
}

func (Thirty365) Name() string { return "30/365" }

func isLastOfFebruary(t time.Time) bool {
	return t.Month() == time.February && utils.IsEndOfMonth(t)
}
