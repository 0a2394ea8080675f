package daycount

import (
	"time"

	"github.com/meenmo/fincal/calendar"
	"github.com/meenmo/fincal/utils"
)

// Business252 counts business days on Calendar over a 252-day year, the
// Brazilian convention.
type Business252 struct {
	Calendar calendar.Calendar
}

// DayCount sums business days month by month: each month contributes the
// business days in [start, next boundary).
func (b Business252) DayCount(d1, d2 time.Time) int {
	d1, d2 = utils.Normalize(d1), utils.Normalize(d2)
	if d1.Equal(d2) {
		return 0
	}
	if d1.After(d2) {
		return -b.DayCount(d2, d1)
	}

	total := 0
	for start := d1; start.Before(d2); {
		end := utils.Date(start.Year(), start.Month(), 1).AddDate(0, 1, 0)
		if end.After(d2) {
			end = d2
		}
		total += calendar.BusinessDaysBetween(b.Calendar, start, end, true, false)
		start = end
	}
	return total
}

func (b Business252) YearFraction(d1, d2 time.Time) float64 {
	return float64(b.DayCount(d1, d2)) / 252
}

func (b Business252) Name() string {
	return "BUS/252(" + calendar.Name(b.Calendar) + ")"
}
