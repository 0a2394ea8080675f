// Package daycount implements day-count conventions: the rules that turn a
// pair of dates into a day count and an accrual year fraction.
//
// Every DayCounter is a small value type, safe for concurrent use, and
// returns 0 for identical dates. Swapping the arguments negates the result.
package daycount

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/meenmo/fincal/calendar"
	"github.com/meenmo/fincal/period"
	"github.com/meenmo/fincal/utils"
)

// ErrUnknownDayCounter is returned by Parse for unrecognised names.
var ErrUnknownDayCounter = errors.New("unknown day counter")

// DayCounter computes day counts and year fractions between two dates.
type DayCounter interface {
	DayCount(d1, d2 time.Time) int
	YearFraction(d1, d2 time.Time) float64
	Name() string
}

// maxYearFraction bounds |t| in YearFractionToDate; no larger fraction can
// land inside years 1..9999.
const maxYearFraction = 10000

// YearFractionToDate approximately inverts dc.YearFraction: it returns the
// date d such that dc.YearFraction(ref, d) is close to t. The first guess
// assumes 365.25 days a year and is corrected once by the residual.
//
// t must be finite and the result must fall in years 1..9999; otherwise the
// error wraps period.ErrDateOutOfRange.
func YearFractionToDate(dc DayCounter, ref time.Time, t float64) (time.Time, error) {
	if math.IsNaN(t) || math.Abs(t) > maxYearFraction {
		return time.Time{}, fmt.Errorf("YearFractionToDate: %v: %w", t, period.ErrDateOutOfRange)
	}
	ref = utils.Normalize(ref)
	guess := utils.AddDays(ref, int(math.Round(t*365.25)))
	if err := checkYear(guess); err != nil {
		return time.Time{}, fmt.Errorf("YearFractionToDate: %v: %w", t, err)
	}
	residual := t - dc.YearFraction(ref, guess)
	d := utils.AddDays(guess, int(math.Round(residual*365.25)))
	if err := checkYear(d); err != nil {
		return time.Time{}, fmt.Errorf("YearFractionToDate: %v: %w", t, err)
	}
	return d, nil
}

func checkYear(t time.Time) error {
	if y := t.Year(); y < 1 || y > 9999 {
		return period.ErrDateOutOfRange
	}
	return nil
}

// Parse resolves a day counter by its market name. Matching ignores case,
// spaces, underscores and hyphens, so "ACT/365F", "Actual/365 (Fixed)" and
// "act/365f" are equivalent. "BUS/252" resolves against the TARGET calendar
// unless a calendar expression follows it, as in "BUS/252(USD+GBP)".
func Parse(name string) (DayCounter, error) {
	return ParseWithCalendar(name, calendar.Target{})
}

// ParseWithCalendar is Parse with the calendar used by BUS/252.
func ParseWithCalendar(name string, cal calendar.Calendar) (DayCounter, error) {
	key := normalizeName(name)
	if rest, ok := strings.CutPrefix(key, "BUS/252"); ok && rest != "" {
		c, err := calendar.Parse(rest)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", name, err)
		}
		return Business252{Calendar: c}, nil
	}
	switch key {
	case "ACT/360", "A/360", "ACTUAL/360", "A360":
		return Actual360, nil
	case "ACT/364", "A/364", "ACTUAL/364", "A364":
		return Actual364, nil
	case "ACT/365F", "ACT/365", "A/365F", "A365F", "ACTUAL/365FIXED", "ACTUAL/365F", "ACTUAL/365", "ENGLISH":
		return Actual365Fixed, nil
	case "ACT/366", "ACTUAL/366", "A366":
		return Actual366, nil
	case "ACT/ACT", "ACT/ACTISDA", "ACTUAL/ACTUAL", "ACTUAL/ACTUALISDA", "ACT/365ISDA", "AA":
		return ActualActual{Market: ActualISDA}, nil
	case "ACT/ACTEURO", "ACT/ACTAFB", "ACTUAL/ACTUALAFB", "ACTUAL/ACTUALEURO":
		return ActualActual{Market: ActualEuro}, nil
	case "30/360", "30/360USA", "30U/360", "30/360US", "30/360BONDBASIS":
		return Thirty360{Market: USA}, nil
	case "30E/360", "30/360EUROPEAN", "30/360EUROBOND", "30/360EU":
		return Thirty360{Market: European}, nil
	case "30/360ITALIAN", "30/360IT":
		return Thirty360{Market: Italian}, nil
	case "30/360ISMA", "30/360ICMA":
		return Thirty360{Market: ISMA}, nil
	case "30E/360ISDA", "30/360ISDA":
		return Thirty360{Market: ISDA}, nil
	case "30/360GERMAN", "30E/360GERMAN":
		return Thirty360{Market: German}, nil
	case "30/360NASD":
		return Thirty360{Market: NASD}, nil
	case "30/365":
		return Thirty365{}, nil
	case "BUS/252", "BUSINESS/252", "BUSINESS252", "BD/252":
		if cal == nil {
			cal = calendar.Target{}
		}
		return Business252{Calendar: cal}, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownDayCounter)
	}
}

// MustParse is Parse that panics on error, for package-level values.
func MustParse(name string) DayCounter {
	dc, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return dc
}

func normalizeName(name string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "", "(", "", ")", "")
	return strings.ToUpper(r.Replace(strings.TrimSpace(name)))
}
