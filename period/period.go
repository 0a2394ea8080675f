// Package period implements tenors (ON, SPOT, SN, days, weeks, months, years)
// and their arithmetic against dates.
package period

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/meenmo/fincal/utils"
)

var (
	// ErrDateOutOfRange is returned when date arithmetic leaves years 1..9999.
	ErrDateOutOfRange = errors.New("date out of representable range")
	// ErrInvalidTenor is returned by Parse for strings outside the tenor vocabulary.
	ErrInvalidTenor = errors.New("invalid tenor")
	// ErrOverflow is returned by MulChecked when the scaled count does not fit in int64.
	ErrOverflow = errors.New("period count overflow")
)

const (
	minYear = 1
	maxYear = 9999

	// Largest day and month counts that can stay inside minYear..maxYear.
	maxDays   = int64(maxYear) * 366
	maxMonths = int64(maxYear) * 12
)

// Kind tags the variant held by a Period.
type Kind uint8

const (
	Overnight Kind = iota
	Spot
	SpotNext
	Day
	Week
	Month
	Year
)

func (k Kind) String() string {
	switch k {
	case Overnight:
		return "Overnight"
	case Spot:
		return "Spot"
	case SpotNext:
		return "SpotNext"
	case Day:
		return "Day"
	case Week:
		return "Week"
	case Month:
		return "Month"
	case Year:
		return "Year"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Period is an immutable tenor. The zero value is ON.
//
// Days and Weeks carry a signed count; Months and Years are non-negative.
type Period struct {
	kind Kind
	n    int64
}

var (
	ON   = Period{kind: Overnight}
	SPOT = Period{kind: Spot}
	SN   = Period{kind: SpotNext}
)

// Days moves n calendar days; negative n moves backward.
func Days(n int) Period { return Period{kind: Day, n: int64(n)} }
func Weeks(n int) Period { return Period{kind: Week, n: int64(n)} }
func Months(n uint32) Period { return Period{kind: Month, n: int64(n)} }
func Years(n uint32) Period { return Period{kind: Year, n: int64(n)} }

// Kind returns the variant tag.
func (p Period) Kind() Kind { return p.kind }

// Count returns the numeric payload; it is zero for ON, SPOT and SN.
func (p Period) Count() int64 { return p.n }

// Mul scales the count by k. ON, SPOT and SN are point-in-time markers and
// are returned unchanged. A product that overflows int64 saturates, so any
// later AddTo fails with ErrDateOutOfRange; use MulChecked to see the overflow.
func (p Period) Mul(k uint32) Period {
	q, err := p.MulChecked(k)
	if err != nil {
		n := int64(math.MaxInt64)
		if p.n < 0 {
			n = math.MinInt64
		}
		return Period{kind: p.kind, n: n}
	}
	return q
}

// MulChecked is Mul returning ErrOverflow instead of saturating.
func (p Period) MulChecked(k uint32) (Period, error) {
	switch p.kind {
	case Day, Week, Month, Year:
		prod := p.n * int64(k)
		if k != 0 && prod/int64(k) != p.n {
			return Period{}, fmt.Errorf("%s x %d: %w", p, k, ErrOverflow)
		}
		return Period{kind: p.kind, n: prod}, nil
	default:
		return p, nil
	}
}

// AddTo returns t moved forward by p. Month and year steps clamp to the last
// day of the target month.
func (p Period) AddTo(t time.Time) (time.Time, error) {
	return p.shift(t, 1)
}

// SubtractFrom returns t moved backward by p.
func (p Period) SubtractFrom(t time.Time) (time.Time, error) {
	return p.shift(t, -1)
}

func (p Period) shift(t time.Time, sign int64) (time.Time, error) {
	var days, months int64
	switch p.kind {
	case Overnight, SpotNext:
		days = 1
	case Spot:
		days = 0
	case Day:
		days = p.n
	case Week:
		if p.n > maxDays/7 || p.n < -maxDays/7 {
			return time.Time{}, fmt.Errorf("%s %s: %w", t.Format(utils.DateLayout), p, ErrDateOutOfRange)
		}
		days = 7 * p.n
	case Month:
		months = p.n
	case Year:
		if p.n > maxMonths/12 || p.n < 0 {
			return time.Time{}, fmt.Errorf("%s %s: %w", t.Format(utils.DateLayout), p, ErrDateOutOfRange)
		}
		months = 12 * p.n
	default:
		return time.Time{}, fmt.Errorf("period: unknown kind %d", p.kind)
	}

	// Guard before handing large counts to int arithmetic.
	if days > maxDays || days < -maxDays || months > maxMonths || months < 0 {
		return time.Time{}, fmt.Errorf("%s %s: %w", t.Format(utils.DateLayout), p, ErrDateOutOfRange)
	}

	var out time.Time
	if months != 0 {
		out = utils.AddMonth(t, int(sign*months))
	} else {
		out = utils.AddDays(t, int(sign*days))
	}
	if y := out.Year(); y < minYear || y > maxYear {
		return time.Time{}, fmt.Errorf("%s %s: %w", t.Format(utils.DateLayout), p, ErrDateOutOfRange)
	}
	return out, nil
}

// Years approximates the period length in years (ACT/365 for days and weeks),
// for tenor-keyed lookups such as quote tables.
func (p Period) Years() float64 {
	switch p.kind {
	case Overnight:
		return 1.0 / 365.0
	case Spot:
		return 0
	case SpotNext:
		return 1.0 / 365.0
	case Day:
		return float64(p.n) / 365.0
	case Week:
		return float64(p.n) * 7.0 / 365.0
	case Month:
		return float64(p.n) / 12.0
	case Year:
		return float64(p.n)
	default:
		return 0
	}
}

// String formats p in tenor notation ("ON", "SPOT", "SN", "3D", "-1W", "6M", "10Y").
func (p Period) String() string {
	switch p.kind {
	case Overnight:
		return "ON"
	case Spot:
		return "SPOT"
	case SpotNext:
		return "SN"
	case Day:
		return strconv.FormatInt(p.n, 10) + "D"
	case Week:
		return strconv.FormatInt(p.n, 10) + "W"
	case Month:
		return strconv.FormatInt(p.n, 10) + "M"
	case Year:
		return strconv.FormatInt(p.n, 10) + "Y"
	default:
		return "Period(" + p.kind.String() + ")"
	}
}

// Parse converts tenor strings like "ON", "SPOT", "1W", "3M", "10Y" to a Period.
// Days and weeks accept a leading minus sign.
func Parse(tenor string) (Period, error) {
	s := strings.TrimSpace(strings.ToUpper(tenor))
	switch s {
	case "ON", "O/N":
		return ON, nil
	case "SPOT", "SP":
		return SPOT, nil
	case "SN", "S/N":
		return SN, nil
	case "":
		return Period{}, fmt.Errorf("%q: %w", tenor, ErrInvalidTenor)
	}

	unit := s[len(s)-1]
	digits := s[:len(s)-1]
	switch unit {
	case 'D', 'W':
		v, err := strconv.Atoi(digits)
		if err != nil {
			return Period{}, fmt.Errorf("%q: %w", tenor, ErrInvalidTenor)
		}
		if unit == 'D' {
			return Days(v), nil
		}
		return Weeks(v), nil
	case 'M', 'Y':
		v, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			return Period{}, fmt.Errorf("%q: %w", tenor, ErrInvalidTenor)
		}
		if unit == 'M' {
			return Months(uint32(v)), nil
		}
		return Years(uint32(v)), nil
	default:
		return Period{}, fmt.Errorf("%q: %w", tenor, ErrInvalidTenor)
	}
}

// MustParse is Parse for package-level tenor tables; it panics on error.
func MustParse(tenor string) Period {
	p, err := Parse(tenor)
	if err != nil {
		panic(err)
	}
	return p
}

// MarshalText implements encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Period) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
