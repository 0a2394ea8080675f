// Package imm maps between IMM dates, the third Wednesday of a month on which
// interest-rate futures expire, and their two-character contract codes such
// as "Z3" (December of a year ending in 3).
package imm

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/fincal/utils"
)

// ErrMalformedCode is returned for strings that are not IMM codes.
var ErrMalformedCode = errors.New("malformed IMM code")

// monthCodes holds the futures month letters for January through December.
const monthCodes = "FGHJKMNQUVXZ"

// mainCycleCodes are the quarterly contract months.
const mainCycleCodes = "HMUZ"

// IsIMMDate reports whether t is the third Wednesday of a month. With
// mainCycle set, only March, June, September and December qualify.
func IsIMMDate(t time.Time, mainCycle bool) bool {
	if t.Weekday() != time.Wednesday {
		return false
	}
	if d := t.Day(); d < 15 || d > 21 {
		return false
	}
	return !mainCycle || isMainCycleMonth(t.Month())
}

func isMainCycleMonth(m time.Month) bool {
	return m%3 == 0
}

// IsIMMCode reports whether code is a month letter followed by a digit.
func IsIMMCode(code string, mainCycle bool) bool {
	if len(code) != 2 {
		return false
	}
	if code[1] < '0' || code[1] > '9' {
		return false
	}
	letters := monthCodes
	if mainCycle {
		letters = mainCycleCodes
	}
	return strings.IndexByte(letters, upper(code[0])) >= 0
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// Code returns the contract code of the IMM date t. It reports false when t
// is not an IMM date.
func Code(t time.Time) (string, bool) {
	if !IsIMMDate(t, false) {
		return "", false
	}
	return fmt.Sprintf("%c%d", monthCodes[t.Month()-1], t.Year()%10), true
}

// Date resolves code to the first IMM date of its month on or after ref.
// The decade is taken from ref; when that date is already past, the same
// contract ten years later is returned.
func Date(code string, ref time.Time) (time.Time, error) {
	if !IsIMMCode(code, false) {
		return time.Time{}, fmt.Errorf("Date: %q: %w", code, ErrMalformedCode)
	}
	ref = utils.Normalize(ref)
	month := time.Month(strings.IndexByte(monthCodes, upper(code[0])) + 1)
	year := int(code[1]-'0') + ref.Year() - ref.Year()%10

	d := NextDate(utils.Date(year, month, 1), false)
	if d.Before(ref) {
		d = NextDate(utils.Date(year+10, month, 1), false)
	}
	return d, nil
}

// NextDate returns the first IMM date strictly after t.
func NextDate(t time.Time, mainCycle bool) time.Time {
	t = utils.Normalize(t)
	y, m := t.Year(), int(t.Month())

	offset := 1
	if mainCycle {
		offset = 3
	}
	skip := offset - m%offset
	if skip != offset || t.Day() > 21 {
		m += skip
		if m > 12 {
			m -= 12
			y++
		}
	}

	d, _ := NthWeekday(3, time.Wednesday, time.Month(m), y)
	if !d.After(t) {
		return NextDate(utils.Date(y, time.Month(m), 22), mainCycle)
	}
	return d
}

// NextCode returns the contract code of NextDate(t, mainCycle).
func NextCode(t time.Time, mainCycle bool) string {
	code, _ := Code(NextDate(t, mainCycle))
	return code
}

// NthWeekday returns the n-th occurrence (1-based) of weekday in the given
// month. It reports false when n is outside 1..5 or the month has fewer than
// n such weekdays.
func NthWeekday(n int, weekday time.Weekday, month time.Month, year int) (time.Time, bool) {
	if n < 1 || n > 5 {
		return time.Time{}, false
	}
	first := utils.Date(year, month, 1)
	skip := (int(weekday) - int(first.Weekday()) + 7) % 7
	day := 1 + skip + 7*(n-1)
	if day > utils.DaysInMonth(year, month) {
		return time.Time{}, false
	}
	return utils.Date(year, month, day), true
}
