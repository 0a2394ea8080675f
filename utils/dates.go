package utils

import (
	"fmt"
	"time"
)

// DateLayout is the ISO date format used for parsing and printing dates.
const DateLayout = "2006-01-02"

// Date builds a midnight-UTC date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize drops the clock and location of t, keeping its civil date.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ParseDate converts YYYY-MM-DD to a midnight-UTC time.Time.
func ParseDate(strDate string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("ParseDate: %w", err)
	}
	return t, nil
}

// DayNumber returns the proleptic-Gregorian serial day of t's civil date
// (days since 0000-03-01), independent of clock and location.
func DayNumber(t time.Time) int {
	y, m, d := t.Date()
	yy := y
	mm := int(m)
	if mm <= 2 {
		yy--
		mm += 12
	}
	era := yy / 400
	if yy < 0 && yy%400 != 0 {
		era--
	}
	yoe := yy - era*400
	doy := (153*(mm-3)+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe
}

// DaysBetween returns the signed number of calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	return DayNumber(end) - DayNumber(start)
}

// IsLeapYear reports whether year has 366 days.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 365 or 366.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsEndOfMonth reports whether t is the last calendar day of its month.
func IsEndOfMonth(t time.Time) bool {
	return t.Day() == DaysInMonth(t.Year(), t.Month())
}

// AddMonth behaves like Excel's EDATE, avoiding Go's month normalization surprises:
// the day is clamped to the last day of the target month.
func AddMonth(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	total := y*12 + int(m) - 1 + months
	ty := total / 12
	tm := total % 12
	if tm < 0 {
		tm += 12
		ty--
	}
	month := time.Month(tm + 1)
	if last := DaysInMonth(ty, month); d > last {
		d = last
	}
	return Date(ty, month, d)
}

// AddDays adds n calendar days to t's civil date.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d+n)
}
