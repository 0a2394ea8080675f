package calendar

import (
	"fmt"
	"time"

	"github.com/meenmo/fincal/utils"
)

// Range of the Easter Monday tables.
const (
	EasterFirstYear = 1901
	EasterLastYear  = 2199
)

// Day-of-year of Easter Monday, indexed by year - EasterFirstYear.
// Built once during package initialisation and read-only afterwards.
var (
	easterMondays         = buildEasterTable(gregorianEasterSunday)
	orthodoxEasterMondays = buildEasterTable(orthodoxEasterSunday)
)

func buildEasterTable(sunday func(year int) time.Time) []int {
	table := make([]int, EasterLastYear-EasterFirstYear+1)
	for i := range table {
		table[i] = sunday(EasterFirstYear+i).YearDay() + 1
	}
	return table
}

// EasterMonday returns the day of year of (western) Easter Monday.
// It panics when year is outside [EasterFirstYear, EasterLastYear].
func EasterMonday(year int) int {
	checkEasterYear(year)
	return easterMondays[year-EasterFirstYear]
}

// OrthodoxEasterMonday returns the day of year of Orthodox Easter Monday,
// expressed in the Gregorian calendar. It panics outside the table range.
func OrthodoxEasterMonday(year int) int {
	checkEasterYear(year)
	return orthodoxEasterMondays[year-EasterFirstYear]
}

func checkEasterYear(year int) {
	if year < EasterFirstYear || year > EasterLastYear {
		panic(fmt.Sprintf("calendar: easter table covers %d-%d, got year %d", EasterFirstYear, EasterLastYear, year))
	}
}

// gregorianEasterSunday is the anonymous Gregorian computus.
func gregorianEasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451

	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1
	return utils.Date(year, time.Month(month), day)
}

// orthodoxEasterSunday is the Julian computus shifted onto the Gregorian calendar.
func orthodoxEasterSunday(year int) time.Time {
	a := year % 4
	b := year % 7
	c := year % 19
	d := (19*c + 15) % 30
	e := (2*a + 4*b - d + 34) % 7
	month := (d + e + 114) / 31
	day := ((d + e + 114) % 31) + 1

	// Julian to Gregorian offset for dates after 28 February.
	offset := year/100 - year/400 - 2
	return utils.Date(year, time.Month(month), day+offset)
}

func hasEasterTable(year int) bool {
	return year >= EasterFirstYear && year <= EasterLastYear
}

// Outside the table range no date is reported as a movable feast; the
// calendars using these advertise the range through YearRange instead.
func isEasterMonday(t time.Time) bool {
	return hasEasterTable(t.Year()) && t.YearDay() == EasterMonday(t.Year())
}

func isGoodFriday(t time.Time) bool {
	return hasEasterTable(t.Year()) && t.YearDay() == EasterMonday(t.Year())-3
}
