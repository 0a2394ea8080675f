package daycount_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fincal/calendar"
	"github.com/meenmo/fincal/daycount"
	"github.com/meenmo/fincal/period"
	"github.com/meenmo/fincal/utils"
)

var date = utils.Date

func TestActualFixed(t *testing.T) {
	t.Parallel()

	d1, d2 := date(2023, 11, 4), date(2024, 11, 3)
	assert.Equal(t, 365, daycount.Actual365Fixed.DayCount(d1, d2))
	assert.Equal(t, 1.0, daycount.Actual365Fixed.YearFraction(d1, d2))
	assert.InDelta(t, 365.0/360, daycount.Actual360.YearFraction(d1, d2), 1e-15)
	assert.InDelta(t, 365.0/364, daycount.Actual364.YearFraction(d1, d2), 1e-15)
	assert.InDelta(t, 365.0/366, daycount.Actual366.YearFraction(d1, d2), 1e-15)
	assert.InDelta(t, -1.0, daycount.Actual365Fixed.YearFraction(d2, d1), 1e-15)
}

func TestActualActual(t *testing.T) {
	t.Parallel()

	isda := daycount.ActualActual{Market: daycount.ActualISDA}
	euro := daycount.ActualActual{Market: daycount.ActualEuro}

	tests := []struct {
		name   string
		dc     daycount.ActualActual
		d1, d2 time.Time
		want   float64
	}{
		{"isda across year end", isda, date(2003, 11, 1), date(2004, 5, 1), 61.0/365 + 121.0/366},
		{"isda whole years", isda, date(2023, 1, 1), date(2025, 1, 1), 2},
		{"isda same year", isda, date(2024, 1, 1), date(2024, 7, 1), 182.0 / 366},
		{"euro spanning feb 29", euro, date(2003, 11, 1), date(2004, 5, 1), 182.0 / 366},
		{"euro one year and remainder", euro, date(2003, 11, 1), date(2005, 5, 1), 1 + 182.0/366},
		{"euro whole years", euro, date(2019, 6, 15), date(2023, 6, 15), 4},
		{"euro no leap day", euro, date(2022, 3, 1), date(2022, 9, 1), 184.0 / 365},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.dc.YearFraction(tt.d1, tt.d2), 1e-12)
			assert.InDelta(t, -tt.want, tt.dc.YearFraction(tt.d2, tt.d1), 1e-12)
		})
	}

	assert.Equal(t, 182, euro.DayCount(date(2003, 11, 1), date(2004, 5, 1)))
}

func TestThirty360(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		dc     daycount.Thirty360
		d1, d2 time.Time
		want   int
	}{
		{"usa one month", daycount.Thirty360{Market: daycount.USA}, date(2023, 2, 1), date(2023, 3, 1), 30},
		{"usa end of february", daycount.Thirty360{Market: daycount.USA}, date(2023, 2, 28), date(2023, 3, 31), 30},
		{"usa 31st kept", daycount.Thirty360{Market: daycount.USA}, date(2023, 1, 15), date(2023, 3, 31), 76},
		{"european", daycount.Thirty360{Market: daycount.European}, date(2023, 1, 31), date(2023, 2, 28), 28},
		{"european both 31", daycount.Thirty360{Market: daycount.European}, date(2023, 1, 15), date(2023, 3, 31), 75},
		{"italian february", daycount.Thirty360{Market: daycount.Italian}, date(2023, 1, 31), date(2023, 2, 28), 30},
		{"isma", daycount.Thirty360{Market: daycount.ISMA}, date(2023, 1, 30), date(2023, 3, 31), 60},
		{"isma 31st kept", daycount.Thirty360{Market: daycount.ISMA}, date(2023, 1, 15), date(2023, 3, 31), 76},
		{"isda february", daycount.Thirty360{Market: daycount.ISDA}, date(2023, 1, 31), date(2023, 2, 28), 30},
		{
			"isda termination",
			daycount.Thirty360{Market: daycount.ISDA, TerminationDate: date(2023, 2, 28)},
			date(2023, 1, 31), date(2023, 2, 28), 28,
		},
		{
			"german ignores termination",
			daycount.Thirty360{Market: daycount.German, TerminationDate: date(2023, 2, 28)},
			date(2023, 1, 31), date(2023, 2, 28), 30,
		},
		{"nasd rolls 31st", daycount.Thirty360{Market: daycount.NASD}, date(2023, 1, 15), date(2023, 3, 31), 76},
		{"nasd month end", daycount.Thirty360{Market: daycount.NASD}, date(2023, 1, 30), date(2023, 3, 31), 60},
		{"years", daycount.Thirty360{Market: daycount.USA}, date(2020, 6, 15), date(2023, 6, 15), 1080},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dc.DayCount(tt.d1, tt.d2))
			assert.Equal(t, -tt.want, tt.dc.DayCount(tt.d2, tt.d1))
			assert.InDelta(t, float64(tt.want)/360, tt.dc.YearFraction(tt.d1, tt.d2), 1e-15)
		})
	}
}

func TestThirty365(t *testing.T) {
	t.Parallel()

	dc := daycount.Thirty365{}
	assert.Equal(t, 30, dc.DayCount(date(2023, 2, 1), date(2023, 3, 1)))
	assert.InDelta(t, 30.0/365, dc.YearFraction(date(2023, 2, 1), date(2023, 3, 1)), 1e-15)
}

func TestBusiness252(t *testing.T) {
	t.Parallel()

	dc := daycount.Business252{Calendar: calendar.Target{}}

	// Good Friday and Easter Monday are skipped.
	assert.Equal(t, 8, dc.DayCount(date(2023, 3, 29), date(2023, 4, 12)))
	assert.Equal(t, -8, dc.DayCount(date(2023, 4, 12), date(2023, 3, 29)))
	assert.InDelta(t, 8.0/252, dc.YearFraction(date(2023, 3, 29), date(2023, 4, 12)), 1e-15)

	// Month by month sum equals the plain count.
	d1, d2 := date(2023, 1, 17), date(2024, 2, 9)
	assert.Equal(t, calendar.BusinessDaysBetween(calendar.Target{}, d1, d2, true, false), dc.DayCount(d1, d2))

	assert.Equal(t, 0, dc.DayCount(date(2023, 4, 7), date(2023, 4, 7)))
	assert.Equal(t, "BUS/252(TARGET)", dc.Name())
}

func TestZeroForSameDate(t *testing.T) {
	t.Parallel()

	d := date(2024, 2, 29)
	for _, dc := range allCounters() {
		assert.Equal(t, 0, dc.DayCount(d, d), dc.Name())
		assert.Equal(t, 0.0, dc.YearFraction(d, d), dc.Name())
	}
}

func TestYearFractionToDate(t *testing.T) {
	t.Parallel()

	ref := date(2023, 1, 1)
	tests := []struct {
		name string
		dc   daycount.DayCounter
		t    float64
		want time.Time
	}{
		{"act/365f one year", daycount.Actual365Fixed, 1.0, date(2024, 1, 1)},
		{"act/360 one year", daycount.Actual360, 1.0, date(2023, 12, 27)},
		{"zero", daycount.ActualActual{}, 0, ref},
	}
	for _, tt := range tests {
		got, err := daycount.YearFractionToDate(tt.dc, ref, tt.t)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestYearFractionToDate_OutOfRange(t *testing.T) {
	t.Parallel()

	ref := date(2023, 1, 1)
	for _, yf := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e300, 8000, -2100} {
		_, err := daycount.YearFractionToDate(daycount.Actual365Fixed, ref, yf)
		assert.ErrorIs(t, err, period.ErrDateOutOfRange, "%v", yf)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := map[string]daycount.DayCounter{
		"ACT/360":            daycount.Actual360,
		"Actual/365 (Fixed)": daycount.Actual365Fixed,
		"act/365f":           daycount.Actual365Fixed,
		"ACT/ACT":            daycount.ActualActual{Market: daycount.ActualISDA},
		"ACT/ACT AFB":        daycount.ActualActual{Market: daycount.ActualEuro},
		"30/360":             daycount.Thirty360{Market: daycount.USA},
		"30E/360":            daycount.Thirty360{Market: daycount.European},
		"30/365":             daycount.Thirty365{},
		"BUS/252":            daycount.Business252{Calendar: calendar.Target{}},
	}
	for name, want := range tests {
		got, err := daycount.Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	for _, dc := range allCounters() {
		got, err := daycount.Parse(dc.Name())
		require.NoError(t, err, dc.Name())
		assert.Equal(t, dc.Name(), got.Name())
	}

	got, err := daycount.Parse("BUS/252(USD+GBP)")
	require.NoError(t, err)
	assert.Equal(t, "BUS/252(USD+GBP)", got.Name())

	_, err = daycount.Parse("ACT/42")
	assert.ErrorIs(t, err, daycount.ErrUnknownDayCounter)

	_, err = daycount.Parse("BUS/252(MARS)")
	assert.ErrorIs(t, err, calendar.ErrUnknownCalendar)

	assert.Panics(t, func() { daycount.MustParse("nope") })
}

func allCounters() []daycount.DayCounter {
	return []daycount.DayCounter{
		daycount.Actual360,
		daycount.Actual364,
		daycount.Actual365Fixed,
		daycount.Actual366,
		daycount.ActualActual{Market: daycount.ActualISDA},
		daycount.ActualActual{Market: daycount.ActualEuro},
		daycount.Thirty360{Market: daycount.USA},
		daycount.Thirty360{Market: daycount.European},
		daycount.Thirty360{Market: daycount.Italian},
		daycount.Thirty360{Market: daycount.ISMA},
		daycount.Thirty360{Market: daycount.ISDA},
		daycount.Thirty360{Market: daycount.German},
		daycount.Thirty360{Market: daycount.NASD},
		daycount.Thirty365{},
		daycount.Business252{Calendar: calendar.Target{}},
	}
}
