package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fincal/calendar"
	"github.com/meenmo/fincal/period"
)

func TestTarget(t *testing.T) {
	t.Parallel()

	target := calendar.Target{}
	for _, h := range []time.Time{
		date(2021, 1, 1),
		date(2024, 1, 1),
		date(2023, 4, 7),
		date(2023, 4, 10),
		date(2023, 5, 1),
		date(2023, 12, 25),
		date(2023, 12, 26),
		date(2024, 3, 29),
		date(2024, 4, 1),
		date(2001, 12, 31),
	} {
		assert.False(t, target.IsBusinessDay(h), h.Format("2006-01-02"))
	}
	for _, b := range []time.Time{
		date(2023, 4, 6),
		date(2023, 4, 11),
		date(2023, 5, 8),
		date(2023, 12, 27),
		date(2002, 12, 31),
	} {
		assert.True(t, target.IsBusinessDay(b), b.Format("2006-01-02"))
	}
}

func TestUnitedStates(t *testing.T) {
	t.Parallel()

	settlement := calendar.UnitedStates{Market: calendar.USSettlement}
	nyse := calendar.UnitedStates{Market: calendar.USNYSE}

	// Independence day and thanksgiving close both markets.
	for _, d := range []time.Time{date(2023, 7, 4), date(2023, 11, 23), date(2023, 12, 25), date(2023, 9, 4)} {
		assert.False(t, settlement.IsBusinessDay(d), d.Format("2006-01-02"))
		assert.False(t, nyse.IsBusinessDay(d), d.Format("2006-01-02"))
	}

	// Columbus day: settlement closed, exchange open.
	assert.False(t, settlement.IsBusinessDay(date(2023, 10, 9)))
	assert.True(t, nyse.IsBusinessDay(date(2023, 10, 9)))

	// Good Friday: exchange closed, settlement open.
	assert.True(t, settlement.IsBusinessDay(date(2023, 4, 7)))
	assert.False(t, nyse.IsBusinessDay(date(2023, 4, 7)))

	assert.True(t, settlement.IsBusinessDay(date(2023, 10, 16)))
	assert.False(t, settlement.IsBusinessDay(date(2023, 10, 14)))
}

func TestUnitedKingdom(t *testing.T) {
	t.Parallel()

	uk := calendar.UnitedKingdom{}
	for _, h := range []time.Time{
		date(2023, 1, 2),   // new year substitute
		date(2023, 4, 7),   // good friday
		date(2023, 4, 10),  // easter monday
		date(2023, 5, 1),   // early may
		date(2023, 5, 8),   // coronation
		date(2023, 5, 29),  // spring
		date(2023, 8, 28),  // summer
		date(2023, 12, 25), // christmas
		date(2023, 12, 26), // boxing day
		date(2021, 12, 27), // christmas substitute
		date(2021, 12, 28), // boxing day substitute
		date(2020, 12, 28), // boxing day substitute
		date(2022, 6, 2),
		date(2022, 6, 3),
	} {
		assert.False(t, uk.IsBusinessDay(h), h.Format("2006-01-02"))
	}
	for _, b := range []time.Time{
		date(2022, 5, 30), // spring holiday moved to june
		date(2020, 5, 4),  // early may moved to the 8th
		date(2023, 12, 27),
		date(2023, 10, 16),
	} {
		assert.True(t, uk.IsBusinessDay(b), b.Format("2006-01-02"))
	}
}

func TestHolidaySet(t *testing.T) {
	t.Parallel()

	krx, err := calendar.NewHolidaySet("KRX", "2023-10-02", "2023-10-03", "2023-10-09")
	require.NoError(t, err)

	assert.False(t, krx.IsBusinessDay(date(2023, 10, 2)))
	assert.False(t, krx.IsBusinessDay(date(2023, 10, 7)))
	assert.True(t, krx.IsBusinessDay(date(2023, 10, 4)))
	assert.Equal(t, "KRX", calendar.Name(krx))

	got, err := calendar.Adjust(krx, date(2023, 9, 30), calendar.Following)
	require.NoError(t, err)
	assert.Equal(t, date(2023, 10, 4), got)

	_, err = calendar.NewHolidaySet("bad", "2023/10/02")
	require.Error(t, err)
}

func TestJoint(t *testing.T) {
	t.Parallel()

	joint := calendar.NewJoint(calendar.Target{}, calendar.UnitedKingdom{})
	assert.Equal(t, 2, joint.Len())
	assert.False(t, joint.IsBusinessDay(date(2023, 5, 8)), "coronation closes London")
	assert.False(t, joint.IsBusinessDay(date(2023, 5, 1)))
	assert.True(t, joint.IsBusinessDay(date(2023, 5, 9)))
	assert.Equal(t, "TARGET+GBP", calendar.Name(joint))

	empty := calendar.NewJoint()
	assert.True(t, empty.IsBusinessDay(date(2023, 10, 14)), "empty joint calendar is always open")
}

func TestJoint_OwnsMembers(t *testing.T) {
	t.Parallel()

	members := []calendar.Calendar{calendar.WeekendsOnly{}}
	joint := calendar.NewJoint(members...)
	members[0] = calendar.Null{}

	assert.False(t, joint.IsBusinessDay(date(2023, 10, 14)))
}

func TestParse(t *testing.T) {
	t.Parallel()

	c, err := calendar.Parse("TARGET")
	require.NoError(t, err)
	assert.Equal(t, calendar.Target{}, c)

	c, err = calendar.Parse("usd+uk")
	require.NoError(t, err)
	assert.Equal(t, "USD+GBP", calendar.Name(c))

	c, err = calendar.Parse("NYSE, EUR")
	require.NoError(t, err)
	assert.Equal(t, "NYSE+TARGET", calendar.Name(c))

	_, err = calendar.Parse("TARGET+MARS")
	assert.ErrorIs(t, err, calendar.ErrUnknownCalendar)

	_, err = calendar.Parse("")
	assert.ErrorIs(t, err, calendar.ErrUnknownCalendar)

	_, err = calendar.ByID("JPN")
	assert.ErrorIs(t, err, calendar.ErrUnknownCalendar)
}

func TestParseConvention(t *testing.T) {
	t.Parallel()

	tests := map[string]calendar.Convention{
		"Following":                  calendar.Following,
		"MF":                         calendar.ModifiedFollowing,
		"MODIFIED_FOLLOWING":         calendar.ModifiedFollowing,
		"modified following":         calendar.ModifiedFollowing,
		"HalfMonthModifiedFollowing": calendar.HalfMonthModifiedFollowing,
		"p":                          calendar.Preceding,
		"ModifiedPreceding":          calendar.ModifiedPreceding,
		"Unadjusted":                 calendar.Unadjusted,
		"nearest":                    calendar.Nearest,
	}
	for in, want := range tests {
		got, err := calendar.ParseConvention(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)

		back, err := calendar.ParseConvention(got.String())
		require.NoError(t, err)
		assert.Equal(t, got, back)
	}

	_, err := calendar.ParseConvention("sideways")
	assert.ErrorIs(t, err, calendar.ErrUnknownConvention)
}

func TestSettlementDate_Target(t *testing.T) {
	t.Parallel()

	target := calendar.Target{}
	trade := date(2023, 3, 29)
	tests := []struct {
		tenor period.Period
		want  time.Time
	}{
		{period.SPOT, date(2023, 3, 31)},
		{period.ON, date(2023, 3, 30)},
		{period.SN, date(2023, 4, 3)},
		{period.Weeks(1), date(2023, 4, 11)},
		{period.Months(1), date(2023, 4, 28)},
		{period.Years(1), date(2024, 3, 28)},
	}
	for _, tt := range tests {
		got, err := calendar.SettlementDate(target, trade, tt.tenor, calendar.DefaultSpotLag, calendar.ModifiedFollowing, false)
		require.NoError(t, err, tt.tenor.String())
		assert.Equal(t, tt.want, got, tt.tenor.String())
	}
}

func TestSettlementDate_JointUSUK(t *testing.T) {
	t.Parallel()

	cal := calendar.NewJoint(calendar.UnitedStates{Market: calendar.USSettlement}, calendar.UnitedKingdom{})
	trade := date(2023, 10, 16)

	on, err := calendar.SettlementDate(cal, trade, period.ON, calendar.DefaultSpotLag, calendar.ModifiedFollowing, false)
	require.NoError(t, err)
	assert.Equal(t, date(2023, 10, 17), on)

	spot, err := calendar.SettlementDate(cal, trade, period.SPOT, calendar.DefaultSpotLag, calendar.ModifiedFollowing, false)
	require.NoError(t, err)
	assert.Equal(t, date(2023, 10, 18), spot)
}

func TestSpotEffectiveMaturity(t *testing.T) {
	t.Parallel()

	spot, effective, maturity, err := calendar.SpotEffectiveMaturity(
		calendar.Target{}, date(2023, 3, 29), 2, period.Years(1), period.Years(5))
	require.NoError(t, err)
	assert.Equal(t, date(2023, 3, 31), spot)
	assert.Equal(t, date(2024, 4, 2), effective)
	assert.Equal(t, date(2029, 4, 3), maturity)

	spot, effective, _, err = calendar.SpotEffectiveMaturity(
		calendar.Target{}, date(2023, 3, 29), 2, period.Years(0), period.Years(5))
	require.NoError(t, err)
	assert.Equal(t, spot, effective)
}
