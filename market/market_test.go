package market_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fincal/calendar"
	"github.com/meenmo/fincal/market"
	"github.com/meenmo/fincal/period"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIndexPeriod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		index    string
		fixing   time.Time
		value    time.Time
		maturity time.Time
		accrual  float64
	}{
		{"euribor 3m end of month", "EURIBOR3M", date(2023, 3, 29), date(2023, 3, 31), date(2023, 6, 30), 91.0 / 360},
		{"euribor 6m end of month", "EURIBOR6M", date(2023, 3, 29), date(2023, 3, 31), date(2023, 9, 29), 182.0 / 360},
		{"euribor 3m mid month", "euribor3m", date(2023, 1, 12), date(2023, 1, 16), date(2023, 4, 17), 91.0 / 360},
		{"estr over easter", "ESTR", date(2023, 4, 6), date(2023, 4, 6), date(2023, 4, 11), 5.0 / 360},
		{"sonia over coronation", "SONIA", date(2023, 5, 5), date(2023, 5, 5), date(2023, 5, 9), 4.0 / 365},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := market.IndexByName(tt.index)
			require.NoError(t, err)
			value, maturity, accrual, err := c.Period(tt.fixing)
			require.NoError(t, err)
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.maturity, maturity)
			assert.InDelta(t, tt.accrual, accrual, 1e-12)
		})
	}
}

func TestFixingDateInvertsValueDate(t *testing.T) {
	t.Parallel()

	c, err := market.IndexByName("EURIBOR6M")
	require.NoError(t, err)

	for d := date(2023, 3, 1); d.Before(date(2023, 6, 1)); d = d.AddDate(0, 0, 1) {
		if !c.IsValidFixingDate(d) {
			continue
		}
		value, err := c.ValueDate(d)
		require.NoError(t, err)
		fixing, err := c.FixingDate(value)
		require.NoError(t, err)
		assert.Equal(t, d, fixing, d.Format("2006-01-02"))
	}
}

func TestIndexRegistry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []market.ReferenceIndex{
		market.ESTR, market.EURIBOR3M, market.EURIBOR6M, market.SOFR, market.SONIA,
	}, market.Indices())

	_, err := market.IndexByName("LIBOR3M")
	assert.ErrorIs(t, err, market.ErrUnknownIndex)

	sonia, err := market.IndexByName(" sonia ")
	require.NoError(t, err)
	assert.Equal(t, "GBP", sonia.Currency)
	assert.Equal(t, "ACT/365F", sonia.DayCounter.Name())
	assert.False(t, sonia.IsValidFixingDate(date(2023, 5, 8)))

	assert.True(t, market.IsOvernight(market.SOFR))
	assert.False(t, market.IsOvernight(market.EURIBOR3M))
}

func TestLegConvention(t *testing.T) {
	t.Parallel()

	pay, err := market.SOFRFixedAnnual.PaymentDate(date(2023, 11, 11))
	require.NoError(t, err)
	// Nov 11 is a Saturday, Nov 13 adjusted, then two business days.
	assert.Equal(t, date(2023, 11, 15), pay)

	pay, err = market.EURFixedAnnual.PaymentDate(date(2023, 9, 30))
	require.NoError(t, err)
	assert.Equal(t, date(2023, 9, 29), pay)

	assert.InDelta(t, 1.0, market.EURFixedAnnual.AccrualFraction(date(2023, 3, 31), date(2024, 3, 31)), 1e-12)

	idx, err := market.EURIBOR6MFloat.Index()
	require.NoError(t, err)
	assert.Equal(t, period.Months(6), idx.Tenor)

	_, err = market.EURFixedAnnual.Index()
	assert.ErrorIs(t, err, market.ErrUnknownIndex)
}

func TestSwapPresetDates(t *testing.T) {
	t.Parallel()

	p, err := market.SwapPresetByName("EUR-IRS-3M")
	require.NoError(t, err)
	spot, effective, maturity, err := p.Dates(date(2023, 3, 29), period.Years(1), period.Years(5))
	require.NoError(t, err)
	assert.Equal(t, date(2023, 3, 31), spot)
	assert.Equal(t, date(2024, 4, 2), effective)
	assert.Equal(t, date(2029, 4, 3), maturity)
	assert.Equal(t, "TARGET", calendar.Name(p.FixedLeg.Calendar))

	_, err = market.SwapPresetByName("JPY-OIS")
	assert.Error(t, err)
}
