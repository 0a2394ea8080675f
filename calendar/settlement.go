package calendar

import (
	"fmt"
	"time"

	"github.com/meenmo/fincal/period"
)

// DefaultSpotLag is the usual T+2 spot lag in business days.
const DefaultSpotLag = 2

// SpotDate returns trade + spotLag business days. A zero lag adjusts the
// trade date forward.
func SpotDate(cal Calendar, trade time.Time, spotLag int) (time.Time, error) {
	return Advance(cal, trade, period.Days(spotLag), Following, false)
}

// SettlementDate resolves a quoted tenor to its value date:
//   - ON settles trade + 1 business day
//   - SPOT settles trade + spotLag business days
//   - SN settles spot + 1 business day
//   - any other tenor is advanced from spot under conv and endOfMonth.
func SettlementDate(cal Calendar, trade time.Time, p period.Period, spotLag int, conv Convention, endOfMonth bool) (time.Time, error) {
	if p.Kind() == period.Overnight {
		return Advance(cal, trade, period.Days(1), Following, false)
	}

	spot, err := SpotDate(cal, trade, spotLag)
	if err != nil {
		return time.Time{}, fmt.Errorf("SettlementDate: spot: %w", err)
	}
	switch p.Kind() {
	case period.Spot:
		return spot, nil
	case period.SpotNext:
		return Advance(cal, spot, period.Days(1), Following, false)
	default:
		return Advance(cal, spot, p, conv, endOfMonth)
	}
}

// SpotEffectiveMaturity computes spot (trade + spotLag business days),
// effective, and maturity dates from a trade date.
//
// Conventions:
// - effective = spot (+ forward, adjusted following)
// - maturity = effective (+ tenor, adjusted following)
func SpotEffectiveMaturity(cal Calendar, trade time.Time, spotLag int, forward, tenor period.Period) (spot, effective, maturity time.Time, err error) {
	spot, err = SpotDate(cal, trade, spotLag)
	if err != nil {
		return spot, effective, maturity, fmt.Errorf("SpotEffectiveMaturity: %w", err)
	}

	effective = spot
	if forward.Count() > 0 {
		effective, err = Advance(cal, spot, forward, Following, false)
		if err != nil {
			return spot, effective, maturity, fmt.Errorf("SpotEffectiveMaturity: effective: %w", err)
		}
	}
	maturity, err = Advance(cal, effective, tenor, Following, false)
	if err != nil {
		return spot, effective, maturity, fmt.Errorf("SpotEffectiveMaturity: maturity: %w", err)
	}
	return spot, effective, maturity, nil
}
