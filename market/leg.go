package market

import (
	"fmt"
	"time"

	"github.com/meenmo/fincal/calendar"
	"github.com/meenmo/fincal/daycount"
	"github.com/meenmo/fincal/period"
)

// LegType distinguishes floating vs fixed.
type LegType string

const (
	LegFloating LegType = "FLOATING"
	LegFixed    LegType = "FIXED"
)

// ResetPosition indicates fixing timing.
type ResetPosition string

const (
	ResetInAdvance ResetPosition = "IN_ADVANCE"
	ResetInArrears ResetPosition = "IN_ARREARS"
)

// LegConvention captures standard swap leg settings.
type LegConvention struct {
	LegType       LegType
	ReferenceRate ReferenceIndex // empty for fixed legs
	DayCounter    daycount.DayCounter
	PayFrequency  period.Period
	PayDelayDays  int
	Convention    calendar.Convention
	EndOfMonth    bool
	Calendar      calendar.Calendar
	ResetPosition ResetPosition
}

// Preset leg conventions.
var (
	ESTRFloat = LegConvention{
		LegType:       LegFloating,
		ReferenceRate: ESTR,
		DayCounter:    daycount.Actual360,
		PayFrequency:  period.Years(1),
		PayDelayDays:  1,
		Convention:    calendar.ModifiedFollowing,
		EndOfMonth:    true,
		Calendar:      calendar.Target{},
		ResetPosition: ResetInArrears,
	}

	EURIBOR3MFloat = LegConvention{
		LegType:       LegFloating,
		ReferenceRate: EURIBOR3M,
		DayCounter:    daycount.Actual360,
		PayFrequency:  period.Months(3),
		Convention:    calendar.ModifiedFollowing,
		EndOfMonth:    true,
		Calendar:      calendar.Target{},
		ResetPosition: ResetInAdvance,
	}

	EURIBOR6MFloat = LegConvention{
		LegType:       LegFloating,
		ReferenceRate: EURIBOR6M,
		DayCounter:    daycount.Actual360,
		PayFrequency:  period.Months(6),
		Convention:    calendar.ModifiedFollowing,
		EndOfMonth:    true,
		Calendar:      calendar.Target{},
		ResetPosition: ResetInAdvance,
	}

	SOFRFloat = LegConvention{
		LegType:       LegFloating,
		ReferenceRate: SOFR,
		DayCounter:    daycount.Actual360,
		PayFrequency:  period.Years(1),
		PayDelayDays:  2,
		Convention:    calendar.ModifiedFollowing,
		EndOfMonth:    true,
		Calendar:      calendar.UnitedStates{Market: calendar.USSettlement},
		ResetPosition: ResetInArrears,
	}

	SONIAFloat = LegConvention{
		LegType:       LegFloating,
		ReferenceRate: SONIA,
		DayCounter:    daycount.Actual365Fixed,
		PayFrequency:  period.Years(1),
		Convention:    calendar.ModifiedFollowing,
		EndOfMonth:    true,
		Calendar:      calendar.UnitedKingdom{},
		ResetPosition: ResetInArrears,
	}

	// EUR IBOR swaps pay 30E/360 annually.
	EURFixedAnnual = LegConvention{
		LegType:      LegFixed,
		DayCounter:   daycount.Thirty360{Market: daycount.European},
		PayFrequency: period.Years(1),
		Convention:   calendar.ModifiedFollowing,
		EndOfMonth:   true,
		Calendar:     calendar.Target{},
	}

	ESTRFixedAnnual = LegConvention{
		LegType:      LegFixed,
		DayCounter:   daycount.Actual360,
		PayFrequency: period.Years(1),
		PayDelayDays: 1,
		Convention:   calendar.ModifiedFollowing,
		EndOfMonth:   true,
		Calendar:     calendar.Target{},
	}

	SOFRFixedAnnual = LegConvention{
		LegType:      LegFixed,
		DayCounter:   daycount.Actual360,
		PayFrequency: period.Years(1),
		PayDelayDays: 2,
		Convention:   calendar.ModifiedFollowing,
		EndOfMonth:   true,
		Calendar:     calendar.UnitedStates{Market: calendar.USSettlement},
	}

	SONIAFixedAnnual = LegConvention{
		LegType:      LegFixed,
		DayCounter:   daycount.Actual365Fixed,
		PayFrequency: period.Years(1),
		Convention:   calendar.ModifiedFollowing,
		EndOfMonth:   true,
		Calendar:     calendar.UnitedKingdom{},
	}
)

// AccrualFraction is the year fraction accrued between two adjusted dates.
func (l LegConvention) AccrualFraction(start, end time.Time) float64 {
	return l.DayCounter.YearFraction(start, end)
}

// PaymentDate returns the payment date of an accrual period ending on end:
// end adjusted under the leg convention, then delayed PayDelayDays business days.
func (l LegConvention) PaymentDate(end time.Time) (time.Time, error) {
	d, err := calendar.Adjust(l.Calendar, end, l.Convention)
	if err != nil {
		return time.Time{}, fmt.Errorf("PaymentDate: %w", err)
	}
	if l.PayDelayDays == 0 {
		return d, nil
	}
	return calendar.AddBusinessDays(l.Calendar, d, l.PayDelayDays)
}

// Index returns the convention of the leg's reference rate.
func (l LegConvention) Index() (IndexConvention, error) {
	if l.LegType != LegFloating {
		return IndexConvention{}, fmt.Errorf("%s leg has no reference rate: %w", l.LegType, ErrUnknownIndex)
	}
	return IndexByName(string(l.ReferenceRate))
}

// SwapPreset pairs the fixed and floating legs of a vanilla swap.
type SwapPreset struct {
	Name     string
	FixedLeg LegConvention
	FloatLeg LegConvention
	SpotLag  int
}

var swapPresets = map[string]SwapPreset{
	"EUR-IRS-3M": {Name: "EUR-IRS-3M", FixedLeg: EURFixedAnnual, FloatLeg: EURIBOR3MFloat, SpotLag: 2},
	"EUR-IRS-6M": {Name: "EUR-IRS-6M", FixedLeg: EURFixedAnnual, FloatLeg: EURIBOR6MFloat, SpotLag: 2},
	"EUR-OIS":    {Name: "EUR-OIS", FixedLeg: ESTRFixedAnnual, FloatLeg: ESTRFloat, SpotLag: 2},
	"USD-OIS":    {Name: "USD-OIS", FixedLeg: SOFRFixedAnnual, FloatLeg: SOFRFloat, SpotLag: 2},
	"GBP-OIS":    {Name: "GBP-OIS", FixedLeg: SONIAFixedAnnual, FloatLeg: SONIAFloat, SpotLag: 0},
}

// SwapPresetByName returns a registered swap preset.
func SwapPresetByName(name string) (SwapPreset, error) {
	p, ok := swapPresets[name]
	if !ok {
		return SwapPreset{}, fmt.Errorf("unknown swap preset %q", name)
	}
	return p, nil
}

// Dates returns the spot, effective and maturity dates of the preset swap
// traded on trade, starting forward after spot and running for tenor.
func (p SwapPreset) Dates(trade time.Time, forward, tenor period.Period) (spot, effective, maturity time.Time, err error) {
	return calendar.SpotEffectiveMaturity(p.FixedLeg.Calendar, trade, p.SpotLag, forward, tenor)
}
