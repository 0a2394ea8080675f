package calendar

import (
	"fmt"
	"strings"
)

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	TARGET   CalendarID = "TARGET"
	USD      CalendarID = "USD"
	NYSE     CalendarID = "NYSE"
	GBP      CalendarID = "GBP"
	WEEKENDS CalendarID = "WEEKENDS"
	NULL     CalendarID = "NULL"
)

// aliases maps alternative spellings to registered identifiers.
var aliases = map[string]CalendarID{
	"EUR":          TARGET,
	"TARGET2":      TARGET,
	"US":           USD,
	"UNITEDSTATES": USD,
	"USSETTLEMENT": USD,
	"UK":           GBP,
	"GB":           GBP,
	"LONDON":       GBP,
	"WEEKENDSONLY": WEEKENDS,
	"NONE":         NULL,
}

// ByID returns the calendar registered under id.
func ByID(id CalendarID) (Calendar, error) {
	key := strings.ToUpper(strings.TrimSpace(string(id)))
	if alias, ok := aliases[key]; ok {
		key = string(alias)
	}
	switch CalendarID(key) {
	case TARGET:
		return Target{}, nil
	case USD:
		return UnitedStates{Market: USSettlement}, nil
	case NYSE:
		return UnitedStates{Market: USNYSE}, nil
	case GBP:
		return UnitedKingdom{}, nil
	case WEEKENDS:
		return WeekendsOnly{}, nil
	case NULL:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", string(id), ErrUnknownCalendar)
	}
}

// Parse resolves a calendar expression: a single identifier ("TARGET") or a
// joint calendar written as identifiers separated by '+' or ',' ("USD+GBP").
func Parse(expr string) (Calendar, error) {
	parts := strings.FieldsFunc(expr, func(r rune) bool { return r == '+' || r == ',' })
	if len(parts) == 0 {
		return nil, fmt.Errorf("%q: %w", expr, ErrUnknownCalendar)
	}
	cals := make([]Calendar, 0, len(parts))
	for _, p := range parts {
		c, err := ByID(CalendarID(p))
		if err != nil {
			return nil, err
		}
		cals = append(cals, c)
	}
	if len(cals) == 1 {
		return cals[0], nil
	}
	return NewJoint(cals...), nil
}

// Name returns a display name for cal: its registry identifier when it has
// one, the member list for joint calendars, or the Go type otherwise.
func Name(cal Calendar) string {
	switch c := cal.(type) {
	case Target:
		return string(TARGET)
	case UnitedStates:
		if c.Market == USNYSE {
			return string(NYSE)
		}
		return string(USD)
	case UnitedKingdom:
		return string(GBP)
	case WeekendsOnly:
		return string(WEEKENDS)
	case Null:
		return string(NULL)
	case *Joint:
		return c.String()
	case fmt.Stringer:
		return c.String()
	default:
		return fmt.Sprintf("%T", cal)
	}
}
