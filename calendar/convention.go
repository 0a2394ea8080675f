package calendar

import (
	"fmt"
	"strings"
)

// Convention is a business day convention: the rule mapping a non-business
// day to a nearby business day.
type Convention int

const (
	Following Convention = iota
	ModifiedFollowing
	HalfMonthModifiedFollowing
	Preceding
	ModifiedPreceding
	Unadjusted
	Nearest
)

var conventionNames = map[Convention]string{
	Following:                  "Following",
	ModifiedFollowing:          "ModifiedFollowing",
	HalfMonthModifiedFollowing: "HalfMonthModifiedFollowing",
	Preceding:                  "Preceding",
	ModifiedPreceding:          "ModifiedPreceding",
	Unadjusted:                 "Unadjusted",
	Nearest:                    "Nearest",
}

func (c Convention) String() string {
	if s, ok := conventionNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Convention(%d)", int(c))
}

// ParseConvention accepts canonical names ("ModifiedFollowing"), abbreviations
// ("MF") and upper snake case ("MODIFIED_FOLLOWING"), case-insensitively.
func ParseConvention(s string) (Convention, error) {
	key := strings.ToUpper(strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.TrimSpace(s)))
	switch key {
	case "F", "FOLLOWING":
		return Following, nil
	case "MF", "MODIFIEDFOLLOWING":
		return ModifiedFollowing, nil
	case "HMMF", "HALFMONTHMODIFIEDFOLLOWING":
		return HalfMonthModifiedFollowing, nil
	case "P", "PRECEDING":
		return Preceding, nil
	case "MP", "MODIFIEDPRECEDING":
		return ModifiedPreceding, nil
	case "U", "NONE", "UNADJUSTED":
		return Unadjusted, nil
	case "N", "NEAREST":
		return Nearest, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownConvention)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Convention) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Convention) UnmarshalText(b []byte) error {
	v, err := ParseConvention(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
