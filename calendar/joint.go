package calendar

import (
	"strings"
	"time"
)

// Joint is the logical conjunction of its member calendars: a date is a
// business day only if every member says so. Members are fixed at construction
// and evaluated in order, so put the most restrictive calendar first.
//
// A Joint with no members treats every date as a business day.
type Joint struct {
	members []Calendar
}

// NewJoint builds a joint calendar over a copy of cals.
func NewJoint(cals ...Calendar) *Joint {
	members := make([]Calendar, len(cals))
	copy(members, cals)
	return &Joint{members: members}
}

// IsBusinessDay implements Calendar.
func (j *Joint) IsBusinessDay(t time.Time) bool {
	for _, c := range j.members {
		if !c.IsBusinessDay(t) {
			return false
		}
	}
	return true
}

// YearRange implements Ranged as the intersection of the member ranges.
func (j *Joint) YearRange() (first, last int) {
	first, last = 1, 9999
	for _, c := range j.members {
		f, l := YearRange(c)
		first, last = max(first, f), min(last, l)
	}
	return first, last
}

// Len returns the number of member calendars.
func (j *Joint) Len() int {
	return len(j.members)
}

func (j *Joint) String() string {
	names := make([]string, len(j.members))
	for i, c := range j.members {
		names[i] = Name(c)
	}
	return strings.Join(names, "+")
}
