package imm_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fincal/imm"
	"github.com/meenmo/fincal/utils"
)

var date = utils.Date

func TestIsIMMDate(t *testing.T) {
	t.Parallel()

	assert.True(t, imm.IsIMMDate(date(2023, 12, 20), true))
	assert.True(t, imm.IsIMMDate(date(2023, 11, 15), false))
	assert.False(t, imm.IsIMMDate(date(2023, 11, 15), true), "november is off cycle")
	assert.False(t, imm.IsIMMDate(date(2023, 12, 13), false), "second wednesday")
	assert.False(t, imm.IsIMMDate(date(2023, 12, 21), false), "thursday")
}

func TestCode(t *testing.T) {
	t.Parallel()

	code, ok := imm.Code(date(2023, 12, 20))
	require.True(t, ok)
	assert.Equal(t, "Z3", code)

	code, ok = imm.Code(date(2024, 3, 20))
	require.True(t, ok)
	assert.Equal(t, "H4", code)

	code, ok = imm.Code(date(2023, 11, 15))
	require.True(t, ok)
	assert.Equal(t, "X3", code)

	_, ok = imm.Code(date(2023, 12, 19))
	assert.False(t, ok)
}

func TestDate(t *testing.T) {
	t.Parallel()

	ref := date(2023, 10, 29)
	tests := []struct {
		code string
		want time.Time
	}{
		{"X3", date(2023, 11, 15)},
		{"Z3", date(2023, 12, 20)},
		{"z3", date(2023, 12, 20)},
		{"H4", date(2024, 3, 20)},
		{"H3", date(2033, 3, 16)}, // already expired, next decade
		{"M0", date(2030, 6, 19)},
	}
	for _, tt := range tests {
		got, err := imm.Date(tt.code, ref)
		require.NoError(t, err, tt.code)
		assert.Equal(t, tt.want, got, tt.code)
	}

	// Expiry on the reference date itself is not rolled.
	got, err := imm.Date("Z3", date(2023, 12, 20))
	require.NoError(t, err)
	assert.Equal(t, date(2023, 12, 20), got)
}

func TestDate_Malformed(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"", "Z", "Z33", "A3", "ZZ", "3Z"} {
		_, err := imm.Date(code, date(2023, 10, 29))
		assert.ErrorIs(t, err, imm.ErrMalformedCode, code)
	}
}

func TestIsIMMCode(t *testing.T) {
	t.Parallel()

	assert.True(t, imm.IsIMMCode("F5", false))
	assert.False(t, imm.IsIMMCode("F5", true))
	assert.True(t, imm.IsIMMCode("U9", true))
	assert.False(t, imm.IsIMMCode("I9", false))
}

func TestNextDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, date(2023, 12, 20), imm.NextDate(date(2023, 10, 29), true))
	assert.Equal(t, date(2023, 11, 15), imm.NextDate(date(2023, 10, 29), false))
	assert.Equal(t, date(2024, 3, 20), imm.NextDate(date(2023, 12, 20), true))
	assert.Equal(t, date(2024, 1, 17), imm.NextDate(date(2023, 12, 20), false))
	assert.Equal(t, date(2023, 12, 20), imm.NextDate(date(2023, 12, 19), true))
	assert.Equal(t, date(2024, 3, 20), imm.NextDate(date(2023, 12, 22), true))

	assert.Equal(t, "Z3", imm.NextCode(date(2023, 10, 29), true))
	assert.Equal(t, "X3", imm.NextCode(date(2023, 10, 29), false))
}

func TestNthWeekday(t *testing.T) {
	t.Parallel()

	got, ok := imm.NthWeekday(3, time.Wednesday, time.November, 2023)
	require.True(t, ok)
	assert.Equal(t, date(2023, 11, 15), got)

	got, ok = imm.NthWeekday(5, time.Wednesday, time.November, 2023)
	require.True(t, ok)
	assert.Equal(t, date(2023, 11, 29), got)

	got, ok = imm.NthWeekday(1, time.Sunday, time.October, 2023)
	require.True(t, ok)
	assert.Equal(t, date(2023, 10, 1), got)

	_, ok = imm.NthWeekday(5, time.Wednesday, time.February, 2023)
	assert.False(t, ok)
	_, ok = imm.NthWeekday(0, time.Wednesday, time.February, 2023)
	assert.False(t, ok)
	_, ok = imm.NthWeekday(6, time.Wednesday, time.March, 2023)
	assert.False(t, ok)
}
