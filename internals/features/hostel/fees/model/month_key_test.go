package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthKeyString(t *testing.T) {
	key := NewMonthKey(time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, "January, 2026", key.String())
}

func TestParseMonthKey(t *testing.T) {
	key, err := ParseMonthKey("February, 2025")
	require.NoError(t, err)
	assert.Equal(t, 2025, key.Year)
	assert.Equal(t, time.February, key.Month)

	key, err = ParseMonthKey("December,2024")
	require.NoError(t, err)
	assert.Equal(t, time.December, key.Month)

	for _, bad := range []string{"", "January", "Januari, 2025", "March, abc", "13, 2025"} {
		_, err := ParseMonthKey(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestParseMonthKeyRoundTrip(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		key := MonthKey{Year: 2026, Month: m}
		parsed, err := ParseMonthKey(key.String())
		require.NoError(t, err)
		assert.Equal(t, key, parsed)
	}
}

func TestMonthKeyCompare(t *testing.T) {
	jan := MonthKey{Year: 2026, Month: time.January}
	feb := MonthKey{Year: 2026, Month: time.February}
	decPrev := MonthKey{Year: 2025, Month: time.December}

	assert.Negative(t, jan.Compare(feb))
	assert.Positive(t, feb.Compare(jan))
	assert.Zero(t, jan.Compare(jan))
	assert.Negative(t, decPrev.Compare(jan))
}
