package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedMonthIdempotent(t *testing.T) {
	fs := FeesStatus{}
	key := MonthKey{Year: 2026, Month: time.March}

	assert.True(t, fs.SeedMonth(key, 6000))
	assert.False(t, fs.SeedMonth(key, 6000), "second seed for the same month must be a no-op")

	entry := fs["March, 2026"]
	assert.Equal(t, FeeStatusNotPaid, entry.Status)
	assert.Equal(t, 6000.0, entry.FeesAmount)
	assert.False(t, entry.PenaltyApplied)
	assert.Nil(t, entry.PaidDate)
}

func TestSeedMonthKeepsPaidEntry(t *testing.T) {
	paid := "2026-03-02"
	key := MonthKey{Year: 2026, Month: time.March}
	fs := FeesStatus{
		key.String(): {Status: FeeStatusPaid, FeesAmount: 6000, PaidDate: &paid},
	}

	assert.False(t, fs.SeedMonth(key, 6000))
	assert.Equal(t, FeeStatusPaid, fs[key.String()].Status)
}

func TestApplyPenalty(t *testing.T) {
	key := MonthKey{Year: 2026, Month: time.April}

	t.Run("missing entry is created penalised", func(t *testing.T) {
		fs := FeesStatus{}
		assert.True(t, fs.ApplyPenalty(key, 6000))
		entry := fs[key.String()]
		assert.Equal(t, FeeStatusNotPaid, entry.Status)
		assert.True(t, entry.PenaltyApplied)
		assert.Equal(t, float64(MonthlyPenaltyAmount), entry.PenaltyAmount)
	})

	t.Run("unpaid entry gets the flat fee", func(t *testing.T) {
		fs := FeesStatus{}
		fs.SeedMonth(key, 6000)
		assert.True(t, fs.ApplyPenalty(key, 6000))
		assert.False(t, fs.ApplyPenalty(key, 6000), "penalty must be idempotent")
	})

	t.Run("paid entry is untouched", func(t *testing.T) {
		paid := "2026-04-01"
		fs := FeesStatus{key.String(): {Status: FeeStatusPaid, FeesAmount: 6000, PaidDate: &paid}}
		assert.False(t, fs.ApplyPenalty(key, 6000))
		assert.False(t, fs[key.String()].PenaltyApplied)
	})
}

func TestPendingMonths(t *testing.T) {
	paid := "2026-02-03"
	fs := FeesStatus{
		"January, 2026":  {Status: FeeStatusNotPaid, FeesAmount: 6000, PenaltyApplied: true, PenaltyAmount: 500},
		"February, 2026": {Status: FeeStatusPaid, FeesAmount: 6000, PaidDate: &paid},
		"March, 2026":    {Status: FeeStatusNotPaid, FeesAmount: 6000},
		"gibberish":      {Status: FeeStatusNotPaid, FeesAmount: 6000},
	}

	pending := fs.PendingMonths(MonthKey{Year: 2026, Month: time.February})
	require.Len(t, pending, 1, "February is paid, March is past the cutoff, bad keys are skipped")
	assert.Equal(t, "January, 2026", pending[0].Month)
	assert.Equal(t, 6500.0, pending[0].TotalAmount)
}

func TestPendingMonthsSorted(t *testing.T) {
	fs := FeesStatus{
		"March, 2026":    {Status: FeeStatusNotPaid, FeesAmount: 100},
		"January, 2026":  {Status: FeeStatusNotPaid, FeesAmount: 100},
		"December, 2025": {Status: FeeStatusNotPaid, FeesAmount: 100},
	}

	pending := fs.PendingMonths(MonthKey{Year: 2026, Month: time.December})
	require.Len(t, pending, 3)
	assert.Equal(t, "December, 2025", pending[0].Month)
	assert.Equal(t, "January, 2026", pending[1].Month)
	assert.Equal(t, "March, 2026", pending[2].Month)
}
