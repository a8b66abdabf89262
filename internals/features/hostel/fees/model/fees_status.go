package model

import "sort"

const (
	FeeStatusPaid    = "Paid"
	FeeStatusNotPaid = "Not Paid"

	// Flat late fee applied to every unpaid month by the monthly penalty job.
	MonthlyPenaltyAmount = 500
)

// FeeMonthStatus is one month's entry in a candidate's fee ledger.
type FeeMonthStatus struct {
	Status         string  `json:"status"`
	FeesAmount     float64 `json:"feesAmount"`
	PenaltyApplied bool    `json:"penaltyApplied"`
	PenaltyAmount  float64 `json:"penaltyAmount"`
	PaidDate       *string `json:"paidDate"`
}

// FeesStatus maps month keys ("January, 2006") to their entries. Stored as
// JSONB on the active candidate row.
type FeesStatus map[string]FeeMonthStatus

func NewUnpaidMonth(feesAmount float64) FeeMonthStatus {
	return FeeMonthStatus{
		Status:         FeeStatusNotPaid,
		FeesAmount:     feesAmount,
		PenaltyApplied: false,
		PenaltyAmount:  0,
		PaidDate:       nil,
	}
}

// SeedMonth inserts an unpaid entry for key if absent. Reports whether the
// map changed, which keeps the monthly rollover idempotent.
func (fs FeesStatus) SeedMonth(key MonthKey, feesAmount float64) bool {
	if _, ok := fs[key.String()]; ok {
		return false
	}
	fs[key.String()] = NewUnpaidMonth(feesAmount)
	return true
}

// ApplyPenalty enforces the late fee for key. A missing entry is created
// already penalised; an unpaid entry gets penaltyApplied/amount corrected;
// a paid entry is left alone. Reports whether the map changed.
func (fs FeesStatus) ApplyPenalty(key MonthKey, feesAmount float64) bool {
	entry, ok := fs[key.String()]
	if !ok {
		fs[key.String()] = FeeMonthStatus{
			Status:         FeeStatusNotPaid,
			FeesAmount:     feesAmount,
			PenaltyApplied: true,
			PenaltyAmount:  MonthlyPenaltyAmount,
			PaidDate:       nil,
		}
		return true
	}
	if entry.Status != FeeStatusNotPaid {
		return false
	}
	if entry.PenaltyApplied && entry.PenaltyAmount == MonthlyPenaltyAmount {
		return false
	}
	entry.PenaltyApplied = true
	entry.PenaltyAmount = MonthlyPenaltyAmount
	entry.FeesAmount = feesAmount
	fs[key.String()] = entry
	return true
}

// PendingMonth is one line of a fee reminder: an unpaid month with its
// totals.
type PendingMonth struct {
	Month         string  `json:"month"`
	Amount        float64 `json:"amount"`
	PenaltyAmount float64 `json:"penaltyAmount"`
	TotalAmount   float64 `json:"totalAmount"`
}

// PendingMonths lists every unpaid month at or before cutoff, earliest
// first. Keys that do not parse are skipped. Pure function, no side
// effects.
func (fs FeesStatus) PendingMonths(cutoff MonthKey) []PendingMonth {
	type keyed struct {
		key   MonthKey
		entry FeeMonthStatus
	}
	var rows []keyed
	for raw, entry := range fs {
		key, err := ParseMonthKey(raw)
		if err != nil {
			continue
		}
		if key.Compare(cutoff) > 0 {
			continue
		}
		if entry.Status == FeeStatusPaid {
			continue
		}
		rows = append(rows, keyed{key: key, entry: entry})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].key.Compare(rows[j].key) < 0 })

	out := make([]PendingMonth, 0, len(rows))
	for _, r := range rows {
		penalty := 0.0
		if r.entry.PenaltyApplied {
			penalty = r.entry.PenaltyAmount
		}
		out = append(out, PendingMonth{
			Month:         r.key.String(),
			Amount:        r.entry.FeesAmount,
			PenaltyAmount: penalty,
			TotalAmount:   r.entry.FeesAmount + penalty,
		})
	}
	return out
}
