package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthKey identifies a calendar month for fee bookkeeping. It is kept
// structured internally; the display form "January, 2006" appears only at
// the JSONB/API boundary.
type MonthKey struct {
	Year  int
	Month time.Month
}

func NewMonthKey(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%s, %d", k.Month.String(), k.Year)
}

// ParseMonthKey parses the display form back into a structured key.
func ParseMonthKey(s string) (MonthKey, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return MonthKey{}, fmt.Errorf("invalid month key %q", s)
	}
	name := strings.TrimSpace(parts[0])
	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid year in month key %q", s)
	}
	for m := time.January; m <= time.December; m++ {
		if m.String() == name {
			return MonthKey{Year: year, Month: m}, nil
		}
	}
	return MonthKey{}, fmt.Errorf("invalid month name in month key %q", s)
}

// Compare orders keys by (year, month index). Negative means k is earlier.
func (k MonthKey) Compare(o MonthKey) int {
	if k.Year != o.Year {
		return k.Year - o.Year
	}
	return int(k.Month) - int(o.Month)
}
