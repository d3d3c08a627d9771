package payroll

import (
	"sort"
	"time"
)

// dayNames maps day numbers 1..7 to canonical weekday names.
// Index 0 is unused: 0 means "none" in caller input and is filtered out.
var dayNames = [8]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName returns the canonical name for a day number in [1,7], or ""
// for anything else.
func DayName(dayNumber int) string {
	if dayNumber < 1 || dayNumber > 7 {
		return ""
	}
	return dayNames[dayNumber]
}

// WeekdayNumber maps a time.Weekday to the 1..7 Monday-first scale.
func WeekdayNumber(wd time.Weekday) int {
	return (int(wd)+6)%7 + 1
}

// NormalizeDayNumbers collapses duplicates, drops values outside [1,7],
// and returns the result in ascending order.
//
// Dropping out-of-range values is silent: callers sending 0 or 8 get a
// smaller set back, not an error. Idempotent - normalizing an already
// normalized list returns the same list.
func NormalizeDayNumbers(dayNumbers []int) []int {
	seen := make(map[int]bool, len(dayNumbers))
	normalized := make([]int, 0, len(dayNumbers))

	for _, n := range dayNumbers {
		if n < 1 || n > 7 {
			continue
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		normalized = append(normalized, n)
	}

	sort.Ints(normalized)
	return normalized
}

// BuildWorkingDays converts raw caller-supplied day numbers into the
// employee's working-day set, deriving the canonical name for each day.
func BuildWorkingDays(dayNumbers []int) []WorkingDay {
	normalized := NormalizeDayNumbers(dayNumbers)
	days := make([]WorkingDay, len(normalized))
	for i, n := range normalized {
		days[i] = WorkingDay{DayNumber: n, DayName: DayName(n)}
	}
	return days
}
