/*
Package payroll contains the core domain model and pay calculation logic.

PURPOSE:
  This package holds everything with domain meaning: the Employee record,
  its set of designated working days, the fixed-point Money type, the
  take-home pay calculator, and the employee-number generator. It has no
  knowledge of HTTP or SQL - those live in api/ and store/sqlite/.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: A monetary amount backed by decimal.Decimal (2 decimal places)
  - Employee: Identity, birth date, daily rate, and working-day set
  - WorkingDay: A weekday the employee is scheduled to work (Monday=1..Sunday=7)

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors on money
  2. Purity: Calculation reads domain values, performs no I/O
  3. Ownership: WorkingDays have no lifecycle outside their Employee

SEE ALSO:
  - calculator.go: Take-home pay computation
  - workdays.go: Day-number normalization and canonical names
  - number.go: Employee number generation
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Fixed-point monetary amount
// =============================================================================

// Money is a monetary amount with 2 decimal places of precision.
type Money struct {
	Value decimal.Decimal
}

func NewMoney(value float64) Money {
	return Money{Value: decimal.NewFromFloat(value)}
}

func NewMoneyFromInt(value int) Money {
	return Money{Value: decimal.NewFromInt(int64(value))}
}

// ParseMoney parses a decimal string like "100.00".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Value: d}, nil
}

func ZeroMoney() Money { return Money{Value: decimal.Zero} }

func (m Money) Add(b Money) Money              { return Money{Value: m.Value.Add(b.Value)} }
func (m Money) Mul(n int64) Money              { return Money{Value: m.Value.Mul(decimal.NewFromInt(n))} }
func (m Money) Neg() Money                     { return Money{Value: m.Value.Neg()} }
func (m Money) IsNegative() bool               { return m.Value.IsNegative() }
func (m Money) IsZero() bool                   { return m.Value.IsZero() }
func (m Money) Equal(b Money) bool             { return m.Value.Equal(b.Value) }

// String renders the amount with exactly 2 decimal places.
func (m Money) String() string { return m.Value.StringFixed(2) }

// =============================================================================
// EMPLOYEE - Identity, rate, and working-day set
// =============================================================================

// Employee is the stored payroll record.
//
// EmployeeNumber is a derived display identifier, regenerated whenever the
// record is updated. It is NOT unique - ID is the only key.
type Employee struct {
	ID             string
	EmployeeNumber string
	FirstName      string
	LastName       string
	DateOfBirth    time.Time // date-only, time-of-day irrelevant
	DailyRate      Money     // never negative
	WorkingDays    []WorkingDay

	// Audit fields
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkingDay is a weekday the employee normally works.
// DayName is always the canonical name for DayNumber; it is never set
// independently.
type WorkingDay struct {
	DayNumber int    // 1 = Monday .. 7 = Sunday
	DayName   string // Monday..Sunday, derived from DayNumber
}

// WorkingDayNumbers returns the employee's day numbers in stored (ascending)
// order.
func (e *Employee) WorkingDayNumbers() []int {
	nums := make([]int, len(e.WorkingDays))
	for i, d := range e.WorkingDays {
		nums[i] = d.DayNumber
	}
	return nums
}

// WorksOn reports whether the given weekday number is in the employee's
// working-day set.
func (e *Employee) WorksOn(dayNumber int) bool {
	for _, d := range e.WorkingDays {
		if d.DayNumber == dayNumber {
			return true
		}
	}
	return false
}
