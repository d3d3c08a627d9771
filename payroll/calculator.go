/*
calculator.go - Take-home pay computation

PURPOSE:
  Computes an employee's take-home pay over an inclusive date range by
  applying two independent rules to each calendar day:

    1. Working day: the weekday is in the employee's working-day set
       -> 2 x daily rate
    2. Birthday: the day's month and day-of-month match the employee's
       birth month/day (year ignored, recurs every year)
       -> 1 x daily rate

  Both rules can fire on the same date - a birthday on a working day
  earns 3 x the daily rate that day.

EDGE CASES:
  - endDate < startDate is rejected with ErrInvalidRange before any work.
  - Time-of-day on either bound is truncated to the date before iterating.
  - An employee born Feb 29 never matches the birthday rule in non-leap
    years: the check is literal month/day equality.

The scan is O(days in range) and streams day by day; the date list is
never materialized, so unbounded ranges cost memory nothing.
*/
package payroll

import "time"

// ComputeTakeHomePay computes the total pay for the inclusive range
// [startDate, endDate]. Pure: reads the employee record, writes nothing.
func ComputeTakeHomePay(emp *Employee, startDate, endDate time.Time) (Money, error) {
	start := truncateToDate(startDate)
	end := truncateToDate(endDate)

	if end.Before(start) {
		return Money{}, &InvalidRangeError{Start: start, End: end}
	}

	birthMonth := emp.DateOfBirth.Month()
	birthDay := emp.DateOfBirth.Day()

	total := ZeroMoney()
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if emp.WorksOn(WeekdayNumber(d.Weekday())) {
			total = total.Add(emp.DailyRate.Mul(2))
		}
		if d.Month() == birthMonth && d.Day() == birthDay {
			total = total.Add(emp.DailyRate)
		}
	}

	return total, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
