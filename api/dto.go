/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY FIELDS:
  daily_rate on requests uses decimal.Decimal, which accepts either a JSON
  number or a string. Responses render monetary values as strings with
  exactly 2 decimal places ("100.00"). No float64 conversion touches
  monetary values.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - payroll/types.go: The domain model these map onto
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses. Working days are
// returned normalized: deduplicated and sorted ascending.
type EmployeeDTO struct {
	ID                string          `json:"id"`
	EmployeeNumber    string          `json:"employee_number"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	DateOfBirth       string          `json:"date_of_birth"`
	DailyRate         string          `json:"daily_rate"`
	WorkingDays       []WorkingDayDTO `json:"working_days"`
	WorkingDayNumbers []int           `json:"working_day_numbers"`
	CreatedAt         string          `json:"created_at,omitempty"`
}

// WorkingDayDTO is one designated working day of the week.
type WorkingDayDTO struct {
	DayNumber int    `json:"day_number"`
	DayName   string `json:"day_name"`
}

// EmployeeRequest is the request body for both create and update.
// Update has full-replace semantics: every field overwrites the stored one
// and the working-day set is rebuilt from working_day_numbers.
type EmployeeRequest struct {
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	DateOfBirth       string          `json:"date_of_birth"`
	DailyRate         decimal.Decimal `json:"daily_rate"`
	WorkingDayNumbers []int           `json:"working_day_numbers"`
}

// TakeHomePayRequest asks for pay over an inclusive date range.
type TakeHomePayRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// TakeHomePayDTO is the computed pay for a date range.
type TakeHomePayDTO struct {
	EmployeeNumber string `json:"employee_number"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	TakeHomePay    string `json:"take_home_pay"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toEmployeeDTO(emp *payroll.Employee) EmployeeDTO {
	days := make([]WorkingDayDTO, len(emp.WorkingDays))
	for i, d := range emp.WorkingDays {
		days[i] = WorkingDayDTO{DayNumber: d.DayNumber, DayName: d.DayName}
	}

	return EmployeeDTO{
		ID:                emp.ID,
		EmployeeNumber:    emp.EmployeeNumber,
		FirstName:         emp.FirstName,
		LastName:          emp.LastName,
		DateOfBirth:       emp.DateOfBirth.Format("2006-01-02"),
		DailyRate:         emp.DailyRate.String(),
		WorkingDays:       days,
		WorkingDayNumbers: emp.WorkingDayNumbers(),
		CreatedAt:         emp.CreatedAt.Format(time.RFC3339),
	}
}
