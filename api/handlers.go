/*
handlers.go - HTTP API handlers for the payroll service

PURPOSE:
  Exposes the employee directory and pay calculator via REST API. Handles
  HTTP request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees                   List all employees
    POST   /api/employees                   Create employee
    GET    /api/employees/{id}              Get employee details
    PUT    /api/employees/{id}              Full-replace update
    DELETE /api/employees/{id}              Delete (cascades working days)

  Pay:
    POST   /api/employees/{id}/compute-pay  Take-home pay over a date range

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store:   Database access
  - Numbers: Employee number generation (injected random source)

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (normalization, calculator)
  4. Persist / load via store
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, invalid date range
  - 404: Employee not found
  - 500: Persistence failures

  Out-of-range working-day numbers are NOT errors: normalization silently
  drops them.

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - payroll/calculator.go: The pay computation
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

const dateLayout = "2006-01-02"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Numbers *payroll.NumberGenerator
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:   store,
		Numbers: payroll.NewNumberGenerator(),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees with their working-day sets.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i := range employees {
		dtos[i] = toEmployeeDTO(&employees[i])
	}

	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// CreateEmployee creates a new employee. Working-day numbers are normalized
// (duplicates and out-of-range values dropped, sorted ascending) and the
// employee number is assigned from last name + birth date.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	req, dateOfBirth, ok := h.decodeEmployeeRequest(w, r)
	if !ok {
		return
	}

	emp := &payroll.Employee{
		EmployeeNumber: h.Numbers.Generate(req.LastName, dateOfBirth),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DateOfBirth:    dateOfBirth,
		DailyRate:      payroll.Money{Value: req.DailyRate},
		WorkingDays:    payroll.BuildWorkingDays(req.WorkingDayNumbers),
	}

	if err := h.Store.CreateEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}

	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// UpdateEmployee overwrites all scalar fields, regenerates the employee
// number, and replaces the entire working-day set. This is a full replace,
// not a merge.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, dateOfBirth, ok := h.decodeEmployeeRequest(w, r)
	if !ok {
		return
	}

	emp := &payroll.Employee{
		ID:             id,
		EmployeeNumber: h.Numbers.Generate(req.LastName, dateOfBirth),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DateOfBirth:    dateOfBirth,
		DailyRate:      payroll.Money{Value: req.DailyRate},
		WorkingDays:    payroll.BuildWorkingDays(req.WorkingDayNumbers),
	}

	found, err := h.Store.UpdateEmployee(r.Context(), emp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update employee", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// DeleteEmployee removes an employee and all its working days.
// Deleting an unknown or already-deleted id is a 404, not a crash.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.Store.DeleteEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// decodeEmployeeRequest parses and validates the shared create/update body.
// On failure it writes the error response and returns ok=false.
func (h *Handler) decodeEmployeeRequest(w http.ResponseWriter, r *http.Request) (EmployeeRequest, time.Time, bool) {
	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return req, time.Time{}, false
	}

	dateOfBirth, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date_of_birth format (use YYYY-MM-DD)", err)
		return req, time.Time{}, false
	}

	if err := payroll.ValidateEmployee(req.FirstName, req.LastName, payroll.Money{Value: req.DailyRate}); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee", err)
		return req, time.Time{}, false
	}

	return req, dateOfBirth, true
}

// =============================================================================
// PAY HANDLERS
// =============================================================================

// ComputeTakeHomePay computes pay for an inclusive date range:
// 2x the daily rate on each working day, plus 1x the daily rate on the
// employee's birthday (month/day match, every year).
func (h *Handler) ComputeTakeHomePay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req TakeHomePayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}

	// Reject bad ranges before touching storage.
	if endDate.Before(startDate) {
		writeError(w, http.StatusBadRequest, "end_date must be greater than or equal to start_date", nil)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	total, err := payroll.ComputeTakeHomePay(emp, startDate, endDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}

	writeJSON(w, http.StatusOK, TakeHomePayDTO{
		EmployeeNumber: emp.EmployeeNumber,
		StartDate:      startDate.Format(dateLayout),
		EndDate:        endDate.Format(dateLayout),
		TakeHomePay:    total.String(),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
