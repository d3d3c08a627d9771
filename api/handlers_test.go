/*
handlers_test.go - HTTP contract tests for the payroll API

Tests for:
- Employee CRUD (create, get, list, update, delete)
- Take-home pay computation endpoint
- Not-found and invalid-range error mapping
*/
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	handler := NewHandler(store)
	// Deterministic employee numbers so responses are assertable.
	handler.Numbers = &payroll.NumberGenerator{Intn: func(int) int { return 4217 }}

	srv := httptest.NewServer(NewRouter(handler))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, out.Bytes()
}

func createEmployee(t *testing.T, srv *httptest.Server, body map[string]any) EmployeeDTO {
	t.Helper()

	resp, raw := doJSON(t, http.MethodPost, srv.URL+"/api/employees", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", raw)

	var dto EmployeeDTO
	require.NoError(t, json.Unmarshal(raw, &dto))
	return dto
}

func adaRequest() map[string]any {
	return map[string]any{
		"first_name":          "Ada",
		"last_name":           "Lovelace",
		"date_of_birth":       "1990-01-05",
		"daily_rate":          "100.00",
		"working_day_numbers": []int{5, 1, 3, 1},
	}
}

// =============================================================================
// CREATE / GET
// =============================================================================

func TestCreateEmployee_NormalizesAndAssignsNumber(t *testing.T) {
	// GIVEN: A create request with duplicate, unsorted day numbers
	// THEN: The stored record has an id, the generated number, and a
	//       deduplicated ascending day set

	srv := newTestServer(t)

	dto := createEmployee(t, srv, adaRequest())

	assert.NotEmpty(t, dto.ID)
	assert.Equal(t, "LOV-04217-05JAN1990", dto.EmployeeNumber)
	assert.Equal(t, "100.00", dto.DailyRate)
	assert.Equal(t, []int{1, 3, 5}, dto.WorkingDayNumbers)
	require.Len(t, dto.WorkingDays, 3)
	assert.Equal(t, "Monday", dto.WorkingDays[0].DayName)
}

func TestCreateEmployee_DropsInvalidDayNumbersSilently(t *testing.T) {
	// Out-of-range day numbers are filtered, not rejected.
	srv := newTestServer(t)

	req := adaRequest()
	req["working_day_numbers"] = []int{0, 2, 8, 100}
	dto := createEmployee(t, srv, req)

	assert.Equal(t, []int{2}, dto.WorkingDayNumbers)
}

func TestCreateEmployee_RejectsInvalidInput(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"empty first name", func(m map[string]any) { m["first_name"] = "" }},
		{"empty last name", func(m map[string]any) { m["last_name"] = "" }},
		{"negative daily rate", func(m map[string]any) { m["daily_rate"] = "-1.00" }},
		{"bad date", func(m map[string]any) { m["date_of_birth"] = "05/01/1990" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := adaRequest()
			tc.mutate(req)

			resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/employees", req)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGetEmployee_RoundTrip(t *testing.T) {
	srv := newTestServer(t)
	created := createEmployee(t, srv, adaRequest())

	resp, raw := doJSON(t, http.MethodGet, srv.URL+"/api/employees/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got EmployeeDTO
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "1990-01-05", got.DateOfBirth)
	assert.Equal(t, []int{1, 3, 5}, got.WorkingDayNumbers)
}

func TestGetEmployee_UnknownID_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/employees/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListEmployees_ReturnsAll(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, adaRequest())

	second := adaRequest()
	second["first_name"] = "Alan"
	second["last_name"] = "Turing"
	createEmployee(t, srv, second)

	resp, raw := doJSON(t, http.MethodGet, srv.URL+"/api/employees", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dtos []EmployeeDTO
	require.NoError(t, json.Unmarshal(raw, &dtos))
	assert.Len(t, dtos, 2)
}

// =============================================================================
// UPDATE / DELETE
// =============================================================================

func TestUpdateEmployee_FullReplace(t *testing.T) {
	// GIVEN: An employee working {1,3,5}
	// WHEN: Updating with the disjoint set {2,4} and a new name
	// THEN: Only the new set remains and the number is regenerated

	srv := newTestServer(t)
	created := createEmployee(t, srv, adaRequest())

	update := map[string]any{
		"first_name":          "Augusta",
		"last_name":           "King",
		"date_of_birth":       "1990-01-05",
		"daily_rate":          "150.00",
		"working_day_numbers": []int{4, 2},
	}

	resp, raw := doJSON(t, http.MethodPut, srv.URL+"/api/employees/"+created.ID, update)
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", raw)

	var got EmployeeDTO
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "KIN-04217-05JAN1990", got.EmployeeNumber, "number regenerated from new last name")
	assert.Equal(t, []int{2, 4}, got.WorkingDayNumbers)
	assert.Equal(t, "150.00", got.DailyRate)

	// Get confirms the replacement stuck.
	_, raw = doJSON(t, http.MethodGet, srv.URL+"/api/employees/"+created.ID, nil)
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, []int{2, 4}, got.WorkingDayNumbers)
	assert.Equal(t, "Augusta", got.FirstName)
}

func TestUpdateEmployee_UnknownID_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPut, srv.URL+"/api/employees/no-such-id", adaRequest())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteEmployee_ThenGet_NotFound(t *testing.T) {
	srv := newTestServer(t)
	created := createEmployee(t, srv, adaRequest())

	resp, _ := doJSON(t, http.MethodDelete, srv.URL+"/api/employees/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/employees/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Repeated delete is a not-found, not a crash.
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/employees/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// COMPUTE PAY
// =============================================================================

func TestComputeTakeHomePay_WorkedExample(t *testing.T) {
	// Born 1990-01-05, rate 100.00, works Mon/Wed/Fri.
	// 2024-01-01..07: 3 working days x 200 + birthday bonus = 700.00
	srv := newTestServer(t)
	created := createEmployee(t, srv, adaRequest())

	resp, raw := doJSON(t, http.MethodPost, srv.URL+"/api/employees/"+created.ID+"/compute-pay", map[string]any{
		"start_date": "2024-01-01",
		"end_date":   "2024-01-07",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", raw)

	var got TakeHomePayDTO
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "LOV-04217-05JAN1990", got.EmployeeNumber)
	assert.Equal(t, "2024-01-01", got.StartDate)
	assert.Equal(t, "2024-01-07", got.EndDate)
	assert.Equal(t, "700.00", got.TakeHomePay)
}

func TestComputeTakeHomePay_InvalidRange_BadRequest(t *testing.T) {
	srv := newTestServer(t)
	created := createEmployee(t, srv, adaRequest())

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/employees/"+created.ID+"/compute-pay", map[string]any{
		"start_date": "2024-01-07",
		"end_date":   "2024-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestComputeTakeHomePay_UnknownID_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/employees/no-such-id/compute-pay", map[string]any{
		"start_date": "2024-01-01",
		"end_date":   "2024-01-07",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
