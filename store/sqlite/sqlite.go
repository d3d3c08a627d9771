/*
Package sqlite provides the SQLite-backed employee store.

PURPOSE:
  Implements persistence for employee records and their working-day sets
  using SQLite. In production, the same patterns apply to PostgreSQL - only
  minor SQL dialect differences.

KEY TABLES:
  employees:              One row per employee (scalar fields)
  employee_working_days:  One row per employee per working day, foreign key
                          to employees with ON DELETE CASCADE

ATOMICITY:
  Every mutation is a single database transaction:
  - Create: employee insert + all working-day inserts
  - Update: scalar overwrite + delete-all + reinsert of working days
  - Delete: employee delete, cascading to working days
  If the database aborts midway, the whole operation fails with nothing
  partially applied.

WORKING-DAY REPLACEMENT:
  Update never diffs the old set against the new one. The previous rows are
  deleted and the normalized input is reinserted wholesale.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead. Two concurrent
  updates on the same id resolve as last-write-wins.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) and foreign keys on:
  - Multiple readers don't block
  - Single writer at a time
  - Cascade delete enforced by the engine

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - payroll/types.go: Domain types stored here
  - api/handlers.go: The HTTP layer driving this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/payroll-engine/payroll"
)

const dateLayout = "2006-01-02"

// Store persists employees and their working-day sets in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Employees (scalar fields)
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		employee_number TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		daily_rate TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Working days (owned by employee, cascade-deleted with the parent)
	CREATE TABLE IF NOT EXISTS employee_working_days (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		day_number INTEGER NOT NULL,
		day_name TEXT NOT NULL,
		UNIQUE(employee_id, day_number)
	);

	CREATE INDEX IF NOT EXISTS idx_working_days_employee
		ON employee_working_days(employee_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// =============================================================================
// MUTATIONS
// =============================================================================

// CreateEmployee persists a new employee and its working-day set as one
// transaction. The store assigns the id; the caller supplies everything else.
func (s *Store) CreateEmployee(ctx context.Context, emp *payroll.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp.ID = uuid.NewString()
	now := time.Now().UTC()
	emp.CreatedAt = now
	emp.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO employees
		(id, employee_number, first_name, last_name, date_of_birth, daily_rate, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		emp.ID,
		emp.EmployeeNumber,
		emp.FirstName,
		emp.LastName,
		emp.DateOfBirth.Format(dateLayout),
		emp.DailyRate.Value.String(),
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}

	if err := s.insertWorkingDays(ctx, tx, emp.ID, emp.WorkingDays); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateEmployee overwrites all scalar fields and replaces the entire
// working-day set in one transaction. Returns false if the id is unknown.
func (s *Store) UpdateEmployee(ctx context.Context, emp *payroll.Employee) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	emp.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE employees
		SET employee_number = ?, first_name = ?, last_name = ?,
		    date_of_birth = ?, daily_rate = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := tx.ExecContext(ctx, query,
		emp.EmployeeNumber,
		emp.FirstName,
		emp.LastName,
		emp.DateOfBirth.Format(dateLayout),
		emp.DailyRate.Value.String(),
		now.Format(time.RFC3339),
		emp.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update employee: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	// Full replace: discard the previous set, reinsert from the new input.
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM employee_working_days WHERE employee_id = ?", emp.ID); err != nil {
		return false, fmt.Errorf("failed to clear working days: %w", err)
	}
	if err := s.insertWorkingDays(ctx, tx, emp.ID, emp.WorkingDays); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

// DeleteEmployee removes an employee; working days cascade with the parent
// row. Returns false if the id is unknown.
func (s *Store) DeleteEmployee(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete employee: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *Store) insertWorkingDays(ctx context.Context, db execer, employeeID string, days []payroll.WorkingDay) error {
	query := `
		INSERT INTO employee_working_days (employee_id, day_number, day_name)
		VALUES (?, ?, ?)
	`
	for _, d := range days {
		if _, err := db.ExecContext(ctx, query, employeeID, d.DayNumber, d.DayName); err != nil {
			return fmt.Errorf("failed to insert working day %d: %w", d.DayNumber, err)
		}
	}
	return nil
}

// =============================================================================
// QUERIES
// =============================================================================

// GetEmployee retrieves an employee with its working days, or nil if the
// id is unknown.
func (s *Store) GetEmployee(ctx context.Context, id string) (*payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee_number, first_name, last_name, date_of_birth, daily_rate, created_at, updated_at
		FROM employees WHERE id = ?`, id)

	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	days, err := s.loadWorkingDays(ctx, id)
	if err != nil {
		return nil, err
	}
	emp.WorkingDays = days

	return emp, nil
}

// ListEmployees returns all employees with their working-day sets.
func (s *Store) ListEmployees(ctx context.Context) ([]payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_number, first_name, last_name, date_of_birth, daily_rate, created_at, updated_at
		FROM employees ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []payroll.Employee
	index := make(map[string]int)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		index[emp.ID] = len(employees)
		employees = append(employees, *emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach working days in one pass over the child table.
	dayRows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, day_number, day_name
		FROM employee_working_days ORDER BY employee_id, day_number`)
	if err != nil {
		return nil, fmt.Errorf("failed to query working days: %w", err)
	}
	defer dayRows.Close()

	for dayRows.Next() {
		var employeeID string
		var d payroll.WorkingDay
		if err := dayRows.Scan(&employeeID, &d.DayNumber, &d.DayName); err != nil {
			return nil, err
		}
		if i, ok := index[employeeID]; ok {
			employees[i].WorkingDays = append(employees[i].WorkingDays, d)
		}
	}
	return employees, dayRows.Err()
}

func (s *Store) loadWorkingDays(ctx context.Context, employeeID string) ([]payroll.WorkingDay, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day_number, day_name
		FROM employee_working_days
		WHERE employee_id = ?
		ORDER BY day_number ASC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query working days: %w", err)
	}
	defer rows.Close()

	var days []payroll.WorkingDay
	for rows.Next() {
		var d payroll.WorkingDay
		if err := rows.Scan(&d.DayNumber, &d.DayName); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (*payroll.Employee, error) {
	var (
		emp         payroll.Employee
		dateOfBirth string
		dailyRate   string
		createdAt   string
		updatedAt   string
	)

	err := row.Scan(&emp.ID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName,
		&dateOfBirth, &dailyRate, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	emp.DateOfBirth, _ = time.Parse(dateLayout, dateOfBirth)
	rate, err := payroll.ParseMoney(dailyRate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse daily rate %q: %w", dailyRate, err)
	}
	emp.DailyRate = rate
	emp.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	emp.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &emp, nil
}

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Children first so the delete works even with foreign keys off.
	for _, table := range []string{"employee_working_days", "employees"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
