/*
Package sqlite provides the SQLite-backed implementation of the payroll
provider interfaces.

PURPOSE:
  Persists the two durable inputs of the engine (work records and wage
  rates) plus the master data the service layer manages (employees,
  work types) and the batch run log. Everything the engine derives
  (summaries, dashboard stats) is recomputed, never stored.

APPEND-ONLY WAGE HISTORY:
  wage_rates is insert-only. A wage change is a new row with a later
  effective date; no UPDATE or DELETE exists, so a rate mutation can
  never retroactively change past payroll. rowid preserves insertion
  order, which breaks same-effective-date ties (last writer wins).

KEY TABLES:
  employees:     Master data
  work_types:    Master data (active flag, soft deactivation only)
  wage_rates:    Versioned rate rows (insert-only)
  work_records:  Raw clock-in/clock-out shifts
  batch_logs:    Audit trail of scheduled/manual payroll runs

STORAGE FORMATS:
  Dates as TEXT "2006-01-02", timestamps as RFC3339, amounts as decimal
  strings (exactness survives the round trip).

WAL MODE:
  SQLite is opened with WAL for better concurrency: multiple readers
  don't block, single writer at a time.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - payroll/provider.go: Interface definitions
  - payroll/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/payroll"
)

// Store implements the payroll provider interfaces using SQLite.
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

	// Single connection: the store serializes writes itself, and a
	// pooled :memory: database would otherwise be one-per-connection.
	db.SetMaxOpenConns(1)

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
	-- Employees (master data)
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		role TEXT NOT NULL DEFAULT 'USER',
		hire_date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Work types (master data, soft deactivation only)
	CREATE TABLE IF NOT EXISTS work_types (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1
	);

	-- Wage rates (INSERT-ONLY: no update, no delete)
	-- rowid preserves insertion order for same-date tie-breaking.
	CREATE TABLE IF NOT EXISTS wage_rates (
		id TEXT PRIMARY KEY,
		work_type_id TEXT NOT NULL REFERENCES work_types(id),
		sub_category TEXT NOT NULL DEFAULT '-',
		hourly_amount TEXT NOT NULL,
		effective_from TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_wage_rates_lookup
		ON wage_rates(work_type_id, sub_category, effective_from);

	-- Work records (raw shifts)
	CREATE TABLE IF NOT EXISTS work_records (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		work_date TEXT NOT NULL,
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL,
		work_type_id TEXT NOT NULL REFERENCES work_types(id),
		sub_category TEXT NOT NULL DEFAULT '-',
		note TEXT,
		created_at TEXT NOT NULL
	);

	-- Hot path: period-scoped aggregation per employee
	CREATE INDEX IF NOT EXISTS idx_work_records_employee_date
		ON work_records(employee_id, work_date);
	CREATE INDEX IF NOT EXISTS idx_work_records_date
		ON work_records(work_date);

	-- Batch run audit log
	CREATE TABLE IF NOT EXISTS batch_logs (
		id TEXT PRIMARY KEY,
		job_type TEXT NOT NULL,
		status TEXT NOT NULL,
		message TEXT,
		ran_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_batch_logs_ran_at
		ON batch_logs(ran_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) SaveEmployee(ctx context.Context, emp payroll.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO employees (id, name, email, role, hire_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			role = excluded.role,
			hire_date = excluded.hire_date
	`

	_, err := s.db.ExecContext(ctx, query,
		string(emp.ID), emp.Name, emp.Email, emp.Role,
		emp.HireDate.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id payroll.EmployeeID) (*payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var emp payroll.Employee
	var hireDate string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, role, hire_date FROM employees WHERE id = ?",
		string(id),
	).Scan(&emp.ID, &emp.Name, &emp.Email, &emp.Role, &hireDate)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	emp.HireDate, _ = payroll.ParseWorkDate(hireDate)
	return &emp, nil
}

func (s *Store) Employees(ctx context.Context) ([]payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, role, hire_date FROM employees ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []payroll.Employee
	for rows.Next() {
		var emp payroll.Employee
		var hireDate string
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.Role, &hireDate); err != nil {
			return nil, err
		}
		emp.HireDate, _ = payroll.ParseWorkDate(hireDate)
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// =============================================================================
// WORK TYPES
// =============================================================================

func (s *Store) SaveWorkType(ctx context.Context, wt payroll.WorkType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO work_types (id, name, active)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			active = excluded.active
	`

	_, err := s.db.ExecContext(ctx, query, string(wt.ID), wt.Name, boolToInt(wt.Active))
	return err
}

func (s *Store) GetWorkType(ctx context.Context, id payroll.WorkTypeID) (*payroll.WorkType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var wt payroll.WorkType
	var active int

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, active FROM work_types WHERE id = ?",
		string(id),
	).Scan(&wt.ID, &wt.Name, &active)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	wt.Active = active != 0
	return &wt, nil
}

func (s *Store) WorkTypes(ctx context.Context) ([]payroll.WorkType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, active FROM work_types ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workTypes []payroll.WorkType
	for rows.Next() {
		var wt payroll.WorkType
		var active int
		if err := rows.Scan(&wt.ID, &wt.Name, &active); err != nil {
			return nil, err
		}
		wt.Active = active != 0
		workTypes = append(workTypes, wt)
	}
	return workTypes, rows.Err()
}

// =============================================================================
// WAGE RATES (insert-only)
// =============================================================================

// AddWageRate appends a rate row. There is no update or delete: wage
// history is append-only so historical payroll stays reproducible.
func (s *Store) AddWageRate(ctx context.Context, r payroll.WageRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := r.SubCategory
	if sub.IsAny() {
		sub = payroll.SubCategoryAny
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wage_rates (id, work_type_id, sub_category, hourly_amount, effective_from)
		VALUES (?, ?, ?, ?, ?)`,
		r.ID, string(r.WorkTypeID), string(sub),
		r.HourlyAmount.Value.String(),
		r.EffectiveFrom.String(),
	)
	return err
}

// WageRates returns every rate row in insertion (rowid) order.
func (s *Store) WageRates(ctx context.Context) ([]payroll.WageRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, work_type_id, sub_category, hourly_amount, effective_from FROM wage_rates ORDER BY rowid",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []payroll.WageRate
	for rows.Next() {
		var r payroll.WageRate
		var amount, effective string
		if err := rows.Scan(&r.ID, &r.WorkTypeID, &r.SubCategory, &amount, &effective); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt hourly_amount %q for rate %s: %w", amount, r.ID, err)
		}
		r.HourlyAmount = payroll.MoneyFromDecimal(d)
		r.EffectiveFrom, _ = payroll.ParseWorkDate(effective)
		rates = append(rates, r)
	}
	return rates, rows.Err()
}

// =============================================================================
// WORK RECORDS
// =============================================================================

func (s *Store) SaveWorkRecord(ctx context.Context, rec payroll.WorkRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := rec.SubCategory
	if sub.IsAny() {
		sub = payroll.SubCategoryAny
	}

	query := `
		INSERT INTO work_records (id, employee_id, work_date, start_at, end_at, work_type_id, sub_category, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			work_date = excluded.work_date,
			start_at = excluded.start_at,
			end_at = excluded.end_at,
			work_type_id = excluded.work_type_id,
			sub_category = excluded.sub_category,
			note = excluded.note
	`

	_, err := s.db.ExecContext(ctx, query,
		string(rec.ID), string(rec.EmployeeID),
		rec.WorkDate.String(),
		rec.Start.UTC().Format(time.RFC3339),
		rec.End.UTC().Format(time.RFC3339),
		string(rec.WorkTypeID), string(sub), rec.Note,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) DeleteWorkRecord(ctx context.Context, id payroll.RecordID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM work_records WHERE id = ?", string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return payroll.ErrRecordNotFound
	}
	return nil
}

func (s *Store) GetWorkRecord(ctx context.Context, id payroll.RecordID) (*payroll.WorkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.queryWorkRecords(ctx, "WHERE id = ?", string(id))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (s *Store) WorkRecordsInRange(ctx context.Context, employeeID payroll.EmployeeID, from, to payroll.WorkDate) ([]payroll.WorkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryWorkRecords(ctx,
		"WHERE employee_id = ? AND work_date >= ? AND work_date <= ?",
		string(employeeID), from.String(), to.String(),
	)
}

func (s *Store) AllWorkRecordsInRange(ctx context.Context, from, to payroll.WorkDate) ([]payroll.WorkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryWorkRecords(ctx,
		"WHERE work_date >= ? AND work_date <= ?",
		from.String(), to.String(),
	)
}

func (s *Store) queryWorkRecords(ctx context.Context, where string, args ...any) ([]payroll.WorkRecord, error) {
	query := `
		SELECT id, employee_id, work_date, start_at, end_at, work_type_id, sub_category, note, created_at
		FROM work_records ` + where + ` ORDER BY work_date, start_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []payroll.WorkRecord
	for rows.Next() {
		var rec payroll.WorkRecord
		var workDate, startAt, endAt, createdAt string
		var note sql.NullString
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &workDate, &startAt, &endAt, &rec.WorkTypeID, &rec.SubCategory, &note, &createdAt); err != nil {
			return nil, err
		}
		rec.WorkDate, _ = payroll.ParseWorkDate(workDate)
		rec.Start, _ = time.Parse(time.RFC3339, startAt)
		rec.End, _ = time.Parse(time.RFC3339, endAt)
		rec.Note = note.String
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// =============================================================================
// BATCH LOGS
// =============================================================================

// BatchLog is one audit row for a scheduled or manual payroll run.
type BatchLog struct {
	ID      string
	JobType string
	Status  string // "SUCCESS" or "FAILED"
	Message string
	RanAt   time.Time
}

func (s *Store) AppendBatchLog(ctx context.Context, l BatchLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO batch_logs (id, job_type, status, message, ran_at)
		VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.JobType, l.Status, l.Message,
		l.RanAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) ListBatchLogs(ctx context.Context, limit int) ([]BatchLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, job_type, status, message, ran_at FROM batch_logs ORDER BY ran_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []BatchLog
	for rows.Next() {
		var l BatchLog
		var ranAt string
		if err := rows.Scan(&l.ID, &l.JobType, &l.Status, &l.Message, &ranAt); err != nil {
			return nil, err
		}
		l.RanAt, _ = time.Parse(time.RFC3339, ranAt)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// =============================================================================
// MAINTENANCE
// =============================================================================

// Reset clears all data. Development/demo use only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"work_records", "wage_rates", "work_types", "employees", "batch_logs"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
