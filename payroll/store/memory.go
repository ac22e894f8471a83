// Package store provides an in-memory implementation of the payroll
// provider interfaces, used by tests and development setups.
package store

import (
	"context"
	"sync"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	employees map[payroll.EmployeeID]payroll.Employee
	workTypes map[payroll.WorkTypeID]payroll.WorkType
	records   map[payroll.RecordID]payroll.WorkRecord

	// Wage rates keep insertion order: it breaks same-date ties.
	rates []payroll.WageRate

	// Stable iteration order for employees and records.
	employeeOrder []payroll.EmployeeID
	recordOrder   []payroll.RecordID
}

func NewMemory() *Memory {
	return &Memory{
		employees: make(map[payroll.EmployeeID]payroll.Employee),
		workTypes: make(map[payroll.WorkTypeID]payroll.WorkType),
		records:   make(map[payroll.RecordID]payroll.WorkRecord),
	}
}

// -----------------------------------------------------------------------------
// Employees
// -----------------------------------------------------------------------------

func (m *Memory) SaveEmployee(_ context.Context, e payroll.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.employees[e.ID]; !exists {
		m.employeeOrder = append(m.employeeOrder, e.ID)
	}
	m.employees[e.ID] = e
	return nil
}

func (m *Memory) Employees(_ context.Context) ([]payroll.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]payroll.Employee, 0, len(m.employeeOrder))
	for _, id := range m.employeeOrder {
		out = append(out, m.employees[id])
	}
	return out, nil
}

func (m *Memory) GetEmployee(_ context.Context, id payroll.EmployeeID) (*payroll.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// -----------------------------------------------------------------------------
// Work types
// -----------------------------------------------------------------------------

func (m *Memory) SaveWorkType(_ context.Context, wt payroll.WorkType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workTypes[wt.ID] = wt
	return nil
}

func (m *Memory) WorkTypes(_ context.Context) ([]payroll.WorkType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]payroll.WorkType, 0, len(m.workTypes))
	for _, wt := range m.workTypes {
		out = append(out, wt)
	}
	return out, nil
}

func (m *Memory) GetWorkType(_ context.Context, id payroll.WorkTypeID) (*payroll.WorkType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	wt, ok := m.workTypes[id]
	if !ok {
		return nil, nil
	}
	return &wt, nil
}

// -----------------------------------------------------------------------------
// Wage rates (append-only)
// -----------------------------------------------------------------------------

// AddWageRate appends a rate row. Rows are never updated or deleted:
// a wage change is a new row with a later effective date, so past
// payroll can never be retroactively changed.
func (m *Memory) AddWageRate(_ context.Context, r payroll.WageRate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates = append(m.rates, r)
	return nil
}

func (m *Memory) WageRates(_ context.Context) ([]payroll.WageRate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]payroll.WageRate, len(m.rates))
	copy(out, m.rates)
	return out, nil
}

// -----------------------------------------------------------------------------
// Work records
// -----------------------------------------------------------------------------

func (m *Memory) SaveWorkRecord(_ context.Context, rec payroll.WorkRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[rec.ID]; !exists {
		m.recordOrder = append(m.recordOrder, rec.ID)
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *Memory) DeleteWorkRecord(_ context.Context, id payroll.RecordID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[id]; !exists {
		return payroll.ErrRecordNotFound
	}
	delete(m.records, id)
	for i, rid := range m.recordOrder {
		if rid == id {
			m.recordOrder = append(m.recordOrder[:i], m.recordOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) GetWorkRecord(_ context.Context, id payroll.RecordID) (*payroll.WorkRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *Memory) WorkRecordsInRange(_ context.Context, employeeID payroll.EmployeeID, from, to payroll.WorkDate) ([]payroll.WorkRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []payroll.WorkRecord
	for _, id := range m.recordOrder {
		rec := m.records[id]
		if rec.EmployeeID == employeeID && inRange(rec.WorkDate, from, to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *Memory) AllWorkRecordsInRange(_ context.Context, from, to payroll.WorkDate) ([]payroll.WorkRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []payroll.WorkRecord
	for _, id := range m.recordOrder {
		rec := m.records[id]
		if inRange(rec.WorkDate, from, to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func inRange(d, from, to payroll.WorkDate) bool {
	return d.AfterOrEqual(from) && d.BeforeOrEqual(to)
}
