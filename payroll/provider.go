/*
provider.go - Data provider interfaces

PURPOSE:
  The engine is an in-process library: it computes, it does not fetch.
  These interfaces are its only view of storage. Retrieval happens
  before invocation; every computation receives its own immutable
  snapshot, so concurrent aggregations need no coordination.

IMPLEMENTATIONS:
  - payroll/store: in-memory (tests, dev)
  - store/sqlite:  SQLite-backed (the served configuration)

SEE ALSO:
  - aggregate.go: Consumes the snapshots these providers return
*/
package payroll

import "context"

// WorkRecordProvider returns work records already validated for
// employee/work-type referential integrity.
type WorkRecordProvider interface {
	// WorkRecordsInRange returns one employee's records with a work date
	// in [from, to], in no guaranteed order.
	WorkRecordsInRange(ctx context.Context, employeeID EmployeeID, from, to WorkDate) ([]WorkRecord, error)

	// AllWorkRecordsInRange returns every employee's records in [from, to].
	AllWorkRecordsInRange(ctx context.Context, from, to WorkDate) ([]WorkRecord, error)
}

// WageRateProvider returns rate rows unsorted; RateTable does the selecting.
type WageRateProvider interface {
	// WageRates returns every rate row. Insertion order must be stable,
	// because it breaks same-effective-date ties.
	WageRates(ctx context.Context) ([]WageRate, error)
}

// WorkTypeProvider returns work-type master data.
type WorkTypeProvider interface {
	WorkTypes(ctx context.Context) ([]WorkType, error)
	GetWorkType(ctx context.Context, id WorkTypeID) (*WorkType, error)
}

// EmployeeProvider returns employee master data.
type EmployeeProvider interface {
	Employees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, id EmployeeID) (*Employee, error)
}
