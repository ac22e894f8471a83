/*
Package payroll provides the attendance-to-payroll computation engine.

PURPOSE:
  This package contains the pure computation core that turns raw
  clock-in/clock-out records into hour splits (regular vs. overtime),
  applies tiered hourly wage rates, and aggregates results per employee
  and organization-wide for a billing period.

KEY CONCEPTS IN THIS FILE (types.go):
  - Hours/Money: Exact decimal quantities (no floating-point drift)
  - WorkRecord: One logged shift for one employee on one work date
  - WorkType/WageRate: The wage tier inputs (versioned by effective date)
  - Employee: Master data referenced by records and summaries

DESIGN PRINCIPLES:
  1. Purity: Every computation is a function of immutable inputs
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Type Safety: Strong typing for IDs prevents mixing employee/type IDs
  4. Visibility: Failures name the offending record, never default to zero

USAGE:
  summary, err := payroll.Aggregate(payroll.AggregateInput{
      EmployeeID: "emp-001",
      Period:     payroll.MonthPeriod(2024, time.January),
      Records:    records,
      Rates:      rateTable,
      Policy:     payroll.OvertimePolicy{DailyThreshold: payroll.NewHours(8)},
  })

SEE ALSO:
  - interval.go: Shift duration resolution (overnight handling)
  - rates.go: Wage rate selection from the versioned rate table
  - overtime.go: Daily regular/overtime split
  - aggregate.go: Period aggregation into PayrollSummary
  - dashboard.go: Read-only monthly projections
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// HOURS / MONEY - Exact decimal quantities
// =============================================================================

// Hours is a worked-time quantity, fractional to two decimal places.
type Hours struct {
	Value decimal.Decimal
}

func NewHours(value float64) Hours {
	return Hours{Value: decimal.NewFromFloat(value)}
}

func HoursFromDecimal(d decimal.Decimal) Hours { return Hours{Value: d} }

func (h Hours) Zero() Hours               { return Hours{Value: decimal.Zero} }
func (h Hours) Add(o Hours) Hours         { return Hours{Value: h.Value.Add(o.Value)} }
func (h Hours) Sub(o Hours) Hours         { return Hours{Value: h.Value.Sub(o.Value)} }
func (h Hours) Min(o Hours) Hours         { if h.LessThan(o) { return h }; return o }
func (h Hours) IsZero() bool              { return h.Value.IsZero() }
func (h Hours) IsNegative() bool          { return h.Value.IsNegative() }
func (h Hours) IsPositive() bool          { return h.Value.IsPositive() }
func (h Hours) GreaterThan(o Hours) bool  { return h.Value.GreaterThan(o.Value) }
func (h Hours) LessThan(o Hours) bool     { return h.Value.LessThan(o.Value) }
func (h Hours) Equal(o Hours) bool        { return h.Value.Equal(o.Value) }
func (h Hours) Round2() Hours             { return Hours{Value: h.Value.Round(2)} }
func (h Hours) Float() float64            { f, _ := h.Value.Float64(); return f }
func (h Hours) String() string            { return h.Value.StringFixed(2) }

// Money is a payment amount in the smallest practical currency unit
// (e.g., yen), exact to two decimal places.
type Money struct {
	Value decimal.Decimal
}

func NewMoney(value float64) Money {
	return Money{Value: decimal.NewFromFloat(value)}
}

func MoneyFromDecimal(d decimal.Decimal) Money { return Money{Value: d} }

func (m Money) Add(o Money) Money        { return Money{Value: m.Value.Add(o.Value)} }
func (m Money) Sub(o Money) Money        { return Money{Value: m.Value.Sub(o.Value)} }
func (m Money) Mul(s decimal.Decimal) Money { return Money{Value: m.Value.Mul(s)} }
func (m Money) IsZero() bool             { return m.Value.IsZero() }
func (m Money) Equal(o Money) bool       { return m.Value.Equal(o.Value) }
func (m Money) Round2() Money            { return Money{Value: m.Value.Round(2)} }
func (m Money) Float() float64           { f, _ := m.Value.Float64(); return f }
func (m Money) String() string           { return m.Value.StringFixed(2) }

// MulHours prices a number of hours at this hourly amount.
func (m Money) MulHours(h Hours) Money {
	return Money{Value: m.Value.Mul(h.Value)}
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string
type WorkTypeID string
type RecordID string

// SubCategory refines a work type (e.g., student level for tutoring).
// The empty string and "-" both mean "applies regardless of sub-category".
type SubCategory string

const SubCategoryAny SubCategory = "-"

// IsAny reports whether this sub-category is the wildcard.
func (s SubCategory) IsAny() bool { return s == "" || s == SubCategoryAny }

// Matches reports whether a rate row's sub-category applies to a record's.
func (s SubCategory) Matches(other SubCategory) bool {
	if s.IsAny() && other.IsAny() {
		return true
	}
	return s == other
}

// =============================================================================
// WORK RECORD - One logged shift
// =============================================================================

// WorkRecord is one logged shift for one employee on one work date.
//
// INVARIANTS:
//   - End is strictly after Start once normalized for overnight spans
//   - WorkDate is the calendar date the shift belongs to (the start date,
//     even if the shift ends the next day)
type WorkRecord struct {
	ID          RecordID
	EmployeeID  EmployeeID
	WorkDate    WorkDate
	Start       time.Time
	End         time.Time
	WorkTypeID  WorkTypeID
	SubCategory SubCategory
	Note        string
	CreatedAt   time.Time
}

// NewWorkRecord constructs an immutable work record value.
// No fluent builders: records are plain values constructed once.
func NewWorkRecord(id RecordID, employeeID EmployeeID, workDate WorkDate, start, end time.Time, workTypeID WorkTypeID, subCategory SubCategory, note string) WorkRecord {
	return WorkRecord{
		ID:          id,
		EmployeeID:  employeeID,
		WorkDate:    workDate,
		Start:       start,
		End:         end,
		WorkTypeID:  workTypeID,
		SubCategory: subCategory,
		Note:        note,
	}
}

// =============================================================================
// MASTER DATA - Work types and employees
// =============================================================================

// WorkType is a kind of work (e.g., individual tutoring, study room duty).
// A type referenced by historical records is immutable in effect: wage
// changes are expressed as new WageRate rows, never by editing past rates.
type WorkType struct {
	ID     WorkTypeID
	Name   string
	Active bool
}

// Employee is the minimal master record the engine's callers deal in.
type Employee struct {
	ID       EmployeeID
	Name     string
	Email    string
	Role     string // "ADMIN" or "USER"
	HireDate WorkDate
}

// =============================================================================
// WAGE RATE - One row of the versioned rate table
// =============================================================================

// WageRate is an hourly amount for a (work type, sub-category) pair,
// effective from a given date. Multiple rows per pair form the version
// history; the applicable row for a record is the latest row whose
// EffectiveFrom is on or before the record's work date.
type WageRate struct {
	ID            string
	WorkTypeID    WorkTypeID
	SubCategory   SubCategory
	HourlyAmount  Money
	EffectiveFrom WorkDate
}
