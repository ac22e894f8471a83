/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal-exact domain model from the external API contract:
  hours and payments cross the wire as already-rounded numbers, dates as
  YYYY-MM-DD strings, timestamps as RFC3339.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// ERROR RESPONSE
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`

	// FailedRecords names the records that prevented an aggregation
	// from completing (PartialDataError).
	FailedRecords []FailedRecordDTO `json:"failed_records,omitempty"`
}

type FailedRecordDTO struct {
	RecordID string `json:"record_id"`
	Reason   string `json:"reason"`
}

// =============================================================================
// MASTER DATA
// =============================================================================

type EmployeeDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	HireDate string `json:"hire_date"`
}

type CreateEmployeeRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	HireDate string `json:"hire_date"`
}

type WorkTypeDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type CreateWorkTypeRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type WageRateDTO struct {
	ID            string  `json:"id"`
	WorkTypeID    string  `json:"work_type_id"`
	SubCategory   string  `json:"sub_category"`
	HourlyAmount  float64 `json:"hourly_amount"`
	EffectiveFrom string  `json:"effective_from"`
}

type CreateWageRateRequest struct {
	WorkTypeID    string  `json:"work_type_id"`
	SubCategory   string  `json:"sub_category"`
	HourlyAmount  float64 `json:"hourly_amount"`
	EffectiveFrom string  `json:"effective_from"`
}

// =============================================================================
// WORK RECORDS
// =============================================================================

type WorkRecordDTO struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	WorkDate    string  `json:"work_date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	WorkHours   float64 `json:"work_hours"`
	WorkTypeID  string  `json:"work_type_id"`
	SubCategory string  `json:"sub_category,omitempty"`
	Note        string  `json:"note,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

type CreateWorkRecordRequest struct {
	EmployeeID  string `json:"employee_id"`
	WorkDate    string `json:"work_date"`
	StartTime   string `json:"start_time"` // RFC3339
	EndTime     string `json:"end_time"`   // RFC3339
	WorkTypeID  string `json:"work_type_id"`
	SubCategory string `json:"sub_category,omitempty"`
	Note        string `json:"note,omitempty"`
}

// =============================================================================
// PAYROLL
// =============================================================================

type PayrollSummaryDTO struct {
	TotalWorkDays   int     `json:"total_work_days"`
	RegularHours    float64 `json:"regular_hours"`
	OvertimeHours   float64 `json:"overtime_hours"`
	RegularPayment  float64 `json:"regular_payment"`
	OvertimePayment float64 `json:"overtime_payment"`
	TotalPayment    float64 `json:"total_payment"`
}

type PayrollDTO struct {
	EmployeeID     string            `json:"employee_id"`
	EmployeeName   string            `json:"employee_name,omitempty"`
	StartDate      string            `json:"start_date"`
	EndDate        string            `json:"end_date"`
	TotalWorkHours float64           `json:"total_work_hours"`
	TotalPayment   float64           `json:"total_payment"`
	WorkRecords    []WorkRecordDTO   `json:"work_records,omitempty"`
	Summary        PayrollSummaryDTO `json:"summary"`
}

type PayrollTotalsDTO struct {
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	EmployeeCount   int     `json:"employee_count"`
	TotalWorkDays   int     `json:"total_work_days"`
	RegularHours    float64 `json:"regular_hours"`
	OvertimeHours   float64 `json:"overtime_hours"`
	RegularPayment  float64 `json:"regular_payment"`
	OvertimePayment float64 `json:"overtime_payment"`
	TotalPayment    float64 `json:"total_payment"`
}

type PayrollListResponse struct {
	Payrolls []PayrollDTO     `json:"payrolls"`
	Totals   PayrollTotalsDTO `json:"totals"`
}

// =============================================================================
// DASHBOARD
// =============================================================================

type DashboardDTO struct {
	Month            string  `json:"month"`
	TotalWorkHours   float64 `json:"total_work_hours"`
	TotalWorkDays    int     `json:"total_work_days"`
	EstimatedPayment float64 `json:"estimated_payment"`

	// Aggregate mode only
	EmployeeCount int `json:"employee_count,omitempty"`

	// Personal mode only
	RecentWorkRecords []WorkRecordDTO `json:"recent_work_records,omitempty"`
}

// =============================================================================
// BATCH / SCENARIOS
// =============================================================================

type BatchLogDTO struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type TriggerBatchRequest struct {
	TargetMonth string `json:"target_month"` // "2024-01"
}

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func employeeDTO(e payroll.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:       string(e.ID),
		Name:     e.Name,
		Email:    e.Email,
		Role:     e.Role,
		HireDate: e.HireDate.String(),
	}
}

func workTypeDTO(wt payroll.WorkType) WorkTypeDTO {
	return WorkTypeDTO{ID: string(wt.ID), Name: wt.Name, Active: wt.Active}
}

func wageRateDTO(r payroll.WageRate) WageRateDTO {
	return WageRateDTO{
		ID:            r.ID,
		WorkTypeID:    string(r.WorkTypeID),
		SubCategory:   string(r.SubCategory),
		HourlyAmount:  r.HourlyAmount.Float(),
		EffectiveFrom: r.EffectiveFrom.String(),
	}
}

func workRecordDTO(rec payroll.WorkRecord) WorkRecordDTO {
	dto := WorkRecordDTO{
		ID:          string(rec.ID),
		EmployeeID:  string(rec.EmployeeID),
		WorkDate:    rec.WorkDate.String(),
		StartTime:   rec.Start.UTC().Format(time.RFC3339),
		EndTime:     rec.End.UTC().Format(time.RFC3339),
		WorkTypeID:  string(rec.WorkTypeID),
		SubCategory: string(rec.SubCategory),
		Note:        rec.Note,
	}
	if !rec.CreatedAt.IsZero() {
		dto.CreatedAt = rec.CreatedAt.UTC().Format(time.RFC3339)
	}
	if hours, err := payroll.ResolveInterval(rec.WorkDate, rec.Start, rec.End); err == nil {
		dto.WorkHours = hours.Float()
	}
	return dto
}

func payrollDTO(s payroll.PayrollSummary, employeeName string) PayrollDTO {
	records := make([]WorkRecordDTO, len(s.Records))
	for i, rec := range s.Records {
		records[i] = workRecordDTO(rec)
	}
	return PayrollDTO{
		EmployeeID:     string(s.EmployeeID),
		EmployeeName:   employeeName,
		StartDate:      s.Period.Start.String(),
		EndDate:        s.Period.End.String(),
		TotalWorkHours: s.TotalHours().Float(),
		TotalPayment:   s.TotalPayment.Float(),
		WorkRecords:    records,
		Summary: PayrollSummaryDTO{
			TotalWorkDays:   s.TotalWorkDays,
			RegularHours:    s.RegularHours.Float(),
			OvertimeHours:   s.OvertimeHours.Float(),
			RegularPayment:  s.RegularPayment.Float(),
			OvertimePayment: s.OvertimePayment.Float(),
			TotalPayment:    s.TotalPayment.Float(),
		},
	}
}

func payrollTotalsDTO(t payroll.PayrollTotals) PayrollTotalsDTO {
	return PayrollTotalsDTO{
		StartDate:       t.Period.Start.String(),
		EndDate:         t.Period.End.String(),
		EmployeeCount:   t.EmployeeCount,
		TotalWorkDays:   t.TotalWorkDays,
		RegularHours:    t.RegularHours.Float(),
		OvertimeHours:   t.OvertimeHours.Float(),
		RegularPayment:  t.RegularPayment.Float(),
		OvertimePayment: t.OvertimePayment.Float(),
		TotalPayment:    t.TotalPayment.Float(),
	}
}

func batchLogDTO(l sqlite.BatchLog) BatchLogDTO {
	return BatchLogDTO{
		ID:        l.ID,
		Type:      l.JobType,
		Status:    l.Status,
		Message:   l.Message,
		Timestamp: l.RanAt.UTC().Format(time.RFC3339),
	}
}
