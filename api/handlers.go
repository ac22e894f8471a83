/*
handlers.go - HTTP handlers for the payroll service

PURPOSE:
  Implements the HTTP layer over the payroll engine. Handlers are thin:

  1. Parse and validate request
  2. Load the immutable input snapshot from the store
  3. Call the engine (pure computation)
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input (bad dates, malformed intervals)
  - 404: Missing master data
  - 422: Aggregation refused (missing wage rate, partial data)
  - 500: Internal errors
  A PartialDataError response additionally lists the offending records,
  because payroll exclusions must always be visible.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store

	// Policy is the overtime configuration supplied at startup.
	// It is per-computation input, never persisted state.
	Policy payroll.OvertimePolicy
}

// NewHandler creates a new handler with the given store and policy.
func NewHandler(store *sqlite.Store, policy payroll.OvertimePolicy) *Handler {
	return &Handler{Store: store, Policy: policy}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.Employees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = employeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := payroll.EmployeeID(chi.URLParam(r, "id"))

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, employeeDTO(*emp))
}

// CreateEmployee creates a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	hireDate, err := payroll.ParseWorkDate(req.HireDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hire_date", err)
		return
	}

	role := req.Role
	if role == "" {
		role = "USER"
	}

	emp := payroll.Employee{
		ID:       payroll.EmployeeID(req.ID),
		Name:     req.Name,
		Email:    req.Email,
		Role:     role,
		HireDate: hireDate,
	}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, employeeDTO(emp))
}

// =============================================================================
// WORK TYPE HANDLERS
// =============================================================================

// ListWorkTypes returns all work types (active and inactive).
func (h *Handler) ListWorkTypes(w http.ResponseWriter, r *http.Request) {
	workTypes, err := h.Store.WorkTypes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list work types", err)
		return
	}

	dtos := make([]WorkTypeDTO, len(workTypes))
	for i, wt := range workTypes {
		dtos[i] = workTypeDTO(wt)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateWorkType creates a new work type.
func (h *Handler) CreateWorkType(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	wt := payroll.WorkType{ID: payroll.WorkTypeID(req.ID), Name: req.Name, Active: true}
	if err := h.Store.SaveWorkType(r.Context(), wt); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create work type", err)
		return
	}
	writeJSON(w, http.StatusCreated, workTypeDTO(wt))
}

// DeactivateWorkType soft-deactivates a work type. Types are never
// deleted: historical records keep referencing them.
func (h *Handler) DeactivateWorkType(w http.ResponseWriter, r *http.Request) {
	id := payroll.WorkTypeID(chi.URLParam(r, "id"))

	wt, err := h.Store.GetWorkType(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get work type", err)
		return
	}
	if wt == nil {
		writeError(w, http.StatusNotFound, "Work type not found", nil)
		return
	}

	wt.Active = false
	if err := h.Store.SaveWorkType(r.Context(), *wt); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update work type", err)
		return
	}
	writeJSON(w, http.StatusOK, workTypeDTO(*wt))
}

// =============================================================================
// WAGE RATE HANDLERS
// =============================================================================

// ListWageRates returns the full rate history in insertion order.
func (h *Handler) ListWageRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.Store.WageRates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list wage rates", err)
		return
	}

	dtos := make([]WageRateDTO, len(rates))
	for i, rate := range rates {
		dtos[i] = wageRateDTO(rate)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateWageRate appends a rate row. Rates are never edited in place;
// a wage change is a new row with a later effective date.
func (h *Handler) CreateWageRate(w http.ResponseWriter, r *http.Request) {
	var req CreateWageRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.WorkTypeID == "" {
		writeError(w, http.StatusBadRequest, "work_type_id is required", nil)
		return
	}
	if req.HourlyAmount <= 0 {
		writeError(w, http.StatusBadRequest, "hourly_amount must be positive", nil)
		return
	}

	effective, err := payroll.ParseWorkDate(req.EffectiveFrom)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid effective_from", err)
		return
	}

	wt, err := h.Store.GetWorkType(r.Context(), payroll.WorkTypeID(req.WorkTypeID))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get work type", err)
		return
	}
	if wt == nil {
		writeError(w, http.StatusNotFound, "Work type not found", nil)
		return
	}

	rate := payroll.WageRate{
		ID:            "wage-" + uuid.NewString(),
		WorkTypeID:    payroll.WorkTypeID(req.WorkTypeID),
		SubCategory:   payroll.SubCategory(req.SubCategory),
		HourlyAmount:  payroll.NewMoney(req.HourlyAmount),
		EffectiveFrom: effective,
	}
	if err := h.Store.AddWageRate(r.Context(), rate); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create wage rate", err)
		return
	}
	writeJSON(w, http.StatusCreated, wageRateDTO(rate))
}

// =============================================================================
// WORK RECORD HANDLERS
// =============================================================================

// ListWorkRecords returns records in a date range, optionally filtered
// by employee. Defaults to the current month.
func (h *Handler) ListWorkRecords(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	var records []payroll.WorkRecord
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		records, err = h.Store.WorkRecordsInRange(r.Context(), payroll.EmployeeID(employeeID), period.Start, period.End)
	} else {
		records, err = h.Store.AllWorkRecordsInRange(r.Context(), period.Start, period.End)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list work records", err)
		return
	}

	dtos := make([]WorkRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = workRecordDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetWorkRecord returns a single work record.
func (h *Handler) GetWorkRecord(w http.ResponseWriter, r *http.Request) {
	id := payroll.RecordID(chi.URLParam(r, "id"))

	rec, err := h.Store.GetWorkRecord(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get work record", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Work record not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, workRecordDTO(*rec))
}

// CreateWorkRecord logs a shift. The interval is validated up front so
// data entry errors are rejected at the door, not at payroll time.
func (h *Handler) CreateWorkRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	workDate, err := payroll.ParseWorkDate(req.WorkDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid work_date", err)
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_time (use RFC3339)", err)
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_time (use RFC3339)", err)
		return
	}

	if _, err := payroll.ResolveInterval(workDate, start, end); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid work interval", err)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), payroll.EmployeeID(req.EmployeeID))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	wt, err := h.Store.GetWorkType(r.Context(), payroll.WorkTypeID(req.WorkTypeID))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get work type", err)
		return
	}
	if wt == nil {
		writeError(w, http.StatusNotFound, "Work type not found", nil)
		return
	}

	rec := payroll.NewWorkRecord(
		payroll.RecordID("wr-"+uuid.NewString()),
		payroll.EmployeeID(req.EmployeeID),
		workDate, start, end,
		payroll.WorkTypeID(req.WorkTypeID),
		payroll.SubCategory(req.SubCategory),
		req.Note,
	)
	if err := h.Store.SaveWorkRecord(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create work record", err)
		return
	}
	writeJSON(w, http.StatusCreated, workRecordDTO(rec))
}

// DeleteWorkRecord removes a logged shift.
func (h *Handler) DeleteWorkRecord(w http.ResponseWriter, r *http.Request) {
	id := payroll.RecordID(chi.URLParam(r, "id"))

	if err := h.Store.DeleteWorkRecord(r.Context(), id); err != nil {
		if errors.Is(err, payroll.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Work record not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete work record", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": string(id)})
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// GetPayroll computes one employee's payroll for a period.
func (h *Handler) GetPayroll(w http.ResponseWriter, r *http.Request) {
	employeeID := payroll.EmployeeID(chi.URLParam(r, "employeeID"))

	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), employeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	summary, err := h.computeSummary(r, employeeID, period)
	if err != nil {
		writeComputeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payrollDTO(summary, emp.Name))
}

// ListPayrolls computes every employee's payroll for a period plus the
// organization-wide totals.
func (h *Handler) ListPayrolls(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	employees, err := h.Store.Employees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	summaries := make([]payroll.PayrollSummary, 0, len(employees))
	payrolls := make([]PayrollDTO, 0, len(employees))
	for _, emp := range employees {
		summary, err := h.computeSummary(r, emp.ID, period)
		if err != nil {
			writeComputeError(w, err)
			return
		}
		summaries = append(summaries, summary)

		dto := payrollDTO(summary, emp.Name)
		dto.WorkRecords = nil // list view stays light
		payrolls = append(payrolls, dto)
	}

	totals := payroll.Combine(summaries)
	totals.Period = period // defined even when there are no employees
	writeJSON(w, http.StatusOK, PayrollListResponse{
		Payrolls: payrolls,
		Totals:   payrollTotalsDTO(totals),
	})
}

// computeSummary loads the immutable input snapshot and runs the engine.
func (h *Handler) computeSummary(r *http.Request, employeeID payroll.EmployeeID, period payroll.Period) (payroll.PayrollSummary, error) {
	ctx := r.Context()

	records, err := h.Store.WorkRecordsInRange(ctx, employeeID, period.Start, period.End)
	if err != nil {
		return payroll.PayrollSummary{}, err
	}
	rates, err := h.Store.WageRates(ctx)
	if err != nil {
		return payroll.PayrollSummary{}, err
	}

	return payroll.Aggregate(payroll.AggregateInput{
		EmployeeID: employeeID,
		Period:     period,
		Records:    records,
		Rates:      payroll.NewRateTable(rates...),
		Policy:     h.Policy,
	})
}

// =============================================================================
// DASHBOARD HANDLERS
// =============================================================================

// GetDashboard returns organization-wide monthly statistics.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	employees, err := h.Store.Employees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	summaries := make([]payroll.PayrollSummary, 0, len(employees))
	for _, emp := range employees {
		summary, err := h.computeSummary(r, emp.ID, period)
		if err != nil {
			writeComputeError(w, err)
			return
		}
		summaries = append(summaries, summary)
	}

	stats := payroll.ProjectAggregate(summaries)
	if len(summaries) == 0 {
		stats.Month = period.Label()
	}
	writeJSON(w, http.StatusOK, DashboardDTO{
		Month:            stats.Month,
		TotalWorkHours:   stats.TotalWorkHours.Float(),
		TotalWorkDays:    stats.TotalWorkDays,
		EstimatedPayment: stats.EstimatedPayment.Float(),
		EmployeeCount:    stats.EmployeeCount,
	})
}

// GetEmployeeDashboard returns one employee's monthly statistics plus
// their most recent records.
func (h *Handler) GetEmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	employeeID := payroll.EmployeeID(chi.URLParam(r, "employeeID"))

	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), employeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	summary, err := h.computeSummary(r, employeeID, period)
	if err != nil {
		writeComputeError(w, err)
		return
	}

	stats := payroll.ProjectPersonal(summary)

	// Most recent first, capped for display.
	const recentLimit = 5
	recent := make([]WorkRecordDTO, 0, recentLimit)
	for i := len(summary.Records) - 1; i >= 0 && len(recent) < recentLimit; i-- {
		recent = append(recent, workRecordDTO(summary.Records[i]))
	}

	writeJSON(w, http.StatusOK, DashboardDTO{
		Month:             stats.Month,
		TotalWorkHours:    stats.TotalWorkHours.Float(),
		TotalWorkDays:     stats.TotalWorkDays,
		EstimatedPayment:  stats.EstimatedPayment.Float(),
		RecentWorkRecords: recent,
	})
}

// =============================================================================
// BATCH HANDLERS
// =============================================================================

// ListBatchLogs returns the batch run audit trail, newest first.
func (h *Handler) ListBatchLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.Store.ListBatchLogs(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list batch logs", err)
		return
	}

	dtos := make([]BatchLogDTO, len(logs))
	for i, l := range logs {
		dtos[i] = batchLogDTO(l)
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": dtos})
}

// =============================================================================
// HELPERS
// =============================================================================

// parsePeriod reads the period from query parameters: either
// ?month=YYYY-MM, or ?from=YYYY-MM-DD&to=YYYY-MM-DD. Defaults to the
// current month.
func parsePeriod(r *http.Request) (payroll.Period, error) {
	q := r.URL.Query()

	if month := q.Get("month"); month != "" {
		return parseMonth(month)
	}

	fromStr, toStr := q.Get("from"), q.Get("to")
	if fromStr == "" && toStr == "" {
		now := time.Now().UTC()
		return payroll.MonthPeriod(now.Year(), now.Month()), nil
	}

	from, err := payroll.ParseWorkDate(fromStr)
	if err != nil {
		return payroll.Period{}, err
	}
	to, err := payroll.ParseWorkDate(toStr)
	if err != nil {
		return payroll.Period{}, err
	}
	return payroll.NewPeriod(from, to)
}

func parseMonth(s string) (payroll.Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return payroll.Period{}, err
	}
	return payroll.MonthPeriod(t.Year(), t.Month()), nil
}

// writeComputeError maps engine failures to HTTP statuses, exposing the
// offending records of a PartialDataError.
func writeComputeError(w http.ResponseWriter, err error) {
	var partial *payroll.PartialDataError
	if errors.As(err, &partial) {
		resp := ErrorResponse{
			Error:   "Payroll aggregation incomplete",
			Details: partial.Error(),
		}
		for _, f := range partial.Failures {
			resp.FailedRecords = append(resp.FailedRecords, FailedRecordDTO{
				RecordID: string(f.RecordID),
				Reason:   f.Err.Error(),
			})
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	switch {
	case payroll.IsClientError(err):
		writeError(w, http.StatusUnprocessableEntity, "Payroll computation refused", err)
	case payroll.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	default:
		writeError(w, http.StatusInternalServerError, "Payroll computation failed", err)
	}
}

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
