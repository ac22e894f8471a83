/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates employees, work
	types, wage rates, and work records that demonstrate specific engine
	behavior.

AVAILABLE SCENARIOS:

	tutoring-school: Full sample set - tiered rates by student level,
	                 night shift, overtime day
	overtime-week:   Three-day week with one overtime day at a flat rate
	rate-change:     Versioned wage rates across a rate change

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create work types and employees
 3. Append wage rate rows
 4. Insert work records

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "tutoring-school"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Shares the store and response helpers
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "tutoring-school",
		Name:        "Tutoring School",
		Description: "Tiered rates by work type and student level, night shift, overtime day",
	},
	{
		ID:          "overtime-week",
		Name:        "Overtime Week",
		Description: "Three regular days, one with overtime, at a flat hourly rate",
	},
	{
		ID:          "rate-change",
		Name:        "Rate Change",
		Description: "Versioned wage rates: records before and after an effective date",
	},
}

// ListScenarios returns the available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario resets the database and loads the requested scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var err error
	switch req.ScenarioID {
	case "tutoring-school":
		err = h.loadTutoringSchoolScenario(ctx)
	case "overtime-week":
		err = h.loadOvertimeWeekScenario(ctx)
	case "rate-change":
		err = h.loadRateChangeScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"loaded": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// loadTutoringSchoolScenario builds the full sample set: three work
// types, student-level rate tiers, a short-hours employee, and a night
// shift crossing midnight.
func (h *Handler) loadTutoringSchoolScenario(ctx context.Context) error {
	workTypes := []payroll.WorkType{
		{ID: "individual-tutoring", Name: "Individual Tutoring", Active: true},
		{ID: "group-lesson", Name: "Group Lesson", Active: true},
		{ID: "study-room", Name: "Study Room", Active: true},
	}
	for _, wt := range workTypes {
		if err := h.Store.SaveWorkType(ctx, wt); err != nil {
			return err
		}
	}

	employees := []payroll.Employee{
		{ID: "emp-001", Name: "Taro Tanaka", Email: "tanaka@example.com", Role: "USER", HireDate: payroll.NewWorkDate(2022, time.April, 1)},
		{ID: "emp-002", Name: "Hanako Sato", Email: "sato@example.com", Role: "USER", HireDate: payroll.NewWorkDate(2023, time.September, 1)},
		{ID: "emp-003", Name: "Ichiro Suzuki", Email: "suzuki@example.com", Role: "ADMIN", HireDate: payroll.NewWorkDate(2021, time.January, 15)},
	}
	for _, emp := range employees {
		if err := h.Store.SaveEmployee(ctx, emp); err != nil {
			return err
		}
	}

	jan1 := payroll.NewWorkDate(2024, time.January, 1)
	rates := []payroll.WageRate{
		{ID: "wage-001", WorkTypeID: "individual-tutoring", SubCategory: "junior-high", HourlyAmount: payroll.NewMoney(3000), EffectiveFrom: jan1},
		{ID: "wage-002", WorkTypeID: "individual-tutoring", SubCategory: "high-school", HourlyAmount: payroll.NewMoney(3500), EffectiveFrom: jan1},
		{ID: "wage-003", WorkTypeID: "study-room", SubCategory: payroll.SubCategoryAny, HourlyAmount: payroll.NewMoney(1200), EffectiveFrom: jan1},
		{ID: "wage-004", WorkTypeID: "group-lesson", SubCategory: "junior-high", HourlyAmount: payroll.NewMoney(2500), EffectiveFrom: jan1},
		{ID: "wage-005", WorkTypeID: "group-lesson", SubCategory: "high-school", HourlyAmount: payroll.NewMoney(2800), EffectiveFrom: jan1},
	}
	for _, rate := range rates {
		if err := h.Store.AddWageRate(ctx, rate); err != nil {
			return err
		}
	}

	records := []payroll.WorkRecord{
		payroll.NewWorkRecord("wr-001", "emp-001", payroll.NewWorkDate(2024, time.January, 15),
			date(2024, time.January, 15, 9, 0), date(2024, time.January, 15, 18, 0),
			"individual-tutoring", "junior-high", ""),
		payroll.NewWorkRecord("wr-002", "emp-001", payroll.NewWorkDate(2024, time.January, 16),
			date(2024, time.January, 16, 9, 0), date(2024, time.January, 16, 20, 0),
			"individual-tutoring", "high-school", "extended session"),
		payroll.NewWorkRecord("wr-003", "emp-002", payroll.NewWorkDate(2024, time.January, 15),
			date(2024, time.January, 15, 10, 0), date(2024, time.January, 15, 16, 0),
			"group-lesson", "junior-high", "short hours"),
		// Night shift: ends the next calendar day, belongs to Jan 15.
		payroll.NewWorkRecord("wr-004", "emp-003", payroll.NewWorkDate(2024, time.January, 15),
			date(2024, time.January, 15, 22, 0), date(2024, time.January, 16, 6, 0),
			"study-room", payroll.SubCategoryAny, "night shift"),
	}
	for _, rec := range records {
		if err := h.Store.SaveWorkRecord(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// loadOvertimeWeekScenario builds the flat-rate overtime example:
// 8h + 2h + 10h against an 8h threshold at 1000/h, so exactly one day
// produces overtime.
func (h *Handler) loadOvertimeWeekScenario(ctx context.Context) error {
	if err := h.Store.SaveWorkType(ctx, payroll.WorkType{ID: "regular-work", Name: "Regular Work", Active: true}); err != nil {
		return err
	}
	if err := h.Store.SaveEmployee(ctx, payroll.Employee{
		ID: "emp-001", Name: "Taro Tanaka", Email: "tanaka@example.com", Role: "USER",
		HireDate: payroll.NewWorkDate(2022, time.April, 1),
	}); err != nil {
		return err
	}
	if err := h.Store.AddWageRate(ctx, payroll.WageRate{
		ID: "wage-001", WorkTypeID: "regular-work", SubCategory: payroll.SubCategoryAny,
		HourlyAmount: payroll.NewMoney(1000), EffectiveFrom: payroll.NewWorkDate(2024, time.January, 1),
	}); err != nil {
		return err
	}

	days := []struct {
		id      payroll.RecordID
		day     int
		endHour int
	}{
		{"wr-001", 5, 17},
		{"wr-002", 6, 11},
		{"wr-003", 7, 19},
	}
	for _, d := range days {
		rec := payroll.NewWorkRecord(d.id, "emp-001", payroll.NewWorkDate(2024, time.January, d.day),
			date(2024, time.January, d.day, 9, 0), date(2024, time.January, d.day, d.endHour, 0),
			"regular-work", payroll.SubCategoryAny, "")
		if err := h.Store.SaveWorkRecord(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// loadRateChangeScenario builds a rate history with an effective-date
// boundary: 1000/h from Jan 1, 1200/h from Feb 1.
func (h *Handler) loadRateChangeScenario(ctx context.Context) error {
	if err := h.Store.SaveWorkType(ctx, payroll.WorkType{ID: "regular-work", Name: "Regular Work", Active: true}); err != nil {
		return err
	}
	if err := h.Store.SaveEmployee(ctx, payroll.Employee{
		ID: "emp-001", Name: "Taro Tanaka", Email: "tanaka@example.com", Role: "USER",
		HireDate: payroll.NewWorkDate(2022, time.April, 1),
	}); err != nil {
		return err
	}

	rates := []payroll.WageRate{
		{ID: "wage-001", WorkTypeID: "regular-work", SubCategory: payroll.SubCategoryAny, HourlyAmount: payroll.NewMoney(1000), EffectiveFrom: payroll.NewWorkDate(2024, time.January, 1)},
		{ID: "wage-002", WorkTypeID: "regular-work", SubCategory: payroll.SubCategoryAny, HourlyAmount: payroll.NewMoney(1200), EffectiveFrom: payroll.NewWorkDate(2024, time.February, 1)},
	}
	for _, rate := range rates {
		if err := h.Store.AddWageRate(ctx, rate); err != nil {
			return err
		}
	}

	records := []payroll.WorkRecord{
		payroll.NewWorkRecord("wr-001", "emp-001", payroll.NewWorkDate(2024, time.January, 31),
			date(2024, time.January, 31, 9, 0), date(2024, time.January, 31, 17, 0),
			"regular-work", payroll.SubCategoryAny, "old rate"),
		payroll.NewWorkRecord("wr-002", "emp-001", payroll.NewWorkDate(2024, time.February, 1),
			date(2024, time.February, 1, 9, 0), date(2024, time.February, 1, 17, 0),
			"regular-work", payroll.SubCategoryAny, "new rate"),
	}
	for _, rec := range records {
		if err := h.Store.SaveWorkRecord(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func date(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}
