/*
scheduler.go - Automated monthly payroll batch

PURPOSE:
  Periodically runs the payroll computation for the previous calendar
  month across all employees and records the outcome in the batch log.
  The batch never persists summaries (they are derived state); its
  output is the audit row proving the run happened and succeeded.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Each check targets the previous full month
  - Skips months that already have a successful run logged
  - Manual runs for any month are available via the admin endpoint

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether the scheduler is active (default: true)

USAGE:
  scheduler := NewPayrollScheduler(store, handler)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: Shares computeSummary via Handler
  - store/sqlite: batch_logs table
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

const batchJobPayroll = "payroll"

// PayrollScheduler handles automated monthly payroll runs.
type PayrollScheduler struct {
	Store         *sqlite.Store
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewPayrollScheduler creates a new scheduler.
func NewPayrollScheduler(store *sqlite.Store, handler *Handler) *PayrollScheduler {
	return &PayrollScheduler{
		Store:         store,
		Handler:       handler,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (ps *PayrollScheduler) Start() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	ps.ticker = time.NewTicker(ps.CheckInterval)
	ps.wg.Add(1)

	go ps.run()

	log.Printf("[Scheduler] Started with check interval: %v", ps.CheckInterval)
}

// Stop stops the scheduler.
func (ps *PayrollScheduler) Stop() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.ticker != nil {
		ps.ticker.Stop()
		close(ps.stop)
		ps.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (ps *PayrollScheduler) run() {
	defer ps.wg.Done()

	// Run immediately on start
	ps.checkAndProcess()

	for {
		select {
		case <-ps.ticker.C:
			ps.checkAndProcess()
		case <-ps.stop:
			return
		}
	}
}

func (ps *PayrollScheduler) checkAndProcess() {
	ctx := context.Background()

	now := time.Now().UTC()
	target := payroll.MonthPeriod(now.Year(), now.Month()).PreviousMonth()

	done, err := ps.alreadyRan(ctx, target)
	if err != nil {
		log.Printf("[Scheduler] Error checking batch log: %v", err)
		return
	}
	if done {
		return
	}

	log.Printf("[Scheduler] Running payroll batch for %s", target.Label())
	if _, err := ps.RunForPeriod(ctx, target); err != nil {
		log.Printf("[Scheduler] Payroll batch for %s failed: %v", target.Label(), err)
	}
}

// alreadyRan reports whether a successful run for the period is logged.
func (ps *PayrollScheduler) alreadyRan(ctx context.Context, period payroll.Period) (bool, error) {
	logs, err := ps.Store.ListBatchLogs(ctx, 200)
	if err != nil {
		return false, err
	}
	prefix := period.Label() + ":"
	for _, l := range logs {
		if l.JobType == batchJobPayroll && l.Status == "SUCCESS" && strings.HasPrefix(l.Message, prefix) {
			return true, nil
		}
	}
	return false, nil
}

// RunForPeriod computes payroll for every employee in the period and
// logs the outcome. The returned totals are derived output, not state.
func (ps *PayrollScheduler) RunForPeriod(ctx context.Context, period payroll.Period) (payroll.PayrollTotals, error) {
	employees, err := ps.Store.Employees(ctx)
	if err != nil {
		return payroll.PayrollTotals{}, ps.logRun(ctx, period, err)
	}

	rates, err := ps.Store.WageRates(ctx)
	if err != nil {
		return payroll.PayrollTotals{}, ps.logRun(ctx, period, err)
	}
	table := payroll.NewRateTable(rates...)

	summaries := make([]payroll.PayrollSummary, 0, len(employees))
	for _, emp := range employees {
		records, err := ps.Store.WorkRecordsInRange(ctx, emp.ID, period.Start, period.End)
		if err != nil {
			return payroll.PayrollTotals{}, ps.logRun(ctx, period, err)
		}
		summary, err := payroll.Aggregate(payroll.AggregateInput{
			EmployeeID: emp.ID,
			Period:     period,
			Records:    records,
			Rates:      table,
			Policy:     ps.Handler.Policy,
		})
		if err != nil {
			return payroll.PayrollTotals{}, ps.logRun(ctx, period, err)
		}
		summaries = append(summaries, summary)
	}

	totals := payroll.Combine(summaries)
	totals.Period = period
	return totals, ps.logRun(ctx, period, nil)
}

// logRun appends the audit row and passes the original error through.
func (ps *PayrollScheduler) logRun(ctx context.Context, period payroll.Period, runErr error) error {
	entry := sqlite.BatchLog{
		ID:      "log-" + uuid.NewString(),
		JobType: batchJobPayroll,
		Status:  "SUCCESS",
		RanAt:   time.Now().UTC(),
	}
	if runErr != nil {
		entry.Status = "FAILED"
		entry.Message = fmt.Sprintf("%s: %v", period.Label(), runErr)
	} else {
		entry.Message = fmt.Sprintf("%s: payroll computed", period.Label())
	}

	if err := ps.Store.AppendBatchLog(ctx, entry); err != nil {
		log.Printf("[Scheduler] Failed to append batch log: %v", err)
	}
	return runErr
}

// =============================================================================
// MANUAL TRIGGER (admin endpoint)
// =============================================================================

// TriggerPayrollBatch runs the batch for a requested month.
func (ps *PayrollScheduler) TriggerPayrollBatch(w http.ResponseWriter, r *http.Request) {
	var req TriggerBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	period, err := parseMonth(req.TargetMonth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid target_month (use YYYY-MM)", err)
		return
	}

	totals, err := ps.RunForPeriod(r.Context(), period)
	if err != nil {
		writeComputeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Payroll batch for %s completed", period.Label()),
		"totals":  payrollTotalsDTO(totals),
	})
}
