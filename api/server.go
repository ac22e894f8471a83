/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. httplog:    Structured request logging over slog
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for frontend
  5. Role:       Extracts the caller's role into the request context

ROLE HANDLING:
  The caller's role travels as an explicit per-request context value
  (X-Role header), never as ambient session state. Admin routes check
  it; nothing else reads it. Real authentication belongs to whatever
  gateway fronts this service.

ROUTE GROUPS:
  /api/employees/*     Employee master data
  /api/work-types/*    Work type master data
  /api/wage-rates/*    Versioned wage rate table
  /api/work-records/*  Raw shift records
  /api/payrolls/*      Period payroll computation
  /api/dashboard/*     Monthly projections
  /api/admin/*         Batch runs and audit log (ADMIN role)
  /api/scenarios/*     Demo data loaders (dev only)

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, scheduler *PayrollScheduler) *chi.Mux {
	r := chi.NewRouter()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "payroll-engine"),
	)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Role"},
		AllowCredentials: true,
	}))
	r.Use(roleContext)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
		})

		// Work type routes
		r.Route("/work-types", func(r chi.Router) {
			r.Get("/", h.ListWorkTypes)
			r.Post("/", h.CreateWorkType)
			r.Post("/{id}/deactivate", h.DeactivateWorkType)
		})

		// Wage rate routes (append-only history)
		r.Route("/wage-rates", func(r chi.Router) {
			r.Get("/", h.ListWageRates)
			r.Post("/", h.CreateWageRate)
		})

		// Work record routes
		r.Route("/work-records", func(r chi.Router) {
			r.Get("/", h.ListWorkRecords)
			r.Post("/", h.CreateWorkRecord)
			r.Get("/{id}", h.GetWorkRecord)
			r.Delete("/{id}", h.DeleteWorkRecord)
		})

		// Payroll routes
		r.Route("/payrolls", func(r chi.Router) {
			r.Get("/", h.ListPayrolls)
			r.Get("/{employeeID}", h.GetPayroll)
		})

		// Dashboard routes
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", h.GetDashboard)
			r.Get("/{employeeID}", h.GetEmployeeDashboard)
		})

		// Admin routes (batch runs and audit log)
		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/batch", h.ListBatchLogs)
			r.Post("/batch/payroll", scheduler.TriggerPayrollBatch)
		})

		// Scenario routes (dev only)
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

// =============================================================================
// ROLE CONTEXT
// =============================================================================

type contextKey string

const roleKey contextKey = "role"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// roleContext copies the X-Role header into the request context.
// Unset defaults to USER.
func roleContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := r.Header.Get("X-Role")
		if role == "" {
			role = RoleUser
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), roleKey, role)))
	})
}

// RoleFromContext returns the caller's role for this request.
func RoleFromContext(ctx context.Context) string {
	if role, ok := ctx.Value(roleKey).(string); ok {
		return role
	}
	return RoleUser
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RoleFromContext(r.Context()) != RoleAdmin {
			writeError(w, http.StatusForbidden, "Admin role required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
