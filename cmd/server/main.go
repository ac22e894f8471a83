/*
main.go - Application entry point

PURPOSE:

	Initializes and starts the payroll engine server. Handles
	configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
 1. Load .env (if present) and parse command-line flags
 2. Initialize SQLite store
 3. Load overtime policy and optional seed wage rates
 4. Create API handler and background payroll scheduler
 5. Start server with graceful shutdown

COMMAND-LINE FLAGS:

	-port       HTTP server port (default: 8080, env: PORT)
	-db         SQLite database path (default: payroll.db, env: DB_PATH)
	            Use ":memory:" for in-memory database
	-policy     Path to a policy JSON file (env: POLICY_FILE)
	-scheduler  Enable the monthly payroll batch scheduler (default: true)

GRACEFUL SHUTDOWN:

	On SIGINT/SIGTERM:
	1. Stop accepting new connections
	2. Stop the batch scheduler
	3. Wait for active requests to complete (30s timeout)
	4. Close database connection

EXAMPLES:

	# Run with file database
	./server -db="./data/payroll.db"

	# Run with a custom policy
	./server -policy="./config/policy.json"

	# Run without the batch scheduler
	./server -scheduler=false

SEE ALSO:
  - api/server.go: Router configuration
  - api/scheduler.go: Monthly batch runner
  - factory/policy.go: Policy file format
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/store/sqlite"
)

func main() {
	// .env is optional; flags and real env vars win.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envStr("DB_PATH", "payroll.db"), "SQLite database path")
	policyPath := flag.String("policy", envStr("POLICY_FILE", ""), "Policy JSON file path")
	schedulerOn := flag.Bool("scheduler", true, "Enable the monthly payroll batch scheduler")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	policy := factory.DefaultPolicy()
	if *policyPath != "" {
		data, err := os.ReadFile(*policyPath)
		if err != nil {
			log.Fatalf("Failed to read policy file: %v", err)
		}
		parsed, rates, err := factory.ParsePolicy(data)
		if err != nil {
			log.Fatalf("Failed to parse policy file: %v", err)
		}
		policy = parsed

		// Seed wage rates only into an empty database, so restarts
		// don't duplicate the insert-only rate history.
		existing, err := store.WageRates(context.Background())
		if err != nil {
			log.Fatalf("Failed to read wage rates: %v", err)
		}
		if len(existing) == 0 {
			for _, rate := range rates {
				if err := store.AddWageRate(context.Background(), rate); err != nil {
					log.Fatalf("Failed to seed wage rate %s: %v", rate.ID, err)
				}
			}
			if len(rates) > 0 {
				log.Printf("Seeded %d wage rates from policy file", len(rates))
			}
		}
	}

	handler := api.NewHandler(store, policy)

	scheduler := api.NewPayrollScheduler(store, handler)
	scheduler.Enabled = *schedulerOn
	scheduler.Start()
	defer scheduler.Stop()

	router := api.NewRouter(handler, scheduler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
