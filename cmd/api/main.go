// Package main is the entry point for the library catalog API server.
// It wires together configuration, the database connection, and the HTTP router.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aoideee/library-catalog/internal/data"

	"github.com/joho/godotenv"

	// Blank imports register the PostgreSQL and pure-Go SQLite drivers
	// with database/sql.
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// appVersion is the current version of the API, shown in logs.
const appVersion = "1.0.0"

// serverConfig holds all the values that can be tweaked at startup.
// Each flag falls back to an environment variable (loaded from .env when
// present) so the server can run under both flags and container env.
type serverConfig struct {
	port        int    // TCP port the HTTP server listens on (default 4000)
	environment string // Runtime environment: development, staging, or production
	db          struct {
		driver string // Database driver: postgres or sqlite
		dsn    string // Data Source Name (connection string or file path)
	}
	jwt struct {
		secret string // Symmetric signing key for bearer tokens (required)
	}
	limiter struct {
		rps     float64 // Sustained requests per second allowed per client IP
		burst   int     // Maximum burst size per client IP
		enabled bool    // Turn the limiter off entirely (useful in tests)
	}
	shutdownTimeout time.Duration // Grace period for in-flight requests at shutdown
}

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config serverConfig // Server configuration loaded from flags and env
	logger *slog.Logger // Structured logger shared by the whole application
	models data.Models  // Database access for books and users
}

// main is the application entry point.
// It loads configuration, opens the database, wires up dependencies, and starts the HTTP server.
func main() {
	// Pull in a .env file if one exists. Missing files are fine; the
	// variables may already be set in the process environment.
	_ = godotenv.Load()

	var settings serverConfig

	// Register command-line flags so operators can override env values at runtime.
	flag.IntVar(&settings.port, "port", envInt("PORT", 4000), "Server port")
	flag.StringVar(&settings.environment, "env", envString("ENV", "development"), "Environment(development|staging|production)")
	flag.StringVar(&settings.db.driver, "db-driver", envString("DB_DRIVER", "sqlite"), "Database driver (postgres|sqlite)")
	flag.StringVar(&settings.db.dsn, "db-dsn", envString("DB_DSN", "catalog.db"), "Database DSN (connection string or SQLite file path)")
	flag.StringVar(&settings.jwt.secret, "jwt-secret", envString("JWT_SECRET", ""), "Symmetric key used to sign bearer tokens")
	flag.Float64Var(&settings.limiter.rps, "limiter-rps", 2, "Rate limiter maximum requests per second")
	flag.IntVar(&settings.limiter.burst, "limiter-burst", 4, "Rate limiter maximum burst")
	flag.BoolVar(&settings.limiter.enabled, "limiter-enabled", true, "Enable rate limiter")
	flag.DurationVar(&settings.shutdownTimeout, "shutdown-timeout", envDuration("SHUTDOWN_TIMEOUT", 20*time.Second), "Graceful shutdown grace period")

	flag.Parse()

	// Create a structured logger that writes human-readable text to stdout.
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Refuse to start without a signing key. Tokens signed with a
	// well-known default would be forgeable by anyone.
	if settings.jwt.secret == "" {
		logger.Error("jwt secret must be set via -jwt-secret or JWT_SECRET")
		os.Exit(1)
	}

	// Open and verify the database connection pool.
	db, err := openDB(settings)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer db.Close() // Close the pool cleanly when main() returns.

	logger.Info("database connection pool established", "driver", settings.db.driver)

	// Ensure the books and users tables exist before serving traffic.
	err = data.Migrate(db, settings.db.driver)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	// Bundle all shared dependencies into a single struct.
	appInstance := &applicationDependencies{
		config: settings,
		logger: logger,
		models: data.NewModels(db),
	}

	logger.Info("starting application", "version", appVersion)

	// serve blocks until shutdown; any error it returns is fatal.
	err = appInstance.serve()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// openDB opens a connection pool for the configured driver, then pings the
// database with a 5-second timeout to confirm it is reachable.
// Returns the pool on success, or an error if the connection cannot be established.
func openDB(settings serverConfig) (*sql.DB, error) {
	// sql.Open only validates the DSN format; it does not actually connect yet.
	db, err := sql.Open(settings.db.driver, settings.db.dsn)
	if err != nil {
		return nil, err
	}

	// Create a context that cancels automatically after 5 seconds.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// PingContext performs a real round-trip to verify the database is reachable.
	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// envString returns the named environment variable, or fallback when unset.
func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// envInt returns the named environment variable parsed as an integer,
// or fallback when unset or unparsable.
func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring %s=%q: not an integer\n", key, value)
		return fallback
	}
	return i
}

// envDuration returns the named environment variable parsed as a duration
// (e.g. "30s", "1m"), or fallback when unset or unparsable.
func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring %s=%q: not a duration\n", key, value)
		return fallback
	}
	return d
}
