// internal/data/models.go
package data

import (
	"database/sql"
	"errors"
	"fmt"
)

// Models is a top-level container that groups all database model types together.
// It is passed around the application via applicationDependencies so every handler
// has access to the database without importing sql directly.
type Models struct {
	Books BookModel // Handles all database operations for the books table
	Users UserModel // Handles all database operations for the users table
}

// NewModels constructs a Models value wired up to the given database connection pool.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels(db *sql.DB) Models {
	return Models{
		Books: BookModel{DB: db},
		Users: UserModel{DB: db},
	}
}

// ErrRecordNotFound is returned when a query finds no matching row.
var ErrRecordNotFound = errors.New("record not found")

// ErrDuplicateUsername is returned when an insert violates the unique
// index on users.username.
var ErrDuplicateUsername = errors.New("duplicate username")

// Migrate creates the books and users tables if they do not already exist.
// The DDL differs per driver (auto-increment syntax), so the caller passes
// the driver name it opened the pool with; every query elsewhere in this
// package uses $N placeholders and RETURNING, which both drivers accept.
func Migrate(db *sql.DB, driver string) error {
	var schema string

	switch driver {
	case "postgres":
		schema = `
		CREATE TABLE IF NOT EXISTS books (
			id bigserial PRIMARY KEY,
			title text NOT NULL,
			author text NOT NULL,
			description text NOT NULL,
			units integer NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS users (
			id bigserial PRIMARY KEY,
			name text NOT NULL,
			username text NOT NULL,
			password_hash text NOT NULL,
			role text NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS users_username_idx ON users (username);`
	case "sqlite":
		schema = `
		CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			description TEXT NOT NULL,
			units INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			username TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS users_username_idx ON users (username);`
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	_, err := db.Exec(schema)
	return err
}
