// internal/data/users.go
package data

import (
	"database/sql"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/aoideee/library-catalog/internal/validator"
)

// DefaultRole is assigned to every self-registered account. The role is
// carried in issued tokens but no endpoint currently restricts on it.
const DefaultRole = "admin"

// User represents a registered account. The stored bcrypt hash is never
// serialized to JSON.
type User struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Password password `json:"-"`
	Role     string   `json:"role"`
}

// password wraps an optional plaintext value and its bcrypt hash.
// The plaintext pointer distinguishes "not provided" from "empty string".
type password struct {
	plaintext *string
	hash      []byte
}

// Set calculates the bcrypt hash of a plaintext password and stores both
// the hash and the plaintext in the struct.
func (p *password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), 12)
	if err != nil {
		return err
	}

	p.plaintext = &plaintextPassword
	p.hash = hash
	return nil
}

// Matches checks whether the provided plaintext password matches the
// stored hash, returning true on a match.
func (p *password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.hash, []byte(plaintextPassword))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

// Hash exposes the stored bcrypt hash. Used by tests to assert the hash
// is left untouched by a failed duplicate registration.
func (p *password) Hash() []byte {
	return p.hash
}

// ValidatePasswordPlaintext checks a password before it is hashed.
// bcrypt refuses inputs over 72 bytes outright, so the length bound has
// to be enforced here, where it can surface as a field error instead of
// a hashing failure.
func ValidatePasswordPlaintext(v *validator.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(len(password) <= 72, "password", "must not be more than 72 bytes long")
}

// ValidateUser checks the account fields. The password is validated
// separately with ValidatePasswordPlaintext, before hashing.
func ValidateUser(v *validator.Validator, user *User) {
	v.Check(user.Name != "", "name", "must be provided")
	v.Check(len(user.Name) <= 100, "name", "must not be more than 100 characters long")

	v.Check(user.Username != "", "username", "must be provided")
	v.Check(len(user.Username) <= 100, "username", "must not be more than 100 characters long")
}

// UserModel wraps a *sql.DB connection and provides methods for creating
// and reading user accounts. Accounts are never updated or deleted
// through the API.
type UserModel struct {
	DB *sql.DB // Shared database connection pool
}

// Insert adds a new account to the database.
// Returns ErrDuplicateUsername if the username is already taken.
func (m UserModel) Insert(user *User) error {
	query := `
		INSERT INTO users (name, username, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := m.DB.QueryRow(
		query,
		user.Name,
		user.Username,
		string(user.Password.hash),
		user.Role,
	).Scan(&user.ID)

	if err != nil {
		// lib/pq reports 'duplicate key value violates unique constraint',
		// modernc sqlite reports 'UNIQUE constraint failed'. Match both.
		switch {
		case isUniqueViolation(err):
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	return nil
}

// GetByUsername retrieves the account with the given username.
// Returns ErrRecordNotFound if no account matches.
func (m UserModel) GetByUsername(username string) (*User, error) {
	query := `
		SELECT id, name, username, password_hash, role
		FROM users
		WHERE username = $1`

	var user User
	var hash string

	err := m.DB.QueryRow(query, username).Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&hash,
		&user.Role,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	user.Password.hash = []byte(hash)
	return &user, nil
}

// GetAll retrieves every registered account. Password hashes are loaded
// into the struct but excluded from JSON serialization.
func (m UserModel) GetAll() ([]*User, error) {
	query := `
		SELECT id, name, username, role
		FROM users`

	rows, err := m.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*User{}

	for rows.Next() {
		var user User
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Username,
			&user.Role,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// isUniqueViolation reports whether err is a unique-constraint failure
// from either supported driver.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
