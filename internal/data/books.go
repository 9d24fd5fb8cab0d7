// Package data provides the data models and database interaction logic
// for the library catalog.
package data

import (
	"database/sql"
	"errors"

	"github.com/aoideee/library-catalog/internal/validator"
)

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table.
type Book struct {
	ID          int64  `json:"id"`          // Unique identifier assigned by the database
	Title       string `json:"title"`       // Title of the book
	Author      string `json:"author"`      // Name of the author
	Description string `json:"description"` // Short description of the book
	Units       int    `json:"units"`       // Number of copies currently available
}

// ValidateBook runs every field-level check for a book payload and records
// failures on v. The length bounds match the database column constraints.
func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.Title != "", "title", "must be provided")
	v.Check(len(book.Title) <= 100, "title", "must not be more than 100 characters long")

	v.Check(book.Author != "", "author", "must be provided")
	v.Check(len(book.Author) <= 100, "author", "must not be more than 100 characters long")

	v.Check(book.Description != "", "description", "must be provided")
	v.Check(len(book.Description) <= 1000, "description", "must not be more than 1000 characters long")

	v.Check(book.Units >= 0, "units", "must not be negative")
}

// BookModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, and deleting book records.
type BookModel struct {
	DB *sql.DB // Shared database connection pool
}

// Insert adds a new book record to the database.
// After a successful insert, the database-assigned id is written back
// into the book struct.
func (m BookModel) Insert(book *Book) error {
	query := `
		INSERT INTO books (title, author, description, units)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	// Run the INSERT and scan the auto-generated id back into the struct.
	return m.DB.QueryRow(
		query,
		book.Title,
		book.Author,
		book.Description,
		book.Units,
	).Scan(&book.ID)
}

// Get retrieves a single book by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) Get(id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
		SELECT id, title, author, description, units
		FROM books
		WHERE id = $1`

	var book Book
	err := m.DB.QueryRow(query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.Units,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAll retrieves every book in the catalog. The order is whatever the
// store returns; callers that need a particular order sort client-side.
func (m BookModel) GetAll() ([]*Book, error) {
	query := `
		SELECT id, title, author, description, units
		FROM books`

	// Execute the SELECT and get a result set (rows).
	rows, err := m.DB.Query(query)
	if err != nil {
		return nil, err
	}
	// Always close the result set when we are done to free the database connection.
	defer rows.Close()

	books := []*Book{}

	// Iterate over each row and scan the columns into a Book struct.
	for rows.Next() {
		var book Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Description,
			&book.Units,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, &book)
	}

	// Check for any error that occurred while iterating the rows.
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return books, nil
}

// Update replaces the stored record for book.ID with the given values.
// This is a whole-record overwrite, not a field merge.
// Returns ErrRecordNotFound if no record exists for book.ID.
func (m BookModel) Update(book *Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, description = $3, units = $4
		WHERE id = $5`

	// Collect all arguments in order matching the $N placeholders above.
	args := []any{
		book.Title,
		book.Author,
		book.Description,
		book.Units,
		book.ID,
	}

	result, err := m.DB.Exec(query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	// If no rows were changed, the book didn't exist.
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// Delete removes the book with the given id from the database.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Delete(id int64) error {
	// Guard against obviously bad IDs before touching the database.
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `DELETE FROM books WHERE id = $1`

	// Exec returns a Result that tells us how many rows were affected.
	result, err := m.DB.Exec(query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	// If no rows were deleted, the book didn't exist.
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
