package data

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// newTestModels opens a fresh SQLite database in a temp dir, runs the
// migration, and returns a wired Models value.
func newTestModels(t *testing.T) Models {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db, "sqlite"))
	return NewModels(db)
}

func TestBookInsertAndGet(t *testing.T) {
	models := newTestModels(t)

	book := &Book{
		Title:       "Dune",
		Author:      "Herbert",
		Description: "Desert planet epic",
		Units:       3,
	}
	require.NoError(t, models.Books.Insert(book))
	require.NotZero(t, book.ID)

	got, err := models.Books.Get(book.ID)
	require.NoError(t, err)

	// Round trip returns a record equal to the input plus the new id.
	assert.Equal(t, book, got)
}

func TestBookGetNotFound(t *testing.T) {
	models := newTestModels(t)

	_, err := models.Books.Get(42)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = models.Books.Get(0)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestBookGetAll(t *testing.T) {
	models := newTestModels(t)

	books, err := models.Books.GetAll()
	require.NoError(t, err)
	assert.Empty(t, books)

	for _, title := range []string{"Dune", "Emma", "Hamlet"} {
		b := &Book{Title: title, Author: "A", Description: "D", Units: 1}
		require.NoError(t, models.Books.Insert(b))
	}

	books, err = models.Books.GetAll()
	require.NoError(t, err)
	assert.Len(t, books, 3)
}

func TestBookUpdateReplacesWholeRecord(t *testing.T) {
	models := newTestModels(t)

	book := &Book{Title: "Dune", Author: "Herbert", Description: "First edition", Units: 3}
	require.NoError(t, models.Books.Insert(book))

	replacement := &Book{
		ID:          book.ID,
		Title:       "Dune",
		Author:      "Herbert",
		Description: "First edition",
		Units:       5,
	}
	require.NoError(t, models.Books.Update(replacement))

	got, err := models.Books.Get(book.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Units)
	assert.Equal(t, replacement, got)
}

func TestBookUpdateNotFound(t *testing.T) {
	models := newTestModels(t)

	err := models.Books.Update(&Book{ID: 99, Title: "T", Author: "A", Description: "D"})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestBookDelete(t *testing.T) {
	models := newTestModels(t)

	book := &Book{Title: "Dune", Author: "Herbert", Description: "D", Units: 1}
	require.NoError(t, models.Books.Insert(book))

	require.NoError(t, models.Books.Delete(book.ID))

	// Delete followed by Get on the same identifier yields not-found.
	_, err := models.Books.Get(book.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	// And a second delete reports not-found too.
	assert.ErrorIs(t, models.Books.Delete(book.ID), ErrRecordNotFound)
}

func TestBookIDsAreNotReassigned(t *testing.T) {
	models := newTestModels(t)

	first := &Book{Title: "One", Author: "A", Description: "D", Units: 1}
	require.NoError(t, models.Books.Insert(first))
	require.NoError(t, models.Books.Delete(first.ID))

	second := &Book{Title: "Two", Author: "A", Description: "D", Units: 1}
	require.NoError(t, models.Books.Insert(second))

	// AUTOINCREMENT keeps identifiers immutable and unique for the
	// lifetime of the table, even across deletes.
	assert.Greater(t, second.ID, first.ID)
}
