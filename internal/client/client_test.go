package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/library-catalog/internal/data"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"books": []*data.Book{}})
	}))
	defer ts.Close()

	c := New(ts.URL, "token-123")
	_, err := c.Books()
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-123", gotAuth)
}

func TestClientOmitsHeaderWithoutToken(t *testing.T) {
	var gotAuth string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"token": "issued"})
	}))
	defer ts.Close()

	c := New(ts.URL, "")
	tok, err := c.Login("ada", "secret")
	require.NoError(t, err)

	assert.Empty(t, gotAuth)
	assert.Equal(t, "issued", tok)
}

func TestClientDecodesStringError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error": "wrong password"})
	}))
	defer ts.Close()

	_, err := New(ts.URL, "").Login("ada", "nope")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "wrong password", apiErr.Message)
}

func TestClientDecodesFieldErrorMap(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"title": "must be provided"}})
	}))
	defer ts.Close()

	_, err := New(ts.URL, "t").CreateBook("", "A", "D", 1)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "title: must be provided")
}

func TestUpdateBookSendsFullRecord(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody data.Book

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	book := &data.Book{ID: 7, Title: "Dune", Author: "Herbert", Description: "D", Units: 5}
	require.NoError(t, New(ts.URL, "t").UpdateBook(book))

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/Book/7", gotPath)
	assert.Equal(t, *book, gotBody)
}

func TestFilterBooks(t *testing.T) {
	books := []*data.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert"},
		{ID: 2, Title: "Emma", Author: "Jane Austen"},
		{ID: 3, Title: "The Dispossessed", Author: "Ursula K. Le Guin"},
	}

	// Case-insensitive substring over the title.
	got := FilterBooks(books, "dUnE")
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	// And over the author.
	got = FilterBooks(books, "austen")
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	// Substrings match anywhere in either field.
	got = FilterBooks(books, "e")
	assert.Len(t, got, 3)

	// No match yields an empty, non-nil slice.
	got = FilterBooks(books, "tolkien")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	// Empty query returns everything.
	assert.Len(t, FilterBooks(books, ""), 3)
}

func TestTokenFileRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// Before login there is no token.
	_, err := LoadToken()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	require.NoError(t, SaveToken("abc.def.ghi"))

	tok, err := LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	// Logout clears the token; clearing twice is fine.
	require.NoError(t, ClearToken())
	require.NoError(t, ClearToken())

	_, err = LoadToken()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
