// Package client implements the HTTP client for the library catalog API.
// It mirrors the behavior of the original single-page frontend: one call
// per operation, the bearer token attached to every authenticated request,
// and search performed locally over an already-fetched list.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aoideee/library-catalog/internal/data"
)

// Client talks to a running catalog API server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New returns a Client for the API at baseURL. The token may be empty for
// unauthenticated calls (register, login).
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// APIError is the decoded error envelope for a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// do performs one request. A non-nil body is JSON-encoded; a non-nil out
// receives the decoded response body. Non-2xx statuses are returned as
// *APIError with the server's error envelope message.
func (c *Client) do(method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: decodeErrorMessage(resp.Body)}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// decodeErrorMessage extracts the "error" value from an error envelope.
// The value may be a plain string or a field-error map; either way a
// human-readable string comes back.
func decodeErrorMessage(body io.Reader) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil || len(envelope.Error) == 0 {
		return "unexpected response from server"
	}

	var message string
	if err := json.Unmarshal(envelope.Error, &message); err == nil {
		return message
	}

	var fields map[string]string
	if err := json.Unmarshal(envelope.Error, &fields); err == nil {
		parts := make([]string, 0, len(fields))
		for field, msg := range fields {
			parts = append(parts, field+": "+msg)
		}
		return strings.Join(parts, "; ")
	}

	return string(envelope.Error)
}

// Register creates a new account.
func (c *Client) Register(name, username, password string) error {
	body := map[string]string{
		"name":     name,
		"username": username,
		"password": password,
	}
	return c.do(http.MethodPost, "/api/User/register", body, nil)
}

// Login verifies credentials and returns the issued bearer token.
func (c *Client) Login(username, password string) (string, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(http.MethodPost, "/api/User/login", body, &out)
	if err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("server returned an empty token")
	}
	return out.Token, nil
}

// Users fetches every registered account.
func (c *Client) Users() ([]*data.User, error) {
	var out struct {
		Users []*data.User `json:"users"`
	}
	err := c.do(http.MethodGet, "/api/User", nil, &out)
	return out.Users, err
}

// Books fetches the full catalog.
func (c *Client) Books() ([]*data.Book, error) {
	var out struct {
		Books []*data.Book `json:"books"`
	}
	err := c.do(http.MethodGet, "/api/Book", nil, &out)
	return out.Books, err
}

// Book fetches a single record by id.
func (c *Client) Book(id int64) (*data.Book, error) {
	var out struct {
		Book *data.Book `json:"book"`
	}
	err := c.do(http.MethodGet, fmt.Sprintf("/api/Book/%d", id), nil, &out)
	return out.Book, err
}

// CreateBook stores a new book and returns it with the assigned id.
func (c *Client) CreateBook(title, author, description string, units int) (*data.Book, error) {
	body := map[string]any{
		"title":       title,
		"author":      author,
		"description": description,
		"units":       units,
	}
	var out struct {
		Book *data.Book `json:"book"`
	}
	err := c.do(http.MethodPost, "/api/Book", body, &out)
	return out.Book, err
}

// UpdateBook replaces the stored record for book.ID wholesale.
func (c *Client) UpdateBook(book *data.Book) error {
	return c.do(http.MethodPut, fmt.Sprintf("/api/Book/%d", book.ID), book, nil)
}

// DeleteBook removes a record by id.
func (c *Client) DeleteBook(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/Book/%d", id), nil, nil)
}

// FilterBooks returns the books whose title or author contains query,
// compared case-insensitively. An empty query returns the input unchanged.
// This is the same local filtering the original frontend applied to its
// fetched list; no server round trip happens here.
func FilterBooks(books []*data.Book, query string) []*data.Book {
	if query == "" {
		return books
	}
	q := strings.ToLower(query)

	filtered := []*data.Book{}
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.Author), q) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}
