// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the recoverPanic and rateLimit middlewares.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → rateLimit → router
//
// Registration and login are the only unauthenticated endpoints; every
// other handler is wrapped in requireAuthenticated, which validates the
// bearer token before the handler runs.
//
// Current endpoints:
//
//	POST   /api/User/register – create a new account
//	POST   /api/User/login    – verify credentials, issue a bearer token
//	GET    /api/User          – list all accounts (auth)
//	POST   /api/Book          – create a new book (auth)
//	GET    /api/Book          – list all books (auth)
//	GET    /api/Book/:id      – retrieve a single book by ID (auth)
//	PUT    /api/Book/:id      – replace an existing book (auth)
//	DELETE /api/Book/:id      – delete a book by ID (auth)
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	// Auth routes (no token required)
	router.HandlerFunc(http.MethodPost, "/api/User/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/User/login", app.loginUserHandler)

	// Account listing
	router.HandlerFunc(http.MethodGet, "/api/User", app.requireAuthenticated(app.listUsersHandler))

	// Book CRUD routes
	router.HandlerFunc(http.MethodPost, "/api/Book", app.requireAuthenticated(app.createBookHandler))
	router.HandlerFunc(http.MethodGet, "/api/Book", app.requireAuthenticated(app.listBooksHandler))
	router.HandlerFunc(http.MethodGet, "/api/Book/:id", app.requireAuthenticated(app.showBookHandler))
	router.HandlerFunc(http.MethodPut, "/api/Book/:id", app.requireAuthenticated(app.updateBookHandler))
	router.HandlerFunc(http.MethodDelete, "/api/Book/:id", app.requireAuthenticated(app.deleteBookHandler))

	// Wrap with middleware: recoverPanic is outermost so it catches panics
	// from rateLimit and router alike.
	return app.recoverPanic(app.rateLimit(router))
}
