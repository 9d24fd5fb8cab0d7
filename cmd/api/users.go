// cmd/api/users.go
// This file contains the HTTP request handlers for registration, login,
// and account listing.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/library-catalog/internal/data"
	"github.com/aoideee/library-catalog/internal/token"
	"github.com/aoideee/library-catalog/internal/validator"
)

// registerUserHandler handles POST /api/User/register.
// It hashes the supplied password, assigns the default role, and persists
// a new account. A duplicate username is reported as a 400.
func (app *applicationDependencies) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := &data.User{
		Name:     input.Name,
		Username: input.Username,
		Role:     data.DefaultRole,
	}

	// Validate before hashing: bcrypt rejects inputs over 72 bytes, so an
	// over-length password must be caught here as a field error rather
	// than surfacing as a hashing failure.
	v := validator.New()
	data.ValidateUser(v, user)
	data.ValidatePasswordPlaintext(v, input.Password)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	// Set() stores the bcrypt hash; the plaintext never leaves this handler.
	err = user.Password.Set(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.models.Users.Insert(user)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateUsername):
			// The unique index on username is the single enforcement
			// point, so concurrent registrations cannot both win.
			app.errorResponse(w, r, http.StatusBadRequest, "a user with this username already exists")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.logger.Info("user registered", "id", user.ID, "username", user.Username)

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "user registered successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// loginUserHandler handles POST /api/User/login.
// It verifies the supplied credentials against the stored bcrypt hash and,
// on success, issues a signed bearer token carrying the account's username
// and role with a fixed 24-hour expiry.
func (app *applicationDependencies) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.models.Users.GetByUsername(input.Username)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.invalidCredentialsResponse(w, r, "user not found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	match, err := user.Password.Matches(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !match {
		app.invalidCredentialsResponse(w, r, "wrong password")
		return
	}

	signed, err := token.New([]byte(app.config.jwt.secret), user.Username, user.Role)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"token": signed}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listUsersHandler handles GET /api/User.
// It returns every registered account. Password hashes never appear in the
// response because the field is excluded from JSON serialization.
func (app *applicationDependencies) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.models.Users.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"users": users}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
