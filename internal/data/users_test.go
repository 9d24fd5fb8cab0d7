package data

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/library-catalog/internal/validator"
)

func newTestUser(t *testing.T, name, username, plaintext string) *User {
	t.Helper()

	user := &User{Name: name, Username: username, Role: DefaultRole}
	require.NoError(t, user.Password.Set(plaintext))
	return user
}

func TestUserInsertAndGetByUsername(t *testing.T) {
	models := newTestModels(t)

	user := newTestUser(t, "Ada", "ada", "secret")
	require.NoError(t, models.Users.Insert(user))
	require.NotZero(t, user.ID)

	got, err := models.Users.GetByUsername("ada")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, DefaultRole, got.Role)

	// The stored hash verifies the original password and nothing else.
	match, err := got.Password.Matches("secret")
	require.NoError(t, err)
	assert.True(t, match)

	match, err = got.Password.Matches("wrong")
	require.NoError(t, err)
	assert.False(t, match)
}

func TestUserGetByUsernameNotFound(t *testing.T) {
	models := newTestModels(t)

	_, err := models.Users.GetByUsername("nobody")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUserDuplicateUsername(t *testing.T) {
	models := newTestModels(t)

	first := newTestUser(t, "Ada", "ada", "secret")
	require.NoError(t, models.Users.Insert(first))

	second := newTestUser(t, "Imposter", "ada", "hunter2")
	assert.ErrorIs(t, models.Users.Insert(second), ErrDuplicateUsername)

	// The first account is untouched: same hash, still verifying the
	// original password.
	got, err := models.Users.GetByUsername("ada")
	require.NoError(t, err)
	assert.Equal(t, first.Password.Hash(), got.Password.Hash())

	match, err := got.Password.Matches("secret")
	require.NoError(t, err)
	assert.True(t, match)
}

func TestUserGetAll(t *testing.T) {
	models := newTestModels(t)

	require.NoError(t, models.Users.Insert(newTestUser(t, "Ada", "ada", "secret")))
	require.NoError(t, models.Users.Insert(newTestUser(t, "Bob", "bob", "secret")))

	users, err := models.Users.GetAll()
	require.NoError(t, err)
	require.Len(t, users, 2)

	// Listing never loads password hashes.
	for _, u := range users {
		assert.Empty(t, u.Password.Hash())
	}
}

func TestValidatePasswordPlaintext(t *testing.T) {
	v := validator.New()
	ValidatePasswordPlaintext(v, strings.Repeat("x", 72))
	assert.True(t, v.Valid())

	// One byte past the bcrypt input limit fails as a field error.
	v = validator.New()
	ValidatePasswordPlaintext(v, strings.Repeat("x", 73))
	assert.Contains(t, v.Errors, "password")

	v = validator.New()
	ValidatePasswordPlaintext(v, "")
	assert.Contains(t, v.Errors, "password")
}

func TestPasswordSetStoresHashNotPlaintext(t *testing.T) {
	var p password
	require.NoError(t, p.Set("secret"))

	assert.NotEmpty(t, p.hash)
	assert.NotContains(t, string(p.hash), "secret")
}
