package client

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// tokenFileName is the fixed location of the persisted bearer token,
// relative to the user's home directory. It plays the role the fixed
// localStorage key played in the original frontend: login writes it,
// logout removes it, and its presence is what "logged in" means.
const tokenFileName = ".libcat/token"

// ErrNotLoggedIn is returned by LoadToken when no token file exists.
var ErrNotLoggedIn = errors.New("not logged in")

// tokenPath resolves the absolute token file path.
func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, tokenFileName), nil
}

// SaveToken persists the bearer token, creating the parent directory if
// needed. The file is user-readable only.
func SaveToken(tok string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(tok), 0o600)
}

// LoadToken reads the persisted bearer token.
// Returns ErrNotLoggedIn when the file does not exist.
func LoadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotLoggedIn
		}
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// ClearToken removes the persisted token. Clearing an absent token is not
// an error; logout is idempotent.
func ClearToken() error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
