// Package token issues and verifies the signed bearer tokens used to
// authenticate API requests. Tokens are HS256 JWTs carrying the account's
// username and role, valid for 24 hours from issuance. The signing secret
// is supplied by the caller at startup; it is never embedded here.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the fixed lifetime of every issued token.
const TTL = 24 * time.Hour

// ErrInvalidToken is returned by Parse for any token that fails
// verification, including expired tokens and bad signatures.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload carried by every issued token.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// New issues a signed token for the given account.
func New(secret []byte, username, role string) (string, error) {
	now := time.Now()

	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token string and returns its claims.
// Returns ErrInvalidToken for anything that does not verify: wrong
// signature, wrong signing method, malformed input, or past expiry.
func Parse(secret []byte, tokenString string) (*Claims, error) {
	var claims Claims

	t, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		// Only accept the method we sign with. Without this check a
		// token signed with "none" or an asymmetric method could slip
		// through verification.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
