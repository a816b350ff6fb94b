package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the expiry claim from a JWT without verifying the
// signature; the client holds no signing key. A malformed token or a
// token without an exp claim reports (zero, false) and is treated the
// same as no token at all.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenExpired reports whether the stored auth token has an expiry in
// the past. No token, or a token without a readable expiry, counts as
// not expired: the server remains the authority on rejecting it.
func (s *Store) TokenExpired(now time.Time) bool {
	token, ok := s.AuthToken()
	if !ok {
		return false
	}
	exp, ok := TokenExpiry(token)
	if !ok {
		return false
	}
	return exp.Before(now)
}
