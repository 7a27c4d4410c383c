package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the exp claim from a JWT without verifying the
// signature. Only the backend can verify; the client just avoids presenting
// a token it already knows is dead. Returns the zero time when the token
// carries no expiry.
func TokenExpiry(raw string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

// TokenExpired reports whether the token's exp claim has passed. Tokens
// without an expiry, or unparsable tokens, are not treated as expired here:
// the backend stays authoritative and will answer 401 if it disagrees.
func TokenExpired(raw string, now time.Time) bool {
	exp, err := TokenExpiry(raw)
	if err != nil || exp.IsZero() {
		return false
	}
	return now.After(exp)
}
