package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
)

// NewToken creates a JWT carrying the subject and the dashboard role
// (admin or customer). The role claim is the only session state the
// service keeps; nothing lives in ambient storage.
func NewToken(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, subject, role string) (string, error) {
	claims := map[string]interface{}{
		"exp": time.Now().Add(ttl).Unix(),
	}
	if subject != "" {
		claims["sub"] = subject
	}
	if role != "" {
		claims["role"] = role
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return ts, err
	}
	return ts, nil
}
