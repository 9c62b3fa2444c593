// Package auth issues and checks the dashboard's JWTs. Admins log in
// with the service password; customer-scoped tokens are minted by an
// admin for a given email and only unlock that customer's own orders.
package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/jwtauth/v5"

	"github.com/jekabolt/storefront-insights/internal/auth/jwt"
	"github.com/jekabolt/storefront-insights/internal/auth/pwhash"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type Config struct {
	JWTSecret                string `mapstructure:"jwt_secret"`
	AdminPassword            string `mapstructure:"admin_password"`
	PasswordHasherSaltSize   int    `mapstructure:"password_hasher_salt_size"`
	PasswordHasherIterations int    `mapstructure:"password_hasher_iterations"`
	JWTTTL                   string `mapstructure:"jwt_ttl"`
}

type Server struct {
	pwhash    *pwhash.PasswordHasher
	JwtAuth   *jwtauth.JWTAuth
	jwtTTL    time.Duration
	adminHash string
}

func New(c *Config) (*Server, error) {
	ph, err := pwhash.New(c.PasswordHasherSaltSize, c.PasswordHasherIterations)
	if err != nil {
		return nil, err
	}
	hash, err := ph.HashPassword(c.AdminPassword)
	if err != nil {
		return nil, err
	}

	ttl := 24 * time.Hour
	if c.JWTTTL != "" {
		ttl, err = time.ParseDuration(c.JWTTTL)
		if err != nil {
			return nil, err
		}
	}

	return &Server{
		pwhash:    ph,
		JwtAuth:   jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		jwtTTL:    ttl,
		adminHash: hash,
	}, nil
}

// MintToken issues a token for the given subject and role using the
// server's signing key and TTL.
func (s *Server) MintToken(subject, role string) (string, error) {
	return jwt.NewToken(s.JwtAuth, s.jwtTTL, subject, role)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AuthToken string `json:"authToken"`
}

// Login exchanges the admin password for an admin token.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.pwhash.Validate(req.Password, s.adminHash); err != nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	token, err := s.MintToken(strings.ToLower(req.Username), RoleAdmin)
	if err != nil {
		http.Error(w, "token issue failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, tokenResponse{AuthToken: token})
}

type customerTokenRequest struct {
	Email string `json:"email"`
}

// CustomerToken mints a customer-scoped token. The route is mounted
// behind admin auth; the resulting token only reveals the orders placed
// under the given email.
func (s *Server) CustomerToken(w http.ResponseWriter, r *http.Request) {
	var req customerTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !govalidator.IsEmail(email) {
		http.Error(w, "invalid email", http.StatusBadRequest)
		return
	}

	token, err := s.MintToken(email, RoleCustomer)
	if err != nil {
		http.Error(w, "token issue failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, tokenResponse{AuthToken: token})
}

// WithAuth verifies and requires a valid token on the wrapped routes.
func (s *Server) WithAuth(next http.Handler) http.Handler {
	return jwtauth.Verifier(s.JwtAuth)(jwtauth.Authenticator(next))
}

// RequireRole rejects tokens whose role claim differs.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if TokenRole(r) != role {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TokenRole returns the role claim of the request token, if any.
func TokenRole(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

// TokenSubject returns the sub claim of the request token, if any.
func TokenSubject(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
