// internal/app/system/auth/auth.go

// Package auth turns bearer JWTs issued by the campus auth service into
// a Principal in the request context.
//
// Credential management (login, password storage, token issuing for
// real users) lives in the external auth collaborator; this package
// only verifies tokens and gates roles. Issue exists so tests and local
// tooling can mint tokens with the same claims shape.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Principal is the authenticated caller injected into r.Context().
type Principal struct {
	ID   string // hex ObjectID of the user document
	Role string // student | club | department
	Name string
}

// Claims is the JWT payload shared with the auth collaborator.
type Claims struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type ctxKey string

const principalKey ctxKey = "principal"

var errInvalidToken = errors.New("invalid token")

// Verifier parses and validates bearer tokens.
type Verifier struct {
	key    []byte
	issuer string
	log    *zap.Logger
}

// NewVerifier builds a Verifier for HS256 tokens signed with key.
func NewVerifier(signingKey, issuer string, logger *zap.Logger) (*Verifier, error) {
	if signingKey == "" {
		return nil, errors.New("jwt signing key is empty")
	}
	return &Verifier{key: []byte(signingKey), issuer: issuer, log: logger}, nil
}

// Issue mints a signed token for the given principal. Used by tests and
// seed tooling; production tokens come from the auth collaborator.
func (v *Verifier) Issue(id, role, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.key)
}

// Parse validates a raw token string and returns its claims.
func (v *Verifier) Parse(tokenStr string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.key, nil
	})
	if err != nil {
		return Claims{}, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, errInvalidToken
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return Claims{}, errInvalidToken
	}
	return *claims, nil
}

// LoadPrincipal injects the Principal into context when a valid bearer
// token is present. Requests without a token continue unauthenticated;
// RequireRole decides whether that matters.
func (v *Verifier) LoadPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := v.Parse(raw)
		if err != nil {
			v.log.Debug("bearer token rejected", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		p := &Principal{ID: claims.Subject, Role: strings.ToLower(claims.Role), Name: claims.Name}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
	})
}

// CurrentPrincipal returns the principal and a found flag.
func CurrentPrincipal(r *http.Request) (*Principal, bool) {
	p, ok := r.Context().Value(principalKey).(*Principal)
	return p, ok
}

// RequireRole ensures the caller is authenticated and holds one of the
// allowed roles. 401 without a principal, 403 on role mismatch.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := CurrentPrincipal(r)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if _, has := set[p.Role]; !has {
				writeJSONError(w, http.StatusForbidden, "role not permitted")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithTestPrincipal injects a principal directly, bypassing token
// parsing. Handler tests use this instead of minting tokens.
func WithTestPrincipal(r *http.Request, p *Principal) *http.Request {
	return r.WithContext(withPrincipal(r.Context(), p))
}

func withPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[len("bearer "):])
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"message":"` + msg + `"}`))
}
