package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/threadly-dev/threadly/internal/domain"
	jwt_internal "github.com/threadly-dev/threadly/internal/jwt"
)

// Key to store the account claims in the request context
type key int

const accountClaimsKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that requires authentication
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, err := a.extractAccount(r)
			if err != nil {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), accountClaimsKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth populates account context if a valid token is present but
// never rejects. Read-only endpoints use this: viewing content requires no
// identity and bypasses every gate.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if account, err := a.extractAccount(r); err == nil {
				ctx := context.WithValue(r.Context(), accountClaimsKey, account)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractAccount pulls the token from the accessToken cookie (browser
// clients) or the Authorization header (API clients) and verifies it.
func (a *Auth) extractAccount(r *http.Request) (*domain.Account, error) {
	var tokenString string
	if accessCookie, err := r.Cookie("accessToken"); err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}

	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}
	return jwt_internal.AccountFromToken(token)
}

var errNoToken = errorString("no token")

type errorString string

func (e errorString) Error() string { return string(e) }

// GetAccountFromContext returns the authenticated account, or nil for an
// anonymous request.
func GetAccountFromContext(r *http.Request) *domain.Account {
	account, _ := r.Context().Value(accountClaimsKey).(*domain.Account)
	return account
}

// WithAccount is a test helper that injects an account into the request
// context the same way NeedAuth does.
func WithAccount(r *http.Request, account *domain.Account) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), accountClaimsKey, account))
}
