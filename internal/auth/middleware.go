package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is unexported so only this package can read or write session
// values in a request context.
type contextKey string

const sessionKey contextKey = "session"

// TokenCookie is the cookie the admin login sets; the middleware accepts it
// as an alternative to the Authorization header so server-rendered admin
// pages work without script-visible tokens.
const TokenCookie = "token"

// RequireRole returns middleware that rejects requests without a valid
// token (401) or with a token lacking the required role (403). This is the
// policy check for admin-only routes: the role comes from the token claim,
// never from comparing usernames.
func RequireRole(tokens *TokenService, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := SessionFromRequest(r, tokens)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
				return
			}
			if session.Role != role {
				writeAuthError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromRequest extracts and validates the session token from the
// Authorization header (Bearer) or, failing that, the token cookie.
func SessionFromRequest(r *http.Request, tokens *TokenService) (Session, error) {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return tokens.Validate(strings.TrimPrefix(header, "Bearer "))
	}
	cookie, err := r.Cookie(TokenCookie)
	if err != nil {
		return Session{}, err
	}
	return tokens.Validate(cookie.Value)
}

// SessionFromContext returns the session stored by RequireRole.
func SessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionKey).(Session)
	return session, ok
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + code + `","message":"` + message + `"}`))
}
