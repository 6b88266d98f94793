package auth

import (
	"context"
	"net/http"
)

// contextKey is an unexported type for context keys in this package.
// Using a package-private type instead of a plain string means no other
// package can read or shadow the userID value we store in the context.
type contextKey string

const userIDKey contextKey = "userID"

// SessionCookie is the name of the HttpOnly cookie carrying the JWT.
const SessionCookie = "session"

// RequireAuth enforces authentication on the owner-console routes.
//
// It reads the JWT from the session cookie, validates it, and stores the
// userID in the request context. If the token is missing or invalid, the
// chain stops with 401 Unauthorized — guests never reach a write handler.
//
// The JWT lives in an HttpOnly cookie rather than localStorage or a
// header: JavaScript cannot read it, which keeps XSS from stealing the
// session.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				http.Error(w, `{"error":"unauthorized","message":"valid authentication required"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth extracts the user identity if a valid session is present but
// never blocks the request. Public routes use this so the guest console
// works anonymously while a signed-in owner is still recognisable.
func OptionalAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, err := extractUserID(r, tokens); err == nil && userID != "" {
				ctx := context.WithValue(r.Context(), userIDKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the request
// context. Returns ("", false) for anonymous requests.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// extractUserID reads the session cookie and validates the JWT inside it.
func extractUserID(r *http.Request, tokens *TokenService) (string, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		// http.ErrNoCookie — not an error, just anonymous
		return "", err
	}

	return tokens.Validate(cookie.Value)
}
