// Package handler contains the HTTP request handlers. Handlers parse the
// request, call a service, and write the response — no business logic and
// no SQL live here.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/Neetko/SCHEDULE-APP/internal/apperror"
	"github.com/Neetko/SCHEDULE-APP/internal/auth"
	"github.com/Neetko/SCHEDULE-APP/internal/service"
)

// AuthHandler manages the Discord OAuth flow and session management.
//
//   - HandleDiscordLogin    → redirect the browser to Discord's consent page
//   - HandleDiscordCallback → receive the code, run the identity gate, set cookie
//   - HandleLogout          → clear the session cookie
//   - HandleMe              → return the signed-in owner's profile
//   - HandleAuthError       → fixed message for each auth error code
type AuthHandler struct {
	discord *auth.DiscordProvider
	authSvc *service.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(discord *auth.DiscordProvider, authSvc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		discord: discord,
		authSvc: authSvc,
		logger:  logger,
	}
}

// HandleDiscordLogin redirects the user to Discord's authorization page.
//
// HTTP: GET /auth/discord/login
//
// A random state nonce goes into a short-lived HttpOnly cookie; the
// callback verifies Discord echoed it back, which blocks CSRF-initiated
// flows.
func (h *AuthHandler) HandleDiscordLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.discord.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleDiscordCallback completes the sign-in flow.
//
// HTTP: GET /auth/discord/callback?code=xxx&state=yyy
//
//  1. Verify the CSRF state
//  2. Exchange the code for the Discord profile
//  3. Run the identity gate (allow-list, upsert, session token)
//  4. Set the session cookie and land on /admin
//
// Failures redirect to /auth/error with the matching error code, the same
// codes the original error page knows.
func (h *AuthHandler) HandleDiscordCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" {
		h.logger.Warn("auth callback: missing state cookie")
		h.redirectError(w, r, "OAuthCallback")
		return
	}

	if r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("auth callback: state mismatch")
		h.redirectError(w, r, "OAuthCallback")
		return
	}

	// The state cookie is single-use.
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	// Discord reports user-denied authorization via the error parameter.
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("auth callback: provider returned error", slog.String("error", errParam))
		h.redirectError(w, r, "OAuthSignin")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectError(w, r, "OAuthCallback")
		return
	}

	du, err := h.discord.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("auth callback: Discord exchange failed", slog.String("error", err.Error()))
		h.redirectError(w, r, "OAuthCallback")
		return
	}

	result, err := h.authSvc.SignIn(r.Context(), du)
	if err != nil {
		if errors.Is(err, apperror.ErrForbidden) {
			// Non-allow-listed identity. No session, fixed message, no retry.
			h.redirectError(w, r, "AccessDenied")
			return
		}
		h.logger.Error("auth callback: sign-in failed", slog.String("error", err.Error()))
		h.redirectError(w, r, "Callback")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(auth.SessionLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // enable behind HTTPS
	})

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// HandleLogout clears the session cookie.
//
// HTTP: POST /auth/logout
//
// POST, not GET: logout changes state, and GET would be open to CSRF and
// prefetching. Stateless sessions mean "logout" is just deleting the
// cookie; the token stays technically valid until its expiry.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe returns the signed-in owner's profile.
//
// HTTP: GET /api/me (RequireAuth)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	user, err := h.authSvc.GetUserByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("HandleMe: user lookup failed", slog.String("userID", userID))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) redirectError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, "/auth/error?error="+code, http.StatusSeeOther)
}
