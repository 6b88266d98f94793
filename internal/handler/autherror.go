package handler

import "net/http"

// authErrorMessages maps each sign-in error code to its fixed user-facing
// message. The codes and texts match the original error page table; the
// error page at /auth/error renders these verbatim.
var authErrorMessages = map[string]string{
	"Configuration":         "There is a problem with the server configuration. Please contact the administrator.",
	"AccessDenied":          "Access denied. You do not have permission to sign in.",
	"Verification":          "The verification token has expired or has already been used.",
	"OAuthSignin":           "Error in constructing an authorization URL.",
	"OAuthCallback":         "Error in handling the response from Discord.",
	"OAuthCreateAccount":    "Could not create Discord account in the database.",
	"EmailCreateAccount":    "Could not create account with the provided email.",
	"Callback":              "Error in the OAuth callback handler route.",
	"OAuthAccountNotLinked": "The Discord account is not linked to any existing account.",
	"EmailSignin":           "Sending the e-mail with the verification token failed.",
	"CredentialsSignin":     "The authorize callback returned null in the Credentials provider.",
	"SessionRequired":       "The content of this page requires you to be signed in at all times.",
}

const defaultAuthErrorMessage = "An unexpected error occurred during authentication. Please try again."

// AuthErrorMessage returns the fixed message for an error code, or the
// generic fallback for unknown codes.
func AuthErrorMessage(code string) string {
	if msg, ok := authErrorMessages[code]; ok {
		return msg
	}
	return defaultAuthErrorMessage
}

// HandleAuthError serves the auth error mapping.
//
// HTTP: GET /auth/error?error=<code>
func (h *AuthHandler) HandleAuthError(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("error")
	writeJSON(w, http.StatusOK, map[string]string{
		"code":    code,
		"message": AuthErrorMessage(code),
	})
}
