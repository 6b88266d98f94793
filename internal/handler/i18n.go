package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Neetko/SCHEDULE-APP/internal/i18n"
)

// HandleStrings serves the guest console's display strings for one locale,
// so the language toggle is a single refetch of this table.
//
// HTTP: GET /api/i18n/{locale}
//
// Unknown locales fall back to English rather than erroring — the toggle
// only ever produces the two supported values, but the URL is public.
func HandleStrings(w http.ResponseWriter, r *http.Request) {
	locale := i18n.Locale(chi.URLParam(r, "locale"))
	if !locale.Valid() {
		locale = i18n.English
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"locale":  locale,
		"strings": i18n.Strings(locale),
	})
}
