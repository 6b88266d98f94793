// Package i18n holds the guest console's display strings in its two
// supported locales. The language toggle swaps these strings only — it
// never affects stored data.
package i18n

// Locale identifies one of the two supported display languages.
type Locale string

const (
	English  Locale = "en"
	Croatian Locale = "hr"
)

// Toggle returns the other locale.
func (l Locale) Toggle() Locale {
	if l == Croatian {
		return English
	}
	return Croatian
}

// Valid reports whether l is a supported locale.
func (l Locale) Valid() bool {
	return l == English || l == Croatian
}

// The fixed string set. Keys are stable identifiers used by the views;
// values are what gets rendered.
var tables = map[Locale]map[string]string{
	English: {
		"loading":       "Loading schedule...",
		"today":         "Today's Schedule",
		"history":       "Schedule History",
		"stats":         "Activity Statistics",
		"todos":         "To-Do List",
		"available":     "available",
		"unavailable":   "unavailable",
		"current_hour":  "Current hour",
		"refresh":       "Refresh",
		"prev_day":      "Previous day",
		"next_day":      "Next day",
		"no_activities": "No activities recorded yet",
	},
	Croatian: {
		"loading":       "Učitavam raspored...",
		"today":         "Današnji raspored",
		"history":       "Povijest rasporeda",
		"stats":         "Statistika aktivnosti",
		"todos":         "Popis zadataka",
		"available":     "slobodan",
		"unavailable":   "zauzet",
		"current_hour":  "Trenutni sat",
		"refresh":       "Osvježi",
		"prev_day":      "Prethodni dan",
		"next_day":      "Sljedeći dan",
		"no_activities": "Još nema zabilježenih aktivnosti",
	},
}

// T looks up the string for key in the given locale. Unknown locales fall
// back to English; unknown keys return the key itself so a missing entry
// is visible rather than blank.
func T(l Locale, key string) string {
	table, ok := tables[l]
	if !ok {
		table = tables[English]
	}
	if s, ok := table[key]; ok {
		return s
	}
	return key
}

// Strings returns the full table for a locale, for handlers that ship the
// whole set to the client at once.
func Strings(l Locale) map[string]string {
	table, ok := tables[l]
	if !ok {
		table = tables[English]
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}
