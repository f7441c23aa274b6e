package symptom

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ID is an opaque symptom token such as "high_fever".
// IDs compare by value and carry no display information.
type ID string

// String returns the raw token.
func (id ID) String() string {
	return string(id)
}

// Label formats an ID for display: underscores become spaces and every
// word is capitalized ("retro_orbital_pain" → "Retro Orbital Pain").
func Label(id ID) string {
	// A Caser holds state, so each call gets its own.
	return cases.Title(language.Und).String(strings.ReplaceAll(string(id), "_", " "))
}

// IDs converts raw strings to IDs.
func IDs(raw ...string) []ID {
	out := make([]ID, len(raw))
	for i, s := range raw {
		out[i] = ID(s)
	}
	return out
}
