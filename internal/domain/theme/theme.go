// Package theme holds the visitor's colour-scheme preference.
//
// A Preference is a plain value: it is created once from the persisted choice
// (or the site default) and only changes through Toggle.
package theme

import "strings"

// Mode is a colour scheme.
type Mode string

// Supported modes.
const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// StorageKey is the name under which the preference is persisted client-side.
const StorageKey = "themeMode"

// Parse accepts "light" or "dark" in any case.
func Parse(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// Preference is the current mode plus whether it came from the visitor.
type Preference struct {
	Mode      Mode `json:"mode"`
	Persisted bool `json:"persisted"`
}

// Resolve builds the initial preference from a persisted value, falling back
// to fallback (and to Dark when fallback itself is invalid).
func Resolve(persisted string, fallback Mode) Preference {
	if m, ok := Parse(persisted); ok {
		return Preference{Mode: m, Persisted: true}
	}
	if m, ok := Parse(string(fallback)); ok {
		return Preference{Mode: m}
	}
	return Preference{Mode: Dark}
}

// Toggle returns the opposite preference, marked as persisted.
func (p Preference) Toggle() Preference {
	next := Dark
	if p.Mode == Dark {
		next = Light
	}
	return Preference{Mode: next, Persisted: true}
}
