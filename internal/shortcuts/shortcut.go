package shortcuts

import "strings"

// Action is the callback invoked when a shortcut fires. Dispatch is
// invoke-and-forget: the registry never waits on an action, so actions
// that do real work should hand it off themselves.
type Action func()

// Definition declares a keyboard shortcut. Features construct one and hand
// it to Registry.Register; the registry owns it from then on.
type Definition struct {
	// ID is the unique, stable identity of the shortcut.
	ID string

	// Category groups related shortcuts for display.
	Category string

	// Description is a short human-readable label.
	Description string

	// DefaultKeys is the ordered key sequence in force when the user has
	// not customized the shortcut. Tokens are case-insensitive.
	DefaultKeys []string

	// Action runs when the shortcut fires.
	Action Action

	// Disabled turns the shortcut off by default. The zero value keeps
	// newly registered shortcuts enabled.
	Disabled bool

	// PlatformSpecific marks sequences whose "meta" tokens should resolve
	// to the platform primary modifier at match time.
	PlatformSpecific bool
}

// Customization is a per-shortcut user override. It exists only when the
// user has changed keys or toggled the enabled state; absence means "use
// the definition". This struct is also the persisted and exported wire
// format.
type Customization struct {
	Keys    []string `json:"keys"`
	Enabled bool     `json:"enabled"`
}

// normalizeKeys lowercases and trims every token, returning a fresh slice.
func normalizeKeys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = strings.ToLower(strings.TrimSpace(k))
	}
	return out
}

// keysEqual reports order-and-value equality of two sequences.
func keysEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// cloneKeys returns a copy so callers can't mutate registry state.
func cloneKeys(keys []string) []string {
	if keys == nil {
		return nil
	}
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// isModifierToken reports whether token names a modifier key rather than a
// regular key.
func isModifierToken(token string) bool {
	switch token {
	case ModMeta, ModCtrl, ModShift, ModAlt, "control", "cmd", "command", "option", "super":
		return true
	}
	return false
}
