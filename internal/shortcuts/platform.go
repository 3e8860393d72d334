package shortcuts

import (
	"runtime"
	"strings"
)

// Canonical modifier tokens used in key sequences.
const (
	ModMeta  = "meta"
	ModCtrl  = "ctrl"
	ModShift = "shift"
	ModAlt   = "alt"
)

// Platform describes the host operating environment. It exists so tests
// and non-native hosts can inject a platform without touching the real
// runtime.
type Platform interface {
	// OS returns a GOOS-style platform name, e.g. "darwin" or "linux".
	OS() string
}

type runtimePlatform struct{}

func (runtimePlatform) OS() string { return runtime.GOOS }

// RuntimePlatform returns a Platform backed by runtime.GOOS.
func RuntimePlatform() Platform { return runtimePlatform{} }

// PrimaryModifier returns the canonical primary modifier token for the
// platform: "meta" on macOS, "ctrl" everywhere else. The platform is
// inspected on every call rather than cached.
func PrimaryModifier(p Platform) string {
	if p == nil {
		p = runtimePlatform{}
	}
	if p.OS() == "darwin" {
		return ModMeta
	}
	return ModCtrl
}

// DisplayKey returns a human-displayable name for a key token, for UI
// surfaces that render shortcuts. macOS gets its modifier glyphs;
// everything else gets capitalized names.
func DisplayKey(p Platform, token string) string {
	if p == nil {
		p = runtimePlatform{}
	}
	token = strings.ToLower(strings.TrimSpace(token))
	darwin := p.OS() == "darwin"

	switch token {
	case ModMeta:
		if darwin {
			return "⌘"
		}
		return "Meta"
	case ModCtrl:
		if darwin {
			return "⌃"
		}
		return "Ctrl"
	case ModShift:
		if darwin {
			return "⇧"
		}
		return "Shift"
	case ModAlt:
		if darwin {
			return "⌥"
		}
		return "Alt"
	case "":
		return ""
	}

	if len(token) == 1 {
		return strings.ToUpper(token)
	}
	return strings.ToUpper(token[:1]) + token[1:]
}
