package ignore

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MatchMode selects how build-artifact markers are compared with a path.
type MatchMode string

const (
	// ModeSubstring excludes a path when a marker occurs anywhere in it, so
	// "binary.py" is caught by "bin". This is the historical behavior.
	ModeSubstring MatchMode = "substring"
	// ModeSegment only excludes a path when one of its elements equals a marker.
	ModeSegment MatchMode = "segment"
)

// DefaultMarkers are the build-artifact markers excluded unless configured otherwise.
var DefaultMarkers = []string{"bin", "debug"}

// ParseMatchMode validates a mode name. Empty selects ModeSubstring.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSubstring:
		return ModeSubstring, nil
	case ModeSegment:
		return ModeSegment, nil
	default:
		return "", fmt.Errorf("invalid marker match mode %q (want %q or %q)", s, ModeSubstring, ModeSegment)
	}
}

// Markers excludes paths carrying build-artifact markers. Comparison is
// case-sensitive.
type Markers struct {
	Names []string
	Mode  MatchMode
}

// NewMarkers returns a Markers using DefaultMarkers when names is empty.
func NewMarkers(mode MatchMode, names ...string) Markers {
	if len(names) == 0 {
		names = DefaultMarkers
	}
	return Markers{Names: append([]string(nil), names...), Mode: mode}
}

// MatchesPath reports whether path carries any marker.
func (m Markers) MatchesPath(path string) bool {
	if m.Mode == ModeSegment {
		for _, elem := range strings.Split(filepath.ToSlash(path), "/") {
			for _, name := range m.Names {
				if elem == name {
					return true
				}
			}
		}
		return false
	}

	for _, name := range m.Names {
		if name != "" && strings.Contains(path, name) {
			return true
		}
	}
	return false
}
