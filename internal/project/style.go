package project

import (
	"fmt"
	"strings"
)

// Style selects the project document format.
type Style int

const (
	// StyleAutomatic defers to the preferred style of the caller.
	StyleAutomatic Style = iota

	// StyleSDK renders SDK-style projects.
	StyleSDK

	// StyleLegacy renders ToolsVersion 4.0 projects.
	StyleLegacy
)

// DefaultPreferredStyle is what StyleAutomatic resolves to when the caller
// has no preference.
const DefaultPreferredStyle = StyleLegacy

// String returns the configuration name of s.
func (s Style) String() string {
	switch s {
	case StyleSDK:
		return "sdk"
	case StyleLegacy:
		return "legacy"
	default:
		return "automatic"
	}
}

// Resolve returns the concrete style, mapping StyleAutomatic to preferred.
func (s Style) Resolve(preferred Style) Style {
	if s != StyleAutomatic {
		return s
	}
	if preferred == StyleAutomatic {
		return DefaultPreferredStyle
	}
	return preferred
}

// ParseStyle parses a configuration value. The empty string is automatic.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "automatic", "auto":
		return StyleAutomatic, nil
	case "sdk":
		return StyleSDK, nil
	case "legacy":
		return StyleLegacy, nil
	default:
		return StyleAutomatic, fmt.Errorf("unknown project style %q (want automatic, sdk or legacy)", s)
	}
}
