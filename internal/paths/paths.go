// Package paths normalizes file paths for emission into project documents.
//
// Every path that reaches a rendered document passes through a Normalizer so
// that the same input always yields the same bytes: Unicode NFC form, a single
// canonical separator and project-root-relative where possible.
package paths

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Canonical separators.
const (
	WindowsSeparator = '\\'
	UnixSeparator    = '/'
)

// Normalizer rewrites paths relative to a project root.
type Normalizer struct {
	root string // slash form, no trailing slash
	sep  byte
}

// NewNormalizer creates a normalizer for root emitting sep as separator.
// Any separator other than '/' or '\\' falls back to '\\'.
func NewNormalizer(root string, sep byte) *Normalizer {
	if sep != UnixSeparator && sep != WindowsSeparator {
		sep = WindowsSeparator
	}
	r := ToSlash(root)
	for len(r) > 1 && strings.HasSuffix(r, "/") {
		r = strings.TrimSuffix(r, "/")
	}
	return &Normalizer{root: r, sep: sep}
}

// Root returns the project root in slash form.
func (n *Normalizer) Root() string {
	return n.root
}

// Separator returns the canonical separator.
func (n *Normalizer) Separator() byte {
	return n.sep
}

// Project returns p relative to the root when it lies below it, with the
// canonical separator. Paths outside the root pass through with only the
// separator rewritten.
func (n *Normalizer) Project(p string) string {
	s := ToSlash(p)
	if n.root != "" && strings.HasPrefix(s, n.root+"/") {
		s = s[len(n.root)+1:]
	}
	return n.withSeparator(s)
}

// Absolute returns p joined onto the root when it is relative, with the
// canonical separator.
func (n *Normalizer) Absolute(p string) string {
	s := ToSlash(p)
	if !IsAbsolute(s) && n.root != "" {
		s = strings.TrimPrefix(s, "./")
		s = n.root + "/" + s
	}
	return n.withSeparator(s)
}

// Separators rewrites separators only.
func (n *Normalizer) Separators(p string) string {
	return n.withSeparator(ToSlash(p))
}

func (n *Normalizer) withSeparator(s string) string {
	if n.sep == UnixSeparator {
		return s
	}
	return strings.ReplaceAll(s, "/", string(n.sep))
}

// ToSlash converts p to NFC form with forward slashes.
// Unlike filepath.ToSlash it treats backslashes as separators on every OS,
// since host exports mix both styles.
func ToSlash(p string) string {
	return strings.ReplaceAll(norm.NFC.String(p), "\\", "/")
}

// IsAbsolute reports whether p is rooted, either Unix style or with a
// drive letter.
func IsAbsolute(p string) bool {
	if p == "" {
		return false
	}
	if p[0] == '/' || p[0] == '\\' {
		return true
	}
	return len(p) >= 2 && p[1] == ':' && isLetter(p[0])
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// FoldKey returns a comparison key for case-insensitive path equality.
func FoldKey(p string) string {
	return cases.Fold().String(ToSlash(p))
}

// Ext returns the extension of p without the leading dot, or "" when the
// final path element has none.
func Ext(p string) string {
	base := Base(p)
	i := strings.LastIndexByte(base, '.')
	if i < 0 || i == len(base)-1 {
		return ""
	}
	return base[i+1:]
}

// Base returns the final element of p, treating both separators alike.
func Base(p string) string {
	if i := strings.LastIndexAny(p, "/\\"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// FileNameWithoutExtension returns the final element of p without its
// extension.
func FileNameWithoutExtension(p string) string {
	base := Base(p)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}
