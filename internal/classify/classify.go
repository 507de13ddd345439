// Package classify partitions file paths into compile items, tracked
// non-compile items and ignored files.
//
// Classification depends only on the path's extension and the configured
// user extensions. It never touches the filesystem.
package classify

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/roach88/vsgen/internal/paths"
)

// Kind is the classification of a path.
type Kind int

const (
	// Ignored files never appear in a project document.
	Ignored Kind = iota

	// Compile files are rendered as Compile items.
	Compile

	// NonCompileTracked files are rendered as None items.
	NonCompileTracked
)

// String returns the lowercase name used by the CLI.
func (k Kind) String() string {
	switch k {
	case Compile:
		return "compile"
	case NonCompileTracked:
		return "tracked"
	default:
		return "ignored"
	}
}

// BuiltinCompile lists the compile extensions.
var BuiltinCompile = []string{"cs"}

// BuiltinTracked lists the non-compile extensions tracked by default.
var BuiltinTracked = []string{
	"uxml", "uss", "shader", "compute", "cginc", "hlsl",
	"glslinc", "template", "raytrace", "asmdef",
}

// alwaysResync extensions trigger a resync even though dll is never a
// source item.
var alwaysResync = []string{"dll", "asmdef"}

// Classifier classifies paths by extension.
// A Classifier is immutable once built and safe for concurrent use.
type Classifier struct {
	compile map[string]bool
	tracked map[string]bool
	user    map[string]bool
	resync  map[string]bool
}

// New builds a classifier with the built-in extensions plus user.
// User extensions may carry a leading dot.
func New(user []string) *Classifier {
	c := &Classifier{
		compile: toSet(BuiltinCompile),
		tracked: toSet(BuiltinTracked),
		user:    toSet(user),
		resync:  toSet(alwaysResync),
	}
	return c
}

// WithUserExtensions returns a classifier sharing the built-ins with a new
// user extension list.
func (c *Classifier) WithUserExtensions(user []string) *Classifier {
	return &Classifier{
		compile: c.compile,
		tracked: c.tracked,
		user:    toSet(user),
		resync:  c.resync,
	}
}

// UserExtensions returns the user extensions in sorted order.
func (c *Classifier) UserExtensions() []string {
	return sortedKeys(c.user)
}

// Classify returns the kind of path.
// Compile wins over a user extension of the same name.
func (c *Classifier) Classify(path string) Kind {
	ext := Extension(path)
	switch {
	case ext == "":
		return Ignored
	case c.compile[ext]:
		return Compile
	case c.tracked[ext], c.user[ext]:
		return NonCompileTracked
	default:
		return Ignored
	}
}

// TriggersResync reports whether a change to path can alter a generated
// document.
func (c *Classifier) TriggersResync(path string) bool {
	ext := Extension(path)
	if ext == "" {
		return false
	}
	return c.resync[ext] || c.Classify(path) != Ignored
}

// IsSupported reports whether path can be opened through the generated
// project. The empty path stands for "open the project" and is supported.
func (c *Classifier) IsSupported(path string) bool {
	if path == "" {
		return true
	}
	if Extension(path) == "dll" {
		return true
	}
	return c.Classify(path) != Ignored
}

// Extension returns the case-folded extension of path without the dot.
func Extension(path string) string {
	return fold(paths.Ext(path))
}

func fold(ext string) string {
	return cases.Fold().String(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

func toSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		if f := fold(e); f != "" {
			set[f] = true
		}
	}
	return set
}
