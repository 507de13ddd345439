package syncer

import (
	"context"
	"log/slog"

	"github.com/roach88/vsgen/internal/discovery"
	"github.com/roach88/vsgen/internal/fileio"
	"github.com/roach88/vsgen/internal/journal"
	"github.com/roach88/vsgen/internal/project"
	"github.com/roach88/vsgen/internal/solution"
)

// Recorder receives a summary of every pass.
type Recorder interface {
	Record(ctx context.Context, p journal.Pass) (int64, error)
}

// AnalyzerConfig is the project-wide analyzer configuration. It precedes
// per-assembly and response-file entries.
type AnalyzerConfig struct {
	Analyzers          []string
	AdditionalFiles    []string
	RulesetPath        string
	AnalyzerConfigPath string
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Synchronizer) {
		s.logger = l
	}
}

// WithFiles sets the file capability. Defaults to fileio.NewOS().
func WithFiles(f fileio.FileIO) Option {
	return func(s *Synchronizer) {
		s.files = f
	}
}

// WithJournal records every pass to r.
func WithJournal(r Recorder) Option {
	return func(s *Synchronizer) {
		s.recorder = r
	}
}

// WithInstallations sets the discovery cache consulted for the language
// version and analyzer support. The cache is only queried, never awaited.
func WithInstallations(c *discovery.Cache) Option {
	return func(s *Synchronizer) {
		s.installations = c
	}
}

// WithStyle selects the project document style.
func WithStyle(style project.Style) Option {
	return func(s *Synchronizer) {
		s.style = style
	}
}

// WithPreferredStyle sets what project.StyleAutomatic resolves to.
func WithPreferredStyle(style project.Style) Option {
	return func(s *Synchronizer) {
		s.preferred = style
	}
}

// WithLangVersion pins the emitted language version.
func WithLangVersion(v string) Option {
	return func(s *Synchronizer) {
		s.langVersion = v
	}
}

// WithAnalyzers sets the project-wide analyzer configuration.
func WithAnalyzers(cfg AnalyzerConfig) Option {
	return func(s *Synchronizer) {
		s.analyzers = cfg
	}
}

// WithUserExtensions adds tracked extensions on top of those reported by
// the Provider.
func WithUserExtensions(exts []string) Option {
	return func(s *Synchronizer) {
		s.userExtensions = exts
	}
}

// WithSeparator sets the path separator of emitted paths.
func WithSeparator(sep byte) Option {
	return func(s *Synchronizer) {
		s.separator = sep
	}
}

// WithCacheSize bounds the number of content hashes kept in SyncState.
func WithCacheSize(n int) Option {
	return func(s *Synchronizer) {
		s.cacheSize = n
	}
}

// WithGUIDGenerator overrides the GUID derivation.
func WithGUIDGenerator(g solution.GUIDGenerator) Option {
	return func(s *Synchronizer) {
		s.guids = g
	}
}

// WithRootNamespace overrides the root namespace reported by the Provider.
func WithRootNamespace(ns string) Option {
	return func(s *Synchronizer) {
		s.rootNamespace = ns
	}
}
