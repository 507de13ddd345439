package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/vsgen/internal/config"
	"github.com/roach88/vsgen/internal/discovery"
	"github.com/roach88/vsgen/internal/journal"
	"github.com/roach88/vsgen/internal/provider"
	"github.com/roach88/vsgen/internal/syncer"
)

// discoveryTimeout bounds how long a command waits for installation
// discovery before rendering without it.
const discoveryTimeout = 2 * time.Second

// environment is everything a command needs to drive a Synchronizer.
type environment struct {
	cfg      *config.Config
	logger   *slog.Logger
	provider *provider.ManifestProvider
	journal  *journal.Journal
	cache    *discovery.Cache
	syncer   *syncer.Synchronizer
}

// overrides are per-command flag values applied on top of the config.
type overrides struct {
	Style    string
	Manifest string
}

func loadConfig(opts *RootOptions, o overrides) (*config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if o.Style != "" {
		cfg.Style = o.Style
	}
	if o.Manifest != "" {
		cfg.Manifest = o.Manifest
		if !filepath.IsAbs(cfg.Manifest) {
			abs, err := filepath.Abs(cfg.Manifest)
			if err != nil {
				return nil, WrapExitError(ExitCommandError, "failed to resolve manifest path", err)
			}
			cfg.Manifest = abs
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid config", err)
	}
	return cfg, nil
}

// openEnvironment loads the config and manifest, opens the journal when one
// is configured and waits briefly for installation discovery.
func openEnvironment(ctx context.Context, opts *RootOptions, o overrides, logger *slog.Logger) (*environment, error) {
	cfg, err := loadConfig(opts, o)
	if err != nil {
		return nil, err
	}

	p, err := provider.OpenManifest(cfg.Manifest,
		provider.WithLogger(logger),
		provider.WithPlayerProjects(cfg.GeneratePlayerProjects),
	)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load manifest", err)
	}

	env := &environment{cfg: cfg, logger: logger, provider: p}

	sep, _ := cfg.Separator()
	syncOpts := []syncer.Option{
		syncer.WithLogger(logger),
		syncer.WithStyle(cfg.ProjectStyle()),
		syncer.WithPreferredStyle(cfg.Preferred()),
		syncer.WithLangVersion(cfg.LangVersion),
		syncer.WithUserExtensions(cfg.UserExtensions),
		syncer.WithRootNamespace(cfg.RootNamespace),
		syncer.WithSeparator(sep),
		syncer.WithCacheSize(cfg.StateCacheSize),
		syncer.WithAnalyzers(syncer.AnalyzerConfig{
			Analyzers:          cfg.Analyzers.Paths,
			AdditionalFiles:    cfg.Analyzers.AdditionalFiles,
			RulesetPath:        cfg.Analyzers.Ruleset,
			AnalyzerConfigPath: cfg.Analyzers.Config,
		}),
	}

	if cfg.Journal != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Journal), 0o755); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to create journal directory", err)
		}
		j, err := journal.Open(cfg.Journal)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		env.journal = j
		syncOpts = append(syncOpts, syncer.WithJournal(j))
	}

	if len(cfg.Installations) > 0 {
		env.cache = discovery.NewCache(cfg.Discoverer(),
			discovery.WithPreferredPath(cfg.EditorPath),
			discovery.WithCacheLogger(logger),
		)
		env.cache.Start(ctx)
		waitCtx, cancel := context.WithTimeout(ctx, discoveryTimeout)
		switch err := env.cache.Wait(waitCtx); {
		case err != nil:
			logger.Warn("installation discovery still running, rendering without it", "error", err)
		case env.cache.Err() != nil:
			logger.Debug("rendering without installation data", "error", env.cache.Err())
		default:
			logger.Debug("installations discovered", "count", len(env.cache.Installations()))
		}
		cancel()
		syncOpts = append(syncOpts, syncer.WithInstallations(env.cache))
	}

	env.syncer = syncer.New(cfg.ProjectDir, p, syncOpts...)
	return env, nil
}

// reload re-reads the manifest so the next pass sees the host's latest
// export.
func (e *environment) reload() error {
	if err := e.provider.Reload(); err != nil {
		return WrapExitError(ExitCommandError, "failed to reload manifest", err)
	}
	return nil
}

// Close releases the journal.
func (e *environment) Close() error {
	if e.journal == nil {
		return nil
	}
	return e.journal.Close()
}

// rel returns path relative to the project directory for display.
func (e *environment) rel(path string) string {
	return relTo(e.cfg.ProjectDir, path)
}

func relTo(dir, path string) string {
	r, err := filepath.Rel(dir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(r)
}

// manifestMissing reports whether err is a manifest that could not be read.
func manifestMissing(err error) bool {
	var me *provider.ManifestError
	return errors.As(err, &me) && me.Code == provider.ErrCodeManifestNotFound
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
