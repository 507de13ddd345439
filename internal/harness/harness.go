package harness

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/roach88/vsgen/internal/project"
	"github.com/roach88/vsgen/internal/provider"
	"github.com/roach88/vsgen/internal/syncer"
	"github.com/roach88/vsgen/internal/testutil"
)

// Harness holds the per-scenario fixtures.
type Harness struct {
	dir      string
	fs       *testutil.MemFS
	provider *provider.ManifestProvider
	sync     *syncer.Synchronizer
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory file system for isolation.
//
// Execution flow:
// 1. Seed the file system and build the provider from the manifest
// 2. Execute steps, checking sync_if_needed expectations
// 3. Evaluate assertions against the final files
func Run(scenario *Scenario) (*Result, error) {
	style, err := project.ParseStyle(scenario.Style)
	if err != nil {
		return nil, err
	}
	dir := scenario.ProjectDir
	if dir == "" {
		dir = DefaultProjectDir
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fs := testutil.NewMemFS()
	manifest := scenario.Manifest
	p := provider.NewManifestProvider(&manifest,
		provider.WithFiles(fs),
		provider.WithLogger(logger),
		provider.WithPlayerProjects(scenario.PlayerProjects),
	)

	h := &Harness{
		dir:      dir,
		fs:       fs,
		provider: p,
		sync: syncer.New(dir, p,
			syncer.WithFiles(fs),
			syncer.WithLogger(logger),
			syncer.WithStyle(style),
			syncer.WithLangVersion(scenario.LangVersion),
			syncer.WithGUIDGenerator(testutil.NewFixedGUIDGenerator("")),
		),
	}
	for rel, content := range scenario.Files {
		fs.Set(h.abs(rel), content)
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		result.Steps = append(result.Steps, h.execute(i, step, result))
	}

	h.collect(result)
	for i, a := range scenario.Assertions {
		if err := evaluate(result, a); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return result, nil
}

func (h *Harness) execute(index int, step Step, result *Result) StepResult {
	sr := StepResult{Index: index, Action: step.Action}
	switch step.Action {
	case StepSync:
		sr.record(h.sync.Sync())
		sr.Ran = true
	case StepSyncIfNeeded:
		sr.Ran = h.sync.SyncIfNeeded(step.Changed, step.Reimported)
		if step.Expect != nil && *step.Expect != sr.Ran {
			result.AddError(fmt.Sprintf("steps[%d]: sync_if_needed returned %v, expected %v", index, sr.Ran, *step.Expect))
		}
	case StepSetManifest:
		m := *step.Manifest
		h.provider.Replace(&m)
	case StepDeleteFile:
		h.fs.Remove(h.abs(step.Path))
	case StepWriteFile:
		h.fs.Set(h.abs(step.Path), step.Content)
	case StepFailWrites:
		h.fs.FailWrites(h.absAll(step.Paths)...)
	case StepHealWrites:
		h.fs.HealWrites(h.absAll(step.Paths)...)
	case StepResetCounts:
		h.fs.ResetCounts()
	}
	return sr
}

func (sr *StepResult) record(r *syncer.Report) {
	sr.Written = len(r.Written)
	sr.Unchanged = len(r.Unchanged)
	sr.Deleted = len(r.Deleted)
	sr.Failed = len(r.Failures)
}

// collect copies the final files into result, keyed relative to the project.
func (h *Harness) collect(result *Result) {
	for _, p := range h.fs.Paths() {
		content, _ := h.fs.Content(p)
		rel := h.rel(p)
		result.Files[rel] = content
		if n := h.fs.WriteCount(p); n > 0 {
			result.Writes[rel] = n
		}
	}
}

func (h *Harness) abs(rel string) string {
	return filepath.Join(h.dir, filepath.FromSlash(rel))
}

func (h *Harness) absAll(rels []string) []string {
	out := make([]string, len(rels))
	for i, r := range rels {
		out[i] = h.abs(r)
	}
	return out
}

func (h *Harness) rel(p string) string {
	if r, err := filepath.Rel(h.dir, p); err == nil && !strings.HasPrefix(r, "..") {
		return filepath.ToSlash(r)
	}
	return filepath.ToSlash(p)
}
