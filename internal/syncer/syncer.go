package syncer

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/roach88/vsgen/internal/classify"
	"github.com/roach88/vsgen/internal/discovery"
	"github.com/roach88/vsgen/internal/fileio"
	"github.com/roach88/vsgen/internal/journal"
	"github.com/roach88/vsgen/internal/model"
	"github.com/roach88/vsgen/internal/paths"
	"github.com/roach88/vsgen/internal/project"
	"github.com/roach88/vsgen/internal/provider"
	"github.com/roach88/vsgen/internal/responsefile"
	"github.com/roach88/vsgen/internal/solution"
)

// Synchronizer keeps the generated documents of one project directory in
// step with the assembly model.
//
// Thread-safety: NOT safe for concurrent use. The host serializes calls.
type Synchronizer struct {
	dir      string
	provider provider.Provider
	files    fileio.FileIO
	logger   *slog.Logger
	recorder Recorder

	installations  *discovery.Cache
	style          project.Style
	preferred      project.Style
	langVersion    string
	rootNamespace  string
	analyzers      AnalyzerConfig
	userExtensions []string
	separator      byte
	cacheSize      int
	guids          solution.GUIDGenerator

	builtins   *classify.Classifier
	normalizer *paths.Normalizer
	state      *SyncState
}

// New creates a Synchronizer for projectDir fed by p.
func New(projectDir string, p provider.Provider, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		dir:       filepath.Clean(projectDir),
		provider:  p,
		files:     fileio.NewOS(),
		logger:    slog.Default(),
		separator: paths.WindowsSeparator,
		guids:     solution.MD5Generator{},
		builtins:  classify.New(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.normalizer = paths.NewNormalizer(s.dir, s.separator)
	s.state = newSyncState(s.cacheSize)
	return s
}

// ProjectDirectory returns the directory documents are written to.
func (s *Synchronizer) ProjectDirectory() string {
	return s.dir
}

// SolutionFile returns the solution path, named after the project directory.
func (s *Synchronizer) SolutionFile() string {
	return filepath.Join(s.dir, s.projectName()+solution.Extension)
}

// HasSolutionBeenGenerated reports whether the solution exists on disk.
func (s *Synchronizer) HasSolutionBeenGenerated() bool {
	return s.files.Exists(s.SolutionFile())
}

// IsSupportedFile reports whether path can be opened through the generated
// projects.
func (s *Synchronizer) IsSupportedFile(path string) bool {
	return s.classifier().IsSupported(path)
}

// State exposes the current SyncState for inspection.
func (s *Synchronizer) State() *SyncState {
	return s.state
}

// Sync runs a full pass. It never returns an error; failures are in the
// Report and the log.
func (s *Synchronizer) Sync() *Report {
	report := s.pass(nil)
	s.record(journal.KindSync, report)
	return report
}

// SyncIfNeeded runs a pass when any of changed or reimported can alter a
// generated document, and reports whether a pass ran.
// It returns false before the first Sync.
func (s *Synchronizer) SyncIfNeeded(changed, reimported []string) bool {
	if !s.state.Synced() {
		s.logger.Debug("sync-if-needed before first sync")
		return false
	}

	c := s.classifier()
	var relevant []string
	for _, p := range append(append([]string{}, changed...), reimported...) {
		if c.TriggersResync(p) {
			relevant = append(relevant, p)
		}
	}
	if len(relevant) == 0 {
		return false
	}

	affected, full := s.affected(relevant)
	if full {
		affected = nil
	}
	report := s.pass(affected)
	s.record(journal.KindSyncIfNeeded, report)
	return true
}

// affected maps relevant paths to the project names they belong to. full is
// true when some path forces a full pass.
func (s *Synchronizer) affected(relevant []string) (map[string]bool, bool) {
	names := make(map[string]bool)
	for _, p := range relevant {
		switch classify.Extension(p) {
		case "dll", "asmdef":
			return nil, true
		}
		name := s.provider.AssemblyNameFromScriptPath(p)
		if name == "" {
			s.logger.Debug("unattributed change forces full pass", "path", p)
			return nil, true
		}
		names[name] = true
	}
	return names, false
}

// pass renders and writes. A nil only covers every assembly; otherwise only
// assemblies named in only are rendered, plus any whose document is unknown
// to the state or missing on disk.
func (s *Synchronizer) pass(only map[string]bool) *Report {
	c := s.classifier()
	snap := model.NewSnapshot(s.provider.Assemblies(func(path string) bool {
		return c.Classify(path) == classify.Compile
	}))
	report := &Report{Full: only == nil, Assemblies: snap.Len()}

	builder := project.NewBuilder(c, s.normalizer).WithPreferredStyle(s.preferred)
	extras := s.extraItems(c, snap)
	langVersion, analyzersOff := s.toolchain()
	projectName := s.projectName()

	targets := snap
	if only != nil {
		targets = snap.Filter(func(a *model.Assembly) bool {
			return only[a.ProjectName()] || only[a.Name] || !s.current(s.projectFile(a.ProjectName()))
		})
	}
	for _, a := range targets.Assemblies() {
		name := a.ProjectName()
		in := s.input(a, snap, extras[name], langVersion, analyzersOff, projectName)
		s.writeIfChanged(report, s.projectFile(name), builder.Render(s.style, in))
	}

	current := snap.Names()
	retained := s.deleteStale(report, current)

	if snap.Len() == 0 {
		s.deleteSolution(report)
	} else {
		entries := make([]solution.Entry, 0, snap.Len())
		for _, name := range current {
			entries = append(entries, solution.Entry{
				Name:     name,
				FileName: name + project.Extension,
				GUID:     s.guids.ProjectGUID(projectName, name),
			})
		}
		s.writeIfChanged(report, s.SolutionFile(), solution.Render(s.guids.SolutionGUID(projectName), entries))
	}

	s.state.setNames(append(append([]string{}, current...), retained...))
	s.state.synced = true

	s.logger.Info("sync pass complete",
		"full", report.Full,
		"assemblies", report.Assemblies,
		"written", len(report.Written),
		"unchanged", len(report.Unchanged),
		"deleted", len(report.Deleted),
		"failed", len(report.Failures))
	return report
}

func (s *Synchronizer) input(a *model.Assembly, snap *model.Snapshot, extras []string, langVersion string, analyzersOff bool, projectName string) project.Input {
	var rsp model.ResponseFileData
	for _, f := range a.Options.ResponseFiles {
		rsp.Merge(s.provider.ParseResponseFile(f, s.dir))
	}
	rsp = responsefile.Harvest(rsp, s.dir)

	ruleset := a.Options.RulesetPath
	if ruleset == "" {
		ruleset = s.analyzers.RulesetPath
	}
	config := a.Options.AnalyzerConfigPath
	if config == "" {
		config = s.analyzers.AnalyzerConfigPath
	}

	return project.Input{
		Assembly:           a,
		LangVersion:        langVersion,
		RootNamespace:      s.rootNamespaceFor(),
		ResponseFiles:      rsp,
		Analyzers:          concat(s.analyzers.Analyzers, a.Options.AnalyzerPaths),
		AdditionalFiles:    concat(s.analyzers.AdditionalFiles, a.Options.AdditionalFilePaths),
		RulesetPath:        ruleset,
		AnalyzerConfigPath: config,
		AnalyzersDisabled:  analyzersOff,
		ExtraItems:         extras,
		ResolveName:        s.provider.AssemblyName,
		IsInternalized: func(ref *model.Assembly) bool {
			// A reference that gets no project of its own is consumed as a binary.
			if _, ok := snap.Lookup(ref.ProjectName()); !ok {
				return true
			}
			return s.internalized(ref)
		},
		ProjectGUID: func(name string) string {
			return s.guids.ProjectGUID(projectName, name)
		},
		Host: s.provider.Host(),
	}
}

// internalized reports whether every source of a lies in an internalized
// package. An assembly without sources is never internalized.
func (s *Synchronizer) internalized(a *model.Assembly) bool {
	if len(a.SourceFiles) == 0 {
		return false
	}
	for _, src := range a.SourceFiles {
		if !s.provider.IsInternalizedPackagePath(src) {
			return false
		}
	}
	return true
}

// extraItems attributes tracked assets that are not listed as sources to the
// project owning their directory.
func (s *Synchronizer) extraItems(c *classify.Classifier, snap *model.Snapshot) map[string][]string {
	listed := make(map[string]bool)
	for _, a := range snap.Assemblies() {
		for _, src := range a.SourceFiles {
			listed[paths.FoldKey(src)] = true
		}
	}

	extras := make(map[string][]string)
	for _, asset := range s.provider.AllAssetPaths() {
		if c.Classify(asset) != classify.NonCompileTracked || listed[paths.FoldKey(asset)] {
			continue
		}
		name := s.provider.AssemblyNameFromScriptPath(asset)
		if _, ok := snap.Lookup(name); !ok {
			continue
		}
		extras[name] = append(extras[name], asset)
	}
	return extras
}

// toolchain returns the language version and whether analyzers are off.
// An unready cache yields the defaults without waiting.
func (s *Synchronizer) toolchain() (string, bool) {
	langVersion := s.langVersion
	analyzersOff := false
	if s.installations != nil && s.installations.Ready() {
		if inst, ok := s.installations.Current(); ok {
			if langVersion == "" {
				langVersion = inst.LatestLanguageVersion
			}
			analyzersOff = !inst.SupportsAnalyzers
		}
	}
	return langVersion, analyzersOff
}

func (s *Synchronizer) writeIfChanged(report *Report, path, content string) {
	hash := model.ContentHash(content)
	exists := s.files.Exists(path)

	known, ok := s.state.Hash(path)
	if ok && known == hash && exists {
		report.Unchanged = append(report.Unchanged, path)
		return
	}

	if !ok && exists {
		onDisk, err := s.files.ReadAllText(path)
		if err != nil {
			s.logger.Debug("cannot read existing document, rewriting", "path", path, "error", err)
		} else if model.ContentHash(onDisk) == hash {
			s.state.remember(path, hash)
			report.Unchanged = append(report.Unchanged, path)
			return
		}
	}

	if err := s.files.WriteAllText(path, content); err != nil {
		s.fail(report, &WriteError{Code: ErrCodeWriteFailed, Path: path, Err: err})
		return
	}
	s.state.remember(path, hash)
	report.Written = append(report.Written, path)
}

// deleteStale removes project files this engine produced for assemblies no
// longer in the snapshot. Names whose delete failed are returned so the next
// pass tries again.
func (s *Synchronizer) deleteStale(report *Report, current []string) []string {
	keep := make(map[string]bool, len(current))
	for _, n := range current {
		keep[n] = true
	}
	var retained []string
	for _, name := range s.state.Names() {
		if keep[name] {
			continue
		}
		if !s.delete(report, s.projectFile(name)) {
			retained = append(retained, name)
		}
	}
	return retained
}

func (s *Synchronizer) deleteSolution(report *Report) {
	s.delete(report, s.SolutionFile())
}

// delete reports whether path is gone afterwards.
func (s *Synchronizer) delete(report *Report, path string) bool {
	if !s.files.Exists(path) {
		s.state.forget(path)
		return true
	}
	if err := s.files.Delete(path); err != nil {
		s.fail(report, &WriteError{Code: ErrCodeDeleteFailed, Path: path, Err: err})
		return false
	}
	s.state.forget(path)
	report.Deleted = append(report.Deleted, path)
	return true
}

func (s *Synchronizer) fail(report *Report, err *WriteError) {
	s.logger.Warn("document not synchronized", "path", err.Path, "code", err.Code, "error", err.Err)
	report.Failures = append(report.Failures, err)
}

func (s *Synchronizer) record(kind string, report *Report) {
	if s.recorder == nil {
		return
	}
	pass := journal.Pass{
		Kind:       kind,
		Full:       report.Full,
		Assemblies: report.Assemblies,
		Written:    len(report.Written),
		Unchanged:  len(report.Unchanged),
		Deleted:    len(report.Deleted),
		Failed:     len(report.Failures),
	}
	add := func(outcome string, files []string) {
		for _, f := range files {
			hash, _ := s.state.Hash(f)
			pass.Files = append(pass.Files, journal.FileOutcome{Path: f, Outcome: outcome, ContentHash: hash})
		}
	}
	add(journal.OutcomeWritten, report.Written)
	add(journal.OutcomeUnchanged, report.Unchanged)
	add(journal.OutcomeDeleted, report.Deleted)
	for _, f := range report.Failures {
		pass.Files = append(pass.Files, journal.FileOutcome{Path: f.Path, Outcome: journal.OutcomeFailed, Error: f.Err.Error()})
	}
	sort.SliceStable(pass.Files, func(i, j int) bool { return pass.Files[i].Path < pass.Files[j].Path })

	if _, err := s.recorder.Record(context.Background(), pass); err != nil {
		s.logger.Warn("failed to record sync pass", "error", err)
	}
}

func (s *Synchronizer) classifier() *classify.Classifier {
	return s.builtins.WithUserExtensions(concat(s.provider.SupportedExtensions(), s.userExtensions))
}

func (s *Synchronizer) projectFile(name string) string {
	return filepath.Join(s.dir, name+project.Extension)
}

// current reports whether path was written by an earlier pass and is still
// on disk.
func (s *Synchronizer) current(path string) bool {
	_, ok := s.state.Hash(path)
	return ok && s.files.Exists(path)
}

func (s *Synchronizer) rootNamespaceFor() string {
	if s.rootNamespace != "" {
		return s.rootNamespace
	}
	return s.provider.RootNamespace()
}

func (s *Synchronizer) projectName() string {
	return filepath.Base(s.dir)
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
