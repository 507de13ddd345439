package provider

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/roach88/vsgen/internal/fileio"
	"github.com/roach88/vsgen/internal/model"
	"github.com/roach88/vsgen/internal/paths"
	"github.com/roach88/vsgen/internal/responsefile"
)

// ManifestProvider serves a Manifest.
//
// Assemblies are built once per manifest and shared between calls; callers
// must treat them as read-only.
type ManifestProvider struct {
	manifest      *Manifest
	path          string
	files         fileio.FileIO
	logger        *slog.Logger
	playerEnabled bool

	editor   []*model.Assembly
	player   []*model.Assembly
	bySource map[string]string // slash path -> project name
	byDir    map[string]string // slash dir -> project name
	packages []Package         // sorted longest path first
}

// Option configures a ManifestProvider.
type Option func(*ManifestProvider)

// WithPlayerProjects enables player variants of the player assemblies.
func WithPlayerProjects(enabled bool) Option {
	return func(p *ManifestProvider) {
		p.playerEnabled = enabled
	}
}

// WithFiles sets the file capability used to read response files.
func WithFiles(f fileio.FileIO) Option {
	return func(p *ManifestProvider) {
		p.files = f
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *ManifestProvider) {
		p.logger = l
	}
}

// NewManifestProvider indexes m.
func NewManifestProvider(m *Manifest, opts ...Option) *ManifestProvider {
	p := &ManifestProvider{
		files:  fileio.NewOS(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.index(m)
	return p
}

// OpenManifest loads the manifest at path and indexes it.
func OpenManifest(path string, opts ...Option) (*ManifestProvider, error) {
	m, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	p := NewManifestProvider(m, opts...)
	p.path = path
	return p, nil
}

// Reload re-reads the manifest file. On error the previous manifest stays in
// effect. Providers built from an in-memory manifest reload nothing.
func (p *ManifestProvider) Reload() error {
	if p.path == "" {
		return nil
	}
	m, err := LoadManifest(p.path)
	if err != nil {
		return err
	}
	p.index(m)
	return nil
}

// Replace swaps in a new manifest.
func (p *ManifestProvider) Replace(m *Manifest) {
	p.index(m)
}

func (p *ManifestProvider) index(m *Manifest) {
	if m == nil {
		m = &Manifest{}
	}
	p.manifest = m
	p.editor = p.build(m.Assemblies, "")
	p.player = p.build(m.PlayerAssemblies, model.PlayerOutputPath)

	p.bySource = make(map[string]string)
	p.byDir = make(map[string]string)
	for _, a := range sortedByName(p.editor) {
		name := a.ProjectName()
		for _, src := range a.SourceFiles {
			s := paths.ToSlash(src)
			if _, ok := p.bySource[s]; !ok {
				p.bySource[s] = name
			}
			if dir := slashDir(s); dir != "" {
				if _, ok := p.byDir[dir]; !ok {
					p.byDir[dir] = name
				}
			}
		}
	}

	p.packages = append([]Package(nil), m.Packages...)
	for i := range p.packages {
		p.packages[i].Path = strings.TrimSuffix(paths.ToSlash(p.packages[i].Path), "/")
	}
	sort.SliceStable(p.packages, func(i, j int) bool {
		return len(p.packages[i].Path) > len(p.packages[j].Path)
	})
}

// build converts specs into linked assemblies. A non-empty outputPath
// overrides every spec's output path.
func (p *ManifestProvider) build(specs []AssemblySpec, outputPath string) []*model.Assembly {
	out := make([]*model.Assembly, len(specs))
	byName := make(map[string]*model.Assembly, len(specs))
	for i, s := range specs {
		a := &model.Assembly{
			Name:                       s.Name,
			OutputPath:                 s.OutputPath,
			SourceFiles:                s.SourceFiles,
			Defines:                    s.Defines,
			CompiledAssemblyReferences: s.CompiledReferences,
			Options:                    s.Options,
		}
		if outputPath != "" {
			a.OutputPath = outputPath
		}
		for _, f := range s.Flags {
			flag, _ := parseFlag(f)
			a.Flags |= flag
		}
		out[i] = a
		byName[s.Name] = a
	}
	for i, s := range specs {
		for _, ref := range s.References {
			target, ok := byName[ref]
			if !ok {
				p.logger.Debug("dropping unknown assembly reference", "assembly", s.Name, "reference", ref)
				continue
			}
			out[i].AssemblyReferences = append(out[i].AssemblyReferences, target)
		}
	}
	return out
}

// Manifest returns the manifest currently served.
func (p *ManifestProvider) Manifest() *Manifest {
	return p.manifest
}

// Assemblies implements Provider.
func (p *ManifestProvider) Assemblies(keep func(path string) bool) []*model.Assembly {
	out := filterAssemblies(p.editor, keep)
	if p.playerEnabled {
		out = append(out, filterAssemblies(p.player, keep)...)
	}
	return out
}

func filterAssemblies(all []*model.Assembly, keep func(string) bool) []*model.Assembly {
	var out []*model.Assembly
	for _, a := range all {
		for _, src := range a.SourceFiles {
			if keep == nil || keep(src) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// AssemblyNameFromScriptPath implements Provider.
//
// An exact source match wins. Otherwise the deepest directory holding a
// source of some assembly claims the path.
func (p *ManifestProvider) AssemblyNameFromScriptPath(path string) string {
	s := paths.ToSlash(path)
	if name, ok := p.bySource[s]; ok {
		return name
	}
	for dir := slashDir(s); dir != ""; dir = slashDir(dir) {
		if name, ok := p.byDir[dir]; ok {
			return name
		}
	}
	return ""
}

// IsInternalizedPackagePath implements Provider.
func (p *ManifestProvider) IsInternalizedPackagePath(path string) bool {
	s := strings.TrimSpace(paths.ToSlash(path))
	if s == "" {
		return false
	}
	for _, pkg := range p.packages {
		if s == pkg.Path || strings.HasPrefix(s, pkg.Path+"/") {
			return pkg.Internalized()
		}
	}
	return false
}

// ParseResponseFile implements Provider.
func (p *ManifestProvider) ParseResponseFile(path, projectDir string) model.ResponseFileData {
	data := responsefile.ParseFile(p.files, path, projectDir)
	for _, e := range data.Errors {
		p.logger.Debug("response file contributes nothing", "path", path, "error", e)
	}
	return data
}

// AllAssetPaths implements Provider.
func (p *ManifestProvider) AllAssetPaths() []string {
	return p.manifest.Assets
}

// SupportedExtensions implements Provider.
func (p *ManifestProvider) SupportedExtensions() []string {
	return p.manifest.UserExtensions
}

// RootNamespace implements Provider.
func (p *ManifestProvider) RootNamespace() string {
	return p.manifest.RootNamespace
}

// AssemblyName implements Provider.
func (p *ManifestProvider) AssemblyName(outputPath, name string) string {
	return model.ProjectName(outputPath, name)
}

// Host implements Provider.
func (p *ManifestProvider) Host() model.Host {
	return p.manifest.Host
}

func slashDir(s string) string {
	i := strings.LastIndexByte(s, '/')
	if i <= 0 {
		return ""
	}
	return s[:i]
}

func sortedByName(as []*model.Assembly) []*model.Assembly {
	out := append([]*model.Assembly(nil), as...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

var _ Provider = (*ManifestProvider)(nil)
