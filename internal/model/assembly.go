package model

import "strings"

// PlayerOutputPath is the output directory of player variants.
const PlayerOutputPath = `Temp\bin\Debug\Player\`

// ProjectName returns the project name for an assembly built to outputPath.
// Assemblies whose output directory is named Player get a ".Player" suffix so
// they never collide with their editor counterpart.
func ProjectName(outputPath, name string) string {
	dir := strings.TrimRight(outputPath, `\/`)
	if i := strings.LastIndexAny(dir, `\/`); i >= 0 {
		dir = dir[i+1:]
	}
	if dir == "Player" {
		return name + ".Player"
	}
	return name
}

// Flags carries assembly metadata that affects rendering but not identity.
type Flags uint8

// FlagNone marks a plain runtime assembly.
const FlagNone Flags = 0

const (
	// FlagEditorOnly marks an assembly that is only compiled for the editor.
	FlagEditorOnly Flags = 1 << iota

	// FlagTestOnly marks an assembly that only holds tests.
	FlagTestOnly
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// CompilerOptions holds per-assembly compiler settings exported by the host.
type CompilerOptions struct {
	AllowUnsafeCode     bool     `yaml:"allow_unsafe_code" json:"allow_unsafe_code"`
	ResponseFiles       []string `yaml:"response_files" json:"response_files"`
	AnalyzerPaths       []string `yaml:"analyzers" json:"analyzers"`
	RulesetPath         string   `yaml:"ruleset" json:"ruleset"`
	AnalyzerConfigPath  string   `yaml:"analyzer_config" json:"analyzer_config"`
	AdditionalFilePaths []string `yaml:"additional_files" json:"additional_files"`
	RootNamespace       string   `yaml:"root_namespace" json:"root_namespace"`
}

// Assembly is one compilation unit.
//
// AssemblyReferences point at other Assembly values of the same snapshot.
// CompiledAssemblyReferences are paths to prebuilt binaries.
type Assembly struct {
	Name                       string
	OutputPath                 string
	SourceFiles                []string
	Defines                    []string
	AssemblyReferences         []*Assembly
	CompiledAssemblyReferences []string
	Flags                      Flags
	Options                    CompilerOptions
}

// ProjectName returns the unique project name of a.
func (a *Assembly) ProjectName() string {
	return ProjectName(a.OutputPath, a.Name)
}

// WithName returns a shallow copy of a carrying a different name and output
// path. Used to derive player variants of editor assemblies.
func (a *Assembly) WithName(name, outputPath string) *Assembly {
	cp := *a
	cp.Name = name
	cp.OutputPath = outputPath
	return &cp
}

// ResponseFileData is the parsed contribution of one compiler response file.
// A missing or malformed response file yields a zero value plus Errors.
type ResponseFileData struct {
	Defines            []string
	FullPathReferences []string
	Unsafe             bool
	Analyzers          []string
	AdditionalFiles    []string
	OtherArguments     []string
	Errors             []string
}

// Merge appends other into d, preserving order.
func (d *ResponseFileData) Merge(other ResponseFileData) {
	d.Defines = append(d.Defines, other.Defines...)
	d.FullPathReferences = append(d.FullPathReferences, other.FullPathReferences...)
	d.Unsafe = d.Unsafe || other.Unsafe
	d.Analyzers = append(d.Analyzers, other.Analyzers...)
	d.AdditionalFiles = append(d.AdditionalFiles, other.AdditionalFiles...)
	d.OtherArguments = append(d.OtherArguments, other.OtherArguments...)
	d.Errors = append(d.Errors, other.Errors...)
}

// Host describes the editor that exported the assembly model. It is stamped
// into every project document.
type Host struct {
	GeneratorVersion string `yaml:"generator_version" json:"generator_version"`
	BuildTarget      string `yaml:"build_target" json:"build_target"`
	EditorVersion    string `yaml:"editor_version" json:"editor_version"`
}
