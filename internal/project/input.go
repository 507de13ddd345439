package project

import (
	"strings"

	"github.com/roach88/vsgen/internal/model"
)

// Extension is the project file extension.
const Extension = ".csproj"

// Input is everything a project document depends on.
type Input struct {
	Assembly *model.Assembly

	// LangVersion is emitted verbatim. Empty renders "latest".
	LangVersion string

	// RootNamespace applies when the assembly does not set its own.
	RootNamespace string

	// ResponseFiles is the merged contribution of the assembly's .rsp files.
	ResponseFiles model.ResponseFileData

	// Explicit analyzer configuration. Entries here precede response-file
	// entries when deduplicating.
	Analyzers          []string
	AdditionalFiles    []string
	RulesetPath        string
	AnalyzerConfigPath string

	// AnalyzersDisabled drops analyzer items, ruleset and additional files.
	AnalyzersDisabled bool

	// ExtraItems are asset paths attributed to the assembly from outside its
	// source list. They are classified like sources.
	ExtraItems []string

	// ResolveName maps an output path and assembly name to the final project
	// name, e.g. appending ".Player". Nil means identity.
	ResolveName func(outputPath, name string) string

	// IsInternalized reports whether a referenced assembly is consumed as a
	// binary: it comes from a read-only package or has no project of its
	// own. Nil means never.
	IsInternalized func(*model.Assembly) bool

	// ProjectGUID returns the bare uppercase GUID of a resolved project name.
	ProjectGUID func(projectName string) string

	Host model.Host
}

func (in *Input) resolve(outputPath, name string) string {
	if in.ResolveName == nil {
		return name
	}
	return in.ResolveName(outputPath, name)
}

func (in *Input) internalized(a *model.Assembly) bool {
	return in.IsInternalized != nil && in.IsInternalized(a)
}

func (in *Input) guid(projectName string) string {
	if in.ProjectGUID == nil {
		return ""
	}
	return in.ProjectGUID(projectName)
}

// Name returns the resolved project name of the input assembly.
func (in *Input) Name() string {
	return in.resolve(in.Assembly.OutputPath, in.Assembly.Name)
}

// FileName returns the project file name of the input assembly.
func (in *Input) FileName() string {
	return in.Name() + Extension
}

// projectType mirrors the host's project type code derived from the
// assembly name.
func projectType(a *model.Assembly) string {
	plugins := strings.Contains(a.Name, "firstpass")
	editor := strings.Contains(a.Name, "Editor") || a.Flags.Has(model.FlagEditorOnly)
	switch {
	case plugins && editor:
		return "EditorPlugins:7"
	case plugins:
		return "GamePlugins:3"
	case editor:
		return "Editor:5"
	default:
		return "Game:1"
	}
}
