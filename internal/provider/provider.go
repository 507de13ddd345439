package provider

import "github.com/roach88/vsgen/internal/model"

// Provider is the assembly model capability consumed by the engine.
type Provider interface {
	// Assemblies returns every assembly with at least one source file for
	// which keep returns true.
	Assemblies(keep func(path string) bool) []*model.Assembly

	// AssemblyNameFromScriptPath returns the project name owning path, or ""
	// when no assembly claims it.
	AssemblyNameFromScriptPath(path string) string

	// IsInternalizedPackagePath reports whether path belongs to a package
	// that is consumed as a prebuilt binary.
	IsInternalizedPackagePath(path string) bool

	// ParseResponseFile returns the contribution of a response file.
	ParseResponseFile(path, projectDir string) model.ResponseFileData

	// AllAssetPaths lists every asset known to the host.
	AllAssetPaths() []string

	// SupportedExtensions lists the user-configured extensions.
	SupportedExtensions() []string

	// RootNamespace is the project-wide default namespace.
	RootNamespace() string

	// AssemblyName maps an output path and name to the project name.
	AssemblyName(outputPath, name string) string

	// Host describes the exporting editor.
	Host() model.Host
}
