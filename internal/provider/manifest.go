package provider

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/vsgen/internal/model"
)

// Manifest is the assembly model exported by the host editor.
type Manifest struct {
	RootNamespace    string         `yaml:"root_namespace" json:"root_namespace"`
	UserExtensions   []string       `yaml:"user_extensions" json:"user_extensions"`
	Host             model.Host     `yaml:"host" json:"host"`
	Assemblies       []AssemblySpec `yaml:"assemblies" json:"assemblies"`
	PlayerAssemblies []AssemblySpec `yaml:"player_assemblies" json:"player_assemblies"`
	Packages         []Package      `yaml:"packages" json:"packages"`
	Assets           []string       `yaml:"assets" json:"assets"`
}

// AssemblySpec is the serialized form of one assembly. References name other
// assemblies of the same list.
type AssemblySpec struct {
	Name               string                `yaml:"name" json:"name"`
	OutputPath         string                `yaml:"output_path" json:"output_path"`
	SourceFiles        []string              `yaml:"source_files" json:"source_files"`
	Defines            []string              `yaml:"defines" json:"defines"`
	References         []string              `yaml:"references" json:"references"`
	CompiledReferences []string              `yaml:"compiled_references" json:"compiled_references"`
	Flags              []string              `yaml:"flags" json:"flags"`
	Options            model.CompilerOptions `yaml:"options" json:"options"`
}

// Package is a package registered with the host.
type Package struct {
	Name   string `yaml:"name" json:"name"`
	Path   string `yaml:"path" json:"path"`
	Source string `yaml:"source" json:"source"`
}

// Package sources that are edited in place.
const (
	SourceEmbedded = "embedded"
	SourceLocal    = "local"
)

// Internalized reports whether the package is consumed as a prebuilt binary.
func (p Package) Internalized() bool {
	switch strings.ToLower(p.Source) {
	case SourceEmbedded, SourceLocal:
		return false
	default:
		return true
	}
}

// LoadManifest reads a manifest file. Files ending in .cue are evaluated with
// CUE; everything else is decoded as YAML.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestError{Code: ErrCodeManifestNotFound, Path: path, Message: err.Error(), Err: err}
	}
	if strings.EqualFold(filepath.Ext(path), ".cue") {
		return ParseCUE(path, data)
	}
	return ParseYAML(path, data)
}

// ParseYAML decodes a YAML manifest. Unknown fields are rejected.
func ParseYAML(name string, data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if len(bytes.TrimSpace(data)) == 0 {
			return &Manifest{}, nil
		}
		return nil, &ManifestError{Code: ErrCodeManifestParse, Path: name, Message: err.Error(), Err: err}
	}
	if err := m.Validate(); err != nil {
		return nil, withPath(err, name)
	}
	return &m, nil
}

// ParseCUE evaluates a CUE manifest. The value must be concrete.
func ParseCUE(name string, data []byte) (*Manifest, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(name))
	if err := v.Err(); err != nil {
		return nil, cueError(name, err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(name, err)
	}

	var m Manifest
	if err := v.Decode(&m); err != nil {
		return nil, cueError(name, err)
	}
	if err := m.Validate(); err != nil {
		return nil, withPath(err, name)
	}
	return &m, nil
}

// cueError keeps the position of the first CUE error.
func cueError(name string, err error) error {
	me := &ManifestError{Code: ErrCodeManifestParse, Path: name, Message: err.Error(), Err: err}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return me
	}
	first := errs[0]
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		me.Pos = positions[0]
	}
	format, args := first.Msg()
	me.Message = fmt.Sprintf(format, args...)
	return me
}

func withPath(err error, name string) error {
	if me, ok := err.(*ManifestError); ok && me.Path == "" {
		me.Path = name
	}
	return err
}

// Validate checks structural rules that decoding cannot express.
func (m *Manifest) Validate() error {
	if err := validateSpecs(m.Assemblies, "assemblies"); err != nil {
		return err
	}
	if err := validateSpecs(m.PlayerAssemblies, "player_assemblies"); err != nil {
		return err
	}
	for i, p := range m.Packages {
		if strings.TrimSpace(p.Path) == "" {
			return &ManifestError{Code: ErrCodeManifestInvalid, Message: fmt.Sprintf("packages[%d]: path is required", i)}
		}
	}
	return nil
}

func validateSpecs(specs []AssemblySpec, field string) error {
	seen := make(map[string]bool, len(specs))
	for i, s := range specs {
		if strings.TrimSpace(s.Name) == "" {
			return &ManifestError{Code: ErrCodeManifestInvalid, Message: fmt.Sprintf("%s[%d]: name is required", field, i)}
		}
		if seen[s.Name] {
			return &ManifestError{Code: ErrCodeManifestInvalid, Message: fmt.Sprintf("%s[%d]: duplicate assembly %q", field, i, s.Name)}
		}
		seen[s.Name] = true
		for _, f := range s.Flags {
			if _, ok := parseFlag(f); !ok {
				return &ManifestError{Code: ErrCodeManifestInvalid, Message: fmt.Sprintf("%s[%d]: unknown flag %q", field, i, f)}
			}
		}
	}
	return nil
}

func parseFlag(s string) (model.Flags, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "editor_only", "editoronly":
		return model.FlagEditorOnly, true
	case "test_only", "testonly":
		return model.FlagTestOnly, true
	case "", "none":
		return model.FlagNone, true
	default:
		return model.FlagNone, false
	}
}
