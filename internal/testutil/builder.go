package testutil

import (
	"github.com/roach88/vsgen/internal/model"
	"github.com/roach88/vsgen/internal/provider"
)

// DefaultOutputPath is the output path given to assemblies added by name.
const DefaultOutputPath = `Temp\bin\Debug\`

// Builder assembles a provider.Manifest for tests.
//
// Methods naming an assembly that was not added yet add it first, so calls
// can come in any order.
type Builder struct {
	m provider.Manifest
}

// NewBuilder creates a builder for an empty manifest.
func NewBuilder() *Builder {
	return &Builder{}
}

// Assembly adds an assembly with sources under DefaultOutputPath, or appends
// sources to an existing one.
func (b *Builder) Assembly(name string, sources ...string) *Builder {
	spec := b.spec(name)
	spec.SourceFiles = append(spec.SourceFiles, sources...)
	return b
}

// Spec adds a fully specified assembly, replacing one of the same name.
func (b *Builder) Spec(spec provider.AssemblySpec) *Builder {
	for i := range b.m.Assemblies {
		if b.m.Assemblies[i].Name == spec.Name {
			b.m.Assemblies[i] = spec
			return b
		}
	}
	b.m.Assemblies = append(b.m.Assemblies, spec)
	return b
}

// Remove drops the named assembly.
func (b *Builder) Remove(name string) *Builder {
	out := b.m.Assemblies[:0]
	for _, s := range b.m.Assemblies {
		if s.Name != name {
			out = append(out, s)
		}
	}
	b.m.Assemblies = out
	return b
}

// References makes name reference refs.
func (b *Builder) References(name string, refs ...string) *Builder {
	spec := b.spec(name)
	spec.References = append(spec.References, refs...)
	return b
}

// Defines adds preprocessor symbols to name.
func (b *Builder) Defines(name string, defines ...string) *Builder {
	spec := b.spec(name)
	spec.Defines = append(spec.Defines, defines...)
	return b
}

// Options sets the compiler options of name.
func (b *Builder) Options(name string, opts model.CompilerOptions) *Builder {
	b.spec(name).Options = opts
	return b
}

// OutputPath sets the output path of name.
func (b *Builder) OutputPath(name, outputPath string) *Builder {
	b.spec(name).OutputPath = outputPath
	return b
}

// Player adds a player assembly.
func (b *Builder) Player(name string, sources ...string) *Builder {
	b.m.PlayerAssemblies = append(b.m.PlayerAssemblies, provider.AssemblySpec{
		Name:        name,
		SourceFiles: sources,
	})
	return b
}

// Package registers a package at path with source.
func (b *Builder) Package(name, path, source string) *Builder {
	b.m.Packages = append(b.m.Packages, provider.Package{Name: name, Path: path, Source: source})
	return b
}

// Assets adds asset paths.
func (b *Builder) Assets(paths ...string) *Builder {
	b.m.Assets = append(b.m.Assets, paths...)
	return b
}

// UserExtensions sets the user-configured extensions.
func (b *Builder) UserExtensions(exts ...string) *Builder {
	b.m.UserExtensions = exts
	return b
}

// RootNamespace sets the project-wide namespace.
func (b *Builder) RootNamespace(ns string) *Builder {
	b.m.RootNamespace = ns
	return b
}

// Host sets the exporting editor.
func (b *Builder) Host(h model.Host) *Builder {
	b.m.Host = h
	return b
}

// Manifest returns a copy of the manifest built so far.
func (b *Builder) Manifest() *provider.Manifest {
	m := b.m
	m.Assemblies = make([]provider.AssemblySpec, len(b.m.Assemblies))
	for i, s := range b.m.Assemblies {
		s.SourceFiles = append([]string(nil), s.SourceFiles...)
		s.Defines = append([]string(nil), s.Defines...)
		s.References = append([]string(nil), s.References...)
		m.Assemblies[i] = s
	}
	m.PlayerAssemblies = append([]provider.AssemblySpec(nil), b.m.PlayerAssemblies...)
	m.Packages = append([]provider.Package(nil), b.m.Packages...)
	m.Assets = append([]string(nil), b.m.Assets...)
	m.UserExtensions = append([]string(nil), b.m.UserExtensions...)
	return &m
}

// Provider serves the manifest built so far.
func (b *Builder) Provider(opts ...provider.Option) *provider.ManifestProvider {
	return provider.NewManifestProvider(b.Manifest(), opts...)
}

func (b *Builder) spec(name string) *provider.AssemblySpec {
	for i := range b.m.Assemblies {
		if b.m.Assemblies[i].Name == name {
			return &b.m.Assemblies[i]
		}
	}
	b.m.Assemblies = append(b.m.Assemblies, provider.AssemblySpec{Name: name, OutputPath: DefaultOutputPath})
	return &b.m.Assemblies[len(b.m.Assemblies)-1]
}
