// Package provider supplies the assembly model to the sync engine.
//
// The host editor exports its compilation model as a manifest (YAML or CUE).
// ManifestProvider answers every question the engine asks about that model:
// which assemblies exist, which assembly owns a path, whether a path lies in
// a read-only package and what a response file contributes.
//
// Unknown or unresolvable inputs never fail a pass. An unknown path belongs
// to no assembly and is not internalized; a missing response file contributes
// nothing.
package provider
