// Package model provides the assembly snapshot types shared by every vsgen
// package.
//
// This package contains type definitions and pure helpers only. All other
// internal packages import model; model imports nothing internal. This keeps
// the compilation model the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - A Snapshot is rebuilt on every sync pass and never mutated afterwards
//   - Assembly identity is its project name: the Name, plus a ".Player"
//     suffix for player variants. Flags and Options never affect identity
//   - Snapshot iteration order is sorted by name so rendering is deterministic
package model
