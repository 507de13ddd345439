package testutil

import (
	"strings"

	"github.com/roach88/vsgen/internal/solution"
)

// FixedGUIDGenerator derives readable GUIDs from the assembly name.
//
// This keeps expected documents in tests legible: the project GUID of
// "Assembly-CSharp" is "GUID-ASSEMBLY-CSHARP".
//
// Thread-safety: FixedGUIDGenerator is stateless and safe for concurrent use.
type FixedGUIDGenerator struct {
	solution string
}

// NewFixedGUIDGenerator creates a generator returning solutionGUID for every
// solution. If solutionGUID is empty, the C# project type GUID is used.
func NewFixedGUIDGenerator(solutionGUID string) *FixedGUIDGenerator {
	if solutionGUID == "" {
		solutionGUID = solution.CSharpProjectTypeGUID
	}
	return &FixedGUIDGenerator{solution: solutionGUID}
}

// SolutionGUID implements solution.GUIDGenerator.
func (g *FixedGUIDGenerator) SolutionGUID(string) string {
	return g.solution
}

// ProjectGUID implements solution.GUIDGenerator.
func (g *FixedGUIDGenerator) ProjectGUID(_, assemblyName string) string {
	return "GUID-" + strings.ToUpper(assemblyName)
}

var _ solution.GUIDGenerator = (*FixedGUIDGenerator)(nil)
