package solution

import (
	"strings"

	"github.com/google/uuid"
)

// CSharpProjectTypeGUID identifies C# projects inside a solution.
const CSharpProjectTypeGUID = "FAE04EC0-301F-11D3-BF4B-00C04F79EFBC"

// guidNamespace seeds every project GUID. Changing it changes every
// generated GUID, which churns all documents.
var guidNamespace = uuid.MustParse("6f0a3c52-4b5e-4b8e-9a61-2d7c53b1e0f4")

// GUIDGenerator derives stable identifiers for solutions and projects.
type GUIDGenerator interface {
	SolutionGUID(projectName string) string
	ProjectGUID(projectName, assemblyName string) string
}

// MD5Generator derives GUIDs with name-based UUIDs (RFC 4122 version 3).
type MD5Generator struct{}

// SolutionGUID returns the C# project type GUID. Visual Studio expects the
// project type here, not a per-solution value.
func (MD5Generator) SolutionGUID(string) string {
	return CSharpProjectTypeGUID
}

// ProjectGUID returns the uppercase GUID for assemblyName within the project
// named projectName. The result is stable across runs and machines.
func (MD5Generator) ProjectGUID(projectName, assemblyName string) string {
	id := uuid.NewMD5(guidNamespace, []byte(projectName+assemblyName))
	return strings.ToUpper(id.String())
}
