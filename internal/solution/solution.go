// Package solution renders the .sln document that aggregates the generated
// projects.
package solution

import (
	"sort"
	"strings"
)

// Extension is the solution file extension.
const Extension = ".sln"

// ProjectEntryMarker prefixes every project entry in a rendered solution.
const ProjectEntryMarker = `Project("{`

// Entry is one project listed in the solution.
type Entry struct {
	Name     string // display name, also the project file stem
	FileName string // project file name relative to the solution
	GUID     string // bare, uppercase
}

// Render returns the solution document for entries.
//
// Entries are emitted sorted by Name regardless of input order. An empty
// entry list still yields a complete document with every global section.
func Render(solutionGUID string, entries []Entry) string {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var sb strings.Builder
	line := func(parts ...string) {
		for _, p := range parts {
			sb.WriteString(p)
		}
		sb.WriteString("\r\n")
	}

	line()
	line("Microsoft Visual Studio Solution File, Format Version 12.00")
	line("# Visual Studio 15")
	for _, e := range sorted {
		line(ProjectEntryMarker, solutionGUID, `}") = "`, e.Name, `", "`, e.FileName, `", "{`, e.GUID, `}"`)
		line("EndProject")
	}
	line("Global")
	line("\tGlobalSection(SolutionConfigurationPlatforms) = preSolution")
	line("\t\tDebug|Any CPU = Debug|Any CPU")
	line("\t\tRelease|Any CPU = Release|Any CPU")
	line("\tEndGlobalSection")
	line("\tGlobalSection(ProjectConfigurationPlatforms) = postSolution")
	for _, e := range sorted {
		line("\t\t{", e.GUID, "}.Debug|Any CPU.ActiveCfg = Debug|Any CPU")
		line("\t\t{", e.GUID, "}.Debug|Any CPU.Build.0 = Debug|Any CPU")
		line("\t\t{", e.GUID, "}.Release|Any CPU.ActiveCfg = Release|Any CPU")
		line("\t\t{", e.GUID, "}.Release|Any CPU.Build.0 = Release|Any CPU")
	}
	line("\tEndGlobalSection")
	line("\tGlobalSection(SolutionProperties) = preSolution")
	line("\t\tHideSolutionNode = FALSE")
	line("\tEndGlobalSection")
	line("EndGlobal")
	return sb.String()
}
