package solution

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_DefaultTemplate(t *testing.T) {
	expected := strings.ReplaceAll(strings.Join([]string{
		``,
		`Microsoft Visual Studio Solution File, Format Version 12.00`,
		`# Visual Studio 15`,
		`Project("{%[1]s}") = "%[3]s", "%[3]s.csproj", "{%[2]s}"`,
		`EndProject`,
		`Global`,
		`    GlobalSection(SolutionConfigurationPlatforms) = preSolution`,
		`        Debug|Any CPU = Debug|Any CPU`,
		`        Release|Any CPU = Release|Any CPU`,
		`    EndGlobalSection`,
		`    GlobalSection(ProjectConfigurationPlatforms) = postSolution`,
		`        {%[2]s}.Debug|Any CPU.ActiveCfg = Debug|Any CPU`,
		`        {%[2]s}.Debug|Any CPU.Build.0 = Debug|Any CPU`,
		`        {%[2]s}.Release|Any CPU.ActiveCfg = Release|Any CPU`,
		`        {%[2]s}.Release|Any CPU.Build.0 = Release|Any CPU`,
		`    EndGlobalSection`,
		`    GlobalSection(SolutionProperties) = preSolution`,
		`        HideSolutionNode = FALSE`,
		`    EndGlobalSection`,
		`EndGlobal`,
		``,
	}, "\r\n"), "    ", "\t")
	want := fmt.Sprintf(expected, "SolutionGUID", "ProjectGUID", "Test")

	got := Render("SolutionGUID", []Entry{{Name: "Test", FileName: "Test.csproj", GUID: "ProjectGUID"}})

	assert.Equal(t, want, got)
}

func TestRender_SortsEntriesByName(t *testing.T) {
	entries := []Entry{
		{Name: "Zeta", FileName: "Zeta.csproj", GUID: "Z"},
		{Name: "Alpha", FileName: "Alpha.csproj", GUID: "A"},
	}

	got := Render(CSharpProjectTypeGUID, entries)

	assert.Less(t, strings.Index(got, `"Alpha"`), strings.Index(got, `"Zeta"`))
	assert.Less(t, strings.Index(got, "{A}.Debug"), strings.Index(got, "{Z}.Debug"))
	assert.Equal(t, "Zeta", entries[0].Name, "input must not be reordered")
}

func TestRender_EmptyIsCompleteWithoutProjects(t *testing.T) {
	got := Render(CSharpProjectTypeGUID, nil)

	assert.NotContains(t, got, ProjectEntryMarker)
	assert.Contains(t, got, "\tGlobalSection(ProjectConfigurationPlatforms) = postSolution\r\n\tEndGlobalSection\r\n")
	assert.True(t, strings.HasPrefix(got, "\r\nMicrosoft Visual Studio Solution File, Format Version 12.00\r\n"))
	assert.True(t, strings.HasSuffix(got, "EndGlobal\r\n"))
}

func TestRender_Golden(t *testing.T) {
	gen := MD5Generator{}
	var entries []Entry
	for _, name := range []string{"Game", "Game.Editor", "Core"} {
		entries = append(entries, Entry{Name: name, FileName: name + ".csproj", GUID: gen.ProjectGUID("Example", name)})
	}

	got := Render(gen.SolutionGUID("Example"), entries)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "three_projects", []byte(got))
}

func TestMD5Generator_Stable(t *testing.T) {
	gen := MD5Generator{}

	first := gen.ProjectGUID("Example", "Assembly-CSharp")
	second := gen.ProjectGUID("Example", "Assembly-CSharp")

	assert.Equal(t, first, second)
	assert.Equal(t, strings.ToUpper(first), first)
	_, err := uuid.Parse(first)
	require.NoError(t, err)

	assert.NotEqual(t, first, gen.ProjectGUID("Other", "Assembly-CSharp"))
	assert.NotEqual(t, first, gen.ProjectGUID("Example", "Assembly-CSharp-Editor"))
	assert.Equal(t, CSharpProjectTypeGUID, gen.SolutionGUID("anything"))
}
