package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncCommand(t *testing.T) {
	p := newProject(t, "")

	out, _, err := p.run(t, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Synced 2 projects (full pass): 3 written, 0 unchanged, 0 deleted, 0 failed")

	assert.FileExists(t, p.path("Assembly-CSharp.csproj"))
	assert.FileExists(t, p.path("Core.csproj"))
	assert.FileExists(t, p.solution())

	data, err := os.ReadFile(p.path("Assembly-CSharp.csproj"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `Include="Assets\Scripts\Player.cs"`)
	assert.Contains(t, string(data), `<ProjectReference Include="Core.csproj">`)
}

func TestSyncCommandSecondRunUnchanged(t *testing.T) {
	p := newProject(t, "")

	_, _, err := p.run(t, "sync")
	require.NoError(t, err)
	before, err := os.Stat(p.solution())
	require.NoError(t, err)

	out, _, err := p.run(t, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "0 written, 3 unchanged")

	after, err := os.Stat(p.solution())
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestSyncCommandJSON(t *testing.T) {
	p := newProject(t, "")

	out, _, err := p.run(t, "--format", "json", "sync")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["full"])
	assert.Equal(t, float64(2), data["assemblies"])
	assert.Equal(t, filepath.Base(p.solution()), data["solution"])
	assert.ElementsMatch(t,
		[]interface{}{"Assembly-CSharp.csproj", "Core.csproj", filepath.Base(p.solution())},
		data["written"])
	assert.Empty(t, data["failures"])
}

func TestSyncCommandStyleOverride(t *testing.T) {
	p := newProject(t, "")

	_, _, err := p.run(t, "sync", "--style", "sdk")
	require.NoError(t, err)

	data, err := os.ReadFile(p.path("Core.csproj"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `Sdk="Microsoft.NET.Sdk"`)
}

func TestSyncCommandInvalidStyle(t *testing.T) {
	p := newProject(t, "")

	_, _, err := p.run(t, "sync", "--style", "fancy")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid config")
}

func TestSyncCommandManifestOverride(t *testing.T) {
	p := newProject(t, "")
	other := filepath.Join(t.TempDir(), "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte(`assemblies:
  - name: Tools
    output_path: Temp\bin\Debug\
    source_files: [Assets/Tools/Tool.cs]
`), 0o644))

	out, _, err := p.run(t, "sync", "--manifest", other)
	require.NoError(t, err)
	assert.Contains(t, out, "Synced 1 project (full pass)")
	assert.FileExists(t, p.path("Tools.csproj"))
	assert.NoFileExists(t, p.path("Core.csproj"))
}

func TestSyncCommandMissingManifest(t *testing.T) {
	p := newProject(t, "")

	_, _, err := p.run(t, "sync", "--manifest", filepath.Join(p.dir, "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load manifest")
}

func TestSyncCommandMissingConfig(t *testing.T) {
	out := NewRootCommand()
	out.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "sync"})
	out.SetOut(io.Discard)
	out.SetErr(io.Discard)

	err := out.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSyncCommandWriteFailure(t *testing.T) {
	p := newProject(t, "")
	// A directory where a project document belongs cannot be replaced.
	require.NoError(t, os.MkdirAll(filepath.Join(p.path("Core.csproj"), "keep"), 0o755))

	out, errOut, err := p.run(t, "sync")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Contains(t, err.Error(), "1 file operation failed")
	assert.Contains(t, out, "FAILED    Core.csproj [WRITE_FAILED]")
	assert.Contains(t, errOut, "Error [WRITE_FAILED]: 1 file operation failed")
	assert.FileExists(t, p.path("Assembly-CSharp.csproj"))
	assert.FileExists(t, p.solution())
}

func TestSyncCommandWriteFailureJSON(t *testing.T) {
	p := newProject(t, "")
	require.NoError(t, os.MkdirAll(filepath.Join(p.path("Core.csproj"), "keep"), 0o755))

	out, _, err := p.run(t, "--format", "json", "sync")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out)
	assert.Equal(t, "error", resp.Status)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "WRITE_FAILED", resp.Error.Code)
	assert.Equal(t, "1 file operation failed", resp.Error.Message)

	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	failures, ok := details["failures"].([]interface{})
	require.True(t, ok)
	require.Len(t, failures, 1)
	failure := failures[0].(map[string]interface{})
	assert.Equal(t, "Core.csproj", failure["path"])
	assert.Contains(t, details["written"], "Assembly-CSharp.csproj")
}

func TestSyncCommandVerbose(t *testing.T) {
	p := newProject(t, "")

	out, errOut, err := p.run(t, "--verbose", "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Synced 2 projects")
	assert.NotContains(t, out, "written   Core.csproj")
	assert.Contains(t, errOut, "written   Core.csproj")
	assert.Contains(t, errOut, "sync pass complete")
}

func TestSyncCommandInstallations(t *testing.T) {
	p := newProject(t, `installations:
  - name: Rider
    path: /opt/rider
    latest_language_version: "10.0"
    supports_analyzers: true
`)

	_, _, err := p.run(t, "sync")
	require.NoError(t, err)

	data, err := os.ReadFile(p.path("Core.csproj"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<LangVersion>10.0</LangVersion>")
}

func TestSyncIfNeededCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantResync bool
	}{
		{"changed_source", []string{"--changed", "Assets/Scripts/Player.cs"}, true},
		{"reimported_shader", []string{"--reimported", "Assets/Shaders/Water.shader"}, true},
		{"manifest_user_extension", []string{"--changed", "Assets/Notes/todo.txt"}, true},
		{"untracked", []string{"--changed", "Assets/Textures/wall.png,Assets/readme.md"}, false},
		{"nothing", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProject(t, "")

			out, _, err := p.run(t, append([]string{"sync-if-needed"}, tt.args...)...)
			require.NoError(t, err)
			if tt.wantResync {
				assert.Contains(t, out, "Resync: yes")
			} else {
				assert.Contains(t, out, "Resync: no")
			}
		})
	}
}

func TestSyncIfNeededCommandJSON(t *testing.T) {
	p := newProject(t, "journal: .vsgen/journal.db\n")

	out, _, err := p.run(t, "--format", "json", "sync-if-needed", "--changed", "a.cs,b.cs")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["resynced"])
	assert.Equal(t, []interface{}{"a.cs", "b.cs"}, data["changed"])
	assert.Equal(t, []interface{}{}, data["reimported"])
	assert.Equal(t, float64(2), data["seq"])
}

func TestClassifyCommand(t *testing.T) {
	p := newProject(t, "user_extensions: [json]\n")

	out, _, err := p.run(t, "classify",
		"Assets/A.cs", "Assets/B.shader", "Assets/C.txt", "Assets/D.json", "Assets/E.png", "Plugins/F.dll")
	require.NoError(t, err)

	assert.Contains(t, out, "compile  Assets/A.cs")
	assert.Contains(t, out, "tracked  Assets/B.shader")
	assert.Contains(t, out, "tracked  Assets/C.txt")
	assert.Contains(t, out, "tracked  Assets/D.json")
	assert.Contains(t, out, "ignored  Assets/E.png")
	assert.Contains(t, out, "ignored  Plugins/F.dll")
}

func TestClassifyCommandVerbose(t *testing.T) {
	p := newProject(t, "user_extensions: [.JSON]\n")

	out, errOut, err := p.run(t, "--verbose", "classify", "Assets/D.json")
	require.NoError(t, err)
	assert.Equal(t, "tracked  Assets/D.json\n", out)
	assert.Contains(t, errOut, "user extensions: [json txt]")
}

func TestClassifyCommandJSON(t *testing.T) {
	p := newProject(t, "")

	out, _, err := p.run(t, "--format", "json", "classify", "Plugins/F.dll")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	items, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "ignored", item["kind"])
	assert.Equal(t, true, item["triggers_resync"])
}

func TestClassifyCommandWithoutManifest(t *testing.T) {
	p := newProject(t, "")
	require.NoError(t, os.Remove(p.path("manifest.yaml")))

	out, _, err := p.run(t, "classify", "Assets/C.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "ignored  Assets/C.txt")
}

func TestClassifyCommandMissingArgs(t *testing.T) {
	p := newProject(t, "")

	_, _, err := p.run(t, "classify")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestSolutionCommand(t *testing.T) {
	p := newProject(t, "")

	out, _, err := p.run(t, "solution")
	require.NoError(t, err)
	assert.Equal(t, p.solution()+"\n", out)

	out, errOut, err := p.run(t, "--verbose", "solution")
	require.NoError(t, err)
	assert.Equal(t, p.solution()+"\n", out)
	assert.Contains(t, errOut, "(not generated yet)")

	out, _, err = p.run(t, "--format", "json", "solution")
	require.NoError(t, err)
	data := decodeResponse(t, out).Data.(map[string]interface{})
	assert.Equal(t, false, data["exists"])

	_, _, err = p.run(t, "sync")
	require.NoError(t, err)

	out, _, err = p.run(t, "--format", "json", "solution")
	require.NoError(t, err)
	data = decodeResponse(t, out).Data.(map[string]interface{})
	assert.Equal(t, p.solution(), data["path"])
	assert.Equal(t, true, data["exists"])
}

func TestHistoryCommand(t *testing.T) {
	p := newProject(t, "journal: .vsgen/journal.db\n")

	_, _, err := p.run(t, "sync")
	require.NoError(t, err)
	out, _, err := p.run(t, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded as pass 2")

	out, _, err = p.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "0 written, 3 unchanged")
	assert.Less(t, strings.Index(out, "#2"), strings.Index(out, "#1"))

	out, _, err = p.run(t, "--format", "json", "history", "--limit", "1")
	require.NoError(t, err)
	passes, ok := decodeResponse(t, out).Data.([]interface{})
	require.True(t, ok)
	require.Len(t, passes, 1)
	assert.Equal(t, float64(2), passes[0].(map[string]interface{})["seq"])
	assert.Equal(t, "sync", passes[0].(map[string]interface{})["kind"])
}

func TestHistoryCommandPass(t *testing.T) {
	p := newProject(t, "journal: .vsgen/journal.db\n")

	_, _, err := p.run(t, "sync")
	require.NoError(t, err)

	out, _, err := p.run(t, "history", "--seq", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "written   Assembly-CSharp.csproj")
	assert.Contains(t, out, "written   Core.csproj")

	_, _, err = p.run(t, "history", "--seq", "9")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "pass 9 not found")
}

func TestHistoryCommandFile(t *testing.T) {
	p := newProject(t, "journal: .vsgen/journal.db\n")

	for i := 0; i < 2; i++ {
		_, _, err := p.run(t, "sync")
		require.NoError(t, err)
	}

	out, _, err := p.run(t, "--format", "json", "history", "--file", "Core.csproj")
	require.NoError(t, err)
	items, ok := decodeResponse(t, out).Data.([]interface{})
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, "written", items[0].(map[string]interface{})["outcome"])
	assert.Equal(t, "unchanged", items[1].(map[string]interface{})["outcome"])
	assert.Equal(t, "Core.csproj", items[1].(map[string]interface{})["path"])
}

func TestHistoryCommandEmpty(t *testing.T) {
	p := newProject(t, "journal: .vsgen/journal.db\n")
	require.NoError(t, os.MkdirAll(p.path(".vsgen"), 0o755))

	out, _, err := p.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No passes recorded")
}

func TestHistoryCommandWithoutJournal(t *testing.T) {
	p := newProject(t, "")

	_, _, err := p.run(t, "history")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no journal configured")
}
