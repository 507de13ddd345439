package responsefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vsgen/internal/model"
)

type memFiles map[string]string

func (m memFiles) Exists(path string) bool { _, ok := m[path]; return ok }
func (m memFiles) ReadAllText(path string) (string, error) {
	return m[path], nil
}
func (m memFiles) WriteAllText(path, content string) error { m[path] = content; return nil }
func (m memFiles) Delete(path string) error                { delete(m, path); return nil }

func TestParseArgument(t *testing.T) {
	tests := []struct {
		in    string
		name  string
		value string
		ok    bool
	}{
		{"-define:A;B", "define", "A;B", true},
		{"  /analyzer:foo.dll", "analyzer", "foo.dll", true},
		{"/a:bar.dll  ", "a", "bar.dll", true},
		{"-a  :/barfoo.dll", "a", "/barfoo.dll", true},
		{"/a:  foo.dll", "a", "foo.dll", true},
		{"-UNSAFE", "unsafe", "", true},
		{"plain", "", "", false},
		{"-", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			arg, ok := ParseArgument(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.name, arg.Name)
				assert.Equal(t, tt.value, arg.Value)
			}
		})
	}
}

func TestParse_AllSwitchKinds(t *testing.T) {
	data := Parse([]string{
		"-define:DEF1;DEF2",
		"-d:DEF3,DEF4",
		"-r:Hello.dll",
		`-reference:"Folder/Path With Space/Goodbye.dll"`,
		"-unsafe",
		"/analyzer:foo.dll",
		"-a:/abs/bar.dll",
		"/additionalfile:extra.txt",
		"-nowarn:0169",
		"loose",
	}, "/proj")

	assert.Equal(t, []string{"DEF1", "DEF2", "DEF3", "DEF4"}, data.Defines)
	assert.Equal(t, []string{"Hello.dll", "Folder/Path With Space/Goodbye.dll"}, data.FullPathReferences)
	assert.True(t, data.Unsafe)
	assert.Equal(t, []string{"/proj/foo.dll", "/abs/bar.dll"}, data.Analyzers)
	assert.Equal(t, []string{"/proj/extra.txt"}, data.AdditionalFiles)
	assert.Equal(t, []string{"-nowarn:0169", "loose"}, data.OtherArguments)
}

func TestParse_UnsafeMinusResets(t *testing.T) {
	data := Parse([]string{"-unsafe+", "-unsafe-"}, "")
	assert.False(t, data.Unsafe)
}

func TestHarvest_MovesAnalyzersOutOfOtherArguments(t *testing.T) {
	in := model.ResponseFileData{
		OtherArguments: []string{"  /analyzer:foo.dll", "/a:bar.dll  ", "  -analyzer:/foobar.dll  ", "-a  :/barfoo.dll", "/a:  foo.dll", "-warnaserror"},
	}

	out := Harvest(in, "/proj")

	assert.Equal(t, []string{"/proj/foo.dll", "/proj/bar.dll", "/foobar.dll", "/barfoo.dll", "/proj/foo.dll"}, out.Analyzers)
	assert.Equal(t, []string{"-warnaserror"}, out.OtherArguments)
}

func TestTokenize(t *testing.T) {
	text := "# comment\r\n-define:A;B \"-r:Path With Space/x.dll\"\r\n-a  :/barfoo.dll\n/a: foo.dll\n-a : spaced.dll\n"

	assert.Equal(t, []string{
		"-define:A;B",
		"-r:Path With Space/x.dll",
		"-a:/barfoo.dll",
		"/a:foo.dll",
		"-a:spaced.dll",
	}, Tokenize(text))
}

func TestParseFile(t *testing.T) {
	files := memFiles{"/proj/csc.rsp": "-define:RootedDefine\n-unsafe\n"}

	data := ParseFile(files, "csc.rsp", "/proj")

	assert.Equal(t, []string{"RootedDefine"}, data.Defines)
	assert.True(t, data.Unsafe)
	assert.Empty(t, data.Errors)
}

func TestParseFile_MissingContributesNothing(t *testing.T) {
	data := ParseFile(memFiles{}, "missing.rsp", "/proj")

	require.Len(t, data.Errors, 1)
	assert.Empty(t, data.Defines)
	assert.False(t, data.Unsafe)
}
