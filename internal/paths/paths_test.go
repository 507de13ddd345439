package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizer_Project(t *testing.T) {
	n := NewNormalizer("/FullPath/Example", WindowsSeparator)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"relative stays", "Assets/Script.cs", `Assets\Script.cs`},
		{"below root made relative", "/FullPath/Example/Assets/Asset.cs", `Assets\Asset.cs`},
		{"sibling with shared prefix untouched", "/FullPath/ExamplePackage/Packages/Asset.cs", `\FullPath\ExamplePackage\Packages\Asset.cs`},
		{"mixed separators", `C:\Dimmer/foo.cs`, `C:\Dimmer\foo.cs`},
		{"parent relative", `..\path\file.cs`, `..\path\file.cs`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Project(tt.in))
		})
	}
}

func TestNormalizer_UnixSeparator(t *testing.T) {
	n := NewNormalizer(`C:\Proj\`, UnixSeparator)

	assert.Equal(t, "Assets/a.cs", n.Project(`C:\Proj\Assets\a.cs`))
	assert.Equal(t, "C:/Proj", n.Root())
}

func TestNormalizer_InvalidSeparatorFallsBack(t *testing.T) {
	n := NewNormalizer("/root", ':')

	assert.Equal(t, byte(WindowsSeparator), n.Separator())
}

func TestNormalizer_Absolute(t *testing.T) {
	n := NewNormalizer("/FullPath/Example", UnixSeparator)

	assert.Equal(t, "/FullPath/Example/foo.dll", n.Absolute("foo.dll"))
	assert.Equal(t, "/FullPath/Example/Assets/a.dll", n.Absolute("./Assets/a.dll"))
	assert.Equal(t, "/foobar.dll", n.Absolute("/foobar.dll"))
	assert.Equal(t, "D:/x.dll", n.Absolute(`D:\x.dll`))
}

func TestIsAbsolute(t *testing.T) {
	assert.True(t, IsAbsolute("/a"))
	assert.True(t, IsAbsolute(`\a`))
	assert.True(t, IsAbsolute(`C:\a`))
	assert.False(t, IsAbsolute("a/b"))
	assert.False(t, IsAbsolute(""))
	assert.False(t, IsAbsolute("1:"))
}

func TestExt(t *testing.T) {
	assert.Equal(t, "cs", Ext("Assets/a.cs"))
	assert.Equal(t, "CS", Ext(`Assets\a.CS`))
	assert.Equal(t, "", Ext("foo"))
	assert.Equal(t, "", Ext("foo."))
	assert.Equal(t, "", Ext("dir.d/foo"))
	assert.Equal(t, "dll", Ext("/path/with.cs/assembly.dll"))
}

func TestFileNameWithoutExtension(t *testing.T) {
	assert.Equal(t, "Goodbye", FileNameWithoutExtension("Folder/Path With Space/Goodbye.dll"))
	assert.Equal(t, "reference", FileNameWithoutExtension("reference.dll"))
	assert.Equal(t, "noext", FileNameWithoutExtension(`a\noext`))
	assert.Equal(t, ".hidden", FileNameWithoutExtension(".hidden"))
}

func TestFoldKey_CaseInsensitive(t *testing.T) {
	assert.Equal(t, FoldKey(`C:\Analyzers\Foo.DLL`), FoldKey("c:/analyzers/foo.dll"))
}
