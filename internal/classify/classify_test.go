package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Builtins(t *testing.T) {
	c := New(nil)

	tests := []struct {
		path string
		want Kind
	}{
		{"Assets/Script.cs", Compile},
		{"Assets/Script.CS", Compile},
		{"Assets/shader.shader", NonCompileTracked},
		{"Assets/Layout.UXML", NonCompileTracked},
		{"Assets/Style.uss", NonCompileTracked},
		{"Assets/Kernel.compute", NonCompileTracked},
		{"Assets/inc.cginc", NonCompileTracked},
		{"Assets/inc.hlsl", NonCompileTracked},
		{"Assets/inc.glslinc", NonCompileTracked},
		{"Assets/t.template", NonCompileTracked},
		{"Assets/r.raytrace", NonCompileTracked},
		{"Assets/Test.asmdef", NonCompileTracked},
		{"Assets/file.random", Ignored},
		{"Assets/lib.dll", Ignored},
		{"Assets/noext", Ignored},
		{"Assets/trailing.", Ignored},
		{"", Ignored},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.path))
		})
	}
}

func TestClassify_UserExtensionsAreTracked(t *testing.T) {
	c := New([]string{".random", "TXT"})

	assert.Equal(t, NonCompileTracked, c.Classify("Assets/file.random"))
	assert.Equal(t, NonCompileTracked, c.Classify("Assets/readme.txt"))
	assert.Equal(t, Compile, New([]string{"cs"}).Classify("a.cs"))
	assert.Equal(t, []string{"random", "txt"}, c.UserExtensions())
}

func TestWithUserExtensions(t *testing.T) {
	base := New(nil)
	extended := base.WithUserExtensions([]string{"random"})

	assert.Equal(t, Ignored, base.Classify("x.random"))
	assert.Equal(t, NonCompileTracked, extended.Classify("x.random"))
	assert.Equal(t, Compile, extended.Classify("x.cs"))
}

func TestTriggersResync(t *testing.T) {
	c := New(nil)

	assert.True(t, c.TriggersResync("a.cs"))
	assert.True(t, c.TriggersResync("x.shader"))
	assert.True(t, c.TriggersResync("Plugins/lib.DLL"))
	assert.True(t, c.TriggersResync("Test.asmdef"))
	assert.False(t, c.TriggersResync("x.random"))
	assert.False(t, c.TriggersResync("Makefile"))

	assert.True(t, c.WithUserExtensions([]string{"random"}).TriggersResync("x.random"))
}

func TestIsSupported(t *testing.T) {
	c := New(nil)

	assert.True(t, c.IsSupported(""))
	assert.True(t, c.IsSupported("lib.dll"))
	assert.True(t, c.IsSupported("a.cs"))
	assert.True(t, c.IsSupported("a.uss"))
	assert.False(t, c.IsSupported("a.png"))
	assert.False(t, c.IsSupported("noext"))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "compile", Compile.String())
	assert.Equal(t, "tracked", NonCompileTracked.String())
	assert.Equal(t, "ignored", Ignored.String())
}
