package discovery

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// gatedDiscoverer blocks until release is closed.
type gatedDiscoverer struct {
	release chan struct{}
	found   []Installation
	calls   int
}

func (g *gatedDiscoverer) Discover(ctx context.Context) ([]Installation, error) {
	g.calls++
	select {
	case <-g.release:
		return g.found, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestCache_NotReadyNeverBlocks(t *testing.T) {
	g := &gatedDiscoverer{release: make(chan struct{}), found: []Installation{{Name: "VS", Path: "/vs"}}}
	c := NewCache(g, WithCacheLogger(quietLogger()))
	c.Start(context.Background())

	assert.False(t, c.Ready())
	_, ok := c.Current()
	assert.False(t, ok)
	_, ok = c.Lookup("/vs")
	assert.False(t, ok)
	assert.Nil(t, c.Installations())

	close(g.release)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Wait(ctx))

	assert.True(t, c.Ready())
	inst, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "VS", inst.Name)
}

func TestCache_StartOnlyOnce(t *testing.T) {
	g := &gatedDiscoverer{release: make(chan struct{})}
	close(g.release)
	c := NewCache(g, WithCacheLogger(quietLogger()))

	c.Start(context.Background())
	c.Start(context.Background())
	require.NoError(t, c.Wait(context.Background()))

	assert.Equal(t, 1, g.calls)
}

func TestCache_WaitHonorsContext(t *testing.T) {
	g := &gatedDiscoverer{release: make(chan struct{})}
	c := NewCache(g, WithCacheLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, c.Wait(ctx), context.Canceled)
}

func TestCache_PreferredAndLookup(t *testing.T) {
	c := NewCache(StaticDiscoverer{Installations: []Installation{
		{Name: "A", Path: `C:\VS\devenv.exe`},
		{Name: "B", Path: "/usr/bin/code"},
	}}, WithPreferredPath("/usr/bin/code"), WithCacheLogger(quietLogger()))
	c.Start(context.Background())
	require.NoError(t, c.Wait(context.Background()))

	inst, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "B", inst.Name)

	inst, ok = c.Lookup("c:/vs/DEVENV.exe")
	require.True(t, ok)
	assert.Equal(t, "A", inst.Name)
}

type failingDiscoverer struct{}

func (failingDiscoverer) Discover(context.Context) ([]Installation, error) {
	return nil, errors.New("registry unavailable")
}

func TestCache_DiscoveryErrorStillReady(t *testing.T) {
	c := NewCache(failingDiscoverer{}, WithCacheLogger(quietLogger()))
	c.Start(context.Background())
	require.NoError(t, c.Wait(context.Background()))

	assert.True(t, c.Ready())
	assert.EqualError(t, c.Err(), "registry unavailable")
	_, ok := c.Current()
	assert.False(t, ok)
}

func TestProbeDiscoverer(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "code")
	require.NoError(t, os.WriteFile(present, nil, 0o755))

	p := ProbeDiscoverer{Candidates: []Installation{
		{Name: "present", Path: present},
		{Name: "missing", Path: filepath.Join(dir, "nope")},
		{Name: "empty"},
	}}

	found, err := p.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "present", found[0].Name)
}

func TestProbeDiscoverer_CustomStat(t *testing.T) {
	p := ProbeDiscoverer{
		Candidates: []Installation{{Name: "x", Path: "/x"}},
		Stat: func(string) (os.FileInfo, error) {
			return nil, fs.ErrNotExist
		},
	}

	found, err := p.Discover(context.Background())
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestStaticDiscoverer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := StaticDiscoverer{}.Discover(ctx)
	assert.Error(t, err)
}

func TestCompareVersions(t *testing.T) {
	assert.Equal(t, 0, CompareVersions("7.3", "7.3.0"))
	assert.Equal(t, -1, CompareVersions("7.3", "8.0"))
	assert.Equal(t, 1, CompareVersions("11.0", "9.0"))
	assert.Equal(t, 1, CompareVersions("16.3", "16"))
}
