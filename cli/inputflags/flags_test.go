package inputflags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brimdata/vcl/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.vcl", "b.txt", "sub/c.vcl"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}
	f := Flags{Pattern: "*.vcl"}
	paths, err := f.Paths(t.Context(), storage.NewLocalEngine(), []string{dir, filepath.Join(dir, "b.txt"), "-"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"-",
		filepath.Join(dir, "a.vcl"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "sub", "c.vcl"),
	}, paths)
}

func TestMissingPath(t *testing.T) {
	f := Flags{Pattern: "*.vcl"}
	_, err := f.Paths(t.Context(), storage.NewLocalEngine(), []string{filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}
