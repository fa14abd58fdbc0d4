package storage

import (
	"bytes"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdinGetReturnsWorkingReaderAfterClose(t *testing.T) {
	e := &StdioEngine{Stdin: strings.NewReader("sub a {}")}
	r, err := e.Get(t.Context(), StdioPath)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	b, err := ReadAll(t.Context(), e, StdioPath)
	require.NoError(t, err)
	assert.Equal(t, "sub a {}", string(b))
}

func TestLocalRoutesStdout(t *testing.T) {
	var out bytes.Buffer
	l := NewLocalEngine()
	l.Stdio.Stdout = &out
	require.NoError(t, WriteAll(t.Context(), l, StdioPath, []byte("restart;\n")))
	assert.Equal(t, "restart;\n", out.String())
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "dir", "main.vcl")
	l := NewLocalEngine()
	ok, err := l.Exists(t.Context(), path)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, WriteAll(t.Context(), l, path, []byte("import std;\n")))
	b, err := ReadAll(t.Context(), l, path)
	require.NoError(t, err)
	assert.Equal(t, "import std;\n", string(b))

	paths, err := l.List(t.Context(), dir, "*.vcl")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, paths)
}

func TestMissingFile(t *testing.T) {
	_, err := ReadAll(t.Context(), NewFileSystem(), filepath.Join(t.TempDir(), "nope.vcl"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
