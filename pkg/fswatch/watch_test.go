package fswatch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brimdata/vcl/pkg/fswatch"
	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.vcl")
	other := filepath.Join(dir, "b.vcl")
	require.NoError(t, os.WriteFile(path, []byte("restart;"), 0644))
	require.NoError(t, os.WriteFile(other, []byte("restart;"), 0644))

	w, err := fswatch.New(nil, []string{path})
	require.NoError(t, err)
	w.Debounce = 10 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan string, 10)
	done := make(chan error)
	go func() {
		done <- w.Run(ctx, func(p string) { changed <- p })
	}()

	require.NoError(t, os.WriteFile(other, []byte("restart;\n"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("restart;\n"), 0644))
	select {
	case p := <-changed:
		abs, err := filepath.Abs(path)
		require.NoError(t, err)
		require.Equal(t, abs, p)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	cancel()
	require.NoError(t, <-done)
}
