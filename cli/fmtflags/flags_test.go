package fmtflags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) *Flags {
	t.Helper()
	var f Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return &f
}

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fmt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	opts, err := parse(t).Options()
	require.NoError(t, err)
	assert.Equal(t, 80, opts.PrintWidth)
	assert.Equal(t, 2, opts.TabWidth)
	assert.False(t, opts.UseTabs)
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := writeConfig(t, "print-width: 100\nuse-tabs: true\n")
	opts, err := parse(t, "--config", path, "--print-width", "60").Options()
	require.NoError(t, err)
	assert.Equal(t, 60, opts.PrintWidth)
	assert.True(t, opts.UseTabs)
	assert.Equal(t, 2, opts.TabWidth)
}

func TestDefaultConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfig), []byte("tab-width: 4\n"), 0644))
	t.Chdir(dir)
	opts, err := parse(t).Options()
	require.NoError(t, err)
	assert.Equal(t, 4, opts.TabWidth)
}

func TestBadConfig(t *testing.T) {
	_, err := parse(t, "--config", writeConfig(t, "indent: 3\n")).Options()
	assert.Error(t, err)

	_, err = parse(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")).Options()
	assert.Error(t, err)

	_, err = parse(t, "--config", writeConfig(t, "print-width: 0\n")).Options()
	assert.Error(t, err)
}
