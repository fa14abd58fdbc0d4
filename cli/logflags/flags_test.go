package logflags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vcl.log")
	var flags Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.SetFlags(fs)
	require.NoError(t, fs.Parse([]string{"--log.level=info", "--log.path=" + path, "--log.mode=truncate"}))
	assert.Equal(t, zapcore.InfoLevel, flags.Level)
	logger, err := flags.Open()
	require.NoError(t, err)
	logger.Info("formatted", zap.String("file", "a.vcl"))
	logger.Debug("dropped")
	require.NoError(t, logger.Sync())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"formatted"`)
	assert.Contains(t, string(b), `"file":"a.vcl"`)
	assert.NotContains(t, string(b), "dropped")
}

func TestBadLevel(t *testing.T) {
	var flags Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.SetFlags(fs)
	assert.Error(t, fs.Parse([]string{"--log.level=loud"}))
}

func TestBadMode(t *testing.T) {
	flags := Flags{Path: filepath.Join(t.TempDir(), "x.log"), Mode: "sideways"}
	_, err := flags.Open()
	assert.Error(t, err)
}
