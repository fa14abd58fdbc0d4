package cli_test

import (
	"errors"
	"testing"

	"github.com/brimdata/vcl/cli"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type initializer func() error

func (i initializer) Init() error { return i() }

func TestInit(t *testing.T) {
	var f cli.Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse([]string{"--log.level", "debug"}))

	var called bool
	ctx, cleanup, err := f.Init(initializer(func() error {
		called = true
		return nil
	}))
	require.NoError(t, err)
	defer cleanup()
	assert.True(t, called)
	assert.NoError(t, ctx.Err())
	require.NotNil(t, f.Logger)
	assert.True(t, f.Logger.Core().Enabled(-1))

	bad := errors.New("bad flag")
	_, _, err = f.Init(initializer(func() error { return bad }))
	assert.ErrorIs(t, err, bad)
}
