// Package cli holds the flags and setup shared by every vcl command.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/brimdata/vcl/cli/logflags"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Initializer is a flag group that validates itself once flags are parsed.
type Initializer interface {
	Init() error
}

type Flags struct {
	logFlags logflags.Flags
	Logger   *zap.Logger
}

func (f *Flags) SetFlags(fs *pflag.FlagSet) {
	f.logFlags.SetFlags(fs)
}

// Init runs the initializers, opens the logger and returns a context that
// is canceled on interrupt.  The cleanup function must be called when the
// command is done.
func (f *Flags) Init(all ...Initializer) (context.Context, func(), error) {
	for _, i := range all {
		if err := i.Init(); err != nil {
			return nil, nil, err
		}
	}
	logger, err := f.logFlags.Open()
	if err != nil {
		return nil, nil, err
	}
	f.Logger = logger
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cleanup := func() {
		cancel()
		logger.Sync()
	}
	return ctx, cleanup, nil
}
