// Package inputflags resolves the source arguments of a command into the
// list of VCL files to read.
package inputflags

import (
	"context"
	"errors"
	"os"
	"slices"

	"github.com/brimdata/vcl/pkg/storage"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

var ErrNoInput = errors.New("no input files (use - to read standard input)")

type Flags struct {
	Pattern string
}

func (f *Flags) SetFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Pattern, "include", "*.vcl", "glob matched against file names when an argument is a directory")
}

// Paths expands directories among args into the files below them that
// match the include pattern.  With no args, standard input is read unless
// it is a terminal.
func (f *Flags) Paths(ctx context.Context, engine *storage.Local, args []string) ([]string, error) {
	if len(args) == 0 {
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return nil, ErrNoInput
		}
		return []string{storage.StdioPath}, nil
	}
	var paths []string
	for _, arg := range args {
		if arg == storage.StdioPath {
			paths = append(paths, arg)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		files, err := engine.List(ctx, arg, f.Pattern)
		if err != nil {
			return nil, err
		}
		paths = append(paths, files...)
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}
