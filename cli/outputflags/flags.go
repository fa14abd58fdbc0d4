// Package outputflags selects the format and destination of command
// output.
package outputflags

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/brimdata/vcl/pkg/storage"
	"github.com/spf13/pflag"
)

type Flags struct {
	Format        string
	DefaultFormat string
	Formats       []string
	Pretty        int
	outputFile    string
}

func (f *Flags) SetFlags(fs *pflag.FlagSet) {
	if f.DefaultFormat == "" {
		f.DefaultFormat = "vcl"
	}
	if len(f.Formats) == 0 {
		f.Formats = []string{f.DefaultFormat}
	}
	fs.StringVarP(&f.Format, "format", "f", f.DefaultFormat, fmt.Sprintf("format for output %v", f.Formats))
	fs.IntVar(&f.Pretty, "pretty", 2, "indentation of JSON output (0 for a single line)")
	fs.StringVarP(&f.outputFile, "output", "o", "", "write output to file instead of standard output")
}

// Init is called after flags have been parsed.
func (f *Flags) Init() error {
	if !slices.Contains(f.Formats, f.Format) {
		return fmt.Errorf("unknown output format %q", f.Format)
	}
	if f.Pretty < 0 {
		return fmt.Errorf("-pretty must not be negative")
	}
	return nil
}

func (f *Flags) FileName() string {
	if f.outputFile == "" {
		return storage.StdioPath
	}
	return f.outputFile
}

func (f *Flags) Open(ctx context.Context, engine storage.Engine) (io.WriteCloser, error) {
	return engine.Put(ctx, f.FileName())
}
