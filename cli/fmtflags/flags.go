// Package fmtflags binds the formatter options to command-line flags and
// an optional YAML configuration file.  Flags given on the command line
// override values from the file.
package fmtflags

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/brimdata/vcl/compiler/sfmt"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// DefaultConfig is read from the working directory when -config is not
// given.
const DefaultConfig = ".vclfmt.yaml"

type Flags struct {
	Config string
	opts   sfmt.Options
	fs     *pflag.FlagSet
}

func (f *Flags) SetFlags(fs *pflag.FlagSet) {
	def := sfmt.DefaultOptions()
	fs.StringVar(&f.Config, "config", "", fmt.Sprintf("YAML file of formatting options (default %s if present)", DefaultConfig))
	fs.IntVar(&f.opts.PrintWidth, "print-width", def.PrintWidth, "line width the formatter tries to stay within")
	fs.IntVar(&f.opts.TabWidth, "tab-width", def.TabWidth, "columns per indentation level")
	fs.BoolVar(&f.opts.UseTabs, "use-tabs", def.UseTabs, "indent with tabs")
	f.fs = fs
}

// Options merges the configuration file and the flags.
func (f *Flags) Options() (sfmt.Options, error) {
	opts := sfmt.DefaultOptions()
	path := f.Config
	if path == "" {
		path = DefaultConfig
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(b, &opts); err != nil {
			return sfmt.Options{}, fmt.Errorf("%s: %w", path, err)
		}
	case f.Config != "" || !errors.Is(err, fs.ErrNotExist):
		return sfmt.Options{}, err
	}
	if f.fs == nil || f.fs.Changed("print-width") {
		opts.PrintWidth = f.opts.PrintWidth
	}
	if f.fs == nil || f.fs.Changed("tab-width") {
		opts.TabWidth = f.opts.TabWidth
	}
	if f.fs == nil || f.fs.Changed("use-tabs") {
		opts.UseTabs = f.opts.UseTabs
	}
	if opts.PrintWidth <= 0 || opts.TabWidth <= 0 {
		return sfmt.Options{}, errors.New("print-width and tab-width must be positive")
	}
	return opts, nil
}

func decode(b []byte, opts *sfmt.Options) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(opts); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
