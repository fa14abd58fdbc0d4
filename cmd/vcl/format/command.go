package format

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/brimdata/vcl"
	"github.com/brimdata/vcl/cli/fmtflags"
	"github.com/brimdata/vcl/cli/inputflags"
	"github.com/brimdata/vcl/cmd/vcl/root"
	"github.com/brimdata/vcl/compiler/sfmt"
	"github.com/brimdata/vcl/pkg/fswatch"
	"github.com/brimdata/vcl/pkg/storage"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const long = `
This command formats VCL programs.  With no flags the formatted code is
written to standard output.  Use -w to rewrite files in place, -l to list
the files whose formatting differs, -d to print unified diffs and -check
to exit with an error when any file is not formatted.

With -watch, the named files are reformatted in place whenever they are
saved until the command is interrupted.
`

func init() {
	root.Vcl.AddCommand(New())
}

func New() *cobra.Command {
	c := &Command{Command: root.Global}
	cmd := &cobra.Command{
		Use:   "fmt [options] [file|dir ...]",
		Short: "format VCL source files",
		Long:  long,
		RunE:  c.Run,
	}
	c.SetFlags(cmd)
	return cmd
}

type Command struct {
	*root.Command
	fmtFlags   fmtflags.Flags
	inputFlags inputflags.Flags
	write      bool
	list       bool
	diff       bool
	check      bool
	watch      bool
	jobs       int
}

func (c *Command) SetFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	c.fmtFlags.SetFlags(fs)
	c.inputFlags.SetFlags(fs)
	fs.BoolVarP(&c.write, "write", "w", false, "write result to source file instead of standard output")
	fs.BoolVarP(&c.list, "list", "l", false, "list files whose formatting differs")
	fs.BoolVarP(&c.diff, "diff", "d", false, "display diffs instead of rewriting files")
	fs.BoolVar(&c.check, "check", false, "exit with an error if any file is not formatted")
	fs.BoolVar(&c.watch, "watch", false, "reformat files in place as they change")
	fs.IntVarP(&c.jobs, "jobs", "j", 8, "number of files formatted concurrently")
}

// ErrUnformatted is returned with -check when some input was not already
// formatted.
var ErrUnformatted = errors.New("some files are not formatted")

func (c *Command) Run(cmd *cobra.Command, args []string) error {
	ctx, cleanup, err := c.Init()
	if err != nil {
		return err
	}
	defer cleanup()
	opts, err := c.fmtFlags.Options()
	if err != nil {
		return err
	}
	engine := root.Engine(cmd)
	paths, err := c.inputFlags.Paths(ctx, engine, args)
	if err != nil {
		return err
	}
	if c.watch {
		return c.runWatch(ctx, engine, opts, paths)
	}
	results, err := c.formatAll(ctx, engine, opts, paths)
	if err != nil {
		return err
	}
	return c.report(ctx, engine, cmd.OutOrStdout(), results)
}

type result struct {
	path    string
	source  string
	code    string
	changed bool
	err     error
}

func (c *Command) formatAll(ctx context.Context, engine storage.Engine, opts sfmt.Options, paths []string) ([]result, error) {
	results := make([]result, len(paths))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(c.jobs, 1))
	for i, path := range paths {
		group.Go(func() error {
			results[i] = formatFile(ctx, engine, opts, path)
			c.Logger.Debug("formatted", zap.String("path", path), zap.Bool("changed", results[i].changed), zap.Error(results[i].err))
			return ctx.Err()
		})
	}
	return results, group.Wait()
}

func formatFile(ctx context.Context, engine storage.Engine, opts sfmt.Options, path string) result {
	r := result{path: path}
	b, err := storage.ReadAll(ctx, engine, path)
	if err != nil {
		r.err = err
		return r
	}
	r.source = string(b)
	r.code, r.err = vcl.Format(r.source, opts)
	if r.err != nil {
		r.err = fmt.Errorf("%s: %w", path, r.err)
	}
	r.changed = r.err == nil && r.code != r.source
	return r
}

func (c *Command) report(ctx context.Context, engine storage.Engine, w io.Writer, results []result) error {
	var errs []error
	var unformatted int
	quiet := c.write || c.list || c.diff || c.check
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		if r.changed {
			unformatted++
		}
		if c.list && r.changed {
			fmt.Fprintln(w, r.path)
		}
		if c.diff && r.changed {
			diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(r.source),
				B:        difflib.SplitLines(r.code),
				FromFile: r.path + ".orig",
				ToFile:   r.path,
				Context:  3,
			})
			if err != nil {
				return err
			}
			io.WriteString(w, diff)
		}
		if c.write && r.changed && r.path != storage.StdioPath {
			if err := storage.WriteAll(ctx, engine, r.path, []byte(r.code)); err != nil {
				errs = append(errs, err)
				continue
			}
			c.Logger.Info("rewrote", zap.String("path", r.path))
		}
		if !quiet || (c.write && r.path == storage.StdioPath) {
			io.WriteString(w, r.code)
		}
	}
	if c.check && unformatted > 0 {
		errs = append(errs, fmt.Errorf("%w: %d of %d", ErrUnformatted, unformatted, len(results)))
	}
	return errors.Join(errs...)
}

func (c *Command) runWatch(ctx context.Context, engine storage.Engine, opts sfmt.Options, paths []string) error {
	for _, path := range paths {
		if path == storage.StdioPath {
			return errors.New("-watch cannot be used with standard input")
		}
	}
	w, err := fswatch.New(c.Logger, paths)
	if err != nil {
		return err
	}
	c.Logger.Info("watching", zap.Strings("paths", paths))
	return w.Run(ctx, func(path string) {
		r := formatFile(ctx, engine, opts, path)
		switch {
		case r.err != nil:
			c.Logger.Warn("format failed", zap.Error(r.err))
		case r.changed:
			// The write below triggers one more event which then finds
			// the file unchanged.
			if err := storage.WriteAll(ctx, engine, path, []byte(r.code)); err != nil {
				c.Logger.Error("write failed", zap.String("path", path), zap.Error(err))
				return
			}
			c.Logger.Info("rewrote", zap.String("path", path))
		}
	})
}
