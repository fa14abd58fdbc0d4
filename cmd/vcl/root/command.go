package root

import (
	"context"

	"github.com/brimdata/vcl/cli"
	"github.com/brimdata/vcl/pkg/storage"
	"github.com/spf13/cobra"
)

type Command struct {
	cli.Flags
}

// Global carries the flags every subcommand shares.
var Global = &Command{}

var Vcl = &cobra.Command{
	Use:   "vcl",
	Short: "parse, format and instrument Varnish/Fastly VCL",
	Long: `
The "vcl" command parses Varnish and Fastly VCL programs and prints them
back in a canonical layout.  It can also dump the syntax tree of a program
as JSON, regenerate code from such a dump and instrument a program with
log statements that trace which branches run.

Input files may be file system paths or "-" for standard input.  A
directory argument stands for the files below it that match -include.

Formatting options are read from .vclfmt.yaml in the working directory
when present, e.g.,

  print-width: 100
  tab-width: 4
  use-tabs: false

Flags given on the command line override the file.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	Global.SetFlags(Vcl.PersistentFlags())
}

// Engine returns a storage engine whose standard streams are those of cmd.
func Engine(cmd *cobra.Command) *storage.Local {
	engine := storage.NewLocalEngine()
	engine.Stdio.Stdin = cmd.InOrStdin()
	engine.Stdio.Stdout = cmd.OutOrStdout()
	return engine
}

// ReadSource reads the single source named by args, defaulting to
// standard input.
func ReadSource(ctx context.Context, engine storage.Engine, args []string) (string, error) {
	path := storage.StdioPath
	if len(args) > 0 {
		path = args[0]
	}
	b, err := storage.ReadAll(ctx, engine, path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
