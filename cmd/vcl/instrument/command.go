package instrument

import (
	"github.com/brimdata/vcl"
	"github.com/brimdata/vcl/cli/fmtflags"
	"github.com/brimdata/vcl/cli/outputflags"
	"github.com/brimdata/vcl/cmd/vcl/root"
	"github.com/brimdata/vcl/compiler/plugin/branchlog"
	"github.com/brimdata/vcl/pkg/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const long = `
This command adds a log statement at the head of every if and else branch
of a program so that the branches taken show up in the logs, e.g.,

  log "BRANCH vcl_recv:12 if";

names the subroutine and line of the if statement.  The tag at the front
of each message is set with -tag.  The instrumented program is written
formatted.
`

func init() {
	root.Vcl.AddCommand(New())
}

type Command struct {
	*root.Command
	fmtFlags    fmtflags.Flags
	outputFlags outputflags.Flags
	tag         string
}

func New() *cobra.Command {
	c := &Command{Command: root.Global}
	cmd := &cobra.Command{
		Use:   "instrument [options] [file]",
		Short: "add branch logging to a VCL program",
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Run,
	}
	fs := cmd.Flags()
	c.fmtFlags.SetFlags(fs)
	c.outputFlags.SetFlags(fs)
	fs.StringVar(&c.tag, "tag", branchlog.DefaultTag, "tag at the front of each log message")
	return cmd
}

func (c *Command) Run(cmd *cobra.Command, args []string) error {
	ctx, cleanup, err := c.Init(&c.outputFlags)
	if err != nil {
		return err
	}
	defer cleanup()
	opts, err := c.fmtFlags.Options()
	if err != nil {
		return err
	}
	engine := root.Engine(cmd)
	src, err := root.ReadSource(ctx, engine, args)
	if err != nil {
		return err
	}
	code, err := vcl.Format(src, opts, branchlog.New(c.tag))
	if err != nil {
		return err
	}
	c.Logger.Debug("instrumented", zap.String("tag", c.tag), zap.Int("bytes", len(code)))
	return storage.WriteAll(ctx, engine, c.outputFlags.FileName(), []byte(code))
}
