package gen

import (
	"fmt"

	"github.com/brimdata/vcl"
	"github.com/brimdata/vcl/cli/fmtflags"
	"github.com/brimdata/vcl/cli/outputflags"
	"github.com/brimdata/vcl/cmd/vcl/root"
	"github.com/brimdata/vcl/compiler/ast"
	"github.com/brimdata/vcl/compiler/sfmt"
	"github.com/brimdata/vcl/pkg/storage"
	"github.com/spf13/cobra"
)

const long = `
This command reads a syntax tree in the JSON form written by "vcl parse"
and generates VCL code from it.  The tree may have been edited by another
tool in between; its positions are ignored when printing.  A tree whose
root is an expression generates that expression.
`

func init() {
	root.Vcl.AddCommand(New())
}

type Command struct {
	*root.Command
	fmtFlags    fmtflags.Flags
	outputFlags outputflags.Flags
}

func New() *cobra.Command {
	c := &Command{Command: root.Global}
	cmd := &cobra.Command{
		Use:   "gen [options] [ast.json]",
		Short: "generate VCL code from a JSON syntax tree",
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Run,
	}
	c.fmtFlags.SetFlags(cmd.Flags())
	c.outputFlags.SetFlags(cmd.Flags())
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
	node, err := vcl.Hydrate([]byte(src))
	if err != nil {
		return fmt.Errorf("reading syntax tree: %w", err)
	}
	var code string
	switch node := node.(type) {
	case *ast.Program:
		code = vcl.Generate(node, opts).Code
	case ast.Expr:
		code = sfmt.ASTExpr(node, opts) + "\n"
	default:
		return fmt.Errorf("cannot generate code from a %T", node)
	}
	return storage.WriteAll(ctx, engine, c.outputFlags.FileName(), []byte(code))
}
