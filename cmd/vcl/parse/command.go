package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brimdata/vcl"
	"github.com/brimdata/vcl/cli/outputflags"
	"github.com/brimdata/vcl/cmd/vcl/root"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

const long = `
This command parses a VCL program and writes its syntax tree.  The default
JSON form is the interchange format read back by "vcl gen".  The "go"
format prints the tree as Go values, which is handy when debugging the
parser.

With -expr, the input is a single expression rather than a program.  With
-tokens, the token stream is written instead of the tree.
`

func init() {
	root.Vcl.AddCommand(New())
}

type Command struct {
	*root.Command
	outputFlags outputflags.Flags
	expr        bool
	tokens      bool
}

func New() *cobra.Command {
	c := &Command{Command: root.Global}
	c.outputFlags.DefaultFormat = "json"
	c.outputFlags.Formats = []string{"json", "go"}
	cmd := &cobra.Command{
		Use:   "parse [options] [file]",
		Short: "print the syntax tree of a VCL program",
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Run,
	}
	fs := cmd.Flags()
	c.outputFlags.SetFlags(fs)
	fs.BoolVar(&c.expr, "expr", false, "parse an expression instead of a program")
	fs.BoolVar(&c.tokens, "tokens", false, "print tokens instead of the syntax tree")
	return cmd
}

func (c *Command) Run(cmd *cobra.Command, args []string) error {
	ctx, cleanup, err := c.Init(&c.outputFlags)
	if err != nil {
		return err
	}
	defer cleanup()
	engine := root.Engine(cmd)
	src, err := root.ReadSource(ctx, engine, args)
	if err != nil {
		return err
	}
	var tree any
	switch {
	case c.tokens:
		tree, err = vcl.Tokenize(src)
	case c.expr:
		tree, err = vcl.ParseExpr(strings.TrimSpace(src))
	default:
		tree, err = vcl.Parse(src)
	}
	if err != nil {
		return err
	}
	out, err := c.encode(tree)
	if err != nil {
		return err
	}
	w, err := c.outputFlags.Open(ctx, engine)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (c *Command) encode(tree any) ([]byte, error) {
	if c.outputFlags.Format == "go" {
		return []byte(pretty.Sprint(tree) + "\n"), nil
	}
	b, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encoding syntax tree: %w", err)
	}
	if c.outputFlags.Pretty > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, b, "", strings.Repeat(" ", c.outputFlags.Pretty)); err != nil {
			return nil, err
		}
		b = buf.Bytes()
	}
	return append(b, '\n'), nil
}
