package repl

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/brimdata/vcl/cli/fmtflags"
	"github.com/brimdata/vcl/cmd/vcl/root"
	"github.com/brimdata/vcl/compiler/parser"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const long = `
This command reads VCL interactively and prints each statement back
formatted.  Input continues on the next line while a block or statement
is still open.  Lines starting with ":" are commands; ":help" lists them.
`

const historyFile = ".vcl_history"

func init() {
	root.Vcl.AddCommand(New())
}

type Command struct {
	*root.Command
	fmtFlags fmtflags.Flags
}

func New() *cobra.Command {
	c := &Command{Command: root.Global}
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "format VCL interactively",
		Long:  long,
		Args:  cobra.NoArgs,
		RunE:  c.Run,
	}
	c.fmtFlags.SetFlags(cmd.Flags())
	return cmd
}

func (c *Command) Run(cmd *cobra.Command, _ []string) error {
	_, cleanup, err := c.Init()
	if err != nil {
		return err
	}
	defer cleanup()
	opts, err := c.fmtFlags.Options()
	if err != nil {
		return err
	}
	s := &session{opts: opts, w: cmd.OutOrStdout()}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	for {
		src, ok := read(ln)
		if !ok {
			break
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if s.run(src) {
			break
		}
	}
	if f, err := os.Create(histPath); err == nil {
		ln.WriteHistory(f)
		f.Close()
	} else {
		c.Logger.Warn("saving history", zap.Error(err))
	}
	return nil
}

// read accumulates lines until they parse or fail for a reason other
// than running out of input.
func read(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := "vcl> "
		if b.Len() > 0 {
			prompt = "...> "
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl-C drops the pending input.
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, err := parser.Parse(src); !parser.IsIncomplete(err) {
			return src, true
		}
	}
}
