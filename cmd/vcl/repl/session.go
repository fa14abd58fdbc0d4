package repl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/brimdata/vcl"
	"github.com/brimdata/vcl/compiler/sfmt"
)

const help = `:help          show this message
:json          toggle printing the syntax tree as JSON
:width <n>     set the print width
:quit          leave
`

type session struct {
	opts sfmt.Options
	json bool
	w    io.Writer
}

// run handles one complete input and reports whether to leave.
func (s *session) run(src string) bool {
	if line := strings.TrimSpace(src); strings.HasPrefix(line, ":") {
		return s.command(strings.Fields(line))
	}
	p, err := vcl.Parse(src)
	if err != nil {
		fmt.Fprintln(s.w, err)
		return false
	}
	if s.json {
		b, err := vcl.Serialize(p)
		if err != nil {
			fmt.Fprintln(s.w, err)
			return false
		}
		fmt.Fprintf(s.w, "%s\n", b)
		return false
	}
	io.WriteString(s.w, vcl.Generate(p, s.opts).Code)
	return false
}

func (s *session) command(fields []string) bool {
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":json":
		s.json = !s.json
		fmt.Fprintf(s.w, "json output %s\n", onOff(s.json))
	case ":width":
		if len(fields) != 2 {
			fmt.Fprintln(s.w, "usage: :width <n>")
			break
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n <= 0 {
			fmt.Fprintf(s.w, "bad width %q\n", fields[1])
			break
		}
		s.opts.PrintWidth = n
	case ":help":
		io.WriteString(s.w, help)
	default:
		fmt.Fprintf(s.w, "unknown command %s (try :help)\n", fields[0])
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
