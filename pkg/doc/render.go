package doc

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type Options struct {
	Width    int  // target line width
	TabWidth int  // columns per indentation level
	UseTabs  bool // indent with tabs instead of spaces
}

type mode int

const (
	modeBreak mode = iota
	modeFlat
)

type command struct {
	level int
	mode  mode
	doc   Doc
}

// Render lays out d.  Trailing blanks are trimmed from every line.
func Render(d Doc, opts Options) string {
	r := &renderer{opts: opts}
	r.render(d)
	return string(r.out)
}

type renderer struct {
	opts Options
	out  []byte
	pos  int
}

func (r *renderer) render(d Doc) {
	cmds := []command{{mode: modeBreak, doc: d}}
	for len(cmds) > 0 {
		cmd := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]
		switch d := cmd.doc.(type) {
		case text:
			r.write(string(d))
		case concat:
			for k := len(d) - 1; k >= 0; k-- {
				cmds = append(cmds, command{cmd.level, cmd.mode, d[k]})
			}
		case indent:
			cmds = append(cmds, command{cmd.level + 1, cmd.mode, d.contents})
		case *group:
			m := modeBreak
			switch {
			case cmd.mode == modeFlat && !d.broken:
				m = modeFlat
			case !d.broken:
				next := command{cmd.level, modeFlat, d.contents}
				if r.fits(next, cmds, r.opts.Width-r.pos) {
					m = modeFlat
				}
			}
			cmds = append(cmds, command{cmd.level, m, d.contents})
		case line:
			if cmd.mode == modeFlat && !d.hard {
				if !d.soft {
					r.write(" ")
				}
				break
			}
			r.newline(cmd.level)
		case ifBreak:
			next := d.flat
			if cmd.mode == modeBreak {
				next = d.broken
			}
			if next != nil {
				cmds = append(cmds, command{cmd.level, cmd.mode, next})
			}
		case breakParent:
		}
	}
}

// fits reports whether next can be rendered flat within width columns.
// Once next is exhausted the commands that follow it are measured until
// the first line break in break mode.
func (r *renderer) fits(next command, rest []command, width int) bool {
	cmds := []command{next}
	restIdx := len(rest)
	for width >= 0 {
		if len(cmds) == 0 {
			if restIdx == 0 {
				return true
			}
			restIdx--
			cmds = append(cmds, rest[restIdx])
			continue
		}
		cmd := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]
		switch d := cmd.doc.(type) {
		case text:
			s := string(d)
			if i := strings.LastIndexByte(s, '\n'); i >= 0 {
				return width-runewidth.StringWidth(s[:i]) >= 0
			}
			width -= runewidth.StringWidth(s)
		case concat:
			for k := len(d) - 1; k >= 0; k-- {
				cmds = append(cmds, command{cmd.level, cmd.mode, d[k]})
			}
		case indent:
			cmds = append(cmds, command{cmd.level + 1, cmd.mode, d.contents})
		case *group:
			m := cmd.mode
			if d.broken {
				m = modeBreak
			}
			cmds = append(cmds, command{cmd.level, m, d.contents})
		case line:
			if cmd.mode == modeBreak || d.hard {
				return true
			}
			if !d.soft {
				width--
			}
		case ifBreak:
			next := d.flat
			if cmd.mode == modeBreak {
				next = d.broken
			}
			if next != nil {
				cmds = append(cmds, command{cmd.level, cmd.mode, next})
			}
		}
	}
	return false
}

func (r *renderer) write(s string) {
	r.out = append(r.out, s...)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		r.pos = runewidth.StringWidth(s[i+1:])
		return
	}
	r.pos += runewidth.StringWidth(s)
}

func (r *renderer) newline(level int) {
	for n := len(r.out); n > 0 && (r.out[n-1] == ' ' || r.out[n-1] == '\t'); n-- {
		r.out = r.out[:n-1]
	}
	r.out = append(r.out, '\n')
	if r.opts.UseTabs {
		r.out = append(r.out, strings.Repeat("\t", level)...)
	} else {
		r.out = append(r.out, strings.Repeat(" ", level*r.opts.TabWidth)...)
	}
	r.pos = level * r.opts.TabWidth
}
