package sfmt

import (
	"github.com/brimdata/vcl/compiler/ast"
	"github.com/brimdata/vcl/pkg/doc"
)

// Options controls the layout of formatted code.
type Options struct {
	PrintWidth int  `yaml:"print-width"`
	TabWidth   int  `yaml:"tab-width"`
	UseTabs    bool `yaml:"use-tabs"`
	// Comments are printed as a block at the top of the program in
	// addition to the comments attached to its nodes.
	Comments []*ast.Comment `yaml:"-"`
}

func DefaultOptions() Options {
	return Options{PrintWidth: 80, TabWidth: 2}
}

func (o Options) render(d doc.Doc) string {
	if o.PrintWidth <= 0 {
		o.PrintWidth = 80
	}
	if o.TabWidth <= 0 {
		o.TabWidth = 2
	}
	return doc.Render(d, doc.Options{Width: o.PrintWidth, TabWidth: o.TabWidth, UseTabs: o.UseTabs})
}

func text(s string) doc.Doc {
	return doc.Text(s)
}

func concat(docs ...doc.Doc) doc.Doc {
	return doc.Concat(docs...)
}

// comment prints one comment.  A line comment runs to the end of the line
// so it breaks whatever group encloses it.
func comment(c *ast.Comment) doc.Doc {
	if c.IsLine() {
		return concat(text(c.Text), doc.BreakParent)
	}
	return text(c.Text)
}

func leading(n ast.Node) doc.Doc {
	var docs []doc.Doc
	for _, c := range n.Attached().Leading {
		docs = append(docs, comment(c), doc.HardLine)
	}
	return concat(docs...)
}

// trailing prints the comments that follow n on its line.  A line comment
// runs to the end of the line so anything after it starts a new one.
func trailing(n ast.Node) doc.Doc {
	var docs []doc.Doc
	var afterLine bool
	for _, c := range n.Attached().Trailing {
		if afterLine {
			docs = append(docs, doc.HardLine)
		} else {
			docs = append(docs, text(" "))
		}
		docs = append(docs, comment(c))
		afterLine = c.IsLine()
	}
	return concat(docs...)
}

// inner prints the comments left over at the end of a body, each on its
// own line.
func inner(comments []*ast.Comment) doc.Doc {
	var docs []doc.Doc
	for _, c := range comments {
		docs = append(docs, doc.HardLine, comment(c))
	}
	return concat(docs...)
}

// element prints a list element with its separator placed before any
// trailing comments.
func element(n ast.Node, body, sep doc.Doc) doc.Doc {
	return concat(leading(n), body, sep, trailing(n))
}
