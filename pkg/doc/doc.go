// Package doc is a small document algebra for pretty-printing.  A printer
// describes its output as a tree of text, line breaks and groups and the
// renderer decides, group by group, whether the contents fit on the
// remainder of the current line or must be broken.
//
// The design follows Wadler's "A prettier printer" as popularized by the
// JavaScript prettier tool.
package doc

type Doc interface {
	doc()
}

type text string

type concat []Doc

type group struct {
	contents Doc
	broken   bool
}

type indent struct {
	contents Doc
}

type line struct {
	soft bool
	hard bool
}

type ifBreak struct {
	broken Doc
	flat   Doc
}

type breakParent struct{}

func (text) doc()        {}
func (concat) doc()      {}
func (*group) doc()      {}
func (indent) doc()      {}
func (line) doc()        {}
func (ifBreak) doc()     {}
func (breakParent) doc() {}

var (
	// Line renders as a space in flat mode and a newline otherwise.
	Line Doc = line{}
	// SoftLine renders as nothing in flat mode and a newline otherwise.
	SoftLine Doc = line{soft: true}
	// HardLine always renders as a newline and breaks every enclosing
	// group.
	HardLine Doc = line{hard: true}
	// BreakParent breaks every enclosing group.
	BreakParent Doc = breakParent{}
	// Empty renders nothing.
	Empty Doc = concat(nil)
)

func Text(s string) Doc {
	return text(s)
}

func Concat(docs ...Doc) Doc {
	return concat(docs)
}

// Group tries to render docs on one line.  A group containing a hard line
// or BreakParent, directly or through nested groups, is always broken.
func Group(docs ...Doc) Doc {
	var contents Doc = concat(docs)
	return &group{contents: contents, broken: forcesBreak(contents)}
}

// Indent increases the indentation of lines broken within docs.
func Indent(docs ...Doc) Doc {
	return indent{concat(docs)}
}

// IfBreak renders broken when the enclosing group is broken and flat
// otherwise.
func IfBreak(broken, flat Doc) Doc {
	return ifBreak{broken: broken, flat: flat}
}

// Join places sep between each of docs.
func Join(sep Doc, docs []Doc) Doc {
	out := make(concat, 0, 2*len(docs))
	for k, d := range docs {
		if k > 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}
	return out
}

func forcesBreak(d Doc) bool {
	switch d := d.(type) {
	case concat:
		for _, elem := range d {
			if forcesBreak(elem) {
				return true
			}
		}
	case *group:
		return d.broken
	case indent:
		return forcesBreak(d.contents)
	case line:
		return d.hard
	case ifBreak:
		return forcesBreak(d.broken) || forcesBreak(d.flat)
	case breakParent:
		return true
	}
	return false
}
