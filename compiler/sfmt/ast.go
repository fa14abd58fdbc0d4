// Package sfmt formats VCL syntax trees as source text.
package sfmt

import (
	"strconv"

	"github.com/brimdata/vcl/compiler/ast"
	"github.com/brimdata/vcl/pkg/doc"
)

// AST formats p.  The result always ends in a newline.
func AST(p *ast.Program, opts Options) string {
	return opts.render(Doc(p, opts.Comments))
}

// ASTExpr formats a single expression without a trailing newline.
func ASTExpr(e ast.Expr, opts Options) string {
	c := &canon{}
	return opts.render(c.expr(e))
}

// Doc returns the document for p.  Extra comments are printed as a block
// at the top.
func Doc(p *ast.Program, extra []*ast.Comment) doc.Doc {
	c := &canon{}
	var docs []doc.Doc
	for _, cmt := range extra {
		docs = append(docs, comment(cmt), doc.HardLine)
	}
	if len(extra) > 0 && (len(p.Body) > 0 || len(p.Inner) > 0) {
		docs = append(docs, doc.HardLine)
	}
	for k, s := range p.Body {
		if k > 0 {
			docs = append(docs, doc.HardLine, doc.HardLine)
		}
		docs = append(docs, c.stmt(s))
	}
	if len(p.Inner) > 0 {
		if len(p.Body) > 0 {
			docs = append(docs, doc.HardLine)
		}
		for k, cmt := range p.Inner {
			if k > 0 || len(p.Body) > 0 {
				docs = append(docs, doc.HardLine)
			}
			docs = append(docs, comment(cmt))
		}
	}
	if len(docs) > 0 {
		docs = append(docs, doc.HardLine)
	}
	return concat(docs...)
}

type canon struct{}

// stmt prints a statement with its attached comments.
func (c *canon) stmt(s ast.Stmt) doc.Doc {
	return element(s, c.bareStmt(s), doc.Empty)
}

func (c *canon) bareStmt(s ast.Stmt) doc.Doc {
	switch s := s.(type) {
	case *ast.ExpressionStatement:
		return concat(c.expr(s.Body), text(";"))
	case *ast.IncludeStatement:
		return concat(text("include "), c.expr(s.Module), text(";"))
	case *ast.ImportStatement:
		return concat(text("import "), c.expr(s.Module), text(";"))
	case *ast.CallStatement:
		return concat(text("call "), c.expr(s.Subroutine), text(";"))
	case *ast.DeclareStatement:
		d := text("declare ")
		if s.Local {
			d = concat(d, text("local "))
		}
		return concat(d, c.expr(s.ID), text(" "), c.expr(s.ValueType), text(";"))
	case *ast.AddStatement:
		return c.assignment("add", s.Left, s.Operator, s.Right)
	case *ast.SetStatement:
		return c.assignment("set", s.Left, s.Operator, s.Right)
	case *ast.UnsetStatement:
		return concat(text("unset "), c.expr(s.ID), text(";"))
	case *ast.ReturnStatement:
		return text("return(" + s.Action + ");")
	case *ast.ErrorStatement:
		d := concat(text("error "), c.expr(s.Status))
		if s.Message != nil {
			d = concat(d, text(" "), c.expr(s.Message))
		}
		return concat(d, text(";"))
	case *ast.RestartStatement:
		return text("restart;")
	case *ast.SyntheticStatement:
		return concat(text("synthetic "), c.expr(s.Response), text(";"))
	case *ast.LogStatement:
		return concat(text("log "), c.expr(s.Content), text(";"))
	case *ast.IfStatement:
		return c.ifStmt(s)
	case *ast.SubroutineStatement:
		return concat(text("sub "), c.expr(s.ID), text(" "), c.block(s.Body, s.Inner))
	case *ast.AclStatement:
		var entries []doc.Doc
		for _, ip := range s.Body {
			entries = append(entries, element(ip, c.expr(ip), text(";")))
		}
		return concat(text("acl "), c.expr(s.ID), text(" "), braces(entries, s.Inner))
	case *ast.BackendStatement:
		return concat(text("backend "), c.expr(s.ID), text(" "), c.definitions(s.Body, s.Inner))
	case *ast.TableStatement:
		d := concat(text("table "), c.expr(s.ID))
		if s.ValueType != nil {
			d = concat(d, text(" "), c.expr(s.ValueType))
		}
		var entries []doc.Doc
		for k, def := range s.Body {
			sep := doc.Empty
			if k < len(s.Body)-1 || s.TrailingComma {
				sep = text(",")
			}
			entries = append(entries, element(def, concat(text(def.Key+": "), c.expr(def.Value)), sep))
		}
		return concat(d, text(" "), braces(entries, s.Inner))
	}
	panic("sfmt: unknown statement")
}

func (c *canon) assignment(keyword string, left ast.Expr, op string, right ast.Expr) doc.Doc {
	return doc.Group(text(keyword+" "), c.expr(left), text(" "+op+" "), c.expr(right), text(";"))
}

func (c *canon) ifStmt(s *ast.IfStatement) doc.Doc {
	test := doc.Group(text("if ("), doc.Indent(doc.SoftLine, c.expr(s.Test)), doc.SoftLine, text(")"))
	d := concat(test, text(" "), c.block(s.Consequent, s.Inner))
	switch {
	case s.Alternative != nil:
		alt := s.Alternative
		d = concat(d, text(" else "), leading(alt), c.ifStmt(alt), trailing(alt))
	case s.Else != nil || len(s.ElseInner) > 0:
		d = concat(d, text(" else "), c.block(s.Else, s.ElseInner))
	}
	return d
}

func (c *canon) block(body []ast.Stmt, comments []*ast.Comment) doc.Doc {
	var docs []doc.Doc
	for _, s := range body {
		docs = append(docs, c.stmt(s))
	}
	return braces(docs, comments)
}

// braces prints entries one per line inside an indented block.
func braces(entries []doc.Doc, comments []*ast.Comment) doc.Doc {
	if len(entries) == 0 && len(comments) == 0 {
		return text("{}")
	}
	var body []doc.Doc
	for _, e := range entries {
		body = append(body, doc.HardLine, e)
	}
	body = append(body, inner(comments))
	return concat(text("{"), doc.Indent(body...), doc.HardLine, text("}"))
}

func (c *canon) definitions(defs []*ast.BackendDefinition, comments []*ast.Comment) doc.Doc {
	var entries []doc.Doc
	for _, def := range defs {
		var body doc.Doc
		if def.Value != nil {
			body = concat(text("."+def.Key+" = "), c.expr(def.Value), text(";"))
		} else {
			body = concat(text("."+def.Key+" = "), c.definitions(def.Definitions, def.Inner))
		}
		entries = append(entries, element(def, body, doc.Empty))
	}
	return braces(entries, comments)
}

func (c *canon) expr(e ast.Expr) doc.Doc {
	switch e := e.(type) {
	case *ast.BooleanLiteral:
		return text(strconv.FormatBool(e.Value))
	case *ast.StringLiteral:
		return text(e.Value)
	case *ast.MultilineLiteral:
		return text(e.Value)
	case *ast.DurationLiteral:
		return text(e.Value)
	case *ast.NumericLiteral:
		return text(e.Value)
	case *ast.IpLiteral:
		s := `"` + e.Value + `"`
		if e.Cidr != nil {
			s += "/" + strconv.Itoa(*e.Cidr)
		}
		return text(s)
	case *ast.Identifier:
		return text(e.Name)
	case *ast.Member:
		return c.member(e)
	case *ast.ValuePair:
		return concat(c.expr(e.Base), text(":"), c.expr(e.Name))
	case *ast.BooleanExpression:
		return parens(c.expr(e.Body))
	case *ast.UnaryExpression:
		return concat(text(e.Operator), c.expr(e.Argument))
	case *ast.FunCallExpression:
		return c.call(e)
	case *ast.ConcatExpression:
		if len(e.Body) == 0 {
			return doc.Empty
		}
		parts := []doc.Doc{c.expr(e.Body[0])}
		for k, part := range e.Body[1:] {
			if k < len(e.Plus) && e.Plus[k] {
				parts = append(parts, text(" +"))
			}
			parts = append(parts, doc.Line, c.expr(part))
		}
		return doc.Group(doc.Indent(parts...))
	case *ast.BinaryExpression:
		return c.binary(e.Left, e.Operator, e.Right)
	case *ast.LogicalExpression:
		return c.binary(e.Left, e.Operator, e.Right)
	}
	panic("sfmt: unknown expression")
}

// member prints a.b.c.  Chains longer than one member break before each
// dot as a unit.
func (c *canon) member(m *ast.Member) doc.Doc {
	var names []*ast.Identifier
	var base ast.Expr = m
	for {
		mem, ok := base.(*ast.Member)
		if !ok {
			break
		}
		names = append(names, mem.Member)
		base = mem.Base
	}
	if len(names) == 1 {
		return concat(c.expr(base), text("."), c.expr(m.Member))
	}
	var tail []doc.Doc
	for k := len(names) - 1; k >= 0; k-- {
		tail = append(tail, doc.SoftLine, text("."+names[k].Name))
	}
	return doc.Group(c.expr(base), doc.Indent(tail...))
}

func (c *canon) call(call *ast.FunCallExpression) doc.Doc {
	callee := c.expr(call.Callee)
	if len(call.Arguments) == 0 && len(call.Inner) == 0 {
		return concat(callee, text("()"))
	}
	var args []doc.Doc
	for k, arg := range call.Arguments {
		if k < len(call.Arguments)-1 {
			args = append(args, element(arg, c.expr(arg), text(",")), doc.Line)
		} else {
			args = append(args, element(arg, c.expr(arg), doc.IfBreak(text(","), doc.Empty)))
		}
	}
	return doc.Group(
		callee,
		text("("),
		doc.Indent(doc.SoftLine, concat(args...), inner(call.Inner)),
		doc.SoftLine,
		text(")"),
	)
}

// binary prints left op right, breaking before the right operand.  A
// comparison nested on the left of a comparison and an && operand of ||
// are parenthesized.
func (c *canon) binary(left ast.Expr, op string, right ast.Expr) doc.Doc {
	l, r := c.expr(left), c.expr(right)
	if _, ok := left.(*ast.BinaryExpression); ok && op != "&&" && op != "||" {
		l = parens(l)
	}
	if op == "||" {
		if isAnd(left) {
			l = parens(l)
		}
		if isAnd(right) {
			r = parens(r)
		}
	}
	return doc.Group(l, text(" "+op), doc.Indent(doc.Line, r))
}

func isAnd(e ast.Expr) bool {
	logical, ok := e.(*ast.LogicalExpression)
	return ok && logical.Operator == "&&"
}

func parens(d doc.Doc) doc.Doc {
	return doc.Group(text("("), doc.Indent(doc.SoftLine, d), doc.SoftLine, text(")"))
}
