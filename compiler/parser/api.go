// Package parser turns VCL source text into an ast.Program.  Parsing stops
// at the first error, which is always a *srcfiles.Error carrying a
// caret-annotated excerpt of the source.
package parser

import (
	"errors"

	"github.com/brimdata/vcl/compiler/ast"
	"github.com/brimdata/vcl/compiler/srcfiles"
)

// Parse parses a complete VCL program.  Comments are attached to the
// nearest node; comments left over at the end of the file become the
// program's inner comments.
func Parse(text string) (*ast.Program, error) {
	p, err := newParser(text)
	if err != nil {
		return nil, err
	}
	body, inner, err := p.parseStatements("")
	if err != nil {
		return nil, diagnostic(err)
	}
	program := &ast.Program{
		Kind: "Program",
		Body: body,
		Loc:  ast.NewLoc(srcfiles.Position{Offset: 0, Line: 1, Column: 1}, srcfiles.NewFile(text).Position(len(text))),
	}
	program.Inner = inner
	return program, nil
}

// ParseExpr parses text as a single expression optionally terminated by
// ";".  Comments are dropped.
func ParseExpr(text string) (ast.Expr, error) {
	p, err := newParser(text)
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, diagnostic(err)
	}
	if p.nextIs(";") {
		p.take()
	}
	if tok, err := p.peek(); err == nil {
		return nil, diagnostic(p.unexpected(tok, "end of expression"))
	}
	return expr, nil
}

func newParser(text string) (*parser, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	return &parser{newCursor(text, tokens)}, nil
}

// IsIncomplete reports whether err means the text ended before the
// statement or block it started was closed.
func IsIncomplete(err error) bool {
	var e *srcfiles.Error
	return errors.As(err, &e) && e.Kind == srcfiles.SyntaxError && e.Msg == unexpectedEOF
}
