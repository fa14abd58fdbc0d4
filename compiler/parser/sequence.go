package parser

import (
	"fmt"

	"github.com/brimdata/vcl/compiler/ast"
)

type seqConfig struct {
	until     string // closing symbol, left unconsumed; empty means end of input
	delimiter string // required between elements
	semi      bool   // ";" required after each element
}

// sequence parses elements until the closing symbol and attaches the
// comments around them.  Comments before an element are leading, comments
// inside it or on its last line are trailing, and comments left over at
// the closing symbol are returned for the enclosing node's inner slot.
func sequence[T ast.Node](p *parser, cfg seqConfig, parse func() (T, error)) ([]T, []*ast.Comment, error) {
	list := []T{}
	for {
		tok, err := p.peek()
		if err != nil {
			if cfg.until == "" {
				break
			}
			return nil, nil, err
		}
		if cfg.until != "" && tok.is(SymbolToken, cfg.until) {
			break
		}
		leading := p.drainComments()
		elem, err := parse()
		if err != nil {
			return nil, nil, err
		}
		switch {
		case cfg.semi:
			if _, err := p.expect(";"); err != nil {
				return nil, nil, err
			}
		case cfg.delimiter != "":
			next, err := p.peek()
			if err != nil {
				return nil, nil, err
			}
			if next.is(SymbolToken, cfg.delimiter) {
				p.take()
			} else if !next.is(SymbolToken, cfg.until) {
				return nil, nil, p.unexpected(next, fmt.Sprintf("%q or %q", cfg.delimiter, cfg.until))
			}
		}
		comments := elem.Attached()
		comments.Leading = append(comments.Leading, leading...)
		line := p.current().Loc.Last.Line
		p.peek()
		var rest []*ast.Comment
		for _, c := range p.drainComments() {
			if c.Pos().Offset <= elem.End().Offset || c.Pos().Line == line {
				comments.Trailing = append(comments.Trailing, c)
			} else {
				rest = append(rest, c)
			}
		}
		p.pending = rest
		list = append(list, elem)
	}
	return list, p.drainComments(), nil
}
