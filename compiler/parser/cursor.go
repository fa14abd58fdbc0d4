package parser

import (
	"errors"
	"fmt"

	"github.com/brimdata/vcl/compiler/ast"
	"github.com/brimdata/vcl/compiler/srcfiles"
)

// cursor is a forward reader over the token list with checkpoints for
// backtracking.  Comment tokens are invisible to the grammar: reading or
// peeking past one moves it to the pending list, where the sequence parser
// collects it for attachment.  A comment is moved at most once even when
// the cursor is rewound over it.
type cursor struct {
	text     string
	tokens   []Token
	next     int // index of the next token to examine
	last     int // index of the last meaningful token consumed or -1
	siphoned int // comments below this index have been moved to pending
	pending  []*ast.Comment
}

func newCursor(text string, tokens []Token) *cursor {
	return &cursor{text: text, tokens: tokens, last: -1}
}

func (c *cursor) siphon(i int) {
	if i >= c.siphoned {
		tok := c.tokens[i]
		c.pending = append(c.pending, &ast.Comment{Text: tok.Value, Loc: tok.Loc})
		c.siphoned = i + 1
	}
}

// read returns the next meaningful token and advances past it.
func (c *cursor) read() (Token, error) {
	for c.next < len(c.tokens) {
		i := c.next
		c.next++
		if c.tokens[i].Kind == CommentToken {
			c.siphon(i)
			continue
		}
		c.last = i
		return c.tokens[i], nil
	}
	return Token{}, c.eof()
}

// peek returns the next meaningful token without consuming it.  Comments in
// front of it are consumed.
func (c *cursor) peek() (Token, error) {
	for c.next < len(c.tokens) {
		if c.tokens[c.next].Kind != CommentToken {
			return c.tokens[c.next], nil
		}
		c.siphon(c.next)
		c.next++
	}
	return Token{}, c.eof()
}

func (c *cursor) take() error {
	_, err := c.read()
	return err
}

func (c *cursor) atEnd() bool {
	_, err := c.peek()
	return err != nil
}

// nextIs reports whether the next meaningful token is the symbol or
// operator s.
func (c *cursor) nextIs(s string) bool {
	tok, err := c.peek()
	return err == nil && (tok.Kind == SymbolToken || tok.Kind == OperatorToken) && tok.Value == s
}

func (c *cursor) nextIsIdent(s string) bool {
	tok, err := c.peek()
	return err == nil && tok.is(IdentToken, s)
}

func (c *cursor) mark() int {
	return c.next
}

func (c *cursor) jump(n int) {
	c.next = n
	c.last = -1
	for i := n - 1; i >= 0; i-- {
		if c.tokens[i].Kind != CommentToken {
			c.last = i
			break
		}
	}
}

// current returns the last meaningful token consumed.
func (c *cursor) current() Token {
	if c.last < 0 {
		return Token{}
	}
	return c.tokens[c.last]
}

// finish returns the syntactic span from start to the end of the last
// consumed token.
func (c *cursor) finish(start ast.Position) ast.Loc {
	return ast.NewLoc(start, c.current().Loc.Last)
}

func (c *cursor) drainComments() []*ast.Comment {
	comments := c.pending
	c.pending = nil
	return comments
}

// expect consumes the symbol or operator value.
func (c *cursor) expect(value string) (Token, error) {
	tok, err := c.read()
	if err != nil {
		return tok, err
	}
	if tok.Value != value || tok.Kind != SymbolToken && tok.Kind != OperatorToken {
		return tok, c.unexpected(tok, fmt.Sprintf("%q", value))
	}
	return tok, nil
}

func (c *cursor) expectIdent() (*ast.Identifier, error) {
	tok, err := c.read()
	if err != nil {
		return nil, err
	}
	if tok.Kind != IdentToken {
		return nil, c.unexpected(tok, "identifier")
	}
	return &ast.Identifier{Kind: "Identifier", Name: tok.Value, Loc: tok.Loc}, nil
}

const unexpectedEOF = "Unexpected EOF"

func (c *cursor) eof() error {
	file := srcfiles.NewFile(c.text)
	pos := file.Position(len(c.text))
	return &grammarError{srcfiles.MakeError(c.text, srcfiles.SyntaxError, unexpectedEOF, pos, pos)}
}

func (c *cursor) unexpected(tok Token, want string) error {
	return c.grammarError(tok, fmt.Sprintf("Expected %s but got %q", want, tok.Value))
}

// grammarError reports a token that does not fit the grammar at this
// point.  Speculative parses rewind on these and only these.
func (c *cursor) grammarError(tok Token, msg string) error {
	return &grammarError{srcfiles.MakeError(c.text, srcfiles.SyntaxError, msg, tok.Loc.First, tok.Loc.Last)}
}

// syntaxError reports a well-formed token with an invalid value such as a
// malformed number or address.
func (c *cursor) syntaxError(tok Token, msg string) error {
	return srcfiles.MakeError(c.text, srcfiles.SyntaxError, msg, tok.Loc.First, tok.Loc.Last)
}

type grammarError struct {
	err *srcfiles.Error
}

func (g *grammarError) Error() string { return g.err.Error() }
func (g *grammarError) Unwrap() error { return g.err }

func isGrammar(err error) bool {
	var g *grammarError
	return errors.As(err, &g)
}

// diagnostic strips the grammarError wrapper so callers always see a
// *srcfiles.Error.
func diagnostic(err error) error {
	var g *grammarError
	if errors.As(err, &g) {
		return g.err
	}
	return err
}
