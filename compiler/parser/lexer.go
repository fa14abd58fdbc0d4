package parser

import (
	"regexp"
	"strings"

	"github.com/brimdata/vcl/compiler/ast"
	"github.com/brimdata/vcl/compiler/srcfiles"
)

type TokenKind string

const (
	IdentToken    TokenKind = "identifier"
	SymbolToken   TokenKind = "symbol"
	OperatorToken TokenKind = "operator"
	StringToken   TokenKind = "string"
	NumericToken  TokenKind = "numeric"
	BooleanToken  TokenKind = "boolean"
	CommentToken  TokenKind = "comment"
)

type Token struct {
	Kind  TokenKind `json:"kind"`
	Value string    `json:"value"`
	Loc   ast.Loc   `json:"loc"`
}

func (t Token) is(kind TokenKind, value string) bool {
	return t.Kind == kind && t.Value == value
}

var symbols = map[string]bool{
	";": true, ":": true, ".": true, ",": true, "/": true,
	"{": true, "}": true, "(": true, ")": true, "+": true,
}

var operators = map[string]bool{
	"==": true, "!=": true, ">=": true, ">": true, "<=": true, "<": true,
	"~": true, "!~": true, "!": true, "||": true, "&&": true,
	"=": true, "*=": true, "+=": true, "-=": true, "/=": true, "||=": true, "&&=": true,
}

// fragmentPattern splits source text into candidate tokens.  Alternatives
// are tried in order so comments and strings win over the symbols they
// start with.  Text matched by no alternative surfaces as a gap between
// matches and is rejected by classify.
var fragmentPattern = regexp.MustCompile(strings.Join([]string{
	`[ \t\r]+`,
	`\n`,
	`(?:#|//)[^\n]*`,
	`(?s:/\*.*?\*/)`,
	`"[^"\n]*"?`,
	`(?s:\{".*?"\})`,
	`[A-Za-z][A-Za-z0-9_-]*`,
	`\.?[0-9][0-9.]*`,
	`\|\|=|&&=|==|!=|>=|<=|!~|\|\||&&|\*=|\+=|-=|/=`,
	`[;:.,/{}()+<>~!=]`,
}, "|"))

var (
	identPattern   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	numericPattern = regexp.MustCompile(`^[0-9.]+$`)
)

// Tokenize splits text into tokens.  Whitespace is dropped and comments are
// kept as CommentToken.  The first malformed fragment aborts with a
// LexicalError.
func Tokenize(text string) ([]Token, error) {
	l := &lexer{text: text, pos: srcfiles.Position{Offset: 0, Line: 1, Column: 1}}
	last := 0
	for _, m := range fragmentPattern.FindAllStringIndex(text, -1) {
		if m[0] > last {
			if err := l.fragment(text[last:m[0]]); err != nil {
				return nil, err
			}
		}
		if err := l.fragment(text[m[0]:m[1]]); err != nil {
			return nil, err
		}
		last = m[1]
	}
	if last < len(text) {
		if err := l.fragment(text[last:]); err != nil {
			return nil, err
		}
	}
	return l.tokens, nil
}

type lexer struct {
	text   string
	pos    srcfiles.Position
	tokens []Token
}

func (l *lexer) fragment(s string) error {
	start := l.pos
	next := start.Advance(s)
	l.pos = next
	if strings.Trim(s, " \t\r\n") == "" {
		return nil
	}
	end := srcfiles.Position{Offset: next.Offset - 1, Line: next.Line, Column: next.Column - 1}
	kind, ok := classify(s)
	if !ok {
		return srcfiles.MakeError(l.text, srcfiles.LexicalError, "invalid token", start, end)
	}
	l.tokens = append(l.tokens, Token{Kind: kind, Value: s, Loc: ast.NewLoc(start, end)})
	return nil
}

func classify(s string) (TokenKind, bool) {
	switch {
	case symbols[s]:
		return SymbolToken, true
	case operators[s]:
		return OperatorToken, true
	case s == "true" || s == "false":
		return BooleanToken, true
	case strings.HasPrefix(s, `"`):
		return StringToken, len(s) > 1 && strings.HasSuffix(s, `"`)
	case strings.HasPrefix(s, `{"`):
		return StringToken, true
	case numericPattern.MatchString(s):
		// A numeric run must start with a digit.  The remaining format
		// checks happen when the literal is parsed.
		return NumericToken, s[0] != '.'
	case strings.HasPrefix(s, "#"), strings.HasPrefix(s, "//"), strings.HasPrefix(s, "/*"):
		return CommentToken, true
	default:
		return IdentToken, identPattern.MatchString(s)
	}
}
