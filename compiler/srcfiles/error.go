package srcfiles

import (
	"errors"
	"fmt"
	"strings"
)

const (
	LexicalError = "LexicalError"
	SyntaxError  = "SyntaxError"
)

// contextLines is the number of source lines shown above and below the
// offending line.
const contextLines = 2

// Error is a diagnostic pointing into a source text.  Start and End are
// inclusive: End is the position of the last offending character.
type Error struct {
	Kind  string
	Msg   string
	Start Position
	End   Position
	file  *File
}

// MakeError builds the diagnostic for msg at start..end of text.  Every
// lexer and parser error is built here so that the rendering is uniform.
func MakeError(text, kind, msg string, start, end Position) *Error {
	return &Error{
		Kind:  kind,
		Msg:   msg,
		Start: start,
		End:   end,
		file:  NewFile(text),
	}
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Msg)
	if e.file == nil || !e.Start.IsValid() {
		return b.String()
	}
	fmt.Fprintf(&b, " at line %d, column %d:\n", e.Start.Line, e.Start.Column)
	b.WriteString(e.Context())
	return b.String()
}

// Context renders the source lines around the error with a "> " marker on
// the offending line and a caret line under the offending span.
func (e *Error) Context() string {
	first := max(1, e.Start.Line-contextLines)
	last := min(e.file.NumLines(), e.Start.Line+contextLines)
	width := len(fmt.Sprint(last))
	var b strings.Builder
	for n := first; n <= last; n++ {
		line := e.file.Line(n)
		marker := "  "
		if n == e.Start.Line {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%*d | %s\n", marker, width, n, line)
		if n == e.Start.Line {
			fmt.Fprintf(&b, "  %s | %s%s\n", strings.Repeat(" ", width),
				strings.Repeat(" ", e.Start.Column-1), strings.Repeat("^", e.span(line)))
		}
	}
	return b.String()
}

func (e *Error) span(line string) int {
	n := 1
	if e.End.IsValid() && e.End.Offset > e.Start.Offset {
		n = e.End.Offset - e.Start.Offset + 1
	}
	if rest := len(line) - e.Start.Column + 1; n > rest {
		n = max(rest, 1)
	}
	return n
}

// IsSyntax reports whether err is a syntax diagnostic.
func IsSyntax(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == SyntaxError
}

// IsLexical reports whether err is a lexical diagnostic.
func IsLexical(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == LexicalError
}
