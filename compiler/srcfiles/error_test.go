package srcfiles_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/brimdata/vcl/compiler/srcfiles"
	"github.com/stretchr/testify/assert"
)

func TestPosition(t *testing.T) {
	f := srcfiles.NewFile("ab\ncd\n")
	assert.Equal(t, 3, f.NumLines())
	assert.Equal(t, srcfiles.Position{Offset: 0, Line: 1, Column: 1}, f.Position(0))
	assert.Equal(t, srcfiles.Position{Offset: 4, Line: 2, Column: 2}, f.Position(4))
	assert.Equal(t, srcfiles.Position{Offset: 6, Line: 3, Column: 1}, f.Position(100))
	assert.False(t, f.Position(-1).IsValid())
	assert.Equal(t, "cd", f.Line(2))
	assert.Equal(t, "", f.Line(9))
}

func TestAdvance(t *testing.T) {
	p := srcfiles.Position{Offset: 2, Line: 1, Column: 3}
	assert.Equal(t, srcfiles.Position{Offset: 5, Line: 1, Column: 6}, p.Advance("abc"))
	assert.Equal(t, srcfiles.Position{Offset: 7, Line: 3, Column: 2}, p.Advance("a\nb\nc"))
}

func TestContext(t *testing.T) {
	text := "one\ntwo\nthree\nfour\nfive\nsix"
	f := srcfiles.NewFile(text)
	err := srcfiles.MakeError(text, srcfiles.SyntaxError, "bad", f.Position(15), f.Position(17))
	expected := `SyntaxError: bad at line 4, column 2:
  2 | two
  3 | three
> 4 | four
    |  ^^^
  5 | five
  6 | six
`
	assert.Equal(t, expected, err.Error())
}

func TestSpanClipped(t *testing.T) {
	text := "abc"
	f := srcfiles.NewFile(text)
	err := srcfiles.MakeError(text, srcfiles.LexicalError, "x", f.Position(1), srcfiles.Position{Offset: 50, Line: 3, Column: 1})
	assert.Equal(t, "LexicalError: x at line 1, column 2:\n> 1 | abc\n    |  ^^\n", err.Error())
}

func TestKinds(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", srcfiles.MakeError("", srcfiles.SyntaxError, "x", srcfiles.Position{}, srcfiles.Position{}))
	assert.True(t, srcfiles.IsSyntax(err))
	assert.False(t, srcfiles.IsLexical(err))
	assert.False(t, srcfiles.IsSyntax(errors.New("x")))
	assert.Equal(t, "wrapped: SyntaxError: x", err.Error())
}
