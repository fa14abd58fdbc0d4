package srcfiles

import (
	"sort"
	"strings"
)

// File holds the line offsets of one source text.
type File struct {
	Text  string
	lines []int
}

func NewFile(text string) *File {
	lines := []int{0}
	for offset := 0; offset < len(text); offset++ {
		if text[offset] == '\n' {
			lines = append(lines, offset+1)
		}
	}
	return &File{Text: text, lines: lines}
}

// Position maps a byte offset to a Position.  Offsets past the end of the
// text map to the position just after the last character.
func (f *File) Position(offset int) Position {
	if offset < 0 {
		return Position{-1, -1, -1}
	}
	if offset > len(f.Text) {
		offset = len(f.Text)
	}
	i := searchLine(f.lines, offset)
	return Position{
		Offset: offset,
		Line:   i + 1,
		Column: offset - f.lines[i] + 1,
	}
}

// NumLines returns the number of lines in the text.
func (f *File) NumLines() int {
	return len(f.lines)
}

// Line returns the text of the 1-based line n without its newline.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lines) {
		return ""
	}
	start := f.lines[n-1]
	end := len(f.Text)
	if n < len(f.lines) {
		end = f.lines[n]
	}
	return strings.TrimRight(f.Text[start:end], "\r\n")
}

func searchLine(lines []int, offset int) int {
	return sort.Search(len(lines), func(i int) bool { return lines[i] > offset }) - 1
}

type Position struct {
	Offset int `json:"offset"` // 0-based byte offset into the source text.
	Line   int `json:"line"`   // 1-based line number.
	Column int `json:"column"` // 1-based column number.
}

func (p Position) IsValid() bool { return p.Line > 0 }

// Advance returns the position following text that starts at p.
func (p Position) Advance(text string) Position {
	p.Offset += len(text)
	if n := strings.Count(text, "\n"); n > 0 {
		p.Line += n
		p.Column = len(text) - strings.LastIndexByte(text, '\n')
		return p
	}
	p.Column += len(text)
	return p
}
