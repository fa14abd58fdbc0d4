// Package ast declares the types used to represent syntax trees for VCL
// programs.
package ast

// This module is derived from the GO AST design pattern in
// https://golang.org/pkg/go/ast/
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

import (
	"strings"

	"github.com/brimdata/vcl/compiler/srcfiles"
)

type Position = srcfiles.Position

type Node interface {
	Pos() Position // Position of the first character belonging to the node.
	End() Position // Position of the last character belonging to the node.
	Attached() *Comments
}

// Loc is the syntactic span of a node, from its first to its last consumed
// token.  Nodes built by passes rather than the parser carry the zero Loc.
type Loc struct {
	First Position `json:"start"`
	Last  Position `json:"end"`
}

func NewLoc(pos, end Position) Loc {
	return Loc{pos, end}
}

func (l Loc) Pos() Position { return l.First }
func (l Loc) End() Position { return l.Last }

// IsSynthetic is true for nodes with no source origin.
func (l Loc) IsSynthetic() bool { return !l.First.IsValid() }

// Comment is a comment token attached to a node.  Text includes the
// comment delimiters.
type Comment struct {
	Text string `json:"text"`
	Loc  `json:"loc"`
}

// IsLine is true for "#" and "//" comments, which run to the end of the line.
func (c *Comment) IsLine() bool {
	return strings.HasPrefix(c.Text, "#") || strings.HasPrefix(c.Text, "//")
}

// Comments holds the comment slots populated by the parser.  Leading
// comments precede a node, trailing comments follow it on its last line
// and inner comments sit before the closing brace of a block.
type Comments struct {
	Leading  []*Comment `json:"leadingComments,omitempty"`
	Inner    []*Comment `json:"innerComments,omitempty"`
	Trailing []*Comment `json:"trailingComments,omitempty"`
}

func (c *Comments) Attached() *Comments { return c }

func (c *Comments) Empty() bool {
	return len(c.Leading) == 0 && len(c.Inner) == 0 && len(c.Trailing) == 0
}
