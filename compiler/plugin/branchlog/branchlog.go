// Package branchlog instruments a program with a log statement at the head
// of every if branch so that the branches taken at runtime show up in the
// logs, e.g.,
//
//	log "BRANCH vcl_recv:12 if";
package branchlog

import (
	"fmt"

	"github.com/brimdata/vcl/compiler/ast"
	"github.com/brimdata/vcl/compiler/plugin"
	"github.com/brimdata/vcl/compiler/traverse"
)

const DefaultTag = "BRANCH"

// New returns a plugin that logs with tag.
func New(tag string) plugin.Func {
	if tag == "" {
		tag = DefaultTag
	}
	return func(p *ast.Program) {
		traverse.Walk(p, traverse.HandlerFunc(func(path *traverse.Path) {
			s, ok := path.Node.(*ast.IfStatement)
			if !ok || s.Loc.IsSynthetic() {
				return
			}
			where := fmt.Sprintf("%s:%d", subroutine(path), s.Pos().Line)
			s.Consequent = prepend(s.Consequent, message(tag, where, "if"))
			if s.Alternative == nil && s.Else != nil {
				s.Else = prepend(s.Else, message(tag, where, "else"))
			}
		}))
	}
}

func message(tag, where, branch string) ast.Stmt {
	return ast.NewLogStatement(ast.NewStringLiteral(fmt.Sprintf("%s %s %s", tag, where, branch)))
}

func prepend(list []ast.Stmt, s ast.Stmt) []ast.Stmt {
	return append([]ast.Stmt{s}, list...)
}

// subroutine returns the name of the subroutine enclosing path or "-" for
// a branch at the top level.
func subroutine(path *traverse.Path) string {
	for p := path; p != nil; p = p.ParentPath {
		if sub, ok := p.Node.(*ast.SubroutineStatement); ok {
			return sub.ID.Name
		}
	}
	return "-"
}
