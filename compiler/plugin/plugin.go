// Package plugin defines the contract for passes that rewrite a parsed
// program before it is formatted.  A plugin typically walks the tree with
// traverse.Walk and splices nodes built with the ast constructors into
// statement lists.  Constructed nodes have a zero Loc.
//
// A program must not be shared between plugins running concurrently.
package plugin

import "github.com/brimdata/vcl/compiler/ast"

type Func func(*ast.Program)

// Apply runs plugins over p in order.
func Apply(p *ast.Program, plugins ...Func) {
	for _, fn := range plugins {
		fn(p)
	}
}
