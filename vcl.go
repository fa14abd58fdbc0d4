// Package vcl parses, transforms and formats Varnish/Fastly VCL.
//
//	p, err := vcl.Parse(src)
//	if err != nil {
//		return err // a *srcfiles.Error with a caret-annotated excerpt
//	}
//	out := vcl.Generate(p, sfmt.DefaultOptions())
//	fmt.Print(out.Code)
//
// The pipeline is synchronous and holds no state between calls.  A
// Program may be transformed by one pass at a time.
package vcl

import (
	"encoding/json"

	"github.com/brimdata/vcl/compiler/ast"
	"github.com/brimdata/vcl/compiler/parser"
	"github.com/brimdata/vcl/compiler/plugin"
	"github.com/brimdata/vcl/compiler/sfmt"
	"github.com/brimdata/vcl/compiler/traverse"
)

// Parse parses a program.  The error, if any, is a *srcfiles.Error of
// kind LexicalError or SyntaxError.
func Parse(text string) (*ast.Program, error) {
	return parser.Parse(text)
}

func ParseExpr(text string) (ast.Expr, error) {
	return parser.ParseExpr(text)
}

func Tokenize(text string) ([]parser.Token, error) {
	return parser.Tokenize(text)
}

type Result struct {
	Code string `json:"code"`
}

// Generate formats p.  p must have come from Parse or the ast
// constructors.
func Generate(p *ast.Program, opts sfmt.Options) Result {
	return Result{Code: sfmt.AST(p, opts)}
}

// Format parses text, applies plugins and formats the result.
func Format(text string, opts sfmt.Options, plugins ...plugin.Func) (string, error) {
	p, err := Parse(text)
	if err != nil {
		return "", err
	}
	plugin.Apply(p, plugins...)
	return Generate(p, opts).Code, nil
}

func Traverse(n ast.Node, h traverse.Handler) {
	traverse.Walk(n, h)
}

// Serialize returns the JSON form of n.
func Serialize(n ast.Node) ([]byte, error) {
	return json.Marshal(n)
}

// Hydrate rebuilds a node from the output of Serialize.
func Hydrate(b []byte) (ast.Node, error) {
	return ast.UnmarshalNode(b)
}
