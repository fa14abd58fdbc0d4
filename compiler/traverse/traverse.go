// Package traverse walks an AST in pre-order and hands each node to a
// Handler together with its path from the root.
package traverse

import (
	"fmt"

	"github.com/brimdata/vcl/compiler/ast"
)

// Path locates a node within the tree being traversed.  InList is true when
// the node is an element of one of its parent's lists, in which case Index
// is its position there.
type Path struct {
	Node       ast.Node
	Parent     ast.Node
	ParentPath *Path
	InList     bool
	Index      int
}

type Handler interface {
	Entry(*Path)
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc func(*Path)

func (f HandlerFunc) Entry(p *Path) { f(p) }

// Walk visits root and its descendants depth-first, calling h.Entry on
// each node before its children.  The children of a node are computed
// after its Entry returns, so Entry may edit the node's own lists.  A nil
// handler walks the tree without visiting it.
func Walk(root ast.Node, h Handler) {
	walk(&Path{Node: root}, h)
}

type child struct {
	node   ast.Node
	inList bool
	index  int
}

func walk(path *Path, h Handler) {
	if h != nil {
		h.Entry(path)
	}
	for _, c := range children(path.Node) {
		walk(&Path{
			Node:       c.node,
			Parent:     path.Node,
			ParentPath: path,
			InList:     c.inList,
			Index:      c.index,
		}, h)
	}
}

type childList []child

func (c *childList) one(n ast.Node) {
	if !isNil(n) {
		*c = append(*c, child{node: n})
	}
}

func list[T ast.Node](c *childList, nodes []T) {
	for k, n := range nodes {
		*c = append(*c, child{node: n, inList: true, index: k})
	}
}

// children returns the child nodes of n in source order.
func children(n ast.Node) []child {
	var c childList
	switch n := n.(type) {
	case *ast.Program:
		list(&c, n.Body)
	case *ast.BooleanLiteral, *ast.StringLiteral, *ast.MultilineLiteral,
		*ast.DurationLiteral, *ast.NumericLiteral, *ast.IpLiteral, *ast.Identifier,
		*ast.RestartStatement, *ast.ReturnStatement:
	case *ast.Member:
		c.one(n.Base)
		c.one(n.Member)
	case *ast.ValuePair:
		c.one(n.Base)
		c.one(n.Name)
	case *ast.BooleanExpression:
		c.one(n.Body)
	case *ast.UnaryExpression:
		c.one(n.Argument)
	case *ast.FunCallExpression:
		c.one(n.Callee)
		list(&c, n.Arguments)
	case *ast.ConcatExpression:
		list(&c, n.Body)
	case *ast.BinaryExpression:
		c.one(n.Left)
		c.one(n.Right)
	case *ast.LogicalExpression:
		c.one(n.Left)
		c.one(n.Right)
	case *ast.ExpressionStatement:
		c.one(n.Body)
	case *ast.IncludeStatement:
		c.one(n.Module)
	case *ast.ImportStatement:
		c.one(n.Module)
	case *ast.CallStatement:
		c.one(n.Subroutine)
	case *ast.DeclareStatement:
		c.one(n.ID)
		c.one(n.ValueType)
	case *ast.AddStatement:
		c.one(n.Left)
		c.one(n.Right)
	case *ast.SetStatement:
		c.one(n.Left)
		c.one(n.Right)
	case *ast.UnsetStatement:
		c.one(n.ID)
	case *ast.ErrorStatement:
		c.one(n.Status)
		c.one(n.Message)
	case *ast.SyntheticStatement:
		c.one(n.Response)
	case *ast.LogStatement:
		c.one(n.Content)
	case *ast.IfStatement:
		c.one(n.Test)
		list(&c, n.Consequent)
		c.one(n.Alternative)
		list(&c, n.Else)
	case *ast.SubroutineStatement:
		c.one(n.ID)
		list(&c, n.Body)
	case *ast.AclStatement:
		c.one(n.ID)
		list(&c, n.Body)
	case *ast.BackendStatement:
		c.one(n.ID)
		c = append(c, definitionValues(n.Body)...)
	case *ast.BackendDefinition:
		c.one(n.Value)
		c = append(c, definitionValues(n.Definitions)...)
	case *ast.TableStatement:
		c.one(n.ID)
		c.one(n.ValueType)
		list(&c, n.Body)
	case *ast.TableDefinition:
		c.one(n.Value)
	default:
		panic(fmt.Sprintf("traverse: unknown node type %T", n))
	}
	return c
}

// definitionValues flattens the values of a backend definition tree.  The
// list position of each value is its order in the flattened sequence.
func definitionValues(defs []*ast.BackendDefinition) []child {
	var c []child
	var flatten func([]*ast.BackendDefinition)
	flatten = func(defs []*ast.BackendDefinition) {
		for _, d := range defs {
			if d.Value != nil {
				c = append(c, child{node: d.Value, inList: true, index: len(c)})
			}
			flatten(d.Definitions)
		}
	}
	flatten(defs)
	return c
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n ast.Node) bool {
	if n == nil {
		return true
	}
	switch n := n.(type) {
	case *ast.Identifier:
		return n == nil
	case *ast.StringLiteral:
		return n == nil
	case *ast.NumericLiteral:
		return n == nil
	case *ast.IfStatement:
		return n == nil
	}
	return false
}
