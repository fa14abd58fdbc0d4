package ast

import (
	"encoding/json"
	"fmt"

	"github.com/brimdata/vcl/pkg/unpack"
)

var unpacker = unpack.New(
	AclStatement{},
	AddStatement{},
	BackendDefinition{},
	BackendStatement{},
	BinaryExpression{},
	BooleanExpression{},
	BooleanLiteral{},
	CallStatement{},
	ConcatExpression{},
	DeclareStatement{},
	DurationLiteral{},
	ErrorStatement{},
	ExpressionStatement{},
	FunCallExpression{},
	Identifier{},
	IfStatement{},
	ImportStatement{},
	IncludeStatement{},
	IpLiteral{},
	LogStatement{},
	LogicalExpression{},
	Member{},
	MultilineLiteral{},
	NumericLiteral{},
	Program{},
	RestartStatement{},
	ReturnStatement{},
	SetStatement{},
	StringLiteral{},
	SubroutineStatement{},
	SyntheticStatement{},
	TableDefinition{},
	TableStatement{},
	UnaryExpression{},
	UnsetStatement{},
	ValuePair{},
)

// UnmarshalNode transforms the JSON representation of any node back into
// a Node.
func UnmarshalNode(buf []byte) (Node, error) {
	var node Node
	if err := unpacker.Unmarshal(buf, &node); err != nil {
		return nil, err
	}
	return node, nil
}

// UnmarshalProgram is UnmarshalNode for a JSON document whose root must be
// a Program.
func UnmarshalProgram(buf []byte) (*Program, error) {
	node, err := UnmarshalNode(buf)
	if err != nil {
		return nil, err
	}
	p, ok := node.(*Program)
	if !ok {
		return nil, fmt.Errorf("root node is %T, not a Program", node)
	}
	return p, nil
}

// Copy returns a deep copy of n made by a round trip through JSON.
func Copy(n Node) Node {
	b, err := json.Marshal(n)
	if err != nil {
		panic(err)
	}
	out, err := UnmarshalNode(b)
	if err != nil {
		panic(err)
	}
	return out
}
