package ast

// Builders for nodes created by passes rather than the parser.  The nodes
// they return carry the zero Loc, which marks them as synthetic.

func NewProgram(body ...Stmt) *Program {
	return &Program{Kind: "Program", Body: nonNil(body)}
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{Kind: "BooleanLiteral", Value: value}
}

// NewStringLiteral quotes s.  VCL strings have no escapes so s must not
// contain a double quote or newline.
func NewStringLiteral(s string) *StringLiteral {
	return &StringLiteral{Kind: "StringLiteral", Value: `"` + s + `"`}
}

func NewMultilineLiteral(s string) *MultilineLiteral {
	return &MultilineLiteral{Kind: "MultilineLiteral", Value: `{"` + s + `"}`}
}

func NewDurationLiteral(value string) *DurationLiteral {
	return &DurationLiteral{Kind: "DurationLiteral", Value: value}
}

func NewNumericLiteral(value string) *NumericLiteral {
	return &NumericLiteral{Kind: "NumericLiteral", Value: value}
}

func NewIpLiteral(value string, cidr *int) *IpLiteral {
	return &IpLiteral{Kind: "IpLiteral", Value: value, Cidr: cidr}
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{Kind: "Identifier", Name: name}
}

func NewMember(base Expr, member *Identifier) *Member {
	return &Member{Kind: "Member", Base: base, Member: member}
}

// NewMemberChain builds the left-nested Member chain for a dotted path
// such as "req.http.host".
func NewMemberChain(names ...string) Expr {
	var e Expr = NewIdentifier(names[0])
	for _, name := range names[1:] {
		e = NewMember(e, NewIdentifier(name))
	}
	return e
}

func NewValuePair(base Expr, name *Identifier) *ValuePair {
	return &ValuePair{Kind: "ValuePair", Base: base, Name: name}
}

func NewBooleanExpression(body Expr) *BooleanExpression {
	return &BooleanExpression{Kind: "BooleanExpression", Body: body}
}

func NewUnaryExpression(op string, arg Expr) *UnaryExpression {
	return &UnaryExpression{Kind: "UnaryExpression", Operator: op, Argument: arg}
}

func NewFunCallExpression(callee Expr, args ...Expr) *FunCallExpression {
	return &FunCallExpression{Kind: "FunCallExpression", Callee: callee, Arguments: nonNil(args)}
}

func NewConcatExpression(body ...Expr) *ConcatExpression {
	return &ConcatExpression{Kind: "ConcatExpression", Body: body}
}

func NewBinaryExpression(left Expr, op string, right Expr) *BinaryExpression {
	return &BinaryExpression{Kind: "BinaryExpression", Left: left, Operator: op, Right: right}
}

func NewLogicalExpression(left Expr, op string, right Expr) *LogicalExpression {
	return &LogicalExpression{Kind: "LogicalExpression", Left: left, Operator: op, Right: right}
}

func NewExpressionStatement(body Expr) *ExpressionStatement {
	return &ExpressionStatement{Kind: "ExpressionStatement", Body: body}
}

func NewIncludeStatement(module *StringLiteral) *IncludeStatement {
	return &IncludeStatement{Kind: "IncludeStatement", Module: module}
}

func NewImportStatement(module *Identifier) *ImportStatement {
	return &ImportStatement{Kind: "ImportStatement", Module: module}
}

func NewCallStatement(sub *Identifier) *CallStatement {
	return &CallStatement{Kind: "CallStatement", Subroutine: sub}
}

func NewDeclareStatement(id Expr, valueType *Identifier) *DeclareStatement {
	return &DeclareStatement{Kind: "DeclareStatement", ID: id, ValueType: valueType, Local: true}
}

func NewAddStatement(left Expr, op string, right Expr) *AddStatement {
	return &AddStatement{Kind: "AddStatement", Left: left, Operator: op, Right: right}
}

func NewSetStatement(left Expr, op string, right Expr) *SetStatement {
	return &SetStatement{Kind: "SetStatement", Left: left, Operator: op, Right: right}
}

func NewUnsetStatement(id Expr) *UnsetStatement {
	return &UnsetStatement{Kind: "UnsetStatement", ID: id}
}

func NewReturnStatement(action string) *ReturnStatement {
	return &ReturnStatement{Kind: "ReturnStatement", Action: action}
}

func NewErrorStatement(status *NumericLiteral, message Expr) *ErrorStatement {
	return &ErrorStatement{Kind: "ErrorStatement", Status: status, Message: message}
}

func NewRestartStatement() *RestartStatement {
	return &RestartStatement{Kind: "RestartStatement"}
}

func NewSyntheticStatement(response Expr) *SyntheticStatement {
	return &SyntheticStatement{Kind: "SyntheticStatement", Response: response}
}

func NewLogStatement(content Expr) *LogStatement {
	return &LogStatement{Kind: "LogStatement", Content: content}
}

func NewIfStatement(test Expr, consequent ...Stmt) *IfStatement {
	return &IfStatement{Kind: "IfStatement", Test: test, Consequent: nonNil(consequent)}
}

func NewSubroutineStatement(id *Identifier, body ...Stmt) *SubroutineStatement {
	return &SubroutineStatement{Kind: "SubroutineStatement", ID: id, Body: nonNil(body)}
}

func NewAclStatement(id *Identifier, body ...*IpLiteral) *AclStatement {
	return &AclStatement{Kind: "AclStatement", ID: id, Body: nonNil(body)}
}

func NewBackendDefinition(key string, value Expr) *BackendDefinition {
	return &BackendDefinition{Kind: "BackendDefinition", Key: key, Value: value}
}

func NewNestedBackendDefinition(key string, defs ...*BackendDefinition) *BackendDefinition {
	return &BackendDefinition{Kind: "BackendDefinition", Key: key, Definitions: nonNil(defs)}
}

func NewBackendStatement(id *Identifier, body ...*BackendDefinition) *BackendStatement {
	return &BackendStatement{Kind: "BackendStatement", ID: id, Body: nonNil(body)}
}

func NewTableDefinition(key string, value Expr) *TableDefinition {
	return &TableDefinition{Kind: "TableDefinition", Key: key, Value: value}
}

func NewTableStatement(id *Identifier, valueType *Identifier, body ...*TableDefinition) *TableStatement {
	return &TableStatement{Kind: "TableStatement", ID: id, ValueType: valueType, Body: nonNil(body)}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
