package ast

// ReturnActions are the actions accepted by a return statement.
var ReturnActions = []string{
	"deliver",
	"deliver_stale",
	"error",
	"fetch",
	"hash",
	"lookup",
	"pass",
	"pipe",
	"purge",
	"restart",
}

type (
	ExpressionStatement struct {
		Kind string `json:"type" unpack:""`
		Body Expr   `json:"body"`
		Loc  `json:"loc"`
		Comments
	}
	IncludeStatement struct {
		Kind   string         `json:"type" unpack:""`
		Module *StringLiteral `json:"module"`
		Loc    `json:"loc"`
		Comments
	}
	ImportStatement struct {
		Kind   string      `json:"type" unpack:""`
		Module *Identifier `json:"module"`
		Loc    `json:"loc"`
		Comments
	}
	CallStatement struct {
		Kind       string      `json:"type" unpack:""`
		Subroutine *Identifier `json:"subroutine"`
		Loc        `json:"loc"`
		Comments
	}
	DeclareStatement struct {
		Kind      string      `json:"type" unpack:""`
		ID        Expr        `json:"id"`
		ValueType *Identifier `json:"valueType"`
		Local     bool        `json:"local"`
		Loc       `json:"loc"`
		Comments
	}
	// AddStatement and SetStatement assign Right to Left, an *Identifier,
	// *Member or *ValuePair.
	AddStatement struct {
		Kind     string `json:"type" unpack:""`
		Left     Expr   `json:"left"`
		Operator string `json:"operator"`
		Right    Expr   `json:"right"`
		Loc      `json:"loc"`
		Comments
	}
	SetStatement struct {
		Kind     string `json:"type" unpack:""`
		Left     Expr   `json:"left"`
		Operator string `json:"operator"`
		Right    Expr   `json:"right"`
		Loc      `json:"loc"`
		Comments
	}
	UnsetStatement struct {
		Kind string `json:"type" unpack:""`
		ID   Expr   `json:"id"`
		Loc  `json:"loc"`
		Comments
	}
	ReturnStatement struct {
		Kind   string `json:"type" unpack:""`
		Action string `json:"action"`
		Loc    `json:"loc"`
		Comments
	}
	ErrorStatement struct {
		Kind    string          `json:"type" unpack:""`
		Status  *NumericLiteral `json:"status"`
		Message Expr            `json:"message"`
		Loc     `json:"loc"`
		Comments
	}
	RestartStatement struct {
		Kind string `json:"type" unpack:""`
		Loc  `json:"loc"`
		Comments
	}
	SyntheticStatement struct {
		Kind     string `json:"type" unpack:""`
		Response Expr   `json:"response"`
		Loc      `json:"loc"`
		Comments
	}
	LogStatement struct {
		Kind    string `json:"type" unpack:""`
		Content Expr   `json:"content"`
		Loc     `json:"loc"`
		Comments
	}
	// IfStatement has at most one of Alternative (an "else if" chain) and
	// Else (a plain else block).
	IfStatement struct {
		Kind        string       `json:"type" unpack:""`
		Test        Expr         `json:"test"`
		Consequent  []Stmt       `json:"consequent"`
		Alternative *IfStatement `json:"alternative"`
		Else        []Stmt       `json:"else"`
		// ElseInner holds the comments before the closing brace of Else.
		ElseInner []*Comment `json:"elseInnerComments,omitempty"`
		Loc       `json:"loc"`
		Comments
	}
	SubroutineStatement struct {
		Kind string      `json:"type" unpack:""`
		ID   *Identifier `json:"id"`
		Body []Stmt      `json:"body"`
		Loc  `json:"loc"`
		Comments
	}
	AclStatement struct {
		Kind string       `json:"type" unpack:""`
		ID   *Identifier  `json:"id"`
		Body []*IpLiteral `json:"body"`
		Loc  `json:"loc"`
		Comments
	}
	// BackendDefinition is ".key = value;" or ".key = { ... }".  Exactly one
	// of Value and Definitions is set.
	BackendDefinition struct {
		Kind        string               `json:"type" unpack:""`
		Key         string               `json:"key"`
		Value       Expr                 `json:"value"`
		Definitions []*BackendDefinition `json:"definitions"`
		Loc         `json:"loc"`
		Comments
	}
	BackendStatement struct {
		Kind string               `json:"type" unpack:""`
		ID   *Identifier          `json:"id"`
		Body []*BackendDefinition `json:"body"`
		Loc  `json:"loc"`
		Comments
	}
	// TableDefinition is one "key": value row.  Key holds the quoted source
	// text of the key.
	TableDefinition struct {
		Kind  string `json:"type" unpack:""`
		Key   string `json:"key"`
		Value Expr   `json:"value"`
		Loc   `json:"loc"`
		Comments
	}
	TableStatement struct {
		Kind      string             `json:"type" unpack:""`
		ID        *Identifier        `json:"id"`
		ValueType *Identifier        `json:"valueType"`
		Body      []*TableDefinition `json:"body"`
		// TrailingComma is set when the last entry is followed by ",".
		TrailingComma bool `json:"trailingComma,omitempty"`
		Loc           `json:"loc"`
		Comments
	}
)

func (*ExpressionStatement) StmtAST() {}
func (*IncludeStatement) StmtAST()    {}
func (*ImportStatement) StmtAST()     {}
func (*CallStatement) StmtAST()       {}
func (*DeclareStatement) StmtAST()    {}
func (*AddStatement) StmtAST()        {}
func (*SetStatement) StmtAST()        {}
func (*UnsetStatement) StmtAST()      {}
func (*ReturnStatement) StmtAST()     {}
func (*ErrorStatement) StmtAST()      {}
func (*RestartStatement) StmtAST()    {}
func (*SyntheticStatement) StmtAST()  {}
func (*LogStatement) StmtAST()        {}
func (*IfStatement) StmtAST()         {}
func (*SubroutineStatement) StmtAST() {}
func (*AclStatement) StmtAST()        {}
func (*BackendStatement) StmtAST()    {}
func (*TableStatement) StmtAST()      {}
