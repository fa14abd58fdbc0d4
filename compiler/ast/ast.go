package ast

type Expr interface {
	Node
	ExprAST()
}

type Stmt interface {
	Node
	StmtAST()
}

// Program is the root of a parsed VCL source text.
type Program struct {
	Kind string `json:"type" unpack:""`
	Body []Stmt `json:"body"`
	Loc  `json:"loc"`
	Comments
}

// Literals

type (
	BooleanLiteral struct {
		Kind  string `json:"type" unpack:""`
		Value bool   `json:"value"`
		Loc   `json:"loc"`
		Comments
	}
	// StringLiteral holds the source text of a quoted string including
	// its quotes.
	StringLiteral struct {
		Kind  string `json:"type" unpack:""`
		Value string `json:"value"`
		Loc   `json:"loc"`
		Comments
	}
	// MultilineLiteral is a string written in the {"..."} form.  Value
	// includes the braces and quotes.
	MultilineLiteral struct {
		Kind  string `json:"type" unpack:""`
		Value string `json:"value"`
		Loc   `json:"loc"`
		Comments
	}
	// DurationLiteral is a number immediately followed by a unit, e.g., "10s".
	DurationLiteral struct {
		Kind  string `json:"type" unpack:""`
		Value string `json:"value"`
		Loc   `json:"loc"`
		Comments
	}
	NumericLiteral struct {
		Kind  string `json:"type" unpack:""`
		Value string `json:"value"`
		Loc   `json:"loc"`
		Comments
	}
	// IpLiteral is an unquoted address or "localhost" with an optional
	// CIDR prefix length.
	IpLiteral struct {
		Kind  string `json:"type" unpack:""`
		Value string `json:"value"`
		Cidr  *int   `json:"cidr"`
		Loc   `json:"loc"`
		Comments
	}
)

// Expressions

type (
	Identifier struct {
		Kind string `json:"type" unpack:""`
		Name string `json:"name"`
		Loc  `json:"loc"`
		Comments
	}
	// Member is a dotted access.  Base is an *Identifier or a *Member so
	// a.b.c is Member(Member(a, b), c).
	Member struct {
		Kind   string      `json:"type" unpack:""`
		Base   Expr        `json:"base"`
		Member *Identifier `json:"member"`
		Loc    `json:"loc"`
		Comments
	}
	// ValuePair is the header-style key access base:name.  It ends an
	// identifier chain.
	ValuePair struct {
		Kind string      `json:"type" unpack:""`
		Base Expr        `json:"base"`
		Name *Identifier `json:"name"`
		Loc  `json:"loc"`
		Comments
	}
	// BooleanExpression records explicit parentheses in the source.
	BooleanExpression struct {
		Kind string `json:"type" unpack:""`
		Body Expr   `json:"body"`
		Loc  `json:"loc"`
		Comments
	}
	UnaryExpression struct {
		Kind     string `json:"type" unpack:""`
		Operator string `json:"operator"`
		Argument Expr   `json:"argument"`
		Loc      `json:"loc"`
		Comments
	}
	FunCallExpression struct {
		Kind      string `json:"type" unpack:""`
		Callee    Expr   `json:"callee"`
		Arguments []Expr `json:"arguments"`
		Loc       `json:"loc"`
		Comments
	}
	// ConcatExpression is two or more juxtaposed expressions joined into
	// one string value.  Plus, when set, records for each gap between
	// Body[i] and Body[i+1] whether "+" was written.
	ConcatExpression struct {
		Kind string `json:"type" unpack:""`
		Body []Expr `json:"body"`
		Plus []bool `json:"plus,omitempty"`
		Loc  `json:"loc"`
		Comments
	}
	// BinaryExpression is a comparison: == != >= > <= < ~ !~
	BinaryExpression struct {
		Kind     string `json:"type" unpack:""`
		Left     Expr   `json:"left"`
		Right    Expr   `json:"right"`
		Operator string `json:"operator"`
		Loc      `json:"loc"`
		Comments
	}
	// LogicalExpression is && or ||.
	LogicalExpression struct {
		Kind     string `json:"type" unpack:""`
		Left     Expr   `json:"left"`
		Right    Expr   `json:"right"`
		Operator string `json:"operator"`
		Loc      `json:"loc"`
		Comments
	}
)

func (*BooleanLiteral) ExprAST()    {}
func (*StringLiteral) ExprAST()     {}
func (*MultilineLiteral) ExprAST()  {}
func (*DurationLiteral) ExprAST()   {}
func (*NumericLiteral) ExprAST()    {}
func (*IpLiteral) ExprAST()         {}
func (*Identifier) ExprAST()        {}
func (*Member) ExprAST()            {}
func (*ValuePair) ExprAST()         {}
func (*BooleanExpression) ExprAST() {}
func (*UnaryExpression) ExprAST()   {}
func (*FunCallExpression) ExprAST() {}
func (*ConcatExpression) ExprAST()  {}
func (*BinaryExpression) ExprAST()  {}
func (*LogicalExpression) ExprAST() {}
