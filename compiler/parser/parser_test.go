package parser_test

import (
	"strings"
	"testing"

	"github.com/brimdata/vcl/compiler/ast"
	"github.com/brimdata/vcl/compiler/parser"
	"github.com/brimdata/vcl/compiler/srcfiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseExpr(t *testing.T, text string) ast.Expr {
	t.Helper()
	e, err := parser.ParseExpr(text)
	require.NoError(t, err, "ParseExpr: %q", text)
	return e
}

func parseStmt(t *testing.T, text string) ast.Stmt {
	t.Helper()
	p, err := parser.Parse(text)
	require.NoError(t, err, "Parse: %q", text)
	require.Len(t, p.Body, 1)
	return p.Body[0]
}

func TestLeftAssociative(t *testing.T) {
	e := parseExpr(t, "a == b == c")
	outer, ok := e.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "==", outer.Operator)
	assert.Equal(t, "c", outer.Right.(*ast.Identifier).Name)
	inner, ok := outer.Left.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "a", inner.Left.(*ast.Identifier).Name)
	assert.Equal(t, "b", inner.Right.(*ast.Identifier).Name)
}

func TestPrecedence(t *testing.T) {
	e := parseExpr(t, "a || b && c")
	or := e.(*ast.LogicalExpression)
	assert.Equal(t, "||", or.Operator)
	assert.Equal(t, "&&", or.Right.(*ast.LogicalExpression).Operator)

	e = parseExpr(t, "a && b || c")
	or = e.(*ast.LogicalExpression)
	assert.Equal(t, "||", or.Operator)
	assert.Equal(t, "&&", or.Left.(*ast.LogicalExpression).Operator)

	e = parseExpr(t, `a == "x" && b ~ "y"`)
	and := e.(*ast.LogicalExpression)
	assert.Equal(t, "==", and.Left.(*ast.BinaryExpression).Operator)
	assert.Equal(t, "~", and.Right.(*ast.BinaryExpression).Operator)
}

func TestGrouping(t *testing.T) {
	e := parseExpr(t, "(a || b) && c")
	and := e.(*ast.LogicalExpression)
	group, ok := and.Left.(*ast.BooleanExpression)
	require.True(t, ok)
	assert.Equal(t, "||", group.Body.(*ast.LogicalExpression).Operator)
}

func TestUnary(t *testing.T) {
	e := parseExpr(t, `!req.http.Cookie`)
	u := e.(*ast.UnaryExpression)
	assert.Equal(t, "!", u.Operator)
	assert.IsType(t, &ast.Member{}, u.Argument)
}

func TestMemberChain(t *testing.T) {
	e := parseExpr(t, "req.http.X-Forwarded-For")
	m := e.(*ast.Member)
	assert.Equal(t, "X-Forwarded-For", m.Member.Name)
	base := m.Base.(*ast.Member)
	assert.Equal(t, "http", base.Member.Name)
	assert.Equal(t, "req", base.Base.(*ast.Identifier).Name)

	e = parseExpr(t, "req.http.Cookie:session")
	vp := e.(*ast.ValuePair)
	assert.Equal(t, "session", vp.Name.Name)
	assert.IsType(t, &ast.Member{}, vp.Base)
}

func TestFunCall(t *testing.T) {
	e := parseExpr(t, `regsub(req.url, "\?.*$", "")`)
	call := e.(*ast.FunCallExpression)
	assert.Equal(t, "regsub", call.Callee.(*ast.Identifier).Name)
	require.Len(t, call.Arguments, 3)
	assert.IsType(t, &ast.Member{}, call.Arguments[0])

	call = parseExpr(t, "now()").(*ast.FunCallExpression)
	assert.Empty(t, call.Arguments)
	assert.NotNil(t, call.Arguments)
}

func TestConcat(t *testing.T) {
	s := parseStmt(t, `set req.http.X = "a" req.url "b";`).(*ast.SetStatement)
	concat, ok := s.Right.(*ast.ConcatExpression)
	require.True(t, ok)
	require.Len(t, concat.Body, 3)
	assert.IsType(t, &ast.StringLiteral{}, concat.Body[0])
	assert.IsType(t, &ast.Member{}, concat.Body[1])
	assert.IsType(t, &ast.StringLiteral{}, concat.Body[2])
	assert.Equal(t, concat.Body[0].Pos(), concat.Pos())
	assert.Equal(t, concat.Body[2].End(), concat.End())

	assert.Nil(t, concat.Plus)

	s = parseStmt(t, `set req.http.X = "a" + "b";`).(*ast.SetStatement)
	concat = s.Right.(*ast.ConcatExpression)
	assert.Len(t, concat.Body, 2)
	assert.Equal(t, []bool{true}, concat.Plus)

	s = parseStmt(t, `set req.http.X = "a" "b" + "c";`).(*ast.SetStatement)
	concat = s.Right.(*ast.ConcatExpression)
	assert.Equal(t, []bool{false, true}, concat.Plus)

	s = parseStmt(t, `set req.http.X = "a";`).(*ast.SetStatement)
	assert.IsType(t, &ast.StringLiteral{}, s.Right)
}

func TestConcatRewind(t *testing.T) {
	// The concatenation stops in front of the closing paren.
	s := parseStmt(t, `if (req.http.X == "a" "b") { return(pass); }`).(*ast.IfStatement)
	concat := s.Test.(*ast.ConcatExpression)
	require.Len(t, concat.Body, 2)
	assert.IsType(t, &ast.BinaryExpression{}, concat.Body[0])
	assert.IsType(t, &ast.StringLiteral{}, concat.Body[1])
	require.Len(t, s.Consequent, 1)
}

func TestNumeric(t *testing.T) {
	s := parseStmt(t, "set a = 0;").(*ast.SetStatement)
	assert.Equal(t, "0", s.Right.(*ast.NumericLiteral).Value)

	s = parseStmt(t, "set a = 1.5;").(*ast.SetStatement)
	assert.Equal(t, "1.5", s.Right.(*ast.NumericLiteral).Value)

	for _, bad := range []string{"001", "0."} {
		_, err := parser.Parse("set a = " + bad + ";")
		require.Error(t, err, bad)
		assert.True(t, srcfiles.IsSyntax(err), bad)
		assert.Contains(t, err.Error(), "invalid number", bad)
	}

	_, err := parser.Parse("set a = .11;")
	require.Error(t, err)
	assert.True(t, srcfiles.IsLexical(err))
	assert.Contains(t, err.Error(), "invalid token")
}

func TestDuration(t *testing.T) {
	s := parseStmt(t, "set beresp.ttl = 10s;").(*ast.SetStatement)
	d := s.Right.(*ast.DurationLiteral)
	assert.Equal(t, "10s", d.Value)
	assert.Equal(t, 17, d.Pos().Offset)
	assert.Equal(t, 19, d.End().Offset)

	s = parseStmt(t, "set beresp.grace = 1.5ms;").(*ast.SetStatement)
	assert.Equal(t, "1.5ms", s.Right.(*ast.DurationLiteral).Value)
}

func TestIp(t *testing.T) {
	acl := parseStmt(t, `acl purge { "localhost"; "138.101.0.0"/16; "::1"/128; }`).(*ast.AclStatement)
	require.Len(t, acl.Body, 3)
	assert.Equal(t, "localhost", acl.Body[0].Value)
	assert.Nil(t, acl.Body[0].Cidr)
	assert.Equal(t, "138.101.0.0", acl.Body[1].Value)
	require.NotNil(t, acl.Body[1].Cidr)
	assert.Equal(t, 16, *acl.Body[1].Cidr)
	assert.Equal(t, 128, *acl.Body[2].Cidr)

	tests := []struct {
		src string
		msg string
	}{
		{`acl a { "1.2.3.4"/33; }`, "Invalid cidr for ipv4 address"},
		{`acl a { "::1"/129; }`, "Invalid cidr for ipv6 address"},
		{`acl a { "localhost"/8; }`, "localhost can not have a cidr"},
		{`acl a { "example.com"; }`, "Invalid ip address"},
	}
	for _, tt := range tests {
		_, err := parser.Parse(tt.src)
		require.Error(t, err, tt.src)
		assert.Contains(t, err.Error(), tt.msg, tt.src)
	}
}

func TestPositions(t *testing.T) {
	p, err := parser.Parse("set a = 1;\nset b = 2;\n")
	require.NoError(t, err)
	require.Len(t, p.Body, 2)
	first := p.Body[0]
	assert.Equal(t, srcfiles.Position{Offset: 0, Line: 1, Column: 1}, first.Pos())
	assert.Equal(t, srcfiles.Position{Offset: 9, Line: 1, Column: 10}, first.End())
	second := p.Body[1]
	assert.Equal(t, srcfiles.Position{Offset: 11, Line: 2, Column: 1}, second.Pos())
	assert.Equal(t, srcfiles.Position{Offset: 20, Line: 2, Column: 10}, second.End())
}

func TestDiagnostic(t *testing.T) {
	_, err := parser.Tokenize("sub vcl_recv {\n  set a = .11;\n}\n")
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "> 2 |   set a = .11;\n")
	assert.Contains(t, msg, "\n    | "+strings.Repeat(" ", 10)+"^^^\n")
}

func TestStatements(t *testing.T) {
	src := `
include "devicedetect.vcl";
import std;
backend default {
  .host = "127.0.0.1";
  .port = "8080";
  .probe = {
    .url = "/health";
    .interval = 5s;
  }
}
table routes STRING {
  "a": "b",
  "c": "d"
}
sub vcl_recv {
  declare local var.x STRING;
  call normalize;
  unset req.http.Cookie;
  add resp.http.Set-Cookie = "x=1";
  set req.http.Y += "z";
  if (req.method == "PURGE") {
    return(purge);
  } elsif (req.method == "GET") {
    error 404 "nope";
  } else {
    synthetic {"done"};
  }
  log "hit";
  restart;
  return lookup;
}
`
	p, err := parser.Parse(src)
	require.NoError(t, err)
	require.Len(t, p.Body, 5)
	assert.Equal(t, `"devicedetect.vcl"`, p.Body[0].(*ast.IncludeStatement).Module.Value)
	assert.Equal(t, "std", p.Body[1].(*ast.ImportStatement).Module.Name)

	backend := p.Body[2].(*ast.BackendStatement)
	assert.Equal(t, "default", backend.ID.Name)
	require.Len(t, backend.Body, 3)
	assert.Equal(t, "host", backend.Body[0].Key)
	probe := backend.Body[2]
	assert.Nil(t, probe.Value)
	require.Len(t, probe.Definitions, 2)
	assert.IsType(t, &ast.DurationLiteral{}, probe.Definitions[1].Value)

	table := p.Body[3].(*ast.TableStatement)
	assert.Equal(t, "STRING", table.ValueType.Name)
	require.Len(t, table.Body, 2)
	assert.Equal(t, `"c"`, table.Body[1].Key)

	sub := p.Body[4].(*ast.SubroutineStatement)
	require.Len(t, sub.Body, 9)
	assert.IsType(t, &ast.DeclareStatement{}, sub.Body[0])
	assert.Equal(t, "normalize", sub.Body[1].(*ast.CallStatement).Subroutine.Name)
	assert.IsType(t, &ast.UnsetStatement{}, sub.Body[2])
	assert.IsType(t, &ast.AddStatement{}, sub.Body[3])
	assert.Equal(t, "+=", sub.Body[4].(*ast.SetStatement).Operator)

	ifs := sub.Body[5].(*ast.IfStatement)
	assert.Equal(t, "purge", ifs.Consequent[0].(*ast.ReturnStatement).Action)
	require.NotNil(t, ifs.Alternative)
	errStmt := ifs.Alternative.Consequent[0].(*ast.ErrorStatement)
	assert.Equal(t, "404", errStmt.Status.Value)
	assert.Equal(t, `"nope"`, errStmt.Message.(*ast.StringLiteral).Value)
	require.Len(t, ifs.Alternative.Else, 1)
	synth := ifs.Alternative.Else[0].(*ast.SyntheticStatement)
	assert.IsType(t, &ast.MultilineLiteral{}, synth.Response)

	assert.IsType(t, &ast.LogStatement{}, sub.Body[6])
	assert.IsType(t, &ast.RestartStatement{}, sub.Body[7])
	assert.Equal(t, "lookup", sub.Body[8].(*ast.ReturnStatement).Action)
}

func TestDeclareLocal(t *testing.T) {
	d := parseStmt(t, "declare local var.x STRING;").(*ast.DeclareStatement)
	assert.True(t, d.Local)
	assert.Equal(t, "STRING", d.ValueType.Name)

	d = parseStmt(t, "declare x STRING;").(*ast.DeclareStatement)
	assert.False(t, d.Local)
	assert.Equal(t, "x", d.ID.(*ast.Identifier).Name)
}

func TestTable(t *testing.T) {
	table := parseStmt(t, `table t STRING { "a": "b", }`).(*ast.TableStatement)
	require.NotNil(t, table.ValueType)
	assert.Equal(t, "STRING", table.ValueType.Name)
	assert.Equal(t, 8, table.ValueType.Pos().Offset)
	assert.True(t, table.TrailingComma)
	require.Len(t, table.Body, 1)

	table = parseStmt(t, `table t { "a": "b", "c": "d" }`).(*ast.TableStatement)
	assert.Nil(t, table.ValueType)
	assert.False(t, table.TrailingComma)
	assert.Len(t, table.Body, 2)

	table = parseStmt(t, `table t {}`).(*ast.TableStatement)
	assert.False(t, table.TrailingComma)
	assert.Empty(t, table.Body)
}

func TestElseBlock(t *testing.T) {
	s := parseStmt(t, "if (a) { x; } else {}").(*ast.IfStatement)
	assert.NotNil(t, s.Else)
	assert.Empty(t, s.Else)

	s = parseStmt(t, "if (a) {\n  x;\n} else {\n  # a\n  # b\n}").(*ast.IfStatement)
	assert.Empty(t, s.Else)
	require.Len(t, s.ElseInner, 2)
	assert.Equal(t, "# a", s.ElseInner[0].Text)
	assert.Empty(t, s.Trailing)
}

func TestElseIf(t *testing.T) {
	s := parseStmt(t, `if (a) { log "a"; } else if (b) { log "b"; } elseif (c) { log "c"; }`).(*ast.IfStatement)
	require.NotNil(t, s.Alternative)
	require.NotNil(t, s.Alternative.Alternative)
	assert.Nil(t, s.Alternative.Alternative.Alternative)
	assert.Empty(t, s.Else)
}

func TestReturnAction(t *testing.T) {
	_, err := parser.Parse("sub vcl_recv { return(pas); }")
	require.Error(t, err)
	assert.True(t, srcfiles.IsSyntax(err))
	assert.Contains(t, err.Error(), `Invalid return action "pas", did you mean "pass"?`)

	_, err = parser.Parse("sub vcl_recv { return(banana); }")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestErrors(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{"set a = 1", "Unexpected EOF"},
		{"sub vcl_recv {", "Unexpected EOF"},
		{"set a = ;", "Expression not implemented yet"},
		{"set a 1;", "Expected assignment operator"},
		{`table t { "a": "b" "c": "d" }`, `Expected ","`},
		{`"unterminated`, "invalid token"},
		{"set a = b $ c;", "invalid token"},
	}
	for _, tt := range tests {
		_, err := parser.Parse(tt.src)
		require.Error(t, err, tt.src)
		var diag *srcfiles.Error
		require.ErrorAs(t, err, &diag, tt.src)
		assert.Contains(t, diag.Msg, tt.msg, tt.src)
	}
}

func TestComments(t *testing.T) {
	src := `# leading
sub vcl_recv { # trailing brace
  # before set
  set a = 1; # after set
  # dangling
}
# end of file
`
	p, err := parser.Parse(src)
	require.NoError(t, err)
	sub := p.Body[0].(*ast.SubroutineStatement)
	require.Len(t, sub.Leading, 1)
	assert.Equal(t, "# leading", sub.Leading[0].Text)

	set := sub.Body[0].(*ast.SetStatement)
	require.Len(t, set.Leading, 2)
	assert.Equal(t, "# trailing brace", set.Leading[0].Text)
	assert.Equal(t, "# before set", set.Leading[1].Text)
	require.Len(t, set.Trailing, 1)
	assert.Equal(t, "# after set", set.Trailing[0].Text)

	require.Len(t, sub.Inner, 1)
	assert.Equal(t, "# dangling", sub.Inner[0].Text)
	require.Len(t, p.Inner, 1)
	assert.Equal(t, "# end of file", p.Inner[0].Text)
}

func TestCommentsAttachedOnce(t *testing.T) {
	p, err := parser.Parse("if (a /* c */) { }\nset x = \"y\" /* d */ ;\n")
	require.NoError(t, err)
	ifs := p.Body[0].(*ast.IfStatement)
	assert.Len(t, ifs.Leading, 0)
	assert.Len(t, ifs.Trailing, 0)
	require.Len(t, ifs.Inner, 1)
	assert.Equal(t, "/* c */", ifs.Inner[0].Text)
	set := p.Body[1].(*ast.SetStatement)
	assert.Len(t, set.Leading, 0)
	require.Len(t, set.Trailing, 1)
	assert.Equal(t, "/* d */", set.Trailing[0].Text)
	assert.Empty(t, p.Inner)
}

func TestTokenize(t *testing.T) {
	tokens, err := parser.Tokenize(`set req.http.X = {"a
b"}; // done`)
	require.NoError(t, err)
	var kinds []parser.TokenKind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []parser.TokenKind{
		parser.IdentToken,
		parser.IdentToken, parser.SymbolToken, parser.IdentToken, parser.SymbolToken, parser.IdentToken,
		parser.OperatorToken,
		parser.StringToken,
		parser.SymbolToken,
		parser.CommentToken,
	}, kinds)
	semi := tokens[8]
	assert.Equal(t, 2, semi.Loc.First.Line)
	assert.Equal(t, 4, semi.Loc.First.Column)
}

func TestIsIncomplete(t *testing.T) {
	_, err := parser.Parse("sub vcl_recv {\n  set a = 1;")
	assert.True(t, parser.IsIncomplete(err))
	_, err = parser.Parse("set a 1;")
	assert.False(t, parser.IsIncomplete(err))
	assert.False(t, parser.IsIncomplete(nil))
}
