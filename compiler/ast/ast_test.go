package ast_test

import (
	"testing"

	"github.com/brimdata/vcl/compiler/ast"
	"github.com/brimdata/vcl/compiler/parser"
	"github.com/brimdata/vcl/compiler/sfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilders(t *testing.T) {
	cidr := 8
	p := ast.NewProgram(
		ast.NewAclStatement(ast.NewIdentifier("internal"), ast.NewIpLiteral("10.0.0.0", &cidr)),
		ast.NewSubroutineStatement(ast.NewIdentifier("vcl_recv"),
			ast.NewIfStatement(
				ast.NewBinaryExpression(ast.NewMemberChain("client", "ip"), "~", ast.NewIdentifier("internal")),
				ast.NewSetStatement(ast.NewMemberChain("req", "http", "X"), "=", ast.NewStringLiteral("1")),
				ast.NewReturnStatement("pass"),
			),
		),
	)
	expected := `acl internal {
  "10.0.0.0"/8;
}

sub vcl_recv {
  if (client.ip ~ internal) {
    set req.http.X = "1";
    return(pass);
  }
}
`
	assert.Equal(t, expected, sfmt.AST(p, sfmt.DefaultOptions()))
	assert.True(t, p.Loc.IsSynthetic())
}

func TestEmptyListsNotNil(t *testing.T) {
	p := ast.NewProgram()
	assert.NotNil(t, p.Body)
	sub := ast.NewSubroutineStatement(ast.NewIdentifier("a"))
	assert.NotNil(t, sub.Body)
}

func TestCopy(t *testing.T) {
	p, err := parser.Parse("# c\nsub a { set x = 1; }\n")
	require.NoError(t, err)
	c := ast.Copy(p).(*ast.Program)
	assert.Equal(t, p, c)
	c.Body[0].(*ast.SubroutineStatement).ID.Name = "b"
	assert.Equal(t, "a", p.Body[0].(*ast.SubroutineStatement).ID.Name)
}

func TestCopySpelling(t *testing.T) {
	src := `declare x STRING;

set y = "a" + "b";

table t {
  "a": "b",
}

if (a) {} else {
  # e
}
`
	p, err := parser.Parse(src)
	require.NoError(t, err)
	c := ast.Copy(p).(*ast.Program)
	assert.Equal(t, p, c)
	assert.Len(t, c.Body[3].(*ast.IfStatement).ElseInner, 1)
	assert.Equal(t, src, sfmt.AST(c, sfmt.DefaultOptions()))
}

func TestUnmarshalProgram(t *testing.T) {
	_, err := ast.UnmarshalProgram([]byte(`{"type":"Identifier","name":"x"}`))
	assert.EqualError(t, err, "root node is *ast.Identifier, not a Program")
}

func TestCommentIsLine(t *testing.T) {
	assert.True(t, (&ast.Comment{Text: "# x"}).IsLine())
	assert.True(t, (&ast.Comment{Text: "// x"}).IsLine())
	assert.False(t, (&ast.Comment{Text: "/* x */"}).IsLine())
}
