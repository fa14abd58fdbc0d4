package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/brimdata/vcl/compiler/ast"
)

var assignOperators = map[string]bool{
	"=":   true,
	"*=":  true,
	"+=":  true,
	"-=":  true,
	"/=":  true,
	"||=": true,
	"&&=": true,
}

func (p *parser) parseStatements(until string) ([]ast.Stmt, []*ast.Comment, error) {
	return sequence(p, seqConfig{until: until}, p.parseStatement)
}

// parseBlock parses "{" statement* "}".
func (p *parser) parseBlock() ([]ast.Stmt, []*ast.Comment, error) {
	if _, err := p.expect("{"); err != nil {
		return nil, nil, err
	}
	body, inner, err := p.parseStatements("}")
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect("}"); err != nil {
		return nil, nil, err
	}
	return body, inner, nil
}

func (p *parser) parseStatement() (ast.Stmt, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == IdentToken {
		switch tok.Value {
		case "include":
			return p.parseInclude(tok)
		case "import":
			return p.parseImport(tok)
		case "call":
			return p.parseCallStatement(tok)
		case "declare":
			return p.parseDeclare(tok)
		case "add", "set":
			return p.parseAssignment(tok)
		case "unset":
			return p.parseUnset(tok)
		case "return":
			return p.parseReturn(tok)
		case "error":
			return p.parseError(tok)
		case "restart":
			p.take()
			if _, err := p.expect(";"); err != nil {
				return nil, err
			}
			return &ast.RestartStatement{Kind: "RestartStatement", Loc: p.finish(tok.Loc.First)}, nil
		case "synthetic":
			return p.parseSynthetic(tok)
		case "log":
			return p.parseLog(tok)
		case "if":
			p.take()
			return p.parseIf(tok)
		case "sub":
			return p.parseSubroutine(tok)
		case "acl":
			return p.parseAcl(tok)
		case "backend":
			return p.parseBackend(tok)
		case "table":
			return p.parseTable(tok)
		}
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{
		Kind: "ExpressionStatement",
		Body: body,
		Loc:  p.finish(tok.Loc.First),
	}, nil
}

func (p *parser) parseInclude(tok Token) (ast.Stmt, error) {
	p.take()
	module, err := p.read()
	if err != nil {
		return nil, err
	}
	if module.Kind != StringToken || strings.HasPrefix(module.Value, `{"`) {
		return nil, p.unexpected(module, "module path")
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.IncludeStatement{
		Kind:   "IncludeStatement",
		Module: &ast.StringLiteral{Kind: "StringLiteral", Value: module.Value, Loc: module.Loc},
		Loc:    p.finish(tok.Loc.First),
	}, nil
}

func (p *parser) parseImport(tok Token) (ast.Stmt, error) {
	p.take()
	module, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.ImportStatement{Kind: "ImportStatement", Module: module, Loc: p.finish(tok.Loc.First)}, nil
}

func (p *parser) parseCallStatement(tok Token) (ast.Stmt, error) {
	p.take()
	sub, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.CallStatement{Kind: "CallStatement", Subroutine: sub, Loc: p.finish(tok.Loc.First)}, nil
}

func (p *parser) parseDeclare(tok Token) (ast.Stmt, error) {
	p.take()
	local := p.nextIsIdent("local")
	if local {
		p.take()
	}
	id, err := p.parseIdentChain()
	if err != nil {
		return nil, err
	}
	typ, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.DeclareStatement{
		Kind:      "DeclareStatement",
		ID:        id,
		ValueType: typ,
		Local:     local,
		Loc:       p.finish(tok.Loc.First),
	}, nil
}

// parseAssignment parses both add and set.
func (p *parser) parseAssignment(tok Token) (ast.Stmt, error) {
	p.take()
	left, err := p.parseIdentChain()
	if err != nil {
		return nil, err
	}
	op, err := p.read()
	if err != nil {
		return nil, err
	}
	if op.Kind != OperatorToken || !assignOperators[op.Value] {
		return nil, p.unexpected(op, "assignment operator")
	}
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	loc := p.finish(tok.Loc.First)
	if tok.Value == "add" {
		return &ast.AddStatement{Kind: "AddStatement", Left: left, Operator: op.Value, Right: right, Loc: loc}, nil
	}
	return &ast.SetStatement{Kind: "SetStatement", Left: left, Operator: op.Value, Right: right, Loc: loc}, nil
}

func (p *parser) parseUnset(tok Token) (ast.Stmt, error) {
	p.take()
	id, err := p.parseIdentChain()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.UnsetStatement{Kind: "UnsetStatement", ID: id, Loc: p.finish(tok.Loc.First)}, nil
}

// parseReturn accepts both "return(action);" and "return action;".
func (p *parser) parseReturn(tok Token) (ast.Stmt, error) {
	p.take()
	paren := p.nextIs("(")
	if paren {
		p.take()
	}
	action, err := p.read()
	if err != nil {
		return nil, err
	}
	if action.Kind != IdentToken {
		return nil, p.unexpected(action, "return action")
	}
	if !slices.Contains(ast.ReturnActions, action.Value) {
		return nil, p.syntaxError(action, invalidAction(action.Value))
	}
	if paren {
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Kind: "ReturnStatement", Action: action.Value, Loc: p.finish(tok.Loc.First)}, nil
}

func invalidAction(action string) string {
	msg := fmt.Sprintf("Invalid return action %q", action)
	best, dist := "", 3
	for _, candidate := range ast.ReturnActions {
		if d := levenshtein.ComputeDistance(action, candidate); d < dist {
			best, dist = candidate, d
		}
	}
	if best != "" {
		msg += fmt.Sprintf(", did you mean %q?", best)
	}
	return msg
}

func (p *parser) parseError(tok Token) (ast.Stmt, error) {
	p.take()
	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	status, ok := lit.(*ast.NumericLiteral)
	if !ok {
		return nil, p.unexpected(next, "status code")
	}
	var message ast.Expr
	if !p.nextIs(";") {
		if message, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.ErrorStatement{
		Kind:    "ErrorStatement",
		Status:  status,
		Message: message,
		Loc:     p.finish(tok.Loc.First),
	}, nil
}

func (p *parser) parseSynthetic(tok Token) (ast.Stmt, error) {
	p.take()
	response, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.SyntheticStatement{Kind: "SyntheticStatement", Response: response, Loc: p.finish(tok.Loc.First)}, nil
}

func (p *parser) parseLog(tok Token) (ast.Stmt, error) {
	p.take()
	content, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.LogStatement{Kind: "LogStatement", Content: content, Loc: p.finish(tok.Loc.First)}, nil
}

// parseIf parses the remainder of an if statement whose leading "if",
// "elsif" or "elseif" token has been consumed.
func (p *parser) parseIf(tok Token) (*ast.IfStatement, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	consequent, inner, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Kind: "IfStatement", Test: test, Consequent: consequent}
	stmt.Inner = inner
	switch next, _ := p.peek(); {
	case next.is(IdentToken, "elsif"), next.is(IdentToken, "elseif"):
		p.take()
		if stmt.Alternative, err = p.parseIf(next); err != nil {
			return nil, err
		}
	case next.is(IdentToken, "else"):
		p.take()
		if ifTok, _ := p.peek(); ifTok.is(IdentToken, "if") {
			p.take()
			if stmt.Alternative, err = p.parseIf(ifTok); err != nil {
				return nil, err
			}
			break
		}
		body, inner, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = body
		stmt.ElseInner = inner
	}
	stmt.Loc = p.finish(tok.Loc.First)
	return stmt, nil
}

func (p *parser) parseSubroutine(tok Token) (ast.Stmt, error) {
	p.take()
	id, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	body, inner, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	sub := &ast.SubroutineStatement{Kind: "SubroutineStatement", ID: id, Body: body, Loc: p.finish(tok.Loc.First)}
	sub.Inner = inner
	return sub, nil
}

func (p *parser) parseAcl(tok Token) (ast.Stmt, error) {
	p.take()
	id, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	body, inner, err := sequence(p, seqConfig{until: "}", semi: true}, func() (*ast.IpLiteral, error) {
		entry, err := p.read()
		if err != nil {
			return nil, err
		}
		return p.parseIp(entry)
	})
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}
	acl := &ast.AclStatement{Kind: "AclStatement", ID: id, Body: body, Loc: p.finish(tok.Loc.First)}
	acl.Inner = inner
	return acl, nil
}

func (p *parser) parseBackend(tok Token) (ast.Stmt, error) {
	p.take()
	id, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	body, inner, err := p.parseBackendBlock()
	if err != nil {
		return nil, err
	}
	backend := &ast.BackendStatement{Kind: "BackendStatement", ID: id, Body: body, Loc: p.finish(tok.Loc.First)}
	backend.Inner = inner
	return backend, nil
}

func (p *parser) parseBackendBlock() ([]*ast.BackendDefinition, []*ast.Comment, error) {
	if _, err := p.expect("{"); err != nil {
		return nil, nil, err
	}
	defs, inner, err := sequence(p, seqConfig{until: "}"}, p.parseBackendDefinition)
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect("}"); err != nil {
		return nil, nil, err
	}
	return defs, inner, nil
}

// parseBackendDefinition parses ".key = value;" or ".key = { ... }" where
// the nested block may be followed by an optional ";".
func (p *parser) parseBackendDefinition() (*ast.BackendDefinition, error) {
	dot, err := p.expect(".")
	if err != nil {
		return nil, err
	}
	key, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("="); err != nil {
		return nil, err
	}
	def := &ast.BackendDefinition{Kind: "BackendDefinition", Key: key.Name}
	if p.nextIs("{") {
		defs, inner, err := p.parseBackendBlock()
		if err != nil {
			return nil, err
		}
		if p.nextIs(";") {
			p.take()
		}
		def.Definitions = defs
		def.Inner = inner
	} else {
		if def.Value, err = p.parseExpr(); err != nil {
			return nil, err
		}
		if _, err := p.expect(";"); err != nil {
			return nil, err
		}
	}
	def.Loc = p.finish(dot.Loc.First)
	return def, nil
}

func (p *parser) parseTable(tok Token) (ast.Stmt, error) {
	p.take()
	id, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	var valueType *ast.Identifier
	if next, err := p.peek(); err == nil && next.Kind == IdentToken {
		p.take()
		valueType = &ast.Identifier{Kind: "Identifier", Name: next.Value, Loc: next.Loc}
	}
	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	body, inner, err := sequence(p, seqConfig{until: "}", delimiter: ","}, p.parseTableDefinition)
	if err != nil {
		return nil, err
	}
	trailingComma := len(body) > 0 && p.current().is(SymbolToken, ",")
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}
	table := &ast.TableStatement{
		Kind:          "TableStatement",
		ID:            id,
		ValueType:     valueType,
		Body:          body,
		TrailingComma: trailingComma,
		Loc:           p.finish(tok.Loc.First),
	}
	table.Inner = inner
	return table, nil
}

func (p *parser) parseTableDefinition() (*ast.TableDefinition, error) {
	key, err := p.read()
	if err != nil {
		return nil, err
	}
	if key.Kind != StringToken || strings.HasPrefix(key.Value, `{"`) {
		return nil, p.unexpected(key, "table key")
	}
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.TableDefinition{
		Kind:  "TableDefinition",
		Key:   key.Value,
		Value: value,
		Loc:   p.finish(key.Loc.First),
	}, nil
}
