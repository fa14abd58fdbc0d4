package parser

import (
	"github.com/brimdata/vcl/compiler/ast"
)

type parser struct {
	*cursor
}

// precedence returns the binding of a binary operator where lower binds
// tighter.
func precedence(tok Token) (int, bool) {
	if tok.Kind != OperatorToken {
		return 0, false
	}
	switch tok.Value {
	case "==", "!=", ">=", ">", "<=", "<", "~", "!~":
		return 1, true
	case "&&":
		return 2, true
	case "||":
		return 3, true
	}
	return 0, false
}

// parseExpr parses an operator expression and, unless it is followed by
// ";", any primary expressions juxtaposed after it, which form a
// ConcatExpression.  "+" between the parts is accepted and dropped.
func (p *parser) parseExpr() (ast.Expr, error) {
	expr, err := p.parseOperatorExpr()
	if err != nil {
		return nil, err
	}
	if p.nextIs(";") {
		return expr, nil
	}
	exprs := []ast.Expr{expr}
	var plus []bool
	var anyPlus bool
	checkpoint := p.mark()
	for {
		tok, err := p.peek()
		if err != nil || tok.is(SymbolToken, ";") {
			break
		}
		hasPlus := tok.is(SymbolToken, "+")
		if hasPlus {
			p.take()
		}
		e, err := p.parseHumbleExpr()
		if err != nil {
			if !isGrammar(err) {
				return nil, err
			}
			p.jump(checkpoint)
			break
		}
		exprs = append(exprs, e)
		plus = append(plus, hasPlus)
		anyPlus = anyPlus || hasPlus
		checkpoint = p.mark()
	}
	if len(exprs) == 1 {
		return expr, nil
	}
	concat := &ast.ConcatExpression{
		Kind: "ConcatExpression",
		Body: exprs,
		Loc:  ast.NewLoc(exprs[0].Pos(), exprs[len(exprs)-1].End()),
	}
	if anyPlus {
		concat.Plus = plus
	}
	return concat, nil
}

type rpnItem struct {
	expr ast.Expr
	op   string
}

// parseOperatorExpr resolves comparison and logical operators by
// precedence climbing into a postfix list, which is then folded into a
// tree.  Operators of equal precedence associate to the left.
func (p *parser) parseOperatorExpr() (ast.Expr, error) {
	seed, err := p.parseHumbleExpr()
	if err != nil {
		return nil, err
	}
	rpn := []rpnItem{{expr: seed}}
	var ops []Token
	for {
		tok, err := p.peek()
		if err != nil {
			break
		}
		prec, ok := precedence(tok)
		if !ok {
			break
		}
		checkpoint := p.mark()
		p.take()
		operand, err := p.parseHumbleExpr()
		if err != nil {
			if !isGrammar(err) {
				return nil, err
			}
			p.jump(checkpoint)
			break
		}
		for len(ops) > 0 {
			top := ops[len(ops)-1]
			if topPrec, _ := precedence(top); topPrec > prec {
				break
			}
			rpn = append(rpn, rpnItem{op: top.Value})
			ops = ops[:len(ops)-1]
		}
		ops = append(ops, tok)
		rpn = append(rpn, rpnItem{expr: operand})
	}
	for k := len(ops) - 1; k >= 0; k-- {
		rpn = append(rpn, rpnItem{op: ops[k].Value})
	}
	return evalRPN(rpn), nil
}

func evalRPN(rpn []rpnItem) ast.Expr {
	var stack []ast.Expr
	for _, item := range rpn {
		if item.expr != nil {
			stack = append(stack, item.expr)
			continue
		}
		right := stack[len(stack)-1]
		left := stack[len(stack)-2]
		stack = stack[:len(stack)-2]
		loc := ast.NewLoc(left.Pos(), right.End())
		var e ast.Expr
		if item.op == "&&" || item.op == "||" {
			e = &ast.LogicalExpression{Kind: "LogicalExpression", Left: left, Right: right, Operator: item.op, Loc: loc}
		} else {
			e = &ast.BinaryExpression{Kind: "BinaryExpression", Left: left, Right: right, Operator: item.op, Loc: loc}
		}
		stack = append(stack, e)
	}
	return stack[0]
}

// parseHumbleExpr parses a primary expression: a literal, an identifier
// chain or function call, a parenthesized expression or a negation.
func (p *parser) parseHumbleExpr() (ast.Expr, error) {
	lit, err := p.parseLiteral()
	if err != nil || lit != nil {
		return lit, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.Kind == IdentToken:
		chain, err := p.parseIdentChain()
		if err != nil {
			return nil, err
		}
		if p.nextIs("(") {
			return p.parseCall(chain)
		}
		return chain, nil
	case tok.is(SymbolToken, "("):
		p.take()
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return &ast.BooleanExpression{
			Kind: "BooleanExpression",
			Body: body,
			Loc:  p.finish(tok.Loc.First),
		}, nil
	case tok.is(OperatorToken, "!"):
		p.take()
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{
			Kind:     "UnaryExpression",
			Operator: tok.Value,
			Argument: arg,
			Loc:      p.finish(tok.Loc.First),
		}, nil
	}
	return nil, p.grammarError(tok, "Expression not implemented yet")
}

func (p *parser) parseCall(callee ast.Expr) (ast.Expr, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	args, inner, err := sequence(p, seqConfig{until: ")", delimiter: ","}, p.parseExpr)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	call := &ast.FunCallExpression{
		Kind:      "FunCallExpression",
		Callee:    callee,
		Arguments: args,
		Loc:       p.finish(callee.Pos()),
	}
	call.Inner = inner
	return call, nil
}

// parseIdentChain parses an identifier followed by any number of ".name"
// members and an optional final ":name" value pair.  Assignment targets
// use it directly so that they never absorb a concatenation.
func (p *parser) parseIdentChain() (ast.Expr, error) {
	id, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	var chain ast.Expr = id
	for {
		switch {
		case p.nextIs("."):
			p.take()
			member, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			chain = &ast.Member{
				Kind:   "Member",
				Base:   chain,
				Member: member,
				Loc:    ast.NewLoc(chain.Pos(), member.End()),
			}
		case p.nextIs(":"):
			p.take()
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			return &ast.ValuePair{
				Kind: "ValuePair",
				Base: chain,
				Name: name,
				Loc:  ast.NewLoc(chain.Pos(), name.End()),
			}, nil
		default:
			return chain, nil
		}
	}
}
