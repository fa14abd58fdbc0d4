package parser

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/brimdata/vcl/compiler/ast"
)

var durationUnits = map[string]bool{
	"ms": true,
	"s":  true,
	"m":  true,
	"h":  true,
	"d":  true,
	"y":  true,
}

// parseLiteral parses a literal if the next token starts one and returns
// nil otherwise.
func (p *parser) parseLiteral() (ast.Expr, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, nil
	}
	switch tok.Kind {
	case BooleanToken:
		p.take()
		return &ast.BooleanLiteral{Kind: "BooleanLiteral", Value: tok.Value == "true", Loc: tok.Loc}, nil
	case StringToken:
		p.take()
		if strings.HasPrefix(tok.Value, `{"`) {
			return &ast.MultilineLiteral{Kind: "MultilineLiteral", Value: tok.Value, Loc: tok.Loc}, nil
		}
		if p.nextIs("/") {
			ip, err := p.parseIp(tok)
			if err != nil {
				return nil, err
			}
			return ip, nil
		}
		return &ast.StringLiteral{Kind: "StringLiteral", Value: tok.Value, Loc: tok.Loc}, nil
	case NumericToken:
		p.take()
		if unit, err := p.peek(); err == nil && unit.Kind == IdentToken && durationUnits[unit.Value] && unit.Loc.First.Offset == tok.Loc.Last.Offset+1 {
			p.take()
			return &ast.DurationLiteral{
				Kind:  "DurationLiteral",
				Value: tok.Value + unit.Value,
				Loc:   ast.NewLoc(tok.Loc.First, unit.Loc.Last),
			}, nil
		}
		if err := p.checkNumber(tok); err != nil {
			return nil, err
		}
		return &ast.NumericLiteral{Kind: "NumericLiteral", Value: tok.Value, Loc: tok.Loc}, nil
	}
	return nil, nil
}

func (p *parser) checkNumber(tok Token) error {
	v := tok.Value
	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return p.syntaxError(tok, "invalid number")
	}
	if strings.HasPrefix(v, ".") || len(v) > 1 && v[0] == '0' {
		return p.syntaxError(tok, "invalid number")
	}
	return nil
}

// parseIp turns the string token tok, which has already been consumed,
// into an IpLiteral with an optional "/cidr" suffix.
func (p *parser) parseIp(tok Token) (*ast.IpLiteral, error) {
	if tok.Kind != StringToken || strings.HasPrefix(tok.Value, `{"`) {
		return nil, p.unexpected(tok, "ip address")
	}
	value := tok.Value[1 : len(tok.Value)-1]
	var addr netip.Addr
	if value != "localhost" {
		var err error
		if addr, err = netip.ParseAddr(value); err != nil {
			return nil, p.syntaxError(tok, "Invalid ip address")
		}
	}
	ip := &ast.IpLiteral{Kind: "IpLiteral", Value: value, Loc: tok.Loc}
	if !p.nextIs("/") {
		return ip, nil
	}
	p.take()
	num, err := p.read()
	if err != nil {
		return nil, err
	}
	if num.Kind != NumericToken {
		return nil, p.unexpected(num, "cidr")
	}
	cidr, err := strconv.Atoi(num.Value)
	if err != nil {
		return nil, p.syntaxError(num, "Invalid cidr")
	}
	switch {
	case value == "localhost":
		return nil, p.syntaxError(num, "localhost can not have a cidr")
	case addr.Is4() && (cidr < 0 || cidr > 32):
		return nil, p.syntaxError(num, "Invalid cidr for ipv4 address, must be between 0 and 32")
	case addr.Is6() && (cidr < 0 || cidr > 128):
		return nil, p.syntaxError(num, "Invalid cidr for ipv6 address, must be between 0 and 128")
	}
	ip.Cidr = &cidr
	ip.Loc = ast.NewLoc(tok.Loc.First, num.Loc.Last)
	return ip, nil
}
