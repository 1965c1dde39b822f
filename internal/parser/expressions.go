package parser

import (
	"github.com/retroscript/rs/internal/ast"
	"github.com/retroscript/rs/internal/token"
)

// precedence returns the binding power of a binary operator token per
// spec §4.2's table (1 lowest, 6 highest binary level; 7 is unary, 8 is
// call/primary). A non-operator token yields 0, which stops the climb.
func precedence(t token.Type) int {
	switch t {
	case token.OR:
		return 1
	case token.AND:
		return 2
	case token.EQ, token.NEQ:
		return 3
	case token.LT, token.GT, token.LTE, token.GTE:
		return 4
	case token.PLUS, token.MINUS:
		return 5
	case token.STAR, token.SLASH, token.PERCENT:
		return 6
	default:
		return 0
	}
}

func opText(t token.Token) string { return t.Raw }

// parseExpression implements precedence-climbing: it parses a unary
// expression and then folds in binary operators whose precedence
// exceeds minPrec, recursing with that operator's own precedence so
// higher-precedence operators bind tighter to their left operand.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parseUnary()
	for {
		opTok := p.cur()
		prec := precedence(opTok.Type)
		if prec == 0 || prec <= minPrec {
			break
		}
		p.advance()
		right := p.parseExpression(prec)
		left = ast.NewBinary(opTok.Line, opTok.Column, opText(opTok), left, right)
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	tok := p.cur()
	if tok.Type == token.MINUS || tok.Type == token.NOT {
		p.advance()
		operand := p.parseUnary()
		return ast.NewUnary(tok.Line, tok.Column, opText(tok), operand)
	}
	return p.parseCallOrPrimary()
}

// parseCallOrPrimary parses a primary expression and then any trailing
// `.name` member or `[expr]` index accessors.
func (p *Parser) parseCallOrPrimary() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch p.cur().Type {
		case token.DOT:
			p.advance()
			name := p.expect(token.IDENTIFIER, "expected a property name after '.'")
			expr = ast.NewMember(name.Line, name.Column, expr, identName(name))
		case token.LBRACKET:
			start := p.advance()
			idx := p.parseExpression(0)
			p.expect(token.RBRACKET, "expected ']' to close the index")
			expr = ast.NewIndex(start.Line, start.Column, expr, idx)
		default:
			return expr
		}
	}
}

// parsePrimary parses a single primary expression: literal, variable,
// call, array/object literal, or a parenthesized group.
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.NUMBER:
		p.advance()
		return ast.NewLiteral(tok.Line, tok.Column, tok.Value)
	case token.STRING:
		p.advance()
		return ast.NewLiteral(tok.Line, tok.Column, tok.Value)
	case token.TRUE:
		p.advance()
		return ast.NewLiteral(tok.Line, tok.Column, true)
	case token.FALSE:
		p.advance()
		return ast.NewLiteral(tok.Line, tok.Column, false)
	case token.NULL:
		p.advance()
		return ast.NewLiteral(tok.Line, tok.Column, nil)
	case token.VARIABLE:
		p.advance()
		return ast.NewVariable(tok.Line, tok.Column, varName(tok))
	case token.CALL:
		return p.parseCallExpression()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.LPAREN:
		p.advance()
		inner := p.parseExpression(0)
		p.expect(token.RPAREN, "expected ')' to close the grouped expression")
		return ast.NewGrouping(tok.Line, tok.Column, inner)
	case token.IDENTIFIER:
		p.advance()
		return ast.NewLiteral(tok.Line, tok.Column, identName(tok))
	default:
		p.errorf(tok, "check for a missing operand", "unexpected token %s in expression", tok.Type.String())
		p.advance()
		return ast.NewLiteral(tok.Line, tok.Column, nil)
	}
}

// parseCallExpression parses `call name arg*` as a primary expression
// (spec §4.2 level 8). Arguments are primaries, consumed until the
// next binary operator or statement-end marker would otherwise apply;
// since call only appears as a primary, a single trailing primary list
// is captured greedily up to the statement-end marker, matching the
// statement form's own argument parsing.
func (p *Parser) parseCallExpression() ast.Expression {
	start := p.advance() // 'call'
	name := p.expect(token.IDENTIFIER, "expected a function name after 'call'")
	var args []ast.Expression
	for !p.cur().IsStatementEnd() && !isOperatorBoundary(p.cur().Type) {
		args = append(args, p.parsePrimary())
	}
	return ast.NewCall(start.Line, start.Column, identName(name), args)
}

// isOperatorBoundary reports whether a token ends a call's argument
// list because it is a binary operator, ')'/']'/',' closing an
// enclosing construct, or ':' closing an object key.
func isOperatorBoundary(t token.Type) bool {
	switch t {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE,
		token.AND, token.OR,
		token.RPAREN, token.RBRACKET, token.COMMA, token.COLON:
		return true
	default:
		return false
	}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	start := p.advance() // '['
	var elems []ast.Expression
	p.skipSeparators()
	for !p.check(token.RBRACKET) && !p.check(token.EOF) {
		elems = append(elems, p.parseExpression(0))
		p.skipSeparators()
		if p.check(token.COMMA) {
			p.advance()
			p.skipSeparators()
		}
	}
	p.expect(token.RBRACKET, "expected ']' to close the array literal")
	return ast.NewArray(start.Line, start.Column, elems)
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	start := p.advance() // '{'
	var keys []string
	var values []ast.Expression
	p.skipSeparators()
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		var key string
		if p.check(token.STRING) {
			key, _ = p.advance().Value.(string)
		} else {
			key = identName(p.expect(token.IDENTIFIER, "expected an object key"))
		}
		p.expect(token.COLON, "expected ':' after the object key")
		val := p.parseExpression(0)
		keys = append(keys, key)
		values = append(values, val)
		p.skipSeparators()
		if p.check(token.COMMA) {
			p.advance()
			p.skipSeparators()
		}
	}
	p.expect(token.RBRACE, "expected '}' to close the object literal")
	return ast.NewObject(start.Line, start.Column, keys, values)
}
