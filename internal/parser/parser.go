// Package parser implements RS's recursive-descent, precedence-climbing
// parser: tokens in, a statement list out.
package parser

import (
	"fmt"

	"github.com/retroscript/rs/internal/ast"
	"github.com/retroscript/rs/internal/lexer"
	"github.com/retroscript/rs/internal/token"
)

// Error is a single parse failure with enough context for rserrors to
// render a caret-pointed message.
type Error struct {
	Message string
	Line    int
	Column  int
	Hint    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Message)
}

// Parser walks a token slice and builds a statement list.
type Parser struct {
	tokens []token.Token
	pos    int
	errors []*Error
}

// Parse lexes and parses source text into a statement list. It returns
// every error accumulated rather than stopping at the first one, the
// way the teacher's parser does.
func Parse(source string) ([]ast.Statement, []*Error) {
	toks, lexErr := lexer.Tokenize(source)
	if lexErr != nil {
		if le, ok := lexErr.(*lexer.Error); ok {
			return nil, []*Error{{Message: le.Message, Line: le.Line, Column: le.Column, Hint: le.Hint}}
		}
		return nil, []*Error{{Message: lexErr.Error()}}
	}
	p := &Parser{tokens: toks}
	stmts := p.parseProgram()
	return stmts, p.errors
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) check(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(t token.Type, hint string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	cur := p.cur()
	p.errorf(cur, hint, "expected %s, got %s", t.String(), cur.Type.String())
	return cur
}

// trySnapshot/restore let a caller attempt a speculative parse and
// roll back cleanly if it doesn't pan out, used by parsePrintOrLog to
// prefer expression mode whenever the remaining line parses as one
// full expression (see statements.go).
func (p *Parser) trySnapshot() (pos int, errCount int) {
	return p.pos, len(p.errors)
}

func (p *Parser) restore(pos, errCount int) {
	p.pos = pos
	p.errors = p.errors[:errCount]
}

func (p *Parser) errorf(tok token.Token, hint, format string, args ...any) {
	p.errors = append(p.errors, &Error{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
		Hint:    hint,
	})
}

// skipSeparators consumes statement separators (newlines/semicolons)
// that are ignored between statements.
func (p *Parser) skipSeparators() {
	for p.check(token.NEWLINE) || p.check(token.SEMI) {
		p.advance()
	}
}

func (p *Parser) parseProgram() []ast.Statement {
	var stmts []ast.Statement
	p.skipSeparators()
	for !p.check(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipSeparators()
	}
	return stmts
}

// parseBlock parses a `{ ... }` statement sequence. Newlines and
// semicolons inside are statement separators and are otherwise ignored.
func (p *Parser) parseBlock() *ast.Block {
	start := p.cur()
	p.expect(token.LBRACE, "expected '{' to open a block")
	p.skipSeparators()
	var stmts []ast.Statement
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipSeparators()
	}
	p.expect(token.RBRACE, "expected '}' to close the block")
	return ast.NewBlock(start.Line, start.Column, stmts)
}

// synchronize recovers from a statement-level error by skipping tokens
// until the next statement boundary, keeping later errors useful.
func (p *Parser) synchronize() {
	for !p.check(token.EOF) {
		if p.cur().IsStatementEnd() {
			p.advance()
			return
		}
		p.advance()
	}
}
