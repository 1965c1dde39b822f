package parser

import (
	"github.com/retroscript/rs/internal/ast"
	"github.com/retroscript/rs/internal/token"
)

// punctuationNoSpaceBefore lists the punctuation unquoted-text mode
// suppresses the preceding space for (spec §4.2).
var punctuationNoSpaceBefore = map[string]bool{
	"!": true, ":": true, ".": true, ",": true, ";": true, ")": true, "]": true, "}": true,
}

func (p *Parser) parseStatement() ast.Statement {
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
		}
	}()

	tok := p.cur()
	switch tok.Type {
	case token.SET:
		return p.parseSet()
	case token.VARIABLE:
		if p.peek(1).Type == token.ASSIGN {
			return p.parseBareAssign()
		}
	case token.PRINT:
		return p.parsePrintOrLog(false)
	case token.LOG:
		return p.parsePrintOrLog(true)
	case token.IF:
		return p.parseIf()
	case token.LOOP:
		return p.parseLoop()
	case token.REPEAT:
		return p.parseLoop()
	case token.WHILE:
		return p.parseWhile()
	case token.FOREACH, token.FOR:
		return p.parseForEach()
	case token.BREAK:
		p.advance()
		return ast.NewBreak(tok.Line, tok.Column)
	case token.CONTINUE:
		p.advance()
		return ast.NewContinue(tok.Line, tok.Column)
	case token.RETURN:
		return p.parseReturn()
	case token.DEF, token.FUNC, token.FUNCTION:
		return p.parseFunctionDef()
	case token.CALL:
		return p.parseCallStatement()
	case token.TRY:
		return p.parseTryCatch()
	case token.ON:
		return p.parseOn()
	case token.EMIT:
		return p.parseEmit()
	case token.LAUNCH, token.OPEN:
		return p.parseLaunch()
	case token.CLOSE:
		return p.parseClose()
	case token.WAIT, token.SLEEP:
		return p.parseWait()
	case token.FOCUS:
		return p.parseFocus()
	case token.MINIMIZE:
		return p.parseMinimize()
	case token.MAXIMIZE:
		return p.parseMaximize()
	case token.WRITE:
		return p.parseWrite()
	case token.READ:
		return p.parseRead()
	case token.MKDIR:
		return p.parseMkdir()
	case token.DELETE, token.RM:
		return p.parseDelete()
	case token.ALERT:
		return p.parseAlert()
	case token.CONFIRM:
		return p.parseConfirm()
	case token.PROMPT:
		return p.parsePrompt()
	case token.NOTIFY:
		return p.parseNotify()
	case token.PLAY:
		return p.parsePlay()
	case token.STOP:
		return p.parseStop()
	case token.VIDEO:
		return p.parseVideo()
	case token.IDENTIFIER:
		return p.parseCommand()
	}

	p.errorf(tok, "check spelling or define it with 'def ...'", "unexpected token %s", tok.Type.String())
	p.advance()
	return nil
}

func (p *Parser) parseSet() ast.Statement {
	start := p.advance() // 'set'
	name := p.expect(token.VARIABLE, "expected a $variable after 'set'")
	p.expect(token.ASSIGN, "expected '=' after the variable name")
	value := p.parseExpression(0)
	return ast.NewSet(start.Line, start.Column, varName(name), value)
}

func (p *Parser) parseBareAssign() ast.Statement {
	name := p.advance() // VARIABLE
	p.expect(token.ASSIGN, "expected '=' after the variable name")
	value := p.parseExpression(0)
	return ast.NewSet(name.Line, name.Column, varName(name), value)
}

func varName(t token.Token) string {
	if s, ok := t.Value.(string); ok {
		return s
	}
	return ""
}

// parsePrintOrLog implements the two print/log parsing modes of spec
// §4.2: a leading STRING selects full-expression mode; anything else
// selects unquoted-text mode with $var interpolation.
func (p *Parser) parsePrintOrLog(isLog bool) ast.Statement {
	start := p.advance() // 'print'/'log'
	target := p.parseMessageLine()
	return ast.NewPrint(start.Line, start.Column, target, isLog)
}

// tryFullExpression attempts to parse the remainder of the statement
// as a single expression, succeeding only if doing so produces no new
// errors and leaves the cursor exactly at a statement-end marker.
func (p *Parser) tryFullExpression() (ast.Expression, bool) {
	pos, errCount := p.trySnapshot()
	expr := p.parseExpression(0)
	if len(p.errors) > errCount || !p.cur().IsStatementEnd() {
		p.restore(pos, errCount)
		return nil, false
	}
	return expr, true
}

// parseUnquotedText consumes tokens through the statement-end marker,
// concatenating raw token text with single spaces, suppressing the
// space before closing punctuation, and splicing in $var references
// as interpolation boundaries.
func (p *Parser) parseUnquotedText() ast.Expression {
	start := p.cur()
	var parts []ast.InterpPart
	var textBuf string
	flush := func() {
		if textBuf != "" {
			parts = append(parts, ast.InterpPart{Text: textBuf})
			textBuf = ""
		}
	}
	first := true
	for !p.cur().IsStatementEnd() {
		tok := p.advance()
		if tok.Type == token.VARIABLE {
			if !first {
				textBuf += " "
			}
			flush()
			parts = append(parts, ast.InterpPart{Expr: ast.NewVariable(tok.Line, tok.Column, varName(tok))})
			first = false
			continue
		}
		if !first && textBuf != "" && !punctuationNoSpaceBefore[tok.Raw] {
			textBuf += " "
		} else if !first && textBuf == "" && len(parts) > 0 && !punctuationNoSpaceBefore[tok.Raw] {
			textBuf += " "
		}
		textBuf += tok.Raw
		first = false
	}
	flush()
	if len(parts) == 0 {
		parts = append(parts, ast.InterpPart{Text: ""})
	}
	return ast.NewInterpolatedString(start.Line, start.Column, parts)
}

func (p *Parser) parseIf() ast.Statement {
	start := p.advance() // 'if'
	cond := p.parseExpression(0)
	p.match(token.THEN)
	thenB := p.parseBlock()
	elseB := ast.NewBlock(p.cur().Line, p.cur().Column, nil)
	if p.check(token.ELSE) {
		p.advance()
		elseB = p.parseBlock()
	}
	return ast.NewIf(start.Line, start.Column, cond, thenB, elseB)
}

func (p *Parser) parseLoop() ast.Statement {
	start := p.advance() // 'loop'/'repeat'
	if p.check(token.WHILE) {
		p.advance()
		cond := p.parseExpression(0)
		body := p.parseBlock()
		return ast.NewWhile(start.Line, start.Column, cond, body)
	}
	count := p.parseExpression(0)
	body := p.parseBlock()
	return ast.NewLoop(start.Line, start.Column, count, body)
}

func (p *Parser) parseWhile() ast.Statement {
	start := p.advance() // 'while'
	cond := p.parseExpression(0)
	body := p.parseBlock()
	return ast.NewWhile(start.Line, start.Column, cond, body)
}

func (p *Parser) parseForEach() ast.Statement {
	start := p.advance() // 'foreach'/'for'
	v := p.expect(token.VARIABLE, "expected a $variable after 'foreach'")
	p.expect(token.IN, "expected 'in' after the loop variable")
	iter := p.parseExpression(0)
	body := p.parseBlock()
	return ast.NewForEach(start.Line, start.Column, varName(v), iter, body)
}

func (p *Parser) parseReturn() ast.Statement {
	start := p.advance() // 'return'
	if p.cur().IsStatementEnd() {
		return ast.NewReturn(start.Line, start.Column, nil)
	}
	return ast.NewReturn(start.Line, start.Column, p.parseExpression(0))
}

func (p *Parser) parseFunctionDef() ast.Statement {
	start := p.advance() // 'def'/'func'/'function'
	name := p.expect(token.IDENTIFIER, "expected a function name")
	p.expect(token.LPAREN, "expected '(' after the function name")
	var params []string
	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		pt := p.expect(token.VARIABLE, "expected a $parameter name")
		params = append(params, varName(pt))
		if !p.check(token.RPAREN) {
			p.expect(token.COMMA, "expected ',' between parameters")
		}
	}
	p.expect(token.RPAREN, "expected ')' to close the parameter list")
	body := p.parseBlock()
	return ast.NewFunctionDef(start.Line, start.Column, identName(name), params, body)
}

func identName(t token.Token) string {
	if s, ok := t.Value.(string); ok {
		return s
	}
	return t.Raw
}

// parseCallStatement parses `call name arg*`, consuming primary
// expressions as arguments until the expression-end marker.
func (p *Parser) parseCallStatement() ast.Statement {
	start := p.advance() // 'call'
	name := p.expect(token.IDENTIFIER, "expected a function name after 'call'")
	var args []ast.Expression
	for !p.cur().IsStatementEnd() {
		args = append(args, p.parsePrimary())
	}
	return ast.NewCall(start.Line, start.Column, identName(name), args)
}

func (p *Parser) parseTryCatch() ast.Statement {
	start := p.advance() // 'try'
	body := p.parseBlock()
	p.expect(token.CATCH, "expected 'catch' after the try block")
	errName := "error"
	if p.check(token.VARIABLE) {
		errName = varName(p.advance())
	}
	handler := p.parseBlock()
	return ast.NewTryCatch(start.Line, start.Column, body, errName, handler)
}

// parseEventName parses IDENTIFIER (':' IDENTIFIER)* into a dotted
// string like "window:open" (spec §4.2).
func (p *Parser) parseEventName() string {
	name := p.eventNamePart("expected an event name")
	for p.check(token.COLON) {
		p.advance()
		name += ":" + p.eventNamePart("expected an identifier after ':'")
	}
	return name
}

// eventNamePart accepts an IDENTIFIER or a keyword word (such as the
// "open" in window:open) as one segment of an event name.
func (p *Parser) eventNamePart(msg string) string {
	tok := p.cur()
	if s, ok := tok.Value.(string); ok && token.Keywords[s] == tok.Type {
		p.advance()
		return s
	}
	return identName(p.expect(token.IDENTIFIER, msg))
}

func (p *Parser) parseOn() ast.Statement {
	start := p.advance() // 'on'
	name := p.parseEventName()
	body := p.parseBlock()
	return ast.NewOn(start.Line, start.Column, name, body)
}

// parseKeyValues parses a `key=expr key=expr ...` tail until the
// statement-end marker.
func (p *Parser) parseKeyValues() []ast.KeyValue {
	var kvs []ast.KeyValue
	for !p.cur().IsStatementEnd() {
		key := identName(p.expect(token.IDENTIFIER, "expected a key name"))
		p.expect(token.ASSIGN, "expected '=' after the key name")
		val := p.parsePrimary()
		kvs = append(kvs, ast.KeyValue{Key: key, Value: val})
	}
	return kvs
}

func (p *Parser) parseEmit() ast.Statement {
	start := p.advance() // 'emit'
	name := p.parseEventName()
	kvs := p.parseKeyValues()
	return ast.NewEmit(start.Line, start.Column, name, kvs)
}

func (p *Parser) parseLaunch() ast.Statement {
	start := p.advance() // 'launch'/'open'
	app := p.parsePrimary()
	var params []ast.KeyValue
	if p.check(token.WITH) {
		p.advance()
		params = p.parseKeyValues()
	}
	return ast.NewLaunch(start.Line, start.Column, app, params)
}

func (p *Parser) parseClose() ast.Statement {
	start := p.advance() // 'close'
	var target ast.Expression
	if !p.cur().IsStatementEnd() {
		target = p.parseExpression(0)
	}
	return ast.NewClose(start.Line, start.Column, target)
}

func (p *Parser) parseWait() ast.Statement {
	start := p.advance() // 'wait'/'sleep'
	return ast.NewWait(start.Line, start.Column, p.parseExpression(0))
}

func (p *Parser) parseFocus() ast.Statement {
	start := p.advance() // 'focus'
	return ast.NewFocus(start.Line, start.Column, p.parseExpression(0))
}

func (p *Parser) parseMinimize() ast.Statement {
	start := p.advance() // 'minimize'
	return ast.NewMinimize(start.Line, start.Column, p.parseExpression(0))
}

func (p *Parser) parseMaximize() ast.Statement {
	start := p.advance() // 'maximize'
	return ast.NewMaximize(start.Line, start.Column, p.parseExpression(0))
}

func (p *Parser) parseWrite() ast.Statement {
	start := p.advance() // 'write'
	content := p.parseExpression(0)
	p.expect(token.TO, "expected 'to' in a write statement")
	path := p.parseExpression(0)
	return ast.NewWrite(start.Line, start.Column, content, path)
}

func (p *Parser) parseRead() ast.Statement {
	start := p.advance() // 'read'
	path := p.parseExpression(0)
	p.expect(token.INTO, "expected 'into' in a read statement")
	v := p.expect(token.VARIABLE, "expected a $variable after 'into'")
	return ast.NewRead(start.Line, start.Column, path, varName(v))
}

func (p *Parser) parseMkdir() ast.Statement {
	start := p.advance() // 'mkdir'
	return ast.NewMkdir(start.Line, start.Column, p.parseExpression(0))
}

func (p *Parser) parseDelete() ast.Statement {
	start := p.advance() // 'delete'/'rm'
	return ast.NewDelete(start.Line, start.Column, p.parseExpression(0))
}

func (p *Parser) parseAlert() ast.Statement {
	start := p.advance() // 'alert'
	msg := p.parseMessageLine()
	return ast.NewAlert(start.Line, start.Column, msg)
}

// parseMessageLine implements the print/alert/notify mode choice of
// spec §4.2: a leading STRING or a clean full-expression parse wins;
// anything else becomes unquoted interpolated text.
func (p *Parser) parseMessageLine() ast.Expression {
	if p.check(token.STRING) {
		return p.parseExpression(0)
	}
	if expr, ok := p.tryFullExpression(); ok {
		return expr
	}
	return p.parseUnquotedText()
}

func (p *Parser) parseConfirm() ast.Statement {
	start := p.advance() // 'confirm'
	msg := p.parseExpression(0)
	varName := ""
	if p.check(token.INTO) {
		p.advance()
		varName = varNameOf(p.expect(token.VARIABLE, "expected a $variable after 'into'"))
	}
	return ast.NewConfirm(start.Line, start.Column, msg, varName)
}

func (p *Parser) parsePrompt() ast.Statement {
	start := p.advance() // 'prompt'
	msg := p.parseExpression(0)
	var def ast.Expression
	if p.check(token.DEFAULT) {
		p.advance()
		def = p.parseExpression(0)
	}
	varName := ""
	if p.check(token.INTO) {
		p.advance()
		varName = varNameOf(p.expect(token.VARIABLE, "expected a $variable after 'into'"))
	}
	return ast.NewPrompt(start.Line, start.Column, msg, def, varName)
}

func varNameOf(t token.Token) string { return varName(t) }

func (p *Parser) parseNotify() ast.Statement {
	start := p.advance() // 'notify'
	msg := p.parseMessageLine()
	return ast.NewNotify(start.Line, start.Column, msg)
}

func (p *Parser) parsePlay() ast.Statement {
	start := p.advance() // 'play'
	source := p.parsePrimary()
	kvs := p.parseKeyValues()
	return ast.NewPlay(start.Line, start.Column, source, kvs)
}

func (p *Parser) parseStop() ast.Statement {
	start := p.advance() // 'stop'
	var source ast.Expression
	if !p.cur().IsStatementEnd() {
		source = p.parseExpression(0)
	}
	return ast.NewStop(start.Line, start.Column, source)
}

func (p *Parser) parseVideo() ast.Statement {
	start := p.advance() // 'video'
	source := p.parsePrimary()
	kvs := p.parseKeyValues()
	return ast.NewVideo(start.Line, start.Column, source, kvs)
}

func (p *Parser) parseCommand() ast.Statement {
	start := p.advance() // IDENTIFIER
	var args []ast.Expression
	for !p.cur().IsStatementEnd() {
		args = append(args, p.parsePrimary())
	}
	return ast.NewCommand(start.Line, start.Column, identName(start), args)
}
