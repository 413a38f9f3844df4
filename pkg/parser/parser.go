// Package parser implements a recursive descent parser for the Python
// subset handled by fstrify. Every node in the produced tree carries the
// line and column it occupied in the source.
package parser

import (
	"fmt"

	"github.com/tmorris/fstrify/pkg/lexer"
	"github.com/tmorris/fstrify/pkg/pyast"
)

// Parser parses Python source code into a pyast tree
type Parser struct {
	l         *lexer.Lexer
	curToken  lexer.Token
	peekToken lexer.Token
	errors    []string
}

// New creates a new Parser for the given lexer
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// Errors returns the list of parsing errors
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, fmt.Sprintf("line %d, col %d: %s",
		p.curToken.Line, p.curToken.Column, msg))
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf("expected %s, got %s", t, p.curToken.Type))
	return false
}

func (p *Parser) curPos() pyast.Pos {
	return pyast.Pos{Line: p.curToken.Line, Col: p.curToken.Column}
}

// syncToNewline skips tokens until the start of the next logical line so
// one malformed statement does not cascade.
func (p *Parser) syncToNewline() {
	for !p.curTokenIs(lexer.TokenNewline) && !p.curTokenIs(lexer.TokenEOF) {
		p.nextToken()
	}
	if p.curTokenIs(lexer.TokenNewline) {
		p.nextToken()
	}
}

// endStatement consumes the logical end of a simple statement
func (p *Parser) endStatement() {
	switch p.curToken.Type {
	case lexer.TokenNewline:
		p.nextToken()
	case lexer.TokenEOF, lexer.TokenDedent:
		// fine as-is
	default:
		p.addError(fmt.Sprintf("expected end of statement, got %s", p.curToken.Type))
		p.syncToNewline()
	}
}

// ParseModule parses a complete source file
func (p *Parser) ParseModule() *pyast.Module {
	mod := &pyast.Module{At: pyast.Pos{Line: 1, Col: 0}}
	for !p.curTokenIs(lexer.TokenEOF) {
		if p.curTokenIs(lexer.TokenNewline) {
			p.nextToken()
			continue
		}
		if p.curTokenIs(lexer.TokenIndent) || p.curTokenIs(lexer.TokenDedent) {
			p.addError("unexpected indentation")
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			mod.Body = append(mod.Body, stmt)
		}
	}
	return mod
}

func (p *Parser) parseStatement() pyast.Stmt {
	switch p.curToken.Type {
	case lexer.TokenDef:
		return p.parseFunctionDef()
	case lexer.TokenClass:
		return p.parseClassDef()
	case lexer.TokenIf:
		return p.parseIf(lexer.TokenIf)
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenFor:
		return p.parseFor()
	case lexer.TokenWith:
		return p.parseWith()
	case lexer.TokenTry:
		return p.parseTry()
	case lexer.TokenReturn:
		return p.parseReturn()
	case lexer.TokenRaise:
		return p.parseRaise()
	case lexer.TokenImport:
		return p.parseImport()
	case lexer.TokenBreak:
		stmt := &pyast.Break{At: p.curPos()}
		p.nextToken()
		p.endStatement()
		return stmt
	case lexer.TokenContinue:
		stmt := &pyast.Continue{At: p.curPos()}
		p.nextToken()
		p.endStatement()
		return stmt
	case lexer.TokenPass:
		stmt := &pyast.Pass{At: p.curPos()}
		p.nextToken()
		p.endStatement()
		return stmt
	default:
		return p.parseExprOrAssign()
	}
}

// parseBlock parses `: NEWLINE INDENT stmt+ DEDENT`
func (p *Parser) parseBlock() []pyast.Stmt {
	if !p.expect(lexer.TokenColon) {
		p.syncToNewline()
		return nil
	}
	if !p.expect(lexer.TokenNewline) {
		p.syncToNewline()
		return nil
	}
	if !p.expect(lexer.TokenIndent) {
		return nil
	}
	var body []pyast.Stmt
	for !p.curTokenIs(lexer.TokenDedent) && !p.curTokenIs(lexer.TokenEOF) {
		if p.curTokenIs(lexer.TokenNewline) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			p.syncToNewline()
			continue
		}
		body = append(body, stmt)
	}
	if p.curTokenIs(lexer.TokenDedent) {
		p.nextToken()
	}
	return body
}

func (p *Parser) parseFunctionDef() pyast.Stmt {
	stmt := &pyast.FunctionDef{At: p.curPos()}
	p.nextToken()
	if !p.curTokenIs(lexer.TokenIdent) {
		p.addError(fmt.Sprintf("expected function name, got %s", p.curToken.Type))
		p.syncToNewline()
		return nil
	}
	stmt.Name = p.curToken.Literal
	p.nextToken()
	if !p.expect(lexer.TokenLParen) {
		p.syncToNewline()
		return nil
	}
	stmt.Args = p.parseParams(lexer.TokenRParen)
	if !p.expect(lexer.TokenRParen) {
		p.syncToNewline()
		return nil
	}
	stmt.Body = p.parseBlock()
	return stmt
}

// parseParams parses a formal parameter list up to the closing token
func (p *Parser) parseParams(closing lexer.TokenType) pyast.Arguments {
	var args pyast.Arguments
	for !p.curTokenIs(closing) && !p.curTokenIs(lexer.TokenEOF) {
		if !p.curTokenIs(lexer.TokenIdent) {
			p.addError(fmt.Sprintf("expected parameter name, got %s", p.curToken.Type))
			return args
		}
		args.Args = append(args.Args, &pyast.Arg{At: p.curPos(), Name: p.curToken.Literal})
		p.nextToken()
		if p.curTokenIs(lexer.TokenAssign) {
			p.nextToken()
			args.Defaults = append(args.Defaults, p.parseExpression(LAMBDA))
		} else {
			args.Defaults = append(args.Defaults, nil)
		}
		if p.curTokenIs(lexer.TokenComma) {
			p.nextToken()
		}
	}
	return args
}

func (p *Parser) parseClassDef() pyast.Stmt {
	stmt := &pyast.ClassDef{At: p.curPos()}
	p.nextToken()
	if !p.curTokenIs(lexer.TokenIdent) {
		p.addError(fmt.Sprintf("expected class name, got %s", p.curToken.Type))
		p.syncToNewline()
		return nil
	}
	stmt.Name = p.curToken.Literal
	p.nextToken()
	if p.curTokenIs(lexer.TokenLParen) {
		stmt.HasParens = true
		p.nextToken()
		for !p.curTokenIs(lexer.TokenRParen) && !p.curTokenIs(lexer.TokenEOF) {
			base := p.parseExpression(LAMBDA)
			if base == nil {
				break
			}
			stmt.Bases = append(stmt.Bases, base)
			if p.curTokenIs(lexer.TokenComma) {
				p.nextToken()
			}
		}
		if !p.expect(lexer.TokenRParen) {
			p.syncToNewline()
			return nil
		}
	}
	stmt.Body = p.parseBlock()
	return stmt
}

// parseIf parses an if or elif clause; elif recursion keeps the clause
// column available to the printer through the nested node's position.
func (p *Parser) parseIf(keyword lexer.TokenType) pyast.Stmt {
	stmt := &pyast.If{At: p.curPos()}
	if !p.expect(keyword) {
		return nil
	}
	stmt.Test = p.parseExpression(LAMBDA)
	if stmt.Test == nil {
		p.syncToNewline()
		return nil
	}
	stmt.Body = p.parseBlock()
	switch p.curToken.Type {
	case lexer.TokenElif:
		if tail := p.parseIf(lexer.TokenElif); tail != nil {
			stmt.Orelse = []pyast.Stmt{tail}
		}
	case lexer.TokenElse:
		p.nextToken()
		stmt.Orelse = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseWhile() pyast.Stmt {
	stmt := &pyast.While{At: p.curPos()}
	p.nextToken()
	stmt.Test = p.parseExpression(LAMBDA)
	if stmt.Test == nil {
		p.syncToNewline()
		return nil
	}
	stmt.Body = p.parseBlock()
	return stmt
}

func (p *Parser) parseFor() pyast.Stmt {
	stmt := &pyast.For{At: p.curPos()}
	p.nextToken()
	stmt.Target = p.parseTargetList()
	if stmt.Target == nil {
		p.syncToNewline()
		return nil
	}
	if !p.expect(lexer.TokenIn) {
		p.syncToNewline()
		return nil
	}
	stmt.Iter = p.parseExprList(LAMBDA)
	if stmt.Iter == nil {
		p.syncToNewline()
		return nil
	}
	stmt.Body = p.parseBlock()
	return stmt
}

func (p *Parser) parseWith() pyast.Stmt {
	stmt := &pyast.With{At: p.curPos()}
	p.nextToken()
	for {
		item := &pyast.WithItem{Context: p.parseExpression(LAMBDA)}
		if item.Context == nil {
			p.syncToNewline()
			return nil
		}
		if p.curTokenIs(lexer.TokenAs) {
			p.nextToken()
			item.Vars = p.parseTargetList()
		}
		stmt.Items = append(stmt.Items, item)
		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
	}
	stmt.Body = p.parseBlock()
	return stmt
}

func (p *Parser) parseTry() pyast.Stmt {
	stmt := &pyast.Try{At: p.curPos()}
	p.nextToken()
	stmt.Body = p.parseBlock()
	for p.curTokenIs(lexer.TokenExcept) {
		h := &pyast.ExceptHandler{At: p.curPos()}
		p.nextToken()
		if !p.curTokenIs(lexer.TokenColon) {
			h.Type = p.parseExpression(LAMBDA)
			if p.curTokenIs(lexer.TokenAs) {
				p.nextToken()
				if p.curTokenIs(lexer.TokenIdent) {
					h.Name = p.curToken.Literal
					p.nextToken()
				} else {
					p.addError(fmt.Sprintf("expected name after as, got %s", p.curToken.Type))
				}
			}
		}
		h.Body = p.parseBlock()
		stmt.Handlers = append(stmt.Handlers, h)
	}
	if p.curTokenIs(lexer.TokenElse) {
		p.nextToken()
		stmt.Orelse = p.parseBlock()
	}
	if p.curTokenIs(lexer.TokenFinally) {
		p.nextToken()
		stmt.Final = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseReturn() pyast.Stmt {
	stmt := &pyast.Return{At: p.curPos()}
	p.nextToken()
	if exprStart(p.curToken.Type) {
		stmt.Value = p.parseExprList(LAMBDA)
	}
	p.endStatement()
	return stmt
}

func (p *Parser) parseRaise() pyast.Stmt {
	stmt := &pyast.Raise{At: p.curPos()}
	p.nextToken()
	if exprStart(p.curToken.Type) {
		stmt.Exc = p.parseExpression(LAMBDA)
		if p.curTokenIs(lexer.TokenFrom) {
			p.nextToken()
			stmt.Cause = p.parseExpression(LAMBDA)
		}
	}
	p.endStatement()
	return stmt
}

func (p *Parser) parseImport() pyast.Stmt {
	stmt := &pyast.Import{At: p.curPos()}
	p.nextToken()
	for {
		if !p.curTokenIs(lexer.TokenIdent) {
			p.addError(fmt.Sprintf("expected module name, got %s", p.curToken.Type))
			p.syncToNewline()
			return nil
		}
		alias := pyast.ImportAlias{Name: p.curToken.Literal}
		p.nextToken()
		for p.curTokenIs(lexer.TokenDot) && p.peekTokenIs(lexer.TokenIdent) {
			p.nextToken()
			alias.Name += "." + p.curToken.Literal
			p.nextToken()
		}
		if p.curTokenIs(lexer.TokenAs) {
			p.nextToken()
			if p.curTokenIs(lexer.TokenIdent) {
				alias.AsName = p.curToken.Literal
				p.nextToken()
			} else {
				p.addError(fmt.Sprintf("expected name after as, got %s", p.curToken.Type))
			}
		}
		stmt.Names = append(stmt.Names, alias)
		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
	}
	p.endStatement()
	return stmt
}

// parseExprOrAssign parses an expression statement, assignment, or
// augmented assignment.
func (p *Parser) parseExprOrAssign() pyast.Stmt {
	at := p.curPos()
	first := p.parseExprList(LAMBDA)
	if first == nil {
		p.addError(fmt.Sprintf("unexpected token %s", p.curToken.Type))
		p.syncToNewline()
		return nil
	}

	if op, ok := augAssignOp(p.curToken.Type); ok {
		p.nextToken()
		value := p.parseExprList(LAMBDA)
		if value == nil {
			p.syncToNewline()
			return nil
		}
		p.endStatement()
		return &pyast.AugAssign{At: at, Target: first, Op: op, Value: value}
	}

	if p.curTokenIs(lexer.TokenAssign) {
		parts := []pyast.Expr{first}
		for p.curTokenIs(lexer.TokenAssign) {
			p.nextToken()
			next := p.parseExprList(LAMBDA)
			if next == nil {
				p.syncToNewline()
				return nil
			}
			parts = append(parts, next)
		}
		p.endStatement()
		return &pyast.Assign{
			At:      at,
			Targets: parts[:len(parts)-1],
			Value:   parts[len(parts)-1],
		}
	}

	p.endStatement()
	return &pyast.ExprStmt{At: at, Value: first}
}

func augAssignOp(t lexer.TokenType) (pyast.BinaryOp, bool) {
	switch t {
	case lexer.TokenPlusAssign:
		return pyast.OpAdd, true
	case lexer.TokenMinusAssign:
		return pyast.OpSub, true
	case lexer.TokenStarAssign:
		return pyast.OpMul, true
	case lexer.TokenSlashAssign:
		return pyast.OpDiv, true
	case lexer.TokenDoubleSlashAssign:
		return pyast.OpFloorDiv, true
	case lexer.TokenPercentAssign:
		return pyast.OpMod, true
	case lexer.TokenDoubleStarAssign:
		return pyast.OpPow, true
	case lexer.TokenAtAssign:
		return pyast.OpMatMul, true
	}
	return 0, false
}
