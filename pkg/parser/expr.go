package parser

import (
	"fmt"

	"github.com/tmorris/fstrify/pkg/lexer"
	"github.com/tmorris/fstrify/pkg/pyast"
)

// Binding powers for the expression parser, lowest first. The ordering
// mirrors Python's operator precedence.
const (
	LOWEST = iota
	LAMBDA
	TERNARY
	OR
	AND
	NOT
	COMPARISON
	BITOR
	BITXOR
	BITAND
	SHIFT
	SUM
	PRODUCT
	PREFIX
	POWER
	CALL
)

// exprStart reports whether a token can begin an expression
func exprStart(t lexer.TokenType) bool {
	switch t {
	case lexer.TokenIdent, lexer.TokenNumber, lexer.TokenString, lexer.TokenFString,
		lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNone,
		lexer.TokenLParen, lexer.TokenLBracket, lexer.TokenLBrace,
		lexer.TokenMinus, lexer.TokenPlus, lexer.TokenTilde,
		lexer.TokenNot, lexer.TokenLambda, lexer.TokenYield:
		return true
	}
	return false
}

// infixPrecedence returns the binding power of the operator at curToken,
// or ok=false when curToken is not an infix operator.
func (p *Parser) infixPrecedence() (int, bool) {
	switch p.curToken.Type {
	case lexer.TokenIf:
		return TERNARY, true
	case lexer.TokenOr:
		return OR, true
	case lexer.TokenAnd:
		return AND, true
	case lexer.TokenNot:
		// `not in` is the only infix use of `not`
		if p.peekTokenIs(lexer.TokenIn) {
			return COMPARISON, true
		}
		return 0, false
	case lexer.TokenLt, lexer.TokenGt, lexer.TokenLe, lexer.TokenGe,
		lexer.TokenEq, lexer.TokenNe, lexer.TokenIn, lexer.TokenIs:
		return COMPARISON, true
	case lexer.TokenPipe:
		return BITOR, true
	case lexer.TokenCaret:
		return BITXOR, true
	case lexer.TokenAmpersand:
		return BITAND, true
	case lexer.TokenShl, lexer.TokenShr:
		return SHIFT, true
	case lexer.TokenPlus, lexer.TokenMinus:
		return SUM, true
	case lexer.TokenStar, lexer.TokenSlash, lexer.TokenDoubleSlash,
		lexer.TokenPercent, lexer.TokenAt:
		return PRODUCT, true
	case lexer.TokenDoubleStar:
		return POWER, true
	case lexer.TokenLParen, lexer.TokenLBracket, lexer.TokenDot:
		return CALL, true
	}
	return 0, false
}

func binaryOpFor(t lexer.TokenType) pyast.BinaryOp {
	switch t {
	case lexer.TokenPlus:
		return pyast.OpAdd
	case lexer.TokenMinus:
		return pyast.OpSub
	case lexer.TokenStar:
		return pyast.OpMul
	case lexer.TokenAt:
		return pyast.OpMatMul
	case lexer.TokenSlash:
		return pyast.OpDiv
	case lexer.TokenDoubleSlash:
		return pyast.OpFloorDiv
	case lexer.TokenPercent:
		return pyast.OpMod
	case lexer.TokenDoubleStar:
		return pyast.OpPow
	case lexer.TokenShl:
		return pyast.OpLShift
	case lexer.TokenShr:
		return pyast.OpRShift
	case lexer.TokenPipe:
		return pyast.OpBitOr
	case lexer.TokenCaret:
		return pyast.OpBitXor
	}
	return pyast.OpBitAnd
}

// parseExpression parses an expression consuming every infix operator of
// binding power minPrec or higher.
func (p *Parser) parseExpression(minPrec int) pyast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for {
		prec, ok := p.infixPrecedence()
		if !ok || prec < minPrec {
			return left
		}
		left = p.parseInfix(left, prec)
		if left == nil {
			return nil
		}
	}
}

func (p *Parser) parseInfix(left pyast.Expr, prec int) pyast.Expr {
	switch p.curToken.Type {
	case lexer.TokenIf:
		p.nextToken()
		test := p.parseExpression(OR)
		if test == nil {
			return nil
		}
		if !p.expect(lexer.TokenElse) {
			return nil
		}
		orelse := p.parseExpression(TERNARY)
		if orelse == nil {
			return nil
		}
		return &pyast.IfExp{At: left.Pos(), Body: left, Test: test, Orelse: orelse}

	case lexer.TokenOr, lexer.TokenAnd:
		kind := pyast.BoolOr
		if p.curTokenIs(lexer.TokenAnd) {
			kind = pyast.BoolAnd
		}
		p.nextToken()
		right := p.parseExpression(prec + 1)
		if right == nil {
			return nil
		}
		if b, ok := left.(*pyast.BoolOp); ok && b.Op == kind {
			b.Values = append(b.Values, right)
			return b
		}
		return &pyast.BoolOp{At: left.Pos(), Op: kind, Values: []pyast.Expr{left, right}}

	case lexer.TokenLt, lexer.TokenGt, lexer.TokenLe, lexer.TokenGe,
		lexer.TokenEq, lexer.TokenNe, lexer.TokenIn, lexer.TokenIs, lexer.TokenNot:
		op := p.parseCmpOp()
		right := p.parseExpression(COMPARISON + 1)
		if right == nil {
			return nil
		}
		if cmp, ok := left.(*pyast.Compare); ok {
			cmp.Ops = append(cmp.Ops, op)
			cmp.Comparators = append(cmp.Comparators, right)
			return cmp
		}
		return &pyast.Compare{
			At:          left.Pos(),
			Left:        left,
			Ops:         []pyast.CmpOp{op},
			Comparators: []pyast.Expr{right},
		}

	case lexer.TokenLParen:
		return p.parseCall(left)

	case lexer.TokenLBracket:
		return p.parseSubscript(left)

	case lexer.TokenDot:
		p.nextToken()
		if !p.curTokenIs(lexer.TokenIdent) {
			p.addError(fmt.Sprintf("expected attribute name, got %s", p.curToken.Type))
			return nil
		}
		attr := p.curToken.Literal
		p.nextToken()
		return &pyast.Attribute{At: left.Pos(), Value: left, Attr: attr}

	default:
		op := binaryOpFor(p.curToken.Type)
		p.nextToken()
		rightPrec := prec + 1
		if op == pyast.OpPow {
			// ** is right-associative
			rightPrec = POWER
		}
		right := p.parseExpression(rightPrec)
		if right == nil {
			return nil
		}
		return &pyast.BinOp{At: left.Pos(), Left: left, Op: op, Right: right}
	}
}

// parseCmpOp consumes one comparison operator, including the two-token
// forms `not in` and `is not`.
func (p *Parser) parseCmpOp() pyast.CmpOp {
	t := p.curToken.Type
	p.nextToken()
	switch t {
	case lexer.TokenLt:
		return pyast.CmpLt
	case lexer.TokenGt:
		return pyast.CmpGt
	case lexer.TokenLe:
		return pyast.CmpLe
	case lexer.TokenGe:
		return pyast.CmpGe
	case lexer.TokenEq:
		return pyast.CmpEq
	case lexer.TokenNe:
		return pyast.CmpNe
	case lexer.TokenIn:
		return pyast.CmpIn
	case lexer.TokenNot:
		p.expect(lexer.TokenIn)
		return pyast.CmpNotIn
	case lexer.TokenIs:
		if p.curTokenIs(lexer.TokenNot) {
			p.nextToken()
			return pyast.CmpIsNot
		}
		return pyast.CmpIs
	}
	return pyast.CmpEq
}

func (p *Parser) parseCall(fn pyast.Expr) pyast.Expr {
	call := &pyast.Call{At: fn.Pos(), Func: fn}
	p.nextToken()
	for !p.curTokenIs(lexer.TokenRParen) && !p.curTokenIs(lexer.TokenEOF) {
		if p.curTokenIs(lexer.TokenDoubleStar) {
			p.nextToken()
			value := p.parseExpression(LAMBDA)
			if value == nil {
				return nil
			}
			call.Keywords = append(call.Keywords, &pyast.Keyword{Value: value})
		} else {
			arg := p.parseExpression(LAMBDA)
			if arg == nil {
				return nil
			}
			if name, ok := arg.(*pyast.Name); ok && p.curTokenIs(lexer.TokenAssign) {
				p.nextToken()
				value := p.parseExpression(LAMBDA)
				if value == nil {
					return nil
				}
				call.Keywords = append(call.Keywords, &pyast.Keyword{Arg: name.Id, Value: value})
			} else {
				call.Args = append(call.Args, arg)
			}
		}
		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
	}
	if !p.expect(lexer.TokenRParen) {
		return nil
	}
	return call
}

func (p *Parser) parseSubscript(value pyast.Expr) pyast.Expr {
	bracket := p.curPos()
	p.nextToken()
	var lower, upper, step pyast.Expr
	isSlice := false
	if !p.curTokenIs(lexer.TokenColon) {
		lower = p.parseExpression(LAMBDA)
		if lower == nil {
			return nil
		}
	}
	if p.curTokenIs(lexer.TokenColon) {
		isSlice = true
		p.nextToken()
		if !p.curTokenIs(lexer.TokenRBracket) && !p.curTokenIs(lexer.TokenColon) {
			upper = p.parseExpression(LAMBDA)
		}
		if p.curTokenIs(lexer.TokenColon) {
			p.nextToken()
			if !p.curTokenIs(lexer.TokenRBracket) {
				step = p.parseExpression(LAMBDA)
			}
		}
	}
	if !p.expect(lexer.TokenRBracket) {
		return nil
	}
	index := lower
	if isSlice {
		index = &pyast.Slice{At: bracket, Lower: lower, Upper: upper, Step: step}
	}
	return &pyast.Subscript{At: value.Pos(), Value: value, Index: index}
}

func (p *Parser) parseUnary() pyast.Expr {
	at := p.curPos()
	switch p.curToken.Type {
	case lexer.TokenMinus, lexer.TokenPlus, lexer.TokenTilde:
		op := pyast.OpInvert
		if p.curTokenIs(lexer.TokenMinus) {
			op = pyast.OpUSub
		} else if p.curTokenIs(lexer.TokenPlus) {
			op = pyast.OpUAdd
		}
		p.nextToken()
		operand := p.parseExpression(POWER)
		if operand == nil {
			return nil
		}
		return &pyast.UnaryOp{At: at, Op: op, Operand: operand}

	case lexer.TokenNot:
		p.nextToken()
		operand := p.parseExpression(NOT)
		if operand == nil {
			return nil
		}
		return &pyast.UnaryOp{At: at, Op: pyast.OpNot, Operand: operand}

	case lexer.TokenLambda:
		p.nextToken()
		args := p.parseParams(lexer.TokenColon)
		if !p.expect(lexer.TokenColon) {
			return nil
		}
		body := p.parseExpression(LAMBDA)
		if body == nil {
			return nil
		}
		return &pyast.Lambda{At: at, Args: args, Body: body}

	case lexer.TokenYield:
		p.nextToken()
		y := &pyast.Yield{At: at}
		if exprStart(p.curToken.Type) {
			y.Value = p.parseExprList(LAMBDA)
		}
		return y

	case lexer.TokenNumber:
		lit := p.curToken.Literal
		p.nextToken()
		return &pyast.Num{At: at, Literal: lit}

	case lexer.TokenString:
		value := lexer.Unquote(p.curToken.Literal)
		p.nextToken()
		return &pyast.Str{At: at, Value: value}

	case lexer.TokenFString:
		raw := p.curToken.Literal
		p.nextToken()
		return &pyast.FString{At: at, Raw: raw}

	case lexer.TokenIdent:
		id := p.curToken.Literal
		p.nextToken()
		return &pyast.Name{At: at, Id: id}

	case lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNone:
		value := p.curToken.Literal
		p.nextToken()
		return &pyast.NameConst{At: at, Value: value}

	case lexer.TokenLParen:
		return p.parseParenExpr(at)

	case lexer.TokenLBracket:
		p.nextToken()
		list := &pyast.List{At: at}
		for !p.curTokenIs(lexer.TokenRBracket) && !p.curTokenIs(lexer.TokenEOF) {
			elt := p.parseExpression(LAMBDA)
			if elt == nil {
				return nil
			}
			list.Elts = append(list.Elts, elt)
			if !p.curTokenIs(lexer.TokenComma) {
				break
			}
			p.nextToken()
		}
		if !p.expect(lexer.TokenRBracket) {
			return nil
		}
		return list

	case lexer.TokenLBrace:
		p.nextToken()
		dict := &pyast.Dict{At: at}
		for !p.curTokenIs(lexer.TokenRBrace) && !p.curTokenIs(lexer.TokenEOF) {
			key := p.parseExpression(LAMBDA)
			if key == nil || !p.expect(lexer.TokenColon) {
				return nil
			}
			value := p.parseExpression(LAMBDA)
			if value == nil {
				return nil
			}
			dict.Keys = append(dict.Keys, key)
			dict.Values = append(dict.Values, value)
			if !p.curTokenIs(lexer.TokenComma) {
				break
			}
			p.nextToken()
		}
		if !p.expect(lexer.TokenRBrace) {
			return nil
		}
		return dict
	}

	p.addError(fmt.Sprintf("unexpected token %s in expression", p.curToken.Type))
	return nil
}

// parseParenExpr parses a parenthesized expression or tuple display. A
// bare grouped expression keeps its own node positions; a tuple's
// position is that of its first element, with the parenthesis implied
// one column to the left.
func (p *Parser) parseParenExpr(lparen pyast.Pos) pyast.Expr {
	p.nextToken()
	if p.curTokenIs(lexer.TokenRParen) {
		p.nextToken()
		return &pyast.Tuple{At: lparen}
	}
	first := p.parseExpression(LAMBDA)
	if first == nil {
		return nil
	}
	if !p.curTokenIs(lexer.TokenComma) {
		if !p.expect(lexer.TokenRParen) {
			return nil
		}
		return first
	}
	tuple := &pyast.Tuple{At: first.Pos(), Elts: []pyast.Expr{first}}
	for p.curTokenIs(lexer.TokenComma) {
		p.nextToken()
		if p.curTokenIs(lexer.TokenRParen) {
			break
		}
		elt := p.parseExpression(LAMBDA)
		if elt == nil {
			return nil
		}
		tuple.Elts = append(tuple.Elts, elt)
	}
	if !p.expect(lexer.TokenRParen) {
		return nil
	}
	return tuple
}

// parseExprList parses a comma-separated expression list, yielding a
// bare (unparenthesized) tuple when more than one element is present.
func (p *Parser) parseExprList(minPrec int) pyast.Expr {
	first := p.parseExpression(minPrec)
	if first == nil {
		return nil
	}
	if !p.curTokenIs(lexer.TokenComma) {
		return first
	}
	tuple := &pyast.Tuple{At: first.Pos(), Elts: []pyast.Expr{first}}
	for p.curTokenIs(lexer.TokenComma) {
		p.nextToken()
		if !exprStart(p.curToken.Type) {
			break
		}
		elt := p.parseExpression(minPrec)
		if elt == nil {
			return nil
		}
		tuple.Elts = append(tuple.Elts, elt)
	}
	return tuple
}

// parseTargetList parses an assignment or loop target list. Elements are
// parsed above comparison precedence so a following `in` keyword is left
// for the caller.
func (p *Parser) parseTargetList() pyast.Expr {
	first := p.parseExpression(BITOR)
	if first == nil {
		return nil
	}
	if !p.curTokenIs(lexer.TokenComma) {
		return first
	}
	tuple := &pyast.Tuple{At: first.Pos(), Elts: []pyast.Expr{first}}
	for p.curTokenIs(lexer.TokenComma) {
		p.nextToken()
		if !exprStart(p.curToken.Type) {
			break
		}
		elt := p.parseExpression(BITOR)
		if elt == nil {
			return nil
		}
		tuple.Elts = append(tuple.Elts, elt)
	}
	return tuple
}
