package printer

import "github.com/tmorris/fstrify/pkg/pyast"

// Expression precedence levels, lowest binding first. The paren stack
// compares these to decide when regenerated output needs explicit
// grouping that the tree no longer records.
const precSentinel = -1

const (
	precLowest = iota
	precLambda
	precTernary
	precOr
	precAnd
	precNot
	precComparison
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precSum
	precProduct
	precUnary
	precPower
	precAggregate
)

func binPrec(op pyast.BinaryOp) int {
	switch op {
	case pyast.OpAdd, pyast.OpSub:
		return precSum
	case pyast.OpMul, pyast.OpMatMul, pyast.OpDiv, pyast.OpFloorDiv, pyast.OpMod:
		return precProduct
	case pyast.OpPow:
		return precPower
	case pyast.OpLShift, pyast.OpRShift:
		return precShift
	case pyast.OpBitOr:
		return precBitOr
	case pyast.OpBitXor:
		return precBitXor
	case pyast.OpBitAnd:
		return precBitAnd
	}
	return precLowest
}

func boolPrec(op pyast.BoolOpKind) int {
	if op == pyast.BoolAnd {
		return precAnd
	}
	return precOr
}

// withParens renders body inside parentheses when grouping is required:
// either the enclosing operator binds tighter than prec, or the node
// spans multiple lines at a position the cursor has not reached, meaning
// the original grouping parens were dropped by the parser and must be
// re-synthesized. first and last bound the node's extent.
func (p *Printer) withParens(at pyast.Pos, prec int, first, last pyast.Node, body func() error) error {
	group := p.prec[len(p.prec)-1] > prec
	if !group && first != nil && last != nil && p.pLevel == 0 && p.captureDepth == 0 {
		// the comparison uses the written column: a scheduled operator
		// space has not reached the output yet
		col := p.col
		if p.pendingSpace {
			col--
		}
		if first.Pos().Line != last.Pos().Line && at.After(p.line, col) {
			group = true
		}
	}
	if group {
		// the dropped source parenthesis sat one column left of the node
		p.place("(", at.Line, at.Col-1)
		p.prec = append(p.prec, precSentinel)
		p.pLevel++
	} else {
		p.prec = append(p.prec, prec)
	}
	err := body()
	p.prec = p.prec[:len(p.prec)-1]
	if group {
		p.pLevel--
		p.emit(")")
	}
	return err
}
