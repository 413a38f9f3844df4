package printer

import (
	"github.com/tmorris/fstrify/pkg/format"
	"github.com/tmorris/fstrify/pkg/pyast"
)

// rewriteFormat turns a %-format of a literal template string into an
// interpolated string literal: 'x=%s' % (x,) becomes f'x={x}'. It
// reports false, leaving the output untouched, whenever the expression
// does not qualify; the caller then renders the % expression verbatim.
//
// Qualifying means the left operand is a plain string literal, every
// directive in it is a display or repr conversion, and the number of
// directives matches the number of supplied operands exactly. Literal
// text and captured operand text are both escaped for the generated
// single-quoted literal.
func (p *Printer) rewriteFormat(n *pyast.BinOp, at pyast.Pos) (bool, error) {
	tmpl, ok := n.Left.(*pyast.Str)
	if !ok {
		return false, nil
	}
	pieces, ok := format.Scan(tmpl.Value)
	if !ok {
		return false, nil
	}
	var args []pyast.Expr
	if tup, isTuple := n.Right.(*pyast.Tuple); isTuple {
		args = tup.Elts
	} else {
		args = []pyast.Expr{n.Right}
	}
	if format.CountSubs(pieces) != len(args) {
		return false, nil
	}

	p.place("f'", at.Line, at.Col)
	next := 0
	for _, piece := range pieces {
		if !piece.Sub {
			p.emit(format.EscapeInner(piece.Text))
			continue
		}
		arg := args[next]
		next++
		p.emit("{")
		text, err := p.capture(func() error { return p.Render(arg) })
		if err != nil {
			return true, err
		}
		p.emit(format.EscapeInner(text))
		p.emit(piece.Conv.Suffix())
		p.emit("}")
	}
	p.emit("'")
	return true, nil
}
