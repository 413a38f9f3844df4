package printer

import (
	"github.com/tmorris/fstrify/pkg/format"
	"github.com/tmorris/fstrify/pkg/pyast"
)

// opSep writes an infix operator with one space on each side. The
// trailing space is scheduled rather than written, so an operand that
// continues on the next line leaves no space at the end of this one.
func (p *Printer) opSep(op string) {
	p.emit(" " + op)
	p.spaceAfter()
}

func (p *Printer) spaceAfter() {
	if p.captureDepth > 0 {
		p.emit(" ")
		return
	}
	p.pendingSpace = true
	p.col++
}

// comma separates display elements, with the same capture rule as opSep
func (p *Printer) comma() {
	p.emit(",")
	if p.captureDepth > 0 {
		p.emit(" ")
	}
}

func (p *Printer) binOp(n *pyast.BinOp, at pyast.Pos) error {
	if n.Left == nil || n.Right == nil {
		return nodeErr(n, "missing operand")
	}
	if n.Op == pyast.OpMod {
		done, err := p.rewriteFormat(n, at)
		if done || err != nil {
			return err
		}
	}
	return p.withParens(at, binPrec(n.Op), n.Left, n.Right, func() error {
		if err := p.Render(n.Left); err != nil {
			return err
		}
		p.opSep(n.Op.String())
		return p.Render(n.Right)
	})
}

func (p *Printer) boolOp(n *pyast.BoolOp, at pyast.Pos) error {
	if len(n.Values) == 0 {
		return nodeErr(n, "empty operand chain")
	}
	first := n.Values[0]
	last := n.Values[len(n.Values)-1]
	return p.withParens(at, boolPrec(n.Op), first, last, func() error {
		for i, v := range n.Values {
			if i > 0 {
				p.opSep(n.Op.String())
			}
			if err := p.Render(v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *Printer) unaryOp(n *pyast.UnaryOp, at pyast.Pos) error {
	if n.Operand == nil {
		return nodeErr(n, "missing operand")
	}
	prec := precUnary
	if n.Op == pyast.OpNot {
		prec = precNot
	}
	return p.withParens(at, prec, n, n.Operand, func() error {
		p.place(n.Op.String(), at.Line, at.Col)
		if n.Op == pyast.OpNot && p.captureDepth > 0 {
			p.emit(" ")
		}
		return p.Render(n.Operand)
	})
}

func (p *Printer) compare(n *pyast.Compare) error {
	if n.Left == nil || len(n.Ops) == 0 || len(n.Ops) != len(n.Comparators) {
		return nodeErr(n, "malformed comparison")
	}
	last := n.Comparators[len(n.Comparators)-1]
	return p.withParens(n.At, precComparison, n.Left, last, func() error {
		if err := p.Render(n.Left); err != nil {
			return err
		}
		for i, op := range n.Ops {
			p.opSep(op.String())
			if err := p.Render(n.Comparators[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *Printer) lambda(n *pyast.Lambda, at pyast.Pos) error {
	if n.Body == nil {
		return nodeErr(n, "missing body")
	}
	return p.withParens(at, precLambda, n, n.Body, func() error {
		p.place("lambda", at.Line, at.Col)
		if len(n.Args.Args) > 0 && p.captureDepth > 0 {
			p.emit(" ")
		}
		if err := p.params(n.Args); err != nil {
			return err
		}
		p.emit(":")
		if p.captureDepth > 0 {
			p.emit(" ")
		}
		return p.Render(n.Body)
	})
}

func (p *Printer) ifExp(n *pyast.IfExp) error {
	if n.Body == nil || n.Test == nil || n.Orelse == nil {
		return nodeErr(n, "malformed conditional expression")
	}
	return p.withParens(n.At, precTernary, n.Body, n.Orelse, func() error {
		if err := p.Render(n.Body); err != nil {
			return err
		}
		p.opSep("if")
		if err := p.Render(n.Test); err != nil {
			return err
		}
		p.opSep("else")
		return p.Render(n.Orelse)
	})
}

func (p *Printer) call(n *pyast.Call) error {
	if n.Func == nil {
		return nodeErr(n, "missing callee")
	}
	if err := p.Render(n.Func); err != nil {
		return err
	}
	p.emit("(")
	first := true
	for _, a := range n.Args {
		if !first {
			p.comma()
		}
		first = false
		if err := p.Render(a); err != nil {
			return err
		}
	}
	for _, kw := range n.Keywords {
		if kw.Value == nil {
			return nodeErr(n, "missing keyword value")
		}
		if !first {
			p.comma()
		}
		first = false
		vp := kw.Value.Pos()
		if kw.Arg == "" {
			p.placeBefore("**", vp.Line, vp.Col)
		} else {
			p.placeBefore(kw.Arg+"=", vp.Line, vp.Col)
		}
		if err := p.Render(kw.Value); err != nil {
			return err
		}
	}
	p.emit(")")
	return nil
}

func (p *Printer) attribute(n *pyast.Attribute) error {
	if n.Value == nil {
		return nodeErr(n, "missing value")
	}
	if err := p.Render(n.Value); err != nil {
		return err
	}
	p.emit("." + n.Attr)
	return nil
}

func (p *Printer) subscript(n *pyast.Subscript) error {
	if n.Value == nil || n.Index == nil {
		return nodeErr(n, "missing operand")
	}
	if err := p.Render(n.Value); err != nil {
		return err
	}
	p.emit("[")
	if err := p.Render(n.Index); err != nil {
		return err
	}
	p.emit("]")
	return nil
}

func (p *Printer) slice(n *pyast.Slice) error {
	if n.Lower != nil {
		if err := p.Render(n.Lower); err != nil {
			return err
		}
	}
	p.emit(":")
	if n.Upper != nil {
		if err := p.Render(n.Upper); err != nil {
			return err
		}
	}
	if n.Step != nil {
		p.emit(":")
		return p.Render(n.Step)
	}
	return nil
}

func (p *Printer) yield(n *pyast.Yield, at pyast.Pos) error {
	p.place("yield", at.Line, at.Col)
	if n.Value == nil {
		return nil
	}
	if p.captureDepth > 0 {
		p.emit(" ")
	}
	return p.Render(n.Value)
}

func (p *Printer) strLit(n *pyast.Str, at pyast.Pos) {
	p.place(format.Quote(n.Value), at.Line, at.Col)
}

func (p *Printer) tuple(n *pyast.Tuple, at pyast.Pos) error {
	if len(n.Elts) == 0 {
		p.place("()", at.Line, at.Col)
		return nil
	}
	p.place("(", at.Line, at.Col-1)
	for i, e := range n.Elts {
		if i > 0 {
			p.comma()
		}
		if err := p.Render(e); err != nil {
			return err
		}
	}
	if len(n.Elts) == 1 {
		p.emit(",")
	}
	p.emit(")")
	return nil
}

func (p *Printer) list(n *pyast.List, at pyast.Pos) error {
	p.place("[", at.Line, at.Col)
	for i, e := range n.Elts {
		if i > 0 {
			p.comma()
		}
		if err := p.Render(e); err != nil {
			return err
		}
	}
	p.emit("]")
	return nil
}

func (p *Printer) dict(n *pyast.Dict, at pyast.Pos) error {
	if len(n.Keys) != len(n.Values) {
		return nodeErr(n, "mismatched key and value lists")
	}
	p.place("{", at.Line, at.Col)
	for i, k := range n.Keys {
		if i > 0 {
			p.comma()
		}
		if err := p.Render(k); err != nil {
			return err
		}
		p.emit(":")
		if p.captureDepth > 0 {
			p.emit(" ")
		}
		if err := p.Render(n.Values[i]); err != nil {
			return err
		}
	}
	p.emit("}")
	return nil
}
