package printer

import "github.com/tmorris/fstrify/pkg/pyast"

func (p *Printer) functionDef(n *pyast.FunctionDef, at pyast.Pos) error {
	p.place("def "+n.Name+"(", at.Line, at.Col)
	if err := p.params(n.Args); err != nil {
		return err
	}
	p.emit("):")
	return p.renderBody(n.Body)
}

func (p *Printer) params(args pyast.Arguments) error {
	for i, a := range args.Args {
		if i > 0 {
			p.emit(",")
		}
		p.place(a.Name, a.At.Line, a.At.Col)
		if d := args.Defaults[i]; d != nil {
			p.emit("=")
			if err := p.Render(d); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Printer) classDef(n *pyast.ClassDef, at pyast.Pos) error {
	p.place("class "+n.Name, at.Line, at.Col)
	if n.HasParens {
		p.emit("(")
		for i, b := range n.Bases {
			if i > 0 {
				p.emit(", ")
			}
			if err := p.Render(b); err != nil {
				return err
			}
		}
		p.emit(")")
	}
	p.emit(":")
	return p.renderBody(n.Body)
}

func (p *Printer) ifStmt(n *pyast.If, keyword string, at pyast.Pos) error {
	p.place(keyword, at.Line, at.Col)
	if n.Test == nil {
		return nodeErr(n, "missing condition")
	}
	if err := p.Render(n.Test); err != nil {
		return err
	}
	p.emit(":")
	if err := p.renderBody(n.Body); err != nil {
		return err
	}
	if len(n.Orelse) == 0 {
		return nil
	}
	// a lone nested if at the same column is an elif chain
	if elif, ok := n.Orelse[0].(*pyast.If); ok && len(n.Orelse) == 1 && elif.At.Col == at.Col {
		return p.ifStmt(elif, "elif", elif.At)
	}
	// the keyword follows the previous clause directly; blank lines
	// before the branch body come from the body's own positions
	p.place("else:", p.line+1, at.Col)
	return p.renderBody(n.Orelse)
}

func (p *Printer) whileStmt(n *pyast.While, at pyast.Pos) error {
	p.place("while", at.Line, at.Col)
	if n.Test == nil {
		return nodeErr(n, "missing condition")
	}
	if err := p.Render(n.Test); err != nil {
		return err
	}
	p.emit(":")
	return p.renderBody(n.Body)
}

func (p *Printer) forStmt(n *pyast.For, at pyast.Pos) error {
	p.place("for", at.Line, at.Col)
	if n.Target == nil || n.Iter == nil {
		return nodeErr(n, "missing loop header")
	}
	if err := p.Render(n.Target); err != nil {
		return err
	}
	p.emit(" in")
	if err := p.Render(n.Iter); err != nil {
		return err
	}
	p.emit(":")
	return p.renderBody(n.Body)
}

func (p *Printer) withStmt(n *pyast.With, at pyast.Pos) error {
	p.place("with", at.Line, at.Col)
	for i, item := range n.Items {
		if i > 0 {
			p.emit(",")
		}
		if item.Context == nil {
			return nodeErr(n, "missing context expression")
		}
		if err := p.Render(item.Context); err != nil {
			return err
		}
		if item.Vars != nil {
			p.emit(" as")
			if err := p.Render(item.Vars); err != nil {
				return err
			}
		}
	}
	p.emit(":")
	return p.renderBody(n.Body)
}

func (p *Printer) tryStmt(n *pyast.Try, at pyast.Pos) error {
	p.place("try:", at.Line, at.Col)
	if err := p.renderBody(n.Body); err != nil {
		return err
	}
	for _, h := range n.Handlers {
		p.place("except", h.At.Line, h.At.Col)
		if h.Type != nil {
			if err := p.Render(h.Type); err != nil {
				return err
			}
		}
		if h.Name != "" {
			p.emit(" as " + h.Name)
		}
		p.emit(":")
		if err := p.renderBody(h.Body); err != nil {
			return err
		}
	}
	if len(n.Orelse) > 0 {
		p.place("else:", p.line+1, at.Col)
		if err := p.renderBody(n.Orelse); err != nil {
			return err
		}
	}
	if len(n.Final) > 0 {
		p.place("finally:", p.line+1, at.Col)
		if err := p.renderBody(n.Final); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) returnStmt(n *pyast.Return, at pyast.Pos) error {
	p.place("return", at.Line, at.Col)
	if n.Value == nil {
		return nil
	}
	return p.Render(n.Value)
}

func (p *Printer) raiseStmt(n *pyast.Raise, at pyast.Pos) error {
	p.place("raise", at.Line, at.Col)
	if n.Exc == nil {
		return nil
	}
	if err := p.Render(n.Exc); err != nil {
		return err
	}
	if n.Cause != nil {
		p.emit(" from")
		return p.Render(n.Cause)
	}
	return nil
}

func (p *Printer) importStmt(n *pyast.Import, at pyast.Pos) error {
	p.place("import", at.Line, at.Col)
	for i, alias := range n.Names {
		if i > 0 {
			p.emit(",")
		}
		p.emit(" " + alias.Name)
		if alias.AsName != "" {
			p.emit(" as " + alias.AsName)
		}
	}
	return nil
}

func (p *Printer) assign(n *pyast.Assign, at pyast.Pos) error {
	for _, t := range n.Targets {
		// tuple targets regain their parenthesis at the position of the
		// first element, so the rest of the line keeps its alignment
		if tup, ok := t.(*pyast.Tuple); ok && len(tup.Elts) > 0 {
			tp := tup.Pos()
			if err := p.renderAt(t, pyast.Pos{Line: tp.Line, Col: tp.Col + 1}); err != nil {
				return err
			}
		} else if err := p.Render(t); err != nil {
			return err
		}
		p.emit(" =")
	}
	if n.Value == nil {
		return nodeErr(n, "missing value")
	}
	return p.Render(n.Value)
}

func (p *Printer) augAssign(n *pyast.AugAssign, at pyast.Pos) error {
	if n.Target == nil || n.Value == nil {
		return nodeErr(n, "missing operand")
	}
	if err := p.Render(n.Target); err != nil {
		return err
	}
	p.emit(" " + n.Op.String() + "=")
	return p.Render(n.Value)
}
