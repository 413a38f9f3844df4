// Package pyast also provides a tree dump printer used for debugging
package pyast

import (
	"fmt"
	"io"
	"strings"
)

// Printer outputs the parse tree in a human-readable indented format
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a new tree printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, indent: 0}
}

// PrintModule prints a complete module
func (p *Printer) PrintModule(m *Module) {
	fmt.Fprintln(p.w, "Module")
	p.indent++
	for _, stmt := range m.Body {
		p.printStmt(stmt)
	}
	p.indent--
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
}

func (p *Printer) line(format string, args ...interface{}) {
	p.writeIndent()
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) printBody(body []Stmt) {
	p.indent++
	for _, stmt := range body {
		p.printStmt(stmt)
	}
	p.indent--
}

func (p *Printer) printStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *FunctionDef:
		p.line("FunctionDef %s(%s) @%d:%d", s.Name, argString(s.Args), s.At.Line, s.At.Col)
		p.printBody(s.Body)
	case *ClassDef:
		bases := make([]string, len(s.Bases))
		for i, b := range s.Bases {
			bases[i] = ExprString(b)
		}
		p.line("ClassDef %s(%s) @%d:%d", s.Name, strings.Join(bases, ", "), s.At.Line, s.At.Col)
		p.printBody(s.Body)
	case *If:
		p.line("If %s @%d:%d", ExprString(s.Test), s.At.Line, s.At.Col)
		p.printBody(s.Body)
		if len(s.Orelse) > 0 {
			p.line("Else")
			p.printBody(s.Orelse)
		}
	case *While:
		p.line("While %s @%d:%d", ExprString(s.Test), s.At.Line, s.At.Col)
		p.printBody(s.Body)
	case *For:
		p.line("For %s in %s @%d:%d", ExprString(s.Target), ExprString(s.Iter), s.At.Line, s.At.Col)
		p.printBody(s.Body)
	case *With:
		items := make([]string, len(s.Items))
		for i, item := range s.Items {
			items[i] = ExprString(item.Context)
			if item.Vars != nil {
				items[i] += " as " + ExprString(item.Vars)
			}
		}
		p.line("With %s @%d:%d", strings.Join(items, ", "), s.At.Line, s.At.Col)
		p.printBody(s.Body)
	case *Try:
		p.line("Try @%d:%d", s.At.Line, s.At.Col)
		p.printBody(s.Body)
		for _, h := range s.Handlers {
			desc := "Except"
			if h.Type != nil {
				desc += " " + ExprString(h.Type)
			}
			if h.Name != "" {
				desc += " as " + h.Name
			}
			p.line("%s @%d:%d", desc, h.At.Line, h.At.Col)
			p.printBody(h.Body)
		}
		if len(s.Orelse) > 0 {
			p.line("Else")
			p.printBody(s.Orelse)
		}
		if len(s.Final) > 0 {
			p.line("Finally")
			p.printBody(s.Final)
		}
	case *Return:
		if s.Value == nil {
			p.line("Return @%d:%d", s.At.Line, s.At.Col)
		} else {
			p.line("Return %s @%d:%d", ExprString(s.Value), s.At.Line, s.At.Col)
		}
	case *Raise:
		desc := "Raise"
		if s.Exc != nil {
			desc += " " + ExprString(s.Exc)
		}
		if s.Cause != nil {
			desc += " from " + ExprString(s.Cause)
		}
		p.line("%s @%d:%d", desc, s.At.Line, s.At.Col)
	case *Import:
		names := make([]string, len(s.Names))
		for i, n := range s.Names {
			names[i] = n.Name
			if n.AsName != "" {
				names[i] += " as " + n.AsName
			}
		}
		p.line("Import %s @%d:%d", strings.Join(names, ", "), s.At.Line, s.At.Col)
	case *Assign:
		targets := make([]string, len(s.Targets))
		for i, t := range s.Targets {
			targets[i] = ExprString(t)
		}
		p.line("Assign %s = %s @%d:%d", strings.Join(targets, " = "), ExprString(s.Value), s.At.Line, s.At.Col)
	case *AugAssign:
		p.line("AugAssign %s %s= %s @%d:%d", ExprString(s.Target), s.Op, ExprString(s.Value), s.At.Line, s.At.Col)
	case *ExprStmt:
		p.line("Expr %s @%d:%d", ExprString(s.Value), s.At.Line, s.At.Col)
	case *Break:
		p.line("Break @%d:%d", s.At.Line, s.At.Col)
	case *Continue:
		p.line("Continue @%d:%d", s.At.Line, s.At.Col)
	case *Pass:
		p.line("Pass @%d:%d", s.At.Line, s.At.Col)
	default:
		p.line("/* unknown statement %T */", stmt)
	}
}

func argString(args Arguments) string {
	parts := make([]string, len(args.Args))
	for i, a := range args.Args {
		parts[i] = a.Name
		if i < len(args.Defaults) && args.Defaults[i] != nil {
			parts[i] += "=" + ExprString(args.Defaults[i])
		}
	}
	return strings.Join(parts, ", ")
}

// ExprString renders an expression as a compact one-line form for dumps
// and diagnostics. It makes grouping explicit and is not layout-faithful.
func ExprString(expr Expr) string {
	switch e := expr.(type) {
	case *BinOp:
		return fmt.Sprintf("(%s %s %s)", ExprString(e.Left), e.Op, ExprString(e.Right))
	case *BoolOp:
		parts := make([]string, len(e.Values))
		for i, v := range e.Values {
			parts[i] = ExprString(v)
		}
		return "(" + strings.Join(parts, " "+e.Op.String()+" ") + ")"
	case *UnaryOp:
		if e.Op == OpNot {
			return "(not " + ExprString(e.Operand) + ")"
		}
		return "(" + e.Op.String() + ExprString(e.Operand) + ")"
	case *Compare:
		var b strings.Builder
		b.WriteString("(" + ExprString(e.Left))
		for i, op := range e.Ops {
			b.WriteString(" " + op.String() + " " + ExprString(e.Comparators[i]))
		}
		b.WriteString(")")
		return b.String()
	case *Lambda:
		return fmt.Sprintf("(lambda %s: %s)", argString(e.Args), ExprString(e.Body))
	case *IfExp:
		return fmt.Sprintf("(%s if %s else %s)", ExprString(e.Body), ExprString(e.Test), ExprString(e.Orelse))
	case *Call:
		parts := make([]string, 0, len(e.Args)+len(e.Keywords))
		for _, a := range e.Args {
			parts = append(parts, ExprString(a))
		}
		for _, kw := range e.Keywords {
			if kw.Arg == "" {
				parts = append(parts, "**"+ExprString(kw.Value))
			} else {
				parts = append(parts, kw.Arg+"="+ExprString(kw.Value))
			}
		}
		return ExprString(e.Func) + "(" + strings.Join(parts, ", ") + ")"
	case *Attribute:
		return ExprString(e.Value) + "." + e.Attr
	case *Subscript:
		return ExprString(e.Value) + "[" + ExprString(e.Index) + "]"
	case *Slice:
		var b strings.Builder
		if e.Lower != nil {
			b.WriteString(ExprString(e.Lower))
		}
		b.WriteString(":")
		if e.Upper != nil {
			b.WriteString(ExprString(e.Upper))
		}
		if e.Step != nil {
			b.WriteString(":" + ExprString(e.Step))
		}
		return b.String()
	case *Yield:
		if e.Value == nil {
			return "(yield)"
		}
		return "(yield " + ExprString(e.Value) + ")"
	case *Name:
		return e.Id
	case *NameConst:
		return e.Value
	case *Num:
		return e.Literal
	case *Str:
		return fmt.Sprintf("%q", e.Value)
	case *FString:
		return e.Raw
	case *Tuple:
		parts := make([]string, len(e.Elts))
		for i, el := range e.Elts {
			parts[i] = ExprString(el)
		}
		if len(parts) == 1 {
			return "(" + parts[0] + ",)"
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *List:
		parts := make([]string, len(e.Elts))
		for i, el := range e.Elts {
			parts[i] = ExprString(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Dict:
		parts := make([]string, len(e.Keys))
		for i := range e.Keys {
			parts[i] = ExprString(e.Keys[i]) + ": " + ExprString(e.Values[i])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("<%T>", expr)
	}
}
