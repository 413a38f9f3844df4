// Package printer regenerates source text from an annotated parse tree.
// It reconstructs the original whitespace layout from recorded node
// positions, rewriting eligible %-format expressions into interpolated
// string literals along the way. Everything it does not rewrite is
// reproduced byte for byte.
package printer

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/tmorris/fstrify/pkg/pyast"
)

// Printer holds the output cursor and rendering state for one run
type Printer struct {
	w    io.Writer
	errw io.Writer

	line int // 1-based output line
	col  int // 0-based output column

	// output window; lines outside it are computed but not written
	firstLine int
	lastLine  int

	pLevel int   // depth of grouping parens opened by the emitter
	prec   []int // minimum-precedence stack, sentinel at the bottom

	// a scheduled operator space, already counted in col; it turns into
	// a real space before the next same-line text and dissolves when a
	// newline arrives first
	pendingSpace bool

	captureDepth int
	sink         func(string) // active capture target, nil at depth 0

	override    pyast.Pos // render position override, consumed once
	hasOverride bool

	source []string // original input lines for diagnostics
}

// New creates a Printer writing regenerated source to w
func New(w io.Writer) *Printer {
	return &Printer{
		w:         w,
		errw:      os.Stderr,
		line:      1,
		firstLine: 1,
		lastLine:  math.MaxInt,
		prec:      []int{precSentinel},
	}
}

// SetErrOutput redirects diagnostic output, which defaults to stderr
func (p *Printer) SetErrOutput(w io.Writer) {
	p.errw = w
}

// SetSource provides the original input so diagnostics can show the
// offending line with a caret.
func (p *Printer) SetSource(src string) {
	p.source = strings.Split(src, "\n")
}

// SetWindow restricts written output to lines in [first, last] inclusive.
// Cursor bookkeeping is unaffected; only visible bytes are suppressed.
func (p *Printer) SetWindow(first, last int) {
	p.firstLine = first
	p.lastLine = last
}

// Line returns the cursor's current output line
func (p *Printer) Line() int { return p.line }

// Col returns the cursor's current output column
func (p *Printer) Col() int { return p.col }

// Finish emits the final trailing newline when the cursor is mid-line
func (p *Printer) Finish() {
	if p.col > 0 {
		p.emit("\n")
	}
}

// emit writes text with no padding, advancing the cursor across embedded
// newlines. It is the single point where bytes reach the output, and the
// only place the output window is applied. Inside a capture the text goes
// to the capture buffer and the cursor stays frozen.
func (p *Printer) emit(s string) {
	if p.captureDepth > 0 {
		p.sink(s)
		return
	}
	if p.pendingSpace && s != "" {
		p.pendingSpace = false
		p.col--
		if s[0] != '\n' {
			s = " " + s
		}
	}
	for len(s) > 0 {
		chunk := s
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			chunk, s = s[:i+1], s[i+1:]
		} else {
			s = ""
		}
		if p.firstLine <= p.line && p.line <= p.lastLine {
			io.WriteString(p.w, chunk)
		}
		if strings.HasSuffix(chunk, "\n") {
			p.line++
			p.col = 0
		} else {
			p.col += len(chunk)
		}
	}
}

// place pads the stream with newlines and spaces until the cursor
// reaches (line, col), then emits text. A target position behind the
// cursor pads nothing.
func (p *Printer) place(s string, line, col int) {
	if p.captureDepth > 0 {
		p.emit(s)
		return
	}
	if p.line < line {
		p.emit(strings.Repeat("\n", line-p.line))
	}
	if p.col < col {
		p.emit(strings.Repeat(" ", col-p.col))
	}
	p.emit(s)
}

// placeBefore places text so that it ends at (line, col)
func (p *Printer) placeBefore(s string, line, col int) {
	c := col - len(s)
	if c < 0 {
		c = 0
	}
	p.place(s, line, c)
}

// capture renders fn into a private buffer. The previous emission target
// and cursor position are restored on every exit path, including when fn
// fails.
func (p *Printer) capture(fn func() error) (string, error) {
	var buf strings.Builder
	line, col := p.line, p.col
	prevSink := p.sink
	precLen := len(p.prec)
	p.sink = func(s string) { buf.WriteString(s) }
	p.prec = append(p.prec, precSentinel)
	p.captureDepth++
	defer func() {
		p.captureDepth--
		p.prec = p.prec[:precLen]
		p.sink = prevSink
		p.line, p.col = line, col
	}()
	err := fn()
	return buf.String(), err
}

// renderAt renders node as if it were located at the given position,
// without touching the node's own recorded position.
func (p *Printer) renderAt(node pyast.Node, at pyast.Pos) error {
	p.override = at
	p.hasOverride = true
	return p.Render(node)
}

// startPos returns the position node should be laid out at, consuming a
// pending override if one is set.
func (p *Printer) startPos(node pyast.Node) pyast.Pos {
	if p.hasOverride {
		p.hasOverride = false
		return p.override
	}
	return node.Pos()
}

// NodeError reports a structurally malformed node encountered while
// rendering.
type NodeError struct {
	Node pyast.Node
	Msg  string
}

func (e *NodeError) Error() string {
	pos := e.Node.Pos()
	return fmt.Sprintf("line %d, col %d: %T %s", pos.Line, pos.Col, e.Node, e.Msg)
}

func nodeErr(n pyast.Node, msg string) error {
	return &NodeError{Node: n, Msg: msg}
}

// Render emits one node. Every call is guarded: on failure the node's
// original source line and a caret are written to the error stream
// before the error propagates.
func (p *Printer) Render(node pyast.Node) error {
	at := p.startPos(node)
	if err := p.renderNode(node, at); err != nil {
		p.backtrace(node)
		return err
	}
	return nil
}

func (p *Printer) renderNode(node pyast.Node, at pyast.Pos) error {
	switch n := node.(type) {
	case *pyast.Module:
		return p.renderBody(n.Body)
	case *pyast.FunctionDef:
		return p.functionDef(n, at)
	case *pyast.ClassDef:
		return p.classDef(n, at)
	case *pyast.If:
		return p.ifStmt(n, "if", at)
	case *pyast.While:
		return p.whileStmt(n, at)
	case *pyast.For:
		return p.forStmt(n, at)
	case *pyast.With:
		return p.withStmt(n, at)
	case *pyast.Try:
		return p.tryStmt(n, at)
	case *pyast.Return:
		return p.returnStmt(n, at)
	case *pyast.Raise:
		return p.raiseStmt(n, at)
	case *pyast.Import:
		return p.importStmt(n, at)
	case *pyast.Assign:
		return p.assign(n, at)
	case *pyast.AugAssign:
		return p.augAssign(n, at)
	case *pyast.ExprStmt:
		if n.Value == nil {
			return nodeErr(n, "missing expression")
		}
		return p.Render(n.Value)
	case *pyast.Break:
		p.place("break", at.Line, at.Col)
		return nil
	case *pyast.Continue:
		p.place("continue", at.Line, at.Col)
		return nil
	case *pyast.Pass:
		p.place("pass", at.Line, at.Col)
		return nil
	case *pyast.BinOp:
		return p.binOp(n, at)
	case *pyast.BoolOp:
		return p.boolOp(n, at)
	case *pyast.UnaryOp:
		return p.unaryOp(n, at)
	case *pyast.Compare:
		return p.compare(n)
	case *pyast.Lambda:
		return p.lambda(n, at)
	case *pyast.IfExp:
		return p.ifExp(n)
	case *pyast.Call:
		return p.call(n)
	case *pyast.Attribute:
		return p.attribute(n)
	case *pyast.Subscript:
		return p.subscript(n)
	case *pyast.Slice:
		return p.slice(n)
	case *pyast.Yield:
		return p.yield(n, at)
	case *pyast.Name:
		p.place(n.Id, at.Line, at.Col)
		return nil
	case *pyast.NameConst:
		p.place(n.Value, at.Line, at.Col)
		return nil
	case *pyast.Num:
		p.place(n.Literal, at.Line, at.Col)
		return nil
	case *pyast.Str:
		p.strLit(n, at)
		return nil
	case *pyast.FString:
		p.place(n.Raw, at.Line, at.Col)
		return nil
	case *pyast.Tuple:
		return p.tuple(n, at)
	case *pyast.List:
		return p.list(n, at)
	case *pyast.Dict:
		return p.dict(n, at)
	default:
		// generic fallback: keeps the run alive but does not round-trip
		p.place(fmt.Sprintf("<%T>", node), at.Line, at.Col)
		return nil
	}
}

func (p *Printer) renderBody(body []pyast.Stmt) error {
	for _, child := range body {
		if err := p.Render(child); err != nil {
			return err
		}
	}
	return nil
}

// backtrace writes the failing node's description, its original source
// line, and a caret under the failing column to the error stream.
func (p *Printer) backtrace(node pyast.Node) {
	pos := node.Pos()
	fmt.Fprintf(p.errw, "At node %T (line %d, col %d)\n", node, pos.Line, pos.Col)
	if pos.Line > 0 && pos.Line <= len(p.source) {
		fmt.Fprintln(p.errw, p.source[pos.Line-1])
		fmt.Fprintln(p.errw, strings.Repeat(" ", pos.Col)+"^")
	}
}
