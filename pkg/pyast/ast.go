// Package pyast defines the annotated parse tree for the Python surface
// syntax handled by fstrify. Every node that was physically present in the
// input carries its original (line, column) position; the printer uses
// those positions to reconstruct the original layout.
package pyast

// Pos is an original source position. Lines are 1-based, columns 0-based,
// matching the convention of the annotated input tree.
type Pos struct {
	Line int
	Col  int
}

// After reports whether p lexically follows the position (line, col).
func (p Pos) After(line, col int) bool {
	if p.Line != line {
		return p.Line > line
	}
	return p.Col > col
}

// Node is the base interface for all parse tree nodes
type Node interface {
	Pos() Pos
	implNode()
}

// Expr is the interface for all expression nodes
type Expr interface {
	Node
	implExpr()
}

// Stmt is the interface for all statement nodes
type Stmt interface {
	Node
	implStmt()
}

// BinaryOp represents binary operators
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpMatMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpLShift
	OpRShift
	OpBitOr
	OpBitXor
	OpBitAnd
)

func (op BinaryOp) String() string {
	names := []string{"+", "-", "*", "@", "/", "//", "%", "**", "<<", ">>", "|", "^", "&"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// UnaryOpKind represents unary operators
type UnaryOpKind int

const (
	OpUAdd UnaryOpKind = iota
	OpUSub
	OpInvert
	OpNot
)

func (op UnaryOpKind) String() string {
	names := []string{"+", "-", "~", "not"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// BoolOpKind represents boolean operators
type BoolOpKind int

const (
	BoolAnd BoolOpKind = iota
	BoolOr
)

func (op BoolOpKind) String() string {
	if op == BoolAnd {
		return "and"
	}
	return "or"
}

// CmpOp represents comparison operators
type CmpOp int

const (
	CmpLt CmpOp = iota
	CmpGt
	CmpLe
	CmpGe
	CmpEq
	CmpNe
	CmpIn
	CmpNotIn
	CmpIs
	CmpIsNot
)

func (op CmpOp) String() string {
	names := []string{"<", ">", "<=", ">=", "==", "!=", "in", "not in", "is", "is not"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// Module is the root of a parsed file
type Module struct {
	At   Pos
	Body []Stmt
}

// Arg is one formal parameter name
type Arg struct {
	At   Pos
	Name string
}

// Arguments is a formal parameter list. Defaults is parallel to Args; a
// nil entry means the parameter has no default.
type Arguments struct {
	Args     []*Arg
	Defaults []Expr
}

// FunctionDef represents a def statement
type FunctionDef struct {
	At   Pos
	Name string
	Args Arguments
	Body []Stmt
}

// ClassDef represents a class statement. HasParens records whether the
// original source carried a base list parenthesis, so `class C:` and
// `class C():` both round-trip.
type ClassDef struct {
	At        Pos
	Name      string
	Bases     []Expr
	HasParens bool
	Body      []Stmt
}

// If represents an if statement; a single nested If in Orelse is an elif
type If struct {
	At     Pos
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

// While represents a while loop
type While struct {
	At   Pos
	Test Expr
	Body []Stmt
}

// For represents a for loop
type For struct {
	At     Pos
	Target Expr
	Iter   Expr
	Body   []Stmt
}

// WithItem is one (context expression, optional bound target) pair
type WithItem struct {
	Context Expr
	Vars    Expr // nil when there is no `as` clause
}

// With represents a with statement
type With struct {
	At    Pos
	Items []*WithItem
	Body  []Stmt
}

// ExceptHandler is one except clause; Type and Name are optional
type ExceptHandler struct {
	At   Pos
	Type Expr
	Name string
	Body []Stmt
}

// Try represents a try statement
type Try struct {
	At       Pos
	Body     []Stmt
	Handlers []*ExceptHandler
	Orelse   []Stmt
	Final    []Stmt
}

// Return represents a return statement
type Return struct {
	At    Pos
	Value Expr // nil for bare return
}

// Raise represents a raise statement
type Raise struct {
	At    Pos
	Exc   Expr // nil for bare raise
	Cause Expr // the `from` expression, nil if absent
}

// ImportAlias is one name in an import statement
type ImportAlias struct {
	Name   string
	AsName string
}

// Import represents an import statement
type Import struct {
	At    Pos
	Names []ImportAlias
}

// Assign represents an assignment, possibly chained (a = b = value)
type Assign struct {
	At      Pos
	Targets []Expr
	Value   Expr
}

// AugAssign represents an augmented assignment such as x += 1
type AugAssign struct {
	At     Pos
	Target Expr
	Op     BinaryOp
	Value  Expr
}

// ExprStmt is an expression used as a statement
type ExprStmt struct {
	At    Pos
	Value Expr
}

// Break represents a break statement
type Break struct {
	At Pos
}

// Continue represents a continue statement
type Continue struct {
	At Pos
}

// Pass represents a pass statement
type Pass struct {
	At Pos
}

// BinOp represents a binary expression
type BinOp struct {
	At    Pos
	Left  Expr
	Op    BinaryOp
	Right Expr
}

// BoolOp represents an and/or chain; same-operator chains are flattened
// into a single node as the annotated input tree does
type BoolOp struct {
	At     Pos
	Op     BoolOpKind
	Values []Expr
}

// UnaryOp represents a unary expression
type UnaryOp struct {
	At      Pos
	Op      UnaryOpKind
	Operand Expr
}

// Compare represents a comparison chain: Left, then parallel Ops and
// Comparators
type Compare struct {
	At          Pos
	Left        Expr
	Ops         []CmpOp
	Comparators []Expr
}

// Lambda represents a lambda expression
type Lambda struct {
	At   Pos
	Args Arguments
	Body Expr
}

// IfExp represents a conditional expression: Body if Test else Orelse
type IfExp struct {
	At     Pos
	Body   Expr
	Test   Expr
	Orelse Expr
}

// Keyword is one keyword argument; an empty Arg means **value
type Keyword struct {
	Arg   string
	Value Expr
}

// Call represents a call expression
type Call struct {
	At       Pos
	Func     Expr
	Args     []Expr
	Keywords []*Keyword
}

// Attribute represents attribute access: Value.Attr
type Attribute struct {
	At    Pos
	Value Expr
	Attr  string
}

// Subscript represents subscript access: Value[Index]
type Subscript struct {
	At    Pos
	Value Expr
	Index Expr
}

// Slice represents a slice expression; all bounds are optional
type Slice struct {
	At    Pos
	Lower Expr
	Upper Expr
	Step  Expr
}

// Yield represents a yield expression
type Yield struct {
	At    Pos
	Value Expr // nil for bare yield
}

// Name represents an identifier expression
type Name struct {
	At Pos
	Id string
}

// NameConst represents True, False or None
type NameConst struct {
	At    Pos
	Value string
}

// Num represents a numeric literal; the original text is kept verbatim
type Num struct {
	At      Pos
	Literal string
}

// Str represents a plain string literal with its decoded value; the
// printer re-quotes it canonically
type Str struct {
	At    Pos
	Value string
}

// FString represents an interpolated-string literal, kept as raw source
// text so already-rewritten code round-trips unchanged
type FString struct {
	At  Pos
	Raw string
}

// Tuple represents a tuple display. At is the position of the first
// element; the enclosing parenthesis sits one column to its left.
type Tuple struct {
	At   Pos
	Elts []Expr
}

// List represents a list display; At is the position of the bracket
type List struct {
	At   Pos
	Elts []Expr
}

// Dict represents a dict display; At is the position of the brace
type Dict struct {
	At     Pos
	Keys   []Expr
	Values []Expr
}

// Position methods

func (n *Module) Pos() Pos      { return n.At }
func (n *FunctionDef) Pos() Pos { return n.At }
func (n *ClassDef) Pos() Pos    { return n.At }
func (n *If) Pos() Pos          { return n.At }
func (n *While) Pos() Pos       { return n.At }
func (n *For) Pos() Pos         { return n.At }
func (n *With) Pos() Pos        { return n.At }
func (n *Try) Pos() Pos         { return n.At }
func (n *Return) Pos() Pos      { return n.At }
func (n *Raise) Pos() Pos       { return n.At }
func (n *Import) Pos() Pos      { return n.At }
func (n *Assign) Pos() Pos      { return n.At }
func (n *AugAssign) Pos() Pos   { return n.At }
func (n *ExprStmt) Pos() Pos    { return n.At }
func (n *Break) Pos() Pos       { return n.At }
func (n *Continue) Pos() Pos    { return n.At }
func (n *Pass) Pos() Pos        { return n.At }
func (n *BinOp) Pos() Pos       { return n.At }
func (n *BoolOp) Pos() Pos      { return n.At }
func (n *UnaryOp) Pos() Pos     { return n.At }
func (n *Compare) Pos() Pos     { return n.At }
func (n *Lambda) Pos() Pos      { return n.At }
func (n *IfExp) Pos() Pos       { return n.At }
func (n *Call) Pos() Pos        { return n.At }
func (n *Attribute) Pos() Pos   { return n.At }
func (n *Subscript) Pos() Pos   { return n.At }
func (n *Slice) Pos() Pos       { return n.At }
func (n *Yield) Pos() Pos       { return n.At }
func (n *Name) Pos() Pos        { return n.At }
func (n *NameConst) Pos() Pos   { return n.At }
func (n *Num) Pos() Pos         { return n.At }
func (n *Str) Pos() Pos         { return n.At }
func (n *FString) Pos() Pos     { return n.At }
func (n *Tuple) Pos() Pos       { return n.At }
func (n *List) Pos() Pos        { return n.At }
func (n *Dict) Pos() Pos        { return n.At }

// Marker methods for interface implementation

func (*Module) implNode() {}

func (*FunctionDef) implNode() {}
func (*FunctionDef) implStmt() {}

func (*ClassDef) implNode() {}
func (*ClassDef) implStmt() {}

func (*If) implNode() {}
func (*If) implStmt() {}

func (*While) implNode() {}
func (*While) implStmt() {}

func (*For) implNode() {}
func (*For) implStmt() {}

func (*With) implNode() {}
func (*With) implStmt() {}

func (*Try) implNode() {}
func (*Try) implStmt() {}

func (*Return) implNode() {}
func (*Return) implStmt() {}

func (*Raise) implNode() {}
func (*Raise) implStmt() {}

func (*Import) implNode() {}
func (*Import) implStmt() {}

func (*Assign) implNode() {}
func (*Assign) implStmt() {}

func (*AugAssign) implNode() {}
func (*AugAssign) implStmt() {}

func (*ExprStmt) implNode() {}
func (*ExprStmt) implStmt() {}

func (*Break) implNode() {}
func (*Break) implStmt() {}

func (*Continue) implNode() {}
func (*Continue) implStmt() {}

func (*Pass) implNode() {}
func (*Pass) implStmt() {}

func (*BinOp) implNode() {}
func (*BinOp) implExpr() {}

func (*BoolOp) implNode() {}
func (*BoolOp) implExpr() {}

func (*UnaryOp) implNode() {}
func (*UnaryOp) implExpr() {}

func (*Compare) implNode() {}
func (*Compare) implExpr() {}

func (*Lambda) implNode() {}
func (*Lambda) implExpr() {}

func (*IfExp) implNode() {}
func (*IfExp) implExpr() {}

func (*Call) implNode() {}
func (*Call) implExpr() {}

func (*Attribute) implNode() {}
func (*Attribute) implExpr() {}

func (*Subscript) implNode() {}
func (*Subscript) implExpr() {}

func (*Slice) implNode() {}
func (*Slice) implExpr() {}

func (*Yield) implNode() {}
func (*Yield) implExpr() {}

func (*Name) implNode() {}
func (*Name) implExpr() {}

func (*NameConst) implNode() {}
func (*NameConst) implExpr() {}

func (*Num) implNode() {}
func (*Num) implExpr() {}

func (*Str) implNode() {}
func (*Str) implExpr() {}

func (*FString) implNode() {}
func (*FString) implExpr() {}

func (*Tuple) implNode() {}
func (*Tuple) implExpr() {}

func (*List) implNode() {}
func (*List) implExpr() {}

func (*Dict) implNode() {}
func (*Dict) implExpr() {}
