package hdl

// Statement is one top-level construct of a source file.
type Statement interface {
	Span() Span
	isStatement()
}

type Node struct {
	Loc Span
}

func (n Node) Span() Span { return n.Loc }
func (Node) isStatement() {}

// PinDecl binds Names[i] to Pins[i].
type PinDecl struct {
	Node
	Pins  []int
	Names []string
}

type TableForm int

const (
	FormFull TableForm = iota
	FormFill
	FormCount
)

func (f TableForm) String() string {
	switch f {
	case FormFill:
		return "fill"
	case FormCount:
		return "count"
	}
	return "full"
}

type TableDecl struct {
	Node
	Inputs  []string
	Outputs []string
	Bits    []bool
	Form    TableForm
	// Fill is the default output value of FormFill tables.
	Fill bool
}

// BoolFunc assigns one expression to every name in Outputs.
type BoolFunc struct {
	Node
	Outputs []string
	Expr    []Token
}

type Dff struct {
	Node
	Names []string
}

// Boolean expression tree

type expr interface{ isExpr() }

// exprVar reads slot Slot of the assignment under evaluation.
type exprVar struct{ Slot int }

func (exprVar) isExpr() {}

type exprConst struct{ Value bool }

func (exprConst) isExpr() {}

type exprNot struct{ X expr }

func (exprNot) isExpr() {}

type exprBinary struct {
	Op   Kind
	A, B expr
}

func (exprBinary) isExpr() {}
