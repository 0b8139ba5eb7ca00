package hdl

import "fmt"

type Kind int

const (
	EOF Kind = iota
	Ident
	Number

	// keywords
	KwPin
	KwTable
	KwCount
	KwFill
	KwDff

	Comma
	Semicolon
	Equals
	Dot
	Arrow

	And
	Or
	Xor
	Not

	LParen
	RParen
	LBrace
	RBrace
	LBrack
	RBrack
)

var kindNames = [...]string{
	EOF:       "end of input",
	Ident:     "identifier",
	Number:    "number",
	KwPin:     "pin",
	KwTable:   "table",
	KwCount:   "count",
	KwFill:    "fill",
	KwDff:     "dff",
	Comma:     ",",
	Semicolon: ";",
	Equals:    "=",
	Dot:       ".",
	Arrow:     "->",
	And:       "&",
	Or:        "|",
	Xor:       "^",
	Not:       "!",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	LBrack:    "[",
	RBrack:    "]",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var keywords = map[string]Kind{
	"pin":   KwPin,
	"table": KwTable,
	"count": KwCount,
	"fill":  KwFill,
	"dff":   KwDff,
}

// Pos is a 1-based line and column in the source text.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Span covers [Start, End) of the source. End may lie on a later line.
type Span struct {
	Start Pos
	End   Pos
}

type Token struct {
	Kind Kind
	Text string
	Pos  Pos
	Len  int
	// Bits holds the binary reading of a Number made only of 0 and 1 digits.
	// It is nil for every other token.
	Bits []bool
}

// Binary reports whether t can be read as a run of binary digits.
func (t Token) Binary() bool {
	return t.Kind == Number && t.Bits != nil
}

func (t Token) Span() Span {
	return Span{Start: t.Pos, End: Pos{Line: t.Pos.Line, Col: t.Pos.Col + t.Len}}
}

func (t Token) String() string {
	switch t.Kind {
	case Ident, Number:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	case EOF:
		return t.Kind.String()
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}
