package hdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string, opts Options) Statement {
	t.Helper()
	stmts, err := Parse([]byte(src), opts)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	return stmts[0]
}

func requireKind(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()
	require.Error(t, err)
	e, ok := AsError(err)
	require.True(t, ok, "not a front-end error: %v", err)
	assert.Equal(t, kind, e.Kind, e.Error())
	return e
}

func TestParsePinDecl(t *testing.T) {
	cases := []struct {
		src   string
		pins  []int
		names []string
	}{
		{"pin 13 = i0;", []int{13}, []string{"i0"}},
		{"pin 1, 2 = i[0..1];", []int{1, 2}, []string{"i0", "i1"}},
		{"pin [20..22] = and, or, xor;", []int{20, 21, 22}, []string{"and", "or", "xor"}},
		{"pin [3..1] = x[2..0];", []int{3, 2, 1}, []string{"x2", "x1", "x0"}},
		{"pin 1, [5..6], 9 = a, b[0..1], c;", []int{1, 5, 6, 9}, []string{"a", "b0", "b1", "c"}},
		{"pin 11 = not;", []int{11}, []string{"not"}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			st := parseOne(t, c.src, Options{})
			decl, ok := st.(*PinDecl)
			require.True(t, ok)
			assert.Equal(t, c.pins, decl.Pins)
			assert.Equal(t, c.names, decl.Names)
		})
	}
}

func TestParsePinDeclNamesFirst(t *testing.T) {
	st := parseOne(t, "pin a, b[0..1] = 1, [7..8];", Options{NamesFirst: true})
	decl := st.(*PinDecl)
	assert.Equal(t, []int{1, 7, 8}, decl.Pins)
	assert.Equal(t, []string{"a", "b0", "b1"}, decl.Names)

	_, err := Parse([]byte("pin 1 = a;"), Options{NamesFirst: true})
	requireKind(t, err, ParseError)
}

func TestParsePinDeclErrors(t *testing.T) {
	for _, src := range []string{
		"pin 1, 2 = a;",
		"pin [1..3] = a, b;",
		"pin [1. .3] = a, b, c;",
		"pin [1.3] = a;",
		"pin 0 = a;",
		"pin 1 = a",
		"pin = a;",
	} {
		t.Run(src, func(t *testing.T) {
			_, err := Parse([]byte(src), Options{})
			requireKind(t, err, ParseError)
		})
	}
}

func TestParseMalformedRange(t *testing.T) {
	_, err := Parse([]byte("pin [1. .3] = a, b, c;"), Options{})
	e := requireKind(t, err, ParseError)
	assert.Contains(t, e.Msg, "malformed range")
	assert.Equal(t, Pos{Line: 1, Col: 7}, e.Span.Start)
}

func TestParseRangeTooWide(t *testing.T) {
	for _, src := range []string{
		"pin [1..2000000000] = a[1..2000000000];",
		"pin 1 = a[5000..1];",
	} {
		_, err := Parse([]byte(src), Options{})
		e := requireKind(t, err, ParseError)
		assert.Contains(t, e.Msg, "at most 1024")
	}

	st := parseOne(t, "pin [1..1024] = a[1023..0];", Options{})
	decl := st.(*PinDecl)
	assert.Len(t, decl.Pins, MaxRangeLen)
	assert.Equal(t, "a1023", decl.Names[0])
}

func TestParseSpan(t *testing.T) {
	stmts, err := Parse([]byte("pin 1 = a;\n  pin 2 = b;"), Options{})
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, Span{Start: Pos{1, 1}, End: Pos{1, 11}}, stmts[0].Span())
	assert.Equal(t, Span{Start: Pos{2, 3}, End: Pos{2, 13}}, stmts[1].Span())
}

func TestParseTable(t *testing.T) {
	st := parseOne(t, "table(i0, i1 -> and) { 00 0  01 0  10 0  11 1 }", Options{})
	decl, ok := st.(*TableDecl)
	require.True(t, ok)
	assert.Equal(t, []string{"i0", "i1"}, decl.Inputs)
	assert.Equal(t, []string{"and"}, decl.Outputs)
	assert.Equal(t, FormFull, decl.Form)
	assert.Equal(t, bitsOf("000 010 100 111"), decl.Bits)
}

func TestParseTableForms(t *testing.T) {
	st := parseOne(t, "table(a -> y).count { 0 1 }", Options{})
	assert.Equal(t, FormCount, st.(*TableDecl).Form)

	st = parseOne(t, "table(a -> y).fill(1) { 00 }", Options{})
	decl := st.(*TableDecl)
	assert.Equal(t, FormFill, decl.Form)
	assert.True(t, decl.Fill)

	st = parseOne(t, "table(a -> y).fill(0) {}", Options{})
	decl = st.(*TableDecl)
	assert.False(t, decl.Fill)
	assert.Empty(t, decl.Bits)
}

func TestParseTableErrors(t *testing.T) {
	for _, src := range []string{
		"table(a -> y) { 12 }",
		"table(a -> y).fill(2) { 00 }",
		"table(a -> y).fill(01) { 00 }",
		"table(a -> y).dff { 00 }",
		"table(a y) { 00 }",
		"table(a -> y) { 00",
		"table(a -> y) { 00 };",
	} {
		t.Run(src, func(t *testing.T) {
			_, err := Parse([]byte(src), Options{})
			requireKind(t, err, ParseError)
		})
	}
}

func TestParseBoolFunc(t *testing.T) {
	st := parseOne(t, "x, y = a & !(b | 1);", Options{})
	fn, ok := st.(*BoolFunc)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, fn.Outputs)
	assert.Equal(t, []Kind{Ident, And, Not, LParen, Ident, Or, Number, RParen}, kinds(fn.Expr))
}

func TestParseBoolFuncErrors(t *testing.T) {
	for _, src := range []string{
		"y = a b;",
		"y = a &;",
		"y = & a;",
		"y = (a;",
		"y = a);",
		"y = a (b);",
		"y = a !b;",
		"y = 2;",
		"y = 10;",
		"y = ;",
		"y = a",
		"y = a & ;",
		"y = (a &) b;",
	} {
		t.Run(src, func(t *testing.T) {
			_, err := Parse([]byte(src), Options{})
			requireKind(t, err, ParseError)
		})
	}
}

func TestParseDff(t *testing.T) {
	stmts, err := Parse([]byte("a.dff;\ni[0..2].dff;\nc, d.dff;"), Options{})
	require.NoError(t, err)
	require.Len(t, stmts, 3)
	var names []string
	for _, st := range stmts {
		d, ok := st.(*Dff)
		require.True(t, ok)
		names = append(names, d.Names...)
	}
	assert.Equal(t, []string{"a", "i0", "i1", "i2", "c", "d"}, names)
}

func TestParseUnexpectedStatement(t *testing.T) {
	_, err := Parse([]byte("pin 1 = a;\n13;"), Options{})
	e := requireKind(t, err, ParseError)
	assert.Equal(t, Pos{Line: 2, Col: 1}, e.Span.Start)
	assert.Contains(t, e.Msg, "expected pin, table or identifier")
}

func TestParseLexErrorPassesThrough(t *testing.T) {
	_, err := Parse([]byte("pin 1 = a#;"), Options{})
	requireKind(t, err, LexError)
}

// bitsOf reads a string of 0 and 1, ignoring everything else.
func bitsOf(s string) []bool {
	var out []bool
	for _, c := range s {
		switch c {
		case '0':
			out = append(out, false)
		case '1':
			out = append(out, true)
		}
	}
	return out
}
