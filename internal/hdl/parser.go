package hdl

import (
	"strconv"
	"strings"
)

// Parse lexes src and groups the tokens into statements.
func Parse(src []byte, opts Options) ([]Statement, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks, opts)
}

// ParseTokens groups an EOF-terminated token stream into statements.
func ParseTokens(toks []Token, opts Options) ([]Statement, error) {
	if len(toks) == 0 || toks[len(toks)-1].Kind != EOF {
		toks = append(toks, Token{Kind: EOF})
	}
	p := &parser{toks: toks, opts: opts}
	var stmts []Statement
	for p.cur().Kind != EOF {
		st, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	return stmts, nil
}

type parser struct {
	toks []Token
	i    int
	opts Options
}

func (p *parser) cur() Token { return p.toks[p.i] }

func (p *parser) advance() Token {
	t := p.toks[p.i]
	if t.Kind != EOF {
		p.i++
	}
	return t
}

// prev is the last consumed token.
func (p *parser) prev() Token {
	if p.i == 0 {
		return p.toks[0]
	}
	return p.toks[p.i-1]
}

func (p *parser) spanFrom(start Token) Span {
	return Span{Start: start.Pos, End: p.prev().Span().End}
}

func (p *parser) errorf(tok Token, format string, args ...interface{}) error {
	return newError(ParseError, tok.Span(), format, args...)
}

func (p *parser) unexpected(want ...string) error {
	tok := p.cur()
	return p.errorf(tok, "expected %s, got %s", joinAlternatives(want), tok)
}

func (p *parser) expect(k Kind) (Token, error) {
	if p.cur().Kind != k {
		return Token{}, p.unexpected(k.String())
	}
	return p.advance(), nil
}

func joinAlternatives(want []string) string {
	switch len(want) {
	case 0:
		return "something else"
	case 1:
		return want[0]
	}
	return strings.Join(want[:len(want)-1], ", ") + " or " + want[len(want)-1]
}

func (p *parser) statement() (Statement, error) {
	switch p.cur().Kind {
	case KwPin:
		return p.pinDecl()
	case KwTable:
		return p.tableDecl()
	case Ident, KwCount, KwFill, KwDff:
		return p.assignment()
	}
	return nil, p.unexpected("pin", "table", "identifier")
}

// pin 1, 2, [3..5] = a, b, c[0..2];
func (p *parser) pinDecl() (Statement, error) {
	start := p.advance()
	var (
		pins  []int
		names []string
		err   error
	)
	if p.opts.NamesFirst {
		if names, err = p.nameList(); err != nil {
			return nil, err
		}
		if _, err = p.expect(Equals); err != nil {
			return nil, err
		}
		if pins, err = p.numberList(); err != nil {
			return nil, err
		}
	} else {
		if pins, err = p.numberList(); err != nil {
			return nil, err
		}
		if _, err = p.expect(Equals); err != nil {
			return nil, err
		}
		if names, err = p.nameList(); err != nil {
			return nil, err
		}
	}
	if _, err = p.expect(Semicolon); err != nil {
		return nil, err
	}
	span := p.spanFrom(start)
	if len(pins) != len(names) {
		return nil, newError(ParseError, span, "%d pin numbers for %d names", len(pins), len(names))
	}
	for _, n := range pins {
		if n < 1 {
			return nil, newError(ParseError, span, "pin numbers start at 1, got %d", n)
		}
	}
	return &PinDecl{Node: Node{Loc: span}, Pins: pins, Names: names}, nil
}

// table(a, b -> y) .fill(0) { ... }
func (p *parser) tableDecl() (Statement, error) {
	start := p.advance()
	if _, err := p.expect(LParen); err != nil {
		return nil, err
	}
	ins, err := p.nameList()
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(Arrow); err != nil {
		return nil, err
	}
	outs, err := p.nameList()
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(RParen); err != nil {
		return nil, err
	}

	decl := &TableDecl{Inputs: ins, Outputs: outs, Form: FormFull}
	if p.cur().Kind == Dot {
		p.advance()
		switch p.cur().Kind {
		case KwCount:
			p.advance()
			decl.Form = FormCount
		case KwFill:
			p.advance()
			if _, err = p.expect(LParen); err != nil {
				return nil, err
			}
			v, err := p.bit()
			if err != nil {
				return nil, err
			}
			if _, err = p.expect(RParen); err != nil {
				return nil, err
			}
			decl.Form = FormFill
			decl.Fill = v
		default:
			return nil, p.unexpected("count", "fill")
		}
	}

	if _, err = p.expect(LBrace); err != nil {
		return nil, err
	}
	for p.cur().Kind == Number {
		tok := p.advance()
		if !tok.Binary() {
			return nil, p.errorf(tok, "table rows take binary digits, got %q", tok.Text)
		}
		decl.Bits = append(decl.Bits, tok.Bits...)
	}
	if _, err = p.expect(RBrace); err != nil {
		return nil, err
	}
	decl.Loc = p.spanFrom(start)
	return decl, nil
}

// a, b = <expr>;  or  a, b.dff;
func (p *parser) assignment() (Statement, error) {
	start := p.cur()
	names, err := p.nameList()
	if err != nil {
		return nil, err
	}
	switch p.cur().Kind {
	case Dot:
		p.advance()
		if _, err = p.expect(KwDff); err != nil {
			return nil, err
		}
		if _, err = p.expect(Semicolon); err != nil {
			return nil, err
		}
		return &Dff{Node: Node{Loc: p.spanFrom(start)}, Names: names}, nil
	case Equals:
		p.advance()
		body, err := p.boolExpr()
		if err != nil {
			return nil, err
		}
		if _, err = p.expect(Semicolon); err != nil {
			return nil, err
		}
		return &BoolFunc{Node: Node{Loc: p.spanFrom(start)}, Outputs: names, Expr: body}, nil
	}
	return nil, p.unexpected("=", ".dff")
}

// boolExpr collects the tokens up to the closing semicolon and checks that
// operands and operators alternate and parentheses balance.
func (p *parser) boolExpr() ([]Token, error) {
	var (
		body        []Token
		depth       int
		operands    int
		binary      int
		wantOperand = true
		opens       []Token
	)
	for p.cur().Kind != Semicolon {
		tok := p.cur()
		switch tok.Kind {
		case Ident:
			if !wantOperand {
				return nil, p.errorf(tok, "expected operator, got %s", tok)
			}
			wantOperand = false
			operands++
		case Number:
			if !wantOperand {
				return nil, p.errorf(tok, "expected operator, got %s", tok)
			}
			if !tok.Binary() || len(tok.Bits) != 1 {
				return nil, p.errorf(tok, "only 0 and 1 are valid constants, got %q", tok.Text)
			}
			wantOperand = false
			operands++
		case Not:
			if !wantOperand {
				return nil, p.errorf(tok, "unexpected ! after operand")
			}
		case And, Or, Xor:
			if wantOperand {
				return nil, p.errorf(tok, "expected operand, got %s", tok)
			}
			wantOperand = true
			binary++
		case LParen:
			if !wantOperand {
				return nil, p.errorf(tok, "expected operator, got %s", tok)
			}
			depth++
			opens = append(opens, tok)
		case RParen:
			if depth == 0 {
				return nil, p.errorf(tok, "unbalanced )")
			}
			if wantOperand {
				return nil, p.errorf(tok, "expected operand, got %s", tok)
			}
			depth--
			opens = opens[:len(opens)-1]
		case EOF:
			return nil, p.unexpected(";")
		default:
			return nil, p.unexpected("operand", "operator", ";")
		}
		body = append(body, p.advance())
	}
	if depth != 0 {
		return nil, p.errorf(opens[len(opens)-1], "unbalanced (")
	}
	if len(body) == 0 {
		return nil, p.unexpected("expression")
	}
	if wantOperand || binary != operands-1 {
		return nil, p.errorf(p.cur(), "expression ends without operand: %d operators for %d operands", binary, operands)
	}
	return body, nil
}

func (p *parser) bit() (bool, error) {
	tok := p.cur()
	if tok.Kind != Number || !tok.Binary() || len(tok.Bits) != 1 {
		return false, p.unexpected("0", "1")
	}
	p.advance()
	return tok.Bits[0], nil
}

func (p *parser) number() (int, error) {
	tok := p.cur()
	if tok.Kind != Number {
		return 0, p.unexpected("number")
	}
	n, err := strconv.Atoi(tok.Text)
	if err != nil {
		return 0, p.errorf(tok, "number %q out of range", tok.Text)
	}
	p.advance()
	return n, nil
}

// MaxRangeLen bounds the number of values one `[a..b]` range expands to.
const MaxRangeLen = 1024

// rangeBounds parses `[a..b]` and returns every value from a to b.
func (p *parser) rangeBounds() ([]int, error) {
	open, err := p.expect(LBrack)
	if err != nil {
		return nil, err
	}
	from, err := p.number()
	if err != nil {
		return nil, err
	}
	d1, err := p.expect(Dot)
	if err != nil {
		return nil, err
	}
	d2 := p.cur()
	if d2.Kind != Dot || d2.Pos.Line != d1.Pos.Line || d2.Pos.Col != d1.Pos.Col+1 {
		return nil, p.errorf(d1, "malformed range, want [a..b]")
	}
	p.advance()
	to, err := p.number()
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(RBrack); err != nil {
		return nil, err
	}
	width := to - from
	if width < 0 {
		width = -width
	}
	if width >= MaxRangeLen {
		return nil, newError(ParseError, p.spanFrom(open), "range [%d..%d] spans %d values, at most %d are supported",
			from, to, width+1, MaxRangeLen)
	}
	return expandRange(from, to), nil
}

func expandRange(from, to int) []int {
	var out []int
	if from <= to {
		for n := from; n <= to; n++ {
			out = append(out, n)
		}
	} else {
		for n := from; n >= to; n-- {
			out = append(out, n)
		}
	}
	return out
}

// numberList parses `1, 2, [3..7], 9`.
func (p *parser) numberList() ([]int, error) {
	var out []int
	for {
		if p.cur().Kind == LBrack {
			ns, err := p.rangeBounds()
			if err != nil {
				return nil, err
			}
			out = append(out, ns...)
		} else {
			n, err := p.number()
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		if p.cur().Kind != Comma {
			return out, nil
		}
		p.advance()
	}
}

// nameList parses `a, b, bus[0..3]`.
func (p *parser) nameList() ([]string, error) {
	var out []string
	for {
		tok := p.cur()
		switch tok.Kind {
		case Ident, KwCount, KwFill, KwDff, KwPin, KwTable:
		default:
			return nil, p.unexpected("identifier")
		}
		p.advance()
		if p.cur().Kind == LBrack {
			ns, err := p.rangeBounds()
			if err != nil {
				return nil, err
			}
			for _, n := range ns {
				out = append(out, tok.Text+strconv.Itoa(n))
			}
		} else {
			out = append(out, tok.Text)
		}
		if p.cur().Kind != Comma {
			return out, nil
		}
		p.advance()
	}
}
