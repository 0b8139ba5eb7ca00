package hdl

// MaxExprInputs bounds the number of distinct variables in one expression.
const MaxExprInputs = 24

func precedence(k Kind) int {
	switch k {
	case Or:
		return 0
	case Xor:
		return 1
	case And:
		return 2
	case Not:
		return 3
	}
	return -1
}

// EvalExpr evaluates an infix expression under every assignment of its
// variables. vars lists the variables in order of first appearance and
// table[i] is the result when the bits of i, first variable as MSB, are
// assigned to vars.
func EvalExpr(toks []Token) (vars []string, table []bool, err error) {
	slots := make(map[string]int)
	for _, t := range toks {
		if t.Kind != Ident {
			continue
		}
		if _, ok := slots[t.Text]; !ok {
			slots[t.Text] = len(vars)
			vars = append(vars, t.Text)
		}
	}
	if len(vars) > MaxExprInputs {
		return nil, nil, newError(ShapeError, tokensSpan(toks), "expression has %d variables, at most %d are supported", len(vars), MaxExprInputs)
	}

	root, err := buildExpr(toks, slots)
	if err != nil {
		return nil, nil, err
	}

	n := len(vars)
	table = make([]bool, 1<<uint(n))
	assign := make([]bool, n)
	for idx := range table {
		for j := 0; j < n; j++ {
			assign[j] = idx>>uint(n-1-j)&1 == 1
		}
		table[idx] = evalExpr(root, assign)
	}
	return vars, table, nil
}

func tokensSpan(toks []Token) Span {
	if len(toks) == 0 {
		return Span{}
	}
	return Span{Start: toks[0].Pos, End: toks[len(toks)-1].Span().End}
}

func buildExpr(toks []Token, slots map[string]int) (expr, error) {
	if len(toks) == 0 {
		return nil, newError(ParseError, Span{}, "empty expression")
	}
	if len(toks) == 1 {
		t := toks[0]
		switch {
		case t.Kind == Ident:
			return exprVar{Slot: slots[t.Text]}, nil
		case t.Binary() && len(t.Bits) == 1:
			return exprConst{Value: t.Bits[0]}, nil
		}
		return nil, newError(ParseError, t.Span(), "expected operand, got %s", t)
	}
	if wrapped(toks) {
		return buildExpr(toks[1:len(toks)-1], slots)
	}

	at := splitIndex(toks)
	if at < 0 {
		return nil, newError(ParseError, tokensSpan(toks), "malformed expression")
	}
	if toks[at].Kind == Not {
		if at != 0 {
			return nil, newError(ParseError, toks[at].Span(), "unexpected !")
		}
		x, err := buildExpr(toks[1:], slots)
		if err != nil {
			return nil, err
		}
		return exprNot{X: x}, nil
	}
	if at == 0 || at == len(toks)-1 {
		return nil, newError(ParseError, toks[at].Span(), "operator %s is missing an operand", toks[at].Text)
	}
	a, err := buildExpr(toks[:at], slots)
	if err != nil {
		return nil, err
	}
	b, err := buildExpr(toks[at+1:], slots)
	if err != nil {
		return nil, err
	}
	return exprBinary{Op: toks[at].Kind, A: a, B: b}, nil
}

// wrapped reports whether toks is one parenthesized group.
func wrapped(toks []Token) bool {
	if toks[0].Kind != LParen || toks[len(toks)-1].Kind != RParen {
		return false
	}
	depth := 0
	for i, t := range toks {
		switch t.Kind {
		case LParen:
			depth++
		case RParen:
			depth--
		}
		if depth == 0 && i < len(toks)-1 {
			return false
		}
	}
	return true
}

// splitIndex returns the position of the first top-level operator with the
// lowest precedence, or -1.
func splitIndex(toks []Token) int {
	at, best, depth := -1, 1<<30, 0
	for i, t := range toks {
		switch t.Kind {
		case LParen:
			depth++
			continue
		case RParen:
			depth--
			continue
		}
		if depth != 0 {
			continue
		}
		if p := precedence(t.Kind); p >= 0 && p < best {
			at, best = i, p
		}
	}
	return at
}

func evalExpr(e expr, assign []bool) bool {
	switch e := e.(type) {
	case exprVar:
		return assign[e.Slot]
	case exprConst:
		return e.Value
	case exprNot:
		return !evalExpr(e.X, assign)
	case exprBinary:
		a, b := evalExpr(e.A, assign), evalExpr(e.B, assign)
		switch e.Op {
		case And:
			return a && b
		case Or:
			return a || b
		case Xor:
			return a != b
		}
	}
	panic("unknown expression node")
}
