package hdl

import (
	"unicode/utf8"
)

type lexer struct {
	s    string
	i    int
	line int
	col  int
}

func newLexer(s string) *lexer { return &lexer{s: s, line: 1, col: 1} }

// Lex splits src into tokens. The returned slice always ends with an EOF token.
func Lex(src []byte) ([]Token, error) {
	l := newLexer(string(src))
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

func (l *lexer) pos() Pos { return Pos{Line: l.line, Col: l.col} }

// advance moves n bytes forward, keeping line and column in step.
func (l *lexer) advance(n int) {
	end := l.i + n
	for l.i < end {
		r, size := utf8.DecodeRuneInString(l.s[l.i:])
		l.i += size
		if r == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
}

func (l *lexer) emit(kind Kind, n int) Token {
	tok := Token{Kind: kind, Text: l.s[l.i : l.i+n], Pos: l.pos(), Len: utf8.RuneCountInString(l.s[l.i : l.i+n])}
	l.advance(n)
	return tok
}

func (l *lexer) skipTrivia() error {
	for l.i < len(l.s) {
		ch := l.s[l.i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance(1)
		case ch == '/' && l.i+1 < len(l.s) && l.s[l.i+1] == '/':
			n := 2
			for l.i+n < len(l.s) && l.s[l.i+n] != '\n' {
				n++
			}
			l.advance(n)
		case ch == '/' && l.i+1 < len(l.s) && l.s[l.i+1] == '*':
			start := l.pos()
			n := 2
			for {
				if l.i+n+1 >= len(l.s) {
					return newError(LexError, Span{Start: start, End: Pos{Line: start.Line, Col: start.Col + 2}},
						"unterminated block comment")
				}
				if l.s[l.i+n] == '*' && l.s[l.i+n+1] == '/' {
					n += 2
					break
				}
				n++
			}
			l.advance(n)
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) next() (Token, error) {
	if err := l.skipTrivia(); err != nil {
		return Token{}, err
	}
	if l.i >= len(l.s) {
		return Token{Kind: EOF, Pos: l.pos()}, nil
	}
	ch := l.s[l.i]
	switch ch {
	case '&':
		return l.emit(And, 1), nil
	case '|':
		return l.emit(Or, 1), nil
	case '^':
		return l.emit(Xor, 1), nil
	case '!':
		return l.emit(Not, 1), nil
	case '(':
		return l.emit(LParen, 1), nil
	case ')':
		return l.emit(RParen, 1), nil
	case '{':
		return l.emit(LBrace, 1), nil
	case '}':
		return l.emit(RBrace, 1), nil
	case '[':
		return l.emit(LBrack, 1), nil
	case ']':
		return l.emit(RBrack, 1), nil
	case ',':
		return l.emit(Comma, 1), nil
	case ';':
		return l.emit(Semicolon, 1), nil
	case '=':
		return l.emit(Equals, 1), nil
	case '.':
		return l.emit(Dot, 1), nil
	case '-':
		if l.i+1 < len(l.s) && l.s[l.i+1] == '>' {
			return l.emit(Arrow, 2), nil
		}
	}

	if isIdentStart(ch) {
		n := 1
		for l.i+n < len(l.s) && isIdentPart(l.s[l.i+n]) {
			n++
		}
		kind := Ident
		if kw, ok := keywords[l.s[l.i:l.i+n]]; ok {
			kind = kw
		}
		return l.emit(kind, n), nil
	}
	if isDigit(ch) {
		n := 1
		for l.i+n < len(l.s) && isDigit(l.s[l.i+n]) {
			n++
		}
		tok := l.emit(Number, n)
		tok.Bits = binaryDigits(tok.Text)
		return tok, nil
	}

	r, _ := utf8.DecodeRuneInString(l.s[l.i:])
	p := l.pos()
	return Token{}, newError(LexError, Span{Start: p, End: Pos{Line: p.Line, Col: p.Col + 1}},
		"unexpected character %q", r)
}

// binaryDigits returns the bits of s when s only holds 0 and 1, nil otherwise.
func binaryDigits(s string) []bool {
	bits := make([]bool, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			bits[i] = true
		default:
			return nil
		}
	}
	return bits
}

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || b == '$'
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
