package hdl

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorKind classifies front-end failures.
type ErrorKind int

const (
	LexError ErrorKind = iota
	ParseError
	BindError
	ShapeError
)

func (k ErrorKind) String() string {
	switch k {
	case LexError:
		return "lex error"
	case ParseError:
		return "parse error"
	case BindError:
		return "bind error"
	case ShapeError:
		return "shape error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a front-end failure located in the source text.
type Error struct {
	Kind ErrorKind
	Span Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %s: %s: %s", e.Span.Start, e.Kind, e.Msg)
}

func newError(kind ErrorKind, span Span, format string, args ...interface{}) error {
	return errors.WithStack(&Error{Kind: kind, Span: span, Msg: fmt.Sprintf(format, args...)})
}

// AsError returns the *Error wrapped in err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Excerpt renders the source line err points at with a caret underline.
// It returns an empty string when err carries no position.
func Excerpt(src []byte, err error) string {
	e, ok := AsError(err)
	if !ok {
		return ""
	}
	lines := strings.Split(string(src), "\n")
	ln := e.Span.Start.Line
	if ln < 1 || ln > len(lines) {
		return ""
	}
	text := strings.TrimRight(lines[ln-1], "\r")
	width := 1
	if e.Span.End.Line == ln && e.Span.End.Col > e.Span.Start.Col {
		width = e.Span.End.Col - e.Span.Start.Col
	}
	col := e.Span.Start.Col
	if col < 1 {
		col = 1
	}
	// keep tabs so the carets line up under them
	var pad strings.Builder
	for i, r := range []rune(text) {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	return fmt.Sprintf("%4d | %s\n     | %s%s\n", ln, text, pad.String(), strings.Repeat("^", width))
}
