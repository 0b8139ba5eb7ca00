package hdl

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/pborges/ogal/internal/gal"
)

var (
	ErrDuplicateName = errors.New("name already declared")
	ErrDuplicatePin  = errors.New("pin already declared")
)

// SymbolTable maps declared names to pin numbers. Each name and each pin
// appears at most once.
type SymbolTable struct {
	byName map[string]int
	byPin  map[int]string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]int), byPin: make(map[int]string)}
}

func (s *SymbolTable) Declare(name string, pin int) error {
	if p, ok := s.byName[name]; ok {
		return errors.Wrapf(ErrDuplicateName, "%q is pin %d", name, p)
	}
	if n, ok := s.byPin[pin]; ok {
		return errors.Wrapf(ErrDuplicatePin, "pin %d is %q", pin, n)
	}
	s.byName[name] = pin
	s.byPin[pin] = name
	return nil
}

func (s *SymbolTable) Lookup(name string) (int, bool) {
	p, ok := s.byName[name]
	return p, ok
}

// Name returns the name bound to pin.
func (s *SymbolTable) Name(pin int) (string, bool) {
	n, ok := s.byPin[pin]
	return n, ok
}

// Pins returns the declared pins in ascending order.
func (s *SymbolTable) Pins() []int {
	pins := make([]int, 0, len(s.byPin))
	for p := range s.byPin {
		pins = append(pins, p)
	}
	sort.Ints(pins)
	return pins
}

func (s *SymbolTable) Len() int { return len(s.byName) }

// Binder resolves statements, in source order, into truth tables.
type Binder struct {
	opts   Options
	syms   *SymbolTable
	tables []gal.TableData
	dffs   []*Dff
}

func NewBinder(opts Options) *Binder {
	return &Binder{opts: opts, syms: NewSymbolTable()}
}

func (b *Binder) Symbols() *SymbolTable { return b.syms }

func (b *Binder) Bind(st Statement) error {
	switch st := st.(type) {
	case *PinDecl:
		for i, name := range st.Names {
			if err := b.syms.Declare(name, st.Pins[i]); err != nil {
				return newError(BindError, st.Loc, "%v", err)
			}
		}
	case *TableDecl:
		ins, err := b.resolve(st.Inputs, st.Loc)
		if err != nil {
			return err
		}
		outs, err := b.resolve(st.Outputs, st.Loc)
		if err != nil {
			return err
		}
		cols, err := decodeTable(st, b.opts.CountOrder)
		if err != nil {
			return err
		}
		for i, out := range outs {
			b.emit(ins, out, cols[i])
		}
	case *BoolFunc:
		outs, err := b.resolve(st.Outputs, st.Loc)
		if err != nil {
			return err
		}
		vars, table, err := EvalExpr(st.Expr)
		if err != nil {
			return err
		}
		ins := make([]int, len(vars))
		for i, v := range vars {
			p, ok := b.syms.Lookup(v)
			if !ok {
				return newError(BindError, identSpan(st.Expr, v, st.Loc), "undefined name %q", v)
			}
			ins[i] = p
		}
		for _, out := range outs {
			b.emit(ins, out, table)
		}
	case *Dff:
		b.dffs = append(b.dffs, st)
	default:
		return errors.Errorf("unknown statement %T", st)
	}
	return nil
}

func (b *Binder) emit(ins []int, out int, table []bool) {
	b.tables = append(b.tables, gal.TableData{
		InputPins: append([]int(nil), ins...),
		OutputPin: out,
		Table:     append([]bool(nil), table...),
	})
}

func (b *Binder) resolve(names []string, span Span) ([]int, error) {
	pins := make([]int, len(names))
	for i, n := range names {
		p, ok := b.syms.Lookup(n)
		if !ok {
			return nil, newError(BindError, span, "undefined name %q", n)
		}
		pins[i] = p
	}
	return pins, nil
}

// Finish applies the collected flip-flop markers and returns the tables.
func (b *Binder) Finish() ([]gal.TableData, error) {
	for _, d := range b.dffs {
		for _, name := range d.Names {
			pin, ok := b.syms.Lookup(name)
			if !ok {
				return nil, newError(BindError, d.Loc, "undefined name %q", name)
			}
			found := false
			for i := range b.tables {
				if b.tables[i].OutputPin == pin {
					b.tables[i].FlipFlop = true
					found = true
				}
			}
			if !found {
				return nil, newError(BindError, d.Loc, "dff on undeclared output %q", name)
			}
		}
	}
	return b.tables, nil
}

func identSpan(toks []Token, name string, fallback Span) Span {
	for _, t := range toks {
		if t.Kind == Ident && t.Text == name {
			return t.Span()
		}
	}
	return fallback
}

// Bind resolves stmts into one TableData per declared output.
func Bind(stmts []Statement, opts Options) ([]gal.TableData, error) {
	b := NewBinder(opts)
	for _, st := range stmts {
		if err := b.Bind(st); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

// Compile runs the front end over src.
func Compile(src []byte, opts Options) ([]gal.TableData, error) {
	stmts, err := Parse(src, opts)
	if err != nil {
		return nil, err
	}
	return Bind(stmts, opts)
}
