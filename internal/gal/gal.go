package gal

import (
	"fmt"

	"github.com/pkg/errors"
)

// GAL is a fuse map under construction. A false fuse connects its input
// column to the product term; a row left all false never fires.
type GAL struct {
	Config Config
	Fuses  []bool
}

func NewGAL(cfg Config) *GAL {
	return &GAL{Config: cfg, Fuses: make([]bool, cfg.NumFuses)}
}

// Bounds define the usable row range for a macrocell's terms.
type Bounds struct {
	StartRow  int
	MaxRows   int
	RowOffset int
}

// BoundsFor returns the rows of an output's region. Row 0 of the region is
// the output enable row, so terms start at RowOffset 1.
func (c Config) BoundsFor(pin int) (Bounds, error) {
	first, err := c.FirstFuse(pin)
	if err != nil {
		return Bounds{}, err
	}
	max, _ := c.MaxTerms(pin)
	return Bounds{StartRow: first / c.RowLen(), MaxRows: max + 1, RowOffset: 1}, nil
}

// AddTerm writes e into its region: the enable row and one row per term are
// set, the literals of each term are connected and the remaining rows are
// cleared. Output feedback is read in the mode of e's own macrocell.
func (g *GAL) AddTerm(e Expression, bounds Bounds) error {
	b := bounds
	if len(e.Rows) > b.MaxRows-b.RowOffset {
		return errors.WithStack(&ValidationError{Pin: e.OutputPin,
			Msg: fmt.Sprintf("%d product terms, the output holds %d", len(e.Rows), b.MaxRows-b.RowOffset)})
	}
	for r := b.StartRow; r < b.StartRow+b.RowOffset; r++ {
		g.setRow(r)
	}
	for _, row := range e.Rows {
		g.setRow(b.StartRow + b.RowOffset)
		for _, input := range row {
			if err := g.setAnd(b.StartRow+b.RowOffset, input.Pin, input.Neg, e.FlipFlop); err != nil {
				return errors.Wrapf(err, "output pin %d", e.OutputPin)
			}
		}
		b.RowOffset++
	}
	g.clearRows(b)
	return nil
}

func (g *GAL) setRow(row int) {
	rowLen := g.Config.RowLen()
	for i := row * rowLen; i < (row+1)*rowLen && i < len(g.Fuses); i++ {
		g.Fuses[i] = true
	}
}

// clearRows disconnects the rows from RowOffset to the end of the region.
func (g *GAL) clearRows(b Bounds) {
	rowLen := g.Config.RowLen()
	start := (b.StartRow + b.RowOffset) * rowLen
	end := (b.StartRow + b.MaxRows) * rowLen
	for i := start; i < end && i < len(g.Fuses); i++ {
		g.Fuses[i] = false
	}
}

func (g *GAL) setAnd(row int, pin int, neg, registered bool) error {
	rowLen := g.Config.RowLen()
	col, err := g.Config.pinToColumn(pin, neg, registered)
	if err != nil {
		return err
	}
	idx := row*rowLen + col
	if idx < 0 || idx >= len(g.Fuses) {
		return errors.WithStack(&LayoutError{Pin: pin, Msg: fmt.Sprintf("fuse %d out of range", idx)})
	}
	g.Fuses[idx] = false
	return nil
}

// pinToColumn returns the column of a literal within a row. In a registered
// macrocell the feedback is inverted, so the true and complement columns of
// output pins swap.
func (c Config) pinToColumn(pin int, neg, registered bool) (int, error) {
	off := 0
	if neg {
		off = 1
	}
	if s, ok := c.special(pin); ok {
		return s.Offset + off, nil
	}
	if i := c.outputIndex(pin); i >= 0 {
		base := 2 + 4*(len(c.Outputs)-1-i)
		if registered {
			return base + 1 - off, nil
		}
		return base + off, nil
	}
	if c.isInput(pin) {
		return 4*(pin-1) + off, nil
	}
	if pin < 1 || pin > c.NumPins {
		return 0, errors.WithStack(&LayoutError{Pin: pin, Msg: fmt.Sprintf("invalid pin, the chip has %d", c.NumPins)})
	}
	return 0, errors.WithStack(&LayoutError{Pin: pin, Msg: "pin cannot be used as an input"})
}
