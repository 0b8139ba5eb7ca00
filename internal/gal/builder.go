package gal

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// FirstFuse returns the first fuse of an output's region. Regions follow
// the leading AR row in descending pin order.
func (c Config) FirstFuse(pin int) (int, error) {
	if !c.IsOutput(pin) {
		return 0, errors.WithStack(&ValidationError{Pin: pin, Msg: "not an output of " + c.displayName()})
	}
	row := c.RowLen()
	idx := row
	for _, o := range c.Outputs {
		if o.Pin > pin {
			idx += (o.MaxTerms + 1) * row
		}
	}
	return idx, nil
}

// LastFuse returns the end of an output's region (exclusive).
func (c Config) LastFuse(pin int) (int, error) {
	first, err := c.FirstFuse(pin)
	if err != nil {
		return 0, err
	}
	max, _ := c.MaxTerms(pin)
	return first + (max+1)*c.RowLen(), nil
}

func (c Config) lowestOutput() (int, error) {
	if len(c.Outputs) == 0 {
		return 0, errors.Errorf("%s has no output pins", c.displayName())
	}
	lowest := c.Outputs[0].Pin
	for _, o := range c.Outputs[1:] {
		if o.Pin < lowest {
			lowest = o.Pin
		}
	}
	return lowest, nil
}

// SPRow returns the first fuse of the synchronous preset row that follows
// the lowest output's region.
func (c Config) SPRow() (int, error) {
	lowest, err := c.lowestOutput()
	if err != nil {
		return 0, err
	}
	return c.LastFuse(lowest)
}

// ModeFuses returns the pair of macrocell mode fuses of an output.
func (c Config) ModeFuses(pin int) (int, int, error) {
	i := c.outputIndex(pin)
	if i < 0 {
		return 0, 0, errors.WithStack(&ValidationError{Pin: pin, Msg: "not an output of " + c.displayName()})
	}
	sp, err := c.SPRow()
	if err != nil {
		return 0, 0, err
	}
	start := sp + c.RowLen() + 2*(len(c.Outputs)-1-i)
	return start, start + 1, nil
}

// BuildGAL lays out exprs, highest output pin first. Outputs without an
// expression stay cleared. When two expressions drive the same pin the
// later one wins.
func BuildGAL(exprs []Expression, cfg Config) (*GAL, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, e := range exprs {
		if !cfg.IsOutput(e.OutputPin) {
			return nil, errors.WithStack(&ValidationError{Pin: e.OutputPin, Msg: "not an output of " + cfg.displayName()})
		}
	}

	ordered := append([]Expression(nil), exprs...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].OutputPin > ordered[j].OutputPin })

	g := NewGAL(cfg)
	for _, e := range ordered {
		bounds, err := cfg.BoundsFor(e.OutputPin)
		if err != nil {
			return nil, err
		}
		if err := g.AddTerm(e, bounds); err != nil {
			return nil, err
		}
	}

	sp, err := cfg.SPRow()
	if err != nil {
		return nil, err
	}
	for i := sp; i < sp+cfg.RowLen(); i++ {
		g.Fuses[i] = false
	}

	for _, e := range ordered {
		s0, s1, err := cfg.ModeFuses(e.OutputPin)
		if err != nil {
			return nil, err
		}
		if s1 >= len(g.Fuses) {
			return nil, errors.WithStack(&LayoutError{Pin: e.OutputPin, Msg: fmt.Sprintf("mode fuse %d out of range", s1)})
		}
		g.Fuses[s0] = true
		g.Fuses[s1] = !e.FlipFlop
	}
	return g, nil
}
// Build converts every table to an expression and lays them out.
func Build(tables []TableData, cfg Config) (*GAL, error) {
	exprs := make([]Expression, 0, len(tables))
	for _, t := range tables {
		e, err := NewExpression(t, cfg)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return BuildGAL(exprs, cfg)
}
