package hdl

import (
	"strings"

	"github.com/pkg/errors"
)

// CountOrder selects how the bits of a .count table are laid out.
type CountOrder int

const (
	// CountRowMajor reads each group of len(outputs) bits as one input combination.
	CountRowMajor CountOrder = iota
	// CountColumnMajor reads each run of 2^len(inputs) bits as one output column.
	CountColumnMajor
)

func (o CountOrder) String() string {
	if o == CountColumnMajor {
		return "column"
	}
	return "row"
}

func ParseCountOrder(s string) (CountOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "row", "vertical":
		return CountRowMajor, nil
	case "column", "col", "horizontal":
		return CountColumnMajor, nil
	}
	return 0, errors.Errorf("unknown count order %q (want row or column)", s)
}

type Options struct {
	// NamesFirst switches pin declarations to `pin name = number;`.
	NamesFirst bool
	CountOrder CountOrder
}
