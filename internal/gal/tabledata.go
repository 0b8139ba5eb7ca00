package gal

import "fmt"

// TableData is the truth table of one output. Table[i] is the output when
// the bits of i, InputPins[0] as MSB, are applied to InputPins.
type TableData struct {
	InputPins []int  `json:"inputPins"`
	OutputPin int    `json:"outputPin"`
	Table     []bool `json:"table"`
	FlipFlop  bool   `json:"dff"`
}

// Validate checks t against the chip layout.
func (t TableData) Validate(cfg Config) error {
	if !cfg.IsOutput(t.OutputPin) {
		return &ValidationError{Pin: t.OutputPin, Msg: "not an output of " + cfg.displayName()}
	}
	if len(t.InputPins) > len(cfg.Inputs) {
		return &ValidationError{Pin: t.OutputPin, Msg: fmt.Sprintf("%d inputs, the chip has %d", len(t.InputPins), len(cfg.Inputs))}
	}
	if want := 1 << uint(len(t.InputPins)); len(t.Table) != want {
		return &ValidationError{Pin: t.OutputPin, Msg: fmt.Sprintf("table has %d entries, %d inputs need %d", len(t.Table), len(t.InputPins), want)}
	}
	return nil
}

// Minterms counts the true entries of the table.
func (t TableData) Minterms() int {
	n := 0
	for _, v := range t.Table {
		if v {
			n++
		}
	}
	return n
}
