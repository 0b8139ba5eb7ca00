package gal

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// OutputPin is a macrocell output and the number of product terms it holds.
// It is encoded in JSON as [pin, maxTerms].
type OutputPin struct {
	Pin      int
	MaxTerms int
}

func (o OutputPin) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{o.Pin, o.MaxTerms})
}

func (o *OutputPin) UnmarshalJSON(b []byte) error {
	var pair [2]int
	if err := json.Unmarshal(b, &pair); err != nil {
		return errors.Wrap(err, "output pin wants [pin, maxTerms]")
	}
	o.Pin, o.MaxTerms = pair[0], pair[1]
	return nil
}

// SpecialPin is an input with a fixed column in every row, such as a
// clock. It is encoded in JSON as [pin, offset].
type SpecialPin struct {
	Pin    int
	Offset int
}

func (s SpecialPin) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.Pin, s.Offset})
}

func (s *SpecialPin) UnmarshalJSON(b []byte) error {
	var pair [2]int
	if err := json.Unmarshal(b, &pair); err != nil {
		return errors.Wrap(err, "special pin wants [pin, offset]")
	}
	s.Pin, s.Offset = pair[0], pair[1]
	return nil
}

// Config describes the fuse layout of one chip.
type Config struct {
	Name     string       `json:"Name,omitempty"`
	NumFuses int          `json:"NumFuses"`
	NumPins  int          `json:"TotalNumPins"`
	Inputs   []int        `json:"InputPins"`
	Outputs  []OutputPin  `json:"OutputPins"`
	Specials []SpecialPin `json:"SpecialPins"`
}

// GAL22V10 is the layout of a GAL22V10: one AR row, ten macrocells from
// pin 23 down to pin 14, the SP row and twenty mode fuses.
var GAL22V10 = Config{
	Name:     "GAL22V10",
	NumFuses: 5892,
	NumPins:  24,
	Inputs:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23},
	Outputs: []OutputPin{
		{14, 8}, {15, 10}, {16, 12}, {17, 14}, {18, 16},
		{19, 16}, {20, 14}, {21, 12}, {22, 10}, {23, 8},
	},
	Specials: []SpecialPin{{13, 42}},
}

var presets = map[string]Config{
	"GAL22V10": GAL22V10,
}

// Chips lists the names of the built-in chip layouts.
func Chips() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseChip returns the built-in layout for a device name such as g22v10.
func ParseChip(name string) (Config, error) {
	n := normalizeDevice(name)
	for key, cfg := range presets {
		if strings.Contains(n, strings.TrimPrefix(key, "GAL")) {
			return cfg.clone(), nil
		}
	}
	return Config{}, errors.Errorf("unsupported device: %s", name)
}

func normalizeDevice(name string) string {
	// Accept CUPL-style names like g22v10 or GAL22V10.
	var buf []rune
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			buf = append(buf, r)
		case r >= 'a' && r <= 'z':
			buf = append(buf, r-('a'-'A'))
		}
	}
	upper := string(buf)
	if len(upper) >= 5 && upper[0] == 'G' && !strings.HasPrefix(upper, "GAL") {
		upper = "GAL" + upper[1:]
	}
	return upper
}

func (c Config) displayName() string {
	if c.Name != "" {
		return c.Name
	}
	return "the chip"
}

func (c Config) clone() Config {
	c.Inputs = append([]int(nil), c.Inputs...)
	c.Outputs = append([]OutputPin(nil), c.Outputs...)
	c.Specials = append([]SpecialPin(nil), c.Specials...)
	return c
}

// Validate checks that the layout is self-consistent and fits in NumFuses.
func (c Config) Validate() error {
	if c.NumPins < 1 {
		return errors.New("config: TotalNumPins must be positive")
	}
	if len(c.Outputs) == 0 {
		return errors.New("config: no output pins")
	}
	inRange := func(p int) bool { return p >= 1 && p <= c.NumPins }
	for _, p := range c.Inputs {
		if !inRange(p) {
			return errors.Errorf("config: input pin %d outside 1..%d", p, c.NumPins)
		}
	}
	seen := make(map[int]bool)
	for _, o := range c.Outputs {
		if !inRange(o.Pin) {
			return errors.Errorf("config: output pin %d outside 1..%d", o.Pin, c.NumPins)
		}
		if seen[o.Pin] {
			return errors.Errorf("config: output pin %d listed twice", o.Pin)
		}
		if o.MaxTerms < 1 {
			return errors.Errorf("config: output pin %d has no product terms", o.Pin)
		}
		seen[o.Pin] = true
	}
	row := c.RowLen()
	for _, s := range c.Specials {
		if !inRange(s.Pin) {
			return errors.Errorf("config: special pin %d outside 1..%d", s.Pin, c.NumPins)
		}
		if s.Offset < 0 || s.Offset+1 >= row {
			return errors.Errorf("config: special pin %d offset %d outside a %d fuse row", s.Pin, s.Offset, row)
		}
	}
	last, err := c.SPRow()
	if err != nil {
		return errors.Wrap(err, "config")
	}
	if need := last + row + 2*len(c.Outputs); need > c.NumFuses {
		return errors.Errorf("config: layout needs %d fuses, NumFuses is %d", need, c.NumFuses)
	}
	return nil
}

// RowLen is the number of fuses in one product term row.
func (c Config) RowLen() int {
	return 2 * (len(c.Inputs) + len(c.Specials))
}

func (c Config) outputIndex(pin int) int {
	for i, o := range c.Outputs {
		if o.Pin == pin {
			return i
		}
	}
	return -1
}

func (c Config) IsOutput(pin int) bool { return c.outputIndex(pin) >= 0 }

// MaxTerms returns the product term capacity of an output pin.
func (c Config) MaxTerms(pin int) (int, bool) {
	i := c.outputIndex(pin)
	if i < 0 {
		return 0, false
	}
	return c.Outputs[i].MaxTerms, true
}

func (c Config) special(pin int) (SpecialPin, bool) {
	for _, s := range c.Specials {
		if s.Pin == pin {
			return s, true
		}
	}
	return SpecialPin{}, false
}

func (c Config) isInput(pin int) bool {
	for _, p := range c.Inputs {
		if p == pin {
			return true
		}
	}
	return false
}
