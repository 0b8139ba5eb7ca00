// Package wincupl writes truth tables as WinCUPL source, one Table block
// per output.
package wincupl

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/pborges/ogal/internal/gal"
)

const (
	inPrefix  = "in_"
	outPrefix = "out_"
)

// Export renders tables as WinCUPL source. header, when not empty, is
// copied verbatim in front of the pin list. Flip-flop flags are not
// expressed.
func Export(tables []gal.TableData, header string) (string, error) {
	var buf strings.Builder
	if header != "" {
		buf.WriteString(strings.TrimRight(header, "\n"))
		buf.WriteByte('\n')
	}

	outputs := make(map[int]bool)
	var outOrder []int
	for _, t := range tables {
		if want := 1 << uint(len(t.InputPins)); len(t.Table) != want {
			return "", errors.Errorf("output pin %d: table has %d entries, %d inputs need %d",
				t.OutputPin, len(t.Table), len(t.InputPins), want)
		}
		if !outputs[t.OutputPin] {
			outputs[t.OutputPin] = true
			outOrder = append(outOrder, t.OutputPin)
		}
	}
	inputs := make(map[int]bool)
	var inOrder []int
	for _, t := range tables {
		for _, p := range t.InputPins {
			if !outputs[p] && !inputs[p] {
				inputs[p] = true
				inOrder = append(inOrder, p)
			}
		}
	}

	name := func(pin int) string {
		if outputs[pin] {
			return fmt.Sprintf("%s%dp", outPrefix, pin)
		}
		return fmt.Sprintf("%s%dp", inPrefix, pin)
	}

	for _, p := range inOrder {
		fmt.Fprintf(&buf, "Pin %d = %s;\n", p, name(p))
	}
	for _, p := range outOrder {
		fmt.Fprintf(&buf, "Pin %d = %s;\n", p, name(p))
	}
	buf.WriteString("\n\n")

	for i, t := range tables {
		if len(t.InputPins) == 0 {
			fmt.Fprintf(&buf, "%s = 'b'%c;\n\n", name(t.OutputPin), bit(t.Table[0]))
			continue
		}
		in := fmt.Sprintf("%st%df", inPrefix, i)
		out := fmt.Sprintf("%st%df", outPrefix, i)
		names := make([]string, len(t.InputPins))
		for j, p := range t.InputPins {
			names[j] = name(p)
		}
		fmt.Fprintf(&buf, "Field %s = [%s];\n", in, strings.Join(names, ", "))
		fmt.Fprintf(&buf, "Field %s = %s;\n", out, name(t.OutputPin))
		fmt.Fprintf(&buf, "Table %s => %s {\n", in, out)
		n := len(t.InputPins)
		for idx, v := range t.Table {
			fmt.Fprintf(&buf, "  'b'%0*b => 'b'%c;\n", n, idx, bit(v))
		}
		buf.WriteString("}\n\n")
	}
	return buf.String(), nil
}

func bit(b bool) byte {
	if b {
		return '1'
	}
	return '0'
}
