package testutil

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/pborges/ogal/internal/gal"
)

type JEDEC struct {
	Creator string
	QP      int
	QF      int
	G       int
	F       int
	Fuses   []bool
	Csum    uint16
	// Blocks holds the offsets of the *L lines in file order.
	Blocks []int
}

// ParseJEDEC reads a JEDEC file. Fuses no *L line mentions take the *F
// default of the file.
func ParseJEDEC(data []byte) (JEDEC, error) {
	var j JEDEC
	s := string(data)
	s = strings.TrimPrefix(s, "\x02")
	if idx := strings.Index(s, "\x03"); idx >= 0 {
		s = s[:idx]
	}
	scanner := bufio.NewScanner(strings.NewReader(s))
	fuses := map[int]bool{}
	maxIndex := -1
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case strings.HasPrefix(line, "Created by "):
			j.Creator = strings.TrimPrefix(line, "Created by ")
		case strings.HasPrefix(line, "*QP"):
			v, err := strconv.Atoi(strings.TrimPrefix(line, "*QP"))
			if err != nil {
				return j, err
			}
			j.QP = v
		case strings.HasPrefix(line, "*QF"):
			v, err := strconv.Atoi(strings.TrimPrefix(line, "*QF"))
			if err != nil {
				return j, err
			}
			j.QF = v
		case strings.HasPrefix(line, "*G"):
			v, err := strconv.Atoi(strings.TrimPrefix(line, "*G"))
			if err != nil {
				return j, err
			}
			j.G = v
		case strings.HasPrefix(line, "*F"):
			v, err := strconv.Atoi(strings.TrimPrefix(line, "*F"))
			if err != nil {
				return j, err
			}
			j.F = v
		case strings.HasPrefix(line, "*C"):
			cs, err := strconv.ParseUint(strings.TrimPrefix(line, "*C"), 16, 16)
			if err != nil {
				return j, err
			}
			j.Csum = uint16(cs)
		case strings.HasPrefix(line, "*L"):
			parts := strings.SplitN(line[2:], " ", 2)
			if len(parts) != 2 {
				return j, errors.Errorf("invalid L line: %q", line)
			}
			off, err := strconv.Atoi(parts[0])
			if err != nil {
				return j, err
			}
			j.Blocks = append(j.Blocks, off)
			for i, ch := range strings.TrimSpace(parts[1]) {
				idx := off + i
				switch ch {
				case '1':
					fuses[idx] = true
				case '0':
					fuses[idx] = false
				default:
					return j, errors.Errorf("invalid bit %q", ch)
				}
				if idx > maxIndex {
					maxIndex = idx
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return j, err
	}
	n := j.QF
	if n == 0 {
		n = maxIndex + 1
	}
	j.Fuses = make([]bool, n)
	for i := range j.Fuses {
		if v, ok := fuses[i]; ok {
			j.Fuses[i] = v
		} else {
			j.Fuses[i] = j.F == 1
		}
	}
	return j, nil
}

// FuseChecksum packs bits MSB-first into bytes and sums them.
func FuseChecksum(bits []bool) uint16 {
	var (
		bitNum  uint8
		byteVal uint8
		sum     uint16
	)
	for _, bit := range bits {
		if bit {
			byteVal |= 0x80 >> bitNum
		}
		bitNum++
		if bitNum == 8 {
			sum += uint16(byteVal)
			byteVal = 0
			bitNum = 0
		}
	}
	return sum + uint16(byteVal)
}

// FuseSection names the part of the layout a fuse index belongs to.
func FuseSection(cfg gal.Config, idx int) string {
	row := cfg.RowLen()
	if idx < row {
		return fmt.Sprintf("AR col%d", idx)
	}
	for _, o := range cfg.Outputs {
		first, _ := cfg.FirstFuse(o.Pin)
		last, _ := cfg.LastFuse(o.Pin)
		if idx >= first && idx < last {
			return fmt.Sprintf("OLMC(pin%d) row%d/%d col%d", o.Pin, (idx-first)/row, o.MaxTerms+1, (idx-first)%row)
		}
	}
	if sp, err := cfg.SPRow(); err == nil && idx >= sp && idx < sp+row {
		return fmt.Sprintf("SP col%d", idx-sp)
	}
	for _, o := range cfg.Outputs {
		s0, s1, _ := cfg.ModeFuses(o.Pin)
		if idx == s0 {
			return fmt.Sprintf("S0(pin%d)", o.Pin)
		}
		if idx == s1 {
			return fmt.Sprintf("S1(pin%d)", o.Pin)
		}
	}
	return fmt.Sprintf("unused(%d)", idx)
}

// CompareFuses returns a human-readable diff of two fuse arrays, or "".
func CompareFuses(cfg gal.Config, got, want []bool) string {
	if len(got) != len(want) {
		return fmt.Sprintf("fuse length mismatch: got %d want %d", len(got), len(want))
	}
	var buf bytes.Buffer
	mismatches := 0
	for i := range got {
		if got[i] == want[i] {
			continue
		}
		mismatches++
		fmt.Fprintf(&buf, "  fuse[%d] %s: got=%c want=%c\n", i, FuseSection(cfg, i), bit(got[i]), bit(want[i]))
		if mismatches >= 40 {
			fmt.Fprintf(&buf, "  ... (%d+ mismatches, truncated)\n", mismatches)
			break
		}
	}
	if mismatches == 0 {
		return ""
	}
	return fmt.Sprintf("%d fuse mismatches:\n%s", mismatches, buf.String())
}

func bit(b bool) rune {
	if b {
		return '1'
	}
	return '0'
}
