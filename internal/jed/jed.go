package jed

import (
	"fmt"
	"strings"

	"github.com/pborges/ogal"
	"github.com/pborges/ogal/internal/gal"
)

// BlockSize is the number of fuses per *L line.
const BlockSize = 32

type Config struct {
	// Creator follows "Created by" in the comment section. Defaults to ogal.Banner().
	Creator string
	Header  []string
}

// MakeJEDEC generates a JEDEC string for the given GAL. Blocks holding no
// set fuse get no *L line and take the *F0 default.
func MakeJEDEC(cfg Config, g *gal.GAL) string {
	creator := cfg.Creator
	if creator == "" {
		creator = ogal.Banner()
	}

	var buf strings.Builder
	buf.WriteByte(0x02)
	buf.WriteByte('\n')
	fmt.Fprintf(&buf, "Created by %s\n", creator)
	for _, line := range cfg.Header {
		buf.WriteString(strings.TrimRight(line, "\r\n"))
		buf.WriteByte('\n')
	}
	fmt.Fprintf(&buf, "*QP%d\n", g.Config.NumPins)
	fmt.Fprintf(&buf, "*QF%d\n", g.Config.NumFuses)
	buf.WriteString("*G0\n")
	buf.WriteString("*F0\n")

	fb := newFuseBuilder(&buf)
	for start := 0; start < len(g.Fuses); start += BlockSize {
		end := start + BlockSize
		if end > len(g.Fuses) {
			end = len(g.Fuses)
		}
		chunk := g.Fuses[start:end]
		if anyTrue(chunk) {
			fb.add(chunk)
		} else {
			fb.skip(chunk)
		}
	}
	fb.checksum()

	// Transmission checksum is the 0000 dummy programmers accept.
	buf.WriteByte(0x03)
	buf.WriteString("0000")
	return buf.String()
}

func anyTrue(bits []bool) bool {
	for _, b := range bits {
		if b {
			return true
		}
	}
	return false
}

type fuseBuilder struct {
	buf      *strings.Builder
	cs       checkSummer
	idx      int
	openLine bool
}

func newFuseBuilder(buf *strings.Builder) *fuseBuilder {
	return &fuseBuilder{buf: buf}
}

func (f *fuseBuilder) add(bits []bool) {
	f.startLine()
	for _, b := range bits {
		f.addBit(b)
	}
	f.endLine()
}

func (f *fuseBuilder) skip(bits []bool) {
	for _, b := range bits {
		f.cs.add(b)
		f.idx++
	}
}

func (f *fuseBuilder) addBit(b bool) {
	f.startLine()
	f.buf.WriteByte(byte('0' + boolToInt(b)))
	f.cs.add(b)
	f.idx++
}

func (f *fuseBuilder) startLine() {
	if f.openLine {
		return
	}
	fmt.Fprintf(f.buf, "*L%05d ", f.idx)
	f.openLine = true
}

func (f *fuseBuilder) endLine() {
	if f.openLine {
		f.buf.WriteByte('\n')
		f.openLine = false
	}
}

func (f *fuseBuilder) checksum() {
	f.endLine()
	fmt.Fprintf(f.buf, "*C%04X\n", f.cs.get())
}

// checkSummer packs fuses MSB-first into bytes and sums them mod 2^16.
type checkSummer struct {
	bitNum uint8
	byte   uint8
	sum    uint16
}

func (c *checkSummer) add(bit bool) {
	if bit {
		c.byte |= 0x80 >> c.bitNum
	}
	c.bitNum++
	if c.bitNum == 8 {
		c.sum += uint16(c.byte)
		c.byte = 0
		c.bitNum = 0
	}
}

// get includes a trailing partial byte, zero padded.
func (c *checkSummer) get() uint16 {
	return c.sum + uint16(c.byte)
}

// Checksum returns the *C value of a fuse array.
func Checksum(fuses []bool) uint16 {
	var c checkSummer
	for _, b := range fuses {
		c.add(b)
	}
	return c.get()
}

func boolToInt(b bool) byte {
	if b {
		return 1
	}
	return 0
}
