package hdl

// decodeTable turns the bit stream of a table declaration into one column
// per output, each indexed by input combination (first input as MSB).
func decodeTable(d *TableDecl, order CountOrder) ([][]bool, error) {
	in, out := len(d.Inputs), len(d.Outputs)
	if in > MaxExprInputs {
		return nil, newError(ShapeError, d.Loc, "table has %d inputs, at most %d are supported", in, MaxExprInputs)
	}
	combos := 1 << uint(in)

	switch d.Form {
	case FormCount:
		if len(d.Bits) != combos*out {
			return nil, newError(ShapeError, d.Loc, "count table needs %d bits (%d rows of %d), got %d",
				combos*out, combos, out, len(d.Bits))
		}
		cols := newColumns(out, combos, false)
		for k, b := range d.Bits {
			if order == CountColumnMajor {
				cols[k/combos][k%combos] = b
			} else {
				cols[k%out][k/out] = b
			}
		}
		return cols, nil

	case FormFull:
		width := in + out
		if len(d.Bits) != combos*width {
			return nil, newError(ShapeError, d.Loc, "full table needs %d rows of %d bits (%d bits), got %d",
				combos, width, combos*width, len(d.Bits))
		}
		return keyedRows(d, combos, false)

	case FormFill:
		return keyedRows(d, combos, d.Fill)
	}
	return nil, newError(ShapeError, d.Loc, "unknown table form %s", d.Form)
}

// keyedRows decodes rows of in+out bits whose leading in bits select the
// input combination. Combinations no row names keep the fill value.
func keyedRows(d *TableDecl, combos int, fill bool) ([][]bool, error) {
	in, out := len(d.Inputs), len(d.Outputs)
	width := in + out
	if len(d.Bits)%width != 0 {
		return nil, newError(ShapeError, d.Loc, "table rows are %d bits wide, %d bits do not divide into rows",
			width, len(d.Bits))
	}
	cols := newColumns(out, combos, fill)
	seen := make([]bool, combos)
	for r := 0; r*width < len(d.Bits); r++ {
		row := d.Bits[r*width : (r+1)*width]
		key := 0
		for _, b := range row[:in] {
			key <<= 1
			if b {
				key |= 1
			}
		}
		if seen[key] {
			return nil, newError(ShapeError, d.Loc, "row %d repeats input combination %0*b", r+1, in, key)
		}
		seen[key] = true
		for o, b := range row[in:] {
			cols[o][key] = b
		}
	}
	return cols, nil
}

func newColumns(out, combos int, fill bool) [][]bool {
	cols := make([][]bool, out)
	for i := range cols {
		cols[i] = make([]bool, combos)
		if fill {
			for j := range cols[i] {
				cols[i][j] = true
			}
		}
	}
	return cols
}
