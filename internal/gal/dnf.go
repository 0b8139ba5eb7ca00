package gal

import "github.com/pkg/errors"

// Pin is one literal of a product term.
type Pin struct {
	Pin int
	Neg bool
}

// Row is an AND of literals.
type Row []Pin

// Expression is the sum of products driving one output.
type Expression struct {
	OutputPin int
	FlipFlop  bool
	Rows      []Row
}

// NewExpression turns every true entry of t into one product term, in
// ascending table order.
func NewExpression(t TableData, cfg Config) (Expression, error) {
	if err := t.Validate(cfg); err != nil {
		return Expression{}, errors.WithStack(err)
	}
	n := len(t.InputPins)
	e := Expression{OutputPin: t.OutputPin, FlipFlop: t.FlipFlop}
	for idx, v := range t.Table {
		if !v {
			continue
		}
		row := make(Row, n)
		for j, pin := range t.InputPins {
			bit := idx >> uint(n-1-j) & 1
			row[j] = Pin{Pin: pin, Neg: bit == 0}
		}
		e.Rows = append(e.Rows, row)
	}
	return e, nil
}
