package gal

import "fmt"

// ValidationError reports a table or expression that does not fit the chip.
type ValidationError struct {
	Pin int
	Msg string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("output pin %d: %s", e.Pin, e.Msg)
}

// LayoutError reports a pin that has no place in the fuse matrix.
type LayoutError struct {
	Pin int
	Msg string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("pin %d: %s", e.Pin, e.Msg)
}
