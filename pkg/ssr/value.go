// Package ssr decodes SSR, Compact SSR and Galileo HAS correction messages.
package ssr

// A Value is a scaled correction quantity. Valid is false when the wire
// field carried the invalid-value sentinel; Val is then zero so trace
// formatting prints 0.000, but the flag keeps "not available" distinct
// from a genuine zero correction.
type Value struct {
	Val   float64
	Valid bool
}

// scaled builds a Value from a raw signed field, its sentinel and its LSB.
func scaled(raw int64, sentinel int64, lsb float64) Value {
	if raw == sentinel {
		return Value{}
	}
	return Value{Val: float64(raw) * lsb, Valid: true}
}
