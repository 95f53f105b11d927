// Package bits provides a bit-addressable read cursor over byte buffers,
// as needed for decoding bit-packed GNSS messages.
package bits

import "errors"

// ErrInsufficientData is returned when a read reaches beyond the end of the
// buffer. The caller may re-deliver a longer buffer and decode again; the
// condition is not treated as malformed input.
var ErrInsufficientData = errors.New("bits: insufficient data")

// A Cursor reads bit fields from a byte buffer, MSB first. The buffer is
// never mutated and may be shared by several cursors, each owning its own
// position.
type Cursor struct {
	buf []byte
	pos int // bit position, 0 <= pos <= 8*len(buf)
}

// NewCursor returns a cursor positioned at bit 0 of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current bit position.
func (c *Cursor) Pos() int { return c.pos }

// SetPos moves the cursor to the absolute bit position pos.
// Positions beyond the buffer end are clipped to the end.
func (c *Cursor) SetPos(pos int) {
	if pos < 0 {
		pos = 0
	}
	if max := len(c.buf) * 8; pos > max {
		pos = max
	}
	c.pos = pos
}

// Remaining returns the number of unread bits.
func (c *Cursor) Remaining() int { return len(c.buf)*8 - c.pos }

// HasAtLeast reports whether n more bits can be read.
func (c *Cursor) HasAtLeast(n int) bool { return n >= 0 && c.Remaining() >= n }

// Skip advances the cursor by n bits.
func (c *Cursor) Skip(n int) error {
	if !c.HasAtLeast(n) {
		return ErrInsufficientData
	}
	c.pos += n
	return nil
}

// Uint reads an n-bit unsigned integer, 0 <= n <= 64.
func (c *Cursor) Uint(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, errors.New("bits: invalid field width")
	}
	if !c.HasAtLeast(n) {
		return 0, ErrInsufficientData
	}
	var v uint64
	for i := c.pos; i < c.pos+n; i++ {
		v = v<<1 | uint64(c.buf[i/8]>>(7-i%8)&1)
	}
	c.pos += n
	return v, nil
}

// Int reads an n-bit two's-complement signed integer.
func (c *Cursor) Int(n int) (int64, error) {
	v, err := c.Uint(n)
	if err != nil {
		return 0, err
	}
	if n > 0 && n < 64 && v&(1<<(n-1)) != 0 {
		v |= ^uint64(0) << n // extend sign
	}
	return int64(v), nil
}

// SignMag reads an n-bit sign-magnitude integer: one sign bit followed by
// n-1 magnitude bits, negated if the sign bit is set. GLONASS state-vector
// and clock fields use this encoding.
func (c *Cursor) SignMag(n int) (int64, error) {
	if n < 2 {
		return 0, errors.New("bits: invalid sign-magnitude width")
	}
	if !c.HasAtLeast(n) {
		return 0, ErrInsufficientData
	}
	sign, _ := c.Uint(1)
	mag, _ := c.Uint(n - 1)
	if sign != 0 {
		return -int64(mag), nil
	}
	return int64(mag), nil
}

// AllZero reports whether every remaining bit is zero. The cursor does not
// move. Zero-padded tails of fixed-size transport frames look like this.
func (c *Cursor) AllZero() bool {
	for i := c.pos; i < len(c.buf)*8; i++ {
		if c.buf[i/8]>>(7-i%8)&1 != 0 {
			return false
		}
	}
	return true
}

// Bytes reads n*8 bits and returns them as a byte slice.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if !c.HasAtLeast(n * 8) {
		return nil, ErrInsufficientData
	}
	out := make([]byte, n)
	for i := range out {
		v, _ := c.Uint(8)
		out[i] = byte(v)
	}
	return out, nil
}
