package bits

// A Reader wraps a Cursor with a sticky error, so long fixed layouts can be
// read without checking every field. After the first failed read all further
// reads return zero; Err reports the first failure.
type Reader struct {
	cur *Cursor
	err error
}

// NewReader returns a Reader over cur. The cursor is shared, not copied.
func NewReader(cur *Cursor) *Reader {
	return &Reader{cur: cur}
}

// Err returns the first error encountered by the reader.
func (r *Reader) Err() error { return r.err }

// Pos returns the current bit position of the underlying cursor.
func (r *Reader) Pos() int { return r.cur.Pos() }

// HasAtLeast reports whether n more bits can be read and no error occurred.
func (r *Reader) HasAtLeast(n int) bool {
	return r.err == nil && r.cur.HasAtLeast(n)
}

// Uint reads an n-bit unsigned integer.
func (r *Reader) Uint(n int) uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.cur.Uint(n)
	if err != nil {
		r.err = err
		return 0
	}
	return v
}

// Int reads an n-bit two's-complement signed integer.
func (r *Reader) Int(n int) int64 {
	if r.err != nil {
		return 0
	}
	v, err := r.cur.Int(n)
	if err != nil {
		r.err = err
		return 0
	}
	return v
}

// SignMag reads an n-bit sign-magnitude integer.
func (r *Reader) SignMag(n int) int64 {
	if r.err != nil {
		return 0
	}
	v, err := r.cur.SignMag(n)
	if err != nil {
		r.err = err
		return 0
	}
	return v
}

// Skip advances by n bits.
func (r *Reader) Skip(n int) {
	if r.err != nil {
		return
	}
	if err := r.cur.Skip(n); err != nil {
		r.err = err
	}
}

// Bit reads a single bit as a bool.
func (r *Reader) Bit() bool {
	return r.Uint(1) != 0
}
