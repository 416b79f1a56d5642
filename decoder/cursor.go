package decoder

import "io"

// Cursor reads a byte slice front to back. It never rewinds and never
// modifies the slice it was given.
type Cursor struct {
	data []byte
	di   int
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// ReadByte returns the next byte, or io.EOF once the data is exhausted.
func (c *Cursor) ReadByte() (byte, error) {
	if c.di >= len(c.data) {
		return 0, io.EOF
	}
	b := c.data[c.di]
	c.di++
	return b, nil
}

// Offset is the number of bytes consumed so far.
func (c *Cursor) Offset() int { return c.di }

// Len is the number of bytes left to read.
func (c *Cursor) Len() int { return len(c.data) - c.di }

// From returns the data starting at an offset already consumed. It is meant
// for diagnostics; the returned slice must not be modified.
func (c *Cursor) From(offset int) []byte {
	if offset < 0 || offset > c.di {
		return nil
	}
	return c.data[offset:]
}
