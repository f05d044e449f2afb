// Package line assembles operator keystrokes into bounded command lines.
package line

import (
	"fmt"
	"io"
)

const (
	// MaxChars is the line capacity in printable characters.
	MaxChars = 80

	backspace = 8
	carriage  = 13
	del       = 127
)

// Reader accumulates bytes from a blocking byte source into lines.
type Reader struct {
	src io.ByteReader
	buf []byte
}

// NewReader creates a Reader with a capacity of capacity characters.
// A capacity of 0 selects MaxChars.
func NewReader(src io.ByteReader, capacity int) *Reader {
	if capacity <= 0 {
		capacity = MaxChars
	}
	return &Reader{
		src: src,
		buf: make([]byte, 0, capacity),
	}
}

// Capacity returns the number of characters a line can hold.
func (r *Reader) Capacity() int {
	return cap(r.buf)
}

// ReadLine blocks until CR is received or the buffer fills up.
// Backspace and delete drop the last character; other control bytes are ignored.
// A full buffer returns the line as is, without waiting for CR.
func (r *Reader) ReadLine() (string, error) {
	r.buf = r.buf[:0]
	for {
		c, err := r.src.ReadByte()
		if err != nil {
			return "", fmt.Errorf("failed to read line: %w", err)
		}

		switch {
		case c == backspace || c == del:
			if len(r.buf) > 0 {
				r.buf = r.buf[:len(r.buf)-1]
			}
		case c == carriage:
			return string(r.buf), nil
		case c >= 32 && c < del:
			r.buf = append(r.buf, c)
			if len(r.buf) == cap(r.buf) {
				return string(r.buf), nil
			}
		}
	}
}
