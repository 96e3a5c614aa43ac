// Package source provides the buffered character source the lexer reads
// from. It exposes a peekable cursor over the rune stream of an io.Reader
// and tracks the byte offset of the read position, which is what token and
// AST spans are expressed in.
package source

import (
	"bufio"
	"io"
)

// DefaultBufferSize is the chunk size used when none is given.
const DefaultBufferSize = 256

// Reader is a peekable rune cursor over an io.Reader. Input is read in
// fixed-size chunks; I/O errors surface from Peek and Next.
type Reader struct {
	br       *bufio.Reader
	offset   int
	peeked   rune
	peekSize int
	hasPeek  bool
}

func New(r io.Reader) *Reader {
	return NewSize(r, DefaultBufferSize)
}

func NewSize(r io.Reader, size int) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, size)}
}

// Offset returns the byte offset of the next unconsumed rune.
func (r *Reader) Offset() int {
	return r.offset
}

// Peek returns the next rune without consuming it. The second return value
// is false at end of input.
func (r *Reader) Peek() (rune, bool, error) {
	if !r.hasPeek {
		ch, size, err := r.br.ReadRune()
		if err == io.EOF {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		r.peeked = ch
		r.peekSize = size
		r.hasPeek = true
	}
	return r.peeked, true, nil
}

// Next consumes and returns the next rune. The second return value is false
// at end of input.
func (r *Reader) Next() (rune, bool, error) {
	if _, ok, err := r.Peek(); err != nil || !ok {
		return 0, ok, err
	}
	r.hasPeek = false
	r.offset += r.peekSize
	return r.peeked, true, nil
}
