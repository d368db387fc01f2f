package backend

import (
	"bufio"
	"io"
)

// lineReader only hands out whole newline-terminated lines. A forecast
// file caught halfway through a write then parses as its complete rows
// instead of ending in a truncated value. The unterminated tail is kept
// and completed by later reads once the writer appends the newline.
type lineReader struct {
	r *bufio.Reader
	// partial is the unterminated tail seen at the last EOF.
	partial []byte
	// pending is a complete line not yet copied out.
	pending []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.pending) == 0 {
		data, err := l.r.ReadBytes('\n')
		l.partial = append(l.partial, data...)
		if err != nil {
			return 0, err
		}
		l.pending, l.partial = l.partial, nil
	}
	n := copy(b, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}
