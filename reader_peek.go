package zrcodec

import (
	"io"
)

// PeekableReader is a reader that allows peeking ahead at the underlying data stream.
type PeekableReader struct {
	R io.Reader // The underlying reader.
	B []byte    // The buffer for peeked data.
}

// PeekReader returns a PeekableReader. If the given reader is already a
// PeekableReader, it is returned directly.
func PeekReader(r io.Reader) *PeekableReader {
	if pr, ok := r.(*PeekableReader); ok {
		return pr
	}
	return &PeekableReader{R: r}
}

// Peek returns the next n bytes without advancing the reader.
// Fewer bytes are returned together with the error that stopped the read.
func (r *PeekableReader) Peek(n int) ([]byte, error) {
	if len(r.B) >= n {
		return r.B[:n], nil
	}

	i := len(r.B)
	r.B = append(r.B, make([]byte, n-i)...)

	var err error
	for i < n {
		read, er := r.R.Read(r.B[i:])
		i += read
		if er != nil {
			err = er
			break
		}
	}
	r.B = r.B[:i]
	return r.B, err
}

// Buffered returns the number of peeked bytes not yet consumed.
func (r *PeekableReader) Buffered() int { return len(r.B) }

// Close closes the underlying reader if it implements io.Closer.
func (r *PeekableReader) Close() error {
	if c, ok := r.R.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Read reads data into p. It first drains the peeked buffer and then
// reads from the underlying reader.
func (r *PeekableReader) Read(p []byte) (n int, err error) {
	n = copy(p, r.B)
	r.B = r.B[n:]
	if n == len(p) {
		return n, nil
	}
	read, err := r.R.Read(p[n:])
	n += read
	return n, err
}
