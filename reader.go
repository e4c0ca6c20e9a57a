package zrcodec

import (
	"encoding/binary"
	"fmt"
)

// Reader is a cursor over an in-memory wire buffer.
// It tracks the first error. Subsequent reads become no-ops and leave
// their destinations untouched.
type Reader struct {
	buf   []byte
	off   int
	err   error
	order binary.ByteOrder
}

// NewReader creates a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf, order: Order}
}

// WithByteOrder allows setting a custom byte order and returns
// the configured for chaining.
func (r *Reader) WithByteOrder(order binary.ByteOrder) *Reader {
	r.order = order
	return r
}

func (r *Reader) Offset() int    { return r.off }
func (r *Reader) Len() int       { return len(r.buf) }
func (r *Reader) Remaining() int { return len(r.buf) - r.off }
func (r *Reader) Err() error     { return r.err }

// Result returns the current offset and the final error state.
func (r *Reader) Result() (int, error) {
	return r.off, r.err
}

// setError records the first non-nil error.
func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// take returns the next n bytes as a view into the underlying buffer.
func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > len(r.buf)-r.off {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncatedData, n, r.off, len(r.buf)-r.off)
		return nil
	}
	p := r.buf[r.off : r.off+n : r.off+n]
	r.off += n
	return p
}

// Seek moves the cursor to an absolute offset.
func (r *Reader) Seek(off int) {
	if r.err != nil {
		return
	}
	if off < 0 || off > len(r.buf) {
		r.err = fmt.Errorf("%w: seek to %d past end %d", ErrTruncatedData, off, len(r.buf))
		return
	}
	r.off = off
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) { _ = r.take(n) }

// ReadBytes returns the next n bytes without copying. The result aliases
// the buffer passed to NewReader.
func (r *Reader) ReadBytes(n int) []byte {
	if n == 0 {
		return nil
	}
	return r.take(n)
}

// --- Primitive Read Operations ---

func (r *Reader) ReadUint8(dest *uint8) {
	if p := r.take(1); p != nil {
		*dest = p[0]
	}
}

func (r *Reader) ReadInt8(dest *int8) {
	if p := r.take(1); p != nil {
		*dest = int8(p[0])
	}
}

func (r *Reader) ReadUint16(dest *uint16) {
	if p := r.take(2); p != nil {
		*dest = r.order.Uint16(p)
	}
}

func (r *Reader) ReadUint32(dest *uint32) {
	if p := r.take(4); p != nil {
		*dest = r.order.Uint32(p)
	}
}

func (r *Reader) ReadUint64(dest *uint64) {
	if p := r.take(8); p != nil {
		*dest = r.order.Uint64(p)
	}
}

func (r *Reader) ReadInt32(dest *int32) {
	if p := r.take(4); p != nil {
		*dest = int32(r.order.Uint32(p))
	}
}
