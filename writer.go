package zrcodec

import (
	"bufio"
	"encoding/binary"
	"io"
)

type sink interface {
	io.Writer
	io.ByteWriter
}

type flusher interface {
	Flush() error
}

// Writer simplifies writing little-endian wire structures.
// It tracks the first error that occurs. After an error, all subsequent
// write operations become no-ops.
type Writer struct {
	w     sink
	count int64 // total bytes written
	err   error // first error encountered. Subsequent writes become no-ops.
	order binary.ByteOrder
}

// NewWriter wraps w. Destinations that already accept single bytes, such as
// *BytesWriter or *bytes.Buffer, are used directly; anything else is buffered
// and must be flushed with Result.
func NewWriter(w io.Writer) (*Writer, error) {
	if w == nil {
		return nil, ErrNilIO
	}
	if s, ok := w.(sink); ok {
		return &Writer{w: s, order: Order}, nil
	}
	return &Writer{w: bufio.NewWriter(w), order: Order}, nil
}

// WithByteOrder allows setting a custom byte order and returns
// the configured for chaining.
func (w *Writer) WithByteOrder(order binary.ByteOrder) *Writer {
	w.order = order
	return w
}

// Write implements the io.Writer interface.
func (w *Writer) Write(buf []byte) (int, error) {
	if len(buf) == 0 || w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(buf)
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

// WriteString implements the io.StringWriter interface.
func (w *Writer) WriteString(str string) (int, error) {
	if str == "" || w.err != nil {
		return 0, w.err
	}
	var (
		n   int
		err error
	)
	if sw, ok := w.w.(io.StringWriter); ok {
		n, err = sw.WriteString(str)
	} else {
		n, err = w.w.Write([]byte(str))
	}
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

func (w *Writer) Count() int64 { return w.count }
func (w *Writer) Err() error   { return w.err }

// setError records the first non-nil error.
// This preserves the root cause of a failure chain instead of a later,
// less relevant error.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Result flushes any buffered data and returns the final count and error state.
func (w *Writer) Result() (int64, error) {
	if f, ok := w.w.(flusher); ok && w.err == nil {
		w.setError(f.Flush())
	}
	return w.count, w.err
}

// WriteFrom writes the encoding of wt.
func (w *Writer) WriteFrom(wt io.WriterTo) {
	if wt == nil || w.err != nil {
		return
	}
	n, err := wt.WriteTo(w.w)
	w.count += n
	w.setError(err)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(buf []byte) {
	if len(buf) == 0 || w.err != nil {
		return
	}
	_, _ = w.Write(buf)
}

// WriteZeros writes n zero bytes, often for padding.
func (w *Writer) WriteZeros(n int64) {
	for n > 0 && w.err == nil {
		chunk := min(n, BUFFER_SIZE)
		_, _ = w.Write(empty[:chunk])
		n -= chunk
	}
}

// Align writes zero bytes until the offset is a multiple of n.
func (w *Writer) Align(n int) {
	if n > 1 {
		w.WriteZeros(Roundup(w.count, int64(n)) - w.count)
	}
}

// --- Primitive Write Operations ---

func (w *Writer) WriteByte(v byte) error {
	if w.err != nil {
		return w.err
	}
	err := w.w.WriteByte(v)
	if err == nil {
		w.count++
	} else {
		w.err = err
	}
	return err
}

func (w *Writer) WriteUint8(v uint8) { _ = w.WriteByte(v) }

func (w *Writer) WriteInt8(v int8) { _ = w.WriteByte(uint8(v)) }

func (w *Writer) WriteUint16(v uint16) {
	if w.err != nil {
		return
	}
	var buf [2]byte
	w.order.PutUint16(buf[:], v)
	_, _ = w.Write(buf[:])
}

func (w *Writer) WriteUint32(v uint32) {
	if w.err != nil {
		return
	}
	var buf [4]byte
	w.order.PutUint32(buf[:], v)
	_, _ = w.Write(buf[:])
}

func (w *Writer) WriteUint64(v uint64) {
	if w.err != nil {
		return
	}
	var buf [8]byte
	w.order.PutUint64(buf[:], v)
	_, _ = w.Write(buf[:])
}

func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }
