package zrcodec

import (
	"bytes"
	"fmt"
	"io"
	"math"
)

// BatchEncoder builds v1 event batches. The engine is the usual producer;
// this encoder exists for tests, fixtures, and replay tooling.
type BatchEncoder struct {
	body  bytes.Buffer
	w     *Writer
	count uint32
	flags uint32
}

var _ Marshaler = (*BatchEncoder)(nil)

func NewBatchEncoder() *BatchEncoder {
	e := &BatchEncoder{}
	e.w, _ = NewWriter(&e.body)
	return e
}

// Reset drops all records and flags.
func (e *BatchEncoder) Reset() {
	e.body.Reset()
	e.w, _ = NewWriter(&e.body)
	e.count = 0
	e.flags = 0
}

func (e *BatchEncoder) Len() int   { return int(e.count) }
func (e *BatchEncoder) Err() error { return e.w.Err() }

// SetTruncated sets or clears BatchFlagTruncated.
func (e *BatchEncoder) SetTruncated(v bool) {
	if v {
		e.flags |= BatchFlagTruncated
	} else {
		e.flags &^= BatchFlagTruncated
	}
}

// Raw appends a record with an arbitrary type and payload. The payload is
// zero-padded to a multiple of 4.
func (e *BatchEncoder) Raw(t EventType, timeMs, flags uint32, payload []byte) {
	size := uint64(RecordHeaderSize) + align4(uint64(len(payload)))
	if size > math.MaxUint32 {
		e.w.setError(fmt.Errorf("%w: %d-byte record", ErrLimit, size))
		return
	}
	e.header(t, uint32(size), timeMs, flags)
	e.w.WriteBytes(payload)
	e.w.Align(4)
}

func (e *BatchEncoder) header(t EventType, size, timeMs, flags uint32) {
	if e.w.Err() != nil {
		return
	}
	e.w.WriteUint32(uint32(t))
	e.w.WriteUint32(size)
	e.w.WriteUint32(timeMs)
	e.w.WriteUint32(flags)
	e.count++
}

func appendFixed[T any](e *BatchEncoder, t EventType, timeMs uint32, v T) {
	f := &Fixed[T]{Payload: v}
	e.header(t, uint32(RecordHeaderSize+f.Size()), timeMs, 0)
	e.w.WriteFrom(f)
}

func (e *BatchEncoder) Key(timeMs uint32, k KeyEvent)       { appendFixed(e, EventKey, timeMs, k) }
func (e *BatchEncoder) Text(timeMs uint32, t TextEvent)     { appendFixed(e, EventText, timeMs, t) }
func (e *BatchEncoder) Mouse(timeMs uint32, m MouseEvent)   { appendFixed(e, EventMouse, timeMs, m) }
func (e *BatchEncoder) Resize(timeMs uint32, r ResizeEvent) { appendFixed(e, EventResize, timeMs, r) }
func (e *BatchEncoder) Tick(timeMs uint32, t TickEvent)     { appendFixed(e, EventTick, timeMs, t) }

// Paste appends a paste record carrying text.
func (e *BatchEncoder) Paste(timeMs uint32, text []byte) {
	p := make([]byte, 8+len(text))
	LE.PutUint32(p, uint32(len(text)))
	copy(p[8:], text)
	e.Raw(EventPaste, timeMs, 0, p)
}

// User appends an application-defined record.
func (e *BatchEncoder) User(timeMs, tag uint32, data []byte) {
	p := make([]byte, 16+len(data))
	LE.PutUint32(p, tag)
	LE.PutUint32(p[4:], uint32(len(data)))
	copy(p[16:], data)
	e.Raw(EventUser, timeMs, 0, p)
}

// Size returns the encoded batch size.
func (e *BatchEncoder) Size() int { return BatchHeaderSize + e.body.Len() }

// Build returns the encoded batch in a new buffer.
func (e *BatchEncoder) Build() ([]byte, error) { return MarshalBinaryGeneric(e) }

// MarshalBinary implements encoding.BinaryMarshaler; it is Build.
func (e *BatchEncoder) MarshalBinary() ([]byte, error) { return e.Build() }

// MarshalTo writes the batch into p, which must hold Size bytes.
func (e *BatchEncoder) MarshalTo(p []byte) (int, error) { return MarshalToGeneric(e, p) }

// WriteTo implements io.WriterTo.
func (e *BatchEncoder) WriteTo(dst io.Writer) (int64, error) {
	if dst == nil {
		return 0, ErrWriteToNil
	}
	if err := e.w.Err(); err != nil {
		return 0, err
	}
	if uint64(e.Size()) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d-byte batch", ErrLimit, e.Size())
	}
	w, err := NewWriter(dst)
	if err != nil {
		return 0, err
	}
	w.WriteFrom(&Fixed[BatchHeader]{BatchHeader{
		Magic:      EventBatchMagic,
		Version:    EventBatchVersion1,
		TotalSize:  uint32(e.Size()),
		EventCount: e.count,
		Flags:      e.flags,
	}})
	w.WriteBytes(e.body.Bytes())
	return w.Result()
}
