package zrcodec

import (
	"fmt"
	"iter"

	"go.uber.org/zap"
)

// BatchHeader is the 24-byte header of an event batch.
type BatchHeader struct {
	Magic      uint32
	Version    uint32
	TotalSize  uint32
	EventCount uint32
	Flags      uint32
	Reserved0  uint32
}

// Truncated reports whether the engine dropped events that did not fit.
func (h BatchHeader) Truncated() bool { return h.Flags&BatchFlagTruncated != 0 }

// ReadBatchHeader parses and validates the header of an event batch.
// total_size is checked against len(buf) but the records are not walked.
func ReadBatchHeader(buf []byte) (BatchHeader, error) {
	if len(buf) < BatchHeaderSize {
		return BatchHeader{}, fmt.Errorf("%w: %d bytes", ErrShortBuffer, len(buf))
	}
	var h BatchHeader
	r := NewReader(buf[:BatchHeaderSize])
	r.ReadUint32(&h.Magic)
	r.ReadUint32(&h.Version)
	r.ReadUint32(&h.TotalSize)
	r.ReadUint32(&h.EventCount)
	r.ReadUint32(&h.Flags)
	r.ReadUint32(&h.Reserved0)
	switch {
	case h.Magic != EventBatchMagic:
		return BatchHeader{}, fmt.Errorf("%w: 0x%08x", ErrBadMagic, h.Magic)
	case h.Version != EventBatchVersion1:
		return BatchHeader{}, fmt.Errorf("%w: event batch v%d", ErrUnsupportedVersion, h.Version)
	case h.TotalSize < BatchHeaderSize || uint64(h.TotalSize) > uint64(len(buf)):
		return BatchHeader{}, fmt.Errorf("%w: %d for %d-byte buffer", ErrTotalSize, h.TotalSize, len(buf))
	}
	return h, nil
}

type recordSpan struct {
	off  uint32
	size uint32
}

// EventBatch is a fully validated event batch. It borrows the buffer it
// was created from; the caller must keep it unchanged while the batch and
// its records are in use. A batch is read-only and safe for concurrent use.
type EventBatch struct {
	buf     []byte
	header  BatchHeader
	records []recordSpan
	kinds   [recordKinds]uint32 // records per metric kind
}

// NewEventBatch validates buf as a v1 event batch.
//
// Every record header is checked before anything is returned: each record
// must be at least RecordHeaderSize bytes, a multiple of 4, and lie inside
// total_size, and the records must end exactly at total_size. A single
// failure rejects the whole batch.
func NewEventBatch(buf []byte) (*EventBatch, error) {
	b, err := newEventBatch(buf)
	if err != nil {
		recordReject(err)
		Logger().Debug("event batch rejected", zap.Error(err), zap.Int("len", len(buf)))
		return nil, err
	}
	recordBatch(b)
	return b, nil
}

func newEventBatch(buf []byte) (*EventBatch, error) {
	h, err := ReadBatchHeader(buf)
	if err != nil {
		return nil, err
	}
	total := uint64(h.TotalSize)
	if uint64(h.EventCount) > (total-BatchHeaderSize)/RecordHeaderSize {
		return nil, fmt.Errorf("%w: %d records in %d bytes", ErrEventCount, h.EventCount, h.TotalSize)
	}

	b := &EventBatch{
		buf:     buf[:h.TotalSize:h.TotalSize],
		header:  h,
		records: make([]recordSpan, 0, h.EventCount),
	}
	off := uint64(BatchHeaderSize)
	for i := uint32(0); i < h.EventCount; i++ {
		if off+RecordHeaderSize > total {
			return nil, fmt.Errorf("%w: record %d header at %d", ErrRecordOverrun, i, off)
		}
		size := uint64(LE.Uint32(b.buf[off+4:]))
		if size < RecordHeaderSize || size%4 != 0 {
			return nil, fmt.Errorf("%w: record %d is %d bytes", ErrRecordSize, i, size)
		}
		if off+size > total {
			return nil, fmt.Errorf("%w: record %d at %d+%d past %d", ErrRecordOverrun, i, off, size, total)
		}
		b.records = append(b.records, recordSpan{off: uint32(off), size: uint32(size)})
		b.kinds[kindOf(EventType(LE.Uint32(b.buf[off:])))]++
		off += size
	}
	if off != total {
		return nil, fmt.Errorf("%w: %d of %d bytes consumed", ErrTrailingBytes, off, total)
	}
	return b, nil
}

func (b *EventBatch) Header() BatchHeader { return b.header }
func (b *EventBatch) Len() int            { return len(b.records) }
func (b *EventBatch) Truncated() bool     { return b.header.Truncated() }

// Bytes returns the validated batch, total_size bytes long.
func (b *EventBatch) Bytes() []byte { return b.buf }

// Record returns record i. It panics if i is out of range, like a slice index.
func (b *EventBatch) Record(i int) Record {
	s := b.records[i]
	return newRecord(b.buf, s.off, s.size)
}

// Records iterates over the records in wire order.
func (b *EventBatch) Records() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i := range b.records {
			if !yield(i, b.Record(i)) {
				return
			}
		}
	}
}
