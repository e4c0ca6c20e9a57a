package zrcodec

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// FrameKind tells drawlists and event batches apart in a recording.
type FrameKind uint8

const (
	FrameUnknown FrameKind = iota
	FrameDrawlist
	FrameEvents
)

func (k FrameKind) String() string {
	switch k {
	case FrameDrawlist:
		return "drawlist"
	case FrameEvents:
		return "events"
	}
	return "unknown"
}

// frameProbe covers the magic and total_size of both headers.
const frameProbe = 16

// FrameReader splits a recording, a stream of drawlists and event batches
// written back to back, into frames.
//
// Frames are only sized, not validated; pass them to ParseDrawlist or
// NewEventBatch.
type FrameReader struct {
	r   *PeekableReader
	max uint32
	off int64
}

// NewFrameReader reads frames from r. Frames larger than limit bytes are
// rejected with ErrLimit; a zero limit means no cap.
func NewFrameReader(r io.Reader, limit uint32) *FrameReader {
	return &FrameReader{r: PeekReader(r), max: limit}
}

// Offset returns the stream offset of the next frame.
func (f *FrameReader) Offset() int64 { return f.off }

// peek returns the kind and total size of the next frame without
// consuming it.
func (f *FrameReader) peek() (FrameKind, uint32, error) {
	p, err := f.r.Peek(frameProbe)
	if len(p) < frameProbe {
		if len(p) == 0 && (err == nil || errors.Is(err, io.EOF)) {
			return FrameUnknown, 0, io.EOF
		}
		if err == nil || errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return FrameUnknown, 0, fmt.Errorf("%w: frame header at %d: %w", ErrTruncatedData, f.off, err)
	}

	var (
		kind   FrameKind
		total  uint32
		header uint32
	)
	switch magic := LE.Uint32(p); magic {
	case DrawlistMagic:
		kind, total, header = FrameDrawlist, LE.Uint32(p[12:]), DrawlistHeaderSize
	case EventBatchMagic:
		kind, total, header = FrameEvents, LE.Uint32(p[8:]), BatchHeaderSize
	default:
		return FrameUnknown, 0, fmt.Errorf("%w: 0x%08x at %d", ErrBadMagic, magic, f.off)
	}
	switch {
	case total < header:
		return kind, 0, fmt.Errorf("%w: %s frame of %d bytes at %d", ErrTotalSize, kind, total, f.off)
	case exceeds(f.max, uint64(total)):
		return kind, 0, fmt.Errorf("%w: %s frame of %d bytes at %d, max %d", ErrLimit, kind, total, f.off, f.max)
	}
	return kind, total, nil
}

// Next returns the next frame in a newly allocated buffer.
// It returns io.EOF once the stream ends on a frame boundary.
func (f *FrameReader) Next() (FrameKind, []byte, error) {
	kind, total, err := f.peek()
	if err != nil {
		return kind, nil, err
	}
	buf := make([]byte, total)
	n, err := io.ReadFull(f.r, buf)
	f.off += int64(n)
	if err != nil {
		return kind, nil, f.truncated(kind, err)
	}
	Logger().Debug("frame read", zap.Stringer("kind", kind), zap.Uint32("size", total), zap.Int64("end", f.off))
	return kind, buf, nil
}

// Skip discards the next frame and returns its kind and size.
func (f *FrameReader) Skip() (FrameKind, uint32, error) {
	kind, total, err := f.peek()
	if err != nil {
		return kind, 0, err
	}
	n, err := io.CopyN(io.Discard, f.r, int64(total))
	f.off += n
	if err != nil {
		return kind, 0, f.truncated(kind, err)
	}
	return kind, total, nil
}

func (f *FrameReader) truncated(kind FrameKind, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w: %s frame ending at %d: %w", ErrTruncatedData, kind, f.off, err)
}
