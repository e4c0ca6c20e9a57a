package zrcodec

import (
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"
)

// DrawlistHeader is the 64-byte header at the start of every drawlist.
// All offsets are from the start of the buffer.
type DrawlistHeader struct {
	Magic              uint32
	Version            uint32
	HeaderSize         uint32
	TotalSize          uint32
	CmdOffset          uint32
	CmdBytes           uint32
	CmdCount           uint32
	StringsSpanOffset  uint32
	StringsCount       uint32
	StringsBytesOffset uint32
	StringsBytesLen    uint32
	BlobsSpanOffset    uint32
	BlobsCount         uint32
	BlobsBytesOffset   uint32
	BlobsBytesLen      uint32
	Reserved0          uint32
}

// Encoder accumulates drawlist commands and strings and serializes them
// into a v1 drawlist.
//
// Misuse such as nil text or an unbalanced PopClip is latched: the first
// error is kept, later calls become no-ops, and Build returns the error.
// Reset clears it. An Encoder must not be used from multiple goroutines.
type Encoder struct {
	cmds     []Command
	cmdBytes int
	spans    []Span
	strBytes []byte
	clip     int
	limits   Limits
	err      error
}

var _ Marshaler = (*Encoder)(nil)

// NewEncoder returns an empty Encoder without limits.
func NewEncoder() *Encoder { return &Encoder{} }

// NewEncoderWithLimits returns an empty Encoder enforcing l.
func NewEncoderWithLimits(l Limits) *Encoder { return &Encoder{limits: l} }

// SetLimits replaces the limits checked by subsequent calls.
func (e *Encoder) SetLimits(l Limits) { e.limits = l }

// Limits returns the active limits.
func (e *Encoder) Limits() Limits { return e.limits }

// Reset drops all commands, strings, and any latched error.
// Allocated capacity is kept for reuse.
func (e *Encoder) Reset() {
	clear(e.cmds)
	e.cmds = e.cmds[:0]
	e.cmdBytes = 0
	e.spans = e.spans[:0]
	e.strBytes = e.strBytes[:0]
	e.clip = 0
	e.err = nil
}

func (e *Encoder) Err() error        { return e.err }
func (e *Encoder) CommandCount() int { return len(e.cmds) }
func (e *Encoder) StringCount() int  { return len(e.spans) }

// Commands returns a copy of the queued commands in call order.
func (e *Encoder) Commands() []Command { return append([]Command(nil), e.cmds...) }

// setError records the first non-nil error.
func (e *Encoder) setError(err error) {
	if e.err == nil && err != nil {
		e.err = err
		recordEncodeError(err)
		Logger().Debug("drawlist encoder error", zap.Error(err), zap.Int("commands", len(e.cmds)))
	}
}

func (e *Encoder) push(c Command) {
	if e.err != nil {
		return
	}
	if exceeds(e.limits.MaxCommands, uint64(len(e.cmds)+1)) {
		e.setError(fmt.Errorf("%w: more than %d commands", ErrLimit, e.limits.MaxCommands))
		return
	}
	e.cmds = append(e.cmds, c)
	e.cmdBytes += commandSize(c)
}

// Clear appends a Clear command.
func (e *Encoder) Clear() { e.push(Clear{}) }

// FillRect appends a FillRect command.
func (e *Encoder) FillRect(x, y, w, h int32, st Style) {
	e.push(FillRect{X: x, Y: y, W: w, H: h, Style: st})
}

// AddString appends s to the string table and returns its index.
func (e *Encoder) AddString(s string) uint32 {
	if e.err != nil {
		return 0
	}
	if exceeds(e.limits.MaxStrings, uint64(len(e.spans)+1)) {
		e.setError(fmt.Errorf("%w: more than %d strings", ErrLimit, e.limits.MaxStrings))
		return 0
	}
	if uint64(len(e.strBytes))+uint64(len(s)) > math.MaxUint32 {
		e.setError(fmt.Errorf("%w: string bytes exceed 4 GiB", ErrLimit))
		return 0
	}
	e.spans = append(e.spans, Span{Off: uint32(len(e.strBytes)), Len: uint32(len(s))})
	e.strBytes = append(e.strBytes, s...)
	return uint32(len(e.spans) - 1)
}

// AddStringBytes is AddString for UTF-8 bytes. A nil slice is an error;
// an empty non-nil slice adds an empty string.
func (e *Encoder) AddStringBytes(b []byte) uint32 {
	if b == nil {
		e.setError(ErrNilText)
		return 0
	}
	return e.AddString(string(b))
}

// DrawText draws text at (x, y) with DefaultTextStyle.
func (e *Encoder) DrawText(x, y int32, text string) {
	e.DrawTextStyle(x, y, text, DefaultTextStyle)
}

// DrawTextStyle adds text as a new string and draws all of it at (x, y).
func (e *Encoder) DrawTextStyle(x, y int32, text string, st Style) {
	if e.err != nil {
		return
	}
	idx := e.AddString(text)
	if e.err != nil {
		return
	}
	e.push(DrawText{X: x, Y: y, StringIndex: idx, ByteLen: uint32(len(text)), Style: st})
}

// DrawTextBytes is DrawTextStyle for UTF-8 bytes. A nil slice is an error.
func (e *Encoder) DrawTextBytes(x, y int32, text []byte, st Style) {
	if text == nil {
		e.setError(ErrNilText)
		return
	}
	e.DrawTextStyle(x, y, string(text), st)
}

// DrawTextSlice draws n bytes starting at off of an existing string.
func (e *Encoder) DrawTextSlice(x, y int32, index, off, n uint32, st Style) {
	e.Append(DrawText{X: x, Y: y, StringIndex: index, ByteOff: off, ByteLen: n, Style: st})
}

// PushClip intersects the clip rectangle with (x, y, w, h).
func (e *Encoder) PushClip(x, y, w, h int32) { e.Append(PushClip{X: x, Y: y, W: w, H: h}) }

// PopClip restores the previous clip rectangle.
func (e *Encoder) PopClip() { e.Append(PopClip{}) }

// Append queues c after validating it against the encoder state.
// Commands that need the blob section are not representable in v1 and
// latch ErrUnsupportedCommand.
func (e *Encoder) Append(c Command) {
	if e.err != nil {
		return
	}
	switch c := c.(type) {
	case Clear, FillRect:
	case DrawText:
		if int64(c.StringIndex) >= int64(len(e.spans)) {
			e.setError(fmt.Errorf("%w: string %d of %d", ErrStringRef, c.StringIndex, len(e.spans)))
			return
		}
		span := e.spans[c.StringIndex]
		if uint64(c.ByteOff)+uint64(c.ByteLen) > uint64(span.Len) {
			e.setError(fmt.Errorf("%w: bytes [%d,+%d) of %d-byte string %d", ErrStringRef, c.ByteOff, c.ByteLen, span.Len, c.StringIndex))
			return
		}
	case PushClip:
		if exceeds(e.limits.MaxClipDepth, uint64(e.clip+1)) {
			e.setError(fmt.Errorf("%w: clip depth over %d", ErrLimit, e.limits.MaxClipDepth))
			return
		}
		e.clip++
	case PopClip:
		if e.clip == 0 {
			e.setError(ErrClipUnderflow)
			return
		}
		e.clip--
	case nil:
		e.setError(fmt.Errorf("%w: nil command", ErrUnsupportedCommand))
		return
	default:
		e.setError(fmt.Errorf("%w: %s in v%d", ErrUnsupportedCommand, c.Opcode(), DrawlistVersion1))
		return
	}
	e.push(c)
}

// header computes the v1 layout of the queued content.
func (e *Encoder) header() (DrawlistHeader, error) {
	if e.err != nil {
		return DrawlistHeader{}, e.err
	}
	cmdOff := uint64(DrawlistHeaderSize)
	spanOff := cmdOff + uint64(e.cmdBytes)
	bytesOff := spanOff + uint64(len(e.spans))*StringSpanSize
	bytesLen := align4(uint64(len(e.strBytes)))
	total := bytesOff + bytesLen
	if total > math.MaxUint32 {
		return DrawlistHeader{}, fmt.Errorf("%w: drawlist is %d bytes", ErrLimit, total)
	}
	if err := e.limits.check(total, len(e.cmds), len(e.spans)); err != nil {
		return DrawlistHeader{}, err
	}
	return DrawlistHeader{
		Magic:      DrawlistMagic,
		Version:    DrawlistVersion1,
		HeaderSize: DrawlistHeaderSize,
		TotalSize:  uint32(total),
		CmdOffset:  uint32(cmdOff),
		CmdBytes:   uint32(e.cmdBytes),
		CmdCount:   uint32(len(e.cmds)),

		StringsSpanOffset:  uint32(spanOff),
		StringsCount:       uint32(len(e.spans)),
		StringsBytesOffset: uint32(bytesOff),
		StringsBytesLen:    uint32(bytesLen),
	}, nil
}

// Size returns the encoded size of the drawlist, or 0 if it cannot be built.
func (e *Encoder) Size() int {
	h, err := e.header()
	if err != nil {
		return 0
	}
	return int(h.TotalSize)
}

// Build serializes a v1 drawlist into a newly allocated buffer.
func (e *Encoder) Build() ([]byte, error) {
	return e.BuildVersion(DrawlistVersion1)
}

// BuildVersion serializes the drawlist for the given wire version.
// Only DrawlistVersion1 exists; anything else fails without output and
// leaves the encoder untouched.
func (e *Encoder) BuildVersion(version uint32) ([]byte, error) {
	if version != DrawlistVersion1 {
		err := fmt.Errorf("%w: drawlist v%d", ErrUnsupportedVersion, version)
		recordEncodeError(err)
		return nil, err
	}
	h, err := e.header()
	if err != nil {
		e.fail(err)
		return nil, err
	}
	w := NewBytesWriter(make([]byte, h.TotalSize))
	if _, err := e.writeTo(w, h); err != nil {
		e.fail(err)
		return nil, err
	}
	recordBuild(w.Len())
	return w.Bytes(), nil
}

// fail counts a build failure that was not already latched.
func (e *Encoder) fail(err error) {
	if err != e.err {
		recordEncodeError(err)
		Logger().Debug("drawlist build failed", zap.Error(err))
	}
}

// MarshalBinary implements encoding.BinaryMarshaler; it is Build.
func (e *Encoder) MarshalBinary() ([]byte, error) { return e.Build() }

// MarshalTo writes the drawlist into p, which must hold Size bytes.
func (e *Encoder) MarshalTo(p []byte) (int, error) {
	if _, err := e.header(); err != nil {
		return 0, err
	}
	return MarshalToGeneric(e, p)
}

// WriteTo implements io.WriterTo.
func (e *Encoder) WriteTo(dst io.Writer) (int64, error) {
	if dst == nil {
		return 0, ErrWriteToNil
	}
	h, err := e.header()
	if err != nil {
		return 0, err
	}
	return e.writeTo(dst, h)
}

func (e *Encoder) writeTo(dst io.Writer, h DrawlistHeader) (int64, error) {
	w, err := NewWriter(dst)
	if err != nil {
		return 0, err
	}
	w.WriteFrom(&Fixed[DrawlistHeader]{h})
	for _, c := range e.cmds {
		writeCommand(w, c)
	}
	for _, s := range e.spans {
		w.WriteUint32(s.Off)
		w.WriteUint32(s.Len)
	}
	w.WriteBytes(e.strBytes)
	w.Align(4)
	n, err := w.Result()
	if err != nil {
		return n, err
	}
	if n != int64(h.TotalSize) {
		return n, fmt.Errorf("%w: header says %d bytes, wrote %d", ErrLayoutMismatch, h.TotalSize, n)
	}
	return n, nil
}
