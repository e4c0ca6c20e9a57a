package zrcodec

// RecordHeader is the 16-byte header of every event record.
// Size includes the header and is a multiple of 4.
type RecordHeader struct {
	Type   EventType
	Size   uint32
	TimeMs uint32
	Flags  uint32
}

type KeyEvent struct {
	Key    Key
	Mods   Modifiers
	Action KeyAction
	_      uint32
}

// TextEvent carries one Unicode scalar value.
type TextEvent struct {
	Codepoint uint32
	_         uint32
}

// Rune returns the codepoint as a rune.
func (t TextEvent) Rune() rune { return rune(t.Codepoint) }

// PasteEvent precedes ByteLen bytes of pasted UTF-8 text.
type PasteEvent struct {
	ByteLen uint32
	_       uint32
}

type MouseEvent struct {
	X, Y    int32
	Kind    MouseKind
	Mods    Modifiers
	Buttons uint32
	WheelX  int32
	WheelY  int32
	_       uint32
}

type ResizeEvent struct {
	Cols uint32
	Rows uint32
	_    uint32
	_    uint32
}

type TickEvent struct {
	DtMs uint32
	_    uint32
	_    uint32
	_    uint32
}

// UserEvent precedes ByteLen bytes of application-defined data.
type UserEvent struct {
	Tag     uint32
	ByteLen uint32
	_       uint32
	_       uint32
}

// Record is a view of one record inside a validated EventBatch.
// Its payload slices alias the batch buffer.
type Record struct {
	buf    []byte
	off    uint32
	header RecordHeader
}

func newRecord(buf []byte, off, size uint32) Record {
	r := NewReader(buf[off : off+size])
	var h RecordHeader
	var t uint32
	r.ReadUint32(&t)
	r.ReadUint32(&h.Size)
	r.ReadUint32(&h.TimeMs)
	r.ReadUint32(&h.Flags)
	h.Type = EventType(t)
	return Record{buf: buf[off : off+size : off+size], off: off, header: h}
}

func (r Record) Header() RecordHeader { return r.header }
func (r Record) Type() EventType      { return r.header.Type }
func (r Record) TimeMs() uint32       { return r.header.TimeMs }
func (r Record) Flags() uint32        { return r.header.Flags }

// Offset is the position of the record from the start of the batch.
func (r Record) Offset() int { return int(r.off) }

// Size is the declared record size, header included.
func (r Record) Size() int { return len(r.buf) }

// Payload returns the bytes after the record header.
func (r Record) Payload() []byte { return r.buf[RecordHeaderSize:] }

// Bytes returns the whole record, header included.
func (r Record) Bytes() []byte { return r.buf }

func asExact[T any](r Record, t EventType) (T, bool) {
	if r.header.Type != t {
		var zero T
		return zero, false
	}
	return decodeExact[T](r.Payload())
}

// trailing returns the n bytes after a variable payload's fixed prefix,
// provided they fit inside the record.
func trailing(rest []byte, n uint32) ([]byte, bool) {
	if uint64(n) > uint64(len(rest)) {
		return nil, false
	}
	return rest[:n:n], true
}

func (r Record) AsKey() (KeyEvent, bool)       { return asExact[KeyEvent](r, EventKey) }
func (r Record) AsText() (TextEvent, bool)     { return asExact[TextEvent](r, EventText) }
func (r Record) AsMouse() (MouseEvent, bool)   { return asExact[MouseEvent](r, EventMouse) }
func (r Record) AsResize() (ResizeEvent, bool) { return asExact[ResizeEvent](r, EventResize) }
func (r Record) AsTick() (TickEvent, bool)     { return asExact[TickEvent](r, EventTick) }

// AsPaste returns the paste header and its text. The text is only exposed
// when ByteLen fits inside this record.
func (r Record) AsPaste() (PasteEvent, []byte, bool) {
	if r.header.Type != EventPaste {
		return PasteEvent{}, nil, false
	}
	p, rest, ok := decodePrefix[PasteEvent](r.Payload())
	if !ok {
		return PasteEvent{}, nil, false
	}
	text, ok := trailing(rest, p.ByteLen)
	if !ok {
		return PasteEvent{}, nil, false
	}
	return p, text, true
}

// AsUser returns the user event header and its data. The data is only
// exposed when ByteLen fits inside this record.
func (r Record) AsUser() (UserEvent, []byte, bool) {
	if r.header.Type != EventUser {
		return UserEvent{}, nil, false
	}
	u, rest, ok := decodePrefix[UserEvent](r.Payload())
	if !ok {
		return UserEvent{}, nil, false
	}
	data, ok := trailing(rest, u.ByteLen)
	if !ok {
		return UserEvent{}, nil, false
	}
	return u, data, true
}
