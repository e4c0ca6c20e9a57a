package zrcodec

import "fmt"

// Style is the inline style block carried by FillRect and DrawText.
// Colors are 0x00RRGGBB.
type Style struct {
	Fg    uint32
	Bg    uint32
	Attrs uint32
	_     uint32
}

// DefaultTextStyle is white text on a transparent background.
var DefaultTextStyle = Style{Fg: DefaultTextFg}

// Span locates one entry of the string table relative to the start of the
// string bytes section.
type Span struct {
	Off uint32
	Len uint32
}

// CommandHeader precedes every command. Size includes the header itself.
type CommandHeader struct {
	Opcode Opcode
	Flags  uint16
	Size   uint32
}

// Command is one drawlist operation. The concrete types below are the
// complete set; each is also the exact little-endian layout of its payload.
type Command interface {
	Opcode() Opcode
	isCommand()
}

type Clear struct{}

type FillRect struct {
	X, Y, W, H int32
	Style      Style
}

// DrawText draws ByteLen bytes starting at ByteOff of string StringIndex.
type DrawText struct {
	X, Y        int32
	StringIndex uint32
	ByteOff     uint32
	ByteLen     uint32
	Style       Style
	_           uint32
}

type PushClip struct {
	X, Y, W, H int32
}

type PopClip struct{}

// DrawTextRun draws a pre-shaped run stored in the blob section.
type DrawTextRun struct {
	X, Y      int32
	BlobIndex uint32
	_         uint32
}

type SetCursor struct {
	X, Y    int32
	Shape   CursorShape
	Visible bool
	Blink   bool
	_       uint8
}

// DrawCanvas blits a pixel buffer from the blob section onto a cell rectangle.
type DrawCanvas struct {
	DstCol, DstRow   uint16
	DstCols, DstRows uint16
	PxWidth          uint16
	PxHeight         uint16
	BlobOffset       uint32
	BlobLen          uint32
	Blitter          Blitter
	Flags            uint8
	_                uint16
}

// DrawImage places an RGBA or PNG image using a terminal graphics protocol.
type DrawImage struct {
	DstCol, DstRow   uint16
	DstCols, DstRows uint16
	PxWidth          uint16
	PxHeight         uint16
	BlobOffset       uint32
	BlobLen          uint32
	ImageID          uint32
	Format           ImageFormat
	Protocol         ImageProtocol
	ZLayer           ZLayer
	FitMode          FitMode
	Flags            uint8
	_                uint8
	_                uint16
}

func (Clear) Opcode() Opcode       { return OpClear }
func (FillRect) Opcode() Opcode    { return OpFillRect }
func (DrawText) Opcode() Opcode    { return OpDrawText }
func (PushClip) Opcode() Opcode    { return OpPushClip }
func (PopClip) Opcode() Opcode     { return OpPopClip }
func (DrawTextRun) Opcode() Opcode { return OpDrawTextRun }
func (SetCursor) Opcode() Opcode   { return OpSetCursor }
func (DrawCanvas) Opcode() Opcode  { return OpDrawCanvas }
func (DrawImage) Opcode() Opcode   { return OpDrawImage }

func (Clear) isCommand()       {}
func (FillRect) isCommand()    {}
func (DrawText) isCommand()    {}
func (PushClip) isCommand()    {}
func (PopClip) isCommand()     {}
func (DrawTextRun) isCommand() {}
func (SetCursor) isCommand()   {}
func (DrawCanvas) isCommand()  {}
func (DrawImage) isCommand()   {}

// commandSize is the encoded size of c including its header.
func commandSize(c Command) int {
	n, _ := c.Opcode().PayloadSize()
	return CommandHeaderSize + n
}

// writeCommand emits the header and payload of c.
func writeCommand(w *Writer, c Command) {
	w.WriteUint16(uint16(c.Opcode()))
	w.WriteUint16(0)
	w.WriteUint32(uint32(commandSize(c)))
	switch c := c.(type) {
	case Clear, PopClip:
	case FillRect:
		w.WriteFrom(&Fixed[FillRect]{c})
	case DrawText:
		w.WriteFrom(&Fixed[DrawText]{c})
	case PushClip:
		w.WriteFrom(&Fixed[PushClip]{c})
	case DrawTextRun:
		w.WriteFrom(&Fixed[DrawTextRun]{c})
	case SetCursor:
		w.WriteFrom(&Fixed[SetCursor]{c})
	case DrawCanvas:
		w.WriteFrom(&Fixed[DrawCanvas]{c})
	case DrawImage:
		w.WriteFrom(&Fixed[DrawImage]{c})
	default:
		w.setError(fmt.Errorf("%w: %T", ErrUnsupportedCommand, c))
	}
}

// EncodeCommand returns the wire encoding of a single command, header included.
func EncodeCommand(c Command) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil command", ErrUnsupportedCommand)
	}
	w := NewBytesWriter(make([]byte, commandSize(c)))
	cw, _ := NewWriter(w)
	writeCommand(cw, c)
	if _, err := cw.Result(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// DecodeCommand decodes the command at the start of p and returns it with
// the number of bytes it occupies.
func DecodeCommand(p []byte) (Command, int, error) {
	r := NewReader(p)
	var op uint16
	var h CommandHeader
	r.ReadUint16(&op)
	r.ReadUint16(&h.Flags)
	r.ReadUint32(&h.Size)
	if r.Err() != nil {
		return nil, 0, fmt.Errorf("%w: short command header", ErrBadCommand)
	}
	h.Opcode = Opcode(op)
	want, ok := h.Opcode.PayloadSize()
	if !ok {
		return nil, 0, fmt.Errorf("%w: unknown opcode %d", ErrBadCommand, op)
	}
	if uint64(h.Size) != uint64(CommandHeaderSize+want) {
		return nil, 0, fmt.Errorf("%w: %s size %d, want %d", ErrBadCommand, h.Opcode, h.Size, CommandHeaderSize+want)
	}
	payload := r.ReadBytes(want)
	if r.Err() != nil {
		return nil, 0, fmt.Errorf("%w: %s payload truncated", ErrBadCommand, h.Opcode)
	}
	c, err := decodeCommand(h.Opcode, payload)
	if err != nil {
		return nil, 0, err
	}
	return c, int(h.Size), nil
}

// decodeCommand decodes the payload of a command whose header was already read.
func decodeCommand(op Opcode, p []byte) (Command, error) {
	switch op {
	case OpClear:
		return decodeAs[Clear](op, p)
	case OpFillRect:
		return decodeAs[FillRect](op, p)
	case OpDrawText:
		return decodeAs[DrawText](op, p)
	case OpPushClip:
		return decodeAs[PushClip](op, p)
	case OpPopClip:
		return decodeAs[PopClip](op, p)
	case OpDrawTextRun:
		return decodeAs[DrawTextRun](op, p)
	case OpSetCursor:
		return decodeAs[SetCursor](op, p)
	case OpDrawCanvas:
		return decodeAs[DrawCanvas](op, p)
	case OpDrawImage:
		return decodeAs[DrawImage](op, p)
	}
	return nil, fmt.Errorf("%w: unknown opcode %d", ErrBadCommand, uint16(op))
}

func decodeAs[C Command](op Opcode, p []byte) (Command, error) {
	c, ok := decodeExact[C](p)
	if !ok {
		return nil, fmt.Errorf("%w: %s payload is %d bytes, want %d", ErrBadCommand, op, len(p), sizeOf[C]())
	}
	return c, nil
}
