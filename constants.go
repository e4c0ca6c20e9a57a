package zrcodec

import "fmt"

// Wire magics, little-endian "ZRDL" and "ZREV".
const (
	DrawlistMagic   uint32 = 0x4C44525A
	EventBatchMagic uint32 = 0x5645525A
)

const (
	DrawlistVersion1   uint32 = 1
	EventBatchVersion1 uint32 = 1
)

// Fixed structure sizes in bytes.
const (
	DrawlistHeaderSize = 64
	CommandHeaderSize  = 8
	StringSpanSize     = 8
	StyleSize          = 16
	BatchHeaderSize    = 24
	RecordHeaderSize   = 16
)

// BatchFlagTruncated is set by the engine when events were dropped
// because the caller's buffer was too small.
const BatchFlagTruncated uint32 = 1 << 0

// DefaultTextFg is the foreground used by Encoder.DrawText (0x00RRGGBB).
const DefaultTextFg uint32 = 0x00FFFFFF

// Opcode identifies a drawlist command.
type Opcode uint16

const (
	OpInvalid Opcode = iota
	OpClear
	OpFillRect
	OpDrawText
	OpPushClip
	OpPopClip
	OpDrawTextRun
	OpSetCursor
	OpDrawCanvas
	OpDrawImage
)

var opcodeNames = [...]string{
	OpInvalid:     "Invalid",
	OpClear:       "Clear",
	OpFillRect:    "FillRect",
	OpDrawText:    "DrawText",
	OpPushClip:    "PushClip",
	OpPopClip:     "PopClip",
	OpDrawTextRun: "DrawTextRun",
	OpSetCursor:   "SetCursor",
	OpDrawCanvas:  "DrawCanvas",
	OpDrawImage:   "DrawImage",
}

func (o Opcode) String() string {
	if int(o) < len(opcodeNames) {
		return opcodeNames[o]
	}
	return fmt.Sprintf("Opcode(%d)", uint16(o))
}

// PayloadSize returns the fixed payload size of the opcode, excluding the
// command header, and false for unknown opcodes.
func (o Opcode) PayloadSize() (int, bool) {
	switch o {
	case OpClear, OpPopClip:
		return 0, true
	case OpFillRect:
		return 32, true
	case OpDrawText:
		return 40, true
	case OpPushClip, OpDrawTextRun:
		return 16, true
	case OpSetCursor:
		return 12, true
	case OpDrawCanvas:
		return 24, true
	case OpDrawImage:
		return 32, true
	}
	return 0, false
}

// EventType is the tag of an event record.
type EventType uint32

const (
	EventInvalid EventType = iota
	EventKey
	EventText
	EventPaste
	EventMouse
	EventResize
	EventTick
	EventUser
)

var eventTypeNames = [...]string{
	EventInvalid: "Invalid",
	EventKey:     "Key",
	EventText:    "Text",
	EventPaste:   "Paste",
	EventMouse:   "Mouse",
	EventResize:  "Resize",
	EventTick:    "Tick",
	EventUser:    "User",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("EventType(%d)", uint32(t))
}

// Key is a logical key identifier.
type Key uint32

const (
	KeyUnknown   Key = 0
	KeyEscape    Key = 1
	KeyEnter     Key = 2
	KeyTab       Key = 3
	KeyBackspace Key = 4
	KeyInsert    Key = 10
	KeyDelete    Key = 11
	KeyHome      Key = 12
	KeyEnd       Key = 13
	KeyPageUp    Key = 14
	KeyPageDown  Key = 15
	KeyUp        Key = 20
	KeyDown      Key = 21
	KeyLeft      Key = 22
	KeyRight     Key = 23
	KeyFocusIn   Key = 30
	KeyFocusOut  Key = 31
	KeyF1        Key = 100
	KeyF2        Key = 101
	KeyF3        Key = 102
	KeyF4        Key = 103
	KeyF5        Key = 104
	KeyF6        Key = 105
	KeyF7        Key = 106
	KeyF8        Key = 107
	KeyF9        Key = 108
	KeyF10       Key = 109
	KeyF11       Key = 110
	KeyF12       Key = 111
)

var keyNames = map[Key]string{
	KeyUnknown:   "Unknown",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyInsert:    "Insert",
	KeyDelete:    "Delete",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyFocusIn:   "FocusIn",
	KeyFocusOut:  "FocusOut",
}

func (k Key) String() string {
	if k >= KeyF1 && k <= KeyF12 {
		return fmt.Sprintf("F%d", uint32(k-KeyF1)+1)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint32(k))
}

// Modifiers is a bit set of keyboard modifiers.
type Modifiers uint32

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

func (m Modifiers) String() string {
	if m == 0 {
		return "None"
	}
	var s string
	for _, f := range [...]struct {
		bit  Modifiers
		name string
	}{{ModShift, "Shift"}, {ModCtrl, "Ctrl"}, {ModAlt, "Alt"}, {ModMeta, "Meta"}} {
		if m&f.bit != 0 {
			if s != "" {
				s += "|"
			}
			s += f.name
			m &^= f.bit
		}
	}
	if m != 0 {
		if s != "" {
			s += "|"
		}
		s += fmt.Sprintf("0x%x", uint32(m))
	}
	return s
}

// KeyAction is the transition of a key event.
type KeyAction uint32

const (
	KeyActionInvalid KeyAction = iota
	KeyActionDown
	KeyActionUp
	KeyActionRepeat
)

func (a KeyAction) String() string {
	switch a {
	case KeyActionInvalid:
		return "Invalid"
	case KeyActionDown:
		return "Down"
	case KeyActionUp:
		return "Up"
	case KeyActionRepeat:
		return "Repeat"
	}
	return fmt.Sprintf("KeyAction(%d)", uint32(a))
}

// MouseKind is the kind of a mouse event.
type MouseKind uint32

const (
	MouseInvalid MouseKind = iota
	MouseMove
	MouseDrag
	MouseDown
	MouseUp
	MouseWheel
)

func (k MouseKind) String() string {
	switch k {
	case MouseInvalid:
		return "Invalid"
	case MouseMove:
		return "Move"
	case MouseDrag:
		return "Drag"
	case MouseDown:
		return "Down"
	case MouseUp:
		return "Up"
	case MouseWheel:
		return "Wheel"
	}
	return fmt.Sprintf("MouseKind(%d)", uint32(k))
}

// CursorShape is the shape requested by a SetCursor command.
type CursorShape uint8

const (
	CursorBlock CursorShape = iota
	CursorUnderline
	CursorBar
)

func (c CursorShape) String() string {
	switch c {
	case CursorBlock:
		return "Block"
	case CursorUnderline:
		return "Underline"
	case CursorBar:
		return "Bar"
	}
	return fmt.Sprintf("CursorShape(%d)", uint8(c))
}

// Blitter selects how a DrawCanvas pixel buffer is mapped onto cells.
type Blitter uint8

const (
	BlitterAuto Blitter = iota
	BlitterPixel
	BlitterBraille
	BlitterSextant
	BlitterQuadrant
	BlitterHalfblock
	BlitterASCII
)

var blitterNames = [...]string{"Auto", "Pixel", "Braille", "Sextant", "Quadrant", "Halfblock", "Ascii"}

func (b Blitter) String() string {
	if int(b) < len(blitterNames) {
		return blitterNames[b]
	}
	return fmt.Sprintf("Blitter(%d)", uint8(b))
}

// ImageFormat is the pixel format of a DrawImage source.
type ImageFormat uint8

const (
	ImageRGBA ImageFormat = iota
	ImagePNG
)

func (f ImageFormat) String() string {
	switch f {
	case ImageRGBA:
		return "Rgba"
	case ImagePNG:
		return "Png"
	}
	return fmt.Sprintf("ImageFormat(%d)", uint8(f))
}

// ImageProtocol is the terminal image protocol requested by DrawImage.
type ImageProtocol uint8

const (
	ImageProtocolAuto ImageProtocol = iota
	ImageProtocolKitty
	ImageProtocolSixel
	ImageProtocolITerm2
)

func (p ImageProtocol) String() string {
	switch p {
	case ImageProtocolAuto:
		return "Auto"
	case ImageProtocolKitty:
		return "Kitty"
	case ImageProtocolSixel:
		return "Sixel"
	case ImageProtocolITerm2:
		return "ITerm2"
	}
	return fmt.Sprintf("ImageProtocol(%d)", uint8(p))
}

// ZLayer places an image behind, with, or in front of text.
type ZLayer int8

const (
	ZLayerBack   ZLayer = -1
	ZLayerNormal ZLayer = 0
	ZLayerFront  ZLayer = 1
)

func (z ZLayer) String() string {
	switch z {
	case ZLayerBack:
		return "Back"
	case ZLayerNormal:
		return "Normal"
	case ZLayerFront:
		return "Front"
	}
	return fmt.Sprintf("ZLayer(%d)", int8(z))
}

// FitMode controls how an image is scaled into its destination cells.
type FitMode uint8

const (
	FitFill FitMode = iota
	FitContain
	FitCover
)

func (f FitMode) String() string {
	switch f {
	case FitFill:
		return "Fill"
	case FitContain:
		return "Contain"
	case FitCover:
		return "Cover"
	}
	return fmt.Sprintf("FitMode(%d)", uint8(f))
}

// TerminalID identifies the terminal emulator detected by the engine.
type TerminalID int32

const (
	TerminalUnknown TerminalID = iota
	TerminalKitty
	TerminalGhostty
	TerminalWezTerm
	TerminalFoot
	TerminalITerm2
	TerminalVte
	TerminalKonsole
	TerminalContour
	TerminalWindowsTerminal
	TerminalAlacritty
	TerminalXterm
	TerminalMintty
	TerminalTmux
	TerminalScreen
)

var terminalNames = [...]string{
	"Unknown", "Kitty", "Ghostty", "WezTerm", "Foot", "ITerm2", "Vte", "Konsole",
	"Contour", "WindowsTerminal", "Alacritty", "Xterm", "Mintty", "Tmux", "Screen",
}

func (t TerminalID) String() string {
	if t >= 0 && int(t) < len(terminalNames) {
		return terminalNames[t]
	}
	return fmt.Sprintf("TerminalID(%d)", int32(t))
}

// ResultCode is the engine's integer status code.
type ResultCode int32

const (
	ResultOK              ResultCode = 0
	ResultInvalidArgument ResultCode = -1
	ResultOutOfMemory     ResultCode = -2
	ResultLimit           ResultCode = -3
	ResultUnsupported     ResultCode = -4
	ResultFormat          ResultCode = -5
	ResultPlatform        ResultCode = -6
)

func (c ResultCode) String() string {
	switch c {
	case ResultOK:
		return "ZR_OK"
	case ResultInvalidArgument:
		return "ZR_ERR_INVALID_ARGUMENT"
	case ResultOutOfMemory:
		return "ZR_ERR_OOM"
	case ResultLimit:
		return "ZR_ERR_LIMIT"
	case ResultUnsupported:
		return "ZR_ERR_UNSUPPORTED"
	case ResultFormat:
		return "ZR_ERR_FORMAT"
	case ResultPlatform:
		return "ZR_ERR_PLATFORM"
	}
	return fmt.Sprintf("ZR_ERR_%d", int32(c))
}

// Err converts a failing result code into an error, nil for ResultOK.
func (c ResultCode) Err() error {
	if c == ResultOK {
		return nil
	}
	return &ResultError{Code: c}
}

// ResultError carries an engine result code as a Go error.
type ResultError struct {
	Code ResultCode
}

func (e *ResultError) Error() string { return "zrcodec: engine returned " + e.Code.String() }
