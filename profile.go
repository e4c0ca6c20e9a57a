package zrcodec

import "fmt"

// Fixed text field sizes reported by the engine.
const (
	TerminalVersionLength = 64
	DebugSourceFileLength = 32
	DebugMessageLength    = 64
)

// TerminalProfile is the engine's 100-byte description of the detected
// terminal and the capabilities it answered to.
type TerminalProfile struct {
	ID      TerminalID
	_       [3]uint8
	Version [TerminalVersionLength]byte

	SupportsSixel             bool
	SupportsKittyGraphics     bool
	SupportsITerm2Images      bool
	SupportsUnderlineStyles   bool
	SupportsColoredUnderlines bool
	SupportsHyperlinks        bool
	SupportsGraphemeClusters  bool
	SupportsOverline          bool
	SupportsPixelMouse        bool
	SupportsKittyKeyboard     bool
	SupportsMouse             bool
	SupportsBracketedPaste    bool
	SupportsFocusEvents       bool
	SupportsOsc52             bool
	SupportsSyncUpdate        bool
	_                         [2]uint8

	CellWidthPx    uint16
	CellHeightPx   uint16
	ScreenWidthPx  uint16
	ScreenHeightPx uint16

	XtVersionResponded bool
	Da1Responded       bool
	Da2Responded       bool
	_                  uint8
}

// VersionString returns the terminal's self-reported version.
func (p *TerminalProfile) VersionString() string {
	return ReadNullTerminated(p.Version[:], TerminalVersionLength)
}

// DebugCategory classifies debug records.
type DebugCategory uint32

const (
	DebugNone DebugCategory = iota
	DebugFrame
	DebugEvent
	DebugDrawlist
	DebugError
	DebugState
	DebugPerf
)

var debugCategoryNames = [...]string{"None", "Frame", "Event", "Drawlist", "Error", "State", "Perf"}

func (c DebugCategory) String() string {
	if int(c) < len(debugCategoryNames) {
		return debugCategoryNames[c]
	}
	return fmt.Sprintf("DebugCategory(%d)", uint32(c))
}

// DebugSeverity is the level of a debug record.
type DebugSeverity uint32

const (
	SeverityTrace DebugSeverity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

func (s DebugSeverity) String() string {
	switch s {
	case SeverityTrace:
		return "Trace"
	case SeverityInfo:
		return "Info"
	case SeverityWarn:
		return "Warn"
	case SeverityError:
		return "Error"
	}
	return fmt.Sprintf("DebugSeverity(%d)", uint32(s))
}

// DebugRecordHeader precedes every record read from the engine's debug trace.
type DebugRecordHeader struct {
	RecordID    uint64
	TimestampUs uint64
	FrameID     uint64
	Category    DebugCategory
	Severity    DebugSeverity
	Code        uint32
	PayloadSize uint32
}

// DebugFrameRecord summarizes one presented frame.
type DebugFrameRecord struct {
	FrameID          uint64
	Cols             uint32
	Rows             uint32
	DrawlistBytes    uint32
	DrawlistCmds     uint32
	DiffBytesEmitted uint32
	DirtyLines       uint32
	DirtyCells       uint32
	DamageRects      uint32
	UsDrawlist       uint32
	UsDiff           uint32
	UsWrite          uint32
	_                uint32
}

// DebugErrorRecord is the 120-byte payload of a DebugError record.
type DebugErrorRecord struct {
	FrameID         uint64
	ErrorCode       ResultCode
	SourceLine      uint32
	OccurrenceCount uint32
	_               uint32
	SourceFileBytes [DebugSourceFileLength]byte
	MessageBytes    [DebugMessageLength]byte
}

// DebugEventRecord describes one parsed input event.
type DebugEventRecord struct {
	FrameID     uint64
	EventType   EventType
	EventFlags  uint32
	TimeMs      uint32
	RawBytesLen uint32
	ParseResult ResultCode
	_           uint32
}

// DebugDrawlistRecord reports validation and execution of one drawlist.
type DebugDrawlistRecord struct {
	FrameID           uint64
	TotalBytes        uint32
	CmdCount          uint32
	Version           uint32
	ValidationResult  ResultCode
	ExecutionResult   ResultCode
	ClipStackMaxDepth uint32
	TextRuns          uint32
	FillRects         uint32
	_                 [2]uint32
}

// DebugPerfRecord times one engine phase.
type DebugPerfRecord struct {
	FrameID        uint64
	Phase          uint32
	UsElapsed      uint32
	BytesProcessed uint32
	_              uint32
}

// EngineMetrics is the engine's 120-byte metrics snapshot.
type EngineMetrics struct {
	StructSize uint32

	AbiMajor uint32
	AbiMinor uint32
	AbiPatch uint32

	DrawlistVersion   uint32
	EventBatchVersion uint32

	FrameIndex uint64
	Fps        uint32
	_          uint32

	BytesEmittedTotal     uint64
	BytesEmittedLastFrame uint32
	_                     uint32

	DirtyLinesLastFrame uint32
	DirtyColsLastFrame  uint32

	UsInputLastFrame    uint32
	UsDrawlistLastFrame uint32
	UsDiffLastFrame     uint32
	UsWriteLastFrame    uint32

	EventsOutLastPoll  uint32
	EventsDroppedTotal uint32

	ArenaFrameHighWaterBytes      uint64
	ArenaPersistentHighWaterBytes uint64

	DamageRectsLastFrame uint32
	DamageCellsLastFrame uint32
	DamageFullFrame      bool
	_                    [7]uint8
}

func (r *DebugErrorRecord) SourceFile() string {
	return ReadNullTerminated(r.SourceFileBytes[:], DebugSourceFileLength)
}

func (r *DebugErrorRecord) Message() string {
	return ReadNullTerminated(r.MessageBytes[:], DebugMessageLength)
}

// decodeEngineStruct decodes a fixed struct the engine copied out. The
// engine may append fields in later ABI revisions, so trailing bytes are
// ignored, but a short buffer is an error.
func decodeEngineStruct[T any](buf []byte) (T, error) {
	v, _, ok := decodePrefix[T](buf)
	if !ok {
		return v, fmt.Errorf("%w: %T needs %d bytes, have %d", ErrTruncatedData, v, sizeOf[T](), len(buf))
	}
	return v, nil
}

func DecodeTerminalProfile(buf []byte) (TerminalProfile, error) {
	return decodeEngineStruct[TerminalProfile](buf)
}

func DecodeDebugRecordHeader(buf []byte) (DebugRecordHeader, error) {
	return decodeEngineStruct[DebugRecordHeader](buf)
}

func DecodeDebugFrameRecord(buf []byte) (DebugFrameRecord, error) {
	return decodeEngineStruct[DebugFrameRecord](buf)
}

func DecodeDebugErrorRecord(buf []byte) (DebugErrorRecord, error) {
	return decodeEngineStruct[DebugErrorRecord](buf)
}

func DecodeDebugEventRecord(buf []byte) (DebugEventRecord, error) {
	return decodeEngineStruct[DebugEventRecord](buf)
}

func DecodeDebugDrawlistRecord(buf []byte) (DebugDrawlistRecord, error) {
	return decodeEngineStruct[DebugDrawlistRecord](buf)
}

func DecodeDebugPerfRecord(buf []byte) (DebugPerfRecord, error) {
	return decodeEngineStruct[DebugPerfRecord](buf)
}

// DecodeEngineMetrics decodes a metrics snapshot. StructSize is reported
// as sent; callers on older engines should check it before trusting
// fields past its end.
func DecodeEngineMetrics(buf []byte) (EngineMetrics, error) {
	return decodeEngineStruct[EngineMetrics](buf)
}
