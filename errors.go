package zrcodec

import "errors"

var (
	// ErrNilIO indicates that NewWriter was called with a nil io.Writer.
	ErrNilIO = errors.New("zrcodec: NewWriter called with a nil io.Writer")

	// ErrWriteToNil indicates a WriteTo operation was attempted on a nil io.Writer.
	ErrWriteToNil = errors.New("zrcodec: WriteTo called with a nil io.Writer")

	// ErrTrailingData is returned when non-zero bytes follow a fixed-size payload.
	ErrTrailingData = errors.New("zrcodec: non-zero trailing data found after decoding")

	// ErrTruncatedData indicates the buffer ended before all expected bytes were read.
	ErrTruncatedData = errors.New("zrcodec: truncated data")

	// --- Caller misuse (encoder) ---

	// ErrUnsupportedVersion is returned for any wire version other than the one
	// this package speaks. There is no negotiation.
	ErrUnsupportedVersion = errors.New("zrcodec: unsupported wire version")

	// ErrNilText indicates a nil byte slice was passed where text was required.
	ErrNilText = errors.New("zrcodec: nil text")

	// ErrUnsupportedCommand indicates a command the drawlist version cannot carry.
	ErrUnsupportedCommand = errors.New("zrcodec: command not supported by drawlist version")

	// ErrStringRef indicates a DrawText referencing a string index or byte range
	// that does not exist.
	ErrStringRef = errors.New("zrcodec: string reference out of range")

	// ErrClipUnderflow indicates PopClip without a matching PushClip.
	ErrClipUnderflow = errors.New("zrcodec: PopClip without matching PushClip")

	// ErrLimit indicates a configured size or count limit was exceeded.
	ErrLimit = errors.New("zrcodec: limit exceeded")

	// ErrLayoutMismatch means the serialized drawlist disagrees with its own
	// header. It is an internal defect, never a data error.
	ErrLayoutMismatch = errors.New("zrcodec: drawlist layout mismatch")

	// --- Untrusted wire data ---

	// ErrShortBuffer indicates the buffer is smaller than the fixed header.
	ErrShortBuffer = errors.New("zrcodec: buffer shorter than header")

	// ErrBadMagic indicates the header magic does not match.
	ErrBadMagic = errors.New("zrcodec: bad magic")

	// ErrTotalSize indicates a header total_size outside [header, len(buf)].
	ErrTotalSize = errors.New("zrcodec: invalid total size")

	// ErrEventCount indicates an event_count that cannot fit in total_size.
	ErrEventCount = errors.New("zrcodec: event count exceeds batch capacity")

	// ErrRecordSize indicates a record size below the header size or not 4-aligned.
	ErrRecordSize = errors.New("zrcodec: invalid record size")

	// ErrRecordOverrun indicates a record extending past total_size.
	ErrRecordOverrun = errors.New("zrcodec: record overruns batch")

	// ErrTrailingBytes indicates bytes left over after the last record.
	ErrTrailingBytes = errors.New("zrcodec: trailing bytes after last record")

	// ErrBadSection indicates a drawlist section offset or length that does
	// not match the canonical layout.
	ErrBadSection = errors.New("zrcodec: invalid drawlist section")

	// ErrBadCommand indicates a malformed command header or payload.
	ErrBadCommand = errors.New("zrcodec: invalid command")
)
