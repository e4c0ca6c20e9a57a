package zrcodec

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// ReadNullTerminated decodes a fixed-size, NUL-padded UTF-8 field.
//
// At most maxLen bytes of buf are scanned; the text ends at the first NUL
// or at the scan limit, whichever comes first. Invalid UTF-8 is replaced
// with U+FFFD rather than rejected, since these fields are informational.
func ReadNullTerminated(buf []byte, maxLen int) string {
	if maxLen <= 0 || len(buf) == 0 {
		return ""
	}
	field := buf[:min(maxLen, len(buf))]
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	if len(field) == 0 {
		return ""
	}
	if utf8.Valid(field) {
		return string(field)
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(field)
	if err != nil {
		return strings.ToValidUTF8(string(field), string(utf8.RuneError))
	}
	return string(out)
}
