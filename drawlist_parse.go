package zrcodec

import (
	"fmt"

	"go.uber.org/zap"
)

// Drawlist is a validated, decoded drawlist. Strings alias the input buffer.
type Drawlist struct {
	Header   DrawlistHeader
	Commands []Command
	Strings  [][]byte
}

// StringAt returns string i of the table.
func (d *Drawlist) StringAt(i uint32) string { return string(d.Strings[i]) }

// Text returns the bytes a DrawText command refers to.
func (d *Drawlist) Text(c DrawText) []byte {
	return d.Strings[c.StringIndex][c.ByteOff : c.ByteOff+c.ByteLen]
}

// ParseDrawlist validates a v1 drawlist and decodes its commands.
// It performs the same structural checks the engine applies on submit,
// so a buffer accepted here is well-formed on the wire.
func ParseDrawlist(buf []byte) (*Drawlist, error) {
	d, err := parseDrawlist(buf)
	if err != nil {
		Logger().Debug("drawlist rejected", zap.Error(err), zap.Int("len", len(buf)))
		return nil, err
	}
	return d, nil
}

func parseDrawlist(buf []byte) (*Drawlist, error) {
	if len(buf) < DrawlistHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortBuffer, len(buf))
	}
	var hc Fixed[DrawlistHeader]
	if err := hc.UnmarshalBinary(buf[:DrawlistHeaderSize]); err != nil {
		return nil, err
	}
	h := hc.Payload
	switch {
	case h.Magic != DrawlistMagic:
		return nil, fmt.Errorf("%w: 0x%08x", ErrBadMagic, h.Magic)
	case h.Version != DrawlistVersion1:
		return nil, fmt.Errorf("%w: drawlist v%d", ErrUnsupportedVersion, h.Version)
	case h.HeaderSize != DrawlistHeaderSize:
		return nil, fmt.Errorf("%w: header size %d", ErrBadSection, h.HeaderSize)
	case h.TotalSize < DrawlistHeaderSize || uint64(h.TotalSize) > uint64(len(buf)):
		return nil, fmt.Errorf("%w: %d for %d-byte buffer", ErrTotalSize, h.TotalSize, len(buf))
	case h.TotalSize%4 != 0:
		return nil, fmt.Errorf("%w: %d is not 4-aligned", ErrTotalSize, h.TotalSize)
	case h.BlobsCount != 0 || h.BlobsBytesLen != 0 || h.BlobsSpanOffset != 0 || h.BlobsBytesOffset != 0:
		return nil, fmt.Errorf("%w: v1 has no blob section", ErrBadSection)
	case h.Reserved0 != 0:
		return nil, fmt.Errorf("%w: reserved header field is %d", ErrBadSection, h.Reserved0)
	}
	buf = buf[:h.TotalSize]

	if err := checkSection("commands", h.CmdOffset, uint64(h.CmdBytes), len(buf)); err != nil {
		return nil, err
	}
	if err := checkSection("string spans", h.StringsSpanOffset, uint64(h.StringsCount)*StringSpanSize, len(buf)); err != nil {
		return nil, err
	}
	if err := checkSection("string bytes", h.StringsBytesOffset, uint64(h.StringsBytesLen), len(buf)); err != nil {
		return nil, err
	}

	d := &Drawlist{Header: h}
	if err := d.parseStrings(buf); err != nil {
		return nil, err
	}
	if err := d.parseCommands(buf[h.CmdOffset : h.CmdOffset+h.CmdBytes]); err != nil {
		return nil, err
	}
	return d, nil
}

func checkSection(name string, off uint32, n uint64, size int) error {
	if n == 0 {
		if uint64(off) > uint64(size) {
			return fmt.Errorf("%w: empty %s at %d outside %d bytes", ErrBadSection, name, off, size)
		}
		return nil
	}
	if off < DrawlistHeaderSize || off%4 != 0 || !fits(uint64(off), n, size) {
		return fmt.Errorf("%w: %s at %d+%d outside %d bytes", ErrBadSection, name, off, n, size)
	}
	return nil
}

func (d *Drawlist) parseStrings(buf []byte) error {
	h := d.Header
	if h.StringsCount == 0 {
		return nil
	}
	blob := buf[h.StringsBytesOffset : h.StringsBytesOffset+h.StringsBytesLen]
	r := NewReader(buf[h.StringsSpanOffset : h.StringsSpanOffset+h.StringsCount*StringSpanSize])
	d.Strings = make([][]byte, h.StringsCount)
	for i := range d.Strings {
		var s Span
		r.ReadUint32(&s.Off)
		r.ReadUint32(&s.Len)
		if r.Err() != nil {
			return r.Err()
		}
		if !fits(uint64(s.Off), uint64(s.Len), len(blob)) {
			return fmt.Errorf("%w: string %d at %d+%d outside %d-byte blob", ErrStringRef, i, s.Off, s.Len, len(blob))
		}
		d.Strings[i] = blob[s.Off : s.Off+s.Len : s.Off+s.Len]
	}
	return nil
}

func (d *Drawlist) parseCommands(cmds []byte) error {
	d.Commands = make([]Command, 0, min(int(d.Header.CmdCount), len(cmds)/CommandHeaderSize))
	off := 0
	for i := uint32(0); i < d.Header.CmdCount; i++ {
		c, n, err := DecodeCommand(cmds[off:])
		if err != nil {
			return fmt.Errorf("command %d at %d: %w", i, off, err)
		}
		switch c := c.(type) {
		case Clear, FillRect, PushClip, PopClip:
		case DrawText:
			if c.StringIndex >= uint32(len(d.Strings)) ||
				uint64(c.ByteOff)+uint64(c.ByteLen) > uint64(len(d.Strings[c.StringIndex])) {
				return fmt.Errorf("%w: command %d", ErrStringRef, i)
			}
		default:
			return fmt.Errorf("%w: %s in v%d", ErrUnsupportedCommand, c.Opcode(), DrawlistVersion1)
		}
		d.Commands = append(d.Commands, c)
		off += n
	}
	if rest := len(cmds) - off; rest != 0 {
		return fmt.Errorf("%w: %d bytes after last command", ErrTrailingBytes, rest)
	}
	return nil
}
