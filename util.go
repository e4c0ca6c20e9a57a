package zrcodec

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/constraints"
)

var (
	LE = binary.LittleEndian
	// Order is the byte order of every Zireael wire structure.
	Order binary.ByteOrder = LE
)

const BUFFER_SIZE = 4096

var empty [BUFFER_SIZE]byte

// Roundup rounds n up to the nearest multiple of align.
// align must be a power of two.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }

// align4 is the padding rule used by every Zireael section.
func align4[T constraints.Integer](n T) T { return Roundup(n, 4) }

// CheckBufferNotZeros verifies that every byte of p is zero.
// Fixed payloads use it to reject garbage after the decoded struct.
func CheckBufferNotZeros(p []byte) error {
	for i, b := range p {
		if b != 0 {
			return fmt.Errorf("%w: found non-zero byte 0x%02x at offset %d", ErrTrailingData, b, i)
		}
	}
	return nil
}

// fits reports whether [off, off+n) lies inside a buffer of length size.
// The arithmetic is done in uint64 so hostile u32 fields cannot wrap.
func fits(off, n uint64, size int) bool {
	return off <= uint64(size) && n <= uint64(size)-off
}
