package zrcodec

import (
	"encoding/binary"
	"io"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// sizeCache avoids the cost of reflection in `binary.Size` on every call.
// Payload types are shared by every encoder and batch, so the map must be
// concurrent-safe.
var sizeCache = xsync.NewMap[reflect.Type, int]()

// Fixed provides a `Codec` for any wire struct composed of fixed-size fields.
// Every command payload and event payload goes through it.
//
// Constraint: The `Payload` type MUST NOT contain variable-size fields like slices,
// maps, or strings, as this will cause `binary.Size` to fail.
type Fixed[Payload any] struct {
	Payload Payload
}

// Statically assert that Fixed implements Codec.
var _ Codec = (*Fixed[struct{}])(nil)

// Size returns the fixed size of the struct in bytes.
func (c *Fixed[Payload]) Size() int { return sizeOf[Payload]() }

func sizeOf[Payload any]() int {
	t := reflect.TypeFor[Payload]()
	if size, ok := sizeCache.Load(t); ok {
		return size
	}
	var zero Payload
	size := binary.Size(&zero)
	sizeCache.Store(t, size)
	return size
}

// MarshalBinary implements the standard `encoding.BinaryMarshaler` interface.
func (c *Fixed[Payload]) MarshalBinary() ([]byte, error) {
	buf := make([]byte, c.Size())
	if _, err := binary.Encode(buf, Order, &c.Payload); err != nil {
		return nil, io.ErrShortWrite
	}
	return buf, nil
}

// UnmarshalBinary implements the standard `encoding.BinaryUnmarshaler` interface.
// Bytes past the struct must be zero.
func (c *Fixed[Payload]) UnmarshalBinary(data []byte) error {
	n, err := binary.Decode(data, Order, &c.Payload)
	if err != nil {
		return ErrTruncatedData // binary.Decode only fails when data is too short
	}
	if len(data) > n {
		return CheckBufferNotZeros(data[n:])
	}
	return nil
}

// WriteTo implements `io.WriterTo`.
func (c *Fixed[Payload]) WriteTo(w io.Writer) (int64, error) {
	if w == nil {
		return 0, ErrWriteToNil
	}
	if err := binary.Write(w, Order, &c.Payload); err != nil {
		return 0, err
	}
	return int64(c.Size()), nil
}

// MarshalTo marshals the struct into the provided slice `p`.
func (c *Fixed[Payload]) MarshalTo(p []byte) (int, error) {
	n, err := binary.Encode(p, Order, &c.Payload)
	if err != nil {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// decodeExact decodes a payload that must be exactly the struct size.
func decodeExact[Payload any](p []byte) (Payload, bool) {
	var c Fixed[Payload]
	if len(p) != c.Size() {
		return c.Payload, false
	}
	if _, err := binary.Decode(p, Order, &c.Payload); err != nil {
		return c.Payload, false
	}
	return c.Payload, true
}

// decodePrefix decodes a payload header and returns the bytes that follow it.
func decodePrefix[Payload any](p []byte) (Payload, []byte, bool) {
	var c Fixed[Payload]
	n := c.Size()
	if len(p) < n {
		return c.Payload, nil, false
	}
	if _, err := binary.Decode(p[:n], Order, &c.Payload); err != nil {
		return c.Payload, nil, false
	}
	return c.Payload, p[n:], true
}
