package zrcodec

import (
	"fmt"
	"io"
)

// MarshalBinaryGeneric provides a generic `encoding.BinaryMarshaler` implementation
// for self-sizing types. The output is allocated exactly once.
func MarshalBinaryGeneric[T interface {
	Size() int
	io.WriterTo
}](v T) ([]byte, error) {
	expectedSize := v.Size()
	w := NewBytesWriter(make([]byte, expectedSize))
	n, err := v.WriteTo(w)
	if err != nil {
		return nil, err
	}
	if n != int64(expectedSize) {
		return nil, fmt.Errorf("%w: expected %d bytes, but wrote %d", ErrLayoutMismatch, expectedSize, n)
	}
	return w.Bytes(), nil
}

// MarshalToGeneric provides a fallback implementation for the MarshalTo method.
func MarshalToGeneric[T interface {
	Size() int
	io.WriterTo
}](v T, p []byte) (int, error) {
	size := v.Size()
	if len(p) < size {
		return 0, io.ErrShortWrite
	}
	w := NewBytesWriter(p[:size:size])
	n, err := v.WriteTo(w)
	if err != nil {
		return int(n), err
	}
	if n < int64(size) {
		return int(n), io.ErrShortWrite
	}
	return int(n), nil
}
