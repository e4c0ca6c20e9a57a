package zrcodec

import (
	"encoding"
	"io"
)

// Sizer is an interface for types that can report their binary size.
// This is useful for pre-allocating buffers before encoding.
type Sizer interface {
	// Size returns the size of the type in bytes when binary encoded.
	Size() int
}

// Marshaler defines the core methods for encoding an object into bytes.
type Marshaler interface {
	// encoding.BinaryMarshaler allocates and returns a new byte slice.
	encoding.BinaryMarshaler
	// io.WriterTo writes the encoding to a stream.
	io.WriterTo

	// MarshalTo encodes the object into a pre-allocated buffer, returning
	// io.ErrShortWrite if the buffer is too small.
	MarshalTo(buf []byte) (int, error)
}

// Unmarshaler decodes a byte slice into an object.
type Unmarshaler interface {
	encoding.BinaryUnmarshaler
}

// Codec aggregates all binary serialization and deserialization interfaces.
// A type implementing Codec is a complete, self-sizing binary encoder/decoder.
type Codec interface {
	Sizer
	Marshaler
	Unmarshaler
}
