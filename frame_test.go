package zrcodec

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type FrameReaderTestSuite struct {
	suite.Suite
	drawlist []byte
	events   []byte
}

func (s *FrameReaderTestSuite) SetupTest() {
	s.drawlist = sampleDrawlist(s.T())
	s.events = tickBatch(s.T())
}

func (s *FrameReaderTestSuite) recording() []byte {
	var rec bytes.Buffer
	rec.Write(s.drawlist)
	rec.Write(s.events)
	rec.Write(s.drawlist)
	return rec.Bytes()
}

func (s *FrameReaderTestSuite) TestNext() {
	// One byte at a time, to exercise short reads.
	fr := NewFrameReader(iotest.OneByteReader(bytes.NewReader(s.recording())), 0)

	kind, buf, err := fr.Next()
	s.Require().NoError(err)
	s.Assert().Equal(FrameDrawlist, kind)
	s.Assert().Equal(s.drawlist, buf)
	_, err = ParseDrawlist(buf)
	s.Assert().NoError(err)

	kind, buf, err = fr.Next()
	s.Require().NoError(err)
	s.Assert().Equal(FrameEvents, kind)
	s.Assert().Equal(s.events, buf)
	s.Assert().EqualValues(len(s.drawlist)+len(s.events), fr.Offset())

	kind, buf, err = fr.Next()
	s.Require().NoError(err)
	s.Assert().Equal(FrameDrawlist, kind)
	s.Assert().Equal(s.drawlist, buf)

	_, _, err = fr.Next()
	s.Assert().ErrorIs(err, io.EOF)
}

func (s *FrameReaderTestSuite) TestSkip() {
	fr := NewFrameReader(bytes.NewReader(s.recording()), 0)

	kind, n, err := fr.Skip()
	s.Require().NoError(err)
	s.Assert().Equal(FrameDrawlist, kind)
	s.Assert().EqualValues(len(s.drawlist), n)

	kind, buf, err := fr.Next()
	s.Require().NoError(err)
	s.Assert().Equal(FrameEvents, kind)
	s.Assert().Equal(s.events, buf)
}

func (s *FrameReaderTestSuite) TestRejects() {
	s.T().Run("Empty", func(t *testing.T) {
		_, _, err := NewFrameReader(bytes.NewReader(nil), 0).Next()
		assert.Equal(t, io.EOF, err)
	})

	s.T().Run("PartialHeader", func(t *testing.T) {
		_, _, err := NewFrameReader(bytes.NewReader(s.events[:10]), 0).Next()
		assert.ErrorIs(t, err, ErrTruncatedData)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	s.T().Run("PartialBody", func(t *testing.T) {
		fr := NewFrameReader(bytes.NewReader(s.drawlist[:len(s.drawlist)-1]), 0)
		_, _, err := fr.Next()
		assert.ErrorIs(t, err, ErrTruncatedData)
		_, _, err = NewFrameReader(bytes.NewReader(s.drawlist[:len(s.drawlist)-1]), 0).Skip()
		assert.ErrorIs(t, err, ErrTruncatedData)
	})

	s.T().Run("Magic", func(t *testing.T) {
		b := append([]byte(nil), s.events...)
		b[0] = 'X'
		_, _, err := NewFrameReader(bytes.NewReader(b), 0).Next()
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	s.T().Run("TotalBelowHeader", func(t *testing.T) {
		b := append([]byte(nil), s.drawlist...)
		LE.PutUint32(b[12:], 32)
		_, _, err := NewFrameReader(bytes.NewReader(b), 0).Next()
		assert.ErrorIs(t, err, ErrTotalSize)
	})

	s.T().Run("Limit", func(t *testing.T) {
		fr := NewFrameReader(bytes.NewReader(s.drawlist), uint32(len(s.drawlist)-1))
		kind, _, err := fr.Next()
		assert.ErrorIs(t, err, ErrLimit)
		assert.Equal(t, FrameDrawlist, kind)
	})

	s.T().Run("ReadError", func(t *testing.T) {
		_, _, err := NewFrameReader(iotest.ErrReader(io.ErrClosedPipe), 0).Next()
		assert.ErrorIs(t, err, io.ErrClosedPipe)
	})
}

func TestFrameReaderTestSuite(t *testing.T) {
	suite.Run(t, new(FrameReaderTestSuite))
}

func TestPeekableReader(t *testing.T) {
	r := PeekReader(bytes.NewReader([]byte("abcdef")))
	assert.Same(t, r, PeekReader(r))

	p, err := r.Peek(3)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(p))
	assert.Equal(t, 3, r.Buffered())

	buf := make([]byte, 2)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(buf[:n]))

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "cdef", string(rest))

	p, err = r.Peek(1)
	assert.Empty(t, p)
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, r.Close())
}
