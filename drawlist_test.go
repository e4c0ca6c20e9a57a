package zrcodec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func u16(b []byte, off int) uint16 { return LE.Uint16(b[off:]) }
func u32(b []byte, off int) uint32 { return LE.Uint32(b[off:]) }
func i32(b []byte, off int) int32  { return int32(LE.Uint32(b[off:])) }

type EncoderTestSuite struct {
	suite.Suite
	enc *Encoder
}

func (s *EncoderTestSuite) SetupTest() {
	s.enc = NewEncoder()
}

func (s *EncoderTestSuite) TestClearAndStyledText() {
	s.enc.Clear()
	s.enc.DrawTextStyle(5, 7, "Hi", Style{Fg: 0x112233, Bg: 0x445566, Attrs: 7})

	buf, err := s.enc.Build()
	s.Require().NoError(err)
	s.Require().Len(buf, 132)

	// header
	s.Assert().Equal(DrawlistMagic, u32(buf, 0))
	s.Assert().EqualValues(1, u32(buf, 4))
	s.Assert().EqualValues(64, u32(buf, 8))
	s.Assert().EqualValues(132, u32(buf, 12))
	s.Assert().EqualValues(64, u32(buf, 16))
	s.Assert().EqualValues(56, u32(buf, 20))
	s.Assert().EqualValues(2, u32(buf, 24))
	s.Assert().EqualValues(120, u32(buf, 28))
	s.Assert().EqualValues(1, u32(buf, 32))
	s.Assert().EqualValues(128, u32(buf, 36))
	s.Assert().EqualValues(4, u32(buf, 40))
	s.Assert().Equal(make([]byte, 20), buf[44:64], "blob fields and reserved must be zero")

	// Clear
	s.Assert().EqualValues(OpClear, u16(buf, 64))
	s.Assert().EqualValues(0, u16(buf, 66))
	s.Assert().EqualValues(8, u32(buf, 68))

	// DrawText
	s.Assert().EqualValues(OpDrawText, u16(buf, 72))
	s.Assert().EqualValues(48, u32(buf, 76))
	s.Assert().EqualValues(5, i32(buf, 80))
	s.Assert().EqualValues(7, i32(buf, 84))
	s.Assert().EqualValues(0, u32(buf, 88), "string index")
	s.Assert().EqualValues(0, u32(buf, 92), "byte offset")
	s.Assert().EqualValues(2, u32(buf, 96), "byte length")
	s.Assert().EqualValues(0x112233, u32(buf, 100))
	s.Assert().EqualValues(0x445566, u32(buf, 104))
	s.Assert().EqualValues(7, u32(buf, 108))
	s.Assert().EqualValues(0, u32(buf, 112))
	s.Assert().EqualValues(0, u32(buf, 116))

	// string table and blob
	s.Assert().EqualValues(0, u32(buf, 120))
	s.Assert().EqualValues(2, u32(buf, 124))
	s.Assert().Equal([]byte{'H', 'i', 0, 0}, buf[128:132])
}

func (s *EncoderTestSuite) TestResetThenClear() {
	s.enc.DrawText(1, 1, "discarded")
	s.enc.FillRect(0, 0, 10, 10, Style{Bg: 0x202020})
	s.enc.Reset()
	s.enc.Reset()
	s.enc.Clear()

	buf, err := s.enc.Build()
	s.Require().NoError(err)
	s.Require().Len(buf, 72)
	s.Assert().EqualValues(72, u32(buf, 12))
	s.Assert().EqualValues(8, u32(buf, 20))
	s.Assert().EqualValues(1, u32(buf, 24))
	s.Assert().EqualValues(72, u32(buf, 28))
	s.Assert().EqualValues(0, u32(buf, 32))
	s.Assert().EqualValues(72, u32(buf, 36))
	s.Assert().EqualValues(0, u32(buf, 40))
}

func (s *EncoderTestSuite) TestUnsupportedVersion() {
	s.enc.Clear()
	for _, v := range []uint32{0, 2, 3, 5, 99} {
		buf, err := s.enc.BuildVersion(v)
		s.Assert().ErrorIs(err, ErrUnsupportedVersion, "version %d", v)
		s.Assert().Nil(buf)
	}

	// A rejected version does not poison the encoder.
	s.Assert().NoError(s.enc.Err())
	buf, err := s.enc.Build()
	s.Require().NoError(err)
	s.Assert().Len(buf, 72)
}

func (s *EncoderTestSuite) TestDefaultTextStyle() {
	s.enc.DrawText(0, 0, "x")
	buf, err := s.enc.Build()
	s.Require().NoError(err)
	s.Assert().EqualValues(0x00FFFFFF, u32(buf, 64+28))
	s.Assert().EqualValues(0, u32(buf, 64+32))
	s.Assert().EqualValues(0, u32(buf, 64+36))
}

func (s *EncoderTestSuite) TestNilTextLatches() {
	s.enc.Clear()
	s.enc.DrawTextBytes(0, 0, nil, DefaultTextStyle)
	s.enc.Clear()

	s.Assert().ErrorIs(s.enc.Err(), ErrNilText)
	s.Assert().Equal(1, s.enc.CommandCount(), "calls after the error are no-ops")
	s.Assert().Equal(0, s.enc.Size())

	buf, err := s.enc.Build()
	s.Assert().ErrorIs(err, ErrNilText)
	s.Assert().Nil(buf)

	s.enc.Reset()
	s.Assert().NoError(s.enc.Err())
	s.enc.DrawTextBytes(0, 0, []byte{}, DefaultTextStyle)
	buf, err = s.enc.Build()
	s.Require().NoError(err)
	s.Assert().EqualValues(0, u32(buf, 64+24), "empty text has zero length")
}

func (s *EncoderTestSuite) TestSizeFormula() {
	cases := []struct {
		name  string
		build func(e *Encoder)
		cmd   int
		strs  int
		raw   int
	}{
		{"Empty", func(e *Encoder) {}, 0, 0, 0},
		{"ClearOnly", func(e *Encoder) { e.Clear() }, 8, 0, 0},
		{"OneByte", func(e *Encoder) { e.DrawText(0, 0, "a") }, 48, 1, 1},
		{"FourBytes", func(e *Encoder) { e.DrawText(0, 0, "abcd") }, 48, 1, 4},
		{"Mixed", func(e *Encoder) {
			e.Clear()
			e.FillRect(1, 2, 3, 4, Style{})
			e.PushClip(0, 0, 80, 24)
			e.DrawText(0, 0, "héllo")
			e.DrawText(0, 1, "")
			e.PopClip()
		}, 8 + 40 + 24 + 48 + 48 + 8, 2, 6},
	}
	for _, tc := range cases {
		s.T().Run(tc.name, func(t *testing.T) {
			e := NewEncoder()
			tc.build(e)
			buf, err := e.Build()
			require.NoError(t, err)
			want := 64 + tc.cmd + 8*tc.strs + Roundup(tc.raw, 4)
			assert.Len(t, buf, want)
			assert.Equal(t, want, e.Size())
			assert.EqualValues(t, want, u32(buf, 12))
			assert.Zero(t, len(buf)%4)
		})
	}
}

func (s *EncoderTestSuite) TestDeterministic() {
	fill := func(e *Encoder) {
		e.Clear()
		e.DrawText(1, 2, "one")
		e.FillRect(0, 0, 5, 5, Style{Fg: 1, Bg: 2, Attrs: 3})
		e.DrawText(3, 4, "two")
	}
	fill(s.enc)
	a, err := s.enc.Build()
	s.Require().NoError(err)
	b, err := s.enc.Build()
	s.Require().NoError(err)
	s.Assert().Equal(a, b)

	s.enc.Reset()
	fill(s.enc)
	c, err := s.enc.Build()
	s.Require().NoError(err)
	s.Assert().Equal(a, c)
}

func (s *EncoderTestSuite) TestStringsInCallOrder() {
	s.enc.DrawText(0, 0, "abc")
	s.enc.DrawText(0, 1, "de")
	buf, err := s.enc.Build()
	s.Require().NoError(err)

	spans := int(u32(buf, 28))
	blob := int(u32(buf, 36))
	s.Assert().EqualValues(0, u32(buf, spans))
	s.Assert().EqualValues(3, u32(buf, spans+4))
	s.Assert().EqualValues(3, u32(buf, spans+8))
	s.Assert().EqualValues(2, u32(buf, spans+12))
	s.Assert().Equal("abcde", string(buf[blob:blob+5]))
	s.Assert().Equal(make([]byte, 3), buf[blob+5:], "tail padding is zero")
	s.Assert().EqualValues(1, u32(buf, 64+48+16), "second DrawText references string 1")
}

func (s *EncoderTestSuite) TestClipStack() {
	s.enc.PushClip(1, 2, 3, 4)
	s.enc.PopClip()
	buf, err := s.enc.Build()
	s.Require().NoError(err)
	s.Assert().EqualValues(OpPushClip, u16(buf, 64))
	s.Assert().EqualValues(24, u32(buf, 68))
	s.Assert().EqualValues(3, i32(buf, 80))
	s.Assert().EqualValues(OpPopClip, u16(buf, 88))

	s.enc.Reset()
	s.enc.PopClip()
	_, err = s.enc.Build()
	s.Assert().ErrorIs(err, ErrClipUnderflow)
}

func (s *EncoderTestSuite) TestAppend() {
	s.T().Run("BlobCommandsRejected", func(t *testing.T) {
		for _, c := range []Command{DrawTextRun{}, SetCursor{}, DrawCanvas{}, DrawImage{}, nil} {
			e := NewEncoder()
			e.Append(c)
			_, err := e.Build()
			assert.ErrorIs(t, err, ErrUnsupportedCommand, "%T", c)
		}
	})

	s.T().Run("TextSlice", func(t *testing.T) {
		e := NewEncoder()
		idx := e.AddString("hello")
		e.DrawTextSlice(2, 3, idx, 1, 3, DefaultTextStyle)
		buf, err := e.Build()
		require.NoError(t, err)
		assert.EqualValues(t, 1, u32(buf, 64+20))
		assert.EqualValues(t, 3, u32(buf, 64+24))

		d, err := ParseDrawlist(buf)
		require.NoError(t, err)
		assert.Equal(t, "ell", string(d.Text(d.Commands[0].(DrawText))))
	})

	s.T().Run("BadStringRef", func(t *testing.T) {
		e := NewEncoder()
		e.AddString("abc")
		e.DrawTextSlice(0, 0, 0, 2, 2, DefaultTextStyle)
		assert.ErrorIs(t, e.Err(), ErrStringRef)

		e.Reset()
		e.DrawTextSlice(0, 0, 0, 0, 0, DefaultTextStyle)
		assert.ErrorIs(t, e.Err(), ErrStringRef)
	})
}

func (s *EncoderTestSuite) TestLimits() {
	s.T().Run("Commands", func(t *testing.T) {
		e := NewEncoderWithLimits(Limits{MaxCommands: 2})
		e.Clear()
		e.Clear()
		assert.NoError(t, e.Err())
		e.Clear()
		assert.ErrorIs(t, e.Err(), ErrLimit)
	})
	s.T().Run("ClipDepth", func(t *testing.T) {
		e := NewEncoderWithLimits(Limits{MaxClipDepth: 1})
		e.PushClip(0, 0, 1, 1)
		e.PushClip(0, 0, 1, 1)
		assert.ErrorIs(t, e.Err(), ErrLimit)
	})
	s.T().Run("Strings", func(t *testing.T) {
		e := NewEncoderWithLimits(Limits{MaxStrings: 1})
		e.DrawText(0, 0, "a")
		e.DrawText(0, 0, "b")
		assert.ErrorIs(t, e.Err(), ErrLimit)
	})
	s.T().Run("TotalBytes", func(t *testing.T) {
		e := NewEncoder()
		e.Clear()
		e.SetLimits(Limits{MaxTotalBytes: 71})
		_, err := e.Build()
		assert.ErrorIs(t, err, ErrLimit)
		e.SetLimits(Limits{MaxTotalBytes: 72})
		_, err = e.Build()
		assert.NoError(t, err)
	})
}

func (s *EncoderTestSuite) TestMarshalers() {
	s.enc.Clear()
	s.enc.DrawText(0, 0, "abc")
	want, err := s.enc.Build()
	s.Require().NoError(err)

	s.T().Run("WriteTo", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := s.enc.WriteTo(&buf)
		require.NoError(t, err)
		assert.EqualValues(t, len(want), n)
		assert.Equal(t, want, buf.Bytes())

		_, err = s.enc.WriteTo(nil)
		assert.ErrorIs(t, err, ErrWriteToNil)
	})

	s.T().Run("MarshalTo", func(t *testing.T) {
		p := make([]byte, len(want)+8)
		n, err := s.enc.MarshalTo(p)
		require.NoError(t, err)
		assert.Equal(t, want, p[:n])

		_, err = s.enc.MarshalTo(make([]byte, len(want)-1))
		assert.Error(t, err)
	})

	s.T().Run("MarshalBinary", func(t *testing.T) {
		got, err := s.enc.MarshalBinary()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestEncoderTestSuite(t *testing.T) {
	suite.Run(t, new(EncoderTestSuite))
}
