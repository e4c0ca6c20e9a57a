package zrcodec

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagics(t *testing.T) {
	assert.Equal(t, []byte("ZRDL"), LE.AppendUint32(nil, DrawlistMagic))
	assert.Equal(t, []byte("ZREV"), LE.AppendUint32(nil, EventBatchMagic))
}

func TestOpcodePayloadSize(t *testing.T) {
	want := map[Opcode]int{
		OpClear: 0, OpFillRect: 32, OpDrawText: 40, OpPushClip: 16, OpPopClip: 0,
		OpDrawTextRun: 16, OpSetCursor: 12, OpDrawCanvas: 24, OpDrawImage: 32,
	}
	for op, n := range want {
		got, ok := op.PayloadSize()
		assert.True(t, ok, op.String())
		assert.Equal(t, n, got, op.String())
	}
	_, ok := OpInvalid.PayloadSize()
	assert.False(t, ok)
	_, ok = Opcode(10).PayloadSize()
	assert.False(t, ok)
}

func TestEnumStrings(t *testing.T) {
	cases := []struct {
		v    fmt.Stringer
		want string
	}{
		{OpDrawText, "DrawText"},
		{Opcode(77), "Opcode(77)"},
		{EventResize, "Resize"},
		{EventType(12), "EventType(12)"},
		{KeyEnter, "Enter"},
		{KeyF1, "F1"},
		{KeyF12, "F12"},
		{Key(999), "Key(999)"},
		{Modifiers(0), "None"},
		{ModCtrl, "Ctrl"},
		{ModShift | ModMeta, "Shift|Meta"},
		{ModAlt | 0x40, "Alt|0x40"},
		{KeyActionRepeat, "Repeat"},
		{MouseWheel, "Wheel"},
		{CursorBar, "Bar"},
		{BlitterASCII, "Ascii"},
		{ImagePNG, "Png"},
		{ImageProtocolKitty, "Kitty"},
		{ZLayerBack, "Back"},
		{FitCover, "Cover"},
		{TerminalWindowsTerminal, "WindowsTerminal"},
		{TerminalID(-3), "TerminalID(-3)"},
		{ResultOK, "ZR_OK"},
		{ResultInvalidArgument, "ZR_ERR_INVALID_ARGUMENT"},
		{ResultCode(-42), "ZR_ERR_-42"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.v.String())
	}
}

func TestResultCodeErr(t *testing.T) {
	assert.NoError(t, ResultOK.Err())

	err := ResultLimit.Err()
	require.Error(t, err)
	var re *ResultError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, ResultLimit, re.Code)
	assert.Equal(t, "zrcodec: engine returned ZR_ERR_LIMIT", err.Error())
}
