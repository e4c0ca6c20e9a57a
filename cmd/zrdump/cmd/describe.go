package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oy3o/zrcodec"
)

// maxQuoted caps how much text a line shows.
const maxQuoted = 48

func quote(b []byte) string {
	if len(b) > maxQuoted {
		return strconv.Quote(string(b[:maxQuoted])) + "…"
	}
	return strconv.Quote(string(b))
}

func color(rgb uint32) string { return fmt.Sprintf("#%06x", rgb&0xFFFFFF) }

func describeStyle(st zrcodec.Style) string {
	return fmt.Sprintf("fg=%s bg=%s attrs=0x%x", color(st.Fg), color(st.Bg), st.Attrs)
}

// describeCommand renders a command's fields; d resolves DrawText strings.
func describeCommand(d *zrcodec.Drawlist, c zrcodec.Command) string {
	switch c := c.(type) {
	case zrcodec.Clear, zrcodec.PopClip:
		return ""
	case zrcodec.FillRect:
		return fmt.Sprintf("x=%d y=%d w=%d h=%d %s", c.X, c.Y, c.W, c.H, describeStyle(c.Style))
	case zrcodec.DrawText:
		s := fmt.Sprintf("x=%d y=%d str=%d[%d:%d] %s", c.X, c.Y, c.StringIndex, c.ByteOff, c.ByteOff+c.ByteLen, describeStyle(c.Style))
		if d != nil {
			s += " " + quote(d.Text(c))
		}
		return s
	case zrcodec.PushClip:
		return fmt.Sprintf("x=%d y=%d w=%d h=%d", c.X, c.Y, c.W, c.H)
	case zrcodec.DrawTextRun:
		return fmt.Sprintf("x=%d y=%d blob=%d", c.X, c.Y, c.BlobIndex)
	case zrcodec.SetCursor:
		return fmt.Sprintf("x=%d y=%d shape=%s visible=%t blink=%t", c.X, c.Y, c.Shape, c.Visible, c.Blink)
	case zrcodec.DrawCanvas:
		return fmt.Sprintf("dst=%d,%d %dx%d px=%dx%d blob=%d+%d blitter=%s",
			c.DstCol, c.DstRow, c.DstCols, c.DstRows, c.PxWidth, c.PxHeight, c.BlobOffset, c.BlobLen, c.Blitter)
	case zrcodec.DrawImage:
		return fmt.Sprintf("dst=%d,%d %dx%d px=%dx%d blob=%d+%d id=%d %s/%s z=%s fit=%s",
			c.DstCol, c.DstRow, c.DstCols, c.DstRows, c.PxWidth, c.PxHeight, c.BlobOffset, c.BlobLen,
			c.ImageID, c.Format, c.Protocol, c.ZLayer, c.FitMode)
	}
	return fmt.Sprintf("%+v", c)
}

// describeRecord renders the typed payload of an event record. Unknown
// types and payloads that do not decode are shown as byte counts.
func describeRecord(rec zrcodec.Record) string {
	switch rec.Type() {
	case zrcodec.EventKey:
		if k, ok := rec.AsKey(); ok {
			return fmt.Sprintf("%s mods=%s action=%s", k.Key, k.Mods, k.Action)
		}
	case zrcodec.EventText:
		if t, ok := rec.AsText(); ok {
			return fmt.Sprintf("U+%04X %q", t.Codepoint, t.Rune())
		}
	case zrcodec.EventPaste:
		if p, text, ok := rec.AsPaste(); ok {
			return fmt.Sprintf("len=%d %s", p.ByteLen, quote(text))
		}
	case zrcodec.EventMouse:
		if m, ok := rec.AsMouse(); ok {
			var b strings.Builder
			fmt.Fprintf(&b, "%s x=%d y=%d buttons=0x%x mods=%s", m.Kind, m.X, m.Y, m.Buttons, m.Mods)
			if m.WheelX != 0 || m.WheelY != 0 {
				fmt.Fprintf(&b, " wheel=%d,%d", m.WheelX, m.WheelY)
			}
			return b.String()
		}
	case zrcodec.EventResize:
		if r, ok := rec.AsResize(); ok {
			return fmt.Sprintf("%dx%d", r.Cols, r.Rows)
		}
	case zrcodec.EventTick:
		if t, ok := rec.AsTick(); ok {
			return fmt.Sprintf("dt=%dms", t.DtMs)
		}
	case zrcodec.EventUser:
		if u, data, ok := rec.AsUser(); ok {
			return fmt.Sprintf("tag=%d len=%d %s", u.Tag, u.ByteLen, quote(data))
		}
	default:
		return fmt.Sprintf("%d payload bytes", len(rec.Payload()))
	}
	return fmt.Sprintf("malformed payload (%d bytes)", len(rec.Payload()))
}
