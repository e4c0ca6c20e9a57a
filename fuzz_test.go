package zrcodec

import (
	"testing"
)

func FuzzNewEventBatch(f *testing.F) {
	be := NewBatchEncoder()
	be.Key(11, KeyEvent{Key: KeyF1, Mods: ModCtrl, Action: KeyActionDown})
	be.User(12, 42, []byte("abc"))
	be.Paste(13, []byte("hello"))
	if buf, err := be.Build(); err == nil {
		f.Add(buf)
	}
	f.Add(tickBatch(f))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		b, err := NewEventBatch(data)
		if err != nil {
			if b != nil {
				t.Fatal("rejected batch returned a value")
			}
			return
		}
		sum := BatchHeaderSize
		for _, rec := range b.Records() {
			if rec.Size() < RecordHeaderSize || rec.Size()%4 != 0 {
				t.Fatalf("record size %d", rec.Size())
			}
			sum += rec.Size()
			// Accessors must never panic on validated input.
			rec.AsKey()
			rec.AsText()
			rec.AsMouse()
			rec.AsResize()
			rec.AsTick()
			rec.AsPaste()
			rec.AsUser()
		}
		if sum != int(b.Header().TotalSize) {
			t.Fatalf("records cover %d of %d bytes", sum, b.Header().TotalSize)
		}
	})
}

func FuzzParseDrawlist(f *testing.F) {
	f.Add(sampleDrawlist(f))
	e := NewEncoder()
	e.Clear()
	if buf, err := e.Build(); err == nil {
		f.Add(buf)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		d, err := ParseDrawlist(data)
		if err != nil {
			return
		}
		for _, c := range d.Commands {
			if dt, ok := c.(DrawText); ok {
				_ = d.Text(dt)
			}
		}
		if int(d.Header.StringsCount) != len(d.Strings) {
			t.Fatalf("%d strings for count %d", len(d.Strings), d.Header.StringsCount)
		}
	})
}

func FuzzReadNullTerminated(f *testing.F) {
	f.Add([]byte("xterm\x00"), 64)
	f.Add([]byte{0xFF, 0xFE}, 1)
	f.Fuzz(func(t *testing.T, data []byte, maxLen int) {
		_ = ReadNullTerminated(data, maxLen)
	})
}
