package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oy3o/zrcodec"
)

func newDemoCmd(a *app) *cobra.Command {
	var drawlistPath, eventsPath, recordingPath string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write sample drawlists and event batches",
		Long: `Write a sample drawlist, event batch and recording. With no output
flags the recording is written to stdout.

Example:
  zrdump demo --drawlist frame.bin --events batch.bin
  zrdump demo | zrdump dump -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if drawlistPath == "" && eventsPath == "" && recordingPath == "" {
				return a.writeRecording(cmd.OutOrStdout())
			}
			if drawlistPath != "" {
				if err := writeFile(drawlistPath, func(w io.Writer) error {
					e := a.demoFrame(0)
					_, err := e.WriteTo(w)
					return err
				}); err != nil {
					return err
				}
			}
			if eventsPath != "" {
				if err := writeFile(eventsPath, func(w io.Writer) error {
					_, err := demoBatch(0).WriteTo(w)
					return err
				}); err != nil {
					return err
				}
			}
			if recordingPath != "" {
				if err := writeFile(recordingPath, a.writeRecording); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&drawlistPath, "drawlist", "", "Write a sample drawlist to this file")
	cmd.Flags().StringVar(&eventsPath, "events", "", "Write a sample event batch to this file")
	cmd.Flags().StringVar(&recordingPath, "recording", "", "Write a sample recording to this file")
	return cmd
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// demoFrame draws a small status screen; frame varies the content.
func (a *app) demoFrame(frame int) *zrcodec.Encoder {
	e := zrcodec.NewEncoderWithLimits(a.cfg.Limits)
	e.Clear()
	e.FillRect(0, 0, 80, 24, zrcodec.Style{Bg: 0x1E1E2E})
	e.FillRect(0, 0, 80, 1, zrcodec.Style{Bg: 0x7D56F4})
	e.DrawTextStyle(2, 0, "zrdump demo", zrcodec.Style{Fg: 0xFAFAFA, Bg: 0x7D56F4, Attrs: 1})

	e.PushClip(2, 2, 40, 10)
	idx := e.AddString("the quick brown fox jumps over the lazy dog")
	for row := range int32(4) {
		e.DrawTextSlice(2, 3+row, idx, uint32(row)*4, 16, zrcodec.DefaultTextStyle)
	}
	e.PopClip()
	e.DrawText(2, 22, fmt.Sprintf("frame %d", frame))
	return e
}

func demoBatch(frame uint32) *zrcodec.BatchEncoder {
	t := frame * 16
	be := zrcodec.NewBatchEncoder()
	be.Resize(t, zrcodec.ResizeEvent{Cols: 80, Rows: 24})
	be.Key(t+1, zrcodec.KeyEvent{Key: zrcodec.KeyF1, Mods: zrcodec.ModCtrl, Action: zrcodec.KeyActionDown})
	be.Text(t+2, zrcodec.TextEvent{Codepoint: 'z'})
	be.Mouse(t+3, zrcodec.MouseEvent{X: 10, Y: 5, Kind: zrcodec.MouseDown, Buttons: 1})
	be.Paste(t+4, []byte("pasted"))
	be.User(t+5, 42, []byte("abc"))
	be.Tick(t+16, zrcodec.TickEvent{DtMs: 16})
	return be
}

// writeRecording writes three drawlist and event batch pairs.
func (a *app) writeRecording(w io.Writer) error {
	for i := range 3 {
		if _, err := a.demoFrame(i).WriteTo(w); err != nil {
			return err
		}
		if _, err := demoBatch(uint32(i)).WriteTo(w); err != nil {
			return err
		}
	}
	a.log.Debug("recording written", zap.Int("frames", 6))
	return nil
}
