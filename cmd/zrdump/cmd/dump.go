package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oy3o/zrcodec"
)

func newDumpCmd(a *app) *cobra.Command {
	var (
		verbose  bool
		maxFrame uint32
	)
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Walk a recording of drawlists and event batches",
		Long: `Walk a recording, drawlists and event batches written back to back,
and validate every frame. Invalid frames are reported and skipped; the
command fails if any frame was invalid.

Example:
  zrdump demo --recording session.bin
  zrdump dump -v session.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			out := cmd.OutOrStdout()
			s := a.styles
			fr := zrcodec.NewFrameReader(in, maxFrame)
			var frames, invalid int
			for {
				off := fr.Offset()
				kind, buf, err := fr.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				frames++

				err = a.checkFrame(out, kind, buf, verbose)
				status := s.ok.Render("ok")
				if err != nil {
					invalid++
					status = s.bad.Render(err.Error())
					a.log.Warn("invalid frame", zap.Int64("offset", off), zap.Stringer("kind", kind), zap.Error(err))
				}
				if !verbose || err != nil {
					fmt.Fprintf(out, "%s %s %s %s\n",
						s.dim.Render(fmt.Sprintf("@%d", off)), s.name.Render(kind.String()),
						s.field.Render(fmt.Sprintf("%d bytes", len(buf))), status)
				}
			}
			fmt.Fprintf(out, "%s %d frames, %d invalid\n", s.title.Render("recording"), frames, invalid)
			if invalid > 0 {
				return fmt.Errorf("%d of %d frames invalid", invalid, frames)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every frame in full")
	cmd.Flags().Uint32Var(&maxFrame, "max-frame", 0, "Reject frames larger than this many bytes (0: no cap)")
	return cmd
}

// checkFrame validates one frame and prints it in full when verbose.
func (a *app) checkFrame(w io.Writer, kind zrcodec.FrameKind, buf []byte, verbose bool) error {
	switch kind {
	case zrcodec.FrameDrawlist:
		d, err := zrcodec.ParseDrawlist(buf)
		if err != nil {
			return err
		}
		if verbose {
			a.printDrawlist(w, d)
		}
		return a.cfg.Limits.Check(d)
	case zrcodec.FrameEvents:
		b, err := zrcodec.NewEventBatch(buf)
		if err != nil {
			return err
		}
		if verbose {
			a.printBatch(w, b)
		}
		return nil
	}
	return fmt.Errorf("unknown frame kind %s", kind)
}
