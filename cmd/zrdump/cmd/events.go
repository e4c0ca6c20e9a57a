package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oy3o/zrcodec"
)

func newEventsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "events <file>",
		Short: "Validate and print an event batch",
		Long: `Validate a v1 event batch and print every record with its typed payload.

Example:
  zrdump events batch.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			b, err := zrcodec.NewEventBatch(buf)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			a.printBatch(cmd.OutOrStdout(), b)
			return nil
		},
	}
}

func (a *app) printBatch(w io.Writer, b *zrcodec.EventBatch) {
	s := a.styles
	h := b.Header()
	fmt.Fprintf(w, "%s v%d  %d bytes  %d records", s.title.Render("events"), h.Version, h.TotalSize, h.EventCount)
	if b.Truncated() {
		fmt.Fprintf(w, "  %s", s.bad.Render("truncated"))
	}
	fmt.Fprintln(w)
	for i, rec := range b.Records() {
		fmt.Fprintf(w, "  %s %s %s %s\n",
			s.dim.Render(fmt.Sprintf("#%d @%d", i, rec.Offset())),
			s.field.Render(fmt.Sprintf("t=%dms", rec.TimeMs())),
			s.name.Render(rec.Type().String()),
			describeRecord(rec))
	}
}
