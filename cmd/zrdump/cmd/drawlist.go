package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oy3o/zrcodec"
)

func newDrawlistCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drawlist <file>",
		Short: "Validate and print a drawlist",
		Long: `Validate a v1 drawlist and print its header, commands and strings.
The drawlist is also checked against the configured limits.

Example:
  zrdump demo --drawlist frame.bin
  zrdump drawlist frame.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			d, err := zrcodec.ParseDrawlist(buf)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			a.printDrawlist(cmd.OutOrStdout(), d)
			if err := a.cfg.Limits.Check(d); err != nil {
				a.log.Warn("drawlist exceeds limits", zap.String("file", args[0]), zap.Error(err))
				return err
			}
			return nil
		},
	}
}

func (a *app) printDrawlist(w io.Writer, d *zrcodec.Drawlist) {
	s := a.styles
	h := d.Header
	fmt.Fprintf(w, "%s v%d  %d bytes  %d commands  %d strings\n",
		s.title.Render("drawlist"), h.Version, h.TotalSize, h.CmdCount, h.StringsCount)
	fmt.Fprintf(w, "  %s %d+%d  %s %d  %s %d+%d\n",
		s.field.Render("cmds"), h.CmdOffset, h.CmdBytes,
		s.field.Render("spans"), h.StringsSpanOffset,
		s.field.Render("bytes"), h.StringsBytesOffset, h.StringsBytesLen)

	for i, c := range d.Commands {
		fmt.Fprintf(w, "  %s %s %s\n", s.dim.Render(fmt.Sprintf("#%d", i)), s.name.Render(c.Opcode().String()), describeCommand(d, c))
	}
	if len(d.Strings) > 0 {
		fmt.Fprintln(w, s.title.Render("strings"))
		for i, str := range d.Strings {
			fmt.Fprintf(w, "  %s %s\n", s.dim.Render(fmt.Sprintf("[%d]", i)), s.text.Render(quote(str)))
		}
	}
}
