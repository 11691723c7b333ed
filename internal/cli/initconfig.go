package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pcbtools/netsvg/pkg/board"
	"github.com/pcbtools/netsvg/pkg/colors"
	"github.com/pcbtools/netsvg/pkg/errors"
)

// initConfigCommand writes a net color configuration template listing
// every net on the board, ready to edit and pass back via --colors.
func (c *CLI) initConfigCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init-config <board.kicad_pcb>",
		Short: "Generate a net color configuration template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			brd, err := board.ParseFile(args[0])
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			buf.WriteString("{\n  \"net_colors\": {\n")
			names := brd.NetNames()
			for i, name := range names {
				key, err := json.Marshal(name)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "encoding net name %q", name)
				}
				fmt.Fprintf(&buf, "    %s: %q", key, colors.FallbackGray)
				if i < len(names)-1 {
					buf.WriteByte(',')
				}
				buf.WriteByte('\n')
			}
			buf.WriteString("  }\n}\n")

			if output == "" || output == "-" {
				_, err := os.Stdout.Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", output)
			}
			printSuccess("wrote color template for %d nets", len(names))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
