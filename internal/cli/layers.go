package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pcbtools/netsvg/pkg/board"
)

// layersCommand lists the layers a board enables, marking copper layers
// since those are the ones that carry net colors.
func (c *CLI) layersCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "layers <board.kicad_pcb>",
		Short: "List the layers a board enables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			brd, err := board.ParseFile(args[0])
			if err != nil {
				return err
			}

			if asJSON {
				type layerInfo struct {
					Name   string `json:"name"`
					Copper bool   `json:"copper"`
				}
				out := make([]layerInfo, 0, len(brd.Layers))
				for _, name := range brd.Layers {
					out = append(out, layerInfo{Name: name, Copper: board.IsCopper(name)})
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Println(StyleTitle.Render(fmt.Sprintf("%d layers", len(brd.Layers))))
			for _, name := range brd.Layers {
				mark := StyleDim.Render("-")
				if board.IsCopper(name) {
					mark = StyleValue.Render("copper")
				}
				fmt.Printf("  %-14s %s\n", name, mark)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit machine-readable JSON")

	return cmd
}
