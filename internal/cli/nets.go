package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pcbtools/netsvg/pkg/board"
	"github.com/pcbtools/netsvg/pkg/pipeline"
)

// netsCommand lists board nets with their resolved colors, honoring the
// same color resolution flags as render.
func (c *CLI) netsCommand() *cobra.Command {
	var (
		netColors     []string
		colorsFile    string
		ignoreProject bool
		theme         string
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "nets <board.kicad_pcb>",
		Short: "List board nets with resolved colors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			brd, err := board.ParseFile(args[0])
			if err != nil {
				return err
			}

			opts := pipeline.Options{
				BoardPath:           args[0],
				NetColors:           netColors,
				ColorsFile:          colorsFile,
				IgnoreProjectColors: ignoreProject,
				Theme:               theme,
				Logger:              logger,
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			resolver, _, err := pipeline.BuildResolver(opts, logger)
			if err != nil {
				return err
			}

			names := brd.NetNames()
			if asJSON {
				out := map[string]map[string]string{}
				for _, name := range names {
					res := resolver.Resolve(name)
					out[name] = map[string]string{
						"color":  res.Color,
						"source": res.Source.String(),
					}
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Println(StyleTitle.Render(fmt.Sprintf("%d nets", len(names))))
			for _, name := range names {
				res := resolver.Resolve(name)
				fmt.Printf("  %s  %s %s\n",
					swatch(res.Color),
					StyleValue.Render(name),
					StyleDim.Render("("+res.Source.String()+")"))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&netColors, "net-color", nil, "net color assignment NAME:COLOR (repeatable)")
	cmd.Flags().StringVar(&colorsFile, "colors", "", "JSON net color configuration file")
	cmd.Flags().BoolVar(&ignoreProject, "ignore-project-colors", false, "ignore net colors from the .kicad_pro project file")
	cmd.Flags().StringVar(&theme, "theme", "", "color theme: dark (default), light, none")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit machine-readable JSON")

	return cmd
}
