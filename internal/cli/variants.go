package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/filmframe/pkg/frame"
)

// variantsCommand creates the variants command that lists frame variants
// and diffusion filters.
func (c *CLI) variantsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List frame variants and filters",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(StyleTitle.Render("Variants"))
			for _, v := range frame.Variants() {
				p := frame.PresetFor(v)
				tone := "light"
				if p.Dark {
					tone = "dark"
				}
				printKeyValue(string(v), fmt.Sprintf("%s %s  %s, %s",
					swatch(p.Background.Hex()), swatch(p.Text.Hex()), p.Family, tone))
			}

			printNewline()
			fmt.Println(StyleTitle.Render("Filters"))
			for _, f := range frame.Filters() {
				spec, ok := f.Spec()
				if !ok {
					printKeyValue(string(f), StyleDim.Render("no diffusion"))
					continue
				}
				printKeyValue(string(f), fmt.Sprintf("%s blend, %gx spread, %gx strength",
					spec.Blend, spec.RadiusScale, spec.StrengthScale))
			}
		},
	}
}
