package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/filmframe/pkg/pipeline"
)

// paletteCommand creates the palette command that prints the colors sampled
// from a photograph.
func (c *CLI) paletteCommand() *cobra.Command {
	var asJSON, noCache bool

	cmd := &cobra.Command{
		Use:   "palette [image]",
		Short: "Print the color palette of a photograph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPalette(cmd.Context(), args[0], asJSON, noCache)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print colors as a JSON array")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runPalette(ctx context.Context, input string, asJSON, noCache bool) error {
	data, err := pipeline.ReadFile(input)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	entry, cached, err := runner.LoadEntry(ctx, data)
	if err != nil {
		return err
	}

	hex := make([]string, len(entry.Palette))
	for i, col := range entry.Palette {
		hex[i] = col.Hex()
	}
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(hex)
	}

	if len(hex) == 0 {
		printWarning("No usable colors found (image is too dark or too bright)")
		return nil
	}
	for _, h := range hex {
		printSwatch(h)
	}
	printDetail("%dx%d, %s", entry.Width, entry.Height, cacheLabel(cached))
	return nil
}
