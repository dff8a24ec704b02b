package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/filmframe/pkg/config"
)

// styleCommand creates the style command that prints the resolved style as
// TOML. Its output is a valid --style file.
func (c *CLI) styleCommand() *cobra.Command {
	var flags styleFlags

	cmd := &cobra.Command{
		Use:     "style",
		Short:   "Print the resolved style as TOML",
		Example: `  filmframe style --variant cinema-scope --grain > cinema.toml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(c.settings())
			if err != nil {
				return err
			}
			return config.EncodeStyle(os.Stdout, cfg)
		},
	}

	flags.register(cmd.Flags())
	registerCompletions(cmd)
	return cmd
}
