package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/filmframe/pkg/config"
)

// settingsCommand creates the settings command that shows the effective
// application settings.
func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := c.settings()
			printKeyValue("product", s.Product)
			printKeyValue("output", s.OutputDir)
			printKeyValue("style", orDefault(s.Style, "builtin"))
			printKeyValue("delay", s.Batch.Delay.String())
			printKeyValue("quality", fmt.Sprintf("preview %g, export %g", s.Quality.Preview, s.Quality.Export))
			printKeyValue("server", s.Server.Addr)
			printKeyValue("cache", cacheSummary(s))
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "env",
		Short: "List supported environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			help, err := config.EnvHelp()
			if err != nil {
				return err
			}
			fmt.Println(help)
			return nil
		},
	})

	return cmd
}

func cacheSummary(s *config.Settings) string {
	switch {
	case !s.Cache.Enabled:
		return "disabled"
	case s.Cache.RedisAddr != "":
		return "redis " + s.Cache.RedisAddr + " (server), files (cli)"
	default:
		return "files"
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
