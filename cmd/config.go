package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/takty/croqujs-sub000/internal/config"
)

// configCmd represents the config command.
var configCmd = newConfigCmd()

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect croqujs configuration",
		Long: `Inspect croqujs configuration.

Settings are read from ./` + config.ConfigFileName + ` (or --config) and can be
overridden with ` + config.EnvPrefix + `_* environment variables, e.g.
` + config.EnvPrefix + `_LIBRARY_ROOT.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Render(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if cfgPath != "" {
				_, _ = fmt.Fprintf(out, "# loaded from %s\n", cfgPath)
			}

			_, err = out.Write(data)

			return err
		},
	})

	return cmd
}

func init() {
	rootCmd.AddCommand(configCmd)
}
