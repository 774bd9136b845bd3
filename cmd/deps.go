package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// depsCmd represents the deps command.
var depsCmd = newDepsCmd()

func newDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps [paths...]",
		Short: "List the dependencies a script declares",
		Long: `List the dependencies declared by scripts.
Paths may be files or directories; "dir/..." scans recursively.
With no path the current directory is used.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			scripts, err := fsAdapter.Get(parsePaths(args))
			if err != nil {
				return err
			}

			for _, script := range scripts {
				doc, err := readDocument(script)
				if err != nil {
					return fmt.Errorf("read %s: %w", script, err)
				}

				if err := ui.DisplayDeclarations(script, exporter.Declarations(doc)); err != nil {
					return err
				}
			}

			return nil
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(depsCmd)
}
