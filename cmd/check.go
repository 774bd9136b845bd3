package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/takty/croqujs-sub000/internal/controller"
)

var checkParallelFlag int

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Verify that every local dependency resolves",
		Long: `Resolve the dependencies of each script without writing anything.
Remote dependencies are listed but never fetched. The command fails when any
script has a dependency that cannot be found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scripts, err := fsAdapter.Get(parsePaths(args))
			if err != nil {
				return err
			}

			parallel := cfg.Parallel
			if checkParallelFlag > 0 {
				parallel = checkParallelFlag
			}

			checks := make([]controller.FileCheck, len(scripts))

			ui.DisplayCheckStarted(len(scripts))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(parallel)

			for i, script := range scripts {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}

					check := controller.FileCheck{Path: script}

					doc, err := readDocument(script)
					if err != nil {
						check.Err = err
					} else {
						check.Result = exporter.Check(doc)
					}

					logger.Debug("checked", "path", script, "ok", check.OK())

					checks[i] = check
					ui.DisplayCheckResult(check)

					return nil
				})
			}

			if err := g.Wait(); err != nil {
				ui.Close()
				return err
			}

			if err := ui.DisplayCheckSummary(checks); err != nil {
				return err
			}

			failed := 0

			for _, check := range checks {
				if !check.OK() {
					failed++
				}
			}

			if failed > 0 {
				return &ExitError{Code: 1, Err: fmt.Errorf("%d of %d script(s) have unresolved dependencies", failed, len(checks))}
			}

			return nil
		},
	}
	cmd.Flags().IntVarP(&checkParallelFlag, "parallel", "p", 0, "number of scripts checked at once (default from config)")

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
