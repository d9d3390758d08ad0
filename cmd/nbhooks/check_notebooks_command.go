package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nbhooks/internal/hooks"
)

func newCheckNotebooksCommand(ctx *commandContext) *cobra.Command {
	var allowPrefixes []string
	var summary bool

	cmd := &cobra.Command{
		Use:   "check-notebooks [flags] FILE...",
		Short: "Check that notebooks were executed cleanly and use the plotting helpers",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			allow := cfg.Outputs.StderrAllowPrefixes
			if cmd.Flags().Changed("stderr-allow-prefix") {
				allow = allowPrefixes
			}

			out := cmd.OutOrStdout()
			runner := hooks.NewRunner(out, hooks.WithLogger(logger))
			report := runner.CheckNotebooks(ctx.runContext(cmd), args, hooks.NotebookOptions{
				StderrAllowPrefixes: allow,
			})
			if summary {
				fmt.Fprintln(out, renderReportTable(report))
			}
			return exitWith(report.ExitCode())
		},
	}

	cmd.Flags().StringArrayVar(&allowPrefixes, "stderr-allow-prefix", nil, "Accept stderr output starting with this prefix (repeatable; replaces the configured list)")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a per-file summary table")
	return cmd
}
