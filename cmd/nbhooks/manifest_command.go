package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nbhooks/internal/fileutil"
	"nbhooks/internal/manifest"
)

func newManifestCommand() *cobra.Command {
	var binary string
	var outputPath string

	cmd := &cobra.Command{
		Use:         "manifest",
		Short:       "Print the .pre-commit-hooks.yaml describing the nbhooks hooks",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := manifest.Encode(manifest.Hooks(strings.TrimSpace(binary)))
			if err != nil {
				return err
			}
			if outputPath == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			same, err := fileutil.SameContent(outputPath, data)
			if err != nil {
				return fmt.Errorf("read existing manifest: %w", err)
			}
			if same {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s is up to date\n", outputPath)
				return nil
			}
			if err := fileutil.WriteFileAtomic(outputPath, data); err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&binary, "binary", "nbhooks", "Executable name used in hook entries")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}
