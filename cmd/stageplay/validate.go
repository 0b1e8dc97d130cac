package main

import (
	"fmt"

	"github.com/nathoo/stageplay/loader"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [world-file]",
		Short: "Check a world document for consistency",
		Long: `Loads a world document and reports undefined stages and items, unknown
trigger actions, and paths hidden behind flags that nothing sets.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultWorldFile
			if len(args) > 0 {
				path = args[0]
			}
			return runValidate(cmd, path)
		},
	}
}

func runValidate(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()

	w, warnings, err := loader.LoadFile(path)
	for _, warning := range warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "%s is valid: %d stage(s), %d item(s), %d warning(s)\n",
		path, len(w.Stages), len(w.Inventory), len(warnings))
	return nil
}
