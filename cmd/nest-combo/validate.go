package main

import (
	"github.com/spf13/cobra"

	"github.com/eggybyte-technology/nest-combo/internal/ui"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a project file",
		Long: `Validate a nest-combo project file without running anything.

Example:
  nest-combo validate project.yml`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

// runValidate loads the file and prints a one-line summary.
func runValidate(cmd *cobra.Command, args []string) error {
	spec, err := loadSpec(args[0])
	if err != nil {
		return err
	}
	ui.Success("YAML file is valid.")
	ui.Data(spec.Raw(), "%s", spec)
	return nil
}
