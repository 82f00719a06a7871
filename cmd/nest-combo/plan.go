package main

import (
	"github.com/spf13/cobra"

	"github.com/eggybyte-technology/nest-combo/internal/ui"
)

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <file>",
		Short: "Print the commands a project file would run",
		Long: `Print, in order, every command nest-combo -f would run for a project
file: nest new, the dependency install, one nest generate per resource and
the editor. Nothing is executed and nest is not probed.

Example:
  nest-combo plan project.yml`,
		Args: cobra.ExactArgs(1),
		RunE: runPlan,
	}
}

func runPlan(cmd *cobra.Command, args []string) error {
	spec, err := loadSpec(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	plan, err := a.planner().Plan(spec)
	if err != nil {
		return err
	}

	ui.Data(plan, "Plan for %s: %d commands", spec.ProjectName, len(plan))
	for i, c := range plan {
		ui.Step(i+1, len(plan), "%s", c)
	}
	return nil
}
