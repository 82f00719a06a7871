package main

import (
	"github.com/spf13/cobra"

	"github.com/eggybyte-technology/nest-combo/internal/ui"
	"github.com/eggybyte-technology/nest-combo/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show nest-combo version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if ui.Verbose() {
				ui.Info("%s", version.GetFullVersionInfo())
				return
			}
			ui.Info("%s", version.GetVersionString())
		},
	}
}
