package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sitectl",
		Short:        "sitectl - operator tooling for the SiteTrack API",
		Long:         `sitectl manages profile roles and checks CSV imports before they are uploaded.`,
		SilenceUsage: true,
	}

	root.AddCommand(roleCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(templateCmd())

	return root
}
