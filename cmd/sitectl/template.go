package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/megamounds/sitetrack-api/internal/importer"
)

func templateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template <tasks|resources>",
		Short: "Print a CSV import template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, ok := importer.Template(args[0])
			if !ok {
				return fmt.Errorf("unknown template %q (want tasks or resources)", args[0])
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), body)
			return err
		},
	}
}
