package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/uicore/showcase"
)

func init() {
	RegisterCommand(&cobra.Command{
		Use:   "version",
		Short: "Print uicore version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "uicore version %s (built %s)\n", Version, BuildTime)
		},
	})

	RegisterCommand(&cobra.Command{
		Use:   "demos",
		Short: "List showcase components",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for i, d := range showcase.Demos() {
				marker := ""
				if i == 0 {
					marker = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %s%s\n", d.Name, d.Title, marker)
			}
		},
	})
}
