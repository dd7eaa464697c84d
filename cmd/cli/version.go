package main

import (
	"fmt"

	"rc-building-model/internal/version"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rcbm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rcbm v%s\n", version.String())
		fmt.Fprintf(cmd.OutOrStdout(), "Heat loss methodology: %s\n", version.Methodology)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
