package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of dblp-bibtex",
	// Skips config loading so version works with a broken config file.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dblp-bibtex %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
