package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether DBLP is reachable",
	Long: `Check sends one small search request to DBLP and reports whether it
succeeded. The exit status is 1 when DBLP cannot be reached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newPipeline()
		if err != nil {
			return err
		}
		if !client.Reachable(context.Background()) {
			fmt.Println("DBLP is not reachable")
			return fmt.Errorf("%s is not reachable", cfg.DBLP.BaseURL)
		}
		fmt.Println("DBLP is reachable")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
