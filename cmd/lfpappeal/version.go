package main

import (
	"fmt"

	lfpappeal "github.com/civicforms/lfpappeal"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lfpappeal",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lfpappeal version %s\n", lfpappeal.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
