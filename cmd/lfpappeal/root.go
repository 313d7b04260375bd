package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lfpappeal",
	Short: "Appeal a late filing penalty",
	Long:  `lfpappeal serves the multi-step web journey for appealing a late filing penalty issued against a company.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
