package main

import (
	"fmt"
	"os"

	"github.com/civicforms/lfpappeal/internal/tui"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [step]",
	Short: "Preview a step's guidance copy in the terminal",
	Long:  `Renders the static guidance text for a wizard step, so content changes can be reviewed without starting the server. Steps are named by template: start, your-details, penalty-details, choose-reason, illness-details, other-reason, evidence, check-your-answers, confirmation.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out, err := tui.PreviewStep(args[0])
		if err != nil {
			fmt.Printf("Error rendering step: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
