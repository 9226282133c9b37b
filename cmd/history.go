package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show all tasks with their creation and completion times",
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleError("Error opening task store", err)
		}
		defer func() { _ = taskStore.Close() }()

		renderHistory(os.Stdout, taskStore.List())
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
