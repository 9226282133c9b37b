package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all tasks in insertion order",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleError("Error opening task store", err)
		}
		defer func() { _ = taskStore.Close() }()

		renderTaskList(os.Stdout, taskStore.List())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
