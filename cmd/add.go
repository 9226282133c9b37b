package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addDescription string

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a new pending task to the list.

Examples:
  taskdeck add "Buy groceries"
  taskdeck add "Call the bank" --desc "about the standing order"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")

		taskStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = taskStore.Close() }()

		task, err := taskStore.Add(title, addDescription)
		if err != nil {
			return fmt.Errorf("add task: %w", err)
		}

		fmt.Printf("Task %q has been added.\n", task.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "desc", "d", "", "optional task description")
}
