package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/types"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete <number>",
	Short:   "Delete a task",
	Long:    `Delete the task at the given list position. Positions are 1-based and shift after every deletion, so re-check 'taskdeck list' between deletes.`,
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, err := parsePosition(args[0])
		if err != nil {
			return err
		}

		taskStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = taskStore.Close() }()

		task, err := taskStore.Delete(position)
		if err != nil {
			if types.IsNotFound(err) {
				return fmt.Errorf("no task at position %d", position)
			}
			return fmt.Errorf("delete task: %w", err)
		}

		fmt.Printf("Task %q has been deleted.\n", task.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
