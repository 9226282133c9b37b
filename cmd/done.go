package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/types"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done <number>",
	Short:   "Mark a task as completed",
	Long:    `Mark the task at the given list position as completed. Positions are 1-based and follow the current output of 'taskdeck list'.`,
	Aliases: []string{"complete"},
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

		task, err := taskStore.Complete(position)
		if err != nil {
			if types.IsNotFound(err) {
				return fmt.Errorf("no task at position %d", position)
			}
			if types.IsInvalidState(err) {
				return fmt.Errorf("task %d is already completed", position)
			}
			return fmt.Errorf("complete task: %w", err)
		}

		fmt.Printf("Task %q marked as completed.\n", task.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
