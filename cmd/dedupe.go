package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// dedupeCmd represents the dedupe command
var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Remove tasks with duplicate titles",
	Long:  `Remove tasks whose title duplicates an earlier task's title. The first occurrence of each title is kept and the original order is preserved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = taskStore.Close() }()

		removed, err := taskStore.DedupeByTitle()
		if err != nil {
			return fmt.Errorf("dedupe tasks: %w", err)
		}

		if removed == 0 {
			fmt.Println("No duplicate titles found.")
			return nil
		}
		fmt.Printf("Removed %d duplicate tasks.\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dedupeCmd)
}
