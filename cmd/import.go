package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/types"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import tasks from a JSON file, replacing the current list",
	Long: `Read a JSON array of task records from the given path and replace the
current task list with it. The previous list is discarded; export it
first if you want to keep a copy.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		taskStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = taskStore.Close() }()

		if err := taskStore.Import(path); err != nil {
			if types.IsValidation(err) {
				return fmt.Errorf("%s is not a valid task file: %w", path, err)
			}
			return fmt.Errorf("import tasks: %w", err)
		}

		fmt.Printf("Imported %d tasks from %s (previous list replaced).\n", len(taskStore.List()), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
