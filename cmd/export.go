package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export tasks to a JSON file",
	Long:  `Write the current task list to the given path as a JSON array. Without a path a timestamped filename is generated.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		taskStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = taskStore.Close() }()

		written, err := taskStore.Export(path)
		if err != nil {
			return fmt.Errorf("export tasks: %w", err)
		}

		fmt.Printf("Tasks exported to %s.\n", written)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
