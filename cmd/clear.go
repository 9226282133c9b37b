package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var clearForce bool

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all tasks",
	Long: `Remove every task from the list. This cannot be undone.

An interactive confirmation is required unless --force is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleError("Error opening task store", err)
		}
		defer func() { _ = taskStore.Close() }()

		total := taskStore.Stats().Total
		if total == 0 {
			fmt.Println("No tasks to clear.")
			return
		}

		if !clearForce {
			if err := confirmClear(total); err != nil {
				fmt.Println("Clear operation cancelled.")
				return
			}
		}

		if err := taskStore.ClearAll(); err != nil {
			HandleError("Error clearing tasks", err)
		}
		fmt.Printf("All %d tasks have been cleared.\n", total)
	},
}

// confirmClear asks the user to confirm the destructive clear.
func confirmClear(total int) error {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Clear all %d tasks? This cannot be undone (yes/no)", total),
		AllowEdit: true,
	}
	answer, err := prompt.Run()
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return nil
	default:
		return errors.New("not confirmed")
	}
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip confirmation")
}
