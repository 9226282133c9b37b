package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var statsJSON bool

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task statistics",
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleError("Error opening task store", err)
		}
		defer func() { _ = taskStore.Close() }()

		stats := taskStore.Stats()
		if statsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(stats); err != nil {
				HandleError("Error encoding statistics", err)
			}
			return
		}
		renderStats(os.Stdout, stats)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print statistics as JSON")
}
