package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taskdeck/taskdeck/store"
	"github.com/taskdeck/taskdeck/types"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands.
// Running taskdeck with no arguments starts the interactive session.
var rootCmd = &cobra.Command{
	Use:     "taskdeck",
	Short:   "taskdeck is a local task tracker for your terminal.",
	Version: version,
	Long: `taskdeck keeps a simple to-do list in a local JSON file.

Run it without arguments for the interactive menu, or use the
subcommands (add, list, done, delete, stats, history, export, import,
clear, dedupe) for scripted use. The interactive session exits on its
own after a configurable period of inactivity.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractiveSession()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.taskdeck.yaml or ./.taskdeck.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetStore opens the task store at the configured data file.
// A malformed data file is recoverable: it is reported once and the
// session continues with an empty collection, leaving the file
// untouched until the next mutation.
func GetStore() (store.TaskStore, error) {
	config := GetConfig()

	s, err := store.NewFileTaskStore(config.Data.File)
	if err != nil {
		if types.IsValidation(err) && s != nil {
			PrintError(fmt.Sprintf("Warning: %s is not a valid task file; starting with an empty list.", config.Data.File), err)
			return s, nil
		}
		return nil, fmt.Errorf("failed to open task store at %s: %w", config.Data.File, err)
	}
	LogError("opened task store at "+config.Data.File, nil)
	return s, nil
}
