package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "stacklog",
	Short:         "Log begin and outcome lines around a command",
	Long:          `stacklog wraps a command with "message..." before it starts and "message...DONE" or "message...FAILURE" when it ends.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(versionCmd)
}
