// Root command for the taskd CLI.
package main

import (
	"github.com/spf13/cobra"
)

// flagConfig is set by the --config flag.
var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "taskd",
	Short: "taskd is a task management HTTP service",
	Long: `taskd serves a JSON HTTP API for managing tasks (title, description,
status, due date) backed by a relational database. Tasks are created in
bulk, read individually or as filtered lists, updated partially, and
deleted permanently.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ./taskd.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
