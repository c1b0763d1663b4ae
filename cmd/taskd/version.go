// Version command for the taskd CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the taskd release version, overridable at link time.
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("taskd v" + Version)
	},
}
