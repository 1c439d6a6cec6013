package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped by the release build; the default marks a source
// build.
var version = "devel"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the spirv2glsl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("spirv2glsl", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
