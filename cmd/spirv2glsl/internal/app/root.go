// Package app wires the spirv2glsl command tree: flag parsing, logging
// and dispatch into the glsl/varlist backends.
package app

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "spirv2glsl",
	Short: "Translate a SPIR-V binary module into GLSL or a variable-interface manifest.",
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "log at debug level")
	rootCmd.AddCommand(translateCmd)

	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: !term.IsTerminal(int(os.Stderr.Fd())),
		FullTimestamp: false,
	})
}

// Execute runs the command tree, logging any returned error before
// propagating a non-zero exit to main.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
