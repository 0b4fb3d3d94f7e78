// Offsite - team outing marketing site
// Server-rendered pages over a hosted content backend, with lead capture
// into a local SQLite store.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "offsite",
	Short:         "Team outing marketing site",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "path to a JSON or YAML config file (optional)")

	rootCmd.AddCommand(serveCmd, seedCmd, hashPasswordCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "offsite: %v\n", err)
		os.Exit(1)
	}
}
