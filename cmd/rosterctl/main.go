// Command rosterctl works with roster files offline: it writes the import
// template and dry-runs the importer against a file before it is uploaded.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yigit/counselordesk/internal/pkg/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "rosterctl",
	Short:         "Roster file tools for the counselor console",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logger.InfoLevel
		if verbose {
			level = logger.DebugLevel
		}
		logger.Configure(logger.Config{Level: level, Pretty: true, Output: cmd.ErrOrStderr()})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(templateCmd, inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("rosterctl failed")
		os.Exit(1)
	}
}
