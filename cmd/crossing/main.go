package main

import (
	"fmt"
	"os"

	"github.com/chazu/crossing/cmd/crossing/commands"
	"github.com/chazu/crossing/internal/logger"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	jsonLog bool
)

var rootCmd = &cobra.Command{
	Use:   "crossing",
	Short: "Road intersection geometry",
	Long: `crossing - Road intersection geometry synthesis.

Builds the footpaths, curbs, gutters and road surface of a rectangular
intersection site from its four road connections.

Available commands:
  classify - Classify a connection pattern
  inspect  - Show the resolved intersection model
  export   - Export an intersection as STL

Examples:
  crossing classify 1 1 1 0
  crossing inspect --config tee.toml
  crossing export --lisp four_way.lisp --out four_way.stl`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(jsonLog, verbose); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Log as JSON instead of console lines")

	rootCmd.AddCommand(commands.ClassifyCmd)
	rootCmd.AddCommand(commands.InspectCmd)
	rootCmd.AddCommand(commands.ExportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		os.Exit(1)
	}
}
