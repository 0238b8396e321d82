// Package commands provides the CLI commands for the mell tool.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mell-lang/mell/internal/config"
)

var noTypecheck bool

var rootCmd = &cobra.Command{
	Use:   "mell [file.mel]",
	Short: "Interpreter for the mell language",
	Long: `mell is a small functional language with type inference.

Usage:
  mell file.mel          Run a source file
  mell run file.mel      Run a source file explicitly
  mell repl              Start an interactive session
  mell                   Start a session when attached to a terminal`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 && isSourceFile(args[0]) {
			return runFile(args[0])
		}
		if len(args) == 0 {
			if isatty.IsTerminal(os.Stdin.Fd()) {
				return runRepl()
			}
			return cmd.Help()
		}
		return fmt.Errorf("unknown command %q for \"mell\"\nRun 'mell --help' for usage", args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noTypecheck, "no-typecheck", false, "Skip type inference and run directly")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
