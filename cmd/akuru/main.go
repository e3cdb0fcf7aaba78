package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"akuru/internal/version"
)

// errHasErrors signals that error diagnostics were reported; they are
// already printed, so main only turns it into the exit status.
var errHasErrors = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:           "akuru",
	Short:         "Akuru lexer and diagnostics toolkit",
	Long:          `Akuru tokenizes akuru sources and renders their lexical diagnostics`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		addCleanup(cleanup)
		return setupProfiling(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		runCleanups()
	},
}

// main registers subcommands and persistent flags, then executes the root command.
// Any error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(versionCmd)

	registerPersistentFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		// PostRun не вызывается, если RunE вернул ошибку
		runCleanups()
		if !errors.Is(err, errHasErrors) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// registerPersistentFlags adds the global flags shared by every subcommand.
func registerPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 = unlimited)")
	cmd.PersistentFlags().String("path-mode", "auto", "path display in diagnostics (auto|absolute|relative|basename)")
	cmd.PersistentFlags().Bool("timings", false, "show timing information")
	cmd.PersistentFlags().String("config", "", "path to akuru.toml (default: search upwards from the working directory)")
	cmd.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	cmd.PersistentFlags().String("trace-level", "phase", "trace verbosity (off|error|phase|detail|debug)")
	cmd.PersistentFlags().String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	cmd.PersistentFlags().String("cpuprofile", "", "write CPU profile to file")
	cmd.PersistentFlags().String("memprofile", "", "write heap profile to file on exit")
	cmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
