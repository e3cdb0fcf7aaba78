package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"akuru/internal/diag"
	"akuru/internal/diagfmt"
	"akuru/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.ak|dir>",
	Short: "Report lexical diagnostics",
	Long: `Diag lexes akuru sources and prints the diagnostics; exits with 1 when errors are found.
Pretty output goes to stderr, json and short go to stdout.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiag,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Bool("with-positions", true, "include line/column in json output")
	diagCmd.Flags().Bool("visual-columns", false, "align underlines by display width")
	diagCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
}

func runDiag(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withPositions, err := cmd.Flags().GetBool("with-positions")
	if err != nil {
		return fmt.Errorf("failed to get with-positions flag: %w", err)
	}
	visual, err := cmd.Flags().GetBool("visual-columns")
	if err != nil {
		return fmt.Errorf("failed to get visual-columns flag: %w", err)
	}
	jobs := s.cfg.Tokenize.Jobs
	if cmd.Flags().Changed("jobs") {
		if jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}

	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	opts := driver.Options{BaseDir: s.baseDir, MaxDiagnostics: s.maxDiagnostics, Jobs: jobs}
	res, err := tokenizeTarget(cmd.Context(), args[0], opts, false)
	if err != nil {
		return err
	}

	pretty := s.prettyOpts()
	pretty.VisualColumns = visual
	out := diagOutput{
		format: format,
		pretty: pretty,
		json:   diagfmt.JSONOpts{IncludePositions: withPositions, PathMode: s.pathMode},
	}
	if err := writeDiagnostics(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, out); err != nil {
		return err
	}

	if s.timings {
		printTimings(cmd.ErrOrStderr(), res.timer)
	}
	if res.bag.HasErrors() {
		return errHasErrors
	}
	return nil
}

type diagOutput struct {
	format string
	pretty diagfmt.PrettyOpts
	json   diagfmt.JSONOpts
}

// writeDiagnostics renders res.bag. The pretty form goes to stderr, the same
// stream tokenize uses; json and short go to stdout.
func writeDiagnostics(stdout, stderr io.Writer, res *runResult, o diagOutput) error {
	switch o.format {
	case "pretty":
		diagfmt.Pretty(stderr, res.bag, res.sources, o.pretty)
	case "json":
		return diagfmt.JSON(stdout, res.bag, res.sources, o.json)
	case "short":
		_, err := fmt.Fprint(stdout, diag.FormatShortDiagnostics(res.bag.Items(), res.sources))
		return err
	default:
		return fmt.Errorf("unknown format: %s", o.format)
	}
	return nil
}
