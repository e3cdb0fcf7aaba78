package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"akuru/internal/diagfmt"
	"akuru/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.ak|dir>",
	Short: "Tokenize an akuru source file or directory",
	Long:  `Tokenize breaks akuru sources into tokens; diagnostics go to stderr`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().String("ui", "off", "progress UI for directories (auto|on|off)")
	tokenizeCmd.Flags().Bool("cache", false, "reuse token streams of unchanged files from the disk cache")
	tokenizeCmd.Flags().Bool("cache-clear", false, "drop every cached token stream before the run")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	format := s.cfg.Tokenize.Format
	if cmd.Flags().Changed("format") {
		if format, err = cmd.Flags().GetString("format"); err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	jobs := s.cfg.Tokenize.Jobs
	if cmd.Flags().Changed("jobs") {
		if jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}

	useCache := s.cfg.Tokenize.Cache
	if cmd.Flags().Changed("cache") {
		if useCache, err = cmd.Flags().GetBool("cache"); err != nil {
			return fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	clearCache, err := cmd.Flags().GetBool("cache-clear")
	if err != nil {
		return fmt.Errorf("failed to get cache-clear flag: %w", err)
	}
	cache, err := openCache(useCache || clearCache)
	if err != nil {
		return err
	}
	if clearCache {
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		if !useCache {
			cache = nil
		}
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	opts := driver.Options{BaseDir: s.baseDir, MaxDiagnostics: s.maxDiagnostics, Jobs: jobs, Cache: cache}
	res, err := tokenizeTarget(cmd.Context(), args[0], opts, shouldUseTUI(mode))
	if err != nil {
		return err
	}

	if !res.bag.IsEmpty() {
		diagfmt.Pretty(cmd.ErrOrStderr(), res.bag, res.sources, s.prettyOpts())
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = writeTokensJSON(out, res)
	default:
		err = writeTokensPretty(out, res)
	}
	if err != nil {
		return err
	}

	if s.timings {
		printTimings(cmd.ErrOrStderr(), res.timer)
	}
	return nil
}

func writeTokensPretty(w io.Writer, res *runResult) error {
	for i, f := range res.files {
		if res.isDir {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", f.Path)
		}
		if err := diagfmt.FormatTokensPretty(w, f.Tokens, res.sources); err != nil {
			return err
		}
	}
	return nil
}

type fileTokensJSON struct {
	Path   string                `json:"path"`
	Tokens []diagfmt.TokenOutput `json:"tokens"`
}

func writeTokensJSON(w io.Writer, res *runResult) error {
	if !res.isDir {
		return diagfmt.FormatTokensJSON(w, res.files[0].Tokens, res.sources)
	}
	payload := make([]fileTokensJSON, 0, len(res.files))
	for _, f := range res.files {
		payload = append(payload, fileTokensJSON{Path: f.Path, Tokens: diagfmt.TokensOutput(f.Tokens, res.sources)})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
