package main

import (
	"context"
	"fmt"
	"io"

	"akuru/internal/diag"
	"akuru/internal/driver"
	"akuru/internal/observ"
	"akuru/internal/source"
	"akuru/internal/token"
)

// fileTokens is one tokenized file of a run.
type fileTokens struct {
	Path   string
	Tokens []token.Token
}

// runResult unifies single-file and directory runs for the output code.
type runResult struct {
	sources *source.SourceMap
	files   []fileTokens
	bag     *diag.Bag
	timer   *observ.Timer
	isDir   bool
}

func tokenizeTarget(ctx context.Context, target string, opts driver.Options, withUI bool) (*runResult, error) {
	dir, err := isDir(target)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", target, err)
	}
	if !dir {
		res, err := driver.Tokenize(ctx, target, opts)
		if err != nil {
			return nil, err
		}
		return &runResult{
			sources: res.Session.Sources,
			files:   []fileTokens{{Path: target, Tokens: res.Tokens}},
			bag:     res.Bag,
			timer:   res.Timer,
		}, nil
	}

	var res *driver.DirResult
	if withUI {
		res, err = tokenizeDirWithUI(ctx, target, opts)
	} else {
		res, err = driver.TokenizeDir(ctx, target, opts)
	}
	if err != nil {
		return nil, err
	}
	out := &runResult{
		sources: res.Session.Sources,
		bag:     res.Diagnostics(),
		timer:   res.Timer,
		isDir:   true,
	}
	for _, f := range res.Files {
		if f.Loaded {
			out.files = append(out.files, fileTokens{Path: f.Path, Tokens: f.Tokens})
		}
	}
	return out, nil
}

func openCache(enabled bool) (*driver.DiskCache, error) {
	if !enabled {
		return nil, nil
	}
	cache, err := driver.OpenDiskCache("akuru")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return cache, nil
}

func printTimings(w io.Writer, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(w, timer.Summary())
}
