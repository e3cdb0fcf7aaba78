package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"akuru/internal/prof"
	"akuru/internal/trace"
)

// cleanups run in reverse order once the command finishes.
var cleanups []func()

func addCleanup(fn func()) {
	cleanups = append(cleanups, fn)
}

func runCleanups() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

// setupProfiling starts the runtime profilers requested by flags.
func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return err
	}
	if cfg.Mem, err = flags.GetString("memprofile"); err != nil {
		return err
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return err
	}
	if cfg == (prof.Config{}) {
		return nil
	}
	session, err := prof.Start(cfg)
	if err != nil {
		return err
	}
	addCleanup(func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	})
	return nil
}

// setupTracing inspects trace-related flags and initializes the tracer.
// It returns a cleanup function and an error if initialization fails.
func setupTracing(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Без --trace трассировка выключена
	if traceOutput == "" {
		cmd.SetContext(trace.WithTracer(ctx, trace.Nop))
		return func() {}, nil
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}

	cfg := trace.Config{
		Level:      level,
		OutputPath: traceOutput,
	}
	if formatStr == "auto" {
		cfg.AutoFormat = true
	} else {
		cfg.Format, err = trace.ParseFormat(formatStr)
		if err != nil {
			return nil, err
		}
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	cmd.SetContext(trace.WithTracer(ctx, tracer))

	cleanup := func() {
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
