package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zoobzio/stacklog"
	"github.com/zoobzio/stacklog/internal/config"
	"github.com/zoobzio/stacklog/internal/logging"
)

// childExitError carries the child's exit code back to main.
type childExitError struct {
	code int
}

func (e *childExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type runOptions struct {
	message   string
	unit      string
	logLevel  string
	logFormat string
	skipCodes []int
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [flags] -- command [args...]",
		Short: "Run a command inside a timed scope",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			opts.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, closer, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			message := opts.message
			if message == "" {
				message = strings.Join(args, " ")
			}

			return runScope(ctx, &cfg, stacklog.SlogSink(logger, slog.LevelInfo), message, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.message, "message", "m", "", "Message to log (defaults to the command line)")
	cmd.Flags().StringVar(&opts.unit, "unit", "", "Duration unit: auto, ns, us, ms, s, min")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "", "Log format: text, json")
	cmd.Flags().IntSliceVar(&opts.skipCodes, "skip-exit-code", nil, "Exit codes logged as SKIPPED instead of FAILURE")

	return cmd
}

// apply lets explicitly set flags override the file.
func (o *runOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("unit") {
		cfg.Unit = o.unit
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}
	for _, code := range o.skipCodes {
		cfg.Conditions = append(cfg.Conditions, config.Condition{ExitCode: code, Suffix: "SKIPPED"})
	}
}

// runScope runs argv as one Timer scope and maps a non-zero exit to childExitError.
func runScope(ctx context.Context, cfg *config.Config, sink stacklog.Sink, message string, argv []string, stdout, stderr io.Writer) error {
	unit, err := cfg.ResolveUnit()
	if err != nil {
		return err
	}

	timer, err := stacklog.NewTimer(sink, message, unit)
	if err != nil {
		return err
	}
	timer.WithConditions(cfg.Compile()...)

	err = timer.RunContext(ctx, func(ctx context.Context) error {
		child := exec.CommandContext(ctx, argv[0], argv[1:]...)
		child.Stdin = os.Stdin
		child.Stdout = stdout
		child.Stderr = stderr
		return child.Run()
	})

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// killed by a signal
			code = 1
		}
		return &childExitError{code: code}
	}
	return err
}
