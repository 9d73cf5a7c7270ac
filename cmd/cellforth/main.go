// Command cellforth runs the continuation interpreter as a file loader and
// an interactive REPL.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var log zerolog.Logger

func main() {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("cellforth failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "cellforth",
		Short: "A stack-oriented continuation interpreter for composing cells",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	}

	root.AddCommand(newRunCmd(), newReplCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE...",
		Short: "Interpret one or more source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(args)
		},
	}
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-print loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL()
		},
	}
}

// runFiles drives the interpreter under a cancellable group so Ctrl-C
// during a long-running program (e.g. a runaway `times` loop) stops the
// trampoline instead of leaving the process to be killed outright.
func runFiles(paths []string) error {
	sess, err := newSession(os.Stdout)
	if err != nil {
		return err
	}
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("cellforth: %w", err)
		}
		sess.pushSourceFile(p, f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// SetCancel happens-before sess.run()'s goroutine starts, so the
	// trampoline's read of ctx.cancel is race-free even though only this
	// goroutine ever writes it; the signal-watching goroutine that
	// signal.NotifyContext starts never touches sess.ctx itself, it only
	// cancels ctx.
	sess.ctx.SetCancel(ctx)

	var g errgroup.Group
	g.Go(sess.run)
	return g.Wait()
}
