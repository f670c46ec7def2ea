package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Duration time.Duration
	Poll     time.Duration
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Keep the game ticking and print events as they happen",
		Long: `Poll the simulation at a fixed pace, printing log messages as they
arrive, and save when done.

The loop stops after --duration, or on Ctrl-C when the duration is 0.

Examples:
  idlecore run --duration 1m
  idlecore run --poll 250ms --duration 0`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoop(opts, cmd)
		},
	}

	cmd.Flags().DurationVar(&opts.Duration, "duration", 10*time.Second, "how long to run (0 = until interrupted)")
	cmd.Flags().DurationVar(&opts.Poll, "poll", time.Second, "interval between ticks")
	return cmd
}

func runLoop(opts *RunOptions, cmd *cobra.Command) error {
	if opts.Poll <= 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("poll interval must be positive, got %s", opts.Poll))
	}
	if opts.Duration < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("duration must not be negative, got %s", opts.Duration))
	}

	parent := commandContext(cmd)
	s, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	steps, err := s.resume(parent)
	if err != nil {
		return err
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if opts.Duration > 0 {
		ctx, cancel = context.WithTimeout(parent, opts.Duration)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			s.logger.Info("received signal, stopping", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	w := cmd.OutOrStdout()
	var messages []string
	report := func() {
		for _, msg := range s.drain() {
			messages = append(messages, msg)
			if !s.out.JSON() {
				fmt.Fprintln(w, msg)
			}
		}
	}
	report()

	limiter := rate.NewLimiter(rate.Every(opts.Poll), 1)
	polls := 0
	for {
		if err := limiter.Wait(ctx); err != nil {
			// Deadline reached, interrupted, or the next poll would land
			// past the deadline.
			break
		}
		polls++
		steps += s.engine().Tick(opts.now())
		report()
	}

	// Save with the parent context; the loop's own has expired by now.
	save, err := s.commit(parent)
	if err != nil {
		return err
	}
	s.logger.Debug("run finished", "polls", polls, "steps", steps, "seq", save.Seq)

	if s.out.JSON() {
		if messages == nil {
			messages = []string{}
		}
		return s.out.Success(map[string]any{
			"slot":     opts.Slot,
			"polls":    polls,
			"steps":    steps,
			"messages": messages,
		})
	}
	fmt.Fprintf(w, "Ran %d steps in %d polls; saved slot %s\n", steps, polls, opts.Slot)
	return nil
}
