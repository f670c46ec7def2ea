package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/idlecore/internal/store"
)

// NewOptions holds flags for the new command.
type NewOptions struct {
	*RootOptions
	Force bool
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game in the slot",
		Long: `Start a new game in the selected slot.

The clock starts now. An existing slot is left alone unless --force is
given, in which case the new game is appended to its history.

Examples:
  idlecore new
  idlecore new --slot second --config ./hard.cue
  idlecore new --force`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "replace the game in an existing slot")
	return cmd
}

func runNew(opts *NewOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	s, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	if !opts.Force {
		if _, err := s.store.Slot(ctx, opts.Slot); err == nil {
			return s.out.Fail(ExitCommandError, CodeSlotExists,
				fmt.Sprintf("slot %s already has a game (use --force to replace it)", opts.Slot), store.ErrSlotExists)
		}
	}

	s.game.Tick(opts.now())
	save, err := s.commit(ctx)
	if err != nil {
		return err
	}

	if s.out.JSON() {
		return s.out.Success(map[string]any{
			"slot":     opts.Slot,
			"seq":      save.Seq,
			"checksum": save.Checksum,
		})
	}
	return s.out.Success(fmt.Sprintf("Started a new game in slot %s", opts.Slot))
}
