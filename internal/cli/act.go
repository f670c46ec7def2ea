package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/idlecore/internal/engine"
	"github.com/roach88/idlecore/internal/game"
)

// Actions accepted by the act command.
var actions = []string{"build", "research", "upgrade", "gather", "prestige", "tick-rate"}

var errUnknownID = errors.New("unknown identifier")

// NewActCommand creates the act command.
func NewActCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "act <action> [id]",
		Short: "Build, research, upgrade, gather, prestige or change the tick rate",
		Long: `Apply one player action to the slot.

Actions:
  build <building>     construct one building
  research <tech>      research a tech with science
  upgrade <upgrade>    buy the next upgrade level
  gather <resource>    collect wood, stone or food by hand
  prestige             reset the run for permanent points
  tick-rate <seconds>  change the simulation step size

A refused action exits with code 1 and leaves the game as it was.

Examples:
  idlecore act gather wood
  idlecore act build lumber_mill
  idlecore act research "Education"
  idlecore act tick-rate 0.5`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		ValidArgs:     actions,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 2 {
				id = args[1]
			}
			return runAct(rootOpts, cmd, args[0], id)
		},
	}
}

func runAct(opts *RootOptions, cmd *cobra.Command, action, id string) error {
	ctx := commandContext(cmd)
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.resume(ctx); err != nil {
		return err
	}

	summary, actErr := applyAction(s.engine(), action, id)
	messages := s.drain()
	if _, err := s.commit(ctx); err != nil {
		return err
	}

	switch {
	case errors.Is(actErr, errUnknownID):
		return s.out.Fail(ExitCommandError, CodeUnknownID, actErr.Error(), nil)
	case actErr != nil:
		return s.out.Fail(ExitFailure, CodeRejected,
			fmt.Sprintf("%s %s rejected (%s)", action, id, engine.RejectionCodeOf(actErr)), actErr)
	}

	if s.out.JSON() {
		return s.out.Success(map[string]any{
			"slot":     opts.Slot,
			"action":   action,
			"id":       id,
			"result":   summary,
			"messages": messages,
		})
	}
	w := cmd.OutOrStdout()
	for _, msg := range messages {
		fmt.Fprintln(w, msg)
	}
	if summary != "" {
		fmt.Fprintln(w, summary)
	}
	return nil
}

// applyAction dispatches one action. Identifiers are parsed here so the
// engine only sees typed values.
func applyAction(eng *engine.Engine, action, id string) (string, error) {
	needID := func() error {
		if id == "" {
			return fmt.Errorf("%w: %s needs an id", errUnknownID, action)
		}
		return nil
	}

	switch action {
	case "build":
		if err := needID(); err != nil {
			return "", err
		}
		b, ok := game.ParseBuilding(id)
		if !ok {
			return "", fmt.Errorf("%w: building %q", errUnknownID, id)
		}
		return "", eng.Build(b)
	case "research":
		if err := needID(); err != nil {
			return "", err
		}
		t, ok := game.ParseTech(id)
		if !ok {
			return "", fmt.Errorf("%w: tech %q", errUnknownID, id)
		}
		return "", eng.Research(t)
	case "upgrade":
		if err := needID(); err != nil {
			return "", err
		}
		u, ok := game.ParseUpgrade(id)
		if !ok {
			return "", fmt.Errorf("%w: upgrade %q", errUnknownID, id)
		}
		return "", eng.Upgrade(u)
	case "gather":
		if err := needID(); err != nil {
			return "", err
		}
		r, ok := game.ParseResource(id)
		if !ok {
			return "", fmt.Errorf("%w: resource %q", errUnknownID, id)
		}
		if err := eng.Gather(r); err != nil {
			return "", err
		}
		return fmt.Sprintf("Gathered %s (now %g)", r, eng.Resource(r)), nil
	case "prestige":
		eng.Prestige()
		return "", nil
	case "tick-rate":
		rate, err := strconv.ParseFloat(id, 64)
		if err != nil {
			return "", fmt.Errorf("%w: tick rate %q", errUnknownID, id)
		}
		if err := eng.SetTickRate(rate); err != nil {
			return "", err
		}
		return fmt.Sprintf("Tick rate is now %gs", eng.TickRate()), nil
	default:
		return "", fmt.Errorf("%w: action %q (want one of %v)", errUnknownID, action, actions)
	}
}
