package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/idlecore/internal/api"
	"github.com/roach88/idlecore/internal/config"
	"github.com/roach88/idlecore/internal/engine"
	"github.com/roach88/idlecore/internal/store"
)

// session is one command's view of a save slot: the open store, a game
// built from the configured engine settings, and the output formatter.
type session struct {
	opts   *RootOptions
	store  *store.Store
	game   *api.Game
	logger *slog.Logger
	out    *OutputFormatter
}

// openSession opens the database and creates a fresh game. Errors are
// already reported through the formatter.
func openSession(cmd *cobra.Command, opts *RootOptions) (*session, error) {
	out := opts.formatter(cmd)
	logger := opts.logger(cmd)

	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, out.Fail(ExitCommandError, CodeConfig, "invalid configuration", err)
		}
		cfg = loaded
	}

	g, err := api.NewWithConfig(cfg, engine.WithLogger(logger))
	if err != nil {
		return nil, out.Fail(ExitCommandError, CodeConfig, "invalid configuration", err)
	}

	st, err := store.Open(opts.Database, opts.StoreOptions...)
	if err != nil {
		return nil, out.Fail(ExitCommandError, CodeStore, "failed to open database", err)
	}

	logger.Debug("session opened", "db", opts.Database, "slot", opts.Slot)
	return &session{opts: opts, store: st, game: g, logger: logger, out: out}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing database", "error", err)
	}
}

// engine returns the typed engine behind the game.
func (s *session) engine() *engine.Engine {
	return s.game.Engine()
}

// resume loads the slot's latest save and catches the simulation up to
// the host time. It returns the number of steps integrated.
func (s *session) resume(ctx context.Context) (int, error) {
	save, err := s.store.LatestSave(ctx, s.opts.Slot)
	if errors.Is(err, store.ErrNotFound) {
		msg := fmt.Sprintf("slot %s has no save (start one with: idlecore new)", s.opts.Slot)
		return 0, s.out.Fail(ExitCommandError, CodeNoSave, msg, nil)
	}
	if err != nil {
		return 0, s.out.Fail(ExitCommandError, CodeStore, "failed to read save", err)
	}

	if err := s.engine().Load(save.Blob); err != nil {
		return 0, s.out.Fail(ExitFailure, CodeInvalidSave, "stored save is unreadable", err)
	}
	// Drop the "Game loaded" notice.
	s.drain()

	steps := s.engine().Tick(s.opts.now())
	s.logger.Debug("resumed", "slot", s.opts.Slot, "seq", save.Seq, "steps", steps)
	return steps, nil
}

// commit writes the current state as the slot's newest save.
func (s *session) commit(ctx context.Context) (store.Save, error) {
	blob := s.game.Save()
	if blob == "" {
		return store.Save{}, s.out.Fail(ExitFailure, CodeInvalidSave, "failed to encode game", nil)
	}
	save, err := s.store.WriteSave(ctx, s.opts.Slot, blob)
	if err != nil {
		return store.Save{}, s.out.Fail(ExitCommandError, CodeStore, "failed to write save", err)
	}
	return save, nil
}

// drain pops every pending log message.
func (s *session) drain() []string {
	messages := []string{}
	for {
		msg, ok := s.game.PopLog()
		if !ok {
			return messages
		}
		messages = append(messages, msg)
	}
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
