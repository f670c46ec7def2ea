package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/idlecore/internal/store"
)

// NewSlotsCommand creates the slots command and its subcommands.
func NewSlotsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List save slots",
		Long: `List the save slots in the database, oldest first.

Examples:
  idlecore slots
  idlecore slots history main --limit 5
  idlecore slots delete old`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSlotsList(rootOpts, cmd)
		},
	}

	var limit int
	history := &cobra.Command{
		Use:           "history <slot>",
		Short:         "List a slot's saves, newest first",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSlotsHistory(rootOpts, cmd, args[0], limit)
		},
	}
	history.Flags().IntVar(&limit, "limit", 10, "maximum saves to list (0 = all)")

	del := &cobra.Command{
		Use:           "delete <slot>",
		Short:         "Delete a slot and its history",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSlotsDelete(rootOpts, cmd, args[0])
		},
	}

	cmd.AddCommand(history, del)
	return cmd
}

func openStore(opts *RootOptions, out *OutputFormatter) (*store.Store, error) {
	st, err := store.Open(opts.Database, opts.StoreOptions...)
	if err != nil {
		return nil, out.Fail(ExitCommandError, CodeStore, "failed to open database", err)
	}
	return st, nil
}

func runSlotsList(opts *RootOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	st, err := openStore(opts, out)
	if err != nil {
		return err
	}
	defer st.Close()

	slots, err := st.ListSlots(commandContext(cmd))
	if err != nil {
		return out.Fail(ExitCommandError, CodeStore, "failed to list slots", err)
	}

	if out.JSON() {
		rows := make([]map[string]any, 0, len(slots))
		for _, sl := range slots {
			rows = append(rows, map[string]any{
				"id":          sl.ID,
				"name":        sl.Name,
				"saves":       sl.Saves,
				"created_seq": sl.CreatedSeq,
				"updated_seq": sl.UpdatedSeq,
			})
		}
		return out.Success(rows)
	}

	w := cmd.OutOrStdout()
	if len(slots) == 0 {
		fmt.Fprintln(w, "No slots.")
		return nil
	}
	rows := make([][]string, 0, len(slots))
	for _, sl := range slots {
		rows = append(rows, []string{sl.Name, fmt.Sprint(sl.Saves), fmt.Sprint(sl.UpdatedSeq), sl.ID})
	}
	return renderTable(w, []string{"Slot", "Saves", "Updated", "ID"}, rows)
}

func runSlotsHistory(opts *RootOptions, cmd *cobra.Command, name string, limit int) error {
	out := opts.formatter(cmd)
	st, err := openStore(opts, out)
	if err != nil {
		return err
	}
	defer st.Close()

	saves, err := st.SaveHistory(commandContext(cmd), name, limit)
	if errors.Is(err, store.ErrNotFound) {
		return out.Fail(ExitCommandError, CodeNoSave, fmt.Sprintf("slot %s not found", name), nil)
	}
	if err != nil {
		return out.Fail(ExitCommandError, CodeStore, "failed to read history", err)
	}

	if out.JSON() {
		rows := make([]map[string]any, 0, len(saves))
		for _, sv := range saves {
			rows = append(rows, map[string]any{"seq": sv.Seq, "checksum": sv.Checksum})
		}
		return out.Success(rows)
	}

	rows := make([][]string, 0, len(saves))
	for _, sv := range saves {
		rows = append(rows, []string{fmt.Sprint(sv.Seq), sv.Checksum})
	}
	return renderTable(cmd.OutOrStdout(), []string{"Seq", "Checksum"}, rows)
}

func runSlotsDelete(opts *RootOptions, cmd *cobra.Command, name string) error {
	out := opts.formatter(cmd)
	st, err := openStore(opts, out)
	if err != nil {
		return err
	}
	defer st.Close()

	err = st.DeleteSlot(commandContext(cmd), name)
	if errors.Is(err, store.ErrNotFound) {
		return out.Fail(ExitCommandError, CodeNoSave, fmt.Sprintf("slot %s not found", name), nil)
	}
	if err != nil {
		return out.Fail(ExitCommandError, CodeStore, "failed to delete slot", err)
	}
	if out.JSON() {
		return out.Success(map[string]any{"deleted": name})
	}
	return out.Success(fmt.Sprintf("Deleted slot %s", name))
}
