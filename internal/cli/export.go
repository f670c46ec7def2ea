package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/idlecore/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print or write the slot's latest save blob",
		Long: `Export the latest save of the slot as an opaque text blob.

The blob can be moved to another database or machine with import.

Examples:
  idlecore export > backup.txt
  idlecore export --out backup.txt`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "out", "o", "", "write the blob to this file instead of stdout")
	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	out := opts.formatter(cmd)

	st, err := openStore(opts.RootOptions, out)
	if err != nil {
		return err
	}
	defer st.Close()

	save, err := st.LatestSave(ctx, opts.Slot)
	if errors.Is(err, store.ErrNotFound) {
		return out.Fail(ExitCommandError, CodeNoSave, fmt.Sprintf("slot %s has no save", opts.Slot), nil)
	}
	if err != nil {
		return out.Fail(ExitCommandError, CodeStore, "failed to read save", err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(save.Blob+"\n"), 0644); err != nil {
			return out.Fail(ExitCommandError, CodeStore, "failed to write export", err)
		}
	}

	if out.JSON() {
		return out.Success(map[string]any{
			"slot":     opts.Slot,
			"seq":      save.Seq,
			"checksum": save.Checksum,
			"blob":     save.Blob,
		})
	}
	if opts.Output != "" {
		return out.Success(fmt.Sprintf("Exported slot %s (checksum %s) to %s", opts.Slot, shortChecksum(save.Checksum), opts.Output))
	}
	return out.Success(save.Blob)
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Store a save blob as the slot's latest save",
		Long: `Import a blob produced by export (or by any host of the engine) into
the slot. Use - to read from stdin. Blobs that fail to decode are refused.

Examples:
  idlecore import backup.txt
  idlecore import --slot restored - < backup.txt`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, cmd, args[0])
		},
	}
}

func runImport(opts *RootOptions, cmd *cobra.Command, path string) error {
	ctx := commandContext(cmd)
	out := opts.formatter(cmd)

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return out.Fail(ExitCommandError, CodeStore, "failed to read blob", err)
	}

	st, err := openStore(opts, out)
	if err != nil {
		return err
	}
	defer st.Close()

	save, err := st.WriteSave(ctx, opts.Slot, strings.TrimSpace(string(data)))
	if errors.Is(err, store.ErrInvalidBlob) {
		return out.Fail(ExitFailure, CodeInvalidSave, "invalid save", err)
	}
	if err != nil {
		return out.Fail(ExitCommandError, CodeStore, "failed to write save", err)
	}

	if out.JSON() {
		return out.Success(map[string]any{
			"slot":     opts.Slot,
			"seq":      save.Seq,
			"checksum": save.Checksum,
		})
	}
	return out.Success(fmt.Sprintf("Imported into slot %s (checksum %s)", opts.Slot, shortChecksum(save.Checksum)))
}

func shortChecksum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
