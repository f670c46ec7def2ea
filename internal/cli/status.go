package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/roach88/idlecore/internal/api"
	"github.com/roach88/idlecore/internal/engine"
	"github.com/roach88/idlecore/internal/game"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show resources, buildings and progress",
		Long: `Catch the slot up to now and show its state.

Time passed since the last command is integrated first, so the numbers
include production earned while away.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(rootOpts, cmd)
		},
	}
}

func runStatus(opts *RootOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	steps, err := s.resume(ctx)
	if err != nil {
		return err
	}
	messages := s.drain()
	if _, err := s.commit(ctx); err != nil {
		return err
	}

	if s.out.JSON() {
		return s.out.Success(map[string]any{
			"slot":     opts.Slot,
			"steps":    steps,
			"messages": messages,
			"state":    api.SnapshotMap(s.engine().Status()),
		})
	}
	return renderStatus(cmd.OutOrStdout(), opts.Slot, s.engine(), messages)
}

// renderStatus prints the human-readable status view.
func renderStatus(w io.Writer, slot string, eng *engine.Engine, messages []string) error {
	title := color.New(color.FgCyan, color.Bold)
	news := color.New(color.FgYellow)
	st := eng.Status()

	title.Fprintf(w, "Slot %s\n", slot)
	for _, msg := range messages {
		news.Fprintf(w, "* %s\n", msg)
	}

	var resources [][]string
	for _, r := range game.Resources() {
		if st.Resources[r] == 0 && st.Rates[r] == 0 {
			continue
		}
		resources = append(resources, []string{r.String(), fmt.Sprintf("%.2f", st.Resources[r]), fmt.Sprintf("%+.2f", st.Rates[r])})
	}
	if err := renderTable(w, []string{"Resource", "Amount", "Rate/s"}, resources); err != nil {
		return err
	}

	var buildings [][]string
	for _, b := range game.Buildings() {
		if !eng.Unlocked(b) {
			continue
		}
		buildings = append(buildings, []string{b.String(), fmt.Sprint(st.Buildings[b]), formatBundle(st.NextCosts[b])})
	}
	if err := renderTable(w, []string{"Building", "Owned", "Next cost"}, buildings); err != nil {
		return err
	}

	fmt.Fprintf(w, "Techs: %s\n", joinOrNone(st.Techs))
	fmt.Fprintf(w, "Achievements: %s\n", joinOrNone(st.Achievements))
	fmt.Fprintf(w, "Prestige: %g points (x%.2f), %d resets, %g available\n",
		st.PrestigePoints, st.PrestigeMultiplier, st.PrestigeResets, st.PrestigePreview)
	fmt.Fprintf(w, "Tick rate: %gs\n", st.TickRate)
	return nil
}

// formatBundle renders non-zero amounts as "wood 11.5, stone 5".
func formatBundle(b game.Bundle) string {
	var parts []string
	for _, r := range game.Resources() {
		if v := b.Get(r); v != 0 {
			parts = append(parts, fmt.Sprintf("%s %g", r, v))
		}
	}
	return strings.Join(parts, ", ")
}

func joinOrNone[T fmt.Stringer](items []T) string {
	if len(items) == 0 {
		return "none"
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.String()
	}
	return strings.Join(names, ", ")
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewTable(w, tablewriter.WithHeader(header))
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
