package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/roach88/idlecore/internal/store"
	"github.com/roach88/idlecore/internal/testutil"
)

// testEnv runs commands against one temp database with a manual clock.
type testEnv struct {
	db    string
	clock *testutil.ManualClock
	opts  *RootOptions
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	color.NoColor = true

	clock := testutil.NewManualClock(1_700_000_000)
	db := filepath.Join(t.TempDir(), "game.db")
	return &testEnv{
		db:    db,
		clock: clock,
		opts: &RootOptions{
			Now:          clock.Now,
			LogWriter:    io.Discard,
			StoreOptions: []store.Option{store.WithSlotIDGenerator(testutil.NewFixedSlotIDGenerator("slot"))},
		},
	}
}

// run executes the root command with args plus --db.
func (e *testEnv) run(args ...string) (string, error) {
	return e.runWithInput("", args...)
}

func (e *testEnv) runWithInput(stdin string, args ...string) (string, error) {
	cmd := newRootCommand(e.opts)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--db", e.db))
	err := cmd.Execute()
	return buf.String(), err
}

// mustRun fails the test if the command fails.
func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(args...)
	require.NoError(t, err, "output: %s", out)
	return out
}

// decodeData parses a JSON CLIResponse and returns its data.
func decodeData(t *testing.T, out string) map[string]any {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	require.Equal(t, "ok", resp.Status)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "data is %T", resp.Data)
	return data
}
