package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioDir = "../harness/testdata/scenarios"

func writeScenario(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

const passingScenario = `
name: gather
description: "gathering adds one wood"
steps:
  - op: gather
    arg: wood
    expect: true
assertions:
  - type: resource
    id: wood
    equals: 1
`

const failingScenario = `
name: wishful
description: "expects a farm from nothing"
steps:
  - op: build
    arg: farm
    expect: true
assertions:
  - type: count
    id: farm
    equals: 1
`

func TestTestCommand_BundledScenariosPass(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "test", scenarioDir)
	assert.Contains(t, out, "✓ first_farm")
	assert.Contains(t, out, "✓ research")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommand_Filter(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "test", scenarioDir, "--filter", "prest*", "--format", "json")

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.Total)
	assert.Equal(t, "prestige", resp.Data.Scenarios[0].Name)
}

func TestTestCommand_FailureExitCode(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scenarios")
	writeScenario(t, dir, "ok.yaml", passingScenario)
	writeScenario(t, dir, "bad.yaml", failingScenario)

	env := newTestEnv(t)
	out, err := env.run("test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wishful")
	assert.Contains(t, out, "✓ gather")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestTestCommand_UpdateThenCompare(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "scenarios")
	writeScenario(t, dir, "gather.yaml", passingScenario)

	env := newTestEnv(t)
	out := env.mustRun(t, "test", dir, "--update")
	assert.Contains(t, out, "✓ gather (golden updated)")

	golden := filepath.Join(root, "golden", "gather.golden")
	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario":"gather"`)

	env.mustRun(t, "test", dir)

	require.NoError(t, os.WriteFile(golden, []byte(`{"scenario":"gather","trace":[]}`), 0644))
	out, err = env.run("test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "does not match golden file")
}

func TestTestCommand_MissingPath(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("test", filepath.Join(t.TempDir(), "nowhere"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommand_Empty(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "test", t.TempDir())
	assert.Contains(t, out, "No scenarios found.")
}
