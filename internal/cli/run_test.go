package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannycalleri/usergraph/internal/harness"
)

const sampleScenario = `name: sample
steps:
  - op: create
    name: Ada
  - op: create
    name: Grace
    friends: [1]
assertions:
  - type: symmetric
  - type: user_count
    count: 2
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunCommand_TextOutput(t *testing.T) {
	path := writeScenario(t, sampleScenario)

	out, err := execute(t, "run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS sample")
	assert.Contains(t, out, `create "Ada" -> ok (1 attempts)`)
	assert.Contains(t, out, "#2 Grace friends=[1]")
}

func TestRunCommand_JSONOutput(t *testing.T) {
	path := writeScenario(t, sampleScenario)

	out, err := execute(t, "--format", "json", "run", path)
	require.NoError(t, err)

	var snap harness.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, "sample", snap.ScenarioName)
	assert.True(t, snap.Result.Pass)
	require.Len(t, snap.Result.Final, 2)
}

func TestRunCommand_FailingScenarioExitsNonZero(t *testing.T) {
	path := writeScenario(t, `name: failing
steps:
  - op: create
    name: Ada
    expect: duplicate_name
`)

	out, err := execute(t, "run", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "FAIL failing")
}

func TestRunCommand_GhostEditFailsWithoutCrashing(t *testing.T) {
	// Schema-valid scenario targeting a user that never existed: the command
	// must report a scenario failure, not die on a reducer panic.
	path := writeScenario(t, `name: ghost
steps:
  - op: edit
    id: 99
    name: Ghost
`)

	var out string
	var err error
	require.NotPanics(t, func() {
		out, err = execute(t, "run", path)
	})
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "FAIL ghost")
	assert.Contains(t, out, "edit targets unknown user 99")
}

func TestRunCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "run", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
