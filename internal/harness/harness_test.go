package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios_Golden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no scenario files found")

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "scenario failed: %v", result.Errors)
		})
	}
}

func TestRun_ExpectMismatchFailsResult(t *testing.T) {
	scenario := &Scenario{
		Name: "mismatch",
		Steps: []Step{
			{Op: "create", Name: "Ada", Expect: "duplicate_name"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `expected outcome "duplicate_name"`)
}

func TestRun_FailedOperationDoesNotDispatch(t *testing.T) {
	scenario := &Scenario{
		Name: "no-dispatch",
		Steps: []Step{
			{Op: "create", Name: "Ada", TransientFailures: 2, Expect: "unavailable"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	require.Len(t, result.Trace, 1, "no dispatch event after a failed operation")
	assert.Empty(t, result.Final)
}

func TestRun_AsymmetricSeedRejected(t *testing.T) {
	scenario := &Scenario{
		Name: "bad-seed",
		Seed: []SeedUser{
			{ID: 1, Name: "Ada", Friends: []int{2}},
			{ID: 2, Name: "Grace"},
		},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid seed")
}

func TestRun_EditOfUnknownUserIsAScenarioError(t *testing.T) {
	// Schema-valid but semantically broken: the target id never existed.
	// This must surface as a scenario error, never as a reducer panic.
	scenario := &Scenario{
		Name: "ghost-edit",
		Steps: []Step{
			{Op: "edit", ID: 99, Name: "Ghost"},
		},
	}

	var result *Result
	var err error
	require.NotPanics(t, func() {
		result, err = Run(scenario)
	})
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "edit targets unknown user 99")
	assert.Empty(t, result.Trace, "a rejected step commits nothing")
}

func TestRun_UnknownFriendReferenceIsAScenarioError(t *testing.T) {
	tests := []struct {
		name string
		step Step
	}{
		{"create with unknown friend", Step{Op: "create", Name: "Ada", Friends: []int{99}}},
		{"edit with unknown friend", Step{Op: "edit", ID: 1, Name: "Ada", Friends: []int{99}}},
		{"edit befriending itself", Step{Op: "edit", ID: 1, Name: "Ada", Friends: []int{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := &Scenario{
				Name:  "bad-ref",
				Seed:  []SeedUser{{ID: 1, Name: "Ada"}},
				Steps: []Step{tt.step},
			}

			var result *Result
			var err error
			require.NotPanics(t, func() {
				result, err = Run(scenario)
			})
			require.NoError(t, err)
			assert.False(t, result.Pass)
			require.NotEmpty(t, result.Errors)
			assert.Len(t, result.Final, 1, "the seed state stays untouched")
		})
	}
}

func TestRun_ValidReferencesAfterEarlierSteps(t *testing.T) {
	// A step may reference a user created by a previous step: the check runs
	// against the snapshot current at that step, not the seed.
	scenario := &Scenario{
		Name: "chained-refs",
		Steps: []Step{
			{Op: "create", Name: "Ada"},
			{Op: "create", Name: "Grace", Friends: []int{1}},
			{Op: "edit", ID: 2, Name: "Grace", Friends: []int{}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_AssertionViolationsReported(t *testing.T) {
	scenario := &Scenario{
		Name: "assertion-miss",
		Steps: []Step{
			{Op: "create", Name: "Ada"},
		},
		Assertions: []Assertion{
			{Type: "user_count", Count: 5},
			{Type: "friends_of", ID: 9},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 2)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
