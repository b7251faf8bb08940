package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := RootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "solvers "+version+"\n", out)
}

func TestMinimize_JSON(t *testing.T) {
	out, err := run(t, "minimize", "--problem", "booth", "--x0", "0,0",
		"--alpha", "0.1", "--max-iter", "2000", "--n-iter-no-change", "0", "-o", "json")
	require.NoError(t, err)

	var s summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "booth", s.Problem)
	assert.Equal(t, "max_iter_reached", s.State)
	assert.Equal(t, 2000, s.NIter)
	assert.Equal(t, 2001, s.NObjEval)
	require.Len(t, s.X, 2)
	assert.InDelta(t, 1, s.X[0], 1e-6)
	assert.InDelta(t, 3, s.X[1], 1e-6)
	assert.NotEmpty(t, s.RunID)
}

func TestMinimize_YAMLWithWarning(t *testing.T) {
	out, err := run(t, "minimize", "--x0", "1", "--x0", "2", "--eps", "0.5", "--output", "yaml")
	require.NoError(t, err)

	var s summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &s))
	assert.Equal(t, "sphere", s.Problem)
	require.Len(t, s.Warnings, 1)
	assert.Contains(t, s.Warnings[0], "eps exceeds 1e-1")
}

func TestMinimize_Text(t *testing.T) {
	out, err := run(t, "minimize", "--x0", "1", "--max-iter", "3", "--n-iter-no-change", "0")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Result(x=["), out)
	assert.Contains(t, out, "n_iter=3)")
	assert.Contains(t, out, "state: max_iter_reached")
}

func TestMinimize_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solvers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("adam:\n  max_iter: 4\n  n_iter_no_change: 0\n"), 0o600))

	out, err := run(t, "--config", path, "minimize", "--x0", "1", "-o", "json")
	require.NoError(t, err)
	var s summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 4, s.NIter)
}

func TestMinimize_Errors(t *testing.T) {
	tests := map[string]struct {
		args []string
		want string
	}{
		"missing x0":      {args: []string{"minimize"}, want: `"x0" not set`},
		"unknown problem": {args: []string{"minimize", "--problem", "nope", "--x0", "1"}, want: `unknown problem "nope"`},
		"wrong dimension": {args: []string{"minimize", "--problem", "booth", "--x0", "1"}, want: "booth is defined in 2 dimensions"},
		"invalid alpha":   {args: []string{"minimize", "--x0", "1", "--alpha", "0"}, want: "alpha must be positive"},
		"unknown output":  {args: []string{"minimize", "--x0", "1", "-o", "xml"}, want: `unknown output format "xml"`},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestBatch(t *testing.T) {
	out, err := run(t, "batch", "--problem", "sphere", "--dim", "3", "--starts", "4",
		"--workers", "2", "--parallel", "--alpha", "0.1", "--metrics")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "RUN"), out)
	for i := 1; i <= 4; i++ {
		assert.True(t, strings.HasPrefix(lines[i], string(rune('0'+i-1))), "line %d: %q", i, lines[i])
	}
	assert.Contains(t, out, "solvers_adam_iterations_count 4")
}

func TestBatch_FixedDimension(t *testing.T) {
	_, err := run(t, "batch", "--problem", "booth", "--dim", "3")
	assert.ErrorContains(t, err, "booth is defined in 2 dimensions")

	out, err := run(t, "batch", "--problem", "booth", "--starts", "2", "--parallel=false")
	require.NoError(t, err)
	assert.Contains(t, out, "RUN")
}
