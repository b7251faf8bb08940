package adam_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/solvers/internal/adam"
	"github.com/born-ml/solvers/internal/parallel"
	"github.com/born-ml/solvers/internal/tensor"
)

func squareProblems(starts ...float64) []adam.Problem {
	cfg := adam.DefaultConfig()
	cfg.Alpha = 0.1
	cfg.MaxIter = 1000
	problems := make([]adam.Problem, len(starts))
	for i, s := range starts {
		p := squareProblem()
		problems[i] = adam.Problem{
			Objective: p.Objective,
			Gradient:  p.Gradient,
			X0:        []float64{s, -s},
			Config:    cfg,
		}
	}
	return problems
}

func TestRunAll(t *testing.T) {
	for name, workers := range map[string]parallel.Config{
		"sequential": {Enabled: false},
		"parallel":   {Enabled: true, NumWorkers: 3},
	} {
		t.Run(name, func(t *testing.T) {
			starts := []float64{1, 2, 4, 8, 16}
			problems := squareProblems(starts...)
			reports, err := adam.RunAll(context.Background(), problems, workers, quietLogger())
			require.NoError(t, err)
			require.Len(t, reports, len(problems))

			ids := map[string]bool{}
			for i, r := range reports {
				require.NotNil(t, r, "report %d", i)
				assert.Equal(t, adam.StateConverged, r.State)
				// Index alignment: each report improved on its own start.
				assert.Less(t, r.Result.Fx(), 2*starts[i]*starts[i]/10, "report %d", i)
				assert.NotEmpty(t, r.RunID)
				ids[r.RunID] = true
			}
			assert.Len(t, ids, len(problems), "run IDs must be unique")

			// A larger start needs at least as many iterations on this objective.
			assert.LessOrEqual(t, reports[0].Result.NIter(), reports[4].Result.NIter())
		})
	}
}

func TestRunAll_ReportsFailingProblem(t *testing.T) {
	boom := errors.New("boom")
	problems := squareProblems(1, 2, 3)
	problems[1].Gradient = func(*tensor.Dense, adam.Args) (*tensor.Dense, error) {
		return nil, boom
	}

	reports, err := adam.RunAll(context.Background(), problems, parallel.Config{Enabled: false}, quietLogger())
	require.Error(t, err)
	assert.Nil(t, reports)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "problem 1")
}

func TestRunAll_InvalidProblem(t *testing.T) {
	problems := squareProblems(1, 2)
	problems[0].Config.MaxIter = 0

	_, err := adam.RunAll(context.Background(), problems, parallel.Config{Enabled: true, NumWorkers: 2}, quietLogger())
	require.Error(t, err)
	assert.Equal(t, "max_iter", adam.ArgumentName(err))
	assert.Contains(t, err.Error(), "problem 0")
}

func TestRunAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adam.RunAll(ctx, squareProblems(1, 2), parallel.DefaultConfig(), quietLogger())
	assert.ErrorIs(t, err, context.Canceled)
}
