package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/solvers/internal/adam"
	"github.com/born-ml/solvers/internal/tensor"
)

func zero(*tensor.Dense, adam.Args) (float64, error) { return 0, nil }

func zeroGrad(x *tensor.Dense, _ adam.Args) (*tensor.Dense, error) {
	return tensor.ZerosLike(x), nil
}

func TestRecorder_CountsRuns(t *testing.T) {
	r := NewRecorder()
	logger, _ := test.NewNullLogger()
	opts := []adam.Option{adam.WithRecorder(r), adam.WithLogger(logger)}

	cfg := adam.DefaultConfig()
	cfg.NIterNoChange = 3
	_, err := adam.Optimize(zero, zeroGrad, []float64{1, 2}, adam.Args{}, cfg, opts...)
	require.NoError(t, err)
	_, err = adam.Optimize(zero, zeroGrad, []float64{1, 2}, adam.Args{}, cfg, opts...)
	require.NoError(t, err)

	cfg.NIterNoChange = 0
	cfg.MaxIter = 5
	_, err = adam.Optimize(zero, zeroGrad, []float64{1, 2}, adam.Args{}, cfg, opts...)
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.runs.WithLabelValues("converged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("max_iter_reached")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.runs))
}

func TestRecorder_CountsValidationFailures(t *testing.T) {
	r := NewRecorder()
	logger, _ := test.NewNullLogger()

	cfg := adam.DefaultConfig()
	cfg.Alpha = -1
	_, err := adam.Optimize(zero, zeroGrad, []float64{1}, adam.Args{}, cfg, adam.WithRecorder(r), adam.WithLogger(logger))
	require.Error(t, err)
	_, err = adam.Optimize(nil, zeroGrad, []float64{1}, adam.Args{}, adam.DefaultConfig(), adam.WithRecorder(r), adam.WithLogger(logger))
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.validationFailures.WithLabelValues("alpha")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.validationFailures.WithLabelValues("obj")))
	assert.Equal(t, 0, testutil.CollectAndCount(r.runs))
}

func TestWriteText(t *testing.T) {
	r := NewRecorder()
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(r))

	r.RecordValidationFailure("")
	res, err := adam.NewResult(tensor.Vector(1), 0, tensor.Vector(0), 5, 4, 4)
	require.NoError(t, err)
	r.RecordRun(adam.StateConverged, res)

	var sb strings.Builder
	require.NoError(t, WriteText(&sb, reg))
	out := sb.String()
	assert.Contains(t, out, `solvers_adam_runs_total{state="converged"} 1`)
	assert.Contains(t, out, `solvers_adam_validation_failures_total{param="unknown"} 1`)
	assert.Contains(t, out, "solvers_adam_iterations_count 1")
	assert.Contains(t, out, "solvers_adam_objective_evaluations_sum 5")
}
