// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"context"

	"github.com/born-ml/solvers/internal/adam"
	"github.com/born-ml/solvers/internal/parallel"
)

// Args are forwarded verbatim to both callbacks on every call.
type Args = adam.Args

// ObjectiveFunc returns the scalar objective at x.
type ObjectiveFunc = adam.ObjectiveFunc

// GradientFunc returns the gradient (or an estimate of it) at x.
type GradientFunc = adam.GradientFunc

// Result is the immutable outcome of a run.
type Result = adam.Result

// Report is a Result together with the terminal state, warnings and run ID.
type Report = adam.Report

// Warning is a non-fatal issue found during validation.
type Warning = adam.Warning

// State is the lifecycle state of a run.
type State = adam.State

// Terminal states.
const (
	StateConverged      = adam.StateConverged
	StateMaxIterReached = adam.StateMaxIterReached
)

// Errors

// InvalidArgumentError reports an argument with an unacceptable value.
type InvalidArgumentError = adam.InvalidArgumentError

// InvalidTypeError reports an argument of the wrong kind.
type InvalidTypeError = adam.InvalidTypeError

// Adam (Adaptive Moment Estimation)

// AdamConfig contains the Adam hyperparameters.
type AdamConfig = adam.Config

// DefaultAdamConfig returns the recommended Adam hyperparameters.
func DefaultAdamConfig() AdamConfig {
	return adam.DefaultConfig()
}

// Option customizes a run.
type Option = adam.Option

// Recorder observes completed runs and rejected inputs.
type Recorder = adam.Recorder

// Run options.

var (
	WithLogger   = adam.WithLogger
	WithRecorder = adam.WithRecorder
)

// Adam minimizes obj from x0 and returns the final Result.
//
// Example:
//
//	cfg := optim.DefaultAdamConfig()
//	cfg.MaxIter = 1000
//	res, err := optim.Adam(obj, grad, [][]float64{{1, 2}, {3, 4}}, optim.Args{}, cfg)
func Adam(obj ObjectiveFunc, grad GradientFunc, x0 any, args Args, cfg AdamConfig, opts ...Option) (*Result, error) {
	return adam.Optimize(obj, grad, x0, args, cfg, opts...)
}

// MinimizeAdam is Adam, also reporting how the run ended.
func MinimizeAdam(obj ObjectiveFunc, grad GradientFunc, x0 any, args Args, cfg AdamConfig, opts ...Option) (*Report, error) {
	return adam.Minimize(obj, grad, x0, args, cfg, opts...)
}

// NewResult validates its arguments and builds a Result.
var NewResult = adam.NewResult

// Batch execution

// Problem bundles everything one run needs.
type Problem = adam.Problem

// WorkerConfig controls parallel execution of RunAll.
type WorkerConfig = parallel.Config

// DefaultWorkerConfig uses one worker per CPU.
func DefaultWorkerConfig() WorkerConfig {
	return parallel.DefaultConfig()
}

// RunAll minimizes each problem independently on a bounded worker pool.
// Reports are index-aligned with problems.
func RunAll(ctx context.Context, problems []Problem, workers WorkerConfig, opts ...Option) ([]*Report, error) {
	return adam.RunAll(ctx, problems, workers, opts...)
}
