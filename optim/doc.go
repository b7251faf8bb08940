// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides first-order optimizers for caller-supplied
// objectives.
//
// # Overview
//
// This package contains:
//   - Adam: Adaptive Moment Estimation with bias correction and early stopping
//   - Result: the immutable outcome of a run
//   - RunAll: many independent runs on a bounded worker pool
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/solvers/optim"
//	    "github.com/born-ml/solvers/tensor"
//	)
//
//	func main() {
//	    obj := func(x *tensor.Dense, _ optim.Args) (float64, error) {
//	        return floats.Dot(x.Data(), x.Data()), nil
//	    }
//	    grad := func(x *tensor.Dense, _ optim.Args) (*tensor.Dense, error) {
//	        g := tensor.ZerosLike(x)
//	        floats.ScaleTo(g.Data(), 2, x.Data())
//	        return g, nil
//	    }
//
//	    cfg := optim.DefaultAdamConfig()
//	    cfg.Alpha = 0.1
//	    res, err := optim.Adam(obj, grad, []float64{10, -4}, optim.Args{}, cfg)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(res)
//	}
//
// # Errors
//
// Invalid inputs are rejected before either callback runs:
//
//	_, err := optim.Adam(obj, grad, []float64{1}, optim.Args{}, optim.AdamConfig{})
//	var argErr *optim.InvalidArgumentError
//	if errors.As(err, &argErr) {
//	    fmt.Println(argErr.Name) // max_iter
//	}
//
// Errors returned by the callbacks abort the run and are returned unchanged.
//
// # Stochastic Gradients
//
// The gradient callback may return a minibatch estimate. Convergence is
// judged on the objective callback, which should stay deterministic:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	grad := func(x *tensor.Dense, args optim.Args) (*tensor.Dense, error) {
//	    batch := rng.Perm(nSamples)[:32]
//	    return minibatchGradient(x, batch), nil
//	}
package optim
