// Package adam implements Kingma and Ba's Adam optimizer for caller-supplied
// objectives.
//
// The solver is model-agnostic: it sees a parameter array, an objective
// callback returning a scalar, and a gradient callback returning an array of
// the same shape. Whether the gradient is computed over the full data or a
// minibatch is the caller's business.
//
// Update rule, applied elementwise at iteration t:
//
//	m = beta1 * m + (1-beta1) * g
//	v = beta2 * v + (1-beta2) * g²
//	x = x - alpha * (m / (1-beta1^t)) / (sqrt(v / (1-beta2^t)) + eps)
//
// After each update the objective is evaluated and compared with the best
// value seen so far. The run converges once NIterNoChange consecutive
// iterations fail to improve on it by more than Tol, and stops regardless
// after MaxIter iterations.
//
// Convergence is tracked on the objective callback only, so it has to be
// deterministic enough for "no improvement" to mean something. With a
// minibatch gradient, evaluate the objective on the full data.
//
// Example:
//
//	obj := func(x *tensor.Dense, _ adam.Args) (float64, error) {
//	    return floats.Dot(x.Data(), x.Data()), nil
//	}
//	grad := func(x *tensor.Dense, _ adam.Args) (*tensor.Dense, error) {
//	    g := tensor.ZerosLike(x)
//	    floats.ScaleTo(g.Data(), 2, x.Data())
//	    return g, nil
//	}
//	cfg := adam.DefaultConfig()
//	cfg.Alpha = 0.1
//	res, err := adam.Optimize(obj, grad, []float64{10}, adam.Args{}, cfg)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
package adam

import (
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/solvers/internal/tensor"
)

// Args are forwarded verbatim to both callbacks on every call.
type Args struct {
	Positional []any
	Keyword    map[string]any
}

// ObjectiveFunc returns the scalar objective at x.
//
// x is the solver's live parameter array and must not be modified or
// retained.
type ObjectiveFunc func(x *tensor.Dense, args Args) (float64, error)

// GradientFunc returns the gradient (or a stochastic estimate of it) at x.
// The returned array must have x's shape; the solver only reads it.
type GradientFunc func(x *tensor.Dense, args Args) (*tensor.Dense, error)

// Report is a Result together with how the run ended.
type Report struct {
	Result   *Result
	State    State
	Warnings []Warning
	RunID    string
}

// Optimize minimizes obj starting from x0 and returns the final Result.
//
// x0 may be a *tensor.Dense or a (nested) slice of Go integers or floats;
// see Validate for the checks applied before the first evaluation. Errors
// returned by obj or grad abort the run and are returned unchanged.
func Optimize(obj ObjectiveFunc, grad GradientFunc, x0 any, args Args, cfg Config, opts ...Option) (*Result, error) {
	report, err := Minimize(obj, grad, x0, args, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return report.Result, nil
}

// Minimize is Optimize, also reporting the terminal state and warnings.
func Minimize(obj ObjectiveFunc, grad GradientFunc, x0 any, args Args, cfg Config, opts ...Option) (*Report, error) {
	o := newOptions(opts)

	x, warnings, err := Validate(obj, grad, x0, cfg)
	if err != nil {
		o.recorder.RecordValidationFailure(ArgumentName(err))
		return nil, err
	}

	runID := uuid.NewString()
	log := o.logger.WithField("run_id", runID)
	for _, w := range warnings {
		log.WithField("param", w.Param).Warn(w.Message)
	}

	s := newSolver(obj, grad, x, args, cfg)
	if err := s.init(); err != nil {
		log.WithError(err).Debug("initial objective evaluation failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"size": x.Len(),
		"fx0":  s.bestFx,
	}).Debug("starting adam")

	for !s.state.Terminal() {
		if err := s.step(); err != nil {
			log.WithError(err).WithField("n_iter", s.t).Debug("adam run aborted")
			return nil, err
		}
	}

	result, err := NewResult(s.x, s.fx, s.g, s.nObjEval, s.nGradEval, s.t)
	if err != nil {
		return nil, err
	}
	o.recorder.RecordRun(s.state, result)
	log.WithFields(logrus.Fields{
		"state":  s.state,
		"n_iter": s.t,
		"fx":     s.fx,
	}).Debug("adam finished")

	return &Report{
		Result:   result,
		State:    s.state,
		Warnings: warnings,
		RunID:    runID,
	}, nil
}

// solver holds the per-run state. Nothing in it is shared between runs.
type solver struct {
	obj  ObjectiveFunc
	grad GradientFunc
	args Args
	cfg  Config

	x   *tensor.Dense // Parameters, updated in place
	g   *tensor.Dense // Last gradient
	m   *mat.VecDense // First moment estimate
	v   *mat.VecDense // Second raw moment estimate
	gSq *mat.VecDense // Scratch for g²
	t   int           // Iterations completed
	fx  float64       // Objective at x

	bestFx    float64 // Lowest objective that counted as an improvement
	noChange  int     // Consecutive iterations without improvement
	nObjEval  int
	nGradEval int
	state     State
}

func newSolver(obj ObjectiveFunc, grad GradientFunc, x *tensor.Dense, args Args, cfg Config) *solver {
	n := x.Len()
	return &solver{
		obj:   obj,
		grad:  grad,
		args:  args,
		cfg:   cfg,
		x:     x,
		m:     mat.NewVecDense(n, nil),
		v:     mat.NewVecDense(n, nil),
		gSq:   mat.NewVecDense(n, nil),
		state: StateInitialized,
	}
}

// init evaluates the objective at the initial guess to seed the best value.
func (s *solver) init() error {
	fx, err := s.obj(s.x, s.args)
	s.nObjEval++
	if err != nil {
		return err
	}
	s.fx, s.bestFx = fx, fx
	return nil
}

// step runs one iteration and advances the state machine.
func (s *solver) step() error {
	s.t++
	s.state = StateRunning

	g, err := s.grad(s.x, s.args)
	s.nGradEval++
	if err != nil {
		return err
	}
	if g == nil {
		return invalidArgument("grad", nil, "grad returned nil at iteration %d", s.t)
	}
	if !g.Shape().Equal(s.x.Shape()) {
		return invalidArgument("grad", g.Shape(), "grad returned shape %v at iteration %d, want %v", g.Shape(), s.t, s.x.Shape())
	}
	s.g = g

	beta1, beta2 := s.cfg.Beta1, s.cfg.Beta2
	gv := g.Vec()
	s.m.ScaleVec(beta1, s.m)
	s.m.AddScaledVec(s.m, 1-beta1, gv)
	s.gSq.MulElemVec(gv, gv)
	s.v.ScaleVec(beta2, s.v)
	s.v.AddScaledVec(s.v, 1-beta2, s.gSq)

	biasCorrection1 := 1 - math.Pow(beta1, float64(s.t))
	biasCorrection2 := 1 - math.Pow(beta2, float64(s.t))
	params := s.x.Data()
	m, v := s.m.RawVector().Data, s.v.RawVector().Data
	for i := range params {
		mHat := m[i] / biasCorrection1
		vHat := v[i] / biasCorrection2
		params[i] -= s.cfg.Alpha * mHat / (math.Sqrt(vHat) + s.cfg.Eps)
	}

	fx, err := s.obj(s.x, s.args)
	s.nObjEval++
	if err != nil {
		return err
	}
	s.fx = fx

	if s.bestFx-fx > s.cfg.Tol {
		s.bestFx = fx
		s.noChange = 0
	} else {
		s.noChange++
	}

	switch {
	case s.cfg.NIterNoChange > 0 && s.noChange >= s.cfg.NIterNoChange:
		s.state = StateConverged
	case s.t >= s.cfg.MaxIter:
		s.state = StateMaxIterReached
	}
	return nil
}
