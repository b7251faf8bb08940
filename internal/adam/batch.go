package adam

import (
	"context"

	"github.com/pkg/errors"

	"github.com/born-ml/solvers/internal/parallel"
)

// Problem bundles everything one run needs.
type Problem struct {
	Objective ObjectiveFunc
	Gradient  GradientFunc
	X0        any
	Args      Args
	Config    Config
}

// RunAll minimizes each problem independently on a bounded worker pool.
//
// Reports are index-aligned with problems. The first failing run stops runs
// that have not started yet and its error is returned, annotated with the
// problem index. Runs already in progress finish; a run is never interrupted
// mid-iteration. Callbacks shared between problems must be safe for
// concurrent use.
func RunAll(ctx context.Context, problems []Problem, workers parallel.Config, opts ...Option) ([]*Report, error) {
	reports := make([]*Report, len(problems))
	err := parallel.ForEach(ctx, len(problems), func(_ context.Context, i int) error {
		p := problems[i]
		report, err := Minimize(p.Objective, p.Gradient, p.X0, p.Args, p.Config, opts...)
		if err != nil {
			return errors.WithMessagef(err, "problem %d", i)
		}
		reports[i] = report
		return nil
	}, workers)
	if err != nil {
		return nil, err
	}
	return reports, nil
}
