package adam

import (
	"github.com/pkg/errors"

	"github.com/born-ml/solvers/internal/tensor"
)

// Warning is a non-fatal issue found while validating a run's inputs.
type Warning struct {
	Param   string // Offending parameter, e.g. "eps"
	Message string
}

func (w Warning) String() string {
	return w.Message
}

// Validate checks the callbacks, the initial guess and the hyperparameters
// of a run, in that order, and returns the first problem found.
//
// On success it returns x0 converted to a fresh float64 array together with
// any warnings. Neither callback is invoked.
func Validate(obj ObjectiveFunc, grad GradientFunc, x0 any, cfg Config) (*tensor.Dense, []Warning, error) {
	if obj == nil {
		return nil, nil, invalidType("obj", nil, nil, "obj must be callable")
	}
	if grad == nil {
		return nil, nil, invalidType("grad", nil, nil, "grad must be callable")
	}
	x, err := convertGuess(x0)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return x, cfg.Warnings(), nil
}

func convertGuess(x0 any) (*tensor.Dense, error) {
	x, err := tensor.AsDense(x0)
	switch {
	case errors.Is(err, tensor.ErrNotNumeric):
		return nil, invalidType("x0", nil, err, "x0 must contain either ints or floats")
	case errors.Is(err, tensor.ErrUnsafeConversion):
		return nil, invalidType("x0", nil, err, "x0 cannot be safely cast to float64")
	case err != nil:
		return nil, errors.WithStack(&InvalidArgumentError{
			Name:    "x0",
			Message: "x0 must be a non-empty rectangular array",
			Err:     err,
		})
	}
	if x.NDim() == 0 {
		return nil, invalidArgument("x0", nil, "x0 must have at least 1 dimension")
	}
	return x, nil
}
