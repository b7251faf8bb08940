package adam

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/born-ml/solvers/internal/tensor"
)

// Result is the immutable outcome of a first-order optimization run.
//
// Results are built by Minimize, or directly with NewResult. X and Grad
// always have identical shapes with at least one axis, and all counters are
// positive.
type Result struct {
	x         *tensor.Dense
	fx        float64
	grad      *tensor.Dense
	nObjEval  int
	nGradEval int
	nIter     int
}

// NewResult validates its arguments and returns a Result holding copies of
// x and grad.
func NewResult(x *tensor.Dense, fx float64, grad *tensor.Dense, nObjEval, nGradEval, nIter int) (*Result, error) {
	if x == nil {
		return nil, invalidType("x", nil, nil, "x must be an array")
	}
	if grad == nil {
		return nil, invalidType("grad", nil, nil, "grad must be an array")
	}
	if x.NDim() == 0 {
		return nil, invalidArgument("x", nil, "x must have at least 1 dimension")
	}
	if grad.NDim() == 0 {
		return nil, invalidArgument("grad", nil, "grad must have at least 1 dimension")
	}
	if x.NDim() != grad.NDim() {
		return nil, invalidArgument("grad", nil, "x, grad must have the same number of dimensions")
	}
	if axis := x.Shape().FirstMismatch(grad.Shape()); axis >= 0 {
		return nil, invalidArgument("grad", nil, "x, grad shapes differ on axis %d", axis)
	}
	counts := []struct {
		name  string
		value int
	}{
		{"n_obj_eval", nObjEval},
		{"n_grad_eval", nGradEval},
		{"n_iter", nIter},
	}
	for _, c := range counts {
		if c.value < 1 {
			return nil, invalidArgument(c.name, c.value, "%s must be positive", c.name)
		}
	}
	return &Result{
		x:         x.Clone(),
		fx:        fx,
		grad:      grad.Clone(),
		nObjEval:  nObjEval,
		nGradEval: nGradEval,
		nIter:     nIter,
	}, nil
}

// X returns a copy of the final parameter guess.
func (r *Result) X() *tensor.Dense { return r.x.Clone() }

// Fx returns the final objective value.
func (r *Result) Fx() float64 { return r.fx }

// Grad returns a copy of the last evaluated gradient.
func (r *Result) Grad() *tensor.Dense { return r.grad.Clone() }

// NObjEval returns the number of objective evaluations.
func (r *Result) NObjEval() int { return r.nObjEval }

// NGradEval returns the number of gradient evaluations.
func (r *Result) NGradEval() int { return r.nGradEval }

// NIter returns the number of iterations performed.
func (r *Result) NIter() int { return r.nIter }

func (r *Result) String() string {
	return fmt.Sprintf(
		"Result(x=%s, fx=%s, grad=%s, n_obj_eval=%d, n_grad_eval=%d, n_iter=%d)",
		r.x, strconv.FormatFloat(r.fx, 'g', -1, 64), r.grad, r.nObjEval, r.nGradEval, r.nIter,
	)
}

type resultJSON struct {
	X         *tensor.Dense `json:"x"`
	Fx        float64       `json:"fx"`
	Grad      *tensor.Dense `json:"grad"`
	NObjEval  int           `json:"n_obj_eval"`
	NGradEval int           `json:"n_grad_eval"`
	NIter     int           `json:"n_iter"`
}

// MarshalJSON encodes the result with snake_case keys.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		X:         r.x,
		Fx:        r.fx,
		Grad:      r.grad,
		NObjEval:  r.nObjEval,
		NGradEval: r.nGradEval,
		NIter:     r.nIter,
	})
}

// UnmarshalJSON decodes a result and applies the NewResult checks. Values
// of the wrong JSON type yield an *InvalidTypeError naming the field.
func (r *Result) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.WithStack(err)
	}

	x, err := decodeArray(raw, "x")
	if err != nil {
		return err
	}
	grad, err := decodeArray(raw, "grad")
	if err != nil {
		return err
	}
	var fx float64
	if err := json.Unmarshal(raw["fx"], &fx); err != nil {
		return invalidType("fx", string(raw["fx"]), err, "fx must be convertible to float64")
	}
	var n [3]int
	for i, name := range []string{"n_obj_eval", "n_grad_eval", "n_iter"} {
		if n[i], err = decodeInt(raw, name); err != nil {
			return err
		}
	}

	parsed, err := NewResult(x, fx, grad, n[0], n[1], n[2])
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

func decodeArray(raw map[string]json.RawMessage, name string) (*tensor.Dense, error) {
	var d tensor.Dense
	if err := json.Unmarshal(raw[name], &d); err != nil {
		return nil, invalidType(name, string(raw[name]), err, "%s must be an array of ints or floats", name)
	}
	return &d, nil
}

func decodeInt(raw map[string]json.RawMessage, name string) (int, error) {
	var num json.Number
	if err := json.Unmarshal(raw[name], &num); err != nil {
		return 0, invalidType(name, string(raw[name]), err, "%s must be an integer", name)
	}
	v, err := strconv.Atoi(num.String())
	if err != nil {
		return 0, invalidType(name, num.String(), err, "%s must be an integer", name)
	}
	return v, nil
}
