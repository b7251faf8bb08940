// Package problems is a catalogue of analytic test objectives with known
// minima, used by the CLI and by solver tests.
package problems

import (
	"math/rand/v2"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize/functions"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/solvers/internal/adam"
	"github.com/born-ml/solvers/internal/tensor"
)

// ErrDimension is returned when a problem is evaluated at a point of the
// wrong dimension.
var ErrDimension = errors.New("unsupported dimension")

// Problem is a differentiable objective over flat parameter vectors.
type Problem struct {
	Name string
	// Dim is the required dimension, or 0 when any dimension of at least
	// MinDim is accepted.
	Dim    int
	MinDim int
	// Minimizer returns the global minimizer for dimension n.
	Minimizer func(n int) []float64

	f    func(x []float64) float64
	grad func(dst, x []float64)
}

// Objective adapts the problem to adam.ObjectiveFunc.
func (p Problem) Objective(x *tensor.Dense, _ adam.Args) (float64, error) {
	if err := p.CheckDim(x.Len()); err != nil {
		return 0, err
	}
	return p.f(x.Data()), nil
}

// Gradient adapts the problem to adam.GradientFunc.
func (p Problem) Gradient(x *tensor.Dense, _ adam.Args) (*tensor.Dense, error) {
	if err := p.CheckDim(x.Len()); err != nil {
		return nil, err
	}
	g := tensor.ZerosLike(x)
	p.grad(g.Data(), x.Data())
	return g, nil
}

// CheckDim reports whether the problem is defined in n dimensions.
func (p Problem) CheckDim(n int) error {
	switch {
	case p.Dim > 0 && n != p.Dim:
		return errors.Wrapf(ErrDimension, "%s is defined in %d dimensions, got %d", p.Name, p.Dim, n)
	case n < p.MinDim:
		return errors.Wrapf(ErrDimension, "%s needs at least %d dimensions, got %d", p.Name, p.MinDim, n)
	}
	return nil
}

var catalogue = map[string]Problem{
	"sphere": {
		Name:      "sphere",
		MinDim:    1,
		Minimizer: func(n int) []float64 { return make([]float64, n) },
		f:         func(x []float64) float64 { return floats.Dot(x, x) },
		grad:      func(dst, x []float64) { floats.ScaleTo(dst, 2, x) },
	},
	"rosenbrock": {
		Name:      "rosenbrock",
		MinDim:    2,
		Minimizer: ones,
		f:         functions.ExtendedRosenbrock{}.Func,
		grad:      functions.ExtendedRosenbrock{}.Grad,
	},
	"booth": {
		Name:      "booth",
		Dim:       2,
		Minimizer: func(int) []float64 { return []float64{1, 3} },
		f:         booth,
		grad:      boothGrad,
	},
	"beale": {
		Name:      "beale",
		Dim:       2,
		Minimizer: func(int) []float64 { return []float64{3, 0.5} },
		f:         functions.Beale{}.Func,
		grad:      functions.Beale{}.Grad,
	},
	"wood": {
		Name:      "wood",
		Dim:       4,
		Minimizer: ones,
		f:         functions.Wood{}.Func,
		grad:      functions.Wood{}.Grad,
	},
}

// Lookup returns the named problem.
func Lookup(name string) (Problem, error) {
	p, ok := catalogue[name]
	if !ok {
		return Problem{}, errors.Errorf("unknown problem %q (available: %v)", name, Names())
	}
	return p, nil
}

// Names lists the catalogue in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ones(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 1
	}
	return x
}

// booth is (x + 2y - 7)² + (2x + y - 5)², minimized at (1, 3).
func booth(x []float64) float64 {
	a := x[0] + 2*x[1] - 7
	b := 2*x[0] + x[1] - 5
	return a*a + b*b
}

func boothGrad(dst, x []float64) {
	a := x[0] + 2*x[1] - 7
	b := 2*x[0] + x[1] - 5
	dst[0] = 2*a + 4*b
	dst[1] = 4*a + 2*b
}

// WithNoise returns a gradient that adds independent Gaussian noise with
// standard deviation sigma to every component of grad. The returned function
// owns its random source and must not be shared between concurrent runs.
func WithNoise(grad adam.GradientFunc, sigma float64, seed uint64) adam.GradientFunc {
	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: rand.NewPCG(seed, seed)}
	return func(x *tensor.Dense, args adam.Args) (*tensor.Dense, error) {
		g, err := grad(x, args)
		if err != nil {
			return nil, err
		}
		data := g.Data()
		for i := range data {
			data[i] += noise.Rand()
		}
		return g, nil
	}
}

// RandomStarts draws n starting points of dimension dim uniformly from
// [lo, hi) in every coordinate.
func RandomStarts(n, dim int, lo, hi float64, seed uint64) ([][]float64, error) {
	if n < 1 || dim < 1 {
		return nil, errors.Errorf("need a positive number of starts and dimensions, got %d and %d", n, dim)
	}
	if !(lo < hi) {
		return nil, errors.Errorf("empty sampling interval [%g, %g)", lo, hi)
	}
	unif := distuv.Uniform{Min: lo, Max: hi, Src: rand.NewPCG(seed, seed)}
	starts := make([][]float64, n)
	for i := range starts {
		starts[i] = make([]float64, dim)
		for j := range starts[i] {
			starts[i][j] = unif.Rand()
		}
	}
	return starts, nil
}
