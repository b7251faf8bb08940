package adam_test

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/solvers/internal/adam"
	"github.com/born-ml/solvers/internal/tensor"
)

// countingProblem wraps an objective and gradient and counts their calls.
type countingProblem struct {
	obj       adam.ObjectiveFunc
	grad      adam.GradientFunc
	objCalls  int
	gradCalls int
}

func (p *countingProblem) Objective(x *tensor.Dense, args adam.Args) (float64, error) {
	p.objCalls++
	return p.obj(x, args)
}

func (p *countingProblem) Gradient(x *tensor.Dense, args adam.Args) (*tensor.Dense, error) {
	p.gradCalls++
	return p.grad(x, args)
}

// dummyProblem has an objective and gradient that are identically zero, so
// no iteration ever improves on the starting value.
func dummyProblem(n int) *countingProblem {
	return &countingProblem{
		obj: func(*tensor.Dense, adam.Args) (float64, error) { return 0, nil },
		grad: func(x *tensor.Dense, _ adam.Args) (*tensor.Dense, error) {
			return tensor.Zeros(tensor.Shape{n})
		},
	}
}

// squareProblem minimizes sum(x²) for x of any shape.
func squareProblem() *countingProblem {
	return &countingProblem{
		obj: func(x *tensor.Dense, _ adam.Args) (float64, error) {
			return floats.Dot(x.Data(), x.Data()), nil
		},
		grad: func(x *tensor.Dense, _ adam.Args) (*tensor.Dense, error) {
			g := tensor.ZerosLike(x)
			floats.ScaleTo(g.Data(), 2, x.Data())
			return g, nil
		},
	}
}

// ridgeData is a linear regression problem with Gaussian features and noise.
type ridgeData struct {
	X         *mat.Dense
	y         *mat.VecDense
	intercept float64
}

func newRidgeData(nSamples, nFeatures int, intercept float64, seed uint64) *ridgeData {
	src := rand.NewPCG(seed, seed)
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	unit := distuv.Uniform{Min: 0, Max: 1, Src: src}

	X := mat.NewDense(nSamples, nFeatures, nil)
	for i := range nSamples {
		for j := range nFeatures {
			X.Set(i, j, normal.Rand())
		}
	}
	w := mat.NewVecDense(nFeatures, nil)
	for j := range nFeatures {
		w.SetVec(j, unit.Rand())
	}
	y := mat.NewVecDense(nSamples, nil)
	y.MulVec(X, w)
	for i := range nSamples {
		y.SetVec(i, y.AtVec(i)+intercept+normal.Rand())
	}
	return &ridgeData{X: X, y: y, intercept: intercept}
}

// ridgeObjective is the full-batch ridge objective. The last parameter is the
// unpenalized intercept; the data and penalty arrive through args.
func ridgeObjective(x *tensor.Dense, args adam.Args) (float64, error) {
	data := args.Positional[0].(*ridgeData)
	lambda := args.Keyword["reg_lambda"].(float64)
	params := x.Data()
	w, b := params[:len(params)-1], params[len(params)-1]

	var loss float64
	rows, _ := data.X.Dims()
	for i := range rows {
		r := data.y.AtVec(i) - floats.Dot(data.X.RawRowView(i), w) - b
		loss += r * r
	}
	return loss + lambda*floats.Dot(w, w), nil
}

// ridgeGradient returns a minibatch estimate of the ridge gradient.
func ridgeGradient(rng *rand.Rand, batchSize int) adam.GradientFunc {
	return func(x *tensor.Dense, args adam.Args) (*tensor.Dense, error) {
		data := args.Positional[0].(*ridgeData)
		lambda := args.Keyword["reg_lambda"].(float64)
		params := x.Data()
		nw := len(params) - 1
		w, b := params[:nw], params[nw]

		g := tensor.ZerosLike(x)
		grad := g.Data()
		floats.ScaleTo(grad[:nw], 2*lambda, w)
		rows, _ := data.X.Dims()
		for _, i := range rng.Perm(rows)[:batchSize] {
			row := data.X.RawRowView(i)
			r := data.y.AtVec(i) - floats.Dot(row, w) - b
			floats.AddScaled(grad[:nw], -2*r, row)
			grad[nw] -= 2 * r
		}
		return g, nil
	}
}
