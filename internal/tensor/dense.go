// Package tensor provides the dense float64 arrays the solvers operate on.
//
// A Dense is a row-major N-dimensional array: a flat []float64 plus a Shape.
// Solvers work on the flat data and hand gonum vector views of it to linear
// algebra routines; callers keep whatever shape they started with.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	if err != nil {
//	    return err
//	}
//	v := x.Vec() // *mat.VecDense sharing x's storage
package tensor

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Number is the set of Go types a Dense can be built from without reflection.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Dense is a row-major N-dimensional float64 array.
type Dense struct {
	shape Shape
	data  []float64
}

// Zeros returns a zero-filled array of the given shape.
func Zeros(shape Shape) (*Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Dense{
		shape: shape.Clone(),
		data:  make([]float64, shape.NumElements()),
	}, nil
}

// ZerosLike returns a zero-filled array with the shape of d.
func ZerosLike(d *Dense) *Dense {
	return &Dense{
		shape: d.shape.Clone(),
		data:  make([]float64, len(d.data)),
	}
}

// FromSlice copies data into a new array of the given shape.
//
// Integer values whose magnitude exceeds 2^53 are rejected with
// ErrUnsafeConversion since float64 cannot hold them exactly.
func FromSlice[T Number](data []T, shape Shape) (*Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, errors.Wrapf(ErrShapeMismatch, "got %d values for shape %v", len(data), shape)
	}
	out := make([]float64, len(data))
	for i, v := range data {
		f, err := widen(v)
		if err != nil {
			return nil, errors.WithMessagef(err, "element %d", i)
		}
		out[i] = f
	}
	return &Dense{shape: shape.Clone(), data: out}, nil
}

// Vector is shorthand for a one-dimensional array holding values.
func Vector(values ...float64) *Dense {
	data := make([]float64, len(values))
	copy(data, values)
	return &Dense{shape: Shape{len(values)}, data: data}
}

// Scalar returns a zero-dimensional array holding v.
func Scalar(v float64) *Dense {
	return &Dense{shape: Shape{}, data: []float64{v}}
}

// Shape returns a copy of the array's shape.
func (d *Dense) Shape() Shape {
	return d.shape.Clone()
}

// NDim returns the number of axes.
func (d *Dense) NDim() int {
	return len(d.shape)
}

// Len returns the number of elements.
func (d *Dense) Len() int {
	return len(d.data)
}

// Data returns the backing slice. Writes through it are visible in d.
func (d *Dense) Data() []float64 {
	return d.data
}

// Clone returns a deep copy of d.
func (d *Dense) Clone() *Dense {
	data := make([]float64, len(d.data))
	copy(data, d.data)
	return &Dense{shape: d.shape.Clone(), data: data}
}

// CopyFrom overwrites d's values with src's. The shapes must match.
func (d *Dense) CopyFrom(src *Dense) error {
	if !d.shape.Equal(src.shape) {
		return errors.Wrapf(ErrShapeMismatch, "copy %v into %v", src.shape, d.shape)
	}
	copy(d.data, src.data)
	return nil
}

// Vec returns a gonum vector view over the flattened data.
func (d *Dense) Vec() *mat.VecDense {
	return mat.NewVecDense(len(d.data), d.data)
}

// Equal reports whether d and other have the same shape and identical values.
func (d *Dense) Equal(other *Dense) bool {
	if d == nil || other == nil {
		return d == other
	}
	if !d.shape.Equal(other.shape) {
		return false
	}
	for i, v := range d.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// String renders the array as nested brackets, e.g. [[1 2] [3 4]].
func (d *Dense) String() string {
	if d == nil {
		return "<nil>"
	}
	var sb strings.Builder
	d.format(&sb, 0, 0, d.shape.ComputeStrides())
	return sb.String()
}

func (d *Dense) format(sb *strings.Builder, axis, offset int, strides []int) {
	if axis == len(d.shape) {
		sb.WriteString(strconv.FormatFloat(d.data[offset], 'g', -1, 64))
		return
	}
	sb.WriteByte('[')
	for i := range d.shape[axis] {
		if i > 0 {
			sb.WriteByte(' ')
		}
		d.format(sb, axis+1, offset+i*strides[axis], strides)
	}
	sb.WriteByte(']')
}
