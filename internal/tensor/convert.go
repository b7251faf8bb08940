package tensor

import (
	"math/big"
	"reflect"

	"github.com/pkg/errors"
)

// maxExactInt is the largest integer magnitude float64 represents exactly.
const maxExactInt = 1 << 53

var bigFloatType = reflect.TypeOf((*big.Float)(nil))

// AsDense converts a caller-supplied array into a new Dense.
//
// Accepted inputs are *Dense, Dense, numeric scalars, and nested rectangular
// slices or arrays whose elements are Go integers, floats or *big.Float.
// Interface-typed elements (as produced by encoding/json) are unwrapped.
//
// Errors:
//   - ErrNotNumeric: an element is not an integer or floating-point value
//   - ErrUnsafeConversion: an element cannot be widened to float64 exactly
//     (integers beyond 2^53, *big.Float with more than 53 bits of precision)
//   - ErrRagged: nested slices of different lengths
//   - ErrInvalidShape: an axis of length zero
//
// The result never aliases the input.
func AsDense(v any) (*Dense, error) {
	switch t := v.(type) {
	case *Dense:
		if t == nil {
			return nil, errors.WithStack(ErrNotNumeric)
		}
		return t.Clone(), nil
	case Dense:
		return t.Clone(), nil
	case []float64:
		return FromSlice(t, Shape{len(t)})
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, errors.WithStack(ErrNotNumeric)
	}
	shape := inferShape(rv)
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	data := make([]float64, 0, shape.NumElements())
	data, err := flatten(rv, shape, 0, data)
	if err != nil {
		return nil, err
	}
	return &Dense{shape: shape, data: data}, nil
}

// inferShape follows the first element of each nesting level.
func inferShape(rv reflect.Value) Shape {
	shape := Shape{}
	for {
		rv = unwrap(rv)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return shape
		}
		shape = append(shape, rv.Len())
		if rv.Len() == 0 {
			return shape
		}
		rv = rv.Index(0)
	}
}

func flatten(rv reflect.Value, shape Shape, axis int, out []float64) ([]float64, error) {
	rv = unwrap(rv)
	if axis == len(shape) {
		f, err := toFloat(rv)
		if err != nil {
			return nil, err
		}
		return append(out, f), nil
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.Wrapf(ErrRagged, "expected %d values on axis %d, got a scalar", shape[axis], axis)
	}
	if rv.Len() != shape[axis] {
		return nil, errors.Wrapf(ErrRagged, "expected %d values on axis %d, got %d", shape[axis], axis, rv.Len())
	}
	var err error
	for i := range rv.Len() {
		if out, err = flatten(rv.Index(i), shape, axis+1, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// unwrap strips interface boxing, leaving *big.Float pointers intact.
func unwrap(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv
}

func toFloat(rv reflect.Value) (float64, error) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i > maxExactInt || i < -maxExactInt {
			return 0, errors.Wrapf(ErrUnsafeConversion, "integer %d", i)
		}
		return float64(i), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > maxExactInt {
			return 0, errors.Wrapf(ErrUnsafeConversion, "integer %d", u)
		}
		return float64(u), nil
	case reflect.Pointer:
		if rv.Type() != bigFloatType || rv.IsNil() {
			break
		}
		bf := rv.Interface().(*big.Float)
		if bf.Prec() > 53 {
			return 0, errors.Wrapf(ErrUnsafeConversion, "big.Float with %d bits of precision", bf.Prec())
		}
		f, _ := bf.Float64()
		return f, nil
	}
	if !rv.IsValid() {
		return 0, errors.Wrap(ErrNotNumeric, "got nil")
	}
	return 0, errors.Wrapf(ErrNotNumeric, "got %s", rv.Type())
}

func widen[T Number](v T) (float64, error) {
	return toFloat(reflect.ValueOf(v))
}
