// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/solvers/internal/tensor"
)

// Type aliases for public API

// Dense is a row-major N-dimensional float64 array.
type Dense = tensor.Dense

// Shape represents the dimensions of an array.
type Shape = tensor.Shape

// Number is the set of Go types FromSlice accepts.
type Number = tensor.Number

// Errors returned when building arrays.
var (
	ErrNotNumeric       = tensor.ErrNotNumeric
	ErrUnsafeConversion = tensor.ErrUnsafeConversion
	ErrRagged           = tensor.ErrRagged
	ErrInvalidShape     = tensor.ErrInvalidShape
	ErrShapeMismatch    = tensor.ErrShapeMismatch
)

// Zeros returns a zero-filled array of the given shape.
func Zeros(shape Shape) (*Dense, error) {
	return tensor.Zeros(shape)
}

// ZerosLike returns a zero-filled array with the shape of d.
func ZerosLike(d *Dense) *Dense {
	return tensor.ZerosLike(d)
}

// FromSlice copies data into a new array of the given shape.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
func FromSlice[T Number](data []T, shape Shape) (*Dense, error) {
	return tensor.FromSlice(data, shape)
}

// Vector returns a one-dimensional array holding values.
func Vector(values ...float64) *Dense {
	return tensor.Vector(values...)
}

// Scalar returns a zero-dimensional array holding v.
func Scalar(v float64) *Dense {
	return tensor.Scalar(v)
}

// AsDense converts a Dense or a nested slice of Go numbers into a new Dense.
func AsDense(v any) (*Dense, error) {
	return tensor.AsDense(v)
}
