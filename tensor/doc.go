// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense arrays the solvers read and write.
//
// # Overview
//
// A Dense is a row-major N-dimensional float64 array:
//   - a flat []float64 exposed through Data
//   - a Shape recording the dimensions
//   - a gonum vector view through Vec
//
// # Basic Usage
//
//	x, err := tensor.FromSlice([]int{1, 2, 3, 4}, tensor.Shape{2, 2})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(x) // [[1 2] [3 4]]
//
// # Conversion
//
// AsDense accepts nested slices of any Go integer or float type and checks
// that every element widens to float64 exactly:
//
//	x, err := tensor.AsDense([][]float32{{1, 2}, {3, 4}})
//	_, err = tensor.AsDense([]string{"1"})                 // ErrNotNumeric
//	_, err = tensor.AsDense([]int64{1 << 60})              // ErrUnsafeConversion
//	_, err = tensor.AsDense([][]int{{1, 2}, {3}})          // ErrRagged
package tensor
