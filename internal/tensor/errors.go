package tensor

import "github.com/pkg/errors"

// Conversion and shape errors.
var (
	ErrNotNumeric       = errors.New("must contain either ints or floats")
	ErrUnsafeConversion = errors.New("cannot be safely cast to float64")
	ErrRagged           = errors.New("nested slices have inconsistent lengths")
	ErrInvalidShape     = errors.New("invalid shape")
	ErrShapeMismatch    = errors.New("data length does not match shape")
)
