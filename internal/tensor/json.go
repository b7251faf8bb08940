package tensor

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// MarshalJSON encodes the array as nested JSON lists (a bare number for rank 0).
func (d *Dense) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.nested(0, 0, d.shape.ComputeStrides()))
}

func (d *Dense) nested(axis, offset int, strides []int) any {
	if axis == len(d.shape) {
		return d.data[offset]
	}
	out := make([]any, d.shape[axis])
	for i := range out {
		out[i] = d.nested(axis+1, offset+i*strides[axis], strides)
	}
	return out
}

// UnmarshalJSON decodes nested JSON lists of numbers, applying the same
// checks as AsDense.
func (d *Dense) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.WithStack(err)
	}
	parsed, err := AsDense(raw)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}
