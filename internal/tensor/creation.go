package tensor

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Zeros creates a CPU tensor filled with zeros.
//
// Example:
//
//	t := tensor.Zeros(tensor.Shape{3, 4}, tensor.Float32)
func Zeros(shape Shape, dtype DataType) (*RawTensor, error) {
	return NewRaw(shape, dtype, CPU)
}

// Full creates a CPU tensor filled with a specific value.
//
// Example:
//
//	t, _ := tensor.Full(tensor.Shape{3, 3}, 3.14, tensor.Float64)
func Full(shape Shape, value float64, dtype DataType) (*RawTensor, error) {
	t, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		return nil, err
	}
	if value != 0 {
		t.fill(value)
	}
	return t, nil
}

// Ones creates a CPU tensor filled with ones.
func Ones(shape Shape, dtype DataType) (*RawTensor, error) {
	return Full(shape, 1, dtype)
}

// ZerosLike returns a zero tensor with the shape, dtype and device of t.
func ZerosLike(t *RawTensor) *RawTensor {
	out, err := NewRaw(t.Shape(), t.DType(), t.Device())
	if err != nil {
		panic(err) // t already carries a validated shape
	}
	return out
}

// OnesLike returns a tensor of ones with the shape, dtype and device of t.
func OnesLike(t *RawTensor) *RawTensor {
	out := ZerosLike(t)
	out.fill(1)
	return out
}

// FromFloat64s creates a tensor of the given dtype from float64 data.
// The data is copied; len(data) must equal shape.NumElements().
//
// Example:
//
//	a, err := tensor.FromFloat64s([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2}, tensor.Float64)
func FromFloat64s(data []float64, shape Shape, dtype DataType) (*RawTensor, error) {
	t, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		return nil, err
	}
	if len(data) != t.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, t.NumElements())
	}

	switch dtype {
	case Float32:
		dst := t.AsFloat32()
		for i, v := range data {
			dst[i] = float32(v)
		}
	case Float64:
		copy(t.AsFloat64(), data)
	}
	return t, nil
}

// FromFloat32s creates a Float32 tensor from data. The data is copied.
func FromFloat32s(data []float32, shape Shape) (*RawTensor, error) {
	t, err := NewRaw(shape, Float32, CPU)
	if err != nil {
		return nil, err
	}
	if len(data) != t.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, t.NumElements())
	}
	copy(t.AsFloat32(), data)
	return t, nil
}

// RandUniform creates a tensor with values drawn uniformly from [lo, hi).
// The caller owns rng so that test inputs are reproducible.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	x, _ := tensor.RandUniform(tensor.Shape{3, 2}, tensor.Float64, 0.5, 2, rng)
func RandUniform(shape Shape, dtype DataType, lo, hi float64, rng *rand.Rand) (*RawTensor, error) {
	t, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		return nil, err
	}
	span := hi - lo
	switch dtype {
	case Float32:
		data := t.AsFloat32()
		for i := range data {
			data[i] = float32(lo + span*rng.Float64())
		}
	case Float64:
		data := t.AsFloat64()
		for i := range data {
			data[i] = lo + span*rng.Float64()
		}
	}
	return t, nil
}

// fill sets every element to value.
func (r *RawTensor) fill(value float64) {
	switch r.dtype {
	case Float32:
		data := r.AsFloat32()
		v := float32(value)
		for i := range data {
			data[i] = v
		}
	case Float64:
		data := r.AsFloat64()
		for i := range data {
			data[i] = value
		}
	}
}
