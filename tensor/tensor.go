// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"golang.org/x/exp/rand"

	"github.com/born-ml/gradtrace/internal/tensor"
)

// RawTensor is a dense row-major array of float32 or float64 values.
type RawTensor = tensor.RawTensor

// DataType identifies the element type of a tensor.
type DataType = tensor.DataType

// Supported data types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
)

// Device identifies where tensor memory lives.
type Device = tensor.Device

// CPU is the only device.
const CPU = tensor.CPU

// Shape represents the dimensions of a tensor. An empty shape is a 0-d scalar.
type Shape = tensor.Shape

// ErrShapeMismatch is returned when shapes cannot be combined.
var ErrShapeMismatch = tensor.ErrShapeMismatch

// NewRaw creates a zero-filled tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.Zeros(shape, dtype)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.Ones(shape, dtype)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64, dtype DataType) (*RawTensor, error) {
	return tensor.Full(shape, value, dtype)
}

// ZerosLike returns zeros with the shape and dtype of t.
func ZerosLike(t *RawTensor) *RawTensor {
	return tensor.ZerosLike(t)
}

// OnesLike returns ones with the shape and dtype of t.
func OnesLike(t *RawTensor) *RawTensor {
	return tensor.OnesLike(t)
}

// FromFloat64s creates a tensor of the given dtype from a copy of data.
//
// Example:
//
//	x, err := tensor.FromFloat64s([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.Float32)
func FromFloat64s(data []float64, shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.FromFloat64s(data, shape, dtype)
}

// FromFloat32s creates a Float32 tensor from a copy of data.
func FromFloat32s(data []float32, shape Shape) (*RawTensor, error) {
	return tensor.FromFloat32s(data, shape)
}

// RandUniform creates a tensor with values drawn uniformly from [lo, hi) using rng.
func RandUniform(shape Shape, dtype DataType, lo, hi float64, rng *rand.Rand) (*RawTensor, error) {
	return tensor.RandUniform(shape, dtype, lo, hi, rng)
}

// BroadcastShapes returns the broadcast result of two shapes and whether any
// broadcasting is needed. Incompatible shapes return an error wrapping
// ErrShapeMismatch.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}

// MatMulShape returns the result shape of a @ b for 2-D or batched 3-D operands.
func MatMulShape(a, b Shape) (Shape, error) {
	return tensor.MatMulShape(a, b)
}
