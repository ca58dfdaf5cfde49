package cpu

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/gradtrace/internal/tensor"
)

// Sum computes the total sum of all elements. The result is a 0-d tensor.
// Float32 inputs are accumulated in float64.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.alloc("sum", tensor.Shape{}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		var total float64
		for _, v := range x.AsFloat32() {
			total += float64(v)
		}
		result.AsFloat32()[0] = float32(total)
	case tensor.Float64:
		result.AsFloat64()[0] = floats.Sum(x.AsFloat64())
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}

	return result
}

// SumTo reduces x to shape by summing over every axis that broadcasting would
// have expanded: leading axes missing from shape, and axes where shape has size 1.
// It is the inverse of Expand and the reduction applied to gradients of
// broadcast operands.
//
// Example:
//
//	SumTo([3,4] tensor, Shape{3,1}) -> row sums, shape [3,1]
//	SumTo([3,2] tensor, Shape{1})   -> total, shape [1]
func (cpu *CPUBackend) SumTo(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	xShape := x.Shape()
	if !xShape.CanReduceTo(shape) {
		panic(fmt.Sprintf("sumTo: cannot reduce %v to %v", xShape, shape))
	}

	if xShape.Equal(shape) {
		return x.Clone()
	}

	result := cpu.alloc("sumTo", shape, x.DType())

	switch x.DType() {
	case tensor.Float32:
		sumToKernel(result.AsFloat32(), x.AsFloat32(), xShape, shape)
	case tensor.Float64:
		sumToKernel(result.AsFloat64(), x.AsFloat64(), xShape, shape)
	default:
		panic(fmt.Sprintf("sumTo: unsupported dtype %s", x.DType()))
	}

	return result
}

// sumToKernel accumulates every source element into the destination element it
// was broadcast from. Sequential: many sources share one destination.
func sumToKernel[T constraints.Float](dst, src []T, srcShape, dstShape tensor.Shape) {
	srcStrides := srcShape.ComputeStrides()
	dstStrides := computeBroadcastStridesForShape(dstShape, srcShape)

	for i, v := range src {
		dst[computeFlatIndex(i, srcStrides, dstStrides)] += v
	}
}
