package cpu

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/born-ml/gradtrace/internal/tensor"
)

// Reshape returns a tensor with the same data but a different shape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}

	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			t.Shape(), newShape))
	}

	result := cpu.alloc("reshape", newShape, t.DType())
	copy(result.Data(), t.Data())
	return result
}

// Transpose permutes the tensor's dimensions.
// With no axes, all dimensions are reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	// Default: reverse all dimensions
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result := cpu.alloc("transpose", newShape, t.DType())

	switch t.DType() {
	case tensor.Float32:
		transposeKernel(result.AsFloat32(), t.AsFloat32(), shape, newShape, axes)
	case tensor.Float64:
		transposeKernel(result.AsFloat64(), t.AsFloat64(), shape, newShape, axes)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}

	return result
}

// Expand broadcasts the tensor to a new shape.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if !newShape.CanReduceTo(x.Shape()) {
		panic(fmt.Sprintf("expand: cannot expand %v to %v", x.Shape(), newShape))
	}

	result := cpu.alloc("expand", newShape, x.DType())

	switch x.DType() {
	case tensor.Float32:
		expandKernel(result.AsFloat32(), x.AsFloat32(), x.Shape(), newShape)
	case tensor.Float64:
		expandKernel(result.AsFloat64(), x.AsFloat64(), x.Shape(), newShape)
	default:
		panic(fmt.Sprintf("expand: unsupported dtype %v", x.DType()))
	}

	return result
}

func transposeKernel[T constraints.Float](dst, src []T, srcShape, dstShape tensor.Shape, axes []int) {
	ndim := len(srcShape)
	srcStrides := srcShape.ComputeStrides()
	dstStrides := dstShape.ComputeStrides()

	coords := make([]int, ndim)
	for i := range src {
		// Multi-dimensional coordinates in source
		idx := i
		for dim := 0; dim < ndim; dim++ {
			coords[dim] = idx / srcStrides[dim]
			idx %= srcStrides[dim]
		}

		// Destination dimension d takes source axis axes[d]
		dstIdx := 0
		for d, srcDim := range axes {
			dstIdx += coords[srcDim] * dstStrides[d]
		}

		dst[dstIdx] = src[i]
	}
}

func expandKernel[T constraints.Float](dst, src []T, srcShape, dstShape tensor.Shape) {
	dstStrides := dstShape.ComputeStrides()
	srcStrides := computeBroadcastStridesForShape(srcShape, dstShape)

	for i := range dst {
		dst[i] = src[computeFlatIndex(i, dstStrides, srcStrides)]
	}
}
