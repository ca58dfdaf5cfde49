package tensor

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when operand shapes cannot be combined:
// non-broadcastable elementwise operands, matmul dimension mismatches,
// or a gradient whose shape differs from its node's value.
var ErrShapeMismatch = errors.New("shape mismatch")

// Shape represents the dimensions of a tensor.
// An empty shape denotes a 0-d scalar.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Rules:
// 1. Compare shapes element-wise from right to left
// 2. Dimensions are compatible if:
//   - They are equal, OR
//   - One of them is 1
//
// 3. Missing dimensions are treated as 1
//
// Returns the broadcasted shape, a flag indicating if broadcasting is needed, and an error
// wrapping ErrShapeMismatch if the shapes are incompatible.
//
// Examples:
//
//	(3, 1) + (3, 5) → (3, 5), true, nil
//	(1, 5) + (3, 5) → (3, 5), true, nil
//	(3, 5) + (3, 5) → (3, 5), false, nil
//	(3, 4) + (3, 5) → nil, false, Error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)
	needsBroadcast := len(a) != len(b)

	for i := 0; i < maxLen; i++ {
		aIdx := len(a) - 1 - i
		bIdx := len(b) - 1 - i

		aDim := 1
		if aIdx >= 0 {
			aDim = a[aIdx]
		}

		bDim := 1
		if bIdx >= 0 {
			bDim = b[bIdx]
		}

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
			needsBroadcast = true
		case bDim == 1:
			result[maxLen-1-i] = aDim
			needsBroadcast = true
		default:
			return nil, false, fmt.Errorf("%w: %v vs %v not broadcastable (dimension %d: %d vs %d)",
				ErrShapeMismatch, a, b, maxLen-1-i, aDim, bDim)
		}
	}

	return result, needsBroadcast, nil
}

// CanReduceTo reports whether a tensor of shape s can be summed down to target,
// i.e. whether target broadcasts to s.
func (s Shape) CanReduceTo(target Shape) bool {
	if len(target) > len(s) {
		return false
	}
	offset := len(s) - len(target)
	for i, dim := range target {
		if dim != 1 && dim != s[offset+i] {
			return false
		}
	}
	return true
}

// MatMulShape returns the output shape of a @ b.
//
// Supported layouts:
//
//	[M, K] @ [K, N]       → [M, N]
//	[B, M, K] @ [B, K, N] → [B, M, N]
func MatMulShape(a, b Shape) (Shape, error) {
	if len(a) != len(b) || (len(a) != 2 && len(a) != 3) {
		return nil, fmt.Errorf("%w: matmul needs two 2-D or two 3-D operands, got %v @ %v",
			ErrShapeMismatch, a, b)
	}
	n := len(a)
	if a[n-1] != b[n-2] {
		return nil, fmt.Errorf("%w: matmul inner dimensions differ: %v @ %v", ErrShapeMismatch, a, b)
	}
	if n == 3 && a[0] != b[0] {
		return nil, fmt.Errorf("%w: matmul batch dimensions differ: %v @ %v", ErrShapeMismatch, a, b)
	}
	if n == 2 {
		return Shape{a[0], b[1]}, nil
	}
	return Shape{a[0], a[1], b[2]}, nil
}

// String formats the shape as (d0, d1, ...).
func (s Shape) String() string {
	if len(s) == 0 {
		return "()"
	}
	out := "("
	for i, dim := range s {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprint(dim)
	}
	return out + ")"
}
