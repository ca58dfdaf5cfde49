package ops

import "github.com/born-ml/gradtrace/internal/tensor"

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
//
// Leading dimensions absent from the target are summed away as well, so the
// scalar cases ([3,2] -> [1] and [3,2] -> []) are just instances of the rule.
// The result never aliases grad.
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	return backend.SumTo(grad, targetShape)
}

// swapLastAxes returns the permutation exchanging the two trailing axes of an
// ndim-dimensional tensor.
func swapLastAxes(ndim int) []int {
	axes := make([]int, ndim)
	for i := range axes {
		axes[i] = i
	}
	axes[ndim-1], axes[ndim-2] = axes[ndim-2], axes[ndim-1]
	return axes
}

// invertPermutation returns p⁻¹ such that applying p then p⁻¹ is the identity.
func invertPermutation(p []int) []int {
	inv := make([]int, len(p))
	for i, ax := range p {
		inv[ax] = i
	}
	return inv
}
