package ops

import "github.com/born-ml/gradtrace/internal/tensor"

// TransposeOp represents an axis permutation: output = transpose(a, axes).
//
// Backward: the output gradient is permuted back with the inverse permutation.
type TransposeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	axes   []int
}

// NewTransposeOp creates a new TransposeOp.
func NewTransposeOp(input, output *tensor.RawTensor, axes []int) *TransposeOp {
	return &TransposeOp{input: input, output: output, axes: append([]int(nil), axes...)}
}

// Name returns "transpose".
func (op *TransposeOp) Name() string { return "transpose" }

// Backward computes the input gradient for transpose.
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Transpose(outputGrad, invertPermutation(op.axes)...)}
}

// Inputs returns [a].
func (op *TransposeOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the permuted tensor.
func (op *TransposeOp) Output() *tensor.RawTensor {
	return op.output
}
