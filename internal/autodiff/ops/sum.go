package ops

import "github.com/born-ml/gradtrace/internal/tensor"

// SumOp represents a full reduction: output = sum(a), a 0-d tensor.
//
// Backward: every element contributed with weight 1, so the scalar output
// gradient is broadcast back to the input shape.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: input, output: output}
}

// Name returns "sum".
func (op *SumOp) Name() string { return "sum" }

// Backward computes the input gradient for sum.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Expand(outputGrad, op.input.Shape())}
}

// Inputs returns [a].
func (op *SumOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns sum(a).
func (op *SumOp) Output() *tensor.RawTensor {
	return op.output
}
