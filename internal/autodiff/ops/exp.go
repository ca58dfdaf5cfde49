package ops

import "github.com/born-ml/gradtrace/internal/tensor"

// ExpOp represents the exponential: output = exp(a).
//
// Backward: d(exp(a))/da = exp(a), so grad_a = outputGrad * output.
// The forward result is reused instead of recomputing exp.
type ExpOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewExpOp creates a new ExpOp.
func NewExpOp(input, output *tensor.RawTensor) *ExpOp {
	return &ExpOp{input: input, output: output}
}

// Name returns "exp".
func (op *ExpOp) Name() string { return "exp" }

// Backward computes the input gradient for exp.
func (op *ExpOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, op.output)}
}

// Inputs returns [a].
func (op *ExpOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns exp(a).
func (op *ExpOp) Output() *tensor.RawTensor {
	return op.output
}
