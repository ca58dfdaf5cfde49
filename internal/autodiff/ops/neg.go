package ops

import "github.com/born-ml/gradtrace/internal/tensor"

// NegOp represents negation: output = -a.
//
// Backward pass: grad_a = -outputGrad.
type NegOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewNegOp creates a new NegOp.
func NewNegOp(input, output *tensor.RawTensor) *NegOp {
	return &NegOp{input: input, output: output}
}

// Name returns "neg".
func (op *NegOp) Name() string { return "neg" }

// Backward computes the input gradient for negation.
func (op *NegOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Neg(outputGrad)}
}

// Inputs returns the input tensor [a].
func (op *NegOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor -a.
func (op *NegOp) Output() *tensor.RawTensor {
	return op.output
}
