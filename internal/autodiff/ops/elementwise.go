package ops

import "github.com/born-ml/gradtrace/internal/tensor"

// ElementwiseFunc is a differentiable scalar function applied element by
// element. DF must be the derivative of F.
type ElementwiseFunc struct {
	Name string
	F    func(float64) float64
	DF   func(float64) float64
}

// ElementwiseOp represents output = fn.F(a) applied per element.
//
// Backward: grad_a = outputGrad * fn.DF(a).
type ElementwiseOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	fn     ElementwiseFunc
}

// NewElementwiseOp creates a new ElementwiseOp.
func NewElementwiseOp(input, output *tensor.RawTensor, fn ElementwiseFunc) *ElementwiseOp {
	return &ElementwiseOp{input: input, output: output, fn: fn}
}

// Name returns the function name.
func (op *ElementwiseOp) Name() string { return op.fn.Name }

// Backward computes the input gradient.
func (op *ElementwiseOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, backend.Map(op.input, op.fn.DF))}
}

// Inputs returns [a].
func (op *ElementwiseOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns fn.F(a).
func (op *ElementwiseOp) Output() *tensor.RawTensor {
	return op.output
}
