package ops

import "github.com/born-ml/gradtrace/internal/tensor"

// DivOp represents guarded element-wise division: output = a / (b + eps).
//
// The backward rule differentiates that exact expression, so a zero
// denominator yields large but finite gradients instead of Inf:
//   - grad_a = outputGrad / (b + eps)
//   - grad_b = -outputGrad * a / (b + eps)² = -outputGrad * output / (b + eps)
type DivOp struct {
	inputs []*tensor.RawTensor // [a, b]
	output *tensor.RawTensor   // a / (b + eps)
	eps    float64
}

// NewDivOp creates a new DivOp.
func NewDivOp(a, b, output *tensor.RawTensor, eps float64) *DivOp {
	return &DivOp{
		inputs: []*tensor.RawTensor{a, b},
		output: output,
		eps:    eps,
	}
}

// Name returns "div".
func (op *DivOp) Name() string { return "div" }

// Epsilon returns the denominator guard used in the forward pass.
func (op *DivOp) Epsilon() float64 { return op.eps }

// Backward computes input gradients for guarded division.
func (op *DivOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]
	denom := backend.AddScalar(b, op.eps)

	gradA := reduceBroadcast(backend.Div(outputGrad, denom), a.Shape(), backend)

	// output already holds a/(b+eps); one more division gives a/(b+eps)².
	quot := backend.Div(backend.Mul(outputGrad, op.output), denom)
	gradB := reduceBroadcast(backend.Neg(quot), b.Shape(), backend)

	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns the input tensors [a, b].
func (op *DivOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor a / (b + eps).
func (op *DivOp) Output() *tensor.RawTensor {
	return op.output
}
