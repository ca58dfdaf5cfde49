package ops

import "github.com/born-ml/gradtrace/internal/tensor"

// PowOp represents element-wise power: output = a ** p.
//
// Backward pass:
//   - grad_a = outputGrad * p * a^(p-1)
//   - grad_p = outputGrad * a^p * ln(a), only when the exponent is differentiated
//
// The exponent gradient is undefined for a <= 0 and comes out as NaN there;
// nothing is guarded, matching the forward pass.
type PowOp struct {
	inputs  []*tensor.RawTensor // [a, p]
	output  *tensor.RawTensor   // a ** p
	expGrad bool
}

// NewPowOp creates a new PowOp. When expGrad is false the exponent is treated
// as a constant and its gradient slot is nil.
func NewPowOp(a, p, output *tensor.RawTensor, expGrad bool) *PowOp {
	return &PowOp{
		inputs:  []*tensor.RawTensor{a, p},
		output:  output,
		expGrad: expGrad,
	}
}

// Name returns "pow".
func (op *PowOp) Name() string { return "pow" }

// Backward computes input gradients for power.
func (op *PowOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, p := op.inputs[0], op.inputs[1]

	// p * a^(p-1)
	local := backend.Mul(p, backend.Pow(a, backend.AddScalar(p, -1)))
	gradA := reduceBroadcast(backend.Mul(outputGrad, local), a.Shape(), backend)

	if !op.expGrad {
		return []*tensor.RawTensor{gradA, nil}
	}

	// a^p * ln(a); ln is the raw kernel, no epsilon.
	dp := backend.Mul(op.output, backend.Log(a))
	gradP := reduceBroadcast(backend.Mul(outputGrad, dp), p.Shape(), backend)

	return []*tensor.RawTensor{gradA, gradP}
}

// Inputs returns the input tensors [a, p].
func (op *PowOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor a ** p.
func (op *PowOp) Output() *tensor.RawTensor {
	return op.output
}
