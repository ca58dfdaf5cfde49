package ops

import "github.com/born-ml/gradtrace/internal/tensor"

// MatMulOp represents matrix multiplication: C = A @ B.
//
// Forward:
//
//	A: [M, K]  or [B, M, K]
//	B: [K, N]  or [B, K, N]
//	C: [M, N]  or [B, M, N]
//
// Backward (transposes act on the last two axes):
//
//	dL/dA = dL/dC @ B^T   ([M, N] @ [N, K] = [M, K])
//	dL/dB = A^T @ dL/dC   ([K, M] @ [M, N] = [K, N])
type MatMulOp struct {
	inputs []*tensor.RawTensor // [A, B]
	output *tensor.RawTensor   // C
}

// NewMatMulOp creates a new matrix multiplication operation.
func NewMatMulOp(a, b, output *tensor.RawTensor) *MatMulOp {
	return &MatMulOp{
		inputs: []*tensor.RawTensor{a, b},
		output: output,
	}
}

// Name returns "matmul".
func (op *MatMulOp) Name() string { return "matmul" }

// Backward computes gradients for matrix multiplication.
func (op *MatMulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]

	bT := backend.Transpose(b, swapLastAxes(len(b.Shape()))...)
	gradA := backend.MatMul(outputGrad, bT)

	aT := backend.Transpose(a, swapLastAxes(len(a.Shape()))...)
	gradB := backend.MatMul(aT, outputGrad)

	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns [A, B].
func (op *MatMulOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns C.
func (op *MatMulOp) Output() *tensor.RawTensor {
	return op.output
}
