// Package ops defines the backward rules of the autodiff engine.
//
// Each operation implements the Operation interface. An operation value is
// created after its forward pass has run and captures exactly the forward
// values its vector-Jacobian product needs: the operand values, the output
// and any auxiliary constants (ε, exponent flags). Backward is a pure function
// of those values and the incoming output gradient; it returns one gradient
// per input and never touches node state. Accumulating the returned gradients
// is the graph walker's job.
//
// Supported operations:
//   - AddOp: element-wise addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - SubOp: element-wise subtraction
//   - NegOp: negation
//   - MulOp: element-wise multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - DivOp: guarded division a/(b+ε)
//   - MatMulOp: matrix multiplication (d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad)
//   - PowOp: element-wise power a**p, optionally differentiating the exponent
//   - ExpOp, LogOp: exponential and guarded logarithm log(a+ε)
//   - SumOp: full reduction to a 0-d tensor
//   - TransposeOp: axis permutation
//   - ElementwiseOp: user-defined unary function with a known derivative
//
// Binary rules reduce their gradients with Backend.SumTo so that operands that
// were broadcast in the forward pass receive gradients of their own shape.
package ops

import "github.com/born-ml/gradtrace/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Name is the op tag reported by nodes built from this operation.
	Name() string

	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor;
	// a nil entry means no contribution to that input.
	//
	// Example for AddOp:
	//   inputs: [a, b]
	//   outputGrad: dL/d(a+b)
	//   returns: [dL/d(a+b), dL/d(a+b)] (gradient flows equally to both inputs)
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
