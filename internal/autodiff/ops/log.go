package ops

import "github.com/born-ml/gradtrace/internal/tensor"

// LogOp represents the guarded natural logarithm: output = log(a + eps).
//
// Backward: grad_a = outputGrad / (a + eps). With a = 0 this stays finite.
type LogOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	eps    float64
}

// NewLogOp creates a new LogOp.
func NewLogOp(input, output *tensor.RawTensor, eps float64) *LogOp {
	return &LogOp{input: input, output: output, eps: eps}
}

// Name returns "log".
func (op *LogOp) Name() string { return "log" }

// Epsilon returns the argument guard used in the forward pass.
func (op *LogOp) Epsilon() float64 { return op.eps }

// Backward computes the input gradient for log.
func (op *LogOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	shifted := backend.AddScalar(op.input, op.eps)
	return []*tensor.RawTensor{backend.Div(outputGrad, shifted)}
}

// Inputs returns [a].
func (op *LogOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns log(a + eps).
func (op *LogOp) Output() *tensor.RawTensor {
	return op.output
}
