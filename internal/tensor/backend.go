package tensor

// Backend defines the numeric kernels the autodiff engine consumes.
// Backends handle the actual computation for tensor operations; they never
// mutate their operands and always return a freshly allocated result.
//
// Kernels panic on shape or dtype violations. Callers that need error values
// (the autodiff layer) validate operands first with BroadcastShapes and MatMulShape.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor
	Pow(a, b *RawTensor) *RawTensor

	// Matrix operations
	// MatMul supports [M,K]@[K,N] and batched [B,M,K]@[B,K,N].
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor
	Expand(x *RawTensor, shape Shape) *RawTensor // broadcast to shape

	// Scalar operations (element-wise with scalar)
	AddScalar(x *RawTensor, scalar float64) *RawTensor
	MulScalar(x *RawTensor, scalar float64) *RawTensor

	// Math operations (element-wise)
	Neg(x *RawTensor) *RawTensor
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Map(x *RawTensor, f func(float64) float64) *RawTensor

	// Reduction operations
	Sum(x *RawTensor) *RawTensor                // total sum (0-d result)
	SumTo(x *RawTensor, shape Shape) *RawTensor // sum over broadcast axes down to shape

	// Metadata
	Name() string
	Device() Device
}
