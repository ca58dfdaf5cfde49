// Package cpu implements the CPU backend: pure Go elementwise kernels with
// NumPy-style broadcasting and gonum-backed matrix multiplication.
package cpu

import (
	"fmt"

	"github.com/born-ml/gradtrace/internal/parallel"
	"github.com/born-ml/gradtrace/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend with the default parallel configuration.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend that splits large kernels according to cfg.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, add[float32], add[float64])
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, sub[float32], sub[float64])
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, mul[float32], mul[float64])
}

// Div performs element-wise division with broadcasting.
// Division by zero follows IEEE 754 (±Inf or NaN).
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b, div[float32], div[float64])
}

// Pow raises a to the power b element-wise with broadcasting.
// Out-of-domain inputs (negative base, fractional exponent) produce NaN.
func (cpu *CPUBackend) Pow(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("pow", a, b, pow[float32], pow[float64])
}

// binary validates operands, allocates the broadcast result and dispatches on dtype.
func (cpu *CPUBackend) binary(
	name string,
	a, b *tensor.RawTensor,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result := cpu.alloc(name, outShape, a.DType())

	switch a.DType() {
	case tensor.Float32:
		binaryKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(),
			a.Shape(), b.Shape(), outShape, needsBroadcast, f32, cpu.parallel)
	case tensor.Float64:
		binaryKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(),
			a.Shape(), b.Shape(), outShape, needsBroadcast, f64, cpu.parallel)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}

	return result
}

// alloc creates a zeroed result tensor on this backend's device.
func (cpu *CPUBackend) alloc(name string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}
	return result
}
