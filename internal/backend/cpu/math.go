package cpu

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/gradtrace/internal/tensor"
)

// Exp computes element-wise exponential: exp(x).
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("exp", x, math.Exp)
}

// Log computes element-wise natural logarithm: ln(x).
// Non-positive inputs yield -Inf or NaN; domain guarding is the caller's concern.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("log", x, math.Log)
}

// Neg computes element-wise negation: -x.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.MulScalar(x, -1)
}

// Map applies f to every element, computing in float64 precision.
// It is the kernel behind user-defined elementwise operations.
func (cpu *CPUBackend) Map(x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	return cpu.unary("map", x, f)
}

// AddScalar adds a scalar to every element: x + s.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	result := cpu.alloc("addScalar", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		v := float32(s)
		for i := range src {
			dst[i] = src[i] + v
		}
	case tensor.Float64:
		dst := result.AsFloat64()
		copy(dst, x.AsFloat64())
		floats.AddConst(s, dst)
	default:
		panic(fmt.Sprintf("addScalar: unsupported dtype %s", x.DType()))
	}

	return result
}

// MulScalar multiplies every element by a scalar: x * s.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	result := cpu.alloc("mulScalar", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		v := float32(s)
		for i := range src {
			dst[i] = src[i] * v
		}
	case tensor.Float64:
		floats.ScaleTo(result.AsFloat64(), s, x.AsFloat64())
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %s", x.DType()))
	}

	return result
}

func (cpu *CPUBackend) unary(name string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result := cpu.alloc(name, x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		unaryKernel(result.AsFloat32(), x.AsFloat32(), f, cpu.parallel)
	case tensor.Float64:
		unaryKernel(result.AsFloat64(), x.AsFloat64(), f, cpu.parallel)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", name, x.DType()))
	}

	return result
}
