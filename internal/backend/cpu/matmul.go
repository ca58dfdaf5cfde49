package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/gradtrace/internal/parallel"
	"github.com/born-ml/gradtrace/internal/tensor"
)

// MatMul performs matrix multiplication.
//
//	[M, K] @ [K, N]       -> [M, N]
//	[B, M, K] @ [B, K, N] -> [B, M, N]
//
// Float64 goes through gonum's mat.Dense, float32 through blas32.Gemm.
// Batches are independent and may run in parallel.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	outShape, err := tensor.MatMulShape(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("matmul: %v", err))
	}

	aShape := a.Shape()
	nd := len(aShape)
	batch := 1
	if nd == 3 {
		batch = aShape[0]
	}
	m, k, n := aShape[nd-2], aShape[nd-1], outShape[len(outShape)-1]

	result := cpu.alloc("matmul", outShape, a.DType())

	// Parallelize across batches only; each product is a single library call.
	cfg := cpu.parallel
	cfg.MinChunkSize = 1

	switch a.DType() {
	case tensor.Float32:
		aData, bData, cData := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
		parallel.For(batch, func(i int) {
			matmulFloat32(
				cData[i*m*n:(i+1)*m*n],
				aData[i*m*k:(i+1)*m*k],
				bData[i*k*n:(i+1)*k*n],
				m, k, n)
		}, cfg)
	case tensor.Float64:
		aData, bData, cData := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
		parallel.For(batch, func(i int) {
			matmulFloat64(
				cData[i*m*n:(i+1)*m*n],
				aData[i*m*k:(i+1)*m*k],
				bData[i*k*n:(i+1)*k*n],
				m, k, n)
		}, cfg)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}

	return result
}

// matmulFloat64 computes c = a @ b for row-major slices via gonum/mat.
// mat.NewDense wraps the slices without copying, so the product lands in c.
func matmulFloat64(c, a, b []float64, m, k, n int) {
	dst := mat.NewDense(m, n, c)
	dst.Mul(mat.NewDense(m, k, a), mat.NewDense(k, n, b))
}

// matmulFloat32 computes c = a @ b for row-major slices via blas32 GEMM.
func matmulFloat32(c, a, b []float32, m, k, n int) {
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas32.General{Rows: m, Cols: k, Stride: k, Data: a},
		blas32.General{Rows: k, Cols: n, Stride: n, Data: b},
		0,
		blas32.General{Rows: m, Cols: n, Stride: n, Data: c},
	)
}
