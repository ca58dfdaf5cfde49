package cpu

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/born-ml/gradtrace/internal/parallel"
	"github.com/born-ml/gradtrace/internal/tensor"
)

func add[T constraints.Float](x, y T) T { return x + y }
func sub[T constraints.Float](x, y T) T { return x - y }
func mul[T constraints.Float](x, y T) T { return x * y }
func div[T constraints.Float](x, y T) T { return x / y }

func pow[T constraints.Float](x, y T) T {
	return T(math.Pow(float64(x), float64(y)))
}

// binaryKernel computes dst[i] = op(a[ia], b[ib]) over the output shape.
// When broadcast is false a, b and dst share one shape and are walked linearly.
func binaryKernel[T constraints.Float](
	dst, a, b []T,
	aShape, bShape, outShape tensor.Shape,
	broadcast bool,
	op func(x, y T) T,
	cfg parallel.Config,
) {
	if !broadcast {
		parallel.For(len(dst), func(i int) {
			dst[i] = op(a[i], b[i])
		}, cfg)
		return
	}

	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	parallel.For(len(dst), func(i int) {
		aIdx := computeFlatIndex(i, outStrides, aStrides)
		bIdx := computeFlatIndex(i, outStrides, bStrides)
		dst[i] = op(a[aIdx], b[bIdx])
	}, cfg)
}

// unaryKernel computes dst[i] = f(src[i]) in float64 precision.
func unaryKernel[T constraints.Float](dst, src []T, f func(float64) float64, cfg parallel.Config) {
	parallel.For(len(dst), func(i int) {
		dst[i] = T(f(float64(src[i])))
	}, cfg)
}
