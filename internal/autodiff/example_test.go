package autodiff_test

import (
	"fmt"
	"math"

	"github.com/born-ml/gradtrace/internal/autodiff"
	"github.com/born-ml/gradtrace/internal/backend/cpu"
	"github.com/born-ml/gradtrace/internal/tensor"
)

func Example() {
	g := autodiff.New(cpu.New())

	x := autodiff.Must(g.Variable([]float64{3}, tensor.Shape{1}))
	y := autodiff.Must(g.Add(autodiff.Must(g.Mul(x, x)), x)) // y = x² + x

	if err := g.Backward(y); err != nil {
		panic(err)
	}

	fmt.Println(y.Value().Item(), x.Grad().Item())
	// Output: 12 7
}

func ExampleGraph_Elementwise() {
	cos := autodiff.ElementwiseFunc{
		Name: "cos",
		F:    math.Cos,
		DF:   func(x float64) float64 { return -math.Sin(x) },
	}

	g := autodiff.New(cpu.New())
	x := autodiff.Must(g.Variable([]float64{math.Pi / 6, math.Pi / 2}, tensor.Shape{2}))
	y := autodiff.Must(g.Elementwise(x, cos))

	if err := g.Backward(autodiff.Must(g.Sum(y))); err != nil {
		panic(err)
	}

	fmt.Printf("%s %.3f\n", y.Op(), x.Grad().AsFloat64())
	// Output: cos [-0.500 -1.000]
}

// cubeOp is a user-defined operation: output = input³.
type cubeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func (op *cubeOp) Name() string { return "cube" }

func (op *cubeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	// d(x³)/dx = 3x²
	local := backend.MulScalar(backend.Mul(op.input, op.input), 3)
	return []*tensor.RawTensor{backend.Mul(outputGrad, local)}
}

func (op *cubeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

func (op *cubeOp) Output() *tensor.RawTensor { return op.output }

func ExampleGraph_Record() {
	backend := cpu.New()
	g := autodiff.New(backend)

	x := autodiff.Must(g.Variable([]float64{2}, tensor.Shape{1}))

	// Run the forward pass, then hand the result to the graph.
	in := x.Value()
	out := backend.Mul(backend.Mul(in, in), in)
	y := autodiff.Must(g.Record(&cubeOp{input: in, output: out}, x))

	if err := g.Backward(y); err != nil {
		panic(err)
	}

	fmt.Println(y.Op(), y.Value().Item(), x.Grad().Item())
	// Output: cube 8 12
}
