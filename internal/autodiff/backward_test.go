package autodiff_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradtrace/internal/autodiff"
	"github.com/born-ml/gradtrace/internal/tensor"
)

// identityOp passes gradients through unchanged and counts backward calls.
type identityOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	calls  *int
}

func (op *identityOp) Name() string { return "identity" }

func (op *identityOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	*op.calls++
	return []*tensor.RawTensor{outputGrad}
}

func (op *identityOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *identityOp) Output() *tensor.RawTensor { return op.output }

// badShapeOp violates the rule contract by returning a gradient of the wrong shape.
type badShapeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func (op *badShapeOp) Name() string { return "bad" }

func (op *badShapeOp) Backward(*tensor.RawTensor, tensor.Backend) []*tensor.RawTensor {
	g, _ := tensor.Ones(tensor.Shape{5}, tensor.Float64)
	return []*tensor.RawTensor{g}
}

func (op *badShapeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *badShapeOp) Output() *tensor.RawTensor { return op.output }

// TestBackward_SharedNode: y = x*x + x, dy/dx = 2x + 1.
func TestBackward_SharedNode(t *testing.T) {
	g := newGraph()
	x := variable(t, g, []float64{3, -1, 0.5}, 3)

	sq := autodiff.Must(g.Mul(x, x))
	y := autodiff.Must(g.Add(sq, x))

	require.NoError(t, g.Backward(y))

	assert.Equal(t, []float64{7, -1, 2}, x.Grad().AsFloat64())
	// Intermediate nodes keep their gradients too.
	assert.Equal(t, []float64{1, 1, 1}, sq.Grad().AsFloat64())
	assert.Equal(t, []float64{1, 1, 1}, y.Grad().AsFloat64())
}

// TestBackward_BroadcastReduction: (3,2) + (1,) seeded with ones gives b.grad = 6.
func TestBackward_BroadcastReduction(t *testing.T) {
	g := newGraph()
	a := variable(t, g, []float64{1, 2, 3, 4, 5, 6}, 3, 2)
	b := variable(t, g, []float64{10}, 1)

	c := autodiff.Must(g.Add(a, b))
	require.Equal(t, tensor.Shape{3, 2}, c.Shape())

	require.NoError(t, g.Backward(c))

	assert.Equal(t, tensor.Shape{1}, b.Grad().Shape())
	assert.Equal(t, []float64{6}, b.Grad().AsFloat64())
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, a.Grad().AsFloat64())
}

// TestBackward_Diamond: y = (s+b)*(s-b) with s = identity(a); the shared
// node's rule runs exactly once and dy/da = 2a, dy/db = -2b.
func TestBackward_Diamond(t *testing.T) {
	g := newGraph()
	a := variable(t, g, []float64{3}, 1)
	b := variable(t, g, []float64{2}, 1)

	calls := 0
	s, err := g.Record(&identityOp{input: a.Value(), output: a.Value().Clone(), calls: &calls}, a)
	require.NoError(t, err)

	sum := autodiff.Must(g.Add(s, b))
	diff := autodiff.Must(g.Sub(s, b))
	y := autodiff.Must(g.Mul(sum, diff))

	require.NoError(t, g.Backward(y))

	assert.Equal(t, 1, calls)
	assert.Equal(t, []float64{6}, a.Grad().AsFloat64())
	assert.Equal(t, []float64{-4}, b.Grad().AsFloat64())
}

// TestBackward_LogZeroGuard: the gradient of log at zero is finite.
func TestBackward_LogZeroGuard(t *testing.T) {
	g := newGraph()
	x := variable(t, g, []float64{0}, 1)

	y := autodiff.Must(g.Log(x))
	require.NoError(t, g.Backward(y))

	assert.False(t, math.IsInf(y.Value().Item(), 0))
	grad := x.Grad().Item()
	assert.False(t, math.IsInf(grad, 0) || math.IsNaN(grad))
	assert.InDelta(t, 1/autodiff.DefaultEpsilon, grad, 1e-3)
}

// TestBackward_DivZeroGuard: dividing by zero gives finite gradients.
func TestBackward_DivZeroGuard(t *testing.T) {
	g := newGraph()
	a := variable(t, g, []float64{1}, 1)
	b := variable(t, g, []float64{0}, 1)

	y := autodiff.Must(g.Div(a, b))
	require.NoError(t, g.Backward(y))

	for _, n := range []*autodiff.Node{a, b} {
		v := n.Grad().Item()
		assert.False(t, math.IsInf(v, 0) || math.IsNaN(v), "node %d grad %v", n.ID(), v)
	}
}

// TestBackward_ReseedAccumulates: a second pass doubles every gradient.
func TestBackward_ReseedAccumulates(t *testing.T) {
	g := newGraph()
	x := variable(t, g, []float64{3}, 1)
	w := variable(t, g, []float64{0.5}, 1)

	h := autodiff.Must(g.Mul(x, w))
	y := autodiff.Must(g.Add(autodiff.Must(g.Exp(h)), x))

	require.NoError(t, g.Backward(y))
	first := map[*autodiff.Node]float64{x: x.Grad().Item(), w: w.Grad().Item(), h: h.Grad().Item()}

	require.NoError(t, g.Backward(y))
	for n, v := range first {
		assert.Equal(t, 2*v, n.Grad().Item(), "node %d", n.ID())
	}
}

func TestBackward_ZeroGrad(t *testing.T) {
	g := newGraph()
	x := variable(t, g, []float64{2}, 1)
	w := variable(t, g, []float64{5}, 1)
	y := autodiff.Must(g.Mul(x, w))

	require.NoError(t, g.Backward(y))
	x.ZeroGrad()
	assert.Equal(t, 0.0, x.Grad().Item())
	assert.Equal(t, 2.0, w.Grad().Item())

	g.ZeroGrad()
	assert.Equal(t, 0.0, w.Grad().Item())

	require.NoError(t, g.Backward(y))
	assert.Equal(t, 5.0, x.Grad().Item())
}

// TestBackward_MatMulShapes: (3,2) @ (2,4) yields gradients of the operand shapes.
func TestBackward_MatMulShapes(t *testing.T) {
	g := newGraph()
	a := variable(t, g, []float64{1, 2, 3, 4, 5, 6}, 3, 2)
	b := variable(t, g, []float64{1, 0, 0, 1, 0, 1, 1, 0}, 2, 4)

	c := autodiff.Must(g.MatMul(a, b))
	require.Equal(t, tensor.Shape{3, 4}, c.Shape())

	require.NoError(t, g.Backward(c))

	assert.Equal(t, tensor.Shape{3, 2}, a.Grad().Shape())
	assert.Equal(t, tensor.Shape{2, 4}, b.Grad().Shape())
	// Each row of b sums to 2; each column of a sums to 9 and 12.
	assert.Equal(t, []float64{2, 2, 2, 2, 2, 2}, a.Grad().AsFloat64())
	assert.Equal(t, []float64{9, 9, 9, 9, 12, 12, 12, 12}, b.Grad().AsFloat64())
}

func TestBackward_ConstantsStayZero(t *testing.T) {
	g := newGraph()
	x := variable(t, g, []float64{1, 2}, 2)
	c := g.Scalar(3)

	y := autodiff.Must(g.Mul(x, c))
	require.NoError(t, g.Backward(y))

	assert.Equal(t, []float64{3, 3}, x.Grad().AsFloat64())
	assert.Equal(t, 0.0, c.Grad().Item())
}

func TestBackward_ConstantRoot(t *testing.T) {
	g := newGraph()
	c := g.Scalar(3)
	y := autodiff.Must(g.Exp(c))

	require.NoError(t, g.Backward(y))
	assert.Equal(t, 0.0, y.Grad().Item())
}

func TestBackward_ExponentGradient(t *testing.T) {
	g := newGraph()
	a := variable(t, g, []float64{2}, 1)
	p := variable(t, g, []float64{3}, 1)

	y := autodiff.Must(g.Pow(a, p))
	require.NoError(t, g.Backward(y))

	assert.InDelta(t, 12.0, a.Grad().Item(), 1e-12)          // p * a^(p-1)
	assert.InDelta(t, 8*math.Log(2), p.Grad().Item(), 1e-12) // a^p * ln a
}

func TestBackward_Seed(t *testing.T) {
	g := newGraph()
	x := variable(t, g, []float64{1, 2}, 2)
	y := autodiff.Must(g.Mul(x, x))

	seed, _ := tensor.FromFloat64s([]float64{0.5, -1}, tensor.Shape{2}, tensor.Float64)
	require.NoError(t, g.BackwardWithSeed(y, seed))

	assert.Equal(t, []float64{1, -4}, x.Grad().AsFloat64())
	// The caller's seed is not retained.
	seed.AsFloat64()[0] = 100
	assert.Equal(t, 0.5, y.Grad().AsFloat64()[0])
}

func TestBackward_SeedErrors(t *testing.T) {
	g := newGraph()
	x := variable(t, g, []float64{1, 2}, 2)
	y := autodiff.Must(g.Mul(x, x))

	wrongShape, _ := tensor.Ones(tensor.Shape{3}, tensor.Float64)
	err := g.BackwardWithSeed(y, wrongShape)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	wrongType, _ := tensor.Ones(tensor.Shape{2}, tensor.Float32)
	err = g.BackwardWithSeed(y, wrongType)
	assert.ErrorIs(t, err, autodiff.ErrDTypeMismatch)

	assert.Equal(t, []float64{0, 0}, x.Grad().AsFloat64())
}

func TestBackward_BadRuleAppliesNothing(t *testing.T) {
	g := newGraph()
	x := variable(t, g, []float64{1, 2}, 2)

	bad, err := g.Record(&badShapeOp{input: x.Value(), output: x.Value().Clone()}, x)
	require.NoError(t, err)
	y := autodiff.Must(g.Add(bad, x))

	err = g.Backward(y)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	assert.Equal(t, []float64{0, 0}, x.Grad().AsFloat64())
	assert.Equal(t, []float64{0, 0}, y.Grad().AsFloat64())
}

func TestBackward_DeepChain(t *testing.T) {
	g := newGraph()
	x := variable(t, g, []float64{1}, 1)
	one := g.Scalar(1)

	y := x
	for range 10000 {
		y = autodiff.Must(g.Add(y, one))
	}

	require.NoError(t, g.Backward(y))
	assert.Equal(t, 10001.0, y.Value().Item())
	assert.Equal(t, 1.0, x.Grad().Item())
}

func TestBackward_Float32(t *testing.T) {
	g := newGraph(autodiff.WithDType(tensor.Float32))
	x := variable(t, g, []float64{3}, 1)

	y := autodiff.Must(g.Add(autodiff.Must(g.Mul(x, x)), x))
	require.NoError(t, g.Backward(y))

	grad := x.Grad()
	assert.Equal(t, tensor.Float32, grad.DType())
	assert.Equal(t, float32(7), grad.AsFloat32()[0])
}

func TestBackward_LogsPass(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := newGraph(autodiff.WithLogger(logger))

	x := variable(t, g, []float64{1}, 1)
	y := autodiff.Must(g.Exp(x))
	require.NoError(t, g.Backward(y))

	assert.Contains(t, buf.String(), `msg="backward pass"`)
	assert.Contains(t, buf.String(), "nodes=2")
}

func TestRecord_Validation(t *testing.T) {
	g := newGraph()
	x := variable(t, g, []float64{1, 2}, 2)
	calls := 0

	_, err := g.Record(nil, x)
	assert.ErrorIs(t, err, autodiff.ErrInvalidOperation)

	op := &identityOp{input: x.Value(), output: x.Value().Clone(), calls: &calls}
	_, err = g.Record(op)
	assert.ErrorIs(t, err, autodiff.ErrInvalidOperation)

	stranger := &identityOp{input: x.Value().Clone(), output: x.Value().Clone(), calls: &calls}
	_, err = g.Record(stranger, x)
	assert.ErrorIs(t, err, autodiff.ErrInvalidOperation)

	noOutput := &identityOp{input: x.Value(), calls: &calls}
	_, err = g.Record(noOutput, x)
	assert.ErrorIs(t, err, autodiff.ErrInvalidOperation)

	_, err = g.Record(op, x, x, x)
	assert.ErrorIs(t, err, autodiff.ErrInvalidOperation)

	n, err := g.Record(op, x)
	require.NoError(t, err)
	assert.Equal(t, "identity", n.Op())
	assert.True(t, n.RequiresGrad())
}
