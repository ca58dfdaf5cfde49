package autodiff

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradtrace/internal/backend/cpu"
	"github.com/born-ml/gradtrace/internal/tensor"
)

// Graphs built through the public API are acyclic, so these tests rewire
// operands directly.

func TestTopoSort_ConsumersFirst(t *testing.T) {
	g := New(cpu.New())
	a := Must(g.Variable([]float64{3}, tensor.Shape{1}))
	b := Must(g.Variable([]float64{2}, tensor.Shape{1}))
	sum := Must(g.Add(a, b))
	diff := Must(g.Sub(a, b))
	y := Must(g.Mul(sum, diff))

	order, err := topoSort(y)
	require.NoError(t, err)
	require.Len(t, order, 5)
	assert.Same(t, y, order[0])

	pos := make(map[NodeID]int, len(order))
	for i, n := range order {
		_, dup := pos[n.id]
		require.False(t, dup, "node %d visited twice", n.id)
		pos[n.id] = i
	}
	for _, n := range order {
		for _, operand := range n.operands {
			assert.Less(t, pos[n.id], pos[operand.id], "node %d must precede operand %d", n.id, operand.id)
		}
	}
}

func TestTopoSort_SkipsNonDifferentiable(t *testing.T) {
	g := New(cpu.New())
	x := Must(g.Variable([]float64{1}, tensor.Shape{1}))
	c := g.Scalar(2)
	y := Must(g.Mul(x, c))

	order, err := topoSort(y)
	require.NoError(t, err)
	assert.Equal(t, []*Node{y, x}, order)
}

func TestBackward_CycleDetected(t *testing.T) {
	g := New(cpu.New())
	x := Must(g.Variable([]float64{2}, tensor.Shape{1}))
	y := Must(g.Mul(x, x))
	z := Must(g.Add(y, x))

	// y now consumes z, which consumes y.
	y.operands[0] = z

	err := g.Backward(z)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCyclicGraph))

	var cycleErr *CyclicGraphError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, z.id, cycleErr.Node)

	// Nothing was applied.
	for _, n := range []*Node{x, y, z} {
		assert.Equal(t, 0.0, n.Grad().Item(), "node %d", n.id)
	}
}

func TestBackward_SelfLoop(t *testing.T) {
	g := New(cpu.New())
	x := Must(g.Variable([]float64{2}, tensor.Shape{1}))
	y := Must(g.Exp(x))
	y.operands[0] = y

	err := g.Backward(y)
	assert.ErrorIs(t, err, ErrCyclicGraph)
}

func TestBackward_WrongGradientCount(t *testing.T) {
	g := New(cpu.New())
	x := Must(g.Variable([]float64{2}, tensor.Shape{1}))
	w := Must(g.Variable([]float64{3}, tensor.Shape{1}))
	y := Must(g.Exp(x))

	// exp returns one gradient; give it two operands.
	y.operands = append(y.operands, w)

	err := g.Backward(y)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, 0.0, x.Grad().Item())
}
