// Package autodiff implements reverse-mode automatic differentiation over
// eagerly evaluated computation graphs.
//
// Architecture:
//   - Graph: an append-only arena of nodes plus a gradient buffer indexed by NodeID
//   - Node: a handle to one arena entry (value, operands, backward rule)
//   - ops.Operation: the backward rule of each non-leaf node
//   - Backward: orders the nodes reachable from a root consumer-first and
//     applies each rule exactly once, accumulating into operand gradients
//
// Every operation runs its forward kernel immediately, so values are
// available as soon as a node exists. Operand IDs are always smaller than the
// consumer's ID, which makes graphs built through this API acyclic.
//
// Usage:
//
//	g := autodiff.New(cpu.New())
//	x := autodiff.Must(g.Variable([]float64{3}, tensor.Shape{1}))
//	y := autodiff.Must(g.Mul(x, x)) // y = x²
//
//	if err := g.Backward(y); err != nil {
//		return err
//	}
//	fmt.Println(x.Grad()) // dy/dx = 2x = 6
package autodiff

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/born-ml/gradtrace/internal/autodiff/ops"
	"github.com/born-ml/gradtrace/internal/tensor"
)

// NodeID identifies a node within its Graph. IDs are assigned in creation order.
type NodeID int

// Graph owns a set of nodes and their gradients.
//
// Construction methods and Backward may be called from multiple goroutines;
// node creation and gradient updates are serialized by an internal lock.
type Graph struct {
	backend         tensor.Backend
	eps             float64
	dtype           tensor.DataType
	logger          *slog.Logger
	onDomainWarning []func(DomainWarning)

	mu    sync.Mutex
	nodes []*Node
	grads []*tensor.RawTensor // nil entry = zero gradient
}

// New creates an empty graph computing on backend.
func New(backend tensor.Backend, opts ...Option) *Graph {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	return &Graph{
		backend:         backend,
		eps:             options.eps,
		dtype:           options.dtype,
		logger:          options.logger,
		onDomainWarning: options.onDomainWarning,
	}
}

// Backend returns the backend the graph computes on.
func (g *Graph) Backend() tensor.Backend {
	return g.backend
}

// Epsilon returns the guard used by Div and Log.
func (g *Graph) Epsilon() float64 {
	return g.eps
}

// DType returns the element type shared by all nodes of the graph.
func (g *Graph) DType() tensor.DataType {
	return g.dtype
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nodes)
}

// Node is a vertex of the computation graph: a value and, for non-leaves,
// the operation and operands that produced it.
//
// Nodes are created by Graph methods and are immutable afterwards; only the
// gradient changes, through Backward and ZeroGrad.
type Node struct {
	graph        *Graph
	id           NodeID
	value        *tensor.RawTensor
	op           ops.Operation // nil for leaves
	operands     []*Node
	requiresGrad bool
}

// ID returns the node's identifier within its graph.
func (n *Node) ID() NodeID { return n.id }

// Graph returns the graph owning the node.
func (n *Node) Graph() *Graph { return n.graph }

// Value returns the forward value. The tensor is shared with the graph
// and must not be modified.
func (n *Node) Value() *tensor.RawTensor { return n.value }

// Shape returns the shape of the value.
func (n *Node) Shape() tensor.Shape { return n.value.Shape() }

// Op returns the op tag, or "" for leaves.
func (n *Node) Op() string {
	if n.op == nil {
		return ""
	}
	return n.op.Name()
}

// Operation returns the backward rule, or nil for leaves.
func (n *Node) Operation() ops.Operation { return n.op }

// Operands returns the nodes this node was computed from, in argument order.
func (n *Node) Operands() []*Node {
	return append([]*Node(nil), n.operands...)
}

// IsLeaf reports whether the node has no operands.
func (n *Node) IsLeaf() bool { return n.op == nil }

// RequiresGrad reports whether Backward propagates into this node.
func (n *Node) RequiresGrad() bool { return n.requiresGrad }

// Grad returns a copy of the accumulated gradient, with the value's shape.
// Nodes that never received a gradient report zeros.
func (n *Node) Grad() *tensor.RawTensor {
	g := n.graph
	g.mu.Lock()
	defer g.mu.Unlock()

	if grad := g.grads[n.id]; grad != nil {
		return grad.Clone()
	}
	return tensor.ZerosLike(n.value)
}

// ZeroGrad resets the node's gradient to zeros.
func (n *Node) ZeroGrad() {
	g := n.graph
	g.mu.Lock()
	g.grads[n.id] = nil
	g.mu.Unlock()
}

func (n *Node) String() string {
	if n.op == nil {
		return fmt.Sprintf("Node(%d, leaf, %v)", n.id, n.value.Shape())
	}
	return fmt.Sprintf("Node(%d, %s, %v)", n.id, n.op.Name(), n.value.Shape())
}

// Leaf adds an input node that requires gradients. The value is copied.
func (g *Graph) Leaf(value *tensor.RawTensor) (*Node, error) {
	if err := g.checkValue("leaf", value); err != nil {
		return nil, err
	}
	return g.add(value.Clone(), nil, nil, true), nil
}

// Constant adds an input node that does not require gradients. The value is copied.
func (g *Graph) Constant(value *tensor.RawTensor) (*Node, error) {
	if err := g.checkValue("constant", value); err != nil {
		return nil, err
	}
	return g.add(value.Clone(), nil, nil, false), nil
}

// Variable adds a gradient-requiring leaf built from data, converted to the
// graph's dtype.
//
// Example:
//
//	w, err := g.Variable([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
func (g *Graph) Variable(data []float64, shape tensor.Shape) (*Node, error) {
	value, err := tensor.FromFloat64s(data, shape, g.dtype)
	if err != nil {
		return nil, fmt.Errorf("variable: %w", err)
	}
	return g.add(value, nil, nil, true), nil
}

// Scalar adds a 0-d constant.
func (g *Graph) Scalar(v float64) *Node {
	value, err := tensor.Full(tensor.Shape{}, v, g.dtype)
	if err != nil {
		panic(fmt.Sprintf("scalar: %v", err))
	}
	return g.add(value, nil, nil, false)
}

// Must returns n and panics if err is non-nil.
// It is intended for building graphs whose shapes are known to be valid.
//
//	y := autodiff.Must(g.Add(x, g.Scalar(1)))
func Must(n *Node, err error) *Node {
	if err != nil {
		panic(err)
	}
	return n
}

// add appends a node to the arena. requiresGrad is OR-ed with the operands'.
func (g *Graph) add(value *tensor.RawTensor, op ops.Operation, operands []*Node, requiresGrad bool) *Node {
	for _, operand := range operands {
		requiresGrad = requiresGrad || operand.requiresGrad
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	n := &Node{
		graph:        g,
		id:           NodeID(len(g.nodes)),
		value:        value,
		op:           op,
		operands:     operands,
		requiresGrad: requiresGrad,
	}
	g.nodes = append(g.nodes, n)
	g.grads = append(g.grads, nil)
	return n
}

func (g *Graph) checkValue(name string, value *tensor.RawTensor) error {
	if value == nil {
		return fmt.Errorf("%s: nil value", name)
	}
	if value.DType() != g.dtype {
		return fmt.Errorf("%s: %w: got %s, graph uses %s", name, ErrDTypeMismatch, value.DType(), g.dtype)
	}
	return nil
}

// checkOperands verifies that every operand is non-nil and owned by g.
func (g *Graph) checkOperands(name string, operands ...*Node) error {
	for i, n := range operands {
		if n == nil {
			return fmt.Errorf("%s: operand %d: %w", name, i, ErrNilNode)
		}
		if n.graph != g {
			return fmt.Errorf("%s: operand %d: %w", name, i, ErrForeignNode)
		}
	}
	return nil
}
