package autodiff

import (
	"fmt"

	"github.com/born-ml/gradtrace/internal/autodiff/ops"
	"github.com/born-ml/gradtrace/internal/tensor"
)

// ElementwiseFunc is a differentiable scalar function for Elementwise.
type ElementwiseFunc = ops.ElementwiseFunc

// Add returns a + b with broadcasting.
func (g *Graph) Add(a, b *Node) (*Node, error) {
	if err := g.checkBinary("add", a, b); err != nil {
		return nil, err
	}
	out := g.backend.Add(a.value, b.value)
	return g.add(out, ops.NewAddOp(a.value, b.value, out), []*Node{a, b}, false), nil
}

// Sub returns a - b with broadcasting.
func (g *Graph) Sub(a, b *Node) (*Node, error) {
	if err := g.checkBinary("sub", a, b); err != nil {
		return nil, err
	}
	out := g.backend.Sub(a.value, b.value)
	return g.add(out, ops.NewSubOp(a.value, b.value, out), []*Node{a, b}, false), nil
}

// Neg returns -a.
func (g *Graph) Neg(a *Node) (*Node, error) {
	if err := g.checkOperands("neg", a); err != nil {
		return nil, err
	}
	out := g.backend.Neg(a.value)
	return g.add(out, ops.NewNegOp(a.value, out), []*Node{a}, false), nil
}

// Mul returns the element-wise product a * b with broadcasting.
func (g *Graph) Mul(a, b *Node) (*Node, error) {
	if err := g.checkBinary("mul", a, b); err != nil {
		return nil, err
	}
	out := g.backend.Mul(a.value, b.value)
	return g.add(out, ops.NewMulOp(a.value, b.value, out), []*Node{a, b}, false), nil
}

// Div returns a / (b + ε) with broadcasting, where ε is the graph epsilon.
func (g *Graph) Div(a, b *Node) (*Node, error) {
	if err := g.checkBinary("div", a, b); err != nil {
		return nil, err
	}
	out := g.backend.Div(a.value, g.backend.AddScalar(b.value, g.eps))
	n := g.add(out, ops.NewDivOp(a.value, b.value, out, g.eps), []*Node{a, b}, false)
	g.checkDomain(n)
	return n, nil
}

// MatMul returns the matrix product a @ b.
// Both operands are 2-D ([M,K] @ [K,N]) or both 3-D ([B,M,K] @ [B,K,N]).
func (g *Graph) MatMul(a, b *Node) (*Node, error) {
	if err := g.checkOperands("matmul", a, b); err != nil {
		return nil, err
	}
	if _, err := tensor.MatMulShape(a.Shape(), b.Shape()); err != nil {
		return nil, fmt.Errorf("matmul: %w", err)
	}
	out := g.backend.MatMul(a.value, b.value)
	return g.add(out, ops.NewMatMulOp(a.value, b.value, out), []*Node{a, b}, false), nil
}

// Pow returns a ** p element-wise with broadcasting.
// The exponent is differentiated only when p requires gradients.
// Negative bases with non-integer exponents produce NaN and a DomainWarning.
func (g *Graph) Pow(a, p *Node) (*Node, error) {
	if err := g.checkBinary("pow", a, p); err != nil {
		return nil, err
	}
	out := g.backend.Pow(a.value, p.value)
	n := g.add(out, ops.NewPowOp(a.value, p.value, out, p.requiresGrad), []*Node{a, p}, false)
	g.checkDomain(n)
	return n, nil
}

// PowScalar returns a ** p for a constant exponent.
func (g *Graph) PowScalar(a *Node, p float64) (*Node, error) {
	if err := g.checkOperands("pow", a); err != nil {
		return nil, err
	}
	return g.Pow(a, g.Scalar(p))
}

// Exp returns e ** a.
func (g *Graph) Exp(a *Node) (*Node, error) {
	if err := g.checkOperands("exp", a); err != nil {
		return nil, err
	}
	out := g.backend.Exp(a.value)
	return g.add(out, ops.NewExpOp(a.value, out), []*Node{a}, false), nil
}

// Log returns the natural logarithm of a + ε, where ε is the graph epsilon.
func (g *Graph) Log(a *Node) (*Node, error) {
	if err := g.checkOperands("log", a); err != nil {
		return nil, err
	}
	out := g.backend.Log(g.backend.AddScalar(a.value, g.eps))
	n := g.add(out, ops.NewLogOp(a.value, out, g.eps), []*Node{a}, false)
	g.checkDomain(n)
	return n, nil
}

// Sum reduces a to a 0-d tensor holding the sum of all elements.
func (g *Graph) Sum(a *Node) (*Node, error) {
	if err := g.checkOperands("sum", a); err != nil {
		return nil, err
	}
	out := g.backend.Sum(a.value)
	return g.add(out, ops.NewSumOp(a.value, out), []*Node{a}, false), nil
}

// Transpose swaps the last two axes of a, which must have at least two.
func (g *Graph) Transpose(a *Node) (*Node, error) {
	if err := g.checkOperands("transpose", a); err != nil {
		return nil, err
	}
	ndim := len(a.Shape())
	if ndim < 2 {
		return nil, fmt.Errorf("transpose: %w: need at least 2 dimensions, got %v",
			tensor.ErrShapeMismatch, a.Shape())
	}

	axes := make([]int, ndim)
	for i := range axes {
		axes[i] = i
	}
	axes[ndim-2], axes[ndim-1] = ndim-1, ndim-2

	out := g.backend.Transpose(a.value, axes...)
	return g.add(out, ops.NewTransposeOp(a.value, out, axes), []*Node{a}, false), nil
}

// Elementwise applies fn.F to every element of a. The backward rule
// multiplies the incoming gradient by fn.DF evaluated at a.
//
// Example:
//
//	cos := autodiff.ElementwiseFunc{
//		Name: "cos",
//		F:    math.Cos,
//		DF:   func(x float64) float64 { return -math.Sin(x) },
//	}
//	y, err := g.Elementwise(x, cos)
func (g *Graph) Elementwise(a *Node, fn ElementwiseFunc) (*Node, error) {
	if err := g.checkOperands("elementwise", a); err != nil {
		return nil, err
	}
	if fn.Name == "" || fn.F == nil || fn.DF == nil {
		return nil, fmt.Errorf("elementwise: %w: function needs Name, F and DF", ErrInvalidOperation)
	}
	out := g.backend.Map(a.value, fn.F)
	n := g.add(out, ops.NewElementwiseOp(a.value, out, fn), []*Node{a}, false)
	g.checkDomain(n)
	return n, nil
}

// Record adds a node for a forward computation performed by the caller.
// op.Inputs() must be exactly the operand values (the tensors returned by
// Value) in order, and op.Output() the computed result. The graph takes
// ownership of the output tensor.
//
// Record is the extension point for operations outside the built-in set;
// the walker treats the resulting node like any other.
func (g *Graph) Record(op ops.Operation, operands ...*Node) (*Node, error) {
	if op == nil {
		return nil, fmt.Errorf("record: %w: nil operation", ErrInvalidOperation)
	}
	if len(operands) == 0 || len(operands) > 2 {
		return nil, fmt.Errorf("record %s: %w: %d operands, want 1 or 2",
			op.Name(), ErrInvalidOperation, len(operands))
	}
	if err := g.checkOperands("record "+op.Name(), operands...); err != nil {
		return nil, err
	}

	inputs := op.Inputs()
	if len(inputs) != len(operands) {
		return nil, fmt.Errorf("record %s: %w: %d inputs for %d operands",
			op.Name(), ErrInvalidOperation, len(inputs), len(operands))
	}
	for i, in := range inputs {
		if in != operands[i].value {
			return nil, fmt.Errorf("record %s: %w: input %d is not the value of operand %d",
				op.Name(), ErrInvalidOperation, i, i)
		}
	}

	out := op.Output()
	if out == nil {
		return nil, fmt.Errorf("record %s: %w: nil output", op.Name(), ErrInvalidOperation)
	}
	if err := g.checkValue("record "+op.Name(), out); err != nil {
		return nil, err
	}

	n := g.add(out, op, append([]*Node(nil), operands...), false)
	g.checkDomain(n)
	return n, nil
}

// checkBinary validates operands of a broadcasting binary operation.
// It runs before any kernel so that no node exists for a failed call.
func (g *Graph) checkBinary(name string, a, b *Node) error {
	if err := g.checkOperands(name, a, b); err != nil {
		return err
	}
	if _, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape()); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
