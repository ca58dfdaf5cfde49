package autodiff

import (
	"fmt"
	"slices"

	"github.com/born-ml/gradtrace/internal/tensor"
)

// Backward accumulates d(root)/d(node) into the gradient of every node that
// root depends on and that requires gradients, seeding root with ones.
//
// Gradients add to what earlier passes stored; call ZeroGrad to start over.
func (g *Graph) Backward(root *Node) error {
	return g.BackwardWithSeed(root, nil)
}

// BackwardWithSeed is Backward with an explicit root gradient. seed must have
// the root's shape and the graph's dtype; nil means ones.
//
// Algorithm:
//  1. Order the nodes reachable from root consumer-first (reverse DFS postorder)
//  2. Give root the seed
//  3. Visit each node once, passing its fully accumulated gradient to its
//     operation and adding the results to the operands' gradients
//  4. Add this pass's gradients to the stored ones
//
// Nothing is stored unless the whole pass succeeds. A cycle yields a
// *CyclicGraphError.
func (g *Graph) BackwardWithSeed(root *Node, seed *tensor.RawTensor) error {
	if err := g.checkOperands("backward", root); err != nil {
		return err
	}

	if seed == nil {
		seed = tensor.OnesLike(root.value)
	} else {
		if !seed.Shape().Equal(root.Shape()) {
			return fmt.Errorf("backward: %w: seed %v for root %v",
				tensor.ErrShapeMismatch, seed.Shape(), root.Shape())
		}
		if seed.DType() != root.value.DType() {
			return fmt.Errorf("backward: %w: seed %s for root %s",
				ErrDTypeMismatch, seed.DType(), root.value.DType())
		}
		seed = seed.Clone()
	}

	if !root.requiresGrad {
		g.logger.Debug("backward pass", "root", int(root.id), "nodes", 0)
		return nil
	}

	order, err := topoSort(root)
	if err != nil {
		return err
	}

	pass := make(map[NodeID]*tensor.RawTensor, len(order))
	pass[root.id] = seed

	for _, n := range order {
		grad := pass[n.id]
		if n.op == nil || grad == nil {
			continue
		}

		inputGrads := n.op.Backward(grad, g.backend)
		if len(inputGrads) != len(n.operands) {
			return fmt.Errorf("backward: %s (node %d): %w: %d gradients for %d operands",
				n.op.Name(), n.id, ErrInvalidOperation, len(inputGrads), len(n.operands))
		}

		for i, operand := range n.operands {
			contrib := inputGrads[i]
			if contrib == nil || !operand.requiresGrad {
				continue
			}
			if !contrib.Shape().Equal(operand.Shape()) {
				return fmt.Errorf("backward: %s (node %d): %w: gradient %v for operand %v",
					n.op.Name(), n.id, tensor.ErrShapeMismatch, contrib.Shape(), operand.Shape())
			}

			// Accumulate: the same operand may appear several times.
			if prev := pass[operand.id]; prev != nil {
				pass[operand.id] = g.backend.Add(prev, contrib)
			} else {
				pass[operand.id] = contrib
			}
		}
	}

	g.mu.Lock()
	for id, grad := range pass {
		if prev := g.grads[id]; prev != nil {
			g.grads[id] = g.backend.Add(prev, grad)
		} else {
			g.grads[id] = grad
		}
	}
	g.mu.Unlock()

	g.logger.Debug("backward pass", "root", int(root.id), "nodes", len(order))
	return nil
}

// ZeroGrad resets every gradient in the graph to zeros.
func (g *Graph) ZeroGrad() {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.grads)
}

// Visit states for topoSort.
const (
	unvisited uint8 = iota
	inProgress
	done
)

// topoSort returns the gradient-requiring nodes reachable from root in
// reverse DFS postorder: every node precedes all of its operands.
// The DFS is iterative so deep chains do not grow the goroutine stack.
func topoSort(root *Node) ([]*Node, error) {
	type frame struct {
		node *Node
		next int // index of the next operand to explore
	}

	state := map[NodeID]uint8{root.id: inProgress}
	stack := []frame{{node: root}}
	var postorder []*Node

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next < len(top.node.operands) {
			child := top.node.operands[top.next]
			top.next++

			if !child.requiresGrad {
				continue
			}
			switch state[child.id] {
			case inProgress:
				return nil, &CyclicGraphError{Node: child.id}
			case done:
				continue
			}

			state[child.id] = inProgress
			stack = append(stack, frame{node: child})
			continue
		}

		state[top.node.id] = done
		postorder = append(postorder, top.node)
		stack = stack[:len(stack)-1]
	}

	slices.Reverse(postorder)
	return postorder, nil
}
