package autodiff

import (
	"errors"
	"fmt"
)

var (
	// ErrDTypeMismatch is returned when a tensor's element type differs
	// from the graph's.
	ErrDTypeMismatch = errors.New("dtype mismatch")

	// ErrForeignNode is returned when an operand belongs to another graph.
	ErrForeignNode = errors.New("node belongs to a different graph")

	// ErrNilNode is returned for nil operands.
	ErrNilNode = errors.New("nil node")

	// ErrInvalidOperation is returned for malformed user-defined operations.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrCyclicGraph matches every *CyclicGraphError under errors.Is.
	ErrCyclicGraph = errors.New("cyclic graph")
)

// CyclicGraphError reports a cycle found while ordering the graph for the
// backward pass. Node is the node reached twice on the same path.
type CyclicGraphError struct {
	Node NodeID
}

func (e *CyclicGraphError) Error() string {
	return fmt.Sprintf("backward: cycle detected at node %d", e.Node)
}

// Is reports whether target is ErrCyclicGraph.
func (e *CyclicGraphError) Is(target error) bool {
	return target == ErrCyclicGraph
}
