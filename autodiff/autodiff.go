// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// A Graph records every operation applied to its nodes. Operations run
// eagerly, so each Node carries its value immediately. Backward walks the
// nodes a result depends on, consumers before producers, and accumulates
// exact gradients into every node created with Variable or Leaf.
//
// Example:
//
//	import (
//	    "github.com/born-ml/gradtrace/autodiff"
//	    "github.com/born-ml/gradtrace/backend/cpu"
//	    "github.com/born-ml/gradtrace/tensor"
//	)
//
//	func main() {
//	    g := autodiff.New(cpu.New())
//
//	    x := autodiff.Must(g.Variable([]float64{3}, tensor.Shape{1}))
//	    y := autodiff.Must(g.Add(autodiff.Must(g.Mul(x, x)), x)) // y = x² + x
//
//	    if err := g.Backward(y); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(x.Grad().Item()) // 2x + 1 = 7
//	}
//
// # Gradients
//
// Gradients accumulate: a second Backward adds to the first. Use
// Graph.ZeroGrad or Node.ZeroGrad to reset them. Nodes created with Constant
// or Scalar never receive gradients.
//
// # Domain Guards
//
// Div computes a / (b + ε) and Log computes log(a + ε), with ε set by
// WithEpsilon. Results that are still NaN or infinite produce a DomainWarning
// delivered to WithDomainWarningHandler and logged at Warn level.
//
// # Extending
//
// Elementwise lifts a scalar function and its derivative into an operation.
// Record accepts any Operation whose forward pass the caller ran.
package autodiff

import (
	"log/slog"

	"github.com/born-ml/gradtrace/internal/autodiff"
	"github.com/born-ml/gradtrace/internal/autodiff/ops"
	"github.com/born-ml/gradtrace/tensor"
)

// Graph owns nodes and their gradients.
type Graph = autodiff.Graph

// Node is a vertex of the computation graph.
type Node = autodiff.Node

// NodeID identifies a node within its graph.
type NodeID = autodiff.NodeID

// Operation is the backward rule of a non-leaf node.
// Implement it to add operations through Graph.Record.
type Operation = ops.Operation

// ElementwiseFunc is a scalar function and its derivative, for Graph.Elementwise.
type ElementwiseFunc = autodiff.ElementwiseFunc

// Option configures a Graph.
type Option = autodiff.Option

// DomainWarning reports non-finite values produced by a forward computation.
type DomainWarning = autodiff.DomainWarning

// CyclicGraphError is returned by Backward when the graph contains a cycle.
type CyclicGraphError = autodiff.CyclicGraphError

// DefaultEpsilon is the default guard for Div and Log.
const DefaultEpsilon = autodiff.DefaultEpsilon

// Errors returned by graph construction and Backward.
var (
	ErrDTypeMismatch    = autodiff.ErrDTypeMismatch
	ErrForeignNode      = autodiff.ErrForeignNode
	ErrNilNode          = autodiff.ErrNilNode
	ErrInvalidOperation = autodiff.ErrInvalidOperation
	ErrCyclicGraph      = autodiff.ErrCyclicGraph
)

// New creates an empty graph computing on backend.
//
// Example:
//
//	g := autodiff.New(cpu.New(), autodiff.WithEpsilon(1e-9))
func New(backend tensor.Backend, opts ...Option) *Graph {
	return autodiff.New(backend, opts...)
}

// WithEpsilon sets the guard used by Div and Log.
func WithEpsilon(eps float64) Option {
	return autodiff.WithEpsilon(eps)
}

// WithDType sets the element type of every node (default Float64).
func WithDType(dtype tensor.DataType) Option {
	return autodiff.WithDType(dtype)
}

// WithLogger sets the structured logger used for backward passes and domain warnings.
func WithLogger(logger *slog.Logger) Option {
	return autodiff.WithLogger(logger)
}

// WithDomainWarningHandler registers a callback for domain warnings.
func WithDomainWarningHandler(fn func(DomainWarning)) Option {
	return autodiff.WithDomainWarningHandler(fn)
}

// Must returns n and panics if err is non-nil.
func Must(n *Node, err error) *Node {
	return autodiff.Must(n, err)
}
