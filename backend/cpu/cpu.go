// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/gradtrace/internal/backend/cpu"
	"github.com/born-ml/gradtrace/internal/parallel"
	"github.com/born-ml/gradtrace/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// ParallelConfig controls how kernels are split across goroutines.
type ParallelConfig = parallel.Config

// DefaultParallelConfig returns the configuration used by New.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/gradtrace/backend/cpu"
//	    "github.com/born-ml/gradtrace/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x, _ := tensor.Ones(tensor.Shape{2, 3}, tensor.Float64)
//	    y := backend.MulScalar(x, 2)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with an explicit parallel configuration.
func NewWithConfig(cfg ParallelConfig) *Backend {
	return internalcpu.NewWithConfig(cfg)
}
