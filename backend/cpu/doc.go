// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
//   - 2-D and batched 3-D matrix multiplication via gonum
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/gradtrace/autodiff"
//	    "github.com/born-ml/gradtrace/backend/cpu"
//	)
//
//	func main() {
//	    g := autodiff.New(cpu.New())
//	    // build and differentiate a graph with g
//	}
//
// # Performance
//
// Large element-wise kernels and batched matrix products are split across
// goroutines. NewWithConfig tunes or disables the split:
//
//	backend := cpu.NewWithConfig(cpu.ParallelConfig{Enabled: false})
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// is isolated and does not share mutable state.
package cpu
