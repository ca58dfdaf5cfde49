// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the numeric array type used by gradtrace.
//
// # Overview
//
// A RawTensor is a dense, row-major array of float32 or float64 values with
// a Shape. The empty shape denotes a 0-d scalar holding one element. Tensors
// are values: backends always allocate their results and never write into
// their operands.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/gradtrace/backend/cpu"
//	    "github.com/born-ml/gradtrace/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    a, _ := tensor.FromFloat64s([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2}, tensor.Float64)
//	    b, _ := tensor.Full(tensor.Shape{1}, 10, tensor.Float64)
//
//	    c := backend.Add(a, b) // (3, 2) + (1,) -> (3, 2)
//	}
//
// # Broadcasting
//
// Element-wise operations follow NumPy broadcasting rules: shapes are aligned
// on their trailing dimensions and a dimension of size 1 stretches to match.
//
//	(3, 1) + (3, 4) -> (3, 4)
//	(3, 2) + (1,)   -> (3, 2)
//	(3, 4) + (3, 5) -> ErrShapeMismatch
//
// BroadcastShapes and MatMulShape compute result shapes without running a
// kernel, so callers can reject bad operands before allocating anything.
package tensor
