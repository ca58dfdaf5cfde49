// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/gradtrace/internal/tensor"

// Backend defines the numeric kernels the autodiff engine runs on.
// Kernels never mutate their operands and panic on shape violations;
// validate operands with BroadcastShapes or MatMulShape first.
//
// Implementations:
//   - backend/cpu: Pure Go, float32 and float64
//
// Example:
//
//	import (
//	    "github.com/born-ml/gradtrace/backend/cpu"
//	    "github.com/born-ml/gradtrace/tensor"
//	)
//
//	backend := cpu.New()
//	x, _ := tensor.Ones(tensor.Shape{2, 3}, tensor.Float64)
//	y := backend.Exp(x)
type Backend = tensor.Backend
