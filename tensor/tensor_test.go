// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/born-ml/gradtrace/backend/cpu"
	"github.com/born-ml/gradtrace/tensor"
)

func TestBroadcastThroughFacade(t *testing.T) {
	backend := cpu.New()

	a, err := tensor.FromFloat64s([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2}, tensor.Float64)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := tensor.Full(tensor.Shape{1}, 10, tensor.Float64)

	shape, needed, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil || !needed || !shape.Equal(tensor.Shape{3, 2}) {
		t.Fatalf("BroadcastShapes = %v, %v, %v", shape, needed, err)
	}

	c := backend.Add(a, b)
	want := []float64{11, 12, 13, 14, 15, 16}
	for i, v := range c.AsFloat64() {
		if v != want[i] {
			t.Errorf("c[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestShapeMismatchThroughFacade(t *testing.T) {
	_, _, err := tensor.BroadcastShapes(tensor.Shape{3, 4}, tensor.Shape{3, 5})
	if !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("BroadcastShapes error = %v, want ErrShapeMismatch", err)
	}

	_, err = tensor.MatMulShape(tensor.Shape{3, 2}, tensor.Shape{3, 2})
	if !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("MatMulShape error = %v, want ErrShapeMismatch", err)
	}
}
