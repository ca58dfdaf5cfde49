package tensor

import (
	"errors"
	"testing"
)

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{"same", Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{"column", Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"row", Shape{1, 5}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"scalar vector", Shape{3, 2}, Shape{1}, Shape{3, 2}, true, false},
		{"0-d scalar", Shape{}, Shape{4}, Shape{4}, true, false},
		{"leading dims", Shape{2, 3, 4}, Shape{4}, Shape{2, 3, 4}, true, false},
		{"incompatible", Shape{3, 4}, Shape{3, 5}, nil, false, true},
		{"incompatible leading", Shape{2, 3}, Shape{4, 3}, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, broadcast, err := BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				if !errors.Is(err, ErrShapeMismatch) {
					t.Fatalf("BroadcastShapes(%v, %v) error = %v, want ErrShapeMismatch", tt.a, tt.b, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BroadcastShapes(%v, %v) unexpected error: %v", tt.a, tt.b, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if broadcast != tt.broadcast {
				t.Errorf("BroadcastShapes(%v, %v) broadcast = %v, want %v", tt.a, tt.b, broadcast, tt.broadcast)
			}
		})
	}
}

func TestMatMulShape(t *testing.T) {
	got, err := MatMulShape(Shape{3, 2}, Shape{2, 4})
	if err != nil || !got.Equal(Shape{3, 4}) {
		t.Errorf("MatMulShape 2-D = %v, %v; want (3, 4)", got, err)
	}

	got, err = MatMulShape(Shape{5, 3, 2}, Shape{5, 2, 4})
	if err != nil || !got.Equal(Shape{5, 3, 4}) {
		t.Errorf("MatMulShape 3-D = %v, %v; want (5, 3, 4)", got, err)
	}

	bad := [][2]Shape{
		{{3, 2}, {3, 4}},       // inner mismatch
		{{5, 3, 2}, {4, 2, 4}}, // batch mismatch
		{{3}, {3}},             // rank 1
		{{3, 2}, {1, 2, 4}},    // rank mismatch
	}
	for _, pair := range bad {
		if _, err := MatMulShape(pair[0], pair[1]); !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("MatMulShape(%v, %v) error = %v, want ErrShapeMismatch", pair[0], pair[1], err)
		}
	}
}

func TestShapeCanReduceTo(t *testing.T) {
	tests := []struct {
		from, to Shape
		want     bool
	}{
		{Shape{3, 2}, Shape{1}, true},
		{Shape{3, 2}, Shape{}, true},
		{Shape{3, 2}, Shape{3, 1}, true},
		{Shape{2, 3, 4}, Shape{3, 1}, true},
		{Shape{3, 2}, Shape{2, 2}, false},
		{Shape{3}, Shape{1, 3}, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanReduceTo(tt.to); got != tt.want {
			t.Errorf("%v.CanReduceTo(%v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestShapeStridesAndElements(t *testing.T) {
	s := Shape{2, 3, 4}
	strides := s.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("strides[%d] = %d, want %d", i, strides[i], want[i])
		}
	}
	if s.NumElements() != 24 {
		t.Errorf("NumElements = %d, want 24", s.NumElements())
	}
	if (Shape{}).NumElements() != 1 {
		t.Error("0-d shape should have one element")
	}
	if s.String() != "(2, 3, 4)" || (Shape{}).String() != "()" {
		t.Errorf("String() = %q / %q", s.String(), Shape{}.String())
	}
}
