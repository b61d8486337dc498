package tensor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func arange(t *testing.T, shape Shape) *RawTensor {
	t.Helper()
	n := shape.NumElements()
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i)
	}
	raw, err := FromSlice(data, shape)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	return raw
}

func TestTransposeView(t *testing.T) {
	raw := arange(t, Shape{2, 3})
	tr, err := raw.Transpose()
	if err != nil {
		t.Fatalf("Transpose failed: %v", err)
	}

	if diff := cmp.Diff(Shape{3, 2}, tr.Shape()); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}
	if tr.ElementWiseStride() != 0 {
		t.Errorf("ElementWiseStride = %d, want 0", tr.ElementWiseStride())
	}
	if tr.IsDirect() {
		t.Error("transposed view must not be direct")
	}

	want := []float64{0, 3, 1, 4, 2, 5}
	if diff := cmp.Diff(want, tr.ToFloat64Slice()); diff != "" {
		t.Errorf("transposed values mismatch (-want +got):\n%s", diff)
	}

	// Writes through the view land in the parent buffer.
	tr.SetFloat64At(1, 42)
	if raw.Float64At(3) != 42 {
		t.Errorf("parent[1,0] = %v, want 42", raw.Float64At(3))
	}
	if raw.IsUnique() {
		t.Error("parent should share its buffer with the view")
	}
}

func TestTransposeInvalid(t *testing.T) {
	raw := arange(t, Shape{2, 3})
	for _, axes := range [][]int{{0}, {0, 0}, {0, 2}} {
		if _, err := raw.Transpose(axes...); err == nil {
			t.Errorf("Transpose(%v) should fail", axes)
		}
	}
}

func TestSliceView(t *testing.T) {
	raw := arange(t, Shape{8})
	sl, err := raw.Slice(0, 1, 8, 2)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}

	if sl.ElementWiseStride() != 2 {
		t.Errorf("ElementWiseStride = %d, want 2", sl.ElementWiseStride())
	}
	if sl.IsDirect() {
		t.Error("stepped slice must not be direct")
	}
	if diff := cmp.Diff([]float64{1, 3, 5, 7}, sl.ToFloat64Slice()); diff != "" {
		t.Errorf("slice values mismatch (-want +got):\n%s", diff)
	}
}

func TestSliceContiguousRows(t *testing.T) {
	raw := arange(t, Shape{4, 3})
	rows, err := raw.Slice(0, 1, 3, 1)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}

	if !rows.IsDirect() {
		t.Error("row slice of a row-major tensor should stay direct")
	}
	if rows.Offset() != 3 {
		t.Errorf("Offset = %d, want 3", rows.Offset())
	}
	if diff := cmp.Diff([]float64{3, 4, 5, 6, 7, 8}, rows.ToFloat64Slice()); diff != "" {
		t.Errorf("row values mismatch (-want +got):\n%s", diff)
	}
}

func TestElementWiseStrideIgnoresUnitAxes(t *testing.T) {
	raw := arange(t, Shape{1, 5, 1})
	if raw.ElementWiseStride() != 1 {
		t.Errorf("ElementWiseStride = %d, want 1", raw.ElementWiseStride())
	}

	scalar, _ := NewRaw(Shape{}, Float32)
	if !scalar.IsDirect() {
		t.Error("scalar should be direct")
	}
}
