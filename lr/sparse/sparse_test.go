package sparse

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestMatrixSetValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.table")
	defer teardown()
	//
	M := NewIntMatrix(10, 10, -1)
	M.Set(2, 3, 4711)
	M.Set(0, 9, 1)
	M.Set(2, 0, 7)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected M(2,3) = 4711, is %d", v)
	}
	M.Set(2, 3, 123)
	if M.ValueCount() != 3 {
		t.Errorf("expected 3 values, have %d", M.ValueCount())
	}
	if v := M.Value(2, 3); v != 123 {
		t.Errorf("expected M(2,3) = 123, is %d", v)
	}
	if v := M.Value(9, 9); v != -1 {
		t.Errorf("expected null-value at M(9,9), is %d", v)
	}
}

func TestMatrixOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.table")
	defer teardown()
	//
	M := NewIntMatrix(3, 4, DefaultNullValue)
	M.Set(2, 1, 5).Set(0, 3, 1).Set(1, 0, 2).Set(0, 0, 9)
	var order []int
	M.Each(func(i, j, v int) {
		order = append(order, i*4+j)
	})
	expected := []int{0, 3, 4, 9}
	for k, pos := range expected {
		if k >= len(order) || order[k] != pos {
			t.Fatalf("expected row-major order %v, have %v", expected, order)
		}
	}
	row := M.Row(0)
	if row[0] != 9 || row[3] != 1 || row[1] != DefaultNullValue {
		t.Errorf("unexpected row 0: %v", row)
	}
}

func TestMatrixOutOfRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.table")
	defer teardown()
	//
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Set out of range to panic")
		}
	}()
	NewIntMatrix(2, 2, -1).Set(2, 0, 1)
}
