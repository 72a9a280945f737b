package sparse

import "testing"

func TestMatrix(t *testing.T) {
	M := NewIntMatrix(10, 10, DefaultNullValue)
	if M.Value(1, 1) != DefaultNullValue {
		t.Errorf("expected empty matrix to return null value")
	}
	M.Set(5, 5, 55)
	M.Set(2, 3, 23)
	M.Set(2, 1, 21)
	M.Set(9, 0, 90)
	if M.ValueCount() != 4 {
		t.Errorf("expected 4 values, have %d", M.ValueCount())
	}
	if v := M.Value(2, 3); v != 23 {
		t.Errorf("expected M(2,3) = 23, is %d", v)
	}
	if prev := M.Set(2, 3, 32); prev != 23 {
		t.Errorf("expected previous value 23, is %d", prev)
	}
	if v := M.Value(2, 3); v != 32 {
		t.Errorf("expected M(2,3) = 32, is %d", v)
	}
	var order []int32
	M.Each(func(i, j int, v int32) {
		order = append(order, v)
	})
	expected := []int32{21, 32, 55, 90}
	for k := range expected {
		if order[k] != expected[k] {
			t.Fatalf("expected values in order %v, have %v", expected, order)
		}
	}
	cnt := 0
	M.EachInRow(2, func(j int, v int32) {
		cnt++
	})
	if cnt != 2 {
		t.Errorf("expected 2 values in row 2, have %d", cnt)
	}
	M.Set(5, 5, DefaultNullValue)
	if M.ValueCount() != 3 || M.Value(5, 5) != DefaultNullValue {
		t.Errorf("expected setting null value to remove entry")
	}
}

func TestMatrixRange(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected out of range index to panic")
		}
	}()
	M := NewIntMatrix(2, 2, -1)
	M.Set(2, 0, 1)
}
