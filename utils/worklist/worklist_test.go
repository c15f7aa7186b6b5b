package worklist

import "testing"

func TestProcessingOrderIsFIFO(t *testing.T) {
	var order []int
	Start(0, func(next int, add func(int)) {
		order = append(order, next)
		if next < 3 {
			add(next + 1)
			add(next + 10)
		}
	})

	expected := []int{0, 1, 10, 2, 11, 3, 12}
	if len(order) != len(expected) {
		t.Fatalf("processed %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("processed %v, expected %v", order, expected)
		}
	}
}

func TestEmptyWorklist(t *testing.T) {
	w := Empty[int]()
	if !w.IsEmpty() {
		t.Error("fresh worklist should be empty")
	}

	w.Add(1)
	if w.IsEmpty() {
		t.Error("worklist with an element should not be empty")
	}
	if next := w.GetNext(); next != 1 {
		t.Errorf("GetNext() = %d, expected 1", next)
	}
}
