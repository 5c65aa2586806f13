package heap

import (
	"container/heap"
	"sort"

	"golang.org/x/exp/constraints"
)

// Elem is a weighted element in a heap.
type Elem[T any, W constraints.Ordered] struct {
	Value  T
	Weight W
}

type _heap[T any, W constraints.Ordered] struct {
	elems []Elem[T, W]
}

func (h *_heap[T, W]) Len() int {
	return len(h.elems)
}

func (h *_heap[T, W]) Less(i, j int) bool {
	return h.elems[i].Weight < h.elems[j].Weight
}

func (h *_heap[T, W]) Swap(i, j int) {
	h.elems[i], h.elems[j] = h.elems[j], h.elems[i]
}

func (h *_heap[T, W]) Push(x interface{}) {
	h.elems = append(h.elems, x.(Elem[T, W]))
}

func (h *_heap[T, W]) Pop() interface{} {
	old := h.elems
	item := old[len(old)-1]
	h.elems = old[:len(old)-1]
	return item
}

// TopK keeps the k elements with the largest weights. Ties between equal
// weights are resolved arbitrarily.
type TopK[T any, W constraints.Ordered] struct {
	_heap[T, W]
	k int
}

// NewTopK initializes an empty top-k heap. A non-positive k keeps everything.
func NewTopK[T any, W constraints.Ordered](k int) *TopK[T, W] {
	return &TopK[T, W]{k: k}
}

// Push inserts a new element into the heap, evicting the current minimum if
// the heap is full.
func (t *TopK[T, W]) Push(value T, weight W) {
	if t.k > 0 && t.Len() == t.k {
		if weight <= t.elems[0].Weight {
			return
		}
		heap.Pop(&t._heap)
	}
	heap.Push(&t._heap, Elem[T, W]{Value: value, Weight: weight})
}

// PopAll returns all elements ordered by descending weight. The heap is left
// empty.
func (t *TopK[T, W]) PopAll() []Elem[T, W] {
	elems := t.elems
	t.elems = nil
	sort.Slice(elems, func(i, j int) bool {
		return elems[i].Weight > elems[j].Weight
	})
	return elems
}
