package datastructure

import (
	"errors"

	"golang.org/x/exp/constraints"
)

type PriorityQueueNode[T constraints.Ordered] struct {
	key     float64
	item    T
	itemPos int
}

func NewPriorityQueueNode[T constraints.Ordered](key float64, item T) *PriorityQueueNode[T] {
	return &PriorityQueueNode[T]{key: key, item: item}
}

func (p *PriorityQueueNode[T]) GetItem() T {
	return p.item
}

func (p *PriorityQueueNode[T]) GetKey() float64 {
	return p.key
}

func (p *PriorityQueueNode[T]) SetKey(key float64) {
	p.key = key
}

func (p *PriorityQueueNode[T]) SetPos(i int) {
	p.itemPos = i
}

func (p *PriorityQueueNode[T]) GetPos() int {
	return p.itemPos
}

// MinHeap is a d-ary min-priority queue with decrease-key. Equal keys are
// ordered by item, so extraction order is a total order and searches that
// hit distance ties stay reproducible across runs.
type MinHeap[T constraints.Ordered] struct {
	heap []*PriorityQueueNode[T]
	d    int
}

func NewBinaryHeap[T constraints.Ordered]() *MinHeap[T] {
	return NewdAryHeap[T](2)
}

func NewFourAryHeap[T constraints.Ordered]() *MinHeap[T] {
	return NewdAryHeap[T](4)
}

func NewdAryHeap[T constraints.Ordered](d int) *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]*PriorityQueueNode[T], 0),
		d:    d,
	}
}

func (h *MinHeap[T]) Preallocate(maxSearchSize int) {
	h.heap = make([]*PriorityQueueNode[T], 0, maxSearchSize)
}

func (h *MinHeap[T]) less(i, j int) bool {
	a, b := h.heap[i], h.heap[j]
	if a.key != b.key {
		return a.key < b.key
	}
	return a.item < b.item
}

func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / h.d
}

// heapifyUp restores the heap property after an insert or a key decrease,
// O(log n) on the tree height.
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.less(index, h.parent(index)) {
		h.Swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown restores the heap property after an extract, O(log n).
func (h *MinHeap[T]) heapifyDown(index int) {
	leftMostChild := index*h.d + 1
	if leftMostChild >= len(h.heap) {
		return
	}

	sentinel := leftMostChild + h.d
	if sentinel > len(h.heap) {
		sentinel = len(h.heap)
	}

	smallest := leftMostChild
	for i := leftMostChild + 1; i < sentinel; i++ {
		if h.less(i, smallest) {
			smallest = i
		}
	}

	if h.less(smallest, index) {
		h.Swap(index, smallest)

		h.heapifyDown(smallest)
	}
}

func (h *MinHeap[T]) Swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]

	h.heap[i].SetPos(i)
	h.heap[j].SetPos(j)
}

func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

func (h *MinHeap[T]) Clear() {
	h.heap = h.heap[:0]
}

func (h *MinHeap[T]) GetMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return &PriorityQueueNode[T]{}, errors.New("heap is empty")
	}
	return h.heap[0], nil
}

func (h *MinHeap[T]) Insert(key *PriorityQueueNode[T]) {
	h.heap = append(h.heap, key)
	index := h.Size() - 1
	key.SetPos(index)
	h.heapifyUp(index)
}

// ExtractMin pops the minimum node, O(log n).
func (h *MinHeap[T]) ExtractMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return &PriorityQueueNode[T]{}, errors.New("heap is empty")
	}
	root := h.heap[0]

	h.Swap(0, h.Size()-1)

	h.heap = h.heap[:h.Size()-1]
	root.SetPos(-1)
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}

	return root, nil
}

// DecreaseKey lowers the key of a node already in the heap, O(log n).
func (h *MinHeap[T]) DecreaseKey(item *PriorityQueueNode[T], key float64) error {
	itemPos := item.GetPos()
	if itemPos < 0 || itemPos >= h.Size() || h.heap[itemPos].GetKey() < key {
		return errors.New("invalid index or new value")
	}

	h.heap[itemPos].SetKey(key)
	h.heapifyUp(itemPos)
	return nil
}
